package writing

import (
	"fmt"
	"strings"
	"unicode"
)

// Feedback is the heuristic assessment of a piece of writing.
type Feedback struct {
	Words         int
	Sentences     int
	UniqueWords   int
	Variety       float64 // unique/total word ratio
	Connectives   []string
	WeakWords     []string
	Encouragement string
}

// connectives the feedback pass looks for and praises.
var knownConnectives = []string{
	"however", "therefore", "meanwhile", "although", "because",
	"furthermore", "consequently", "despite", "eventually", "suddenly",
}

// weakWords are flagged with a suggestion to choose something stronger.
var weakWords = []string{"nice", "good", "bad", "big", "small", "said", "got", "thing"}

// Assess runs the heuristic feedback pass over the text. It never
// fails; empty input yields zeroed counts and a gentle nudge.
func Assess(text string) Feedback {
	words := splitWords(text)

	fb := Feedback{
		Words:     len(words),
		Sentences: countSentences(text),
	}

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	fb.UniqueWords = len(unique)
	if fb.Words > 0 {
		fb.Variety = float64(fb.UniqueWords) / float64(fb.Words)
	}

	for _, c := range knownConnectives {
		if _, ok := unique[c]; ok {
			fb.Connectives = append(fb.Connectives, c)
		}
	}
	for _, w := range weakWords {
		if _, ok := unique[w]; ok {
			fb.WeakWords = append(fb.WeakWords, w)
		}
	}

	fb.Encouragement = encouragement(fb)
	return fb
}

func splitWords(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	words := fields[:0]
	for _, f := range fields {
		if f != "" && f != "'" {
			words = append(words, f)
		}
	}
	return words
}

func countSentences(text string) int {
	n := 0
	inSentence := false
	for _, r := range text {
		switch {
		case r == '.' || r == '!' || r == '?':
			if inSentence {
				n++
				inSentence = false
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			inSentence = true
		}
	}
	if inSentence {
		n++
	}
	return n
}

func encouragement(fb Feedback) string {
	switch {
	case fb.Words == 0:
		return "Have a go — even a few sentences count!"
	case fb.Words < 50:
		return "A good start. Try to develop your ideas with more detail next time."
	case fb.Words < 150:
		msg := "Solid effort with a clear structure."
		if len(fb.Connectives) > 0 {
			msg += fmt.Sprintf(" Nice use of '%s'.", fb.Connectives[0])
		}
		return msg
	default:
		msg := "A substantial piece of writing — well done!"
		if fb.Variety >= 0.6 {
			msg += " Your vocabulary is wonderfully varied."
		}
		return msg
	}
}

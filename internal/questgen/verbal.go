package questgen

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/saanvi/preppal/internal/question"
)

// VerbalGenerator produces letter-sequence, number-analogy, letter-code
// and odd-one-out reasoning questions.
type VerbalGenerator struct{}

func (VerbalGenerator) Subject() question.Subject { return question.SubjectVR }

func (VerbalGenerator) Generate(rng *rand.Rand, p question.Profile, n int) []question.Question {
	templates := []mathsTemplate{
		genLetterSequence,
		genNumberAnalogy,
		genLetterCode,
		genOddWord,
	}
	return generateFrom(rng, p, n, templates)
}

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// shiftLetter moves a letter through the alphabet, wrapping at Z.
func shiftLetter(c byte, by int) byte {
	i := int(c-'A') + by
	i = ((i % 26) + 26) % 26
	return alphabet[i]
}

func genLetterSequence(rng *rand.Rand, p question.Profile) (question.Question, bool) {
	step := between(rng, 1, 4)
	start := between(rng, 0, 25-5*step)
	terms := make([]string, 4)
	for i := range terms {
		terms[i] = string(alphabet[start+i*step])
	}
	answer := string(alphabet[start+4*step])

	distract := func() string {
		d := string(shiftLetter(answer[0], between(rng, 1, 3)*(1-2*rng.IntN(2))))
		if d == answer {
			return ""
		}
		return d
	}
	choices, idx, ok := buildChoices(rng, answer, distract)
	if !ok {
		return question.Question{}, false
	}
	return question.Question{
		ID:          newID(question.SubjectVR),
		Subject:     question.SubjectVR,
		Stem:        fmt.Sprintf("Which letter comes next: %s?", strings.Join(terms, ", ")),
		Choices:     choices,
		AnswerIndex: idx,
		Explanation: fmt.Sprintf("Each letter moves %d place(s) along the alphabet, giving %s.", step, answer),
		Tags:        baseTags(p, "sequences", "medium"),
	}, true
}

func genNumberAnalogy(rng *rand.Rand, p question.Profile) (question.Question, bool) {
	// a is to a*f as c is to c*f.
	f := between(rng, 2, 5)
	a := between(rng, 2, 9)
	c := between(rng, 2, 12)
	for c == a {
		c = between(rng, 2, 12)
	}
	answer := c * f
	return numericQuestion(rng, p, question.SubjectVR, "analogies", "medium",
		fmt.Sprintf("%d is to %d as %d is to ...?", a, a*f, c),
		answer,
		fmt.Sprintf("The second number is %d times the first, so %d x %d = %d.", f, c, f, answer))
}

var codeWords = []string{"CAT", "DOG", "SUN", "MAP", "PEN", "BIRD", "FROG", "STAR", "MOON", "SHIP"}

func genLetterCode(rng *rand.Rand, p question.Profile) (question.Question, bool) {
	word := pick(rng, codeWords)
	shift := between(rng, 1, 5)

	encode := func(w string, by int) string {
		var b strings.Builder
		for i := 0; i < len(w); i++ {
			b.WriteByte(shiftLetter(w[i], by))
		}
		return b.String()
	}

	answer := encode(word, shift)
	distract := func() string {
		d := encode(word, shift+between(rng, 1, 3)*(1-2*rng.IntN(2)))
		if d == answer {
			return ""
		}
		return d
	}
	choices, idx, ok := buildChoices(rng, answer, distract)
	if !ok {
		return question.Question{}, false
	}
	return question.Question{
		ID:          newID(question.SubjectVR),
		Subject:     question.SubjectVR,
		Stem:        fmt.Sprintf("In a code, each letter moves %d place(s) forward in the alphabet. What is the code for %s?", shift, word),
		Choices:     choices,
		AnswerIndex: idx,
		Explanation: fmt.Sprintf("Moving every letter of %s forward by %d gives %s.", word, shift, answer),
		Tags:        baseTags(p, "codes", "medium"),
	}, true
}

// oddWordBank groups three related words with one outsider.
var oddWordBank = []struct {
	related []string
	odd     string
	reason  string
}{
	{[]string{"oak", "elm", "birch"}, "rose", "the others are trees"},
	{[]string{"trout", "salmon", "cod"}, "otter", "the others are fish"},
	{[]string{"violin", "cello", "harp"}, "trumpet", "the others are string instruments"},
	{[]string{"red", "blue", "green"}, "circle", "the others are colours"},
	{[]string{"run", "sprint", "jog"}, "sleep", "the others are ways of moving"},
	{[]string{"France", "Spain", "Italy"}, "Paris", "the others are countries"},
}

func genOddWord(rng *rand.Rand, p question.Profile) (question.Question, bool) {
	entry := pick(rng, oddWordBank)

	choices := append([]string{entry.odd}, entry.related...)
	rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	idx := 0
	for i, c := range choices {
		if c == entry.odd {
			idx = i
			break
		}
	}

	return question.Question{
		ID:          newID(question.SubjectVR),
		Subject:     question.SubjectVR,
		Stem:        "Which word is the odd one out?",
		Choices:     choices,
		AnswerIndex: idx,
		Explanation: fmt.Sprintf("'%s' does not belong: %s.", entry.odd, entry.reason),
		Tags:        baseTags(p, "odd-one-out", "medium"),
	}, true
}

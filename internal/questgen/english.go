package questgen

import (
	"fmt"
	"math/rand/v2"

	"github.com/saanvi/preppal/internal/question"
)

// EnglishGenerator produces vocabulary, spelling and grammar questions
// from built-in word banks.
type EnglishGenerator struct{}

func (EnglishGenerator) Subject() question.Subject { return question.SubjectEnglish }

func (EnglishGenerator) Generate(rng *rand.Rand, p question.Profile, n int) []question.Question {
	templates := []mathsTemplate{
		genSynonym,
		genAntonym,
		genPlural,
		genHomophone,
	}
	return generateFrom(rng, p, n, templates)
}

// wordPair links a prompt word to its expected answer.
type wordPair struct {
	prompt string
	answer string
}

var synonymBank = []wordPair{
	{"happy", "joyful"},
	{"angry", "furious"},
	{"big", "enormous"},
	{"quick", "rapid"},
	{"tired", "weary"},
	{"brave", "courageous"},
	{"quiet", "silent"},
	{"strange", "peculiar"},
	{"begin", "commence"},
	{"shiny", "gleaming"},
	{"old", "ancient"},
	{"cold", "frigid"},
}

var antonymBank = []wordPair{
	{"generous", "selfish"},
	{"ancient", "modern"},
	{"expand", "contract"},
	{"victory", "defeat"},
	{"transparent", "opaque"},
	{"abundant", "scarce"},
	{"brave", "cowardly"},
	{"rough", "smooth"},
	{"innocent", "guilty"},
	{"temporary", "permanent"},
}

var pluralBank = []wordPair{
	{"child", "children"},
	{"mouse", "mice"},
	{"goose", "geese"},
	{"sheep", "sheep"},
	{"tooth", "teeth"},
	{"woman", "women"},
	{"leaf", "leaves"},
	{"cactus", "cacti"},
	{"knife", "knives"},
	{"fungus", "fungi"},
}

// homophoneBank: sentence with a blank, the right word, and its sound-alikes.
var homophoneBank = []struct {
	sentence string
	answer   string
	foils    []string
}{
	{"The dog wagged ___ tail.", "its", []string{"it's", "its'", "itis"}},
	{"We walked ___ the park.", "through", []string{"threw", "thru", "though"}},
	{"___ going to be late.", "They're", []string{"Their", "There", "Theyre"}},
	{"I can ___ the sea from here.", "see", []string{"sea", "cee", "seed"}},
	{"She read the book ___ loud.", "aloud", []string{"allowed", "aload", "alowd"}},
	{"The knight rode his horse at ___.", "night", []string{"knight", "nite", "nigt"}},
}

// bankDistractor draws wrong answers from the other entries of a bank.
func bankDistractor(rng *rand.Rand, bank []wordPair, exclude string) func() string {
	return func() string {
		w := pick(rng, bank).answer
		if w == exclude {
			return ""
		}
		return w
	}
}

func englishQuestion(rng *rand.Rand, p question.Profile, topic, stem, answer string, distract func() string, explanation string) (question.Question, bool) {
	choices, idx, ok := buildChoices(rng, answer, distract)
	if !ok {
		return question.Question{}, false
	}
	return question.Question{
		ID:          newID(question.SubjectEnglish),
		Subject:     question.SubjectEnglish,
		Stem:        stem,
		Choices:     choices,
		AnswerIndex: idx,
		Explanation: explanation,
		Tags:        baseTags(p, topic, "medium"),
	}, true
}

func genSynonym(rng *rand.Rand, p question.Profile) (question.Question, bool) {
	pair := pick(rng, synonymBank)
	return englishQuestion(rng, p, "vocabulary",
		fmt.Sprintf("Which word is closest in meaning to '%s'?", pair.prompt),
		pair.answer,
		bankDistractor(rng, synonymBank, pair.answer),
		fmt.Sprintf("'%s' means much the same as '%s'.", pair.answer, pair.prompt))
}

func genAntonym(rng *rand.Rand, p question.Profile) (question.Question, bool) {
	pair := pick(rng, antonymBank)
	return englishQuestion(rng, p, "vocabulary",
		fmt.Sprintf("Which word is opposite in meaning to '%s'?", pair.prompt),
		pair.answer,
		bankDistractor(rng, antonymBank, pair.answer),
		fmt.Sprintf("'%s' is the opposite of '%s'.", pair.answer, pair.prompt))
}

func genPlural(rng *rand.Rand, p question.Profile) (question.Question, bool) {
	pair := pick(rng, pluralBank)
	naive := pair.prompt + "s" // the tempting wrong answer
	distract := func() string {
		if rng.IntN(3) == 0 && naive != pair.answer {
			return naive
		}
		w := pick(rng, pluralBank).answer
		if w == pair.answer {
			return ""
		}
		return w
	}
	return englishQuestion(rng, p, "spelling",
		fmt.Sprintf("What is the plural of '%s'?", pair.prompt),
		pair.answer,
		distract,
		fmt.Sprintf("The plural of '%s' is '%s'.", pair.prompt, pair.answer))
}

func genHomophone(rng *rand.Rand, p question.Profile) (question.Question, bool) {
	entry := pick(rng, homophoneBank)
	i := 0
	distract := func() string {
		if i >= len(entry.foils) {
			return ""
		}
		d := entry.foils[i]
		i++
		return d
	}
	return englishQuestion(rng, p, "grammar",
		fmt.Sprintf("Choose the correct word: %s", entry.sentence),
		entry.answer,
		distract,
		fmt.Sprintf("'%s' is the correct word for this sentence.", entry.answer))
}

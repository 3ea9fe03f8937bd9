// Package questgen produces freshly randomized practice questions for
// each quiz subject. Generators are pure functions of an injected
// randomness source and the learner profile, so a fixed seed yields a
// reproducible stream.
package questgen

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/saanvi/preppal/internal/question"
)

// ChoiceCount is the fixed option-list length for generated items.
const ChoiceCount = 4

// Generator produces questions for one subject.
type Generator interface {
	Subject() question.Subject
	// Generate returns up to n fresh questions. Each item carries
	// exactly one choice equal to the computed correct value; the
	// remainder are distinct plausible distractors.
	Generate(rng *rand.Rand, p question.Profile, n int) []question.Question
}

// ForSubject returns the generator for a quiz subject, or nil for
// subjects with no procedural content (comprehension).
func ForSubject(s question.Subject) Generator {
	switch s {
	case question.SubjectMaths:
		return MathsGenerator{}
	case question.SubjectEnglish:
		return EnglishGenerator{}
	case question.SubjectVR:
		return VerbalGenerator{}
	case question.SubjectNVR:
		return NonVerbalGenerator{}
	}
	return nil
}

// maxDistractorTries bounds distractor regeneration before the whole
// item is abandoned and re-rolled.
const maxDistractorTries = 64

// buildChoices assembles a shuffled option list containing answer
// exactly once plus ChoiceCount-1 distinct distractors drawn from
// distract. The correct index is located by lookup after the shuffle,
// never fixed beforehand. A distractor colliding with the answer or an
// earlier distractor is discarded and regenerated; if the supply runs
// dry the item is rejected (ok=false) so the caller can re-roll it.
func buildChoices(rng *rand.Rand, answer string, distract func() string) (choices []string, answerIndex int, ok bool) {
	seen := map[string]struct{}{answer: {}}
	choices = []string{answer}

	tries := 0
	for len(choices) < ChoiceCount {
		if tries++; tries > maxDistractorTries {
			return nil, 0, false
		}
		d := distract()
		if d == "" {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		choices = append(choices, d)
	}

	rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	for i, c := range choices {
		if c == answer {
			return choices, i, true
		}
	}
	// Unreachable: answer is always a member.
	return nil, 0, false
}

// newID returns a fresh question id with a subject prefix.
func newID(s question.Subject) string {
	return string(s) + "-gen-" + uuid.New().String()
}

// baseTags returns the year and topic tags shared by generated items.
func baseTags(p question.Profile, topic, difficulty string) []string {
	return []string{
		"year:" + string(p.Grade),
		"topic:" + topic,
		"difficulty:" + difficulty,
	}
}

// pick returns a uniformly random element of xs.
func pick[T any](rng *rand.Rand, xs []T) T {
	return xs[rng.IntN(len(xs))]
}

// between returns a random int in [lo, hi] inclusive.
func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

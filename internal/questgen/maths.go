package questgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/saanvi/preppal/internal/question"
)

// MathsGenerator produces arithmetic, fraction, percentage, sequence
// and measure questions. Numeric ranges scale with the profile grade;
// AllowHarder unlocks the harder templates and tags them as such.
type MathsGenerator struct{}

func (MathsGenerator) Subject() question.Subject { return question.SubjectMaths }

type mathsTemplate func(*rand.Rand, question.Profile) (question.Question, bool)

func (MathsGenerator) Generate(rng *rand.Rand, p question.Profile, n int) []question.Question {
	templates := []mathsTemplate{
		genAddition,
		genSubtraction,
		genMultiplication,
		genDivision,
		genFractionOf,
		genPercentage,
		genSequence,
		genPerimeter,
	}
	if p.AllowHarder {
		templates = append(templates, genFractionCompare, genArea)
	}
	return generateFrom(rng, p, n, templates)
}

// generateFrom fills up to n items from the template set, re-rolling
// items whose distractor supply collapses. Shared with the other
// numeric generators.
func generateFrom(rng *rand.Rand, p question.Profile, n int, templates []mathsTemplate) []question.Question {
	out := make([]question.Question, 0, n)
	budget := n * 8
	for len(out) < n && budget > 0 {
		budget--
		tmpl := pick(rng, templates)
		if q, ok := tmpl(rng, p); ok {
			out = append(out, q)
		}
	}
	return out
}

// addLimit returns the operand ceiling for the grade.
func addLimit(p question.Profile) int {
	switch p.Grade.Level() {
	case 3:
		return 99
	case 4:
		return 499
	case 5:
		return 999
	default:
		return 4999
	}
}

// numericDistractor produces small randomized deltas around the answer,
// mixing near-misses with place-value slips.
func numericDistractor(rng *rand.Rand, answer int) func() string {
	return func() string {
		var d int
		switch rng.IntN(4) {
		case 0:
			d = between(rng, 1, 3)
		case 1:
			d = -between(rng, 1, 3)
		case 2:
			d = 10
		default:
			d = -10
		}
		v := answer + d
		if v < 0 || v == answer {
			return ""
		}
		return strconv.Itoa(v)
	}
}

func numericQuestion(rng *rand.Rand, p question.Profile, s question.Subject, topic, difficulty, stem string, answer int, explanation string) (question.Question, bool) {
	choices, idx, ok := buildChoices(rng, strconv.Itoa(answer), numericDistractor(rng, answer))
	if !ok {
		return question.Question{}, false
	}
	return question.Question{
		ID:          newID(s),
		Subject:     s,
		Stem:        stem,
		Choices:     choices,
		AnswerIndex: idx,
		Explanation: explanation,
		Tags:        baseTags(p, topic, difficulty),
	}, true
}

func genAddition(rng *rand.Rand, p question.Profile) (question.Question, bool) {
	lim := addLimit(p)
	a := between(rng, lim/10, lim)
	b := between(rng, lim/10, lim)
	return numericQuestion(rng, p, question.SubjectMaths, "arithmetic", "easy",
		fmt.Sprintf("What is %d + %d?", a, b),
		a+b,
		fmt.Sprintf("%d + %d = %d.", a, b, a+b))
}

func genSubtraction(rng *rand.Rand, p question.Profile) (question.Question, bool) {
	lim := addLimit(p)
	a := between(rng, lim/5, lim)
	b := between(rng, 1, a)
	return numericQuestion(rng, p, question.SubjectMaths, "arithmetic", "easy",
		fmt.Sprintf("What is %d - %d?", a, b),
		a-b,
		fmt.Sprintf("%d - %d = %d.", a, b, a-b))
}

func genMultiplication(rng *rand.Rand, p question.Profile) (question.Question, bool) {
	hi := 12
	if p.Grade.Level() <= 3 {
		hi = 10
	}
	a := between(rng, 2, hi)
	b := between(rng, 2, hi)
	return numericQuestion(rng, p, question.SubjectMaths, "arithmetic", "medium",
		fmt.Sprintf("What is %d x %d?", a, b),
		a*b,
		fmt.Sprintf("%d x %d = %d.", a, b, a*b))
}

func genDivision(rng *rand.Rand, p question.Profile) (question.Question, bool) {
	d := between(rng, 2, 12)
	q := between(rng, 2, 12)
	return numericQuestion(rng, p, question.SubjectMaths, "arithmetic", "medium",
		fmt.Sprintf("What is %d divided by %d?", d*q, d),
		q,
		fmt.Sprintf("%d / %d = %d because %d x %d = %d.", d*q, d, q, d, q, d*q))
}

func genFractionOf(rng *rand.Rand, p question.Profile) (question.Question, bool) {
	denoms := []int{2, 3, 4, 5, 10}
	if p.Grade.Level() >= 5 {
		denoms = append(denoms, 6, 8, 12)
	}
	d := pick(rng, denoms)
	k := between(rng, 2, 12)
	total := d * k
	return numericQuestion(rng, p, question.SubjectMaths, "fractions", "medium",
		fmt.Sprintf("What is 1/%d of %d?", d, total),
		k,
		fmt.Sprintf("%d divided by %d is %d.", total, d, k))
}

func genPercentage(rng *rand.Rand, p question.Profile) (question.Question, bool) {
	pcts := []int{10, 25, 50}
	if p.Grade.Level() >= 5 {
		pcts = append(pcts, 20, 75)
	}
	pct := pick(rng, pcts)
	base := between(rng, 1, 20) * 20 // keeps every supported pct integral
	answer := base * pct / 100
	return numericQuestion(rng, p, question.SubjectMaths, "percentages", "medium",
		fmt.Sprintf("What is %d%% of %d?", pct, base),
		answer,
		fmt.Sprintf("%d%% of %d = %d x %d / 100 = %d.", pct, base, base, pct, answer))
}

func genSequence(rng *rand.Rand, p question.Profile) (question.Question, bool) {
	start := between(rng, 1, 20)
	step := between(rng, 2, 9)
	if rng.IntN(2) == 0 {
		step = -step
		start += 5 * -step // keep terms positive
	}
	terms := make([]int, 4)
	for i := range terms {
		terms[i] = start + i*step
	}
	answer := start + 4*step
	return numericQuestion(rng, p, question.SubjectMaths, "sequences", "medium",
		fmt.Sprintf("What comes next: %d, %d, %d, %d, ...?", terms[0], terms[1], terms[2], terms[3]),
		answer,
		fmt.Sprintf("The sequence changes by %d each time, so the next term is %d.", step, answer))
}

func genPerimeter(rng *rand.Rand, p question.Profile) (question.Question, bool) {
	l := between(rng, 3, 20)
	w := between(rng, 2, l)
	answer := 2 * (l + w)
	return numericQuestion(rng, p, question.SubjectMaths, "measure", "medium",
		fmt.Sprintf("A rectangle is %d cm long and %d cm wide. What is its perimeter in cm?", l, w),
		answer,
		fmt.Sprintf("Perimeter = 2 x (%d + %d) = %d cm.", l, w, answer))
}

func genArea(rng *rand.Rand, p question.Profile) (question.Question, bool) {
	l := between(rng, 4, 25)
	w := between(rng, 3, l)
	answer := l * w
	return numericQuestion(rng, p, question.SubjectMaths, "measure", "hard",
		fmt.Sprintf("A rectangle is %d cm long and %d cm wide. What is its area in square cm?", l, w),
		answer,
		fmt.Sprintf("Area = %d x %d = %d square cm.", l, w, answer))
}

func genFractionCompare(rng *rand.Rand, p question.Profile) (question.Question, bool) {
	// Four distinct fractions; the largest is the answer.
	denoms := []int{3, 4, 5, 6, 8, 10, 12}
	type frac struct {
		n, d int
	}
	seen := map[string]struct{}{}
	var fracs []frac
	tries := 0
	for len(fracs) < ChoiceCount {
		if tries++; tries > maxDistractorTries {
			return question.Question{}, false
		}
		d := pick(rng, denoms)
		n := between(rng, 1, d-1)
		key := fmt.Sprintf("%d/%d", n, d)
		if _, dup := seen[key]; dup {
			continue
		}
		// Reject value ties with an already chosen fraction.
		tie := false
		for _, f := range fracs {
			if n*f.d == f.n*d {
				tie = true
				break
			}
		}
		if tie {
			continue
		}
		seen[key] = struct{}{}
		fracs = append(fracs, frac{n, d})
	}

	best := 0
	for i := 1; i < len(fracs); i++ {
		if fracs[i].n*fracs[best].d > fracs[best].n*fracs[i].d {
			best = i
		}
	}

	choices := make([]string, len(fracs))
	for i, f := range fracs {
		choices[i] = fmt.Sprintf("%d/%d", f.n, f.d)
	}
	answer := choices[best]

	rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	idx := 0
	for i, c := range choices {
		if c == answer {
			idx = i
			break
		}
	}

	return question.Question{
		ID:          newID(question.SubjectMaths),
		Subject:     question.SubjectMaths,
		Stem:        "Which fraction is the largest?",
		Choices:     choices,
		AnswerIndex: idx,
		Explanation: fmt.Sprintf("Comparing with common denominators, %s has the greatest value.", answer),
		Tags:        baseTags(p, "fractions", "hard"),
	}, true
}

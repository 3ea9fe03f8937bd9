package questgen

import (
	"fmt"
	"math/rand/v2"

	"github.com/saanvi/preppal/internal/question"
)

// NonVerbalGenerator produces shape-based odd-one-out questions. Three
// options share a common attribute and the fourth differs in exactly
// one of fill, rotation, size or count. The odd option's position is
// randomized independently of how the set was generated.
type NonVerbalGenerator struct{}

func (NonVerbalGenerator) Subject() question.Subject { return question.SubjectNVR }

var (
	shapeKinds  = []string{"circle", "square", "triangle", "star", "hexagon"}
	shapeFills  = []string{"black", "white", "striped", "dotted"}
	positionals = []string{"A", "B", "C", "D"}
)

// nvrAttribute names the attribute the odd option breaks.
type nvrAttribute int

const (
	attrFill nvrAttribute = iota
	attrRotation
	attrSize
	attrCount
)

func (NonVerbalGenerator) Generate(rng *rand.Rand, p question.Profile, n int) []question.Question {
	out := make([]question.Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, genOddShape(rng, p))
	}
	return out
}

func genOddShape(rng *rand.Rand, p question.Profile) question.Question {
	kind := pick(rng, shapeKinds)
	fill := pick(rng, shapeFills)

	// Rotation granularity tightens for harder profiles.
	rotStep := 90
	if p.AllowHarder {
		rotStep = 45
	}
	rotation := rng.IntN(360/rotStep) * rotStep
	size := between(rng, 2, 4)
	count := between(rng, 1, 3)

	attr := nvrAttribute(rng.IntN(4))
	// Rotation is invisible on circles (and on squares at right angles).
	if attr == attrRotation && (kind == "circle" || (kind == "square" && rotStep == 90)) {
		attr = attrFill
	}

	base := func() []question.VisualChoice {
		set := make([]question.VisualChoice, count)
		for i := range set {
			set[i] = question.VisualChoice{
				Kind:     kind,
				Fill:     fill,
				Size:     size,
				Rotation: rotation,
				X:        i * (size + 1),
				Y:        0,
			}
		}
		return set
	}

	odd := base()
	var reason string
	switch attr {
	case attrFill:
		altFill := pick(rng, shapeFills)
		for altFill == fill {
			altFill = pick(rng, shapeFills)
		}
		for i := range odd {
			odd[i].Fill = altFill
		}
		reason = fmt.Sprintf("three options are %s but one is %s", fill, altFill)
	case attrRotation:
		altRot := (rotation + rotStep*between(rng, 1, 2)) % 360
		for i := range odd {
			odd[i].Rotation = altRot
		}
		reason = "one option is rotated differently from the rest"
	case attrSize:
		altSize := size + 2
		for i := range odd {
			odd[i].Size = altSize
		}
		reason = "one option is a different size from the rest"
	default:
		extra := question.VisualChoice{Kind: kind, Fill: fill, Size: size, Rotation: rotation, X: count * (size + 1)}
		odd = append(odd, extra)
		reason = fmt.Sprintf("three options show %d shape(s) but one shows %d", count, count+1)
	}

	// Odd position chosen independently of generation order.
	oddAt := rng.IntN(ChoiceCount)
	visual := make([][]question.VisualChoice, ChoiceCount)
	for i := 0; i < ChoiceCount; i++ {
		if i == oddAt {
			visual[i] = odd
		} else {
			visual[i] = base()
		}
	}

	return question.Question{
		ID:            newID(question.SubjectNVR),
		Subject:       question.SubjectNVR,
		Stem:          "Which picture is the odd one out?",
		Choices:       append([]string(nil), positionals...),
		AnswerIndex:   oddAt,
		Explanation:   fmt.Sprintf("Option %s differs: %s.", positionals[oddAt], reason),
		Tags:          baseTags(p, "odd-one-out", "medium"),
		VisualChoices: visual,
	}
}

package question

import "strings"

// Subject identifies one of the practice areas.
type Subject string

const (
	SubjectMaths         Subject = "maths"
	SubjectEnglish       Subject = "english"
	SubjectVR            Subject = "vr"
	SubjectNVR           Subject = "nvr"
	SubjectComprehension Subject = "comprehension"
)

// AllSubjects lists the quiz subjects in menu order.
var AllSubjects = []Subject{SubjectMaths, SubjectEnglish, SubjectVR, SubjectNVR, SubjectComprehension}

// DisplayName returns a learner-facing label for the subject.
func (s Subject) DisplayName() string {
	switch s {
	case SubjectMaths:
		return "Maths"
	case SubjectEnglish:
		return "English"
	case SubjectVR:
		return "Verbal Reasoning"
	case SubjectNVR:
		return "Non-Verbal Reasoning"
	case SubjectComprehension:
		return "Comprehension"
	}
	return string(s)
}

// VisualChoice describes one drawable shape inside a visual answer option.
type VisualChoice struct {
	Kind     string `json:"kind"` // "circle", "square", "triangle", "star", "hexagon"
	Fill     string `json:"fill"`
	Size     int    `json:"size"`
	Rotation int    `json:"rotation"` // degrees
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// Question is one assessment item ready to be served in a session.
type Question struct {
	// ID is stable and unique within one pool build.
	ID string

	Subject Subject

	// Stem is the prompt text shown to the learner.
	Stem string

	// Choices are the presentable options. Visual items use positional
	// labels "A".."D" here with the shapes carried in VisualChoices.
	Choices []string

	// AnswerIndex points at the single correct entry of Choices.
	AnswerIndex int

	// Explanation is an optional rationale shown after answering.
	Explanation string

	// Tags encode year:<grade>, topic:<category> and difficulty:<level>.
	Tags []string

	// ExamBoards lists the boards this item is valid for.
	// Empty means valid for all boards.
	ExamBoards []string

	// VisualChoices, when set, is parallel to Choices: one shape set per
	// option. Rendering-only; selection logic never inspects it.
	VisualChoices [][]VisualChoice
}

// Passage is a reading-comprehension unit: a body text with embedded
// sub-questions. Chosen wholesale, never mutated.
type Passage struct {
	ID        string
	Title     string
	Body      string
	Questions []Question
}

// TagValue returns the value of the first tag with the given prefix,
// e.g. TagValue(tags, "topic") -> "fractions". Empty if absent.
func TagValue(tags []string, prefix string) string {
	p := prefix + ":"
	for _, t := range tags {
		if strings.HasPrefix(t, p) {
			return t[len(p):]
		}
	}
	return ""
}

// HasTag reports whether the exact tag is present.
func HasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

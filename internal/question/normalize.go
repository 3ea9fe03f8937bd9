package question

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// recordSchema validates the loose shape of one curated question record
// before it is coerced into a Question. Anything failing the schema is
// dropped rather than surfaced as an error.
const recordSchema = `{
	"type": "object",
	"required": ["id", "stem", "choices", "answerIndex"],
	"properties": {
		"id": {"type": ["string", "integer", "number"]},
		"stem": {"type": "string", "minLength": 1},
		"choices": {"type": "array", "items": {"type": "string"}, "minItems": 2},
		"answerIndex": {"type": ["integer", "number"], "minimum": 0},
		"explanation": {"type": "string"},
		"tags": {"type": "array", "items": {"type": "string"}},
		"examBoards": {"type": "array", "items": {"type": "string"}},
		"visualChoiceSets": {"type": "array"}
	}
}`

var compileRecordSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var parsed any
	if err := json.Unmarshal([]byte(recordSchema), &parsed); err != nil {
		return nil, fmt.Errorf("parse record schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://question-record.json", parsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile("schema://question-record.json")
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
})

// rawRecord is the loosely-typed wire shape of a curated question.
type rawRecord struct {
	ID               any              `json:"id"`
	Stem             string           `json:"stem"`
	Choices          []string         `json:"choices"`
	AnswerIndex      float64          `json:"answerIndex"`
	Explanation      string           `json:"explanation"`
	Tags             []string         `json:"tags"`
	ExamBoards       []string         `json:"examBoards"`
	VisualChoiceSets [][]VisualChoice `json:"visualChoiceSets"`
}

// Normalize converts a curated JSON payload into well-formed Questions.
// Malformed payloads and malformed records are dropped silently; the
// caller only ever sees a (possibly empty) slice of valid items.
// Ids are coerced to strings, missing board sets default to
// ["Generic"], and records whose answerIndex falls outside the choice
// list are discarded.
func Normalize(data []byte, subject Subject) []Question {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil
	}

	schema, err := compileRecordSchema()
	if err != nil {
		return nil
	}

	out := make([]Question, 0, len(raws))
	for _, raw := range raws {
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			continue
		}
		if err := schema.Validate(parsed); err != nil {
			continue
		}

		var rec rawRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}

		idx := int(rec.AnswerIndex)
		if idx < 0 || idx >= len(rec.Choices) {
			continue
		}

		boards := rec.ExamBoards
		if len(boards) == 0 {
			boards = []string{"Generic"}
		}

		q := Question{
			ID:          coerceID(rec.ID),
			Subject:     subject,
			Stem:        rec.Stem,
			Choices:     rec.Choices,
			AnswerIndex: idx,
			Explanation: rec.Explanation,
			Tags:        rec.Tags,
			ExamBoards:  boards,
		}
		if len(rec.VisualChoiceSets) == len(rec.Choices) {
			q.VisualChoices = rec.VisualChoiceSets
		}
		out = append(out, q)
	}
	return out
}

// rawPassage is the wire shape of a comprehension passage.
type rawPassage struct {
	ID        any    `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Questions []struct {
		ID          any      `json:"id"`
		Stem        string   `json:"stem"`
		Choices     []string `json:"choices"`
		AnswerIndex float64  `json:"answerIndex"`
		Explanation string   `json:"explanation"`
	} `json:"questions"`
}

// NormalizePassages converts a passage payload into well-formed
// Passages. A passage survives only if its body is non-empty and it
// retains at least one valid sub-question.
func NormalizePassages(data []byte) []Passage {
	var raws []rawPassage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil
	}

	out := make([]Passage, 0, len(raws))
	for _, rp := range raws {
		if rp.Body == "" {
			continue
		}
		p := Passage{
			ID:    coerceID(rp.ID),
			Title: rp.Title,
			Body:  rp.Body,
		}
		for _, rq := range rp.Questions {
			idx := int(rq.AnswerIndex)
			if rq.Stem == "" || len(rq.Choices) < 2 || idx < 0 || idx >= len(rq.Choices) {
				continue
			}
			p.Questions = append(p.Questions, Question{
				ID:          coerceID(rq.ID),
				Subject:     SubjectComprehension,
				Stem:        rq.Stem,
				Choices:     rq.Choices,
				AnswerIndex: idx,
				Explanation: rq.Explanation,
			})
		}
		if len(p.Questions) > 0 {
			out = append(out, p)
		}
	}
	return out
}

func coerceID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}

package question

import "testing"

func TestNormalize_ValidRecord(t *testing.T) {
	data := []byte(`[{
		"id": "m-001",
		"stem": "What is 7 x 8?",
		"choices": ["54", "56", "58", "64"],
		"answerIndex": 1,
		"explanation": "7 x 8 = 56.",
		"tags": ["topic:arithmetic", "year:y5"],
		"examBoards": ["Kent"]
	}]`)

	qs := Normalize(data, SubjectMaths)
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	q := qs[0]
	if q.ID != "m-001" || q.Subject != SubjectMaths || q.AnswerIndex != 1 {
		t.Errorf("unexpected question: %+v", q)
	}
	if got := TagValue(q.Tags, "topic"); got != "arithmetic" {
		t.Errorf("topic = %q", got)
	}
}

func TestNormalize_CoercesNumericID(t *testing.T) {
	data := []byte(`[{"id": 42, "stem": "Pick one", "choices": ["a", "b"], "answerIndex": 0}]`)
	qs := Normalize(data, SubjectEnglish)
	if len(qs) != 1 || qs[0].ID != "42" {
		t.Fatalf("expected id coerced to \"42\", got %v", qs)
	}
}

func TestNormalize_DefaultsBoards(t *testing.T) {
	data := []byte(`[{"id": "x", "stem": "Pick one", "choices": ["a", "b"], "answerIndex": 1}]`)
	qs := Normalize(data, SubjectVR)
	if len(qs) != 1 {
		t.Fatal("expected 1 question")
	}
	if len(qs[0].ExamBoards) != 1 || qs[0].ExamBoards[0] != "Generic" {
		t.Errorf("boards = %v, want [Generic]", qs[0].ExamBoards)
	}
}

func TestNormalize_DropsMalformedRecords(t *testing.T) {
	data := []byte(`[
		{"id": "ok", "stem": "Good", "choices": ["a", "b"], "answerIndex": 0},
		{"id": "no-stem", "choices": ["a", "b"], "answerIndex": 0},
		{"id": "oob", "stem": "Bad index", "choices": ["a", "b"], "answerIndex": 5},
		{"id": "one-choice", "stem": "Too few", "choices": ["a"], "answerIndex": 0},
		"not an object"
	]`)

	qs := Normalize(data, SubjectMaths)
	if len(qs) != 1 || qs[0].ID != "ok" {
		t.Errorf("expected only the valid record, got %v", qs)
	}
}

func TestNormalize_NonArrayPayload(t *testing.T) {
	for _, payload := range []string{`{"oops": true}`, `null`, `not json`, ``} {
		if qs := Normalize([]byte(payload), SubjectMaths); len(qs) != 0 {
			t.Errorf("payload %q: expected empty, got %v", payload, qs)
		}
	}
}

func TestNormalizePassages(t *testing.T) {
	data := []byte(`[{
		"id": "p1",
		"title": "The Lighthouse",
		"body": "The keeper climbed the spiral stairs every evening...",
		"questions": [
			{"id": "p1-q1", "stem": "When did the keeper climb?", "choices": ["Morning", "Evening", "Noon", "Night"], "answerIndex": 1},
			{"id": "p1-q2", "stem": "", "choices": ["a", "b"], "answerIndex": 0}
		]
	}, {
		"id": "p2",
		"body": "",
		"questions": []
	}]`)

	ps := NormalizePassages(data)
	if len(ps) != 1 {
		t.Fatalf("expected 1 passage, got %d", len(ps))
	}
	if len(ps[0].Questions) != 1 {
		t.Errorf("expected 1 surviving sub-question, got %d", len(ps[0].Questions))
	}
	if ps[0].Questions[0].Subject != SubjectComprehension {
		t.Error("sub-questions should carry the comprehension subject")
	}
}

package question

import (
	"reflect"
	"testing"
)

func q(id, stem string) Question {
	return Question{ID: id, Subject: SubjectMaths, Stem: stem, Choices: []string{"1", "2", "3", "4"}}
}

func TestDedupe_DropsRepeatedIDs(t *testing.T) {
	in := []Question{q("a", "What is 2 + 2?"), q("a", "What is 3 + 3?"), q("b", "What is 4 + 4?")}
	out := Dedupe(in)

	if len(out) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(out))
	}
	if out[0].ID != "a" || out[1].ID != "b" {
		t.Errorf("order not preserved: %v, %v", out[0].ID, out[1].ID)
	}
}

func TestDedupe_DropsNearDuplicateStems(t *testing.T) {
	in := []Question{
		q("a", "What is 2 + 2?"),
		q("b", "what is  2+2?"), // same stem modulo case and spacing
		q("c", "What is 2 + 3?"),
	}
	out := Dedupe(in)

	if len(out) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(out))
	}
	if out[1].ID != "c" {
		t.Errorf("expected c to survive, got %s", out[1].ID)
	}
}

func TestDedupe_Idempotent(t *testing.T) {
	in := []Question{
		q("a", "First question"),
		q("a", "Second question"),
		q("b", "first  QUESTION"),
		q("c", "Third question"),
	}
	once := Dedupe(in)
	twice := Dedupe(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("dedupe not idempotent: %v vs %v", once, twice)
	}

	seenID := map[string]bool{}
	seenFP := map[string]bool{}
	for _, item := range once {
		if seenID[item.ID] {
			t.Errorf("duplicate id survived: %s", item.ID)
		}
		fp := Fingerprint(item.Stem)
		if seenFP[fp] {
			t.Errorf("duplicate fingerprint survived: %s", item.Stem)
		}
		seenID[item.ID] = true
		seenFP[fp] = true
	}
}

func TestFingerprint_IgnoresCaseAndSpace(t *testing.T) {
	a := Fingerprint("What is 3/4 of 20?")
	b := Fingerprint("  what IS 3/4of 20?  ")
	if a != b {
		t.Errorf("fingerprints differ: %s vs %s", a, b)
	}

	// Digits are significant.
	c := Fingerprint("What is 3/4 of 24?")
	if a == c {
		t.Error("fingerprint collapsed distinct numbers")
	}
}

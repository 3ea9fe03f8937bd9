package writing

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func TestAssess_Counts(t *testing.T) {
	fb := Assess("The storm came suddenly. However, we were ready! Were we, though?")

	if fb.Sentences != 3 {
		t.Errorf("sentences = %d, want 3", fb.Sentences)
	}
	if fb.Words != 11 {
		t.Errorf("words = %d, want 11", fb.Words)
	}
	if len(fb.Connectives) != 2 { // "suddenly" and "however"
		t.Errorf("connectives = %v", fb.Connectives)
	}
}

func TestAssess_WeakWords(t *testing.T) {
	fb := Assess("It was a nice day and we had a good time.")
	if len(fb.WeakWords) != 2 {
		t.Errorf("weak words = %v, want [nice good]", fb.WeakWords)
	}
}

func TestAssess_EmptyText(t *testing.T) {
	fb := Assess("")
	if fb.Words != 0 || fb.Sentences != 0 {
		t.Errorf("empty text should zero out: %+v", fb)
	}
	if fb.Encouragement == "" {
		t.Error("empty text still deserves encouragement")
	}
}

func TestAssess_VarietyRatio(t *testing.T) {
	fb := Assess("cat cat cat dog")
	if fb.UniqueWords != 2 {
		t.Errorf("unique = %d, want 2", fb.UniqueWords)
	}
	if fb.Variety != 0.5 {
		t.Errorf("variety = %f, want 0.5", fb.Variety)
	}
}

func TestAssess_BandedEncouragement(t *testing.T) {
	short := Assess("One sentence only.")
	long := Assess(strings.Repeat("different words keep arriving here today because writing flows onward, ", 30))
	if short.Encouragement == long.Encouragement {
		t.Error("bands should produce different messages")
	}
}

func TestPick_PrefersCurated(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	curated := []string{"Only prompt."}
	if got := Pick(rng, curated); got != "Only prompt." {
		t.Errorf("got %q", got)
	}
	if got := Pick(rng, nil); got == "" {
		t.Error("fallback bank should never be empty")
	}
}

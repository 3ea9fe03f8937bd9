package pool

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/saanvi/preppal/internal/question"
	"github.com/saanvi/preppal/internal/questgen"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func profileY4() question.Profile {
	return question.Profile{Grade: question.GradeY4, Boards: []string{"Kent", "Bexley"}, AllowHarder: false}
}

func mathsItem(id, topic string) question.Question {
	return question.Question{
		ID:      id,
		Subject: question.SubjectMaths,
		Stem:    "Stem for " + id,
		Choices: []string{"1", "2", "3", "4"},
		Tags:    []string{"topic:" + topic},
	}
}

func topicPool(topic string, n int) []question.Question {
	qs := make([]question.Question, n)
	for i := range qs {
		qs[i] = mathsItem(fmt.Sprintf("%s-%d", topic, i), topic)
	}
	return qs
}

func TestBuild_QuotaSatisfaction(t *testing.T) {
	var curated []question.Question
	for _, q := range QuotasFor(question.SubjectMaths) {
		curated = append(curated, topicPool(q.Topic, q.Count+3)...)
	}

	a := New(testRNG(1))
	got := a.Build(question.SubjectMaths, curated, nil, profileY4(), DefaultTarget)

	if len(got) != DefaultTarget {
		t.Fatalf("expected %d items, got %d", DefaultTarget, len(got))
	}

	byTopic := map[string]int{}
	for _, q := range got {
		byTopic[question.TagValue(q.Tags, "topic")]++
	}
	for _, quota := range QuotasFor(question.SubjectMaths) {
		if byTopic[quota.Topic] > quota.Count {
			t.Errorf("topic %s: drew %d, quota %d", quota.Topic, byTopic[quota.Topic], quota.Count)
		}
	}
}

func TestBuild_TopUpIgnoresQuotas(t *testing.T) {
	// Only arithmetic items exist; quotas for the other topics under-fill
	// and the shortfall must be topped up from arithmetic anyway.
	curated := topicPool("arithmetic", 20)

	a := New(testRNG(2))
	got := a.Build(question.SubjectMaths, curated, nil, profileY4(), DefaultTarget)

	if len(got) != DefaultTarget {
		t.Fatalf("expected %d items after top-up, got %d", DefaultTarget, len(got))
	}
}

func TestBuild_GeneratorOnlyFallback(t *testing.T) {
	// Curated fetch failed, generated items fill the session
	// and no hard item appears under a harder=false profile.
	gen := questgen.ForSubject(question.SubjectMaths)
	rng := testRNG(3)
	generated := gen.Generate(rng, profileY4(), 40)

	a := New(rng)
	got := a.Build(question.SubjectMaths, nil, generated, profileY4(), DefaultTarget)

	if len(got) != DefaultTarget {
		t.Fatalf("expected %d generator-only items, got %d", DefaultTarget, len(got))
	}
	for _, q := range got {
		if question.HasTag(q.Tags, "difficulty:hard") {
			t.Errorf("hard item served to harder=false profile: %q", q.Stem)
		}
	}
}

func TestBuild_RecordsRecency(t *testing.T) {
	curated := topicPool("arithmetic", 30)
	a := New(testRNG(4))
	got := a.Build(question.SubjectMaths, curated, nil, profileY4(), 10)

	for _, q := range got {
		if !a.Recent().Contains(q.ID) {
			t.Errorf("served id %s not recorded in recency buffer", q.ID)
		}
	}

	// A second build avoids repeats while other items remain.
	second := a.Build(question.SubjectMaths, curated, nil, profileY4(), 10)
	firstIDs := map[string]bool{}
	for _, q := range got {
		firstIDs[q.ID] = true
	}
	repeats := 0
	for _, q := range second {
		if firstIDs[q.ID] {
			repeats++
		}
	}
	if repeats != 0 {
		t.Errorf("%d repeats despite 10 unserved items remaining", repeats)
	}
}

func TestBuild_ExhaustedPoolReadmitsRecent(t *testing.T) {
	// A 4-item pool, target 4. The second build has no fresh
	// items left and must still return 4 rather than fewer.
	curated := topicPool("arithmetic", 4)
	a := New(testRNG(5))

	first := a.Build(question.SubjectMaths, curated, nil, profileY4(), 4)
	if len(first) != 4 {
		t.Fatalf("first build: expected 4, got %d", len(first))
	}
	for _, q := range first {
		if !a.Recent().Contains(q.ID) {
			t.Fatalf("id %s missing from recency buffer", q.ID)
		}
	}

	second := a.Build(question.SubjectMaths, curated, nil, profileY4(), 4)
	if len(second) != 4 {
		t.Errorf("second build: expected 4 despite recency, got %d", len(second))
	}
}

func TestBuild_DeduplicatesAcrossSources(t *testing.T) {
	curated := []question.Question{mathsItem("c-1", "arithmetic")}
	duplicate := mathsItem("g-1", "arithmetic")
	duplicate.Stem = "stem   for C-1" // same fingerprint as c-1
	generated := []question.Question{duplicate, mathsItem("g-2", "arithmetic")}

	a := New(testRNG(6))
	got := a.Build(question.SubjectMaths, curated, generated, profileY4(), 10)

	if len(got) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(got))
	}
	for _, q := range got {
		if q.ID == "g-1" {
			t.Error("near-duplicate stem survived the merge")
		}
	}
}

func TestBuild_ShortPoolIsNotAnError(t *testing.T) {
	curated := topicPool("arithmetic", 3)
	a := New(testRNG(7))
	got := a.Build(question.SubjectMaths, curated, nil, profileY4(), 12)
	if len(got) != 3 {
		t.Errorf("expected the 3 available items, got %d", len(got))
	}
}

func TestBuild_NoQuotaSubjectShuffles(t *testing.T) {
	var curated []question.Question
	for i := 0; i < 20; i++ {
		q := mathsItem(fmt.Sprintf("vr-%d", i), "codes")
		q.Subject = question.SubjectVR
		curated = append(curated, q)
	}

	a := New(testRNG(8))
	got := a.Build(question.SubjectVR, curated, nil, profileY4(), 10)
	if len(got) != 10 {
		t.Fatalf("expected 10, got %d", len(got))
	}
}

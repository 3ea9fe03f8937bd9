// Package pool assembles the question set for one session: it merges
// curated and generated candidates, filters them against the learner
// profile and recency buffer, deduplicates, draws per-topic quotas and
// tops up any shortfall.
package pool

import (
	"math/rand/v2"

	"github.com/saanvi/preppal/internal/question"
)

// DefaultTarget is the nominal question count per quiz session.
const DefaultTarget = 12

// Assembler builds session pools. It owns the recency buffer that
// biases consecutive builds away from repeats; the buffer lives only
// for the current process.
type Assembler struct {
	rng    *rand.Rand
	recent *question.RecentBuffer
}

// New creates an Assembler around the given randomness source.
func New(rng *rand.Rand) *Assembler {
	return &Assembler{
		rng:    rng,
		recent: question.NewRecentBuffer(question.RecentBufferCap),
	}
}

// Recent exposes the recency buffer, mainly for tests.
func (a *Assembler) Recent() *question.RecentBuffer {
	return a.recent
}

// Build assembles up to target questions for the subject.
//
// The pipeline: merge curated+generated, filter by profile, dedupe,
// draw per-topic quotas (or shuffle when the subject has no quota
// table), top up shortfall from any remaining eligible items, and as a
// last resort re-admit recently served items so an otherwise-exhausted
// pool still fills the session. Returned ids are recorded in the
// recency buffer. An empty curated slice is not an error; the build
// simply degrades to generator-only output, and a pool smaller than
// target yields a shorter session rather than a failure.
func (a *Assembler) Build(subject question.Subject, curated, generated []question.Question, profile question.Profile, target int) []question.Question {
	if target <= 0 {
		return nil
	}

	candidates := make([]question.Question, 0, len(curated)+len(generated))
	candidates = append(candidates, curated...)
	candidates = append(candidates, generated...)

	// The relaxed pool ignores recency; the eligible pool is its
	// recency-filtered subset. Deduping once up front keeps the
	// fingerprint sets consistent across the two phases.
	relaxed := question.Dedupe(question.FilterEligible(candidates, profile, nil))
	eligible := make([]question.Question, 0, len(relaxed))
	for _, q := range relaxed {
		if !a.recent.Contains(q.ID) {
			eligible = append(eligible, q)
		}
	}

	var selected []question.Question
	if quotas := QuotasFor(subject); len(quotas) > 0 {
		parts := partitionByTopic(eligible)
		for _, quota := range quotas {
			selected = append(selected, a.sample(parts[quota.Topic], quota.Count)...)
		}
	} else {
		selected = a.sample(eligible, len(eligible))
	}

	// Top up ignoring quota boundaries.
	if len(selected) < target {
		selected = append(selected, a.sample(excluding(eligible, selected), target-len(selected))...)
	}

	// Pool exhausted: recency stops mattering, repeats beat a short session.
	if len(selected) < target {
		selected = append(selected, a.sample(excluding(relaxed, selected), target-len(selected))...)
	}

	if len(selected) > target {
		selected = selected[:target]
	}

	ids := make([]string, len(selected))
	for i, q := range selected {
		ids[i] = q.ID
	}
	a.recent.Remember(ids...)

	return selected
}

// sample draws up to k items without replacement. A partition smaller
// than k yields the whole partition.
func (a *Assembler) sample(qs []question.Question, k int) []question.Question {
	if k <= 0 || len(qs) == 0 {
		return nil
	}
	shuffled := append([]question.Question(nil), qs...)
	a.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if k > len(shuffled) {
		k = len(shuffled)
	}
	return shuffled[:k]
}

func partitionByTopic(qs []question.Question) map[string][]question.Question {
	parts := make(map[string][]question.Question)
	for _, q := range qs {
		topic := question.TagValue(q.Tags, "topic")
		parts[topic] = append(parts[topic], q)
	}
	return parts
}

// excluding returns the items of qs whose ids are not already in chosen.
func excluding(qs, chosen []question.Question) []question.Question {
	taken := make(map[string]struct{}, len(chosen))
	for _, q := range chosen {
		taken[q.ID] = struct{}{}
	}
	out := make([]question.Question, 0, len(qs))
	for _, q := range qs {
		if _, ok := taken[q.ID]; !ok {
			out = append(out, q)
		}
	}
	return out
}

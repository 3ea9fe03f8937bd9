package pool

import "github.com/saanvi/preppal/internal/question"

// Quota fixes the maximum number of items drawn from one topic
// partition when assembling a subject's question set.
type Quota struct {
	Topic string
	Count int
}

// quotaTables defines the per-topic spread for subjects that have one.
// Subjects without an entry draw uniformly from the whole pool.
var quotaTables = map[question.Subject][]Quota{
	question.SubjectMaths: {
		{Topic: "arithmetic", Count: 4},
		{Topic: "fractions", Count: 3},
		{Topic: "percentages", Count: 2},
		{Topic: "sequences", Count: 2},
		{Topic: "measure", Count: 1},
	},
	question.SubjectEnglish: {
		{Topic: "vocabulary", Count: 5},
		{Topic: "grammar", Count: 4},
		{Topic: "spelling", Count: 3},
	},
}

// QuotasFor returns the quota table for a subject, or nil when the
// subject draws without topic quotas.
func QuotasFor(s question.Subject) []Quota {
	return quotaTables[s]
}

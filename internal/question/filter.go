package question

// Eligible reports whether a question may be served under the given
// profile. A question passes when its year tag is absent or matches the
// profile's grade, its board set is empty or intersects the accepted
// boards, its difficulty is not "hard" unless harder items are allowed,
// and its id is not in the recent set. Pure; never mutates inputs.
func Eligible(q Question, p Profile, recent map[string]struct{}) bool {
	if y := TagValue(q.Tags, "year"); y != "" && y != string(p.Grade) {
		return false
	}
	if !p.AcceptsBoard(q.ExamBoards) {
		return false
	}
	if TagValue(q.Tags, "difficulty") == "hard" && !p.AllowHarder {
		return false
	}
	if recent != nil {
		if _, served := recent[q.ID]; served {
			return false
		}
	}
	return true
}

// FilterEligible returns the order-preserved subset of qs passing Eligible.
func FilterEligible(qs []Question, p Profile, recent map[string]struct{}) []Question {
	out := make([]Question, 0, len(qs))
	for _, q := range qs {
		if Eligible(q, p, recent) {
			out = append(out, q)
		}
	}
	return out
}

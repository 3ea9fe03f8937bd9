package question

// Dedupe removes duplicate questions from a candidate list in a single
// stable pass. An item is dropped when its id was already seen or when
// its stem fingerprint was already seen. Both checks grow the same
// seen-sets as the pass proceeds, so curated/generated collisions are
// caught regardless of which side came first.
func Dedupe(qs []Question) []Question {
	seenID := make(map[string]struct{}, len(qs))
	seenFP := make(map[string]struct{}, len(qs))

	out := make([]Question, 0, len(qs))
	for _, q := range qs {
		if _, dup := seenID[q.ID]; dup {
			continue
		}
		fp := Fingerprint(q.Stem)
		if _, dup := seenFP[fp]; dup {
			continue
		}
		seenID[q.ID] = struct{}{}
		seenFP[fp] = struct{}{}
		out = append(out, q)
	}
	return out
}

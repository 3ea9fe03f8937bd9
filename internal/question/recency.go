package question

// RecentBufferCap is the default capacity of the recency buffer.
const RecentBufferCap = 120

// RecentBuffer is a bounded FIFO set of recently served question ids.
// It biases the next pool build away from repeats and lives only for
// the current process; it is never persisted.
type RecentBuffer struct {
	cap   int
	order []string
	set   map[string]struct{}
}

// NewRecentBuffer creates a buffer with the given capacity.
// A capacity of zero or less falls back to RecentBufferCap.
func NewRecentBuffer(capacity int) *RecentBuffer {
	if capacity <= 0 {
		capacity = RecentBufferCap
	}
	return &RecentBuffer{
		cap: capacity,
		set: make(map[string]struct{}, capacity),
	}
}

// Remember records served ids, evicting the oldest entries once the
// buffer exceeds its capacity. Re-remembering an id refreshes it.
func (b *RecentBuffer) Remember(ids ...string) {
	for _, id := range ids {
		if _, ok := b.set[id]; ok {
			// Move to the back so eviction order tracks last-served.
			for i, existing := range b.order {
				if existing == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		} else {
			b.set[id] = struct{}{}
		}
		b.order = append(b.order, id)

		for len(b.order) > b.cap {
			oldest := b.order[0]
			b.order = b.order[1:]
			delete(b.set, oldest)
		}
	}
}

// Contains reports whether the id was recently served.
func (b *RecentBuffer) Contains(id string) bool {
	_, ok := b.set[id]
	return ok
}

// IDs returns the recent set keyed for Eligible lookups.
func (b *RecentBuffer) IDs() map[string]struct{} {
	return b.set
}

// Len returns the number of remembered ids.
func (b *RecentBuffer) Len() int {
	return len(b.order)
}

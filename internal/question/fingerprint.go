package question

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// Fingerprint computes a cheap normalized hash of a question stem, used
// to catch near-duplicate items that carry different ids. Case and
// whitespace are ignored; everything else (digits included) is
// significant, so curated items that intentionally differ only in
// numbers are kept apart.
func Fingerprint(stem string) string {
	h := fnv.New64a()
	for _, r := range stem {
		if unicode.IsSpace(r) {
			continue
		}
		h.Write([]byte(strings.ToLower(string(r))))
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

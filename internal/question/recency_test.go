package question

import (
	"fmt"
	"testing"
)

func TestRecentBuffer_FIFOEviction(t *testing.T) {
	b := NewRecentBuffer(3)
	b.Remember("a", "b", "c")

	if b.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", b.Len())
	}

	b.Remember("d")
	if b.Contains("a") {
		t.Error("oldest entry should have been evicted")
	}
	for _, id := range []string{"b", "c", "d"} {
		if !b.Contains(id) {
			t.Errorf("expected %s to remain", id)
		}
	}
}

func TestRecentBuffer_RefreshMovesToBack(t *testing.T) {
	b := NewRecentBuffer(3)
	b.Remember("a", "b", "c")
	b.Remember("a") // refresh: a is now newest
	b.Remember("d") // evicts b, not a

	if !b.Contains("a") {
		t.Error("refreshed entry should not be evicted")
	}
	if b.Contains("b") {
		t.Error("b should have been evicted")
	}
}

func TestRecentBuffer_CapDefault(t *testing.T) {
	b := NewRecentBuffer(0)
	for i := 0; i < RecentBufferCap+10; i++ {
		b.Remember(fmt.Sprintf("q%d", i))
	}
	if b.Len() != RecentBufferCap {
		t.Errorf("expected len %d, got %d", RecentBufferCap, b.Len())
	}
}

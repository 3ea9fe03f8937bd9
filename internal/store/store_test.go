package store

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestKV_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "settings", `{"grade":"y5"}`); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get(ctx, "settings")
	if err != nil || !ok || v != `{"grade":"y5"}` {
		t.Fatalf("get after set: v=%q ok=%v err=%v", v, ok, err)
	}

	// Overwrite.
	if err := s.Set(ctx, "settings", `{"grade":"y6"}`); err != nil {
		t.Fatal(err)
	}
	v, _, _ = s.Get(ctx, "settings")
	if v != `{"grade":"y6"}` {
		t.Errorf("overwrite failed: %q", v)
	}

	if err := s.Delete(ctx, "settings"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, "settings"); ok {
		t.Error("key survived delete")
	}
}

func TestSessionEvents_Stats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	events := []SessionEvent{
		{SessionID: "s1", Mode: "quiz", Subject: "maths", Questions: 12, Correct: 9, DurationSecs: 300},
		{SessionID: "s2", Mode: "quiz", Subject: "maths", Questions: 10, Correct: 7, DurationSecs: 250},
		{SessionID: "s3", Mode: "quiz", Subject: "vr", Questions: 8, Correct: 8, DurationSecs: 200},
	}
	for _, ev := range events {
		if err := s.AppendSessionEvent(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(stats))
	}
	maths := stats[0]
	if maths.Subject != "maths" || maths.Sessions != 2 || maths.Questions != 22 || maths.Correct != 16 || maths.DurationSecs != 550 {
		t.Errorf("maths stats wrong: %+v", maths)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Set(ctx, "k", "v")
	s.AppendSessionEvent(ctx, SessionEvent{SessionID: "s1", Mode: "quiz", Subject: "maths"})

	if err := s.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("kv survived reset")
	}
	stats, _ := s.Stats(ctx)
	if len(stats) != 0 {
		t.Error("events survived reset")
	}
}

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/saanvi/preppal/internal/question"
	"github.com/saanvi/preppal/internal/usage"
)

type fakeKV struct {
	m map[string]string
}

func newFakeKV() *fakeKV { return &fakeKV{m: make(map[string]string)} }

func (f *fakeKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := f.m[key]
	return v, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	f.m[key] = value
	return nil
}

func testSettings() usage.Settings {
	s := usage.DefaultSettings()
	s.QuizSecs = 600
	s.WritingSecs = 900
	s.DailySecs = 1800
	return s
}

func testEngine(t *testing.T) (*Engine, *usage.Ledger) {
	t.Helper()
	clock := func() time.Time { return time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local) }
	ledger := usage.NewLedger(newFakeKV(), clock)
	return NewEngine(ledger, testSettings()), ledger
}

func quizQuestions(n int) []question.Question {
	qs := make([]question.Question, n)
	for i := range qs {
		qs[i] = question.Question{
			ID:          string(rune('a' + i)),
			Subject:     question.SubjectMaths,
			Stem:        "stem",
			Choices:     []string{"w", "x", "y", "z"},
			AnswerIndex: i % 4,
		}
	}
	return qs
}

func TestStartQuiz_ClampsToRemainingBudget(t *testing.T) {
	// Fixed budget 600, only 200 left today.
	e, ledger := testEngine(t)
	ctx := context.Background()
	ledger.Add(ctx, 1600)

	if err := e.StartQuiz(ctx, question.SubjectMaths, quizQuestions(4)); err != nil {
		t.Fatal(err)
	}
	if e.SecondsLeft() != 200 {
		t.Errorf("secondsLeft = %d, want 200", e.SecondsLeft())
	}
}

func TestStartQuiz_RefusedAtZeroBudget(t *testing.T) {
	e, ledger := testEngine(t)
	ctx := context.Background()
	ledger.Add(ctx, 1800)

	err := e.StartQuiz(ctx, question.SubjectMaths, quizQuestions(4))
	if !errors.Is(err, ErrNoTimeLeft) {
		t.Fatalf("expected ErrNoTimeLeft, got %v", err)
	}
	if e.Mode() != ModeMenu {
		t.Errorf("mode = %s, want menu", e.Mode())
	}
}

func TestTimerExpiry_CommitsExactlyElapsed(t *testing.T) {
	// 200s budget, 200 ticks, ledger rises by exactly 200.
	e, ledger := testEngine(t)
	ctx := context.Background()
	ledger.Add(ctx, 1600)
	before := ledger.SecondsUsed(ctx)

	e.StartQuiz(ctx, question.SubjectMaths, quizQuestions(4))
	for i := 0; i < 200; i++ {
		e.Tick(ctx)
	}

	if e.Mode() != ModeResults {
		t.Fatalf("mode = %s, want results", e.Mode())
	}
	if got := ledger.SecondsUsed(ctx) - before; got != 200 {
		t.Errorf("ledger delta = %d, want 200", got)
	}

	// Stale ticks after the transition must not double-commit.
	for i := 0; i < 50; i++ {
		e.Tick(ctx)
	}
	if got := ledger.SecondsUsed(ctx) - before; got != 200 {
		t.Errorf("stale ticks changed the ledger: delta %d", got)
	}
}

func TestPause_FreezesCountdown(t *testing.T) {
	// 50 ticks while paused leave secondsLeft unchanged.
	e, _ := testEngine(t)
	ctx := context.Background()

	e.StartQuiz(ctx, question.SubjectMaths, quizQuestions(4))
	for i := 0; i < 10; i++ {
		e.Tick(ctx)
	}
	e.Pause()
	frozen := e.SecondsLeft()
	for i := 0; i < 50; i++ {
		e.Tick(ctx)
	}
	if e.SecondsLeft() != frozen {
		t.Errorf("paused ticks decremented: %d -> %d", frozen, e.SecondsLeft())
	}

	e.Resume()
	e.Tick(ctx)
	if e.SecondsLeft() != frozen-1 {
		t.Errorf("resume did not continue from %d: got %d", frozen, e.SecondsLeft())
	}
}

func TestLastAnswer_FinishesAndCommitsOnce(t *testing.T) {
	e, ledger := testEngine(t)
	ctx := context.Background()
	before := ledger.SecondsUsed(ctx)

	qs := quizQuestions(3)
	e.StartQuiz(ctx, question.SubjectMaths, qs)
	for i := 0; i < 120; i++ {
		e.Tick(ctx)
	}

	for i := range qs {
		e.Answer(ctx, qs[i].AnswerIndex)
	}

	if e.Mode() != ModeResults {
		t.Fatalf("mode = %s, want results", e.Mode())
	}
	if e.Score() != 3 {
		t.Errorf("score = %d, want 3", e.Score())
	}
	if got := ledger.SecondsUsed(ctx) - before; got != 120 {
		t.Errorf("ledger delta = %d, want 120", got)
	}

	// EndEarly after finishing must not re-commit.
	e.EndEarly(ctx)
	if got := ledger.SecondsUsed(ctx) - before; got != 120 {
		t.Errorf("double commit: delta %d", got)
	}
}

func TestEndEarly_CommitsActualElapsed(t *testing.T) {
	e, ledger := testEngine(t)
	ctx := context.Background()
	before := ledger.SecondsUsed(ctx)

	e.StartQuiz(ctx, question.SubjectMaths, quizQuestions(4))
	for i := 0; i < 37; i++ {
		e.Tick(ctx)
	}
	e.EndEarly(ctx)

	if e.Mode() != ModeResults {
		t.Fatalf("mode = %s, want results", e.Mode())
	}
	if got := ledger.SecondsUsed(ctx) - before; got != 37 {
		t.Errorf("ledger delta = %d, want 37", got)
	}
}

func TestAnswerLog_RecordsCorrectness(t *testing.T) {
	e, _ := testEngine(t)
	ctx := context.Background()

	qs := quizQuestions(2)
	e.StartQuiz(ctx, question.SubjectMaths, qs)
	e.Answer(ctx, qs[0].AnswerIndex)   // right
	e.Answer(ctx, qs[1].AnswerIndex+1) // wrong

	answers := e.Answers()
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}
	if !answers[0].Correct || answers[1].Correct {
		t.Errorf("correctness log wrong: %+v", answers)
	}
}

func TestEmptyQuiz_RendersEmptyResults(t *testing.T) {
	e, _ := testEngine(t)
	ctx := context.Background()

	if err := e.StartQuiz(ctx, question.SubjectVR, nil); err != nil {
		t.Fatal(err)
	}
	// First interaction with no questions lands in results, not a panic.
	e.Answer(ctx, 0)
	if e.Mode() != ModeResults {
		t.Errorf("mode = %s, want results", e.Mode())
	}
	if len(e.Answers()) != 0 {
		t.Errorf("phantom answers: %v", e.Answers())
	}
}

func TestWritingSession_Flow(t *testing.T) {
	e, ledger := testEngine(t)
	ctx := context.Background()
	before := ledger.SecondsUsed(ctx)

	if err := e.StartWriting(ctx, "Describe a stormy night."); err != nil {
		t.Fatal(err)
	}
	if e.Mode() != ModeWriting {
		t.Fatalf("mode = %s, want writing", e.Mode())
	}
	if e.SecondsLeft() != 900 {
		t.Errorf("secondsLeft = %d, want 900", e.SecondsLeft())
	}

	for i := 0; i < 300; i++ {
		e.Tick(ctx)
	}
	e.SetWrittenText("The rain hammered the windows all night long.")
	e.EndEarly(ctx)

	if e.Mode() != ModeWritingResults {
		t.Fatalf("mode = %s, want writingResults", e.Mode())
	}
	if got := ledger.SecondsUsed(ctx) - before; got != 300 {
		t.Errorf("ledger delta = %d, want 300", got)
	}
	if e.WrittenText() == "" {
		t.Error("written text lost")
	}
}

func TestSecondSessionSeesCommittedTime(t *testing.T) {
	e, ledger := testEngine(t)
	ctx := context.Background()

	e.StartQuiz(ctx, question.SubjectMaths, quizQuestions(4))
	for i := 0; i < 600; i++ {
		e.Tick(ctx)
	}
	if e.Mode() != ModeResults {
		t.Fatal("first session should have expired")
	}

	// Commit is visible before the next session starts: 1800-600=1200
	// remaining, clamped against the 600s fixed length.
	e.BackToMenu(ctx)
	if err := e.StartQuiz(ctx, question.SubjectEnglish, quizQuestions(4)); err != nil {
		t.Fatal(err)
	}
	if e.SecondsLeft() != 600 {
		t.Errorf("secondsLeft = %d, want 600", e.SecondsLeft())
	}
	if ledger.SecondsUsed(ctx) != 600 {
		t.Errorf("ledger = %d, want 600", ledger.SecondsUsed(ctx))
	}
}

func TestStartWhileActiveRefused(t *testing.T) {
	e, _ := testEngine(t)
	ctx := context.Background()

	e.StartQuiz(ctx, question.SubjectMaths, quizQuestions(4))
	if err := e.StartQuiz(ctx, question.SubjectVR, quizQuestions(4)); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
}

func TestComprehensionSession_UsesPassageQuestions(t *testing.T) {
	e, _ := testEngine(t)
	ctx := context.Background()

	p := question.Passage{
		ID:   "p1",
		Body: "Once upon a time...",
		Questions: []question.Question{
			{ID: "p1-q1", Subject: question.SubjectComprehension, Stem: "s", Choices: []string{"a", "b"}, AnswerIndex: 0},
		},
	}
	if err := e.StartComprehension(ctx, p); err != nil {
		t.Fatal(err)
	}
	if e.Passage() == nil || len(e.Questions()) != 1 {
		t.Fatal("passage questions not materialized")
	}
	e.Answer(ctx, 0)
	if e.Mode() != ModeResults {
		t.Errorf("mode = %s, want results", e.Mode())
	}
}

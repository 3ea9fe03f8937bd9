// Package session drives a timed practice session as a small state
// machine. The engine is tick-driven: the host schedules a cooperative
// one-second tick while the session is active and unpaused, and the
// engine owns every transition and the exactly-once commit of elapsed
// time to the daily usage ledger.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/saanvi/preppal/internal/question"
	"github.com/saanvi/preppal/internal/usage"
)

// Mode is the state machine's current mode.
type Mode string

const (
	ModeMenu           Mode = "menu"
	ModeQuiz           Mode = "quiz"
	ModeResults        Mode = "results"
	ModeWriting        Mode = "writing"
	ModeWritingResults Mode = "writingResults"
)

// ErrNoTimeLeft is returned when a session cannot start because the
// daily allowance is exhausted.
var ErrNoTimeLeft = errors.New("daily time allowance used up")

// ErrBusy is returned when a session is started while another is active.
var ErrBusy = errors.New("a session is already active")

// Answer records one answered question.
type Answer struct {
	QuestionID string
	Choice     int
	Correct    bool
}

// Engine is the session state machine. It is not safe for concurrent
// use; the single-threaded program loop is its only caller.
type Engine struct {
	ledger   *usage.Ledger
	settings usage.Settings

	mode      Mode
	sessionID string
	subject   question.Subject

	questions []question.Question
	passage   *question.Passage
	prompt    string
	written   string

	index   int
	answers []Answer

	budgetSecs  int
	secondsLeft int
	paused      bool
	committed   bool
}

// NewEngine creates an engine in menu mode.
func NewEngine(ledger *usage.Ledger, settings usage.Settings) *Engine {
	return &Engine{
		ledger:   ledger,
		settings: settings,
		mode:     ModeMenu,
	}
}

// Mode returns the current mode.
func (e *Engine) Mode() Mode { return e.mode }

// SessionID identifies the current session instance.
func (e *Engine) SessionID() string { return e.sessionID }

// Subject returns the active subject (empty for writing sessions).
func (e *Engine) Subject() question.Subject { return e.subject }

// Questions returns the active question list.
func (e *Engine) Questions() []question.Question { return e.questions }

// Passage returns the comprehension passage, nil outside comprehension
// sessions.
func (e *Engine) Passage() *question.Passage { return e.passage }

// Prompt returns the writing prompt.
func (e *Engine) Prompt() string { return e.prompt }

// Current returns the question awaiting an answer, nil when the list is
// exhausted or empty.
func (e *Engine) Current() *question.Question {
	if e.index < 0 || e.index >= len(e.questions) {
		return nil
	}
	return &e.questions[e.index]
}

// Index returns the zero-based position of the current question.
func (e *Engine) Index() int { return e.index }

// Answers returns the recorded answer log.
func (e *Engine) Answers() []Answer { return e.answers }

// Score returns the count of correct answers.
func (e *Engine) Score() int {
	n := 0
	for _, a := range e.answers {
		if a.Correct {
			n++
		}
	}
	return n
}

// SecondsLeft returns the remaining countdown.
func (e *Engine) SecondsLeft() int { return e.secondsLeft }

// ElapsedSecs returns the consumed part of the session budget.
func (e *Engine) ElapsedSecs() int {
	elapsed := e.budgetSecs - e.secondsLeft
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Paused reports whether the countdown is frozen.
func (e *Engine) Paused() bool { return e.paused }

// start performs the shared entry checks: refuse when busy, clamp the
// budget to min(fixed session length, remaining daily allowance) and
// refuse outright at zero remaining.
func (e *Engine) start(ctx context.Context, fixedSecs int) error {
	if e.mode == ModeQuiz || e.mode == ModeWriting {
		return ErrBusy
	}
	remaining := e.ledger.Remaining(ctx, e.settings.DailySecs)
	if remaining == 0 {
		return ErrNoTimeLeft
	}
	budget := fixedSecs
	if remaining < budget {
		budget = remaining
	}

	e.sessionID = uuid.New().String()
	e.budgetSecs = budget
	e.secondsLeft = budget
	e.paused = false
	e.committed = false
	e.index = 0
	e.answers = nil
	e.questions = nil
	e.passage = nil
	e.prompt = ""
	e.written = ""
	return nil
}

// StartQuiz enters quiz mode with an assembled question list. An empty
// list is accepted; the session simply ends on its first interaction
// with an empty results screen.
func (e *Engine) StartQuiz(ctx context.Context, subject question.Subject, questions []question.Question) error {
	if err := e.start(ctx, e.settings.QuizSecs); err != nil {
		return err
	}
	e.mode = ModeQuiz
	e.subject = subject
	e.questions = questions
	return nil
}

// StartComprehension enters quiz mode over a passage's sub-questions.
func (e *Engine) StartComprehension(ctx context.Context, p question.Passage) error {
	if err := e.start(ctx, e.settings.QuizSecs); err != nil {
		return err
	}
	e.mode = ModeQuiz
	e.subject = question.SubjectComprehension
	e.passage = &p
	e.questions = p.Questions
	return nil
}

// StartWriting enters writing mode with the given prompt.
func (e *Engine) StartWriting(ctx context.Context, prompt string) error {
	if err := e.start(ctx, e.settings.WritingSecs); err != nil {
		return err
	}
	e.mode = ModeWriting
	e.subject = ""
	e.prompt = prompt
	return nil
}

// Tick consumes one second of the countdown. Ticks outside an active
// unpaused session are ignored, so a stale scheduled tick after a
// transition is harmless. Reaching zero forces the results transition
// and commits the elapsed time.
func (e *Engine) Tick(ctx context.Context) {
	if e.mode != ModeQuiz && e.mode != ModeWriting {
		return
	}
	if e.paused {
		return
	}
	if e.secondsLeft > 0 {
		e.secondsLeft--
	}
	if e.secondsLeft == 0 {
		e.finish(ctx)
	}
}

// Pause freezes the countdown without committing usage.
func (e *Engine) Pause() {
	if e.mode == ModeQuiz || e.mode == ModeWriting {
		e.paused = true
	}
}

// Resume continues the countdown from where it stopped.
func (e *Engine) Resume() {
	e.paused = false
}

// Answer records the learner's choice for the current question and
// advances. Answering the final question finishes the session through
// the same commit path as timer expiry. Answers outside quiz mode are
// ignored.
func (e *Engine) Answer(ctx context.Context, choice int) {
	if e.mode != ModeQuiz {
		return
	}
	q := e.Current()
	if q == nil {
		e.finish(ctx)
		return
	}
	e.answers = append(e.answers, Answer{
		QuestionID: q.ID,
		Choice:     choice,
		Correct:    choice == q.AnswerIndex,
	})
	e.index++
	if e.index >= len(e.questions) {
		e.finish(ctx)
	}
}

// EndEarly finishes the session now, committing the smaller actual
// elapsed time.
func (e *Engine) EndEarly(ctx context.Context) {
	if e.mode == ModeQuiz || e.mode == ModeWriting {
		e.finish(ctx)
	}
}

// SetWrittenText stores the writing session's text for feedback.
func (e *Engine) SetWrittenText(text string) {
	e.written = text
}

// WrittenText returns the captured writing text.
func (e *Engine) WrittenText() string { return e.written }

// BackToMenu returns to the menu. Leaving an active session this way
// still commits its elapsed time exactly once.
func (e *Engine) BackToMenu(ctx context.Context) {
	if e.mode == ModeQuiz || e.mode == ModeWriting {
		e.finish(ctx)
	}
	e.mode = ModeMenu
}

// finish is the single commit path: every route out of an active
// session (timer expiry, last answer, end-early, menu escape) lands
// here, and the committed flag guarantees the ledger sees a session's
// elapsed time at most once.
func (e *Engine) finish(ctx context.Context) {
	if !e.committed {
		e.committed = true
		// Usage persistence is best-effort: a failed write never
		// blocks the session from reaching its results screen.
		_ = e.ledger.Add(ctx, e.ElapsedSecs())
	}
	if e.mode == ModeWriting {
		e.mode = ModeWritingResults
		return
	}
	e.mode = ModeResults
}

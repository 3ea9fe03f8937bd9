package quiz

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/saanvi/preppal/internal/dataset"
	"github.com/saanvi/preppal/internal/pool"
	"github.com/saanvi/preppal/internal/question"
	"github.com/saanvi/preppal/internal/questgen"
	"github.com/saanvi/preppal/internal/router"
	"github.com/saanvi/preppal/internal/screen"
	"github.com/saanvi/preppal/internal/screens/results"
	sess "github.com/saanvi/preppal/internal/session"
	"github.com/saanvi/preppal/internal/store"
	"github.com/saanvi/preppal/internal/ui/components"
	"github.com/saanvi/preppal/internal/ui/layout"
	"github.com/saanvi/preppal/internal/usage"

	"math/rand/v2"
)

// QuizScreen runs one timed multiple-choice session, comprehension
// included. It owns the session engine for its lifetime and drives the
// countdown with one-second tick commands.
type QuizScreen struct {
	subject question.Subject
	st      *store.Store
	ledger  *usage.Ledger
	data    *dataset.Client
	asm     *pool.Assembler
	rng     *rand.Rand

	engine  *sess.Engine
	choices components.ChoiceList

	showingFeedback    bool
	showingQuitConfirm bool
	lastQuestion       *question.Question
	lastChoice         int
	lastCorrect        bool

	loading bool
	errMsg  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscInterceptor = (*QuizScreen)(nil)

// New creates a quiz screen for the given subject.
func New(subject question.Subject, st *store.Store, ledger *usage.Ledger, data *dataset.Client, asm *pool.Assembler, rng *rand.Rand) *QuizScreen {
	return &QuizScreen{
		subject: subject,
		st:      st,
		ledger:  ledger,
		data:    data,
		asm:     asm,
		rng:     rng,
		loading: true,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.assemblePool()
}

func (s *QuizScreen) Title() string {
	return s.subject.DisplayName()
}

// WantsEsc keeps Esc routed here while a session is running, so it can
// raise the quit confirmation instead of popping the screen.
func (s *QuizScreen) WantsEsc() bool {
	return s.engine != nil && s.errMsg == ""
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.showingQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.showingFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.engine != nil && s.engine.Paused():
		return []layout.KeyHint{{Key: "P", Description: "Resume"}}
	default:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "P", Description: "Pause"},
			{Key: "Esc", Description: "End"},
		}
	}
}

// assemblePool builds the question pool and starts the session.
func (s *QuizScreen) assemblePool() tea.Cmd {
	subject := s.subject
	st, ledger, data, asm, rng := s.st, s.ledger, s.data, s.asm, s.rng
	return func() tea.Msg {
		ctx := context.Background()
		settings := usage.LoadSettings(ctx, st)
		engine := sess.NewEngine(ledger, settings)

		if subject == question.SubjectComprehension {
			passages := data.Passages(ctx)
			if len(passages) == 0 {
				return poolReadyMsg{Err: errors.New("no reading passages available")}
			}
			p := passages[rng.IntN(len(passages))]
			if err := engine.StartComprehension(ctx, p); err != nil {
				return poolReadyMsg{Err: err}
			}
			return poolReadyMsg{Engine: engine}
		}

		curated := data.Questions(ctx, subject)
		generated := questgen.ForSubject(subject).
			Generate(rng, settings.Profile, pool.DefaultTarget*2)
		qs := asm.Build(subject, curated, generated, settings.Profile, pool.DefaultTarget)
		if len(qs) == 0 {
			return poolReadyMsg{Err: errors.New("no questions available for this subject")}
		}

		if err := engine.StartQuiz(ctx, subject, qs); err != nil {
			return poolReadyMsg{Err: err}
		}
		return poolReadyMsg{Engine: engine}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case poolReadyMsg:
		return s.handlePoolReady(msg)
	case timerTickMsg:
		return s.handleTick(msg)
	case sessionEndMsg:
		return s.handleSessionEnd()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handlePoolReady(msg poolReadyMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		if errors.Is(msg.Err, sess.ErrNoTimeLeft) {
			s.errMsg = "You have used all of today's practice time. Come back tomorrow!"
		} else {
			s.errMsg = msg.Err.Error()
		}
		return s, nil
	}

	s.engine = msg.Engine
	if q := s.engine.Current(); q != nil {
		s.choices = components.NewChoiceList(*q)
	}
	return s, tickCmd(s.engine.SessionID())
}

func (s *QuizScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if s.engine == nil || msg.SessionID != s.engine.SessionID() {
		return s, nil
	}

	s.engine.Tick(context.Background())

	if s.engine.Mode() == sess.ModeResults {
		return s, func() tea.Msg { return sessionEndMsg{} }
	}
	return s, tickCmd(s.engine.SessionID())
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back to the menu.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.loading || s.engine == nil {
		return s, nil
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			s.engine.EndEarly(context.Background())
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if s.showingFeedback {
		s.showingFeedback = false
		if s.engine.Mode() == sess.ModeResults {
			return s, func() tea.Msg { return sessionEndMsg{} }
		}
		if q := s.engine.Current(); q != nil {
			s.choices = components.NewChoiceList(*q)
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "p", "P":
		if s.engine.Paused() {
			s.engine.Resume()
		} else {
			s.engine.Pause()
		}
		return s, nil
	}

	if s.engine.Paused() {
		return s, nil
	}

	var submitted bool
	s.choices, submitted = s.choices.Update(msg)
	if submitted {
		return s.submitAnswer()
	}
	return s, nil
}

// submitAnswer records the highlighted choice and shows feedback.
func (s *QuizScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	q := s.engine.Current()
	if q == nil {
		return s, func() tea.Msg { return sessionEndMsg{} }
	}

	s.lastQuestion = q
	s.lastChoice = s.choices.Selected
	s.lastCorrect = s.choices.Selected == q.AnswerIndex

	s.engine.Answer(context.Background(), s.choices.Selected)
	s.showingFeedback = true
	return s, nil
}

// handleSessionEnd persists the session event and swaps in the results
// screen. Replace (not push) so Esc on results lands on the menu.
func (s *QuizScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	if s.engine == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	e := s.engine
	s.engine = nil // drop stale ticks scheduled before the transition

	ctx := context.Background()
	_ = s.st.AppendSessionEvent(ctx, store.SessionEvent{
		SessionID:    e.SessionID(),
		Mode:         string(sess.ModeQuiz),
		Subject:      string(s.subject),
		Questions:    len(e.Answers()),
		Correct:      e.Score(),
		DurationSecs: e.ElapsedSecs(),
		Timestamp:    time.Now(),
	})

	subject, st, ledger, data, asm, rng := s.subject, s.st, s.ledger, s.data, s.asm, s.rng
	again := func() tea.Cmd {
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: New(subject, st, ledger, data, asm, rng)}
		}
	}
	res := results.New(subject, e.Questions(), e.Answers(), e.ElapsedSecs(), again)

	return s, tea.Batch(
		func() tea.Msg { return screen.UsageChangedMsg{} },
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: res} },
	)
}

// tickCmd schedules the next one-second tick for the given session.
func tickCmd(sessionID string) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{SessionID: sessionID, At: t}
	})
}

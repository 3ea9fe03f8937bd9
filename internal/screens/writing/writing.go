package writing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saanvi/preppal/internal/dataset"
	"github.com/saanvi/preppal/internal/router"
	"github.com/saanvi/preppal/internal/screen"
	"github.com/saanvi/preppal/internal/screens/writingresults"
	sess "github.com/saanvi/preppal/internal/session"
	"github.com/saanvi/preppal/internal/store"
	"github.com/saanvi/preppal/internal/ui/layout"
	"github.com/saanvi/preppal/internal/ui/theme"
	"github.com/saanvi/preppal/internal/usage"
	wr "github.com/saanvi/preppal/internal/writing"

	"math/rand/v2"
)

// promptReadyMsg is sent when a prompt has been picked and the writing
// session started (or refused).
type promptReadyMsg struct {
	Engine *sess.Engine
	Err    error
}

// timerTickMsg drives the countdown, tagged with the session ID so
// stale ticks are dropped.
type timerTickMsg struct {
	SessionID string
	At        time.Time
}

type sessionEndMsg struct{}

// WritingScreen runs one timed free-writing session against a prompt.
type WritingScreen struct {
	st     *store.Store
	ledger *usage.Ledger
	data   *dataset.Client
	rng    *rand.Rand

	engine *sess.Engine
	ta     textarea.Model

	showingQuitConfirm bool
	loading            bool
	errMsg             string
}

var _ screen.Screen = (*WritingScreen)(nil)
var _ screen.KeyHintProvider = (*WritingScreen)(nil)
var _ screen.EscInterceptor = (*WritingScreen)(nil)

// New creates a writing screen.
func New(st *store.Store, ledger *usage.Ledger, data *dataset.Client, rng *rand.Rand) *WritingScreen {
	ta := textarea.New()
	ta.Placeholder = "Start writing here..."
	ta.CharLimit = 0
	return &WritingScreen{
		st:      st,
		ledger:  ledger,
		data:    data,
		rng:     rng,
		ta:      ta,
		loading: true,
	}
}

func (s *WritingScreen) Init() tea.Cmd {
	return tea.Batch(s.startSession(), s.ta.Focus())
}

func (s *WritingScreen) Title() string {
	return "Writing Practice"
}

func (s *WritingScreen) WantsEsc() bool {
	return s.engine != nil && s.errMsg == ""
}

func (s *WritingScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.showingQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Finish"},
			{Key: "N", Description: "Keep writing"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Ctrl+D", Description: "Finish"},
			{Key: "Esc", Description: "Stop"},
		}
	}
}

func (s *WritingScreen) startSession() tea.Cmd {
	st, ledger, data, rng := s.st, s.ledger, s.data, s.rng
	return func() tea.Msg {
		ctx := context.Background()
		settings := usage.LoadSettings(ctx, st)
		engine := sess.NewEngine(ledger, settings)

		prompt := wr.Pick(rng, data.WritingPrompts(ctx))
		if err := engine.StartWriting(ctx, prompt); err != nil {
			return promptReadyMsg{Err: err}
		}
		return promptReadyMsg{Engine: engine}
	}
}

func (s *WritingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case promptReadyMsg:
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
		return s, tickCmd(s.engine.SessionID())

	case timerTickMsg:
		if s.engine == nil || msg.SessionID != s.engine.SessionID() {
			return s, nil
		}
		s.engine.Tick(context.Background())
		if s.engine.Mode() == sess.ModeWritingResults {
			return s, func() tea.Msg { return sessionEndMsg{} }
		}
		return s, tickCmd(s.engine.SessionID())

	case sessionEndMsg:
		return s.handleSessionEnd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *WritingScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

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
			s.finishNow()
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "ctrl+d":
		s.finishNow()
		return s, func() tea.Msg { return sessionEndMsg{} }
	}

	var cmd tea.Cmd
	s.ta, cmd = s.ta.Update(msg)
	s.engine.SetWrittenText(s.ta.Value())
	return s, cmd
}

func (s *WritingScreen) finishNow() {
	s.engine.SetWrittenText(s.ta.Value())
	s.engine.EndEarly(context.Background())
}

func (s *WritingScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	if s.engine == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	e := s.engine
	s.engine = nil

	ctx := context.Background()
	_ = s.st.AppendSessionEvent(ctx, store.SessionEvent{
		SessionID:    e.SessionID(),
		Mode:         string(sess.ModeWriting),
		Subject:      "writing",
		DurationSecs: e.ElapsedSecs(),
		Timestamp:    time.Now(),
	})

	fb := wr.Assess(e.WrittenText())
	res := writingresults.New(e.Prompt(), e.WrittenText(), fb, e.ElapsedSecs())

	return s, tea.Batch(
		func() tea.Msg { return screen.UsageChangedMsg{} },
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: res} },
	)
}

func (s *WritingScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		card := theme.Card.Render(s.errMsg + "\n\nPress any key to go back.")
		return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
	case s.loading || s.engine == nil:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Picking a prompt...")
	case s.showingQuitConfirm:
		card := theme.Card.Render("Finish writing now?\n\nYour piece will be assessed\nas it stands.\n\n[Y] Finish   [N] Keep writing")
		return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
	}

	var b strings.Builder

	timer := lipgloss.NewStyle().Foreground(theme.Accent).
		Render(fmt.Sprintf("⏱ %s", layout.FormatClock(s.engine.SecondsLeft())))
	words := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d words", len(strings.Fields(s.ta.Value()))))

	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  Writing")
	right := words + "  " + timer
	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		pad = 1
	}
	b.WriteString(left + strings.Repeat(" ", pad) + right)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().
		Width(min(width-8, 76)).
		Foreground(theme.Text).
		Bold(true).
		Render(s.engine.Prompt())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, prompt))
	b.WriteString("\n\n")

	s.ta.SetWidth(min(width-8, 76))
	s.ta.SetHeight(max(height-lipgloss.Height(b.String())-2, 5))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.ta.View()))

	return b.String()
}

func tickCmd(sessionID string) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{SessionID: sessionID, At: t}
	})
}

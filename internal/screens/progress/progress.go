package progress

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saanvi/preppal/internal/question"
	"github.com/saanvi/preppal/internal/screen"
	"github.com/saanvi/preppal/internal/store"
	"github.com/saanvi/preppal/internal/ui/components"
	"github.com/saanvi/preppal/internal/ui/layout"
	"github.com/saanvi/preppal/internal/ui/theme"
	"github.com/saanvi/preppal/internal/usage"
)

// ProgressScreen shows per-subject accuracy from the session log plus
// today's time usage.
type ProgressScreen struct {
	stats    []store.SubjectStats
	usedSecs int
	errMsg   string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a progress screen, loading aggregates up front.
func New(st *store.Store, ledger *usage.Ledger) *ProgressScreen {
	ctx := context.Background()
	s := &ProgressScreen{
		usedSecs: ledger.SecondsUsed(ctx),
	}
	stats, err := st.Stats(ctx)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.stats = stats
	return s
}

func (s *ProgressScreen) Init() tea.Cmd {
	return nil
}

func (s *ProgressScreen) Title() string {
	return "Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Menu"}}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	var b strings.Builder
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Your progress"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).
		Render(fmt.Sprintf("Practice time today: %s", layout.FormatClock(s.usedSecs))))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(center.Foreground(theme.Error).Render(s.errMsg))
		return b.String()
	}
	if len(s.stats) == 0 {
		b.WriteString(center.Foreground(theme.TextDim).Render("No sessions yet — pick a subject and get started!"))
		return b.String()
	}

	barWidth := min(width-30, 40)
	var rows []string
	for _, st := range s.stats {
		name := question.Subject(st.Subject).DisplayName()
		if st.Subject == "writing" {
			name = "Writing"
		}

		if st.Questions == 0 {
			rows = append(rows, fmt.Sprintf("%-22s %d session(s)", name, st.Sessions))
			continue
		}

		acc := float64(st.Correct) / float64(st.Questions)
		bar := components.NewProgressBar(fmt.Sprintf("%-22s", name), acc, true, barWidth+24)
		rows = append(rows, bar.View())
	}

	block := strings.Join(rows, "\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	return b.String()
}

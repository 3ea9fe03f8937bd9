package writingresults

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saanvi/preppal/internal/router"
	"github.com/saanvi/preppal/internal/screen"
	"github.com/saanvi/preppal/internal/ui/layout"
	"github.com/saanvi/preppal/internal/ui/theme"
	"github.com/saanvi/preppal/internal/writing"
)

// WritingResultsScreen shows the heuristic feedback for a finished
// writing session.
type WritingResultsScreen struct {
	prompt      string
	text        string
	feedback    writing.Feedback
	elapsedSecs int
}

var _ screen.Screen = (*WritingResultsScreen)(nil)
var _ screen.KeyHintProvider = (*WritingResultsScreen)(nil)

// New creates a writing results screen.
func New(prompt, text string, fb writing.Feedback, elapsedSecs int) *WritingResultsScreen {
	return &WritingResultsScreen{
		prompt:      prompt,
		text:        text,
		feedback:    fb,
		elapsedSecs: elapsedSecs,
	}
}

func (s *WritingResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *WritingResultsScreen) Title() string {
	return "Writing Feedback"
}

func (s *WritingResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Menu"}}
}

func (s *WritingResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *WritingResultsScreen) View(width, height int) string {
	fb := s.feedback
	var b strings.Builder
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Well done for writing!"))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("%d words · %d sentences · %d different words · %s on the clock",
		fb.Words, fb.Sentences, fb.UniqueWords, layout.FormatClock(s.elapsedSecs))
	b.WriteString(center.Foreground(theme.Text).Render(stats))
	b.WriteString("\n\n")

	var notes []string
	if len(fb.Connectives) > 0 {
		notes = append(notes, fmt.Sprintf("Great connectives: %s", strings.Join(fb.Connectives, ", ")))
	}
	if len(fb.WeakWords) > 0 {
		notes = append(notes, fmt.Sprintf("Could you find stronger words than: %s?", strings.Join(fb.WeakWords, ", ")))
	}
	if fb.Words > 0 {
		notes = append(notes, fmt.Sprintf("Vocabulary variety: %d%%", int(fb.Variety*100)))
	}

	if len(notes) > 0 {
		block := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(strings.Join(notes, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
		b.WriteString("\n\n")
	}

	b.WriteString(center.Foreground(theme.Success).Bold(true).Render(fb.Encouragement))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Press Esc for the menu"))

	return b.String()
}

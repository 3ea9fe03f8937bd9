package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/saanvi/preppal/internal/ui/layout"
	"github.com/saanvi/preppal/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderNotice(width, s.errMsg)
	case s.loading || s.engine == nil:
		return renderLoading(width)
	case s.showingQuitConfirm:
		return renderQuitConfirm(width)
	case s.showingFeedback:
		return s.renderFeedback(width)
	case s.engine.Paused():
		return s.renderPaused(width)
	}
	return s.renderQuestion(width)
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n  Preparing your questions...")
}

func renderNotice(width int, msg string) string {
	card := theme.Card.Render(msg + "\n\nPress any key to go back.")
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

func renderQuitConfirm(width int) string {
	card := theme.Card.Render("End this session early?\n\nTime already spent still counts\ntowards today's allowance.\n\n[Y] End   [N] Keep going")
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

func (s *QuizScreen) renderPaused(width int) string {
	card := theme.Card.Render(fmt.Sprintf(
		"Paused — %s on the clock\n\nThe timer is stopped and no\npractice time is being used.\n\nPress P to resume.",
		layout.FormatClock(s.engine.SecondsLeft())))
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

// statusLine renders "Q 3/12  ✓ 2  ⏱ 8:45" above the question.
func (s *QuizScreen) statusLine(width int) string {
	e := s.engine

	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + s.subject.DisplayName())

	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Q %d/%d  %s %d  %s %s",
			e.Index()+1,
			len(e.Questions()),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			e.Score(),
			lipgloss.NewStyle().Foreground(theme.Accent).Render("⏱"),
			layout.FormatClock(e.SecondsLeft()),
		))

	line := left
	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

func (s *QuizScreen) renderQuestion(width int) string {
	q := s.engine.Current()
	if q == nil {
		return renderLoading(width)
	}

	var b strings.Builder
	b.WriteString(s.statusLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Comprehension shows the passage above every sub-question.
	if p := s.engine.Passage(); p != nil {
		title := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Bold(true).
			Render(p.Title)
		body := lipgloss.NewStyle().
			Width(min(width-8, 76)).
			Foreground(theme.Text).
			Render(p.Body)
		b.WriteString(title)
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))
		b.WriteString("\n\n")
	}

	stem := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Stem)
	b.WriteString(stem)
	b.WriteString("\n\n")

	b.WriteString(s.choices.View(width))
	return b.String()
}

func (s *QuizScreen) renderFeedback(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.lastCorrect {
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render("Correct!"))
	} else {
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Not quite"))
		if q := s.lastQuestion; q != nil && q.AnswerIndex < len(q.Choices) {
			b.WriteString("\n")
			b.WriteString(center.Foreground(theme.TextDim).
				Render(fmt.Sprintf("Correct answer: %s", q.Choices[q.AnswerIndex])))
		}
	}
	b.WriteString("\n\n")

	if q := s.lastQuestion; q != nil && q.Explanation != "" {
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	b.WriteString(center.Foreground(theme.TextDim).Render("Press any key to continue..."))
	return b.String()
}

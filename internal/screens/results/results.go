package results

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saanvi/preppal/internal/question"
	"github.com/saanvi/preppal/internal/router"
	"github.com/saanvi/preppal/internal/screen"
	sess "github.com/saanvi/preppal/internal/session"
	"github.com/saanvi/preppal/internal/ui/components"
	"github.com/saanvi/preppal/internal/ui/layout"
	"github.com/saanvi/preppal/internal/ui/theme"
)

// ResultsScreen shows the outcome of a finished quiz session.
type ResultsScreen struct {
	subject     question.Subject
	questions   []question.Question
	answers     []sess.Answer
	elapsedSecs int
	again       func() tea.Cmd
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a results screen. again rebuilds a fresh session for the
// same subject when the learner asks to go again.
func New(subject question.Subject, questions []question.Question, answers []sess.Answer, elapsedSecs int, again func() tea.Cmd) *ResultsScreen {
	return &ResultsScreen{
		subject:     subject,
		questions:   questions,
		answers:     answers,
		elapsedSecs: elapsedSecs,
		again:       again,
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return s.subject.DisplayName() + " Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Practice again"},
		{Key: "Esc", Description: "Menu"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter":
		if s.again != nil {
			return s, s.again()
		}
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *ResultsScreen) score() int {
	n := 0
	for _, a := range s.answers {
		if a.Correct {
			n++
		}
	}
	return n
}

// topicBreakdown aggregates correct/total per topic tag, sorted by name.
func (s *ResultsScreen) topicBreakdown() []topicScore {
	byID := make(map[string]question.Question, len(s.questions))
	for _, q := range s.questions {
		byID[q.ID] = q
	}

	agg := map[string]*topicScore{}
	for _, a := range s.answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		topic := question.TagValue(q.Tags, "topic")
		if topic == "" {
			topic = "general"
		}
		ts := agg[topic]
		if ts == nil {
			ts = &topicScore{Topic: topic}
			agg[topic] = ts
		}
		ts.Total++
		if a.Correct {
			ts.Correct++
		}
	}

	out := make([]topicScore, 0, len(agg))
	for _, ts := range agg {
		out = append(out, *ts)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out
}

type topicScore struct {
	Topic   string
	Correct int
	Total   int
}

func (s *ResultsScreen) View(width, height int) string {
	var b strings.Builder
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Session complete!"))
	b.WriteString("\n\n")

	score := s.score()
	total := len(s.answers)
	b.WriteString(center.Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("%d out of %d correct", score, total)))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).
		Render(fmt.Sprintf("Time used: %s", layout.FormatClock(s.elapsedSecs))))
	b.WriteString("\n\n")

	if total == 0 {
		b.WriteString(center.Foreground(theme.TextDim).
			Render("No questions answered this time."))
		b.WriteString("\n")
		return b.String()
	}

	bar := components.NewProgressBar("Score", float64(score)/float64(total), true, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	topics := s.topicBreakdown()
	if len(topics) > 1 {
		var lines []string
		for _, ts := range topics {
			lines = append(lines, fmt.Sprintf("%-14s %d/%d", ts.Topic, ts.Correct, ts.Total))
		}
		block := lipgloss.NewStyle().Foreground(theme.Text).Render(strings.Join(lines, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
		b.WriteString("\n\n")
	}

	b.WriteString(center.Foreground(theme.TextDim).
		Render("Enter to practice again · Esc for the menu"))
	return b.String()
}

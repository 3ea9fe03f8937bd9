package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saanvi/preppal/internal/question"
	"github.com/saanvi/preppal/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D", "E", "F"}

// ChoiceList is the answer selector for a multiple-choice question.
// For non-verbal questions each option carries a shape descriptor that
// is rendered under the option label.
type ChoiceList struct {
	Options  []string
	Visuals  [][]question.VisualChoice
	Selected int
}

// NewChoiceList creates a choice list for the given question.
func NewChoiceList(q question.Question) ChoiceList {
	return ChoiceList{
		Options: q.Choices,
		Visuals: q.VisualChoices,
	}
}

// Update handles keyboard navigation. Number keys select directly and
// report submission; enter submits the highlighted option.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, false
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		return c, true
	case "1", "2", "3", "4":
		i := int(key[0] - '1')
		if i < len(c.Options) {
			c.Selected = i
			return c, true
		}
	}

	return c, false
}

// View renders the options with the highlighted one marked.
func (c ChoiceList) View(width int) string {
	var s string
	for i, opt := range c.Options {
		label := choiceLabels[i%len(choiceLabels)]
		text := opt
		if i < len(c.Visuals) && len(c.Visuals[i]) > 0 {
			text = fmt.Sprintf("%s  %s", opt, DescribeShapeSet(c.Visuals[i]))
		}

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == c.Selected {
			prefix = "▸ "
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}

		s += style.Render(fmt.Sprintf("%s%s)  %s", prefix, label, text)) + "\n"
	}

	s += "\n" + lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Select (1-4) or use arrows + Enter")

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

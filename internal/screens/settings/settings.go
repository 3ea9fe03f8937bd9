package settings

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

// row indices: 0 grade, 1..len(boards) board toggles, then harder and
// the three duration fields.
const (
	rowGrade = 0
)

// SettingsScreen lets the learner tune their profile and session
// lengths. Every change is written back to the store immediately.
type SettingsScreen struct {
	st  *store.Store
	cfg usage.Settings

	row     int
	editing bool
	input   components.TextInput
	errMsg  string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)
var _ screen.EscInterceptor = (*SettingsScreen)(nil)

// New creates a settings screen seeded from stored settings.
func New(st *store.Store) *SettingsScreen {
	return &SettingsScreen{
		st:  st,
		cfg: usage.LoadSettings(context.Background(), st),
	}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

// WantsEsc captures Esc only while a duration field is being edited.
func (s *SettingsScreen) WantsEsc() bool {
	return s.editing
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→/Enter", Description: "Change"},
		{Key: "Esc", Description: "Menu"},
	}
}

func (s *SettingsScreen) rowCount() int {
	// grade + boards + harder + quiz/writing/daily minutes
	return 1 + len(question.KnownBoards) + 1 + 3
}

func (s *SettingsScreen) rowHarder() int  { return 1 + len(question.KnownBoards) }
func (s *SettingsScreen) rowQuiz() int    { return s.rowHarder() + 1 }
func (s *SettingsScreen) rowWriting() int { return s.rowHarder() + 2 }
func (s *SettingsScreen) rowDaily() int   { return s.rowHarder() + 3 }
func (s *SettingsScreen) isBoard(row int) bool {
	return row >= 1 && row <= len(question.KnownBoards)
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	if s.editing {
		return s.handleEditKey(kmsg)
	}

	switch key {
	case "up", "k":
		if s.row > 0 {
			s.row--
		}
	case "down", "j":
		if s.row < s.rowCount()-1 {
			s.row++
		}
	case "left", "h":
		s.adjust(-1)
	case "right", "l":
		s.adjust(1)
	case "enter", "space", " ":
		return s.activate()
	}
	return s, nil
}

// adjust handles left/right on the grade row.
func (s *SettingsScreen) adjust(delta int) {
	if s.row != rowGrade {
		return
	}
	grades := question.AllGrades
	cur := 0
	for i, g := range grades {
		if g == s.cfg.Profile.Grade {
			cur = i
			break
		}
	}
	cur += delta
	if cur < 0 {
		cur = 0
	}
	if cur > len(grades)-1 {
		cur = len(grades) - 1
	}
	s.cfg.Profile.Grade = grades[cur]
	s.save()
}

// activate handles enter/space on the focused row.
func (s *SettingsScreen) activate() (screen.Screen, tea.Cmd) {
	switch {
	case s.row == rowGrade:
		// Cycle forward through year groups.
		s.adjust(1)
		if s.cfg.Profile.Grade == question.AllGrades[len(question.AllGrades)-1] {
			s.cfg.Profile.Grade = question.AllGrades[0]
			s.save()
		}

	case s.isBoard(s.row):
		s.toggleBoard(question.KnownBoards[s.row-1])
		s.save()

	case s.row == s.rowHarder():
		s.cfg.Profile.AllowHarder = !s.cfg.Profile.AllowHarder
		s.save()

	default:
		// Duration rows open an inline minutes editor.
		s.editing = true
		s.input = components.NewTextInput("minutes", true, 3)
		s.input.SetValue(fmt.Sprintf("%d", s.currentDurationSecs()/60))
		return s, s.input.Init()
	}
	return s, nil
}

func (s *SettingsScreen) handleEditKey(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "esc":
		s.editing = false
		return s, nil
	case "enter":
		mins, err := s.input.NumericValue()
		if err != nil || mins < 1 || mins > 180 {
			s.input.Submit(false)
			return s, nil
		}
		s.input.Submit(true)
		s.setCurrentDurationSecs(mins * 60)
		s.save()
		s.editing = false
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(kmsg)
	return s, cmd
}

func (s *SettingsScreen) currentDurationSecs() int {
	switch s.row {
	case s.rowQuiz():
		return s.cfg.QuizSecs
	case s.rowWriting():
		return s.cfg.WritingSecs
	default:
		return s.cfg.DailySecs
	}
}

func (s *SettingsScreen) setCurrentDurationSecs(secs int) {
	switch s.row {
	case s.rowQuiz():
		s.cfg.QuizSecs = secs
	case s.rowWriting():
		s.cfg.WritingSecs = secs
	default:
		s.cfg.DailySecs = secs
	}
}

func (s *SettingsScreen) toggleBoard(board string) {
	boards := s.cfg.Profile.Boards
	for i, b := range boards {
		if b == board {
			// Never leave the set empty.
			if len(boards) == 1 {
				return
			}
			s.cfg.Profile.Boards = append(boards[:i], boards[i+1:]...)
			return
		}
	}
	s.cfg.Profile.Boards = append(boards, board)
}

func (s *SettingsScreen) save() {
	if err := usage.SaveSettings(context.Background(), s.st, s.cfg); err != nil {
		s.errMsg = "Could not save settings: " + err.Error()
	} else {
		s.errMsg = ""
	}
}

func (s *SettingsScreen) hasBoard(board string) bool {
	for _, b := range s.cfg.Profile.Boards {
		if b == board {
			return true
		}
	}
	return false
}

func (s *SettingsScreen) View(width, height int) string {
	var lines []string

	add := func(row int, label, value string) {
		prefix := "    "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if row == s.row {
			prefix = "  ▸ "
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%-24s %s", prefix, label, value)))
	}

	add(rowGrade, "Year group",
		fmt.Sprintf("Year %s", strings.TrimPrefix(string(s.cfg.Profile.Grade), "y")))

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("    Exam boards"))
	for i, board := range question.KnownBoards {
		mark := "[ ]"
		if s.hasBoard(board) {
			mark = "[x]"
		}
		add(1+i, "  "+board, mark)
	}

	lines = append(lines, "")
	harder := "off"
	if s.cfg.Profile.AllowHarder {
		harder = "on"
	}
	add(s.rowHarder(), "Harder questions", harder)

	lines = append(lines, "")
	durValue := func(row, secs int) string {
		if s.editing && s.row == row {
			return s.input.View()
		}
		return fmt.Sprintf("%d min", secs/60)
	}
	add(s.rowQuiz(), "Quiz length", durValue(s.rowQuiz(), s.cfg.QuizSecs))
	add(s.rowWriting(), "Writing length", durValue(s.rowWriting(), s.cfg.WritingSecs))
	add(s.rowDaily(), "Daily allowance", durValue(s.rowDaily(), s.cfg.DailySecs))

	if s.errMsg != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Error).Render("    "+s.errMsg))
	}

	body := strings.Join(lines, "\n")
	header := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Settings")

	return "\n" + header + "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saanvi/preppal/internal/dataset"
	"github.com/saanvi/preppal/internal/pool"
	"github.com/saanvi/preppal/internal/question"
	"github.com/saanvi/preppal/internal/router"
	"github.com/saanvi/preppal/internal/screen"
	"github.com/saanvi/preppal/internal/screens/progress"
	"github.com/saanvi/preppal/internal/screens/quiz"
	"github.com/saanvi/preppal/internal/screens/settings"
	writingscreen "github.com/saanvi/preppal/internal/screens/writing"
	"github.com/saanvi/preppal/internal/store"
	"github.com/saanvi/preppal/internal/ui/components"
	"github.com/saanvi/preppal/internal/ui/theme"
	"github.com/saanvi/preppal/internal/usage"

	"math/rand/v2"
)

// HomeScreen is the main menu: one entry per subject, plus writing
// practice, progress and settings.
type HomeScreen struct {
	st     *store.Store
	ledger *usage.Ledger
	data   *dataset.Client
	asm    *pool.Assembler
	rng    *rand.Rand

	menu          components.Menu
	remainingSecs int
	grade         question.Grade
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(st *store.Store, ledger *usage.Ledger, data *dataset.Client, asm *pool.Assembler, rng *rand.Rand) *HomeScreen {
	s := &HomeScreen{
		st:     st,
		ledger: ledger,
		data:   data,
		asm:    asm,
		rng:    rng,
	}
	s.refresh()
	return s
}

// refresh recomputes the remaining allowance and rebuilds the menu, so
// exhausted practice entries show up disabled.
func (s *HomeScreen) refresh() {
	ctx := context.Background()
	cfg := usage.LoadSettings(ctx, s.st)
	s.remainingSecs = s.ledger.Remaining(ctx, cfg.DailySecs)
	s.grade = cfg.Profile.Grade

	outOfTime := s.remainingSecs == 0

	items := make([]components.MenuItem, 0, len(question.AllSubjects)+3)
	for _, subj := range question.AllSubjects {
		subj := subj
		items = append(items, components.MenuItem{
			Label:    subj.DisplayName(),
			Disabled: outOfTime,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: quiz.New(subj, s.st, s.ledger, s.data, s.asm, s.rng),
					}
				}
			},
		})
	}

	items = append(items,
		components.MenuItem{
			Label:    "Writing Practice",
			Disabled: outOfTime,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: writingscreen.New(s.st, s.ledger, s.data, s.rng),
					}
				}
			},
		},
		components.MenuItem{
			Label: "Progress",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: progress.New(s.st, s.ledger)}
				}
			},
		},
		components.MenuItem{
			Label: "Settings",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: settings.New(s.st)}
				}
			},
		},
	)

	selected := s.menu.Selected
	s.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) && !items[selected].Disabled {
		s.menu.Selected = selected
	}
}

func (s *HomeScreen) Init() tea.Cmd {
	return nil
}

func (s *HomeScreen) Title() string {
	return "Home"
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case screen.UsageChangedMsg:
		s.refresh()
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *HomeScreen) View(width, height int) string {
	var b strings.Builder
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("What shall we practise today?"))
	b.WriteString("\n")

	status := fmt.Sprintf("Year %s · %s practice time left today",
		strings.TrimPrefix(string(s.grade), "y"),
		formatRemaining(s.remainingSecs))
	if s.remainingSecs == 0 {
		status = "All of today's practice time is used up — see you tomorrow!"
	}
	b.WriteString(center.Foreground(theme.TextDim).Render(status))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))
	return b.String()
}

func formatRemaining(secs int) string {
	if secs >= 120 {
		return fmt.Sprintf("%d minutes", secs/60)
	}
	return fmt.Sprintf("%d seconds", secs)
}

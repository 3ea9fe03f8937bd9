package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saanvi/preppal/internal/dataset"
	"github.com/saanvi/preppal/internal/pool"
	"github.com/saanvi/preppal/internal/router"
	"github.com/saanvi/preppal/internal/screen"
	"github.com/saanvi/preppal/internal/screens/home"
	"github.com/saanvi/preppal/internal/store"
	"github.com/saanvi/preppal/internal/ui/layout"
	"github.com/saanvi/preppal/internal/usage"

	"math/rand/v2"
)

// Options carries the shared dependencies for a program run.
type Options struct {
	Store     *store.Store
	Ledger    *usage.Ledger
	Data      *dataset.Client
	Assembler *pool.Assembler
	RNG       *rand.Rand
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int

	remainingSecs int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Store, opts.Ledger, opts.Data, opts.Assembler, opts.RNG)
	m := AppModel{
		opts:   opts,
		router: router.New(homeScreen),
	}
	m.refreshRemaining()
	return m
}

// refreshRemaining recomputes the header clock from the ledger.
func (m *AppModel) refreshRemaining() {
	ctx := context.Background()
	cfg := usage.LoadSettings(ctx, m.opts.Store)
	m.remainingSecs = m.opts.Ledger.Remaining(ctx, cfg.DailySecs)
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.UsageChangedMsg:
		m.refreshRemaining()
		cmd := m.router.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens mid-session intercept Esc for their own
			// confirmation dialogs; otherwise Esc navigates back.
			if ei, ok := m.router.Active().(screen.EscInterceptor); ok && ei.WantsEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.remainingSecs, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

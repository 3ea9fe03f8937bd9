package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/saanvi/preppal/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscInterceptor is an optional interface for screens that handle Esc
// themselves (to show a quit confirmation, for example) instead of the
// default pop-back navigation.
type EscInterceptor interface {
	WantsEsc() bool
}

// UsageChangedMsg announces that time was committed to the daily ledger.
// The router broadcasts it to every screen on the stack, so screens below
// the active one (the home menu in particular) can refresh their
// remaining-time display.
type UsageChangedMsg struct{}

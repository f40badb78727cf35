package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/layout"
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

// ProgressProvider is implemented by screens that show quiz progress in
// the header.
type ProgressProvider interface {
	Progress() (answered, total int)
}

package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/myoquiz/myoquiz/internal/settings"
	"github.com/myoquiz/myoquiz/internal/ui/layout"
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

// StatusProvider is implemented by screens that show a status line on
// the right of the header, such as the running score.
type StatusProvider interface {
	Status() string
}

// Closer is implemented by screens holding background work that must
// stop when the screen leaves the stack.
type Closer interface {
	Close()
}

// SettingsChangedMsg is delivered to every screen on the stack after the
// quiz settings were saved.
type SettingsChangedMsg struct {
	Settings settings.Settings
}

// InputCapturer is implemented by screens that sometimes need Esc for
// themselves, such as while editing a search field.
type InputCapturer interface {
	CapturesInput() bool
}

package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/myoquiz/myoquiz/internal/session"
	"github.com/myoquiz/myoquiz/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with app styling and an optional
// verdict mark.
type TextInput struct {
	Model   textinput.Model
	verdict session.Verdict
}

// NewTextInput creates a new focused text input.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	switch t.verdict {
	case session.VerdictCorrect:
		view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	case session.VerdictPartial:
		view += " " + lipgloss.NewStyle().Foreground(theme.Accent).Render("≈")
	case session.VerdictIncorrect:
		view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Reset replaces the text and clears the verdict mark.
func (t *TextInput) Reset(value string) {
	t.Model.SetValue(value)
	t.Model.CursorEnd()
	t.verdict = ""
}

// Mark shows a verdict next to the input. An empty verdict clears it.
func (t *TextInput) Mark(v session.Verdict) {
	t.verdict = v
}

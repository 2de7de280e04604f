package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/myoquiz/myoquiz/internal/ui/theme"
)

// ChoiceMsg is emitted when an option is picked.
type ChoiceMsg struct {
	Option string
}

// MultiChoice is a multiple-choice selector component. Once Reveal has
// been called it colors the correct option and a wrong pick, but still
// accepts a new pick so an answer can be revised.
type MultiChoice struct {
	Options  []string
	Selected int

	chosen  string
	correct string
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options}
}

// Reveal marks chosen as the learner's pick and correct as the answer,
// and moves the cursor onto the pick.
func (m *MultiChoice) Reveal(chosen, correct string) {
	m.chosen = chosen
	m.correct = correct
	for i, opt := range m.Options {
		if opt == chosen {
			m.Selected = i
		}
	}
}

// Revealed reports whether an answer is being shown.
func (m MultiChoice) Revealed() bool {
	return m.correct != ""
}

// Update handles arrow navigation, number keys and Enter.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Options) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		return m, m.pick(m.Selected)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
			m.Selected = n - 1
			return m, m.pick(n - 1)
		}
	}
	return m, nil
}

func (m MultiChoice) pick(i int) tea.Cmd {
	opt := m.Options[i]
	return func() tea.Msg { return ChoiceMsg{Option: opt} }
}

// View renders the options.
func (m MultiChoice) View() string {
	var s string
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.Revealed() && opt == m.correct:
			style = theme.Correct
		case m.Revealed() && opt == m.chosen:
			style = theme.Incorrect
		case i == m.Selected:
			style = theme.Selected
		case m.Revealed():
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		default:
			style = theme.Unselected
		}
		s += style.Render(line) + "\n"
	}
	return s
}

package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/myoquiz/myoquiz/internal/router"
	"github.com/myoquiz/myoquiz/internal/screen"
	"github.com/myoquiz/myoquiz/internal/session"
	"github.com/myoquiz/myoquiz/internal/ui/components"
	"github.com/myoquiz/myoquiz/internal/ui/layout"
	"github.com/myoquiz/myoquiz/internal/ui/theme"
)

// SummaryScreen displays the figures of a completed quiz.
type SummaryScreen struct {
	title    string
	stats    session.Stats
	buttons  []components.Button
	selected int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. restart, when set, is sent to the
// quiz underneath after the summary is popped.
func New(title string, stats session.Stats, restart func() tea.Msg) *SummaryScreen {
	pop := func() tea.Msg { return router.PopScreenMsg{} }
	var buttons []components.Button
	if restart != nil {
		buttons = append(buttons, components.NewButton("Play again", true, func() tea.Cmd {
			return tea.Sequence(pop, restart)
		}))
	}
	buttons = append(buttons, components.NewButton("Review answers", restart == nil, func() tea.Cmd {
		return pop
	}))
	return &SummaryScreen{title: title, stats: stats, buttons: buttons}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return s.title + " Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Review"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h", "shift+tab":
		s.focus(s.selected - 1)
	case "right", "l", "tab":
		s.focus(s.selected + 1)
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "enter":
		var cmd tea.Cmd
		s.buttons[s.selected], cmd = s.buttons[s.selected].Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SummaryScreen) focus(i int) {
	if i < 0 || i >= len(s.buttons) {
		return
	}
	s.selected = i
	for j := range s.buttons {
		s.buttons[j].Active = j == i
	}
}

func (s *SummaryScreen) View(width, height int) string {
	st := s.stats
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	b.WriteString(center.
		Foreground(theme.Primary).
		Bold(true).
		Render("Quiz complete!"))
	b.WriteString("\n\n")

	b.WriteString(center.
		Foreground(theme.Text).
		Render(fmt.Sprintf("You scored %d out of %d", st.CorrectDisplay, st.Total)))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
		style lipgloss.Style
	}{
		{"Correct", fmt.Sprintf("%d", st.Correct), theme.Correct},
		{"Partial", fmt.Sprintf("%d", st.Partial), theme.Partial},
		{"Wrong", fmt.Sprintf("%d", st.Incorrect), theme.Incorrect},
		{"Accuracy", fmt.Sprintf("%.0f%%", st.AccuracyPercent()), theme.Body},
		{"Streak", fmt.Sprintf("%d", st.Streak), theme.Body},
	}
	var lines []string
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-10s %s",
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(r.label),
			r.style.Render(r.value)))
	}
	card := components.ArcadeCard(strings.Join(lines, "\n"), components.ContentWidth(min(width, 46)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	b.WriteString(center.
		Foreground(theme.Accent).
		Render(verdictLine(st)))
	b.WriteString("\n\n")

	var buttons []string
	for _, btn := range s.buttons {
		buttons = append(buttons, btn.View())
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, buttons...)))
	return b.String()
}

// verdictLine is the closing remark for an accuracy band.
func verdictLine(st session.Stats) string {
	switch pct := st.AccuracyPercent(); {
	case pct >= 90:
		return "Outstanding anatomy recall."
	case pct >= 70:
		return "Solid work. Review the misses and go again."
	case pct >= 40:
		return "Getting there. The encyclopedia can help."
	default:
		return "Keep practicing, every muscle counts."
	}
}

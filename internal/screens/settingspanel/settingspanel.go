// Package settingspanel edits the quiz settings. Every change is saved
// at once, which notifies open quizzes through the settings store.
package settingspanel

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/myoquiz/myoquiz/internal/quizgen"
	"github.com/myoquiz/myoquiz/internal/screen"
	"github.com/myoquiz/myoquiz/internal/settings"
	"github.com/myoquiz/myoquiz/internal/ui/layout"
	"github.com/myoquiz/myoquiz/internal/ui/theme"
)

// MaxQuestionsPerMuscle caps the count the panel offers.
const MaxQuestionsPerMuscle = 5

// SettingsScreen lists the question types followed by the count row.
type SettingsScreen struct {
	store  *settings.Store
	cur    settings.Settings
	cursor int
	err    error
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates a settings screen backed by store.
func New(store *settings.Store) *SettingsScreen {
	return &SettingsScreen{store: store, cur: store.Get()}
}

func (s *SettingsScreen) Init() tea.Cmd { return nil }

func (s *SettingsScreen) Title() string { return "Settings" }

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Toggle"},
		{Key: "←→", Description: "Count"},
		{Key: "D", Description: "Defaults"},
		{Key: "Esc", Description: "Done"},
	}
}

// countRow is the cursor index of the questions-per-muscle row.
func countRow() int { return len(quizgen.AllTypes) }

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.SettingsChangedMsg:
		s.cur = msg.Settings
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < countRow() {
				s.cursor++
			}
		case "space", "enter", "x":
			if s.cursor < countRow() {
				s.save(s.cur.Toggle(quizgen.AllTypes[s.cursor]))
			}
		case "left", "h", "-":
			s.adjustCount(-1)
		case "right", "l", "+":
			s.adjustCount(1)
		case "d":
			s.cur, s.err = s.store.Reset()
		}
	}
	return s, nil
}

func (s *SettingsScreen) adjustCount(delta int) {
	n := s.cur.QuestionsPerMuscle + delta
	if n < 1 || n > MaxQuestionsPerMuscle {
		return
	}
	next := s.cur
	next.QuestionsPerMuscle = n
	s.save(next)
}

func (s *SettingsScreen) save(next settings.Settings) {
	s.cur, s.err = s.store.Save(next)
}

// Current returns the settings as last saved.
func (s *SettingsScreen) Current() settings.Settings { return s.cur }

func (s *SettingsScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  QUESTION TYPES"))
	b.WriteString("\n\n")

	for i, t := range quizgen.AllTypes {
		box := "[ ]"
		if s.cur.Enabled(t) {
			box = "[x]"
		}
		b.WriteString(s.renderRow(i, fmt.Sprintf("%s %s", box, t.Label())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  QUESTIONS PER MUSCLE"))
	b.WriteString("\n\n")
	b.WriteString(s.renderRow(countRow(), fmt.Sprintf("◂ %d ▸", s.cur.QuestionsPerMuscle)))
	b.WriteString("\n\n")

	b.WriteString(theme.Hint.Render("  At least one question type stays enabled. Changes restart open quizzes."))
	b.WriteString("\n")
	if path := s.store.Path(); path != "" {
		b.WriteString(theme.Hint.Render("  Saved to " + path))
		b.WriteString("\n")
	}
	if s.err != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Error).
			Render("  Could not save settings: " + s.err.Error()))
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}

func (s *SettingsScreen) renderRow(i int, text string) string {
	if i == s.cursor {
		return theme.Selected.Render("  ▸ " + text)
	}
	return theme.Unselected.Render("    " + text)
}

// Package encyclopedia browses the muscle catalog by group.
package encyclopedia

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/myoquiz/myoquiz/internal/catalog"
	"github.com/myoquiz/myoquiz/internal/router"
	"github.com/myoquiz/myoquiz/internal/screen"
	"github.com/myoquiz/myoquiz/internal/ui/components"
	"github.com/myoquiz/myoquiz/internal/ui/layout"
	"github.com/myoquiz/myoquiz/internal/ui/theme"
)

type rowKind int

const (
	rowGroupHeader rowKind = iota
	rowMuscle
)

type row struct {
	kind   rowKind
	group  string
	muscle *catalog.Muscle
}

// EncyclopediaScreen lists the catalog organized by group.
type EncyclopediaScreen struct {
	cat          *catalog.Catalog
	rows         []row
	cursor       int
	scrollOffset int

	searching bool
	search    components.TextInput
}

var _ screen.Screen = (*EncyclopediaScreen)(nil)
var _ screen.KeyHintProvider = (*EncyclopediaScreen)(nil)
var _ screen.InputCapturer = (*EncyclopediaScreen)(nil)

// New creates a new EncyclopediaScreen.
func New(cat *catalog.Catalog) *EncyclopediaScreen {
	s := &EncyclopediaScreen{
		cat:    cat,
		search: components.NewTextInput("Search muscles...", 60),
	}
	s.rebuild("")
	return s
}

// rebuild lays out the rows matching query, grouped in catalog order.
func (s *EncyclopediaScreen) rebuild(query string) {
	matches := make(map[*catalog.Muscle]bool)
	for _, m := range s.cat.Search(query) {
		matches[m] = true
	}

	s.rows = s.rows[:0]
	for _, g := range s.cat.Groups() {
		var muscles []*catalog.Muscle
		for _, m := range s.cat.ByGroup(g) {
			if matches[m] {
				muscles = append(muscles, m)
			}
		}
		if len(muscles) == 0 {
			continue
		}
		s.rows = append(s.rows, row{kind: rowGroupHeader, group: g})
		for _, m := range muscles {
			s.rows = append(s.rows, row{kind: rowMuscle, group: g, muscle: m})
		}
	}

	s.cursor, s.scrollOffset = 0, 0
	for i, r := range s.rows {
		if r.kind == rowMuscle {
			s.cursor = i
			break
		}
	}
}

func (s *EncyclopediaScreen) Init() tea.Cmd {
	return nil
}

func (s *EncyclopediaScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.searching {
		switch kmsg.String() {
		case "enter", "esc":
			s.searching = false
			return s, nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		s.rebuild(s.search.Value())
		return s, cmd
	}

	switch kmsg.String() {
	case "up", "k":
		s.moveCursor(-1)
	case "down", "j":
		s.moveCursor(1)
	case "tab":
		s.nextGroup()
	case "shift+tab":
		s.prevGroup()
	case "/":
		s.searching = true
	case "enter":
		return s, s.selectMuscle()
	case "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *EncyclopediaScreen) View(width, height int) string {
	var lines []string

	if s.searching || s.search.Value() != "" {
		lines = append(lines, "  / "+s.search.View())
		height--
	}

	if len(s.rows) == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Padding(1, 0, 0, 2).
			Render("No muscles match."))
		return strings.Join(lines, "\n")
	}

	s.adjustScroll(height)

	visible := 0
	for i, r := range s.rows {
		if i < s.scrollOffset {
			continue
		}
		if visible >= height {
			break
		}
		switch r.kind {
		case rowGroupHeader:
			lines = append(lines, renderGroupHeader(r.group, width))
		case rowMuscle:
			lines = append(lines, renderMuscleRow(r.muscle, i == s.cursor, width))
		}
		visible++
	}

	return strings.Join(lines, "\n")
}

// CapturesInput keeps Esc in the search field while searching.
func (s *EncyclopediaScreen) CapturesInput() bool { return s.searching }

func (s *EncyclopediaScreen) Title() string {
	return "Encyclopedia"
}

// KeyHints returns the key binding hints for the footer.
func (s *EncyclopediaScreen) KeyHints() []layout.KeyHint {
	if s.searching {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Group"},
		{Key: "/", Description: "Search"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the muscle under the cursor, if any.
func (s *EncyclopediaScreen) Selected() (*catalog.Muscle, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) || s.rows[s.cursor].kind != rowMuscle {
		return nil, false
	}
	return s.rows[s.cursor].muscle, true
}

// moveCursor moves the cursor by delta, skipping group headers.
func (s *EncyclopediaScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowMuscle {
			s.cursor = next
			return
		}
		next += delta
	}
}

// nextGroup jumps the cursor to the first muscle in the next group.
func (s *EncyclopediaScreen) nextGroup() {
	if _, ok := s.Selected(); !ok {
		return
	}
	current := s.rows[s.cursor].group
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if s.rows[i].kind == rowMuscle && s.rows[i].group != current {
			s.cursor = i
			return
		}
	}
}

// prevGroup jumps the cursor to the first muscle in the previous group.
func (s *EncyclopediaScreen) prevGroup() {
	if _, ok := s.Selected(); !ok {
		return
	}
	current := s.rows[s.cursor].group
	prev := ""
	for i := s.cursor - 1; i >= 0; i-- {
		if s.rows[i].kind == rowGroupHeader && s.rows[i].group != current {
			prev = s.rows[i].group
			break
		}
	}
	if prev == "" {
		return
	}
	for i, r := range s.rows {
		if r.kind == rowMuscle && r.group == prev {
			s.cursor = i
			return
		}
	}
}

// adjustScroll ensures the cursor is visible within the viewport.
func (s *EncyclopediaScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	// Also show the group header above the cursor if possible.
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowGroupHeader {
		headerRow--
	}

	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *EncyclopediaScreen) selectMuscle() tea.Cmd {
	m, ok := s.Selected()
	if !ok {
		return nil
	}
	detail := newMuscleDetail(m)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

func renderGroupHeader(group string, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(strings.ToUpper(group))
}

func renderMuscleRow(m *catalog.Muscle, selected bool, width int) string {
	nameWidth := max(width/2-6, 10)

	name := m.Name
	if len([]rune(name)) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "…"
	}

	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	latinStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	cursor := "  "
	if selected {
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		latinStyle = latinStyle.Foreground(theme.Primary)
		cursor = "▸ "
	}

	return fmt.Sprintf("  %s%s  %s",
		cursor,
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		latinStyle.Render(m.LatinName.String()),
	)
}

package encyclopedia

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/myoquiz/myoquiz/internal/catalog"
	"github.com/myoquiz/myoquiz/internal/screen"
	"github.com/myoquiz/myoquiz/internal/ui/layout"
	"github.com/myoquiz/myoquiz/internal/ui/theme"
)

// MuscleDetailScreen shows the recorded facts of a single muscle.
type MuscleDetailScreen struct {
	muscle *catalog.Muscle
}

var _ screen.Screen = (*MuscleDetailScreen)(nil)
var _ screen.KeyHintProvider = (*MuscleDetailScreen)(nil)

func newMuscleDetail(m *catalog.Muscle) *MuscleDetailScreen {
	return &MuscleDetailScreen{muscle: m}
}

func (d *MuscleDetailScreen) Init() tea.Cmd { return nil }
func (d *MuscleDetailScreen) Title() string { return d.muscle.Name }

func (d *MuscleDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return d, nil
}

func (d *MuscleDetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (d *MuscleDetailScreen) View(width, height int) string {
	m := d.muscle
	contentWidth := min(width-8, 70)

	var b strings.Builder

	b.WriteString(theme.Title.Render("  " + m.Name))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("  " + m.Group))
	b.WriteString("\n\n")

	sections := []struct {
		label string
		field catalog.Field
	}{
		{"Latin name", m.LatinName},
		{"Origin", m.Origin},
		{"Insertion", m.Insertion},
		{"Function", m.Function},
	}
	shown := 0
	for _, sec := range sections {
		v, ok := sec.field.Value()
		if !ok {
			continue
		}
		shown++
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render(fmt.Sprintf("  %s", sec.label)))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(contentWidth).
			Foreground(theme.Text).
			PaddingLeft(2).
			Render(v))
		b.WriteString("\n\n")
	}
	if shown == 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("  No details recorded for this muscle."))
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top,
		"\n"+b.String())
}

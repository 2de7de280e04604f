package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/myoquiz/myoquiz/internal/ui/components"
	"github.com/myoquiz/myoquiz/internal/ui/theme"
)

// Block-letter title.
const arcadeTitleFull = ` ███╗   ███╗██╗   ██╗ ██████╗  ██████╗ ██╗   ██╗██╗███████╗
 ████╗ ████║╚██╗ ██╔╝██╔═══██╗██╔═══██╗██║   ██║██║╚══███╔╝
 ██╔████╔██║ ╚████╔╝ ██║   ██║██║   ██║██║   ██║██║  ███╔╝
 ██║╚██╔╝██║  ╚██╔╝  ██║   ██║██║▄▄ ██║██║   ██║██║ ███╔╝
 ██║ ╚═╝ ██║   ██║   ╚██████╔╝╚██████╔╝╚██████╔╝██║███████╗
 ╚═╝     ╚═╝   ╚═╝    ╚═════╝  ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝`

const arcadeTitleCompact = "M · Y · O · Q · U · I · Z"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	title := arcadeTitleFull
	if compact || cw < 59 {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// homeStats are the figures shown in the stats bar.
type homeStats struct {
	muscles            int
	groups             int
	types              int
	questionsPerMuscle int
}

// renderStatsBar renders the catalog and settings figures in a bordered
// box matching content width.
func renderStatsBar(st homeStats, cw int, compact bool) string {
	muscleStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	groupStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	typeStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			muscleStyle.Render(fmt.Sprintf("♥%d", st.muscles)),
			groupStyle.Render(fmt.Sprintf("◆%d", st.groups)),
			typeStyle.Render(fmt.Sprintf("?%d×%d", st.types, st.questionsPerMuscle)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			muscleStyle.Render(fmt.Sprintf("♥ %d MUSCLES", st.muscles)),
			groupStyle.Render(fmt.Sprintf("◆ %d GROUPS", st.groups)),
			typeStyle.Render(fmt.Sprintf("? %d TYPES × %d", st.types, st.questionsPerMuscle)),
		)
	}

	// Wrap in a double-border box at the same content width
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	disabledBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if disabled[i] {
			buttons = append(buttons, disabledBtn.Render(label))
			continue
		}
		buttons = append(buttons, components.ArcadeButton(label, i == selected, buttonWidth))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderLLMBanner renders a warning banner when no LLM API key is configured.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to unlock the AI quiz (see myoquiz --help)")
}

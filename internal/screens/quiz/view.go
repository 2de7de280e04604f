package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/myoquiz/myoquiz/internal/session"
	"github.com/myoquiz/myoquiz/internal/ui/components"
	"github.com/myoquiz/myoquiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.sess.Len() == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  No questions match the current settings.\n\n  Enable more question types in Settings.")
	}

	q, a, answered := s.sess.Current()
	st := s.sess.Stats()

	var b strings.Builder

	// Info line.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", q.Muscle.Group, q.Type.Label()))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d  %s %d  %s %d",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"), st.Correct,
			lipgloss.NewStyle().Foreground(theme.Accent).Render("≈"), st.Partial,
			lipgloss.NewStyle().Foreground(theme.Error).Render("✗"), st.Incorrect,
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	progress := components.NewProgressBar(
		fmt.Sprintf("  Question %d/%d", st.Position, st.Total),
		float64(st.Answered)/float64(st.Total), true, width-4)
	b.WriteString(progress.View())
	b.WriteString("\n\n")

	if st.Complete {
		restartKey := "R"
		if s.mode == FreeText {
			restartKey = "Ctrl+R"
		}
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  Review mode: answers are locked. Press %s to play again.", restartKey)))
		b.WriteString("\n\n")
	}

	// Question text.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt))
	b.WriteString("\n\n")

	if s.mode == MultipleChoice {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
		if answered {
			b.WriteString("\n")
			b.WriteString(renderVerdict(a, width))
		}
		return b.String()
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + s.input.View()))
	b.WriteString("\n\n")

	switch {
	case s.evaluating():
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Evaluating your answer..."))
	case s.gradeErr != "" && s.gradeErrFor == q.ID:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Could not evaluate: " + s.gradeErr + "\nYour answer is kept. Press Enter to try again."))
	case answered:
		b.WriteString(renderVerdict(a, width))
		b.WriteString("\n")
		b.WriteString(renderFeedback(q.CorrectAnswer, a, width))
	}
	return b.String()
}

func renderVerdict(a session.Answer, width int) string {
	var text string
	var style lipgloss.Style
	switch a.Verdict {
	case session.VerdictCorrect:
		text, style = "Correct!", theme.Correct
	case session.VerdictPartial:
		text, style = "Partially correct", theme.Partial
	default:
		text, style = "Not quite", theme.Incorrect
	}
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

func renderFeedback(reference string, a session.Answer, width int) string {
	w := min(width-8, 70)
	var parts []string
	if a.Feedback != "" {
		parts = append(parts, lipgloss.NewStyle().Width(w).Foreground(theme.Text).Render(a.Feedback))
	}
	if a.Verdict != session.VerdictCorrect {
		parts = append(parts, lipgloss.NewStyle().Width(w).Foreground(theme.TextDim).
			Render("Reference: "+reference))
	}
	if a.Tip != "" {
		parts = append(parts, lipgloss.NewStyle().Width(w).Foreground(theme.ArcadeCyan).Italic(true).
			Render("Tip: "+a.Tip))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(parts, "\n\n"))
}

// Package history lists recent answer evaluations from the event store.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/myoquiz/myoquiz/internal/grading"
	"github.com/myoquiz/myoquiz/internal/router"
	"github.com/myoquiz/myoquiz/internal/screen"
	"github.com/myoquiz/myoquiz/internal/store"
	"github.com/myoquiz/myoquiz/internal/ui/layout"
	"github.com/myoquiz/myoquiz/internal/ui/theme"
)

const historyLimit = 50

type historyLoadedMsg struct {
	Events []store.LLMEvent
	Err    error
}

// HistoryScreen displays past answer evaluations.
type HistoryScreen struct {
	eventRepo store.EventRepo
	events    []store.LLMEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.eventRepo.QueryLLMEvents(context.Background(), store.QueryOpts{
			Limit:   historyLimit,
			Purpose: grading.Purpose,
		})
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

// verdictOf extracts the verdict and feedback from a stored model response.
func verdictOf(ev store.LLMEvent) (status, feedback string) {
	if !ev.Success {
		return "error", ev.ErrorMessage
	}
	var out struct {
		AnswerStatus string `json:"answerStatus"`
		IsCorrect    *bool  `json:"isCorrect"`
		Feedback     string `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(ev.ResponseBody), &out); err != nil {
		return "unreadable", ""
	}
	status = out.AnswerStatus
	if status == "" && out.IsCorrect != nil {
		status = "incorrect"
		if *out.IsCorrect {
			status = "correct"
		}
	}
	return status, out.Feedback
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "correct":
		return theme.Correct
	case "partial":
		return theme.Partial
	case "incorrect", "error":
		return theme.Incorrect
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim)
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No graded answers yet. Try the AI quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, ev := range s.events {
		status, feedback := verdictOf(ev)

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-10s  %s  %dms",
			prefix, ev.Timestamp.Local().Format("Jan 02 15:04"),
			statusStyle(status).Render(status), ev.Model, ev.LatencyMs)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			if feedback == "" {
				feedback = "No feedback recorded"
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().
					Width(min(width-8, 70)).
					Foreground(theme.TextDim).
					Italic(true).
					Render(feedback)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

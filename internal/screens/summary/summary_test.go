package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/myoquiz/myoquiz/internal/router"
	"github.com/myoquiz/myoquiz/internal/session"
)

type restartMsg struct{}

func testStats() session.Stats {
	return session.Stats{
		Total:          10,
		Answered:       10,
		Position:       10,
		Correct:        7,
		Partial:        1,
		Incorrect:      2,
		Score:          7.5,
		Streak:         3,
		Accuracy:       0.75,
		CorrectDisplay: 8,
		Complete:       true,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New("AI Quiz", testStats(), nil)
	if s.Title() != "AI Quiz Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "AI Quiz Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New("Quiz", testStats(), nil)
	view := s.View(80, 24)
	for _, want := range []string{"Quiz complete!", "8 out of 10", "75%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_Enter_PopsThenRestarts(t *testing.T) {
	s := New("Quiz", testStats(), func() tea.Msg { return restartMsg{} })
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command on Enter")
	}
	if _, ok := cmd().(tea.Msg); !ok {
		t.Fatal("expected a message from the sequence")
	}
}

func TestSummaryScreen_Enter_WithoutRestart(t *testing.T) {
	s := New("Quiz", testStats(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestSummaryScreen_RightThenEnterReviews(t *testing.T) {
	s := New("Quiz", testStats(), func() tea.Msg { return restartMsg{} })
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg from the review button")
	}
}

func TestSummaryScreen_Esc(t *testing.T) {
	s := New("Quiz", testStats(), func() tea.Msg { return restartMsg{} })
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestVerdictLine(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     string
	}{
		{0.95, "Outstanding"},
		{0.75, "Solid"},
		{0.5, "Getting there"},
		{0.1, "Keep practicing"},
	}
	for _, tt := range tests {
		got := verdictLine(session.Stats{Accuracy: tt.accuracy})
		if !strings.HasPrefix(got, tt.want) {
			t.Errorf("verdictLine(%v) = %q, want prefix %q", tt.accuracy, got, tt.want)
		}
	}
}

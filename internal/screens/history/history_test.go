package history

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/myoquiz/myoquiz/internal/grading"
	"github.com/myoquiz/myoquiz/internal/store"
)

func openRepo(t *testing.T) store.EventRepo {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:history_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("Init returned nil")
	}
	s.Update(cmd())
}

func TestHistory_ListsGradingEvents(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	events := []store.LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: grading.Purpose, Success: true,
			ResponseBody: `{"answerStatus":"partial","feedback":"Close, name the tuberosity."}`},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "other", Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: grading.Purpose, Success: false,
			ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("AppendLLMRequest: %v", err)
		}
	}

	s := New(repo)
	load(t, s)

	if len(s.events) != 2 {
		t.Fatalf("got %d events, want 2", len(s.events))
	}
	view := s.View(100, 30)
	for _, want := range []string{"partial", "error"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistory_ExpandShowsFeedback(t *testing.T) {
	repo := openRepo(t)
	err := repo.AppendLLMRequest(context.Background(), store.LLMRequestEventData{
		Model: "mock", Purpose: grading.Purpose, Success: true,
		ResponseBody: `{"isCorrect":true,"feedback":"Spot on."}`,
	})
	if err != nil {
		t.Fatalf("AppendLLMRequest: %v", err)
	}

	s := New(repo)
	load(t, s)
	if strings.Contains(s.View(100, 30), "Spot on.") {
		t.Error("feedback shown before expanding")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view := s.View(100, 30)
	if !strings.Contains(view, "Spot on.") {
		t.Error("feedback missing after expanding")
	}
	if !strings.Contains(view, "correct") {
		t.Error("isCorrect fallback not rendered as correct")
	}
}

func TestHistory_Empty(t *testing.T) {
	s := New(openRepo(t))
	load(t, s)
	if !strings.Contains(s.View(80, 24), "No graded answers yet") {
		t.Error("expected empty message")
	}
}

func TestVerdictOf(t *testing.T) {
	tests := []struct {
		name string
		ev   store.LLMEvent
		want string
	}{
		{"status", store.LLMEvent{LLMRequestEventData: store.LLMRequestEventData{Success: true, ResponseBody: `{"answerStatus":"correct"}`}}, "correct"},
		{"is correct false", store.LLMEvent{LLMRequestEventData: store.LLMRequestEventData{Success: true, ResponseBody: `{"isCorrect":false}`}}, "incorrect"},
		{"failure", store.LLMEvent{LLMRequestEventData: store.LLMRequestEventData{ErrorMessage: "x"}}, "error"},
		{"garbage", store.LLMEvent{LLMRequestEventData: store.LLMRequestEventData{Success: true, ResponseBody: "nope"}}, "unreadable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := verdictOf(tt.ev); got != tt.want {
				t.Errorf("verdictOf = %q, want %q", got, tt.want)
			}
		})
	}
}

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM llm_request_events").Scan(&n); err != nil {
		t.Fatalf("events table missing: %v", err)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "myoquiz.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "myoquiz.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendLLMRequest(context.Background(), LLMRequestEventData{Purpose: "answer-eval"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	events, err := s.EventRepo().QueryLLMEvents(context.Background(), QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("got %d events after reopen, want 1", len(events))
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("MYOQUIZ_DB", filepath.Join(dir, "custom", "quiz.db"))
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if p != filepath.Join(dir, "custom", "quiz.db") {
		t.Errorf("path = %q", p)
	}
	if _, err := os.Stat(filepath.Join(dir, "custom")); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}

	t.Setenv("MYOQUIZ_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if p != filepath.Join(dir, "myoquiz", "myoquiz.db") {
		t.Errorf("path = %q", p)
	}
}

func TestLLMEvents_AppendAndGet(t *testing.T) {
	s := openTestStore(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "openai",
		Model:        "gpt-4o-mini",
		Purpose:      "answer-eval",
		InputTokens:  120,
		OutputTokens: 40,
		LatencyMs:    850,
		Success:      true,
		RequestBody:  "[user]\nWhat is the origin of the deltoid?",
		ResponseBody: `{"answerStatus":"partial"}`,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e.Provider != "openai" || e.Model != "gpt-4o-mini" || e.Purpose != "answer-eval" {
		t.Errorf("identity = %q/%q/%q", e.Provider, e.Model, e.Purpose)
	}
	if !e.Success || e.InputTokens != 120 || e.OutputTokens != 40 || e.LatencyMs != 850 {
		t.Errorf("event = %+v", e)
	}
	if e.ResponseBody != `{"answerStatus":"partial"}` {
		t.Errorf("ResponseBody = %q", e.ResponseBody)
	}
	if !e.Timestamp.Equal(fixed) {
		t.Errorf("Timestamp = %v, want %v", e.Timestamp, fixed)
	}
}

func TestLLMEvents_GetMissing(t *testing.T) {
	s := openTestStore(t)
	e, err := s.EventRepo().GetLLMEvent(context.Background(), 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e != nil {
		t.Errorf("expected nil event, got %+v", e)
	}
}

func TestLLMEvents_QueryFilters(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Hour)
	}
	repo := s.EventRepo()
	ctx := context.Background()

	for i, purpose := range []string{"answer-eval", "answer-eval", "healthcheck", "answer-eval"} {
		if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Purpose: purpose, InputTokens: i}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	all, _ := repo.QueryLLMEvents(ctx, QueryOpts{})
	if len(all) != 4 {
		t.Fatalf("got %d events, want 4", len(all))
	}
	if all[0].ID < all[1].ID {
		t.Error("events should be newest first")
	}

	tests := []struct {
		name string
		opts QueryOpts
		want int
	}{
		{"limit", QueryOpts{Limit: 2}, 2},
		{"purpose", QueryOpts{Purpose: "answer-eval"}, 3},
		{"after", QueryOpts{After: all[2].ID}, 2},
		{"before", QueryOpts{Before: all[2].ID}, 1},
		{"from", QueryOpts{From: base.Add(3 * time.Hour)}, 2},
		{"to", QueryOpts{To: base.Add(2 * time.Hour)}, 2},
		{"combined", QueryOpts{Purpose: "answer-eval", From: base.Add(2 * time.Hour), Limit: 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.QueryLLMEvents(ctx, tt.opts)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d events, want %d", len(got), tt.want)
			}
		})
	}
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Model: "gpt-4o-mini", Purpose: "answer-eval", InputTokens: 100, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Model: "gpt-4o-mini", Purpose: "answer-eval", InputTokens: 200, OutputTokens: 30, LatencyMs: 300, Success: true},
		{Model: "claude-haiku-4-5", Purpose: "answer-eval", InputTokens: 50, OutputTokens: 10, LatencyMs: 200, Success: false},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 1 {
		t.Fatalf("got %d purposes, want 1", len(byPurpose))
	}
	p := byPurpose[0]
	if p.Purpose != "answer-eval" || p.Calls != 3 || p.Failures != 1 {
		t.Errorf("purpose usage = %+v", p)
	}
	if p.InputTokens != 350 || p.OutputTokens != 60 || p.AvgLatencyMs != 200 {
		t.Errorf("purpose totals = %+v", p)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("got %d models, want 2", len(byModel))
	}
	if byModel[0].Model != "gpt-4o-mini" || byModel[0].Calls != 2 || byModel[0].InputTokens != 300 {
		t.Errorf("first model = %+v", byModel[0])
	}
	if byModel[0].Purpose != "" {
		t.Errorf("model usage should not set Purpose, got %q", byModel[0].Purpose)
	}
}

func TestLLMUsage_Empty(t *testing.T) {
	s := openTestStore(t)
	usage, err := s.EventRepo().LLMUsageByPurpose(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(usage) != 0 {
		t.Errorf("got %d rows, want 0", len(usage))
	}
}

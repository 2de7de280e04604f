package grading

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/myoquiz/myoquiz/internal/catalog"
	"github.com/myoquiz/myoquiz/internal/llm"
	"github.com/myoquiz/myoquiz/internal/quizgen"
	"github.com/myoquiz/myoquiz/internal/session"
)

func deltoidRequest(answer string) Request {
	return Request{
		UserAnswer:    answer,
		CorrectAnswer: "Deltoid tuberosity of the humerus",
		QuestionType:  quizgen.TypeInsertion,
		MuscleName:    "Deltoid",
	}
}

func TestEvaluate_Verdicts(t *testing.T) {
	tests := []struct {
		name string
		resp map[string]any
		want session.Verdict
		ok   bool
	}{
		{"correct", map[string]any{"answerStatus": "correct", "feedback": "Spot on."}, session.VerdictCorrect, true},
		{"partial", map[string]any{"answerStatus": "partial", "feedback": "Close.", "tip": "Think of a V."}, session.VerdictPartial, true},
		{"incorrect", map[string]any{"answerStatus": "incorrect", "feedback": "No."}, session.VerdictIncorrect, true},
		{"legacy true", map[string]any{"isCorrect": true, "feedback": "Yes."}, session.VerdictCorrect, true},
		{"legacy false", map[string]any{"isCorrect": false, "feedback": "No."}, session.VerdictIncorrect, true},
		{"status wins over legacy", map[string]any{"answerStatus": "partial", "isCorrect": true, "feedback": "Hm."}, session.VerdictPartial, true},
		{"no verdict", map[string]any{"feedback": "Hm."}, "", false},
		{"unknown status", map[string]any{"answerStatus": "almost", "feedback": "Hm."}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockJSON(tt.resp))
			e := NewEvaluator(mock, DefaultEvaluatorConfig())

			ev, err := e.Evaluate(context.Background(), deltoidRequest("deltoid tuberosity"))
			if !tt.ok {
				if !errors.Is(err, ErrEvaluationFailed) {
					t.Fatalf("err = %v, want ErrEvaluationFailed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if ev.Verdict != tt.want {
				t.Errorf("Verdict = %q, want %q", ev.Verdict, tt.want)
			}
			if ev.IsCorrect != (tt.want == session.VerdictCorrect) {
				t.Errorf("IsCorrect = %v for verdict %q", ev.IsCorrect, ev.Verdict)
			}
		})
	}
}

func TestEvaluate_MissingFields(t *testing.T) {
	mock := llm.NewMockProvider()
	e := NewEvaluator(mock, DefaultEvaluatorConfig())

	for _, req := range []Request{
		deltoidRequest(""),
		deltoidRequest("   "),
		{UserAnswer: "something", QuestionType: quizgen.TypeOrigin},
	} {
		if _, err := e.Evaluate(context.Background(), req); !errors.Is(err, ErrMissingFields) {
			t.Errorf("Evaluate(%+v) err = %v, want ErrMissingFields", req, err)
		}
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider called %d times, want 0", mock.CallCount())
	}
}

func TestEvaluate_ProviderError(t *testing.T) {
	cause := errors.New("boom")
	mock := llm.NewMockProvider(llm.MockResponse{Err: cause})
	e := NewEvaluator(mock, DefaultEvaluatorConfig())

	_, err := e.Evaluate(context.Background(), deltoidRequest("humerus"))
	if !errors.Is(err, ErrEvaluationFailed) {
		t.Errorf("err = %v, want ErrEvaluationFailed", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("err = %v, want it to wrap the provider error", err)
	}
}

func TestEvaluate_MalformedJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)})
	e := NewEvaluator(mock, DefaultEvaluatorConfig())

	if _, err := e.Evaluate(context.Background(), deltoidRequest("humerus")); !errors.Is(err, ErrEvaluationFailed) {
		t.Errorf("err = %v, want ErrEvaluationFailed", err)
	}
}

func TestEvaluate_Request(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{"answerStatus": "correct", "feedback": "ok"}))
	e := NewEvaluator(mock, DefaultEvaluatorConfig())

	if _, err := e.Evaluate(context.Background(), deltoidRequest("deltoid tuberosity")); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	req, ok := mock.LastCall()
	if !ok {
		t.Fatal("no provider call recorded")
	}
	if req.Schema != EvaluationSchema {
		t.Error("request does not carry EvaluationSchema")
	}
	if req.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", req.Temperature)
	}
	if req.System == "" {
		t.Error("system prompt is empty")
	}
	if len(req.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(req.Messages))
	}
	msg := req.Messages[0].Content
	for _, want := range []string{
		"Question type: insertion",
		"Muscle: Deltoid",
		`"Deltoid tuberosity of the humerus"`,
		`"deltoid tuberosity"`,
		"insertion: use anatomical relationships",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildEvaluationMessage_TipHints(t *testing.T) {
	tests := []struct {
		typ  quizgen.QuestionType
		want string
	}{
		{quizgen.TypeOrigin, "origin"},
		{quizgen.TypeFunction, "logic of the movement"},
		{quizgen.TypeLatinName, "etymology"},
		{quizgen.TypeName, "muscle's name"},
	}
	for _, tt := range tests {
		req := deltoidRequest("x")
		req.QuestionType = tt.typ
		msg, err := buildEvaluationMessage(req)
		if err != nil {
			t.Fatalf("buildEvaluationMessage(%s): %v", tt.typ, err)
		}
		if !strings.Contains(msg, tt.want) {
			t.Errorf("message for %s missing %q", tt.typ, tt.want)
		}
	}

	req := deltoidRequest("x")
	req.QuestionType = "unknown"
	msg, err := buildEvaluationMessage(req)
	if err != nil {
		t.Fatalf("buildEvaluationMessage(unknown): %v", err)
	}
	if strings.Contains(msg, "The tip should") {
		t.Errorf("unknown type should have no tip hint:\n%s", msg)
	}
}

func TestEvaluation_JSONShape(t *testing.T) {
	ev := newEvaluation(session.VerdictPartial, "Almost.", "Remember the V.")
	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"answerStatus": "partial",
		"isCorrect":    false,
		"feedback":     "Almost.",
		"tip":          "Remember the V.",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}
	if len(got) != len(want) {
		t.Errorf("got keys %v, want exactly %d", got, len(want))
	}
}

func TestRequestFor(t *testing.T) {
	m := &catalog.Muscle{ID: "muscle-1", Name: "Deltoid"}
	q := quizgen.Question{ID: "q", Muscle: m, Type: quizgen.TypeFunction, CorrectAnswer: "Abducts the arm"}

	r := RequestFor(q, "lifts the arm")
	if r.MuscleName != "Deltoid" || r.CorrectAnswer != "Abducts the arm" || r.QuestionType != quizgen.TypeFunction || r.UserAnswer != "lifts the arm" {
		t.Errorf("RequestFor = %+v", r)
	}
}

package grading

import (
	"context"
	"errors"

	"github.com/myoquiz/myoquiz/internal/quizgen"
	"github.com/myoquiz/myoquiz/internal/session"
)

var (
	// ErrMissingFields is returned when the answer or the reference is blank.
	ErrMissingFields = errors.New("missing required fields")

	// ErrEvaluationFailed wraps every provider, parse or verdict failure.
	ErrEvaluationFailed = errors.New("failed to evaluate answer")

	// ErrInFlight is returned when a question already has a pending evaluation.
	ErrInFlight = errors.New("evaluation already in flight")
)

// Request is one free-text answer to grade.
type Request struct {
	UserAnswer    string               `json:"userAnswer"`
	CorrectAnswer string               `json:"correctAnswer"`
	QuestionType  quizgen.QuestionType `json:"questionType"`
	MuscleName    string               `json:"muscleName"`
}

// RequestFor builds a grading request for a question.
func RequestFor(q quizgen.Question, answer string) Request {
	r := Request{
		UserAnswer:    answer,
		CorrectAnswer: q.CorrectAnswer,
		QuestionType:  q.Type,
	}
	if q.Muscle != nil {
		r.MuscleName = q.Muscle.Name
	}
	return r
}

// Evaluation is a graded answer. It serializes to the
// {answerStatus, isCorrect, feedback, tip} response shape.
type Evaluation struct {
	session.Evaluation

	// IsCorrect mirrors Verdict == correct for two-way clients.
	IsCorrect bool `json:"isCorrect"`
}

func newEvaluation(v session.Verdict, feedback, tip string) *Evaluation {
	return &Evaluation{
		Evaluation: session.Evaluation{Verdict: v, Feedback: feedback, Tip: tip},
		IsCorrect:  v == session.VerdictCorrect,
	}
}

// Grader grades free-text answers.
type Grader interface {
	Evaluate(ctx context.Context, req Request) (*Evaluation, error)
}

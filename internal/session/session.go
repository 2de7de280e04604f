package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/myoquiz/myoquiz/internal/quizgen"
)

var (
	// ErrUnknownQuestion is returned when an answer names a question
	// that is not part of the session.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrInvalidVerdict is returned for answers without a known verdict.
	ErrInvalidVerdict = errors.New("invalid verdict")

	// ErrNoResolver is returned by Choose when the session was built
	// without a local resolver, as in free-text mode.
	ErrNoResolver = errors.New("session has no answer resolver")

	// ErrEmpty is returned by operations that need a current question.
	ErrEmpty = errors.New("session has no questions")

	// ErrComplete is returned for answers recorded after every question
	// was answered. Only Restart leaves the complete state.
	ErrComplete = errors.New("session is complete")
)

// Session is an in-memory quiz run: a fixed question sequence, a cursor,
// recorded answers, a fractional score and a streak.
//
// A Session is not safe for concurrent use. Callers serialize all
// transitions, for example by applying them from a single UI loop.
type Session struct {
	questions []quizgen.Question
	byID      map[string]int
	index     int

	answers map[string]Answer
	drafts  map[string]string

	score  float64
	streak int

	resolver Resolver
	generate func() []quizgen.Question
}

// Option configures a Session.
type Option func(*Session)

// WithResolver sets the strategy Choose uses to judge responses.
func WithResolver(r Resolver) Option {
	return func(s *Session) { s.resolver = r }
}

// New starts a session with questions from generate. Restart calls
// generate again for a fresh sequence.
func New(generate func() []quizgen.Question, opts ...Option) *Session {
	s := &Session{generate: generate}
	for _, o := range opts {
		o(s)
	}
	s.reset(generate())
	return s
}

// FromQuestions starts a session over a fixed question list. Restart
// reuses the same list.
func FromQuestions(questions []quizgen.Question, opts ...Option) *Session {
	qs := slices.Clone(questions)
	return New(func() []quizgen.Question { return qs }, opts...)
}

func (s *Session) reset(questions []quizgen.Question) {
	s.questions = slices.Clone(questions)
	s.byID = make(map[string]int, len(questions))
	for i, q := range s.questions {
		s.byID[q.ID] = i
	}
	s.index = 0
	s.answers = make(map[string]Answer, len(questions))
	s.drafts = make(map[string]string)
	s.score = 0
	s.streak = 0
}

// Restart regenerates the question sequence and clears every counter.
func (s *Session) Restart() {
	s.reset(s.generate())
}

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Index returns the 0-based cursor position.
func (s *Session) Index() int { return s.index }

// Score returns the running score, possibly fractional.
func (s *Session) Score() float64 { return s.score }

// Streak returns the number of consecutive first-time correct answers.
func (s *Session) Streak() int { return s.streak }

// Answered returns how many questions have a recorded answer.
func (s *Session) Answered() int { return len(s.answers) }

// IsComplete reports whether every question has a recorded answer.
// A session without questions is never complete.
func (s *Session) IsComplete() bool {
	return len(s.questions) > 0 && len(s.answers) == len(s.questions)
}

// Questions returns the question sequence.
func (s *Session) Questions() []quizgen.Question {
	return slices.Clone(s.questions)
}

// Question returns the question at index i.
func (s *Session) Question(i int) (quizgen.Question, bool) {
	if i < 0 || i >= len(s.questions) {
		return quizgen.Question{}, false
	}
	return s.questions[i], true
}

// Answer returns the recorded answer for a question.
func (s *Session) Answer(questionID string) (Answer, bool) {
	a, ok := s.answers[questionID]
	return a, ok
}

// Current returns the question under the cursor and its recorded
// answer, if any. An empty session yields the zero Question.
func (s *Session) Current() (q quizgen.Question, a Answer, answered bool) {
	if len(s.questions) == 0 {
		return quizgen.Question{}, Answer{}, false
	}
	q = s.questions[s.index]
	a, answered = s.answers[q.ID]
	return q, a, answered
}

// Record stores an answer for a question and reconciles score and streak.
//
// Re-recording an identical answer is a no-op. Revising an earlier
// answer first removes its credit (never dropping the score below zero)
// and then adds the new credit; the streak is left alone. Only a first
// answer moves the streak: correct extends it, incorrect resets it and
// partial keeps it. A complete session accepts no further answers.
func (s *Session) Record(questionID string, a Answer) error {
	if _, ok := s.byID[questionID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
	}
	if s.IsComplete() {
		return ErrComplete
	}
	if !a.Verdict.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidVerdict, a.Verdict)
	}

	prior, answered := s.answers[questionID]
	if answered && prior.same(a) {
		return nil
	}

	if answered {
		s.score = max(0, s.score-prior.Verdict.Credit())
	} else {
		switch a.Verdict {
		case VerdictCorrect:
			s.streak++
		case VerdictIncorrect:
			s.streak = 0
		}
	}
	s.score += a.Verdict.Credit()
	s.answers[questionID] = a
	return nil
}

// Choose resolves option against the current question with the
// session's resolver and records the result.
func (s *Session) Choose(option string) (Answer, error) {
	if s.resolver == nil {
		return Answer{}, ErrNoResolver
	}
	if len(s.questions) == 0 {
		return Answer{}, ErrEmpty
	}
	if s.IsComplete() {
		return Answer{}, ErrComplete
	}
	q, _, _ := s.Current()
	a, err := s.resolver.Resolve(q, option)
	if err != nil {
		return Answer{}, fmt.Errorf("resolve answer: %w", err)
	}
	if err := s.Record(q.ID, a); err != nil {
		return Answer{}, err
	}
	return a, nil
}

// ApplyEvaluation records an externally graded free-text answer. The
// question's draft is cleared once the answer is stored.
func (s *Session) ApplyEvaluation(questionID, submitted string, ev Evaluation) error {
	err := s.Record(questionID, Answer{
		Response: submitted,
		Verdict:  ev.Verdict,
		Feedback: ev.Feedback,
		Tip:      ev.Tip,
	})
	if err != nil {
		return err
	}
	delete(s.drafts, questionID)
	return nil
}

// SetDraft keeps ungraded free text for a question so it survives
// navigation and failed grading calls.
func (s *Session) SetDraft(questionID, text string) {
	if _, ok := s.byID[questionID]; !ok {
		return
	}
	if text == "" {
		delete(s.drafts, questionID)
		return
	}
	s.drafts[questionID] = text
}

// Draft returns the kept free text for a question.
func (s *Session) Draft(questionID string) string {
	return s.drafts[questionID]
}

// Next moves the cursor forward. It reports false at the last question.
func (s *Session) Next() bool {
	return s.JumpTo(s.index + 1)
}

// Previous moves the cursor back. It reports false at the first question.
func (s *Session) Previous() bool {
	return s.JumpTo(s.index - 1)
}

// JumpTo moves the cursor to i. Out-of-range indexes leave it unchanged.
func (s *Session) JumpTo(i int) bool {
	if i < 0 || i >= len(s.questions) {
		return false
	}
	s.index = i
	return true
}

// NextUnanswered returns the index of the first unanswered question
// after the cursor, wrapping around.
func (s *Session) NextUnanswered() (int, bool) {
	n := len(s.questions)
	for step := 1; step <= n; step++ {
		i := (s.index + step) % n
		if _, ok := s.answers[s.questions[i].ID]; !ok {
			return i, true
		}
	}
	return 0, false
}

package session

import (
	"github.com/myoquiz/myoquiz/internal/quizgen"
)

// Resolver turns a raw response into an Answer for a question.
type Resolver interface {
	Resolve(q quizgen.Question, response string) (Answer, error)
}

// ExactMatch resolves multiple-choice responses by comparing against
// the correct option. It only ever yields correct or incorrect.
type ExactMatch struct{}

// Resolve implements Resolver.
func (ExactMatch) Resolve(q quizgen.Question, response string) (Answer, error) {
	v := VerdictIncorrect
	if quizgen.CheckAnswer(q, response) {
		v = VerdictCorrect
	}
	return Answer{Response: response, Verdict: v}, nil
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(q quizgen.Question, response string) (Answer, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(q quizgen.Question, response string) (Answer, error) {
	return f(q, response)
}

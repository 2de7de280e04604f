package quizgen

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/myoquiz/myoquiz/internal/catalog"
)

// maxDistractors is the number of wrong options per question.
const maxDistractors = 3

// Generator builds randomized question sets from a catalog.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng   *rand.Rand
	newID func() string
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source, making output reproducible.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithIDFunc replaces the uuid suffix used in question IDs.
func WithIDFunc(f func() string) Option {
	return func(g *Generator) { g.newID = f }
}

// NewGenerator creates a Generator seeded from the clock.
func NewGenerator(opts ...Option) *Generator {
	seed := uint64(time.Now().UnixNano())
	g := &Generator{
		rng:   rand.New(rand.NewPCG(seed, seed>>1|1)),
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate creates questions for every muscle in the catalog.
//
// Each muscle gets min(questionsPerMuscle, len(types)) distinct types
// drawn at random. Pairs whose target field (or, for name questions,
// origin context) is missing are skipped, so a muscle may contribute
// fewer questions. The final sequence is shuffled.
func (g *Generator) Generate(cat *catalog.Catalog, questionsPerMuscle int, types []QuestionType) []Question {
	if cat == nil {
		return nil
	}
	return g.GenerateFor(cat.All(), questionsPerMuscle, types)
}

// GenerateFor is Generate over an explicit muscle list. Distractors are
// drawn from the same list.
func (g *Generator) GenerateFor(muscles []*catalog.Muscle, questionsPerMuscle int, types []QuestionType) []Question {
	types = NormalizeTypes(types)
	n := min(max(questionsPerMuscle, 1), len(types))

	var questions []Question
	for _, m := range muscles {
		for _, i := range g.rng.Perm(len(types))[:n] {
			if q, ok := g.build(m, muscles, types[i]); ok {
				questions = append(questions, q)
			}
		}
	}
	g.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	return questions
}

func (g *Generator) build(m *catalog.Muscle, muscles []*catalog.Muscle, t QuestionType) (Question, bool) {
	answer, ok := target(m, t)
	if !ok {
		return Question{}, false
	}
	text, ok := prompt(m, t)
	if !ok {
		return Question{}, false
	}

	options := append(g.distractors(m, muscles, t, answer), answer)
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return Question{
		ID:            fmt.Sprintf("%s-%s-%s", m.ID, t, g.newID()),
		Muscle:        m,
		Type:          t,
		Prompt:        text,
		CorrectAnswer: answer,
		Options:       options,
	}, true
}

// distractors picks up to maxDistractors distinct values of the target
// field from other muscles, excluding the correct answer.
func (g *Generator) distractors(m *catalog.Muscle, muscles []*catalog.Muscle, t QuestionType, answer string) []string {
	seen := map[string]bool{answer: true}
	var pool []string
	for _, other := range muscles {
		if other.ID == m.ID {
			continue
		}
		v, ok := target(other, t)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		pool = append(pool, v)
	}
	g.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > maxDistractors {
		pool = pool[:maxDistractors]
	}
	return pool
}

// Package settings holds the quiz settings and persists them as JSON.
package settings

import (
	"errors"
	"fmt"
	"slices"

	"github.com/myoquiz/myoquiz/internal/quizgen"
)

// DefaultQuestionsPerMuscle is the per-muscle question count when unset.
const DefaultQuestionsPerMuscle = 3

// Settings controls which questions a quiz is generated with.
type Settings struct {
	EnabledTypes       []quizgen.QuestionType `json:"enabledTypes"`
	QuestionsPerMuscle int                    `json:"questionsPerMuscle"`
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		EnabledTypes:       slices.Clone(quizgen.DefaultTypes),
		QuestionsPerMuscle: DefaultQuestionsPerMuscle,
	}
}

// Validate reports why s cannot be used as is.
func (s Settings) Validate() error {
	var errs []error
	if len(s.EnabledTypes) == 0 {
		errs = append(errs, errors.New("no question types enabled"))
	}
	for _, t := range s.EnabledTypes {
		if !t.Valid() {
			errs = append(errs, fmt.Errorf("unknown question type %q", t))
		}
	}
	if s.QuestionsPerMuscle < 1 {
		errs = append(errs, fmt.Errorf("questionsPerMuscle must be positive, got %d", s.QuestionsPerMuscle))
	}
	return errors.Join(errs...)
}

// Normalize returns s with duplicate types removed, or Default() if s is
// invalid. Invalid settings are never partially repaired.
func (s Settings) Normalize() Settings {
	if s.Validate() != nil {
		return Default()
	}
	return Settings{
		EnabledTypes:       quizgen.NormalizeTypes(s.EnabledTypes),
		QuestionsPerMuscle: s.QuestionsPerMuscle,
	}
}

// Enabled reports whether t is one of the enabled types.
func (s Settings) Enabled(t quizgen.QuestionType) bool {
	return slices.Contains(s.EnabledTypes, t)
}

// Toggle returns a copy of s with t switched on or off. The last
// enabled type cannot be switched off.
func (s Settings) Toggle(t quizgen.QuestionType) Settings {
	out := Settings{QuestionsPerMuscle: s.QuestionsPerMuscle}
	if !s.Enabled(t) {
		// Keep the canonical type order.
		for _, at := range quizgen.AllTypes {
			if at == t || s.Enabled(at) {
				out.EnabledTypes = append(out.EnabledTypes, at)
			}
		}
		return out
	}
	if len(s.EnabledTypes) == 1 {
		out.EnabledTypes = slices.Clone(s.EnabledTypes)
		return out
	}
	for _, et := range s.EnabledTypes {
		if et != t {
			out.EnabledTypes = append(out.EnabledTypes, et)
		}
	}
	return out
}

// Equal reports whether two settings select the same questions.
func (s Settings) Equal(o Settings) bool {
	return s.QuestionsPerMuscle == o.QuestionsPerMuscle && slices.Equal(s.EnabledTypes, o.EnabledTypes)
}

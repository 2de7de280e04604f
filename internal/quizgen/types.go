package quizgen

import "github.com/myoquiz/myoquiz/internal/catalog"

// QuestionType selects which muscle fact a question asks about.
type QuestionType string

const (
	TypeOrigin    QuestionType = "origin"
	TypeInsertion QuestionType = "insertion"
	TypeFunction  QuestionType = "function"
	TypeName      QuestionType = "name"
	TypeLatinName QuestionType = "latinName"
)

// AllTypes lists every question type in display order.
var AllTypes = []QuestionType{TypeOrigin, TypeInsertion, TypeFunction, TypeName, TypeLatinName}

// DefaultTypes is the set used when no types are enabled. Name questions
// are opt-in.
var DefaultTypes = []QuestionType{TypeOrigin, TypeInsertion, TypeFunction, TypeLatinName}

// ParseType returns the question type with the given wire name.
func ParseType(s string) (QuestionType, bool) {
	for _, t := range AllTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	_, ok := ParseType(string(t))
	return ok
}

// Label returns a short human-readable name for the type.
func (t QuestionType) Label() string {
	switch t {
	case TypeOrigin:
		return "Origin"
	case TypeInsertion:
		return "Insertion"
	case TypeFunction:
		return "Function"
	case TypeName:
		return "Muscle name"
	case TypeLatinName:
		return "Latin name"
	}
	return string(t)
}

// NormalizeTypes drops unknown and repeated types, keeping first-seen
// order. An empty result falls back to DefaultTypes.
func NormalizeTypes(types []QuestionType) []QuestionType {
	seen := make(map[QuestionType]bool, len(types))
	out := make([]QuestionType, 0, len(types))
	for _, t := range types {
		if !t.Valid() || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return append([]QuestionType(nil), DefaultTypes...)
	}
	return out
}

// Question is one generated quiz item.
type Question struct {
	// ID is "<muscleID>-<type>-<uuid>", unique even when the same
	// muscle and type are generated twice.
	ID string `json:"id"`

	// Muscle is shared with the catalog and must not be modified.
	Muscle *catalog.Muscle `json:"muscle"`

	Type QuestionType `json:"questionType"`

	// Prompt is the question text shown to the learner.
	Prompt string `json:"question"`

	// CorrectAnswer is the target field value at generation time.
	CorrectAnswer string `json:"correctAnswer"`

	// Options holds the correct answer plus up to three distinct
	// distractors, shuffled. Free-text quizzes ignore it.
	Options []string `json:"options"`
}

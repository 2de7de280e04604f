package quizgen

import (
	"fmt"

	"github.com/myoquiz/myoquiz/internal/catalog"
)

// contextRunes caps the origin excerpt shown in name questions.
const contextRunes = 50

// target returns the field a question of type t asks for.
func target(m *catalog.Muscle, t QuestionType) (string, bool) {
	switch t {
	case TypeOrigin:
		return m.Origin.Value()
	case TypeInsertion:
		return m.Insertion.Value()
	case TypeFunction:
		return m.Function.Value()
	case TypeName:
		return m.Name, m.Name != ""
	case TypeLatinName:
		return m.LatinName.Value()
	}
	return "", false
}

// prompt renders the question text. Name questions need the origin as
// context and report false when it is missing.
func prompt(m *catalog.Muscle, t QuestionType) (string, bool) {
	switch t {
	case TypeOrigin:
		return fmt.Sprintf("What is the origin of the muscle %q?", m.Name), true
	case TypeInsertion:
		return fmt.Sprintf("What is the insertion of the muscle %q?", m.Name), true
	case TypeFunction:
		return fmt.Sprintf("What is the function of the muscle %q?", m.Name), true
	case TypeLatinName:
		return fmt.Sprintf("What is the Latin name of the muscle %q?", m.Name), true
	case TypeName:
		origin, ok := m.Origin.Value()
		if !ok {
			return "", false
		}
		return fmt.Sprintf("Which muscle has the origin %q?", excerpt(origin, contextRunes)), true
	}
	return "", false
}

// excerpt truncates s to n runes, marking the cut with "...".
func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

package session

import "math"

// Stats is a snapshot of derived session figures.
type Stats struct {
	Total     int
	Answered  int
	Position  int // 1-based cursor position, 0 for an empty session
	Correct   int
	Partial   int
	Incorrect int

	Score  float64
	Streak int

	// Accuracy is Score/Answered in [0, 1], 0 when nothing is answered.
	Accuracy float64

	// CorrectDisplay is the score rounded for display.
	CorrectDisplay int

	Complete bool
}

// Stats computes the current figures.
func (s *Session) Stats() Stats {
	st := Stats{
		Total:          len(s.questions),
		Answered:       len(s.answers),
		Score:          s.score,
		Streak:         s.streak,
		CorrectDisplay: int(math.Round(s.score)),
		Complete:       s.IsComplete(),
	}
	if st.Total > 0 {
		st.Position = s.index + 1
	}
	for _, a := range s.answers {
		switch a.Verdict {
		case VerdictCorrect:
			st.Correct++
		case VerdictPartial:
			st.Partial++
		case VerdictIncorrect:
			st.Incorrect++
		}
	}
	if st.Answered > 0 {
		st.Accuracy = s.score / float64(st.Answered)
	}
	return st
}

// AccuracyPercent returns Accuracy scaled to 0-100.
func (st Stats) AccuracyPercent() float64 {
	return st.Accuracy * 100
}

package session

// Verdict classifies a recorded answer.
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictPartial   Verdict = "partial"
	VerdictIncorrect Verdict = "incorrect"
)

// ParseVerdict returns the verdict with the given wire name.
func ParseVerdict(s string) (Verdict, bool) {
	switch v := Verdict(s); v {
	case VerdictCorrect, VerdictPartial, VerdictIncorrect:
		return v, true
	}
	return "", false
}

// Valid reports whether v is one of the three known verdicts.
func (v Verdict) Valid() bool {
	_, ok := ParseVerdict(string(v))
	return ok
}

// Credit is the score contribution of the verdict.
func (v Verdict) Credit() float64 {
	switch v {
	case VerdictCorrect:
		return 1
	case VerdictPartial:
		return 0.5
	}
	return 0
}

// Evaluation is a verdict produced outside the session, typically by
// the AI grader for a free-text answer.
type Evaluation struct {
	Verdict  Verdict `json:"answerStatus"`
	Feedback string  `json:"feedback"`

	// Tip is a short mnemonic, usually present when the verdict is not correct.
	Tip string `json:"tip"`
}

// Answer is what the session records for one question.
type Answer struct {
	// Response is the chosen option or the submitted free text.
	Response string

	Verdict Verdict

	// Feedback and Tip are only set for graded free-text answers.
	Feedback string
	Tip      string
}

// IsCorrect mirrors Verdict == VerdictCorrect for two-way callers.
func (a Answer) IsCorrect() bool {
	return a.Verdict == VerdictCorrect
}

// same reports whether b would record nothing new over a.
func (a Answer) same(b Answer) bool {
	return a.Response == b.Response && a.Verdict == b.Verdict
}

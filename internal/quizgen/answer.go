package quizgen

// CheckAnswer reports whether chosen is the correct option. Options are
// copied verbatim from the catalog, so comparison is exact.
func CheckAnswer(q Question, chosen string) bool {
	return chosen == q.CorrectAnswer
}

package quiz

import "github.com/myoquiz/myoquiz/internal/grading"

// evaluatedMsg carries a finished free-text evaluation.
type evaluatedMsg struct {
	Result grading.Result
}

// RestartMsg asks the quiz under the summary to start over.
type RestartMsg struct{}

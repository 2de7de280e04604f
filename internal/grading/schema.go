package grading

import "github.com/myoquiz/myoquiz/internal/llm"

// EvaluationSchema describes the grader's JSON reply. isCorrect is the
// older two-way field and is only consulted when answerStatus is absent.
var EvaluationSchema = &llm.Schema{
	Name:        "answer-evaluation",
	Description: "Three-way verdict on a free-text anatomy answer with feedback and a memory tip",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answerStatus": map[string]any{
				"type":        "string",
				"enum":        []any{"correct", "partial", "incorrect"},
				"description": "Verdict for the learner's answer",
			},
			"isCorrect": map[string]any{
				"type":        "boolean",
				"description": "Legacy two-way verdict",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Why the answer is correct, partially correct or incorrect",
			},
			"tip": map[string]any{
				"type":        "string",
				"description": "Short mnemonic when the answer is not fully correct",
			},
		},
		"required": []any{"feedback"},
	},
}

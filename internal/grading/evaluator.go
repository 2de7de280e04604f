package grading

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/myoquiz/myoquiz/internal/llm"
	"github.com/myoquiz/myoquiz/internal/quizgen"
	"github.com/myoquiz/myoquiz/internal/session"
)

// Purpose labels grading requests in the LLM event log.
const Purpose = "answer-eval"

// EvaluatorConfig holds configuration for the LLM grader.
type EvaluatorConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultEvaluatorConfig returns sensible defaults.
func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{
		MaxTokens:   512,
		Temperature: 0.3,
	}
}

// Evaluator grades free-text answers with a language model.
type Evaluator struct {
	provider llm.Provider
	cfg      EvaluatorConfig
}

// NewEvaluator creates an LLM-backed evaluator.
func NewEvaluator(provider llm.Provider, cfg EvaluatorConfig) *Evaluator {
	return &Evaluator{provider: provider, cfg: cfg}
}

// evaluationOutput is the raw LLM response.
type evaluationOutput struct {
	AnswerStatus *string `json:"answerStatus"`
	IsCorrect    *bool   `json:"isCorrect"`
	Feedback     string  `json:"feedback"`
	Tip          string  `json:"tip"`
}

// Evaluate grades req. Blank fields fail with ErrMissingFields; any
// other failure wraps ErrEvaluationFailed. There is no fallback verdict.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (*Evaluation, error) {
	if strings.TrimSpace(req.UserAnswer) == "" || strings.TrimSpace(req.CorrectAnswer) == "" {
		return nil, ErrMissingFields
	}

	ctx = llm.WithPurpose(ctx, Purpose)

	userMsg, err := buildEvaluationMessage(req)
	if err != nil {
		return nil, fmt.Errorf("%w: build prompt: %w", ErrEvaluationFailed, err)
	}

	resp, err := e.provider.Generate(ctx, llm.Request{
		System: evaluationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      EvaluationSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEvaluationFailed, err)
	}

	ev, err := parseEvaluation(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEvaluationFailed, err)
	}
	return ev, nil
}

func parseEvaluation(content []byte) (*Evaluation, error) {
	var raw evaluationOutput
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse evaluation response: %w", err)
	}

	var verdict session.Verdict
	switch {
	case raw.AnswerStatus != nil && *raw.AnswerStatus != "":
		v, ok := session.ParseVerdict(*raw.AnswerStatus)
		if !ok {
			return nil, fmt.Errorf("unknown answerStatus %q", *raw.AnswerStatus)
		}
		verdict = v
	case raw.IsCorrect != nil:
		verdict = session.VerdictIncorrect
		if *raw.IsCorrect {
			verdict = session.VerdictCorrect
		}
	default:
		return nil, fmt.Errorf("response has neither answerStatus nor isCorrect")
	}

	return newEvaluation(verdict, raw.Feedback, raw.Tip), nil
}

const evaluationSystemPrompt = `You are an expert assistant grading answers in a muscle anatomy quiz. Decide whether the learner's answer is correct with respect to the reference answer from the database.

Rules - be FAIR and reward knowledge:
1. The answer must be SEMANTICALLY correct. It does not have to match the reference word for word.
2. Accept different wording with the same meaning. If the learner clearly knows what they are talking about, reward it.
3. Ignore minor grammar mistakes or typos when the meaning stays clear.
4. If the answer contains correct information but is incomplete or only partly right, mark it "partial".
5. If the answer contains wrong information, mark it "incorrect".
6. If the answer is fully correct, even if phrased differently, mark it "correct".
7. Do not give credit away: the answer must contain correct facts, not generic or vague descriptions.
8. When reasonably possible prefer "correct" or "partial" over "incorrect" if the learner shows understanding.

Categories:
- "correct": fully correct, possibly phrased differently; all key facts are identified.
- "partial": some correct elements but incomplete or partly right (for example only one of several insertion points, or only part of the function).
- "incorrect": wrong or containing false information; no demonstrated knowledge.

Always reply with a JSON object:
{
  "answerStatus": "correct" | "partial" | "incorrect",
  "feedback": "why the answer is correct, partially correct or incorrect and what should change",
  "tip": "only when answerStatus is partial or incorrect: a short (1-3 sentence) memory aid such as an acronym, rhyme, visual association or a logical link to the muscle's function; may be empty when correct"
}`

var evaluationUserTemplate = template.Must(template.New("evaluation").Parse(`Grade the following answer:

Question type: {{.Type}}
Muscle: {{.MuscleName}}
Reference answer from the database: "{{.CorrectAnswer}}"
Learner's answer: "{{.UserAnswer}}"

Is the learner's answer correct?
{{with .TipHint}}
{{.}}
{{end}}`))

// tipHints frames the memory tip per question type.
var tipHints = map[quizgen.QuestionType]string{
	quizgen.TypeOrigin:    "The tip should help remember the muscle's origin: use anatomical relationships, visual associations or mnemonics.",
	quizgen.TypeInsertion: "The tip should help remember the muscle's insertion: use anatomical relationships, visual associations or mnemonics.",
	quizgen.TypeFunction:  "The tip should help remember the muscle's function: explain the logic of the movement, a practical link or a visual image of the motion.",
	quizgen.TypeLatinName: "The tip should help remember the Latin name: use a translation, the etymology or a mnemonic.",
	quizgen.TypeName:      "The tip should help remember the muscle's name: use visual associations, logical links or mnemonics.",
}

func buildEvaluationMessage(req Request) (string, error) {
	data := struct {
		Request
		Type    string
		TipHint string
	}{
		Request: req,
		Type:    string(req.QuestionType),
		TipHint: tipHints[req.QuestionType],
	}
	var buf bytes.Buffer
	if err := evaluationUserTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Package quiz is the quiz screen, in multiple-choice or free-text mode.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/myoquiz/myoquiz/internal/catalog"
	"github.com/myoquiz/myoquiz/internal/grading"
	"github.com/myoquiz/myoquiz/internal/quizgen"
	"github.com/myoquiz/myoquiz/internal/router"
	"github.com/myoquiz/myoquiz/internal/screen"
	"github.com/myoquiz/myoquiz/internal/screens/summary"
	"github.com/myoquiz/myoquiz/internal/session"
	"github.com/myoquiz/myoquiz/internal/settings"
	"github.com/myoquiz/myoquiz/internal/ui/components"
	"github.com/myoquiz/myoquiz/internal/ui/layout"
)

// Mode selects how answers are given and judged.
type Mode int

const (
	// MultipleChoice picks one of the generated options, judged locally.
	MultipleChoice Mode = iota
	// FreeText types an answer that a language model grades.
	FreeText
)

func (m Mode) String() string {
	if m == FreeText {
		return "AI Quiz"
	}
	return "Quiz"
}

// Deps are the quiz collaborators. Dispatcher is required in FreeText mode.
type Deps struct {
	Catalog    *catalog.Catalog
	Generator  *quizgen.Generator
	Settings   settings.Settings
	Dispatcher *grading.Dispatcher
}

// QuizScreen runs one quiz session.
type QuizScreen struct {
	mode Mode
	deps Deps
	cfg  settings.Settings
	sess *session.Session

	choices components.MultiChoice
	input   components.TextInput

	// gradeErr is the last grading failure for the question gradeErrFor.
	gradeErr    string
	gradeErrFor string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a quiz screen and generates its first question set.
func New(mode Mode, deps Deps) *QuizScreen {
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}
	if deps.Generator == nil {
		deps.Generator = quizgen.NewGenerator()
	}
	s := &QuizScreen{
		mode:  mode,
		deps:  deps,
		cfg:   deps.Settings.Normalize(),
		input: components.NewTextInput("Type your answer...", 300),
	}

	var opts []session.Option
	if mode == MultipleChoice {
		opts = append(opts, session.WithResolver(session.ExactMatch{}))
	}
	s.sess = session.New(s.generate, opts...)
	s.syncQuestion()
	return s
}

func (s *QuizScreen) generate() []quizgen.Question {
	return s.deps.Generator.Generate(s.deps.Catalog, s.cfg.QuestionsPerMuscle, s.cfg.EnabledTypes)
}

// Session exposes the running session.
func (s *QuizScreen) Session() *session.Session { return s.sess }

func (s *QuizScreen) Init() tea.Cmd {
	if s.mode == FreeText {
		return s.input.Init()
	}
	return nil
}

func (s *QuizScreen) Title() string {
	return s.mode.String()
}

func (s *QuizScreen) Status() string {
	st := s.sess.Stats()
	return fmt.Sprintf("Score %s  Streak %d  %d/%d", formatScore(st.Score), st.Streak, st.Position, st.Total)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.mode == FreeText {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Check"},
			{Key: "Tab/S-Tab", Description: "Next/Prev"},
			{Key: "Ctrl+R", Description: "Restart"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "U", Description: "Unanswered"},
		{Key: "R", Description: "Restart"},
		{Key: "Esc", Description: "Back"},
	}
}

// Close cancels pending evaluations.
func (s *QuizScreen) Close() {
	if s.deps.Dispatcher != nil {
		s.deps.Dispatcher.CancelAll()
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.SettingsChangedMsg:
		if !msg.Settings.Equal(s.cfg) {
			s.cfg = msg.Settings.Normalize()
			s.restart()
		}
		return s, nil

	case RestartMsg:
		s.restart()
		return s, nil

	case components.ChoiceMsg:
		return s.choose(msg.Option)

	case evaluatedMsg:
		return s.handleEvaluated(msg.Result)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.mode == FreeText {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch key {
	case "tab", "pgdown":
		s.move(s.sess.Next)
		return s, nil
	case "shift+tab", "pgup":
		s.move(s.sess.Previous)
		return s, nil
	case "ctrl+r":
		s.restart()
		return s, nil
	}

	if s.sess.Len() == 0 {
		return s, nil
	}

	if s.mode == FreeText {
		if s.sess.IsComplete() {
			// Review mode: the graded answers stay as they are.
			return s, nil
		}
		if key == "enter" {
			return s, s.submit()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		q, a, answered := s.sess.Current()
		s.sess.SetDraft(q.ID, s.input.Value())
		if answered && s.input.Value() == a.Response {
			s.input.Mark(a.Verdict)
		} else {
			s.input.Mark("")
		}
		return s, cmd
	}

	switch key {
	case "left", "h", "p":
		s.move(s.sess.Previous)
		return s, nil
	case "right", "l", "n":
		s.move(s.sess.Next)
		return s, nil
	case "u":
		if i, ok := s.sess.NextUnanswered(); ok {
			s.move(func() bool { return s.sess.JumpTo(i) })
		}
		return s, nil
	case "r":
		s.restart()
		return s, nil
	}

	if s.sess.IsComplete() {
		return s, nil
	}
	var cmd tea.Cmd
	s.choices, cmd = s.choices.Update(msg)
	return s, cmd
}

// choose records a multiple-choice pick.
// A completed quiz ignores picks until it is restarted.
func (s *QuizScreen) choose(option string) (screen.Screen, tea.Cmd) {
	if s.sess.IsComplete() {
		return s, nil
	}
	a, err := s.sess.Choose(option)
	if err != nil {
		return s, nil
	}
	q, _, _ := s.sess.Current()
	s.choices.Reveal(a.Response, q.CorrectAnswer)
	return s, s.completionCmd()
}

// submit sends the typed answer for grading.
func (s *QuizScreen) submit() tea.Cmd {
	if s.sess.IsComplete() {
		return nil
	}
	if s.deps.Dispatcher == nil {
		s.gradeErr = "AI grading is not configured"
		q, _, _ := s.sess.Current()
		s.gradeErrFor = q.ID
		return nil
	}
	q, prior, answered := s.sess.Current()
	text := strings.TrimSpace(s.input.Value())
	if text == "" || s.deps.Dispatcher.Pending(q.ID) {
		return nil
	}
	if answered && prior.Response == text {
		return nil
	}
	s.sess.SetDraft(q.ID, s.input.Value())
	s.gradeErr, s.gradeErrFor = "", ""

	ch, _, err := s.deps.Dispatcher.Submit(context.Background(), q.ID, grading.RequestFor(q, text))
	if err != nil {
		s.gradeErr, s.gradeErrFor = err.Error(), q.ID
		return nil
	}
	return waitForEvaluation(ch)
}

func waitForEvaluation(ch <-chan grading.Result) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return evaluatedMsg{Result: r}
	}
}

func (s *QuizScreen) handleEvaluated(r grading.Result) (screen.Screen, tea.Cmd) {
	q, _, _ := s.sess.Current()
	if r.QuestionID != q.ID {
		// The learner moved on; the draft is still kept for later.
		return s, nil
	}
	if r.Err != nil {
		s.gradeErr, s.gradeErrFor = r.Err.Error(), q.ID
		return s, nil
	}

	if err := s.sess.ApplyEvaluation(q.ID, r.Request.UserAnswer, r.Evaluation.Evaluation); err != nil {
		if !errors.Is(err, session.ErrComplete) {
			s.gradeErr, s.gradeErrFor = err.Error(), q.ID
		}
		return s, nil
	}
	s.input.Mark(r.Evaluation.Verdict)
	return s, s.completionCmd()
}

// completionCmd opens the summary once the last open question has been
// answered. A complete session rejects further answers, so this fires
// once per run.
func (s *QuizScreen) completionCmd() tea.Cmd {
	if !s.sess.IsComplete() {
		return nil
	}
	st := s.sess.Stats()
	title := s.mode.String()
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: summary.New(title, st, func() tea.Msg { return RestartMsg{} })}
	}
}

// move runs a navigation step, dropping any in-flight evaluation for
// the question being left.
func (s *QuizScreen) move(step func() bool) {
	q, _, _ := s.sess.Current()
	if !step() {
		return
	}
	if s.deps.Dispatcher != nil {
		s.deps.Dispatcher.Cancel(q.ID)
	}
	s.syncQuestion()
}

func (s *QuizScreen) restart() {
	if s.deps.Dispatcher != nil {
		s.deps.Dispatcher.CancelAll()
	}
	s.sess.Restart()
	s.gradeErr, s.gradeErrFor = "", ""
	s.syncQuestion()
}

// syncQuestion loads the per-question widgets for the current question.
func (s *QuizScreen) syncQuestion() {
	q, a, answered := s.sess.Current()
	s.choices = components.NewMultiChoice(q.Options)
	if answered {
		s.choices.Reveal(a.Response, q.CorrectAnswer)
	}

	text := s.sess.Draft(q.ID)
	if text == "" && answered {
		text = a.Response
	}
	s.input.Reset(text)
	if answered && text == a.Response {
		s.input.Mark(a.Verdict)
	}
}

func (s *QuizScreen) evaluating() bool {
	if s.deps.Dispatcher == nil {
		return false
	}
	q, _, _ := s.sess.Current()
	return s.deps.Dispatcher.Pending(q.ID)
}

func formatScore(v float64) string {
	return strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.1f", v), "0"), ".")
}

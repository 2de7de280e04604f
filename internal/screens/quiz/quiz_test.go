package quiz

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/myoquiz/myoquiz/internal/catalog"
	"github.com/myoquiz/myoquiz/internal/grading"
	"github.com/myoquiz/myoquiz/internal/llm"
	"github.com/myoquiz/myoquiz/internal/quizgen"
	"github.com/myoquiz/myoquiz/internal/router"
	"github.com/myoquiz/myoquiz/internal/screen"
	"github.com/myoquiz/myoquiz/internal/screens/summary"
	"github.com/myoquiz/myoquiz/internal/session"
	"github.com/myoquiz/myoquiz/internal/settings"
	"github.com/myoquiz/myoquiz/internal/ui/components"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Muscle{
		{ID: "a", Name: "Deltoid", Group: "Shoulder", Insertion: catalog.NewField("Deltoid tuberosity of humerus")},
		{ID: "b", Name: "Biceps brachii", Group: "Arm", Insertion: catalog.NewField("Radial tuberosity")},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func testDeps(t *testing.T) Deps {
	return Deps{
		Catalog:   testCatalog(t),
		Generator: quizgen.NewGenerator(quizgen.WithRand(rand.New(rand.NewPCG(1, 2)))),
		Settings: settings.Settings{
			EnabledTypes:       []quizgen.QuestionType{quizgen.TypeInsertion},
			QuestionsPerMuscle: 1,
		},
	}
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func typeText(s *QuizScreen, text string) {
	for _, r := range text {
		s.Update(key(r))
	}
}

// run executes cmd and feeds its message back into the screen.
func run(t *testing.T, s *QuizScreen, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	_, next := s.Update(cmd())
	return next
}

func TestQuiz_GeneratesFromSettings(t *testing.T) {
	s := New(MultipleChoice, testDeps(t))
	if got := s.Session().Len(); got != 2 {
		t.Fatalf("Len = %d, want 2", got)
	}
	for _, q := range s.Session().Questions() {
		if q.Type != quizgen.TypeInsertion {
			t.Errorf("question type = %q, want insertion", q.Type)
		}
	}
	if s.Title() != "Quiz" {
		t.Errorf("Title = %q, want Quiz", s.Title())
	}
}

func TestQuiz_DigitKeyChoosesOption(t *testing.T) {
	s := New(MultipleChoice, testDeps(t))
	q, _, _ := s.Session().Current()

	_, cmd := s.Update(key('1'))
	run(t, s, cmd)

	a, ok := s.Session().Answer(q.ID)
	if !ok {
		t.Fatal("question not answered after pressing 1")
	}
	if a.Response != q.Options[0] {
		t.Errorf("Response = %q, want %q", a.Response, q.Options[0])
	}
	if !s.choices.Revealed() {
		t.Error("choices not revealed after answering")
	}
}

func TestQuiz_CorrectChoiceScores(t *testing.T) {
	s := New(MultipleChoice, testDeps(t))
	q, _, _ := s.Session().Current()

	s.Update(choiceFor(q.CorrectAnswer))

	if s.Session().Score() != 1 {
		t.Errorf("Score = %v, want 1", s.Session().Score())
	}
	if s.Session().Streak() != 1 {
		t.Errorf("Streak = %d, want 1", s.Session().Streak())
	}
	if !strings.Contains(s.Status(), "Score 1") {
		t.Errorf("Status = %q, want score 1", s.Status())
	}
}

func choiceFor(option string) tea.Msg {
	return components.ChoiceMsg{Option: option}
}

func TestQuiz_Navigation(t *testing.T) {
	s := New(MultipleChoice, testDeps(t))
	if s.Session().Index() != 0 {
		t.Fatalf("Index = %d, want 0", s.Session().Index())
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if s.Session().Index() != 1 {
		t.Errorf("after right Index = %d, want 1", s.Session().Index())
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if s.Session().Index() != 1 {
		t.Errorf("right at end moved to %d", s.Session().Index())
	}
	s.Update(key('h'))
	if s.Session().Index() != 0 {
		t.Errorf("after h Index = %d, want 0", s.Session().Index())
	}
}

func TestQuiz_JumpToUnanswered(t *testing.T) {
	s := New(MultipleChoice, testDeps(t))
	q, _, _ := s.Session().Current()
	s.Update(choiceFor(q.CorrectAnswer))
	s.Update(key('u'))
	if s.Session().Index() != 1 {
		t.Errorf("Index = %d, want 1", s.Session().Index())
	}
}

func TestQuiz_CompletionPushesSummary(t *testing.T) {
	s := New(MultipleChoice, testDeps(t))

	q, _, _ := s.Session().Current()
	_, cmd := s.Update(choiceFor(q.CorrectAnswer))
	if cmd != nil {
		t.Fatal("summary pushed before the quiz was complete")
	}

	s.Update(key('n'))
	q, _, _ = s.Session().Current()
	_, cmd = s.Update(choiceFor(q.CorrectAnswer))
	if cmd == nil {
		t.Fatal("expected summary command on completion")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("pushed %T, want *summary.SummaryScreen", push.Screen)
	}

}

func TestQuiz_CompletedQuizIsLocked(t *testing.T) {
	s := New(MultipleChoice, testDeps(t))
	for range s.Session().Len() {
		q, _, _ := s.Session().Current()
		s.Update(choiceFor(q.CorrectAnswer))
		s.Update(key('n'))
	}
	if !s.Session().IsComplete() {
		t.Fatal("quiz should be complete")
	}
	score, streak := s.Session().Score(), s.Session().Streak()

	// Back from the summary, the learner reviews a question.
	s.Update(key('p'))
	q, a, _ := s.Session().Current()
	_, cmd := s.Update(key('2'))
	if cmd != nil {
		t.Error("digit key produced a command on a completed quiz")
	}
	_, cmd = s.Update(choiceFor(q.Options[len(q.Options)-1]))
	if cmd != nil {
		t.Error("summary pushed again after completion")
	}

	if s.Session().Score() != score || s.Session().Streak() != streak {
		t.Errorf("score/streak = %v/%d, want %v/%d", s.Session().Score(), s.Session().Streak(), score, streak)
	}
	if got, _ := s.Session().Answer(q.ID); got != a {
		t.Errorf("answer = %+v, want unchanged %+v", got, a)
	}
	if !strings.Contains(s.View(80, 24), "Review mode") {
		t.Error("view does not show review mode")
	}

	s.Update(key('r'))
	if s.Session().IsComplete() || s.Session().Answered() != 0 {
		t.Error("restart should reopen the quiz")
	}
}

func TestQuiz_Restart(t *testing.T) {
	s := New(MultipleChoice, testDeps(t))
	q, _, _ := s.Session().Current()
	s.Update(choiceFor(q.CorrectAnswer))

	s.Update(RestartMsg{})
	if s.Session().Answered() != 0 || s.Session().Score() != 0 {
		t.Errorf("after restart Answered = %d Score = %v, want 0/0",
			s.Session().Answered(), s.Session().Score())
	}
	if s.choices.Revealed() {
		t.Error("choices still revealed after restart")
	}
}

func TestQuiz_SettingsChangeRestarts(t *testing.T) {
	s := New(MultipleChoice, testDeps(t))
	q, _, _ := s.Session().Current()
	s.Update(choiceFor(q.CorrectAnswer))

	s.Update(screen.SettingsChangedMsg{Settings: testDeps(t).Settings})
	if s.Session().Answered() != 1 {
		t.Error("unchanged settings restarted the quiz")
	}

	s.Update(screen.SettingsChangedMsg{Settings: settings.Settings{
		EnabledTypes:       []quizgen.QuestionType{quizgen.TypeInsertion},
		QuestionsPerMuscle: 2,
	}})
	if s.Session().Answered() != 0 {
		t.Error("changed settings did not restart the quiz")
	}
	if s.Session().Len() != 4 {
		t.Errorf("Len = %d, want 4", s.Session().Len())
	}
}

func freeTextScreen(t *testing.T, mock *llm.MockProvider) (*QuizScreen, *grading.Dispatcher) {
	t.Helper()
	d := grading.NewDispatcher(grading.NewEvaluator(mock, grading.DefaultEvaluatorConfig()))
	t.Cleanup(d.Close)
	deps := testDeps(t)
	deps.Dispatcher = d
	return New(FreeText, deps), d
}

func TestQuiz_FreeTextSubmit(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"answerStatus": "partial",
		"feedback":     "Close.",
		"tip":          "Think of the shoulder cap.",
	}))
	s, _ := freeTextScreen(t, mock)
	q, _, _ := s.Session().Current()

	typeText(s, "humerus")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	run(t, s, cmd)

	a, ok := s.Session().Answer(q.ID)
	if !ok {
		t.Fatal("question not answered after evaluation")
	}
	if a.Verdict != session.VerdictPartial {
		t.Errorf("Verdict = %q, want partial", a.Verdict)
	}
	if a.Response != "humerus" {
		t.Errorf("Response = %q, want humerus", a.Response)
	}
	if s.Session().Score() != 0.5 {
		t.Errorf("Score = %v, want 0.5", s.Session().Score())
	}

	call, _ := mock.LastCall()
	if !strings.Contains(call.Messages[0].Content, q.CorrectAnswer) {
		t.Error("grading request does not carry the reference answer")
	}

	// Resubmitting the same text is a no-op.
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("unchanged answer was resubmitted")
	}
}

func TestQuiz_FreeTextLockedAfterCompletion(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockJSON(map[string]any{"answerStatus": "correct", "feedback": "Yes."}),
		llm.MockJSON(map[string]any{"answerStatus": "incorrect", "feedback": "No."}),
	)
	s, _ := freeTextScreen(t, mock)

	for range s.Session().Len() {
		typeText(s, "humerus")
		_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		run(t, s, cmd)
		s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	}
	if !s.Session().IsComplete() {
		t.Fatal("quiz should be complete")
	}
	score := s.Session().Score()

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	typeText(s, " head")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("answer submitted on a completed quiz")
	}
	if s.Session().Score() != score {
		t.Errorf("Score = %v, want %v", s.Session().Score(), score)
	}
	if s.input.Value() != "humerus" {
		t.Errorf("input = %q, want the graded answer", s.input.Value())
	}
}

func TestQuiz_FreeTextEmptyIgnored(t *testing.T) {
	s, _ := freeTextScreen(t, llm.NewMockProvider())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("blank answer was submitted")
	}
}

func TestQuiz_FreeTextErrorKeepsDraft(t *testing.T) {
	s, _ := freeTextScreen(t, llm.NewMockProvider(llm.MockResponse{Err: errors.New("rate limited")}))
	q, _, _ := s.Session().Current()

	typeText(s, "humerus")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	run(t, s, cmd)

	if _, ok := s.Session().Answer(q.ID); ok {
		t.Error("failed evaluation recorded an answer")
	}
	if s.gradeErr == "" || s.gradeErrFor != q.ID {
		t.Errorf("gradeErr = %q for %q, want an error for %q", s.gradeErr, s.gradeErrFor, q.ID)
	}
	if s.input.Value() != "humerus" {
		t.Errorf("input = %q, want humerus", s.input.Value())
	}
	if !strings.Contains(s.View(80, 24), "Your answer is kept") {
		t.Error("view does not show the grading error")
	}
}

func TestQuiz_DraftSurvivesNavigation(t *testing.T) {
	s, _ := freeTextScreen(t, llm.NewMockProvider())
	q, _, _ := s.Session().Current()

	typeText(s, "hum")
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.input.Value() != "" {
		t.Errorf("second question input = %q, want empty", s.input.Value())
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.input.Value() != "hum" {
		t.Errorf("input after return = %q, want hum", s.input.Value())
	}
	if s.Session().Draft(q.ID) != "hum" {
		t.Errorf("Draft = %q, want hum", s.Session().Draft(q.ID))
	}
}

func TestQuiz_StaleEvaluationDiscarded(t *testing.T) {
	s, _ := freeTextScreen(t, llm.NewMockProvider())
	first, _, _ := s.Session().Current()
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})

	ev := &grading.Evaluation{Evaluation: session.Evaluation{Verdict: session.VerdictCorrect}}
	s.Update(evaluatedMsg{Result: grading.Result{
		QuestionID: first.ID,
		Request:    grading.Request{UserAnswer: "x"},
		Evaluation: ev,
	}})
	if s.Session().Answered() != 0 {
		t.Error("result for a question no longer shown was applied")
	}
}

func TestQuiz_FreeTextWithoutGrader(t *testing.T) {
	s := New(FreeText, testDeps(t))
	typeText(s, "humerus")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command without a dispatcher")
	}
	if s.gradeErr == "" {
		t.Error("expected a configuration error")
	}
}

func TestFormatScore(t *testing.T) {
	tests := map[float64]string{0: "0", 1: "1", 2.5: "2.5", 10: "10"}
	for in, want := range tests {
		if got := formatScore(in); got != want {
			t.Errorf("formatScore(%v) = %q, want %q", in, got, want)
		}
	}
}

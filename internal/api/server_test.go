package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myoquiz/myoquiz/internal/catalog"
	"github.com/myoquiz/myoquiz/internal/grading"
	"github.com/myoquiz/myoquiz/internal/llm"
	"github.com/myoquiz/myoquiz/internal/quizgen"
	"github.com/myoquiz/myoquiz/internal/session"
	"github.com/myoquiz/myoquiz/internal/settings"
)

type graderFunc func(ctx context.Context, req grading.Request) (*grading.Evaluation, error)

func (f graderFunc) Evaluate(ctx context.Context, req grading.Request) (*grading.Evaluation, error) {
	return f(ctx, req)
}

func newTestServer(t *testing.T, deps Deps) *httptest.Server {
	t.Helper()
	if deps.Generator == nil {
		deps.Generator = quizgen.NewGenerator(quizgen.WithRand(rand.New(rand.NewPCG(1, 2))))
	}
	cfg := DefaultConfig()
	ts := httptest.NewServer(NewRouter(cfg, deps))
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func get(t *testing.T, url string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

const deltoidAnswer = `{"userAnswer":"deltoid tuberosity","correctAnswer":"Deltoid tuberosity of the humerus","questionType":"insertion","muscleName":"Deltoid"}`

func TestEvaluate_OK(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"answerStatus": "partial",
		"feedback":     "Name the bone too.",
		"tip":          "Deltoid lands on the deltoid tuberosity.",
	}))
	ts := newTestServer(t, Deps{Grader: grading.NewEvaluator(mock, grading.DefaultEvaluatorConfig())})

	resp, body := post(t, ts.URL+"/api/evaluate-answer", deltoidAnswer)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "partial", body["answerStatus"])
	assert.Equal(t, false, body["isCorrect"])
	assert.Equal(t, "Name the bone too.", body["feedback"])
	assert.Equal(t, "Deltoid lands on the deltoid tuberosity.", body["tip"])
}

func TestEvaluate_MissingFields(t *testing.T) {
	called := false
	ts := newTestServer(t, Deps{Grader: graderFunc(func(context.Context, grading.Request) (*grading.Evaluation, error) {
		called = true
		return nil, nil
	})})

	for _, b := range []string{
		`{"correctAnswer":"x"}`,
		`{"userAnswer":"x"}`,
		`{"userAnswer":"  ","correctAnswer":"x"}`,
	} {
		resp, body := post(t, ts.URL+"/api/evaluate-answer", b)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, b)
		assert.Equal(t, "Missing required fields", body["error"], b)
	}
	assert.False(t, called, "grader must not be called for incomplete requests")
}

func TestEvaluate_Failure(t *testing.T) {
	ts := newTestServer(t, Deps{Grader: graderFunc(func(context.Context, grading.Request) (*grading.Evaluation, error) {
		return nil, fmt.Errorf("%w: %w", grading.ErrEvaluationFailed, errors.New("upstream down"))
	})})

	resp, body := post(t, ts.URL+"/api/evaluate-answer", deltoidAnswer)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to evaluate answer", body["error"])
	assert.Contains(t, body["details"], "upstream down")
}

func TestEvaluate_NoProvider(t *testing.T) {
	ts := newTestServer(t, Deps{})
	resp, _ := post(t, ts.URL+"/api/evaluate-answer", deltoidAnswer)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestEvaluate_BadJSON(t *testing.T) {
	ts := newTestServer(t, Deps{})
	resp, _ := post(t, ts.URL+"/api/evaluate-answer", `{"userAnswer":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEvaluate_PassesRequest(t *testing.T) {
	var got grading.Request
	ts := newTestServer(t, Deps{Grader: graderFunc(func(_ context.Context, req grading.Request) (*grading.Evaluation, error) {
		got = req
		return &grading.Evaluation{
			Evaluation: session.Evaluation{Verdict: session.VerdictCorrect, Feedback: "ok"},
			IsCorrect:  true,
		}, nil
	})})

	resp, body := post(t, ts.URL+"/api/evaluate-answer", deltoidAnswer)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["isCorrect"])
	assert.Equal(t, "", body["tip"])
	assert.Equal(t, quizgen.TypeInsertion, got.QuestionType)
	assert.Equal(t, "Deltoid", got.MuscleName)
}

func TestListMuscles(t *testing.T) {
	ts := newTestServer(t, Deps{})

	_, body := get(t, ts.URL+"/api/muscles")
	assert.Len(t, body["muscles"], catalog.Default().Len())

	_, body = get(t, ts.URL+"/api/muscles?q=biceps")
	assert.Len(t, body["muscles"], 2)

	_, body = get(t, ts.URL+"/api/muscles?group=Leg")
	assert.Len(t, body["muscles"], len(catalog.Default().ByGroup("Leg")))
}

func TestGetMuscle(t *testing.T) {
	ts := newTestServer(t, Deps{})

	resp, body := get(t, ts.URL+"/api/muscles/muscle-5")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Deltoid", body["name"])

	resp, _ = get(t, ts.URL+"/api/muscles/muscle-999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGroups(t *testing.T) {
	ts := newTestServer(t, Deps{})
	_, body := get(t, ts.URL+"/api/groups")
	groups, ok := body["groups"].([]any)
	require.True(t, ok)
	assert.Len(t, groups, len(catalog.Default().Groups()))
}

func TestQuiz_UsesSettings(t *testing.T) {
	stored := settings.Settings{EnabledTypes: []quizgen.QuestionType{quizgen.TypeFunction}, QuestionsPerMuscle: 1}
	ts := newTestServer(t, Deps{Settings: func() settings.Settings { return stored }})

	resp, body := post(t, ts.URL+"/api/quiz", `{"group":"Arm"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	questions, ok := body["questions"].([]any)
	require.True(t, ok)
	assert.Len(t, questions, len(catalog.Default().ByGroup("Arm")))
	for _, q := range questions {
		assert.Equal(t, "function", q.(map[string]any)["questionType"])
	}
}

func TestQuiz_InvalidFallsBackToDefaults(t *testing.T) {
	ts := newTestServer(t, Deps{})

	resp, body := post(t, ts.URL+"/api/quiz", `{"enabledTypes":["colour"],"questionsPerMuscle":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cfg := body["settings"].(map[string]any)
	assert.Equal(t, float64(settings.DefaultQuestionsPerMuscle), cfg["questionsPerMuscle"])
	assert.Len(t, cfg["enabledTypes"], len(quizgen.DefaultTypes))
}

func TestQuiz_UnknownGroup(t *testing.T) {
	ts := newTestServer(t, Deps{})
	resp, _ := post(t, ts.URL+"/api/quiz", `{"group":"Tail"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, Deps{})
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MYOQUIZ_HTTP_ADDR", ":9999")
	t.Setenv("MYOQUIZ_CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("MYOQUIZ_HTTP_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "5s", cfg.RequestTimeout.String())
}

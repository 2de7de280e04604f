package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/myoquiz/myoquiz/internal/grading"
	"github.com/myoquiz/myoquiz/internal/quizgen"
	"github.com/myoquiz/myoquiz/internal/settings"
)

// POST /api/evaluate-answer
func (s *server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req grading.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid JSON body", Details: err.Error()})
		return
	}
	if strings.TrimSpace(req.UserAnswer) == "" || strings.TrimSpace(req.CorrectAnswer) == "" {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "Missing required fields"})
		return
	}
	if s.deps.Grader == nil {
		respondJSON(w, http.StatusServiceUnavailable, errorBody{Error: "No LLM provider configured"})
		return
	}

	ev, err := s.deps.Grader.Evaluate(r.Context(), req)
	switch {
	case errors.Is(err, grading.ErrMissingFields):
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "Missing required fields"})
	case err != nil:
		log.Printf("evaluate answer: %v", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to evaluate answer", Details: err.Error()})
	default:
		respondJSON(w, http.StatusOK, ev)
	}
}

// GET /api/muscles?group=...&q=...
func (s *server) handleListMuscles(w http.ResponseWriter, r *http.Request) {
	cat := s.deps.Catalog
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	group := strings.TrimSpace(r.URL.Query().Get("group"))

	muscles := cat.Search(q)
	if group != "" {
		filtered := muscles[:0:0]
		for _, m := range muscles {
			if strings.EqualFold(m.Group, group) {
				filtered = append(filtered, m)
			}
		}
		muscles = filtered
	}
	respondJSON(w, http.StatusOK, map[string]any{"muscles": muscles})
}

// GET /api/muscles/{id}
func (s *server) handleGetMuscle(w http.ResponseWriter, r *http.Request) {
	m, err := s.deps.Catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// GET /api/groups
func (s *server) handleGroups(w http.ResponseWriter, r *http.Request) {
	type group struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	var out []group
	for _, g := range s.deps.Catalog.Groups() {
		out = append(out, group{Name: g, Count: len(s.deps.Catalog.ByGroup(g))})
	}
	respondJSON(w, http.StatusOK, map[string]any{"groups": out})
}

type quizRequest struct {
	EnabledTypes       []quizgen.QuestionType `json:"enabledTypes"`
	QuestionsPerMuscle int                    `json:"questionsPerMuscle"`
	Group              string                 `json:"group"`
}

// POST /api/quiz generates a fresh question list. Omitted fields use the
// stored settings; an invalid combination falls back to defaults.
func (s *server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid JSON body", Details: err.Error()})
		return
	}

	cfg := s.deps.Settings()
	if req.EnabledTypes != nil {
		cfg.EnabledTypes = req.EnabledTypes
	}
	if req.QuestionsPerMuscle != 0 {
		cfg.QuestionsPerMuscle = req.QuestionsPerMuscle
	}
	cfg = cfg.Normalize()

	muscles := s.deps.Catalog.All()
	if req.Group != "" {
		muscles = s.deps.Catalog.ByGroup(req.Group)
		if len(muscles) == 0 {
			respondJSON(w, http.StatusNotFound, errorBody{Error: "unknown group " + req.Group})
			return
		}
	}

	s.genMu.Lock()
	questions := s.deps.Generator.GenerateFor(muscles, cfg.QuestionsPerMuscle, cfg.EnabledTypes)
	s.genMu.Unlock()

	respondJSON(w, http.StatusOK, struct {
		Settings  settings.Settings  `json:"settings"`
		Questions []quizgen.Question `json:"questions"`
	}{cfg, questions})
}


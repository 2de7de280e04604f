// Package api serves grading, catalog and quiz generation over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/myoquiz/myoquiz/internal/catalog"
	"github.com/myoquiz/myoquiz/internal/grading"
	"github.com/myoquiz/myoquiz/internal/quizgen"
	"github.com/myoquiz/myoquiz/internal/settings"
)

// Deps are the collaborators the handlers use. Grader may be nil when
// no LLM provider is configured; grading then answers 503.
type Deps struct {
	Catalog   *catalog.Catalog
	Grader    grading.Grader
	Generator *quizgen.Generator

	// Settings supplies the defaults for quiz generation.
	Settings func() settings.Settings
}

type server struct {
	deps  Deps
	genMu sync.Mutex
}

// NewRouter builds the HTTP handler.
func NewRouter(cfg Config, deps Deps) http.Handler {
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}
	if deps.Generator == nil {
		deps.Generator = quizgen.NewGenerator()
	}
	if deps.Settings == nil {
		deps.Settings = settings.Default
	}
	s := &server{deps: deps}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api", func(ar chi.Router) {
		ar.Post("/evaluate-answer", s.handleEvaluate)
		ar.Get("/muscles", s.handleListMuscles)
		ar.Get("/muscles/{id}", s.handleGetMuscle)
		ar.Get("/groups", s.handleGroups)
		ar.Post("/quiz", s.handleQuiz)
	})
	return r
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

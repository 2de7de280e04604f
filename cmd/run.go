package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/myoquiz/myoquiz/internal/app"
	"github.com/myoquiz/myoquiz/internal/catalog"
	"github.com/myoquiz/myoquiz/internal/grading"
	"github.com/myoquiz/myoquiz/internal/llm"
	"github.com/myoquiz/myoquiz/internal/quizgen"
	"github.com/myoquiz/myoquiz/internal/screens/quiz"
	"github.com/myoquiz/myoquiz/internal/settings"
	"github.com/myoquiz/myoquiz/internal/store"
	"github.com/spf13/cobra"
)

// loadCatalog returns the catalog named by --catalog, or the built-in one.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	cat, err := catalog.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// openSettings opens the settings file named by --settings, then
// MYOQUIZ_SETTINGS, then the default XDG path. A damaged file is
// reported and replaced by defaults.
func openSettings(cmd *cobra.Command) (*settings.Store, error) {
	path, _ := cmd.Flags().GetString("settings")
	if path == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve settings path: %w", err)
		}
		path = p
	}
	st, err := settings.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; using default settings\n", err)
	}
	return st, nil
}

// newGrader builds the answer evaluator from the environment. recorder
// may be nil to skip event logging.
func newGrader(ctx context.Context, recorder llm.EventRecorder) (grading.Grader, error) {
	cfg, ok := llm.ResolveConfig()
	if !ok {
		return nil, fmt.Errorf("no LLM API key found (set OPENAI_API_KEY, ANTHROPIC_API_KEY, GEMINI_API_KEY or OPENROUTER_API_KEY)")
	}
	provider, err := llm.NewProvider(ctx, cfg, recorder)
	if err != nil {
		return nil, err
	}
	return grading.NewEvaluator(provider, grading.DefaultEvaluatorConfig()), nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, start *quiz.Mode) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	prefs, err := openSettings(cmd)
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	opts := app.Options{
		Catalog:   cat,
		Generator: quizgen.NewGenerator(),
		Settings:  prefs,
		EventRepo: eventRepo,
		Start:     start,
	}

	grader, err := newGrader(ctx, eventRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "The AI quiz will be unavailable.")
	} else {
		opts.Grader = grader
	}

	return app.Run(opts)
}

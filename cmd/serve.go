package cmd

import (
	"log"
	"net/http"

	"github.com/myoquiz/myoquiz/internal/api"
	"github.com/myoquiz/myoquiz/internal/quizgen"
	"github.com/myoquiz/myoquiz/internal/store"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API (answer evaluation, catalog, quiz generation)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := api.ConfigFromEnv()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}

		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		prefs, err := openSettings(cmd)
		if err != nil {
			return err
		}

		deps := api.Deps{
			Catalog:   cat,
			Generator: quizgen.NewGenerator(),
			Settings:  prefs.Get,
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		grader, err := newGrader(cmd.Context(), st.EventRepo())
		if err != nil {
			log.Printf("answer evaluation disabled: %v", err)
		} else {
			deps.Grader = grader
		}

		log.Printf("myoquiz api listening on %s (%d muscles)", cfg.HTTPAddr, cat.Len())
		log.Fatal(http.ListenAndServe(cfg.HTTPAddr, api.NewRouter(cfg, deps)))
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides MYOQUIZ_HTTP_ADDR)")
}

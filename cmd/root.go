package cmd

import (
	"github.com/myoquiz/myoquiz/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "myoquiz",
	Short: "Muscle anatomy quiz",
	Long:  "MyoQuiz, a terminal quiz on muscle origins, insertions, functions and Latin names, with AI grading of free-text answers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MYOQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a muscle catalog file (default: built-in catalog)")
	rootCmd.PersistentFlags().String("settings", "", "Path to the settings file (overrides MYOQUIZ_SETTINGS env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(musclesCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MYOQUIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

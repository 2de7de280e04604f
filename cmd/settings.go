package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/myoquiz/myoquiz/internal/quizgen"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the saved quiz settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return settingsShowCmd.RunE(cmd, args)
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved settings as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openSettings(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "# %s\n", displayPath(st.Path()))
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st.Get())
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change question types or questions per muscle",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openSettings(cmd)
		if err != nil {
			return err
		}
		next := st.Get()

		if cmd.Flags().Changed("types") {
			vals, _ := cmd.Flags().GetStringSlice("types")
			next.EnabledTypes = nil
			for _, v := range vals {
				t, ok := quizgen.ParseType(v)
				if !ok {
					return fmt.Errorf("unknown question type %q", v)
				}
				next.EnabledTypes = append(next.EnabledTypes, t)
			}
		}
		if cmd.Flags().Changed("per") {
			next.QuestionsPerMuscle, _ = cmd.Flags().GetInt("per")
		}
		if err := next.Validate(); err != nil {
			return fmt.Errorf("invalid settings: %w", err)
		}

		saved, err := st.Save(next)
		if err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		fmt.Printf("Saved: %d types, %d per muscle\n", len(saved.EnabledTypes), saved.QuestionsPerMuscle)
		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openSettings(cmd)
		if err != nil {
			return err
		}
		if _, err := st.Reset(); err != nil {
			return fmt.Errorf("reset settings: %w", err)
		}
		fmt.Println("Settings restored to defaults.")
		return nil
	},
}

func displayPath(p string) string {
	if p == "" {
		return "(in memory)"
	}
	return p
}

func init() {
	settingsSetCmd.Flags().StringSlice("types", nil, "Enabled question types (origin, insertion, function, name, latinName)")
	settingsSetCmd.Flags().Int("per", 0, "Questions per muscle")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}

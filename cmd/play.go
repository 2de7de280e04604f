package cmd

import (
	"fmt"

	"github.com/myoquiz/myoquiz/internal/screens/quiz"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz right away",
	RunE: func(cmd *cobra.Command, args []string) error {
		modeVal, _ := cmd.Flags().GetString("mode")
		mode, err := parseMode(modeVal)
		if err != nil {
			return err
		}
		return runApp(cmd, &mode)
	},
}

func parseMode(s string) (quiz.Mode, error) {
	switch s {
	case "mc", "choice":
		return quiz.MultipleChoice, nil
	case "ai", "text":
		return quiz.FreeText, nil
	}
	return 0, fmt.Errorf("invalid mode %q: must be mc or ai", s)
}

func init() {
	playCmd.Flags().StringP("mode", "m", "mc", "Quiz mode: mc (multiple choice) or ai (free text graded by an LLM)")
}

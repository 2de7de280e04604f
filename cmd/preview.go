package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/myoquiz/myoquiz/internal/quizgen"
	"github.com/myoquiz/myoquiz/internal/session"
	"github.com/myoquiz/myoquiz/internal/settings"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play a multiple-choice quiz on stdin (no database, no TUI)",
	Long: `Generate a multiple-choice quiz and answer it line by line.

This is a stateless tool: no database and no saved settings are touched.
Useful for checking a catalog file or question wording.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringP("group", "g", "", "Only ask about muscles of this group")
	previewCmd.Flags().StringSlice("types", nil, "Question types (origin, insertion, function, name, latinName)")
	previewCmd.Flags().Int("per", settings.DefaultQuestionsPerMuscle, "Questions per muscle")
	previewCmd.Flags().IntP("count", "n", 10, "Stop after this many questions (0 for all)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	group, _ := cmd.Flags().GetString("group")
	typeVals, _ := cmd.Flags().GetStringSlice("types")
	per, _ := cmd.Flags().GetInt("per")
	count, _ := cmd.Flags().GetInt("count")

	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	cfg := settings.Default()
	cfg.QuestionsPerMuscle = per
	if len(typeVals) > 0 {
		cfg.EnabledTypes = nil
		for _, v := range typeVals {
			t, ok := quizgen.ParseType(v)
			if !ok {
				return fmt.Errorf("unknown question type %q", v)
			}
			cfg.EnabledTypes = append(cfg.EnabledTypes, t)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	muscles := cat.All()
	if group != "" {
		muscles = filterMuscles(cat, "", group)
		if len(muscles) == 0 {
			return fmt.Errorf("no group %q (groups: %s)", group, strings.Join(cat.Groups(), ", "))
		}
	}

	questions := quizgen.NewGenerator().GenerateFor(muscles, cfg.QuestionsPerMuscle, cfg.EnabledTypes)
	if count > 0 && count < len(questions) {
		questions = questions[:count]
	}
	return playPreview(session.FromQuestions(questions, session.WithResolver(session.ExactMatch{})),
		os.Stdin, os.Stdout)
}

// playPreview runs the session against line input until every question
// was offered or the input ends.
func playPreview(sess *session.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	total := sess.Len()
	if total == 0 {
		fmt.Fprintln(out, "No questions could be generated for these settings.")
		return nil
	}

	fmt.Fprintf(out, "%d questions. Answer with the option number, empty line to skip.\n\n", total)

	for i := 0; i < total; i++ {
		sess.JumpTo(i)
		q, _, _ := sess.Current()

		fmt.Fprintf(out, "── Question %d/%d · %s · %s ──\n", i+1, total, q.Muscle.Group, q.Type.Label())
		fmt.Fprintln(out, q.Prompt)
		for j, o := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", j+1, o)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Fprint(out, "(skipped)\n\n")
			continue
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(q.Options) {
			answer = q.Options[n-1]
		}

		a, err := sess.Choose(answer)
		if err != nil {
			return err
		}
		if a.IsCorrect() {
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", q.CorrectAnswer)
		}
		fmt.Fprintln(out)
	}

	st := sess.Stats()
	fmt.Fprintf(out, "── Summary: %d/%d correct, %.0f%% accuracy, streak %d ──\n",
		st.Correct, st.Total, st.AccuracyPercent(), st.Streak)
	return nil
}

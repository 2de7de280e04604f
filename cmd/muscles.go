package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/myoquiz/myoquiz/internal/catalog"
	"github.com/spf13/cobra"
)

var musclesCmd = &cobra.Command{
	Use:   "muscles [query]",
	Short: "Browse the muscle catalog (optionally filtered by group or search text)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, _ := cmd.Flags().GetString("group")
		asJSON, _ := cmd.Flags().GetBool("json")

		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		muscles := filterMuscles(cat, query, group)
		if group != "" && len(muscles) == 0 && len(cat.ByGroup(group)) == 0 {
			return fmt.Errorf("no group %q (groups: %s)", group, strings.Join(cat.Groups(), ", "))
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(muscles)
		}

		// Header.
		fmt.Printf("%-10s  %-28s  %-22s  %s\n", "ID", "Name", "Group", "Latin name")
		fmt.Println(strings.Repeat("─", 90))

		for _, m := range muscles {
			fmt.Printf("%-10s  %-28s  %-22s  %s\n",
				m.ID, truncate(m.Name, 28), truncate(m.Group, 22), m.LatinName.String())
		}

		fmt.Printf("\n%d muscles\n", len(muscles))
		return nil
	},
}

var muscleShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show every recorded fact of one muscle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		m, err := cat.Get(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n", m.Name, m.Group)
		for _, f := range []struct {
			label string
			field catalog.Field
		}{
			{"Latin name", m.LatinName},
			{"Origin", m.Origin},
			{"Insertion", m.Insertion},
			{"Function", m.Function},
		} {
			v, ok := f.field.Value()
			if !ok {
				v = "-"
			}
			fmt.Printf("  %-11s %s\n", f.label+":", v)
		}
		return nil
	},
}

// filterMuscles applies the search query and the group filter.
func filterMuscles(cat *catalog.Catalog, query, group string) []*catalog.Muscle {
	var out []*catalog.Muscle
	for _, m := range cat.Search(query) {
		if group == "" || strings.EqualFold(m.Group, group) {
			out = append(out, m)
		}
	}
	return out
}

func init() {
	musclesCmd.Flags().StringP("group", "g", "", "Only list muscles of this group")
	musclesCmd.Flags().Bool("json", false, "Print the muscles as JSON")

	musclesCmd.AddCommand(muscleShowCmd)
}

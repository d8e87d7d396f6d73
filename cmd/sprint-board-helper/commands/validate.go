package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goblinsan/sprint-board-helper/pkg/parser"
	"github.com/goblinsan/sprint-board-helper/pkg/types"
)

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("file", "f", "", "The sprint markdown file to validate")
	validateCmd.MarkFlagRequired("file")
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a sprint file without making any changes",
	Long:  `Validate a sprint markdown file for correctness. Checks the structural markers (sprint title, milestone headings, task metadata lines) and prints the parsed hierarchy with derived labels.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath, _ := cmd.Flags().GetString("file")

		sprint, err := parser.ParseFile(filePath)
		if err != nil {
			return fmt.Errorf("sprint file is invalid: %w", err)
		}

		fmt.Printf("Sprint: %s\n", sprint.Title)
		fmt.Printf("  Duration: %s\n", sprint.Duration)
		fmt.Printf("  Priority: %s\n", sprint.Priority)
		for _, m := range sprint.Milestones {
			fmt.Printf("  Milestone: %s (%d tasks)\n", m.Title, m.TotalTasks())
			for _, task := range m.Tasks {
				fmt.Printf("    Task: %s [%s]\n", task.Title, strings.Join(task.Labels, ", "))
			}
		}
		fmt.Printf("  Success metrics: %d, definition of done: %d\n",
			len(sprint.SuccessMetrics), len(sprint.DefinitionOfDone))

		if warnings := sprintWarnings(sprint); len(warnings) > 0 {
			fmt.Fprintf(os.Stderr, "%d warning(s):\n", len(warnings))
			for i, w := range warnings {
				fmt.Fprintf(os.Stderr, "  %d. %s\n", i+1, w)
			}
		}

		fmt.Println("Sprint file is valid.")
		return nil
	},
}

// sprintWarnings collects non-fatal oddities a plan author probably wants
// to fix before generating cards.
func sprintWarnings(sprint *types.Sprint) []string {
	var warnings []string

	milestoneTitles := make(map[string]bool)
	for i, m := range sprint.Milestones {
		if milestoneTitles[m.Title] {
			warnings = append(warnings, fmt.Sprintf("milestones[%d]: duplicate title %q", i, m.Title))
		}
		milestoneTitles[m.Title] = true

		if len(m.Tasks) == 0 {
			warnings = append(warnings, fmt.Sprintf("milestone %q has no tasks; check each task heading is followed by a **Tempo Estimado**/**Responsável** line", m.Title))
		}
		for _, task := range m.Tasks {
			if len(task.AcceptanceCriteria) == 0 {
				warnings = append(warnings, fmt.Sprintf("task %q has no acceptance criteria", task.Title))
			}
		}
	}

	if len(sprint.SuccessMetrics) == 0 {
		warnings = append(warnings, "no success metrics section found")
	}
	if len(sprint.DefinitionOfDone) == 0 {
		warnings = append(warnings, "no definition of done section found")
	}
	return warnings
}

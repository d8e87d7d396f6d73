package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goblinsan/sprint-board-helper/pkg/engine"
	"github.com/goblinsan/sprint-board-helper/pkg/github"
	"github.com/goblinsan/sprint-board-helper/pkg/parser"
	"github.com/goblinsan/sprint-board-helper/pkg/render"
	"github.com/goblinsan/sprint-board-helper/pkg/trello"
)

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringP("file", "f", "", "The sprint markdown file to apply")
	applyCmd.MarkFlagRequired("file")
	applyCmd.Flags().StringP("board", "b", "", "Trello board ID, or owner/repo for the github backend")
	applyCmd.Flags().StringP("list", "l", "Backlog", "Target list name")
	applyCmd.Flags().String("backend", "trello", "Board backend: trello or github")
	applyCmd.Flags().String("project", "", "GitHub Projects V2 board title (github backend only)")
	applyCmd.Flags().String("colors", "", "YAML file with label color overrides")
	applyCmd.Flags().Bool("dry-run", false, "Preview what would be created without making changes")
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a sprint plan from a markdown file",
	Long:  `Apply a sprint plan from a markdown file: creates the sprint overview card, one card per milestone, and one card per task with its acceptance-criteria checklist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath, _ := cmd.Flags().GetString("file")

		sprint, err := parser.ParseFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to parse sprint file: %w", err)
		}

		fmt.Printf("Parsed sprint: %s\n", sprint.Title)
		fmt.Printf("Milestones: %d, tasks: %d\n", sprint.TotalMilestones(), sprint.TotalTasks())

		opts := engine.Options{}
		opts.ListName, _ = cmd.Flags().GetString("list")
		opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
		if colorsFile, _ := cmd.Flags().GetString("colors"); colorsFile != "" {
			opts.Colors, err = render.LoadPalette(colorsFile)
			if err != nil {
				return err
			}
		}

		ctx := context.Background()
		var board engine.Board
		if !opts.DryRun {
			backend, _ := cmd.Flags().GetString("backend")
			boardRef, _ := cmd.Flags().GetString("board")
			project, _ := cmd.Flags().GetString("project")
			board, err = newBoard(ctx, backend, boardRef, project)
			if err != nil {
				return err
			}
		}

		report, err := engine.Apply(ctx, board, sprint, opts)
		if err != nil {
			return err
		}
		if report != nil {
			fmt.Println(report)
		}
		return nil
	},
}

// newBoard constructs the board backend for the apply and serve surfaces.
func newBoard(ctx context.Context, backend, boardRef, project string) (engine.Board, error) {
	switch backend {
	case "trello":
		if boardRef == "" {
			return nil, fmt.Errorf("a board ID is required, set it via --board")
		}
		cfg := trelloConfig()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return trello.NewClient(cfg).Board(boardRef), nil

	case "github":
		token := viper.GetString("github.token")
		if token == "" {
			return nil, fmt.Errorf("GitHub token is required. Set it via --github-token, GITHUB_TOKEN environment variable, or config file")
		}
		owner, repo, ok := strings.Cut(boardRef, "/")
		if !ok || owner == "" || repo == "" {
			return nil, fmt.Errorf("board %q must be in owner/repo format for the github backend", boardRef)
		}
		if project == "" {
			return nil, fmt.Errorf("--project is required for the github backend")
		}
		return github.NewBoard(ctx, github.NewClient(token), owner, repo, project)

	default:
		return nil, fmt.Errorf("unknown backend %q, expected trello or github", backend)
	}
}

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goblinsan/sprint-board-helper/pkg/trello"
)

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Display the authenticated Trello member",
	Long:  `Display the authenticated Trello member using the configured credentials, which doubles as a connection test.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := trelloConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}

		client := trello.NewClient(cfg)
		member, err := client.Me(context.Background())
		if err != nil {
			return fmt.Errorf("failed to reach Trello: %w", err)
		}

		fmt.Fprintf(os.Stdout, "Logged in as: %s\n", member.Username)
		if member.FullName != "" {
			fmt.Fprintf(os.Stdout, "Name: %s\n", member.FullName)
		}

		return nil
	},
}

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goblinsan/sprint-board-helper/pkg/trello"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "sprint-board-helper",
		Short: "A CLI tool to convert markdown sprint plans into kanban board cards",
		Long: `sprint-board-helper parses markdown sprint plans (sprint, milestones,
tasks, acceptance criteria) and creates the matching card hierarchy on a
kanban board. Trello is the default backend; GitHub Projects V2 is also
supported.`,
		Run: func(cmd *cobra.Command, args []string) {
			// Default action when no subcommand is specified
			cmd.Help()
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sprint-board-helper.yaml)")
	rootCmd.PersistentFlags().String("key", "", "Trello API key")
	rootCmd.PersistentFlags().String("token", "", "Trello API token")
	rootCmd.PersistentFlags().String("github-token", "", "GitHub personal access token")

	// Bind flags to viper
	viper.BindPFlag("trello.key", rootCmd.PersistentFlags().Lookup("key"))
	viper.BindPFlag("trello.token", rootCmd.PersistentFlags().Lookup("token"))
	viper.BindPFlag("github.token", rootCmd.PersistentFlags().Lookup("github-token"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		// Search config in home directory with name ".sprint-board-helper" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sprint-board-helper")
	}

	// Read in environment variables that match; the conventional Trello
	// variable names are bound directly.
	viper.SetEnvPrefix("SPRINT_BOARD_HELPER")
	viper.AutomaticEnv()
	viper.BindEnv("trello.key", "TRELLO_API_KEY")
	viper.BindEnv("trello.token", "TRELLO_TOKEN")
	viper.BindEnv("github.token", "GITHUB_TOKEN")

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	mergeSecretsFile()
}

// mergeSecretsFile fills in Trello credentials from a local dotenv file when
// the environment and config file did not provide them.
func mergeSecretsFile() {
	for _, path := range []string{"config/secrets.env", "secrets.env", ".env"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v := viper.New()
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return
		}
		if viper.GetString("trello.key") == "" && v.GetString("TRELLO_API_KEY") != "" {
			viper.Set("trello.key", v.GetString("TRELLO_API_KEY"))
		}
		if viper.GetString("trello.token") == "" && v.GetString("TRELLO_TOKEN") != "" {
			viper.Set("trello.token", v.GetString("TRELLO_TOKEN"))
		}
		return
	}
}

// trelloConfig assembles the Trello credentials from viper.
func trelloConfig() trello.Config {
	return trello.Config{
		APIKey: viper.GetString("trello.key"),
		Token:  viper.GetString("trello.token"),
	}
}

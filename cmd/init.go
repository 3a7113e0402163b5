package cmd

import (
	"shopseed/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default shopseed config file",
	Long: `Create a shopseed.config.json in the current directory with default
targets, ranges and database settings. Fails if one already exists.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitializeProject(); err != nil {
			return err
		}
		color.Green("✅ Created %s", config.ConfigFileName)
		color.Cyan("💡 Set the connection string in the %s environment variable", config.DefaultConfig().Database.URLEnv)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.2.0"
)

var rootCmd = &cobra.Command{
	Use:   "shopseed",
	Short: "Idempotent e-commerce demo data generator for PostgreSQL",
	Long: `shopseed synthesizes a referentially consistent e-commerce dataset
(customers, products, variants, orders, order items) into a PostgreSQL
schema for test and demo fixtures.

Runs are idempotent: natural keys (email, SKU, variant SKU) are never
duplicated, entity tables only grow up to their targets, and orders live in
a generation window that can be regenerated independently of the rest of
the data. An optional chaos mode plants a configured rate of invalid
variant sizes to exercise downstream validation.`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("shopseed version %s\n", Version)
			return
		}
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./shopseed.config.json)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("shopseed.config")
	}

	viper.AutomaticEnv()
	viper.ReadInConfig()
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartchef/skillet/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "skillet",
	Short: "Skillet is an AI cooking assistant",
	Long: `Skillet turns the ingredients you have into recipes, adjusts them for
your diet, suggests substitutions, and plans your meals for the week.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (default skillet.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

func runOptions(cmd *cobra.Command) cli.RunOptions {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	noBanner, _ := cmd.Flags().GetBool("no-banner")
	return cli.RunOptions{
		ConfigPath: configPath,
		Debug:      debug,
		NoBanner:   noBanner,
	}
}

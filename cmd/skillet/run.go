package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartchef/skillet/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Cook a recipe interactively",
	Long: `Starts the interactive cooking flow: enter your ingredients, dietary
restrictions and preferences, and skillet generates a recipe, adjusts it for
your diet and suggests substitutions.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.RunCook(cmd.Context(), runOptions(cmd)); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("no-banner", false, "Suppress the startup banner")

	// Make 'run' the default when no command is given.
	rootCmd.Run = runCmd.Run
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartchef/skillet/internal/cli"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan meals for the week",
	Long: `Builds a week-long meal plan from your available ingredients and a
shopping list of what you still need to buy.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.RunPlan(cmd.Context(), runOptions(cmd)); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().Bool("no-banner", false, "Suppress the startup banner")
}

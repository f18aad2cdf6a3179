package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartchef/skillet/internal/cli"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List saved favorite recipes",
	Long:  `Prints every recipe saved to the durable favorites book, with notes.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.ListFavorites(cmd.Context(), runOptions(cmd)); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartchef/skillet"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of skillet",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("skillet version %s\n", skillet.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

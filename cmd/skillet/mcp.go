package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartchef/skillet/internal/cli"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts skillet as an MCP server on stdio.
This allows AI agents (like Claude Desktop) to cook recipes and plan meals
as tools.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.ServeMCP(runOptions(cmd)); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

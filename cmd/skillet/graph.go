package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartchef/skillet/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [cook|plan]",
	Short: "Export the workflow graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the selected cooking workflow.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := "cook"
		if len(args) > 0 {
			name = args[0]
		}
		output, err := cli.WorkflowMermaid(name)
		if err != nil {
			fmt.Printf("Error generating graph: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(output)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

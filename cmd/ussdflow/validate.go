package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akwaba/ussdflow/internal/linter"
)

var validateCmd = &cobra.Command{
	Use:   "validate [graph-file]",
	Short: "Check the menu graph for consistency",
	Long:  `Lints the graph document: missing welcome menu, malformed ids, actions pointing to unknown menus, menus with nothing to show.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("graph")
		if len(args) > 0 {
			path = args[0]
		}

		report, err := runValidate(path)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		printReport(report)
		if !report.OK {
			os.Exit(1)
		}
		fmt.Println("Graph is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) (*linter.Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return linter.CheckBytes(raw)
}

func printReport(r *linter.Report) {
	for _, msg := range r.Graph {
		fmt.Printf("ERROR: %s\n", msg)
	}
	for _, id := range r.MenuIDs() {
		f := r.Menus[id]
		for _, msg := range f.Errors {
			fmt.Printf("ERROR [%s]: %s\n", id, msg)
		}
		for _, msg := range f.Warnings {
			fmt.Printf("WARN  [%s]: %s\n", id, msg)
		}
		for _, msg := range f.Infos {
			fmt.Printf("INFO  [%s]: %s\n", id, msg)
		}
	}
}

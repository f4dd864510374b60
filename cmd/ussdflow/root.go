package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ussdflow",
	Short: "ussdflow runs menu-driven USSD applications",
	Long:  `ussdflow drives session-based USSD menus defined in a YAML graph document, one carrier turn at a time.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("graph", "menus.yaml", "Path to the menu graph document")
}

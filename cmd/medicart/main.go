package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Blank imports run the init() registrations.
	_ "github.com/hassanmehmood/medicart/database/migrations"
	_ "github.com/hassanmehmood/medicart/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "medicart",
	Short: "Medicart — online pharmacy backend",
	Long:  "Medicart is the API backend for the Medicart online pharmacy. Use this CLI to run the server and manage the database.",
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Workers
	rootCmd.AddCommand(queueWorkCmd)
	rootCmd.AddCommand(scheduleListCmd)
}

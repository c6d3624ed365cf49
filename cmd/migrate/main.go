package main

import (
	"fmt"
	"log"
	"os"

	"mood-journal/internal/config"
	"mood-journal/pkg/common"
	"mood-journal/pkg/database"

	"github.com/spf13/cobra"
)

var configPath string

func runMigrations(direction string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	switch direction {
	case "up":
		if err := database.MigrateUp(cfg.Database); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		fmt.Println("Applied migrations successfully.")
	case "down":
		if err := database.MigrateDown(cfg.Database); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		fmt.Println("Reverted last migration successfully.")
	}
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all available database migrations",
	Run: func(cmd *cobra.Command, args []string) {
		runMigrations("up")
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the last database migration",
	Run: func(cmd *cobra.Command, args []string) {
		runMigrations("down")
	},
}

func main() {
	rootCmd := &cobra.Command{Use: "migrate"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", common.DefaultConfigPath, "Path to the configuration file")

	rootCmd.AddCommand(upCmd, downCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing migrate CLI: %s\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mood-journal/internal/app"
	"mood-journal/pkg/common"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "mood-tracker",
		Short:         "Analyses journal entries and reports on the stored moods",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", common.DefaultConfigPath, "Path to the configuration file")

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newIngestCmd(),
		newQueryCmd(),
		newStatsCmd(),
		newKeywordsCmd(),
		newRunsCmd(),
		newClearCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error executing mood-tracker CLI: %s\n", err)
		os.Exit(1)
	}
}

// withApp builds the App for a command and closes it afterwards.
func withApp(fn func(cmd *cobra.Command, a *app.App) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := app.New(configPath)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, a)
	}
}

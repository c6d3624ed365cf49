package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mood-journal/internal/app"
	"mood-journal/internal/dto"
	"mood-journal/pkg/common"
	"mood-journal/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	configPath string
	journalDir string
	outputFile string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Converts a directory of journal documents into a CSV file",
	RunE:  runConvert,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Checks the dates encoded in journal filenames",
	RunE:  runValidate,
}

func runConvert(cmd *cobra.Command, args []string) error {
	a, err := app.New(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	dir := firstNonEmpty(journalDir, a.Config.Converter.JournalDir)
	output := firstNonEmpty(outputFile, a.Config.Converter.OutputFile)
	a.Logger.Info("Converting journal", logger.StringField("dir", dir), logger.StringField("output", output))

	summary, err := a.Converter.Convert(cmd.Context(), dir, output)
	if summary != nil {
		printConversion(summary)
	}
	return err
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := app.New(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	dir := firstNonEmpty(journalDir, a.Config.Converter.JournalDir)
	report, err := a.Converter.Validate(cmd.Context(), dir)
	if err != nil {
		return err
	}

	for _, issue := range report.Issues {
		fmt.Printf("[%s] %s: %s\n", issue.Severity, issue.File, issue.Issue)
	}
	fmt.Printf("\nChecked %d files, %d valid, %d issues\n", report.Total, report.Valid, len(report.Issues))

	failed := 0
	for _, issue := range report.Issues {
		if issue.Severity == dto.SeverityError {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d files have implausible dates", failed)
	}
	return nil
}

func printConversion(s *dto.ConversionSummary) {
	fmt.Println("Conversion summary:")
	fmt.Printf("  processed:            %d\n", s.Processed)
	fmt.Printf("  skipped (no date):    %d\n", s.SkippedNoDate)
	fmt.Printf("  dropped (bad date):   %d\n", s.DroppedInvalidDate)
	fmt.Printf("  errors:               %d\n", s.Errors)
	if s.Output != "" {
		fmt.Printf("  written:              %d -> %s\n", s.Written, s.Output)
	}
	for _, f := range s.SkippedFiles {
		fmt.Printf("  skipped: %s\n", f.File)
	}
	for _, f := range s.ErrorFiles {
		fmt.Printf("  error:   %s: %s\n", f.File, f.Message)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "converter",
		Short:         "Turns journal exports into the CSV interchange format",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", common.DefaultConfigPath, "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&journalDir, "journal_dir", "", "Directory of journal documents (default from config)")
	convertCmd.Flags().StringVar(&outputFile, "output_file", "", "CSV file to write (default from config)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(convertCmd, validateCmd)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error executing converter CLI: %s\n", err)
		os.Exit(1)
	}
}

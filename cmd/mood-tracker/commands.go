package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"mood-journal/internal/app"
	dashboard "mood-journal/internal/dashboard/service"
	"mood-journal/internal/dto"
	"mood-journal/internal/statistics"
	"mood-journal/pkg/utils"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	var input, output string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Writes an enriched copy of a journal CSV with mood scores",
		RunE: withApp(func(cmd *cobra.Command, a *app.App) error {
			summary, err := a.Ingestion.AnalyzeCSV(cmd.Context(), input, output)
			if err != nil {
				return err
			}
			fmt.Printf("Analyzed %d entries (%d rows read, %d invalid) -> %s\n",
				summary.Analyzed, summary.RowsRead, summary.InvalidRows, output)
			return nil
		}),
	}
	cmd.Flags().StringVar(&input, "input", "", "Journal CSV to analyse")
	cmd.Flags().StringVar(&output, "output", "", "Enriched CSV to write")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newIngestCmd() *cobra.Command {
	var journalDir, csvPath string
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Analyses a journal directory or CSV file and stores the entries",
		RunE: withApp(func(cmd *cobra.Command, a *app.App) error {
			var (
				summary *dto.IngestionSummary
				err     error
			)
			if csvPath != "" {
				summary, err = a.Ingestion.IngestCSV(cmd.Context(), csvPath)
			} else {
				summary, err = a.Ingestion.IngestDirectory(cmd.Context(), journalDir)
			}
			if summary != nil {
				printIngestion(summary)
			}
			return err
		}),
	}
	cmd.Flags().StringVar(&journalDir, "journal_dir", "", "Directory of journal documents")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Journal CSV file")
	cmd.MarkFlagsMutuallyExclusive("journal_dir", "csv")
	cmd.MarkFlagsOneRequired("journal_dir", "csv")
	return cmd
}

func newQueryCmd() *cobra.Command {
	var q dto.EntryQuery
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Lists stored entries, newest first",
		RunE: withApp(func(cmd *cobra.Command, a *app.App) error {
			filter, quick, err := dashboard.BuildFilter(q)
			if err != nil {
				return err
			}

			// Narrow in the store by the most selective criterion, then apply
			// the whole filter so criteria combine.
			var records []dto.StoredRecord
			switch {
			case filter.Search != "":
				records, err = a.EntryRepo.Search(cmd.Context(), filter.Search)
			case filter.Category != "":
				records, err = a.EntryRepo.FindByCategory(cmd.Context(), filter.Category)
			case filter.Start != nil && filter.End != nil:
				records, err = a.EntryRepo.FindByDateRange(cmd.Context(), *filter.Start, *filter.End)
			default:
				records, err = a.EntryRepo.FindAll(cmd.Context())
			}
			if err != nil {
				return err
			}
			if quick != statistics.RangeAllTime {
				all, err := a.EntryRepo.FindAll(cmd.Context())
				if err != nil {
					return err
				}
				filter = filter.WithRange(quick, all)
			}

			printEntries(filter.Apply(records))
			return nil
		}),
	}
	cmd.Flags().StringVar(&q.Start, "start", "", "First date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.End, "end", "", "Last date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.Mood, "mood", "", "Mood category, e.g. \"Very Positive\"")
	cmd.Flags().StringVar(&q.Search, "search", "", "Case-insensitive text in title or content")
	cmd.Flags().StringVar(&q.Range, "range", "", "Quick range: last_90_days, this_year or all_time")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Prints mood statistics over the store",
		RunE: withApp(func(cmd *cobra.Command, a *app.App) error {
			stats, err := a.EntryRepo.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			records, err := a.EntryRepo.FindAll(cmd.Context())
			if err != nil {
				return err
			}
			summary := statistics.Summarize(dto.Entries(records))

			fmt.Printf("Entries:           %d\n", stats.TotalEntries)
			fmt.Printf("Average sentiment: %.3f\n", stats.AverageSentiment)
			fmt.Printf("Most common mood:  %s\n", summary.ModeCategory)
			fmt.Printf("Days covered:      %d\n", summary.DateSpanDays)

			fmt.Println("\nMood distribution:")
			for _, c := range dto.MoodCategories {
				if n := stats.MoodDistribution[c]; n > 0 {
					fmt.Printf("  %-14s %d\n", c, n)
				}
			}

			fmt.Println("\nMonthly sentiment:")
			for _, month := range sortedKeys(stats.MonthlySentiment) {
				fmt.Printf("  %s  %+.3f\n", month, stats.MonthlySentiment[month])
			}

			fmt.Println("\nBy weekday:")
			for _, wd := range statistics.WeekdaySentiment(dto.Entries(records)) {
				fmt.Printf("  %-10s %+.3f (%d)\n", wd.Name, wd.MeanSentiment, wd.Count)
			}
			return nil
		}),
	}
}

func newKeywordsCmd() *cobra.Command {
	var q dto.KeywordQuery
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Prints the most frequent keywords",
		RunE: withApp(func(cmd *cobra.Command, a *app.App) error {
			keywords, err := a.Dashboard.GetTopKeywords(cmd.Context(), q)
			if err != nil {
				return err
			}
			for _, k := range keywords {
				fmt.Printf("%-20s %d\n", k.Keyword, k.Count)
			}
			return nil
		}),
	}
	cmd.Flags().IntVarP(&q.N, "top", "n", 0, "Number of keywords (default from config)")
	cmd.Flags().StringVar(&q.Mood, "mood", "", "Only entries with this mood category")
	cmd.Flags().StringVar(&q.Range, "range", "", "Quick range: last_90_days, this_year or all_time")
	return cmd
}

func newRunsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Lists recent ingestion runs",
		RunE: withApp(func(cmd *cobra.Command, a *app.App) error {
			runs, err := a.Ingestion.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tKIND\tSTATUS\tDURATION\tSOURCE\tERROR")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%dms\t%s\t%s\n",
					r.StartedAt.Format("2006-01-02 15:04:05"), r.Kind, r.Status, r.Duration, r.Source, r.ErrorMessage)
			}
			return w.Flush()
		}),
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of runs to show")
	return cmd
}

func newClearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Deletes every stored entry",
		RunE: withApp(func(cmd *cobra.Command, a *app.App) error {
			if !yes {
				return errors.New("refusing to delete all entries without --yes")
			}
			n, err := a.EntryRepo.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d entries\n", n)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deleting every entry")
	return cmd
}

func printIngestion(s *dto.IngestionSummary) {
	if c := s.Conversion; c != nil {
		fmt.Printf("Documents: %d processed, %d without a date, %d with an invalid date, %d errors\n",
			c.Processed, c.SkippedNoDate, c.DroppedInvalidDate, c.Errors)
		for _, f := range c.SkippedFiles {
			fmt.Printf("  skipped: %s\n", f.File)
		}
		for _, f := range c.ErrorFiles {
			fmt.Printf("  error:   %s: %s\n", f.File, f.Message)
		}
	}
	if s.InvalidRows > 0 {
		fmt.Printf("Rows: %d read, %d invalid\n", s.RowsRead, s.InvalidRows)
	}
	fmt.Printf("Stored %d of %d analysed entries (%d duplicates)\n", s.Inserted, s.Analyzed, s.Duplicates)
}

func printEntries(records []dto.StoredRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tMOOD\tSCORE\tTITLE\tKEYWORDS")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%+.3f\t%s\t%s\n",
			r.ID, utils.FormatDate(r.Date), r.MoodCategory, r.SentimentScore, r.Title, strings.Join(firstN(r.Keywords, 5), ", "))
	}
	_ = w.Flush()
	fmt.Printf("\n%d entries\n", len(records))
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

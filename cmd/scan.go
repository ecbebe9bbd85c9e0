package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sitegrade/sitegrade/internal/fetch"
	"github.com/sitegrade/sitegrade/internal/report"
	"github.com/sitegrade/sitegrade/internal/scan"
	"github.com/sitegrade/sitegrade/internal/score"
)

var scoreColors = map[int]*color.Color{
	1: color.New(color.FgRed, color.Bold),
	2: color.New(color.FgRed),
	3: color.New(color.FgYellow),
	4: color.New(color.FgGreen),
	5: color.New(color.FgGreen, color.Bold),
}

func newScanCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "scan <url>",
		Short: "Scan one page and print the scorecard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the xlsx report to this path")
	return cmd
}

func runScan(cmd *cobra.Command, rawURL, output string) error {
	fetcher := fetch.NewCollyFetcher(fetch.Config{
		UserAgent:    cfg.Fetch.UserAgent,
		Timeout:      cfg.FetchTimeout(),
		MaxRedirects: cfg.Fetch.MaxRedirects,
	})
	scanner := scan.NewScanner(fetcher, logger)
	catalog := score.DefaultCatalog()

	outcome := scanner.Run(cmd.Context(), rawURL)
	if outcome.Status == scan.StatusError {
		return fmt.Errorf("scan failed: %s", outcome.Message)
	}
	scores := score.Score(outcome.Record, outcome.Body)

	printScorecard(outcome, scores, catalog)

	if output != "" {
		wb, err := report.BuildWorkbook(outcome.URL, scores, outcome.Record, catalog)
		if err != nil {
			return fmt.Errorf("build report: %w", err)
		}
		if err := wb.SaveAs(output); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("\nReport written to %s\n", output)
	}
	return nil
}

func printScorecard(outcome scan.Outcome, scores score.ScoreSet, catalog *score.Catalog) {
	fmt.Printf("\n%s  (scanned %s)\n\n", outcome.URL, time.Now().Format(time.RFC1123))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tSCORE\tPRIORITY\tRECOMMENDATION")
	for _, name := range score.Scored {
		val, ok := scores[name]
		if !ok {
			continue
		}
		recommendation, err := catalog.Recommendation(name, val)
		if err != nil {
			recommendation = "No recommendation available"
		}
		colored := scoreColors[val].Sprintf("%d/5", val)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, colored, report.Priority(val), recommendation)
	}
	w.Flush()

	fmt.Printf("\nOverall: %.1f/5.0\n", scores.Mean())

	if len(outcome.Record.Issues) > 0 {
		color.Yellow("\nIssues:")
		for _, issue := range outcome.Record.Issues {
			fmt.Printf("  - %s\n", issue)
		}
	}
}

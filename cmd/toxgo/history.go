package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"toxhq/toxgo/pkg/cli"
	"toxhq/toxgo/pkg/journal"
)

var historyFlags struct {
	limit     int
	pruneDays int
	format    string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded environment runs",
	Long: `List the runs recorded in the journal under the working directory,
newest first.

Examples:
  # Show the last 20 runs
  toxgo history

  # Show more
  toxgo history --limit 100

  # Delete entries older than 30 days, then list
  toxgo history --prune-days 30

  # JSON output
  toxgo history --format json`,
	RunE: showHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "maximum entries to show (0 = all)")
	historyCmd.Flags().IntVar(&historyFlags.pruneDays, "prune-days", 0, "prune entries older than this many days first")
	historyCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json")
}

func showHistory(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat(historyFlags.format)
	if err != nil {
		return err
	}
	if historyFlags.limit < 0 {
		return cli.NewConfigError("--limit", "must not be negative")
	}
	if historyFlags.pruneDays < 0 {
		return cli.NewConfigError("--prune-days", "must not be negative")
	}

	ctx := context.Background()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	workDir, err := resolveCorePath(cfg, "work_dir")
	if err != nil {
		return err
	}

	path := filepath.Join(workDir, journalFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("no runs recorded")
		return nil
	}

	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	if historyFlags.pruneDays > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -historyFlags.pruneDays)
		deleted, err := j.PruneBefore(ctx, cutoff)
		if err != nil {
			return err
		}
		fmt.Printf("pruned %d entr(ies) older than %d days\n", deleted, historyFlags.pruneDays)
	}

	runs, err := j.List(ctx, historyFlags.limit)
	if err != nil {
		return err
	}

	if format == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, runs)
	}

	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}
	fmt.Printf("%-36s  %-12s  %-8s  %-20s  %s\n", "ID", "ENV", "STATUS", "STARTED", "FINISHED")
	for _, run := range runs {
		finished := "-"
		if run.FinishedAt != nil {
			finished = run.FinishedAt.Format(time.RFC3339)
		}
		fmt.Printf("%-36s  %-12s  %-8s  %-20s  %s\n",
			run.ID, run.EnvName, run.Status, run.StartedAt.Format(time.RFC3339), finished)
	}
	return nil
}

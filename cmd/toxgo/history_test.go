package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"toxhq/toxgo/pkg/cli"
	"toxhq/toxgo/pkg/journal"
)

func TestShowHistoryFlagValidation(t *testing.T) {
	path := writeConfigFile(t, "tox: {}\n")
	setGlobalFlags(t, path, "", "")
	t.Cleanup(func() {
		historyFlags.limit = 20
		historyFlags.pruneDays = 0
		historyFlags.format = "text"
	})

	tests := []struct {
		name      string
		limit     int
		pruneDays int
		format    string
	}{
		{"negative limit", -1, 0, "text"},
		{"negative prune days", 20, -5, "text"},
		{"unknown format", 20, 0, "yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			historyFlags.limit = tt.limit
			historyFlags.pruneDays = tt.pruneDays
			historyFlags.format = tt.format

			err := showHistory(historyCmd, nil)
			var cfgErr *cli.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("showHistory() error = %v, want ConfigError", err)
			}
		})
	}
}

func TestShowHistoryNoJournal(t *testing.T) {
	path := writeConfigFile(t, "tox: {}\n")
	setGlobalFlags(t, path, "", "")
	historyFlags.limit = 20
	historyFlags.pruneDays = 0
	historyFlags.format = "text"

	// No journal file yet; the command reports that without failing.
	if err := showHistory(historyCmd, nil); err != nil {
		t.Errorf("showHistory() returned error: %v", err)
	}
}

func TestShowHistoryListsRuns(t *testing.T) {
	path := writeConfigFile(t, "tox: {}\n")
	setGlobalFlags(t, path, "", "")
	historyFlags.limit = 20
	historyFlags.pruneDays = 0
	historyFlags.format = "text"

	cfg, err := buildConfig()
	if err != nil {
		t.Fatalf("buildConfig() returned error: %v", err)
	}
	workDir, err := resolveCorePath(cfg, "work_dir")
	if err != nil {
		t.Fatalf("resolveCorePath(work_dir) returned error: %v", err)
	}

	j, err := journal.Open(filepath.Join(workDir, journalFileName))
	if err != nil {
		t.Fatalf("journal.Open() returned error: %v", err)
	}
	ctx := context.Background()
	run, err := j.Begin(ctx, "py311", "testenv:py311", workDir)
	if err != nil {
		t.Fatalf("Begin() returned error: %v", err)
	}
	if err := j.Complete(ctx, run.ID, journal.StatusOK); err != nil {
		t.Fatalf("Complete() returned error: %v", err)
	}
	j.Close()

	if err := showHistory(historyCmd, nil); err != nil {
		t.Errorf("showHistory() returned error: %v", err)
	}

	historyFlags.format = "json"
	t.Cleanup(func() { historyFlags.format = "text" })
	if err := showHistory(historyCmd, nil); err != nil {
		t.Errorf("showHistory() with JSON output returned error: %v", err)
	}
}

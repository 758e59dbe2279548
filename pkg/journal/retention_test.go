package journal

import (
	"context"
	"testing"
	"time"
)

func TestDefaultRetentionConfig(t *testing.T) {
	cfg := DefaultRetentionConfig()
	if cfg.RetentionDays != 90 {
		t.Errorf("RetentionDays = %d, want 90", cfg.RetentionDays)
	}
	if cfg.Schedule == "" {
		t.Error("default Schedule should not be empty")
	}
}

func TestPruneDisabled(t *testing.T) {
	j := openTestJournal(t)
	p := NewPruner(j, &RetentionConfig{RetentionDays: 0})

	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() returned error: %v", err)
	}
	if deleted != 0 {
		t.Errorf("Prune() deleted %d runs with retention disabled, want 0", deleted)
	}
}

func TestPruneDeletesExpiredRuns(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	old, err := j.Begin(ctx, "old", "testenv:old", "/w")
	if err != nil {
		t.Fatalf("Begin() returned error: %v", err)
	}
	past := time.Now().UTC().AddDate(0, 0, -31)
	if _, err := j.db.Exec(`UPDATE runs SET started_at = ? WHERE id = ?`, past, old.ID); err != nil {
		t.Fatalf("aging run: %v", err)
	}
	if _, err := j.Begin(ctx, "recent", "testenv:recent", "/w"); err != nil {
		t.Fatalf("Begin() returned error: %v", err)
	}

	p := NewPruner(j, &RetentionConfig{RetentionDays: 30})
	deleted, err := p.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune() returned error: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Prune() deleted %d runs, want 1", deleted)
	}
}

func TestPrunerStartInvalidSchedule(t *testing.T) {
	j := openTestJournal(t)
	p := NewPruner(j, &RetentionConfig{RetentionDays: 30, Schedule: "not a cron spec"})

	if err := p.Start(context.Background()); err == nil {
		t.Error("Start() with an invalid schedule should return an error")
	}
}

func TestPrunerStartWithoutSchedule(t *testing.T) {
	j := openTestJournal(t)
	p := NewPruner(j, &RetentionConfig{RetentionDays: 30})

	if err := p.Start(context.Background()); err != nil {
		t.Errorf("Start() without a schedule returned error: %v", err)
	}
	// No scheduler was started, so Stop is a no-op.
	p.Stop()
}

func TestPrunerStartStop(t *testing.T) {
	j := openTestJournal(t)
	p := NewPruner(j, &RetentionConfig{RetentionDays: 30, Schedule: "0 3 * * *"})
	ctx := context.Background()

	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start() returned error: %v", err)
	}
	if err := p.Start(ctx); err == nil {
		t.Error("second Start() should return an error")
	}
	p.Stop()
	p.Stop()
}

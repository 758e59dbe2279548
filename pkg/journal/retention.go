package journal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// RetentionConfig controls journal pruning.
type RetentionConfig struct {
	// RetentionDays is the number of days to keep run records.
	// 0 disables pruning.
	RetentionDays int

	// Schedule is a cron expression for periodic pruning during long-lived
	// sessions (watch mode). Empty disables the scheduler.
	Schedule string
}

// DefaultRetentionConfig returns the default retention settings: keep 90
// days of runs, prune nightly at 3 AM while a session is alive.
func DefaultRetentionConfig() *RetentionConfig {
	return &RetentionConfig{
		RetentionDays: 90,
		Schedule:      "0 3 * * *",
	}
}

// Pruner enforces the retention policy on a journal, either on demand or on
// a cron schedule.
type Pruner struct {
	journal *Journal
	config  *RetentionConfig
	cron    *cron.Cron
	logger  *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewPruner creates a pruner over the journal.
func NewPruner(journal *Journal, config *RetentionConfig) *Pruner {
	if config == nil {
		config = DefaultRetentionConfig()
	}
	return &Pruner{
		journal: journal,
		config:  config,
		cron:    cron.New(),
		logger:  slog.Default().With("component", "journal.retention"),
	}
}

// Prune deletes run records older than the retention period. It is a no-op
// when RetentionDays is 0.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	if p.config.RetentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -p.config.RetentionDays)
	return p.journal.PruneBefore(ctx, cutoff)
}

// Start schedules periodic pruning per the cron expression. It does nothing
// when no schedule is configured.
func (p *Pruner) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.config.Schedule == "" {
		p.logger.Info("prune schedule not configured, skipping scheduler")
		return nil
	}
	if p.running {
		return fmt.Errorf("retention scheduler already running")
	}

	if _, err := cron.ParseStandard(p.config.Schedule); err != nil {
		return fmt.Errorf("invalid prune schedule %q: %w", p.config.Schedule, err)
	}

	_, err := p.cron.AddFunc(p.config.Schedule, func() {
		deleted, err := p.Prune(ctx)
		if err != nil {
			p.logger.Error("scheduled prune failed", "error", err)
			return
		}
		p.logger.Info("scheduled prune completed", "deleted", deleted)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule pruning: %w", err)
	}

	p.cron.Start()
	p.running = true
	p.logger.Info("retention scheduler started", "schedule", p.config.Schedule)
	return nil
}

// Stop halts the scheduler and waits for an in-flight prune to finish.
func (p *Pruner) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	<-p.cron.Stop().Done()
	p.running = false
	p.logger.Info("retention scheduler stopped")
}

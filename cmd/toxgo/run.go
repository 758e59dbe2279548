package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"toxhq/toxgo/pkg/cli"
	"toxhq/toxgo/pkg/config"
	"toxhq/toxgo/pkg/config/loader"
	"toxhq/toxgo/pkg/journal"
	"toxhq/toxgo/pkg/telemetry/metrics"
)

// journalFileName is the journal database location under the working
// directory.
const journalFileName = "toxgo-runs.db"

var runFlags struct {
	watch       bool
	metricsAddr string
	pruneDays   int
}

var runCmd = &cobra.Command{
	Use:   "run [env...]",
	Short: "Prepare test environments",
	Long: `Prepare the requested test environments: create the working, temp and
per-environment directories, resolve each environment's set_env overlay, and
record every prepared environment in the run journal.

Without arguments the environments come from the core env_list setting.

Examples:
  # Prepare everything declared in env_list
  toxgo run

  # Prepare specific environments
  toxgo run py311 py312

  # Re-prepare whenever the config file changes
  toxgo run --watch

  # Expose prometheus metrics during a watch session
  toxgo run --watch --metrics-addr 127.0.0.1:9311`,
	RunE: runEnvs,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&runFlags.watch, "watch", "w", false, "re-prepare environments when the config file changes")
	runCmd.Flags().StringVar(&runFlags.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	runCmd.Flags().IntVar(&runFlags.pruneDays, "prune-days", 0, "prune journal entries older than this many days (watch mode)")
}

func runEnvs(cmd *cobra.Command, args []string) error {
	if runFlags.pruneDays < 0 {
		return cli.NewConfigError("--prune-days", "must not be negative")
	}

	ctx := cli.SetupSignalHandler()
	logger := slog.Default().With("component", "run")

	cfg, err := buildConfig()
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	workDir, err := resolveCorePath(cfg, "work_dir")
	if err != nil {
		return err
	}

	j, err := journal.Open(filepath.Join(workDir, journalFileName))
	if err != nil {
		return err
	}
	defer j.Close()

	collector := metrics.NewCollector(nil)
	if runFlags.metricsAddr != "" {
		go serveMetrics(runFlags.metricsAddr, collector, logger)
	}

	if err := prepareEnvs(ctx, cfg, args, j, collector, logger); err != nil {
		return err
	}
	if !runFlags.watch {
		return nil
	}

	if runFlags.pruneDays > 0 {
		pruner := journal.NewPruner(j, &journal.RetentionConfig{
			RetentionDays: runFlags.pruneDays,
			Schedule:      "0 3 * * *",
		})
		if err := pruner.Start(ctx); err != nil {
			return err
		}
		defer pruner.Stop()
	}

	watcher, err := loader.NewWatcher(cfg.SourcePath(), 0)
	if err != nil {
		return err
	}
	return watcher.Watch(ctx, func() error {
		fresh, err := buildConfig()
		if err != nil {
			return err
		}
		return prepareEnvs(ctx, fresh, args, j, collector, logger)
	})
}

// prepareEnvs materializes the configuration for every requested environment
// and sets up its directories. Command execution inside the environments is
// not part of this tool.
func prepareEnvs(ctx context.Context, cfg *config.Config, args []string, j *journal.Journal, collector *metrics.Collector, logger *slog.Logger) error {
	collector.ConfigReloads.Inc()

	workDir, err := resolveCorePath(cfg, "work_dir")
	if err != nil {
		return err
	}
	tempDir, err := resolveCorePath(cfg, "temp_dir")
	if err != nil {
		return err
	}

	// temp_dir is cleaned at the start of every preparation pass.
	if err := os.RemoveAll(tempDir); err != nil {
		return fmt.Errorf("cleaning temp dir %q: %w", tempDir, err)
	}
	for _, dir := range []string{workDir, tempDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %q: %w", dir, err)
		}
	}

	envs, err := selectEnvs(cfg, args)
	if err != nil {
		return err
	}
	if len(envs) == 0 {
		logger.Warn("no environments selected; declare env_list or name environments on the command line")
		return nil
	}

	var failed []string
	for _, name := range envs {
		if err := prepareEnv(ctx, cfg, name, workDir, j, collector, logger); err != nil {
			logger.Error("environment preparation failed", "env", name, "error", err)
			failed = append(failed, name)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to prepare environment(s): %v", failed)
	}
	logger.Info("preparation pass complete", "envs", cfg.EnvNames())
	return nil
}

func prepareEnv(ctx context.Context, cfg *config.Config, name, workDir string, j *journal.Journal, collector *metrics.Collector, logger *slog.Logger) error {
	set, err := cfg.Env(name)
	if err != nil {
		return err
	}

	envDir := filepath.Join(workDir, name)
	run, err := j.Begin(ctx, name, set.Section(), envDir)
	if err != nil {
		return err
	}
	collector.JournalWrites.Inc()

	if err := materializeEnv(set, envDir); err != nil {
		if completeErr := j.Complete(ctx, run.ID, journal.StatusFailed); completeErr != nil {
			err = errors.Join(err, completeErr)
		}
		return err
	}

	collector.EnvsPrepared.WithLabelValues(name).Inc()
	logger.Info("environment prepared", "env", name, "dir", envDir)
	return j.Complete(ctx, run.ID, journal.StatusOK)
}

func materializeEnv(set *config.EnvSet, envDir string) error {
	value, err := set.Load("set_env")
	if err != nil {
		return err
	}
	overlay, ok := value.(*config.SetEnv)
	if !ok {
		return fmt.Errorf("set_env resolved to unexpected type %T", value)
	}

	if err := os.MkdirAll(filepath.Join(envDir, "tmp"), 0o755); err != nil {
		return fmt.Errorf("creating environment directory: %w", err)
	}

	slog.Default().Debug("environment overlay resolved",
		"env", set.EnvName(),
		"set_env_entries", overlay.Len(),
	)
	return nil
}

func serveMetrics(addr string, collector *metrics.Collector, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("metrics endpoint listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics endpoint failed", "error", err)
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"toxhq/toxgo/pkg/cli"
	"toxhq/toxgo/pkg/config"
	"toxhq/toxgo/pkg/config/loader"
	"toxhq/toxgo/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile   string
	rootDir   string
	workDir   string
	verbose   bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "toxgo",
	Short: "toxgo - test environment orchestrator",
	Long: `Toxgo resolves layered configuration for test environments declared in a
toxgo.yaml file and prepares those environments for use.

Global settings live in the "tox" section; per-environment settings live in
"testenv:<name>" sections, inheriting from the shared "testenv" section.
Values may be constants or computed lazily from defaults that reference
other keys.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if verbose {
			level = "debug"
		}
		_, err := logging.Setup(level, logging.Format(logFormat), nil)
		return err
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "toxgo.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "project root directory (default: config file directory)")
	rootCmd.PersistentFlags().StringVar(&workDir, "workdir", "", "base directory for the working tree (default: project root)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text, json")
}

// buildConfig constructs the Config from the global flags. A missing config
// file is not an error; every value then resolves to its default.
func buildConfig() (*config.Config, error) {
	abs, err := filepath.Abs(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("resolving config path %q: %w", cfgFile, err)
	}

	var doc *loader.Document
	if _, statErr := os.Stat(abs); statErr == nil {
		doc, err = loader.ParseFile(abs)
		if err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(statErr) {
		return nil, fmt.Errorf("reading config file %q: %w", abs, statErr)
	}

	root := filepath.Dir(abs)
	if rootDir != "" {
		root, err = filepath.Abs(rootDir)
		if err != nil {
			return nil, fmt.Errorf("resolving root directory %q: %w", rootDir, err)
		}
	}

	var opts []config.Option
	if workDir != "" {
		wd, err := filepath.Abs(workDir)
		if err != nil {
			return nil, fmt.Errorf("resolving workdir %q: %w", workDir, err)
		}
		opts = append(opts, config.WithWorkDir(wd))
	}

	return config.New(root, abs, doc, opts...)
}

// selectEnvs returns the environments named on the command line, or the
// resolved env_list when none are given. When env_list is empty too, the
// environments with a declared testenv section are used.
func selectEnvs(cfg *config.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	value, err := cfg.Core().Load("env_list")
	if err != nil {
		return nil, err
	}
	list, ok := value.(config.EnvList)
	if !ok {
		return nil, fmt.Errorf("env_list resolved to unexpected type %T", value)
	}
	if list.Len() == 0 {
		return cfg.DeclaredEnvNames(), nil
	}
	return list.Names(), nil
}

// parseOutputFormat validates a --format flag value.
func parseOutputFormat(value string) (cli.OutputFormat, error) {
	switch format := cli.OutputFormat(value); format {
	case cli.FormatText, cli.FormatJSON:
		return format, nil
	default:
		return "", cli.NewConfigError("--format", fmt.Sprintf("unknown output format %q", value))
	}
}

// resolveCorePath resolves a core directory key to its string value.
func resolveCorePath(cfg *config.Config, key string) (string, error) {
	value, err := cfg.Core().Load(key)
	if err != nil {
		return "", err
	}
	path, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%s resolved to unexpected type %T", key, value)
	}
	return path, nil
}

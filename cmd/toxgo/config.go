package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"toxhq/toxgo/pkg/cli"
	"toxhq/toxgo/pkg/config"
)

var configFlags struct {
	format string
}

var configCmd = &cobra.Command{
	Use:   "config [env...]",
	Short: "Show resolved configuration",
	Long: `Show every registered configuration key with its resolved value.

Keys are listed in registration order, per section: the core "tox" section
first, then one section per requested environment (all environments from
env_list when none are named).

Examples:
  # Show core and all declared environments
  toxgo config

  # Show specific environments
  toxgo config py311 py312

  # JSON output
  toxgo config --format json`,
	RunE: showConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVar(&configFlags.format, "format", "text", "output format: text, json")
}

// sectionValues is one section's resolved keys, in registration order.
type sectionValues struct {
	Section string        `json:"section"`
	Keys    []resolvedKey `json:"keys"`
}

type resolvedKey struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func showConfig(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat(configFlags.format)
	if err != nil {
		return err
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	report := []sectionValues{}

	core, err := collectSection(cfg.Core().ConfigSet)
	if err != nil {
		return err
	}
	report = append(report, core)

	envs, err := selectEnvs(cfg, args)
	if err != nil {
		return err
	}
	for _, name := range envs {
		set, err := cfg.Env(name)
		if err != nil {
			return err
		}
		section, err := collectSection(set.ConfigSet)
		if err != nil {
			return err
		}
		report = append(report, section)
	}

	if format == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, report)
	}

	for i, section := range report {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("[%s]\n", section.Section)
		for _, kv := range section.Keys {
			fmt.Printf("%s = %s\n", kv.Key, kv.Value)
		}
	}
	return nil
}

func collectSection(set *config.ConfigSet) (sectionValues, error) {
	out := sectionValues{Section: set.Section()}
	for _, key := range set.Keys() {
		value, err := set.Load(key)
		if err != nil {
			return sectionValues{}, fmt.Errorf("resolving %s in section %s: %w", key, set.Section(), err)
		}
		out.Keys = append(out.Keys, resolvedKey{Key: key, Value: displayValue(value)})
	}
	return out, nil
}

// displayValue renders a resolved value for output.
func displayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case config.EnvList:
		return v.String()
	case *config.SetEnv:
		return strings.Join(v.Environ(), ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"toxhq/toxgo/pkg/cli"
)

var lintFlags struct {
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint [env...]",
	Short: "Report unused configuration keys",
	Long: `Audit the configuration file for keys that are present in a section but
never declared by the corresponding configuration set, most commonly because
of a typo or an option removed from the schema.

Sections inherited by other sections are not scanned directly, so inherited
keys are only reported once. The command exits non-zero when unused keys are
found.

Examples:
  # Audit core settings and every environment in env_list
  toxgo lint

  # Audit specific environments
  toxgo lint py311

  # JSON output for CI
  toxgo lint --format json`,
	RunE: lintConfig,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// sectionAudit is the unused-key report for one section.
type sectionAudit struct {
	Section string   `json:"section"`
	Unused  []string `json:"unused"`
}

func lintConfig(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat(lintFlags.format)
	if err != nil {
		return err
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	audits := []sectionAudit{{
		Section: cfg.Core().Section(),
		Unused:  cfg.Core().Unused(),
	}}

	envs, err := selectEnvs(cfg, args)
	if err != nil {
		return err
	}
	for _, name := range envs {
		set, err := cfg.Env(name)
		if err != nil {
			return err
		}
		audits = append(audits, sectionAudit{Section: set.Section(), Unused: set.Unused()})
	}

	total := 0
	for _, audit := range audits {
		total += len(audit.Unused)
	}

	if format == cli.FormatJSON {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, audits); err != nil {
			return err
		}
	} else {
		for _, audit := range audits {
			if len(audit.Unused) == 0 {
				continue
			}
			fmt.Printf("[%s]\n", audit.Section)
			for _, key := range audit.Unused {
				fmt.Printf("  unused key: %s\n", key)
			}
		}
		if total == 0 {
			fmt.Println("no unused configuration keys")
		}
	}

	if total > 0 {
		return fmt.Errorf("%d unused configuration key(s) found", total)
	}
	return nil
}

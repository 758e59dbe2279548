// Toxgo is a test-environment orchestrator driven by a layered
// configuration file.
//
// It resolves global and per-environment settings from toxgo.yaml, prepares
// the declared environments under the working directory, and records every
// run in a journal.
//
// Usage:
//
//	# Prepare the environments declared in env_list
//	toxgo run
//
//	# Prepare specific environments, re-running when the config changes
//	toxgo run py311 py312 --watch
//
//	# Show every configuration key with its resolved value
//	toxgo config
//
//	# Report configuration keys present in the file but never declared
//	toxgo lint
//
//	# List recorded runs
//	toxgo history
//
//	# Show version information
//	toxgo version
package main

func main() {
	Execute()
}

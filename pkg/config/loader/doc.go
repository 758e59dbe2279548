// Package loader supplies raw configuration values to the registry.
//
// A Loader exposes the key/value pairs of one source section. Loaders may
// declare a parent they fall back to, which is how one environment borrows
// another section's settings; the unused-key audit identifies parents by
// loader identity, so implementations are pointer types.
//
// FileLoader reads sections of a parsed toxgo.yaml document; MemoryLoader
// holds an in-memory map and is the workhorse of tests. Watcher observes the
// configuration file and reports debounced change events for watch mode.
package loader

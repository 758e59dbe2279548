// Package config implements the layered configuration registry at the heart
// of toxgo.
//
// Configuration is organized into sets: one core set holding global settings
// (root directory, working directory, temp directory, default environment
// list) and one set per declared test environment. Each set is a registry of
// declared keys. A key is declared once, under one or more aliases, with
// either a constant value or a dynamic definition whose value is computed
// lazily from loaders and a default that may itself resolve other keys.
//
// # Declaring and resolving keys
//
// Sets register their keys at construction time; external callers never add
// keys afterwards. A value is materialized on every lookup:
//
//	cfg, err := config.NewFromFile("toxgo.yaml")
//	root, err := cfg.Core().Load("tox_root")
//
// Lookups accept any declared alias, so Load("toxinidir") and
// Load("tox_root") return the same value. Resolution is not memoized at this
// layer; a dynamic definition is re-invoked on every call.
//
// # Cycle detection
//
// Dynamic defaults may resolve other keys through the owning Config. Each
// nested lookup extends a resolution chain, and a definition that finds its
// own key in the inherited chain fails with a CircularReferenceError rather
// than recursing forever.
//
// # Duplicate declarations
//
// Re-registering a primary key is governed by the set's duplicate policy:
// environment sets reject unequal redeclarations with a DuplicateKeyError
// (equal ones are a silent no-op), while the core set always keeps the first
// registration so independent setup paths may declare the same global key.
//
// # Concurrency
//
// Registration happens single-threaded during construction. After that a set
// is read-only; callers needing concurrent access must synchronize
// externally.
package config

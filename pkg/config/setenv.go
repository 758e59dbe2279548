package config

import (
	"fmt"
	"sort"
	"strings"
)

// SetEnv is an environment-variable overlay scoped to one configuration set,
// as declared by an environment set's set_env key. Entries keep their
// declaration order for display; merged-in defaults never overwrite explicit
// entries.
type SetEnv struct {
	section string
	envName string
	entries map[string]string
	order   []string
}

// NewSetEnv parses KEY=VALUE lines into an overlay scoped to the given
// section and environment. Blank lines and surrounding whitespace are
// ignored; a line without '=' is an error.
func NewSetEnv(raw, section, envName string) (*SetEnv, error) {
	se := &SetEnv{
		section: section,
		envName: envName,
		entries: make(map[string]string),
	}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("set_env entry %q has no '='", line)
		}
		se.set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return se, nil
}

func (s *SetEnv) set(key, value string) {
	if _, ok := s.entries[key]; !ok {
		s.order = append(s.order, key)
	}
	s.entries[key] = value
}

// Section returns the owning set's section name.
func (s *SetEnv) Section() string { return s.section }

// EnvName returns the owning set's environment name.
func (s *SetEnv) EnvName() string { return s.envName }

// Value returns the value set for key.
func (s *SetEnv) Value(key string) (string, bool) {
	value, ok := s.entries[key]
	return value, ok
}

// Keys returns the variable names in declaration order.
func (s *SetEnv) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of entries.
func (s *SetEnv) Len() int { return len(s.entries) }

// UpdateIfNotPresent merges defaults into the overlay without overwriting
// explicit entries. Defaults are applied in sorted key order so the
// resulting declaration order is deterministic.
func (s *SetEnv) UpdateIfNotPresent(defaults map[string]string) {
	keys := make([]string, 0, len(defaults))
	for key := range defaults {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := s.entries[key]; !ok {
			s.set(key, defaults[key])
		}
	}
}

// Environ renders the overlay as KEY=VALUE strings in declaration order,
// suitable for appending to a process environment.
func (s *SetEnv) Environ() []string {
	out := make([]string, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, key+"="+s.entries[key])
	}
	return out
}

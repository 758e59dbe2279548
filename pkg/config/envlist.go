package config

import "strings"

// EnvList is an ordered, de-duplicated list of environment names, as declared
// by the core set's env_list key.
type EnvList struct {
	names []string
}

// NewEnvList builds an EnvList, dropping duplicates while preserving order.
func NewEnvList(names []string) EnvList {
	var (
		seen = make(map[string]struct{}, len(names))
		out  []string
	)
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return EnvList{names: out}
}

// ParseEnvList parses a comma or newline separated list of environment names.
func ParseEnvList(raw string) EnvList {
	var names []string
	for _, chunk := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		name := strings.TrimSpace(chunk)
		if name != "" {
			names = append(names, name)
		}
	}
	return NewEnvList(names)
}

// Names returns the environment names in declaration order.
func (e EnvList) Names() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Len returns the number of environments.
func (e EnvList) Len() int { return len(e.names) }

func (e EnvList) String() string {
	return strings.Join(e.names, ", ")
}

package config

// LoadArgs carries the context of one top-level lookup through every
// definition invocation: the chain of keys already being resolved, plus the
// owning set's section name and environment name (empty for the core set).
//
// LoadArgs values are immutable; Next returns a new value with an extended
// chain, so sibling resolutions never see each other's keys.
type LoadArgs struct {
	// Chain holds the keys currently being resolved, outermost first.
	Chain []string

	// Section is the name of the owning configuration set.
	Section string

	// EnvName is the environment the owning set belongs to, or empty for
	// the core set.
	EnvName string
}

// NewLoadArgs builds the context for a fresh lookup. The chain may be nil.
func NewLoadArgs(chain []string, section, envName string) *LoadArgs {
	return &LoadArgs{Chain: chain, Section: section, EnvName: envName}
}

// Next returns a copy of the context with key appended to the chain.
func (a *LoadArgs) Next(key string) *LoadArgs {
	chain := make([]string, 0, len(a.Chain)+1)
	chain = append(chain, a.Chain...)
	chain = append(chain, key)
	return &LoadArgs{Chain: chain, Section: a.Section, EnvName: a.EnvName}
}

// ChainContains reports whether key is already being resolved in this lookup.
func (a *LoadArgs) ChainContains(key string) bool {
	for _, k := range a.Chain {
		if k == key {
			return true
		}
	}
	return false
}

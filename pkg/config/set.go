package config

import (
	"fmt"
	"sort"

	"toxhq/toxgo/pkg/config/loader"
)

// DuplicatePolicy decides the outcome when a primary key is re-registered.
// A nil return means the re-registration is silently ignored and the first
// definition stays in effect.
type DuplicatePolicy func(section, key string, existing, incoming Definition) error

// StrictDuplicates is the default policy: an unequal redeclaration is an
// error, an equal one is an idempotent no-op.
func StrictDuplicates(section, key string, existing, incoming Definition) error {
	if !incoming.Equal(existing) {
		return &DuplicateKeyError{Key: key, Section: section}
	}
	return nil
}

// FirstWins accepts every redeclaration silently; the first registration
// stays in effect. Used by the core set, whose globals may be declared by
// several setup paths.
func FirstWins(string, string, Definition, Definition) error {
	return nil
}

// ConfigSet is a registry of configuration keys that belong together, such
// as the core settings or one test environment's settings. Specializations
// register their keys at construction; afterwards the set serves lookups.
type ConfigSet struct {
	conf        *Config
	section     string
	envName     string
	loaders     []loader.Loader
	defined     map[string]Definition
	primaryKeys []string
	alias       map[string]string
	onDuplicate DuplicatePolicy
}

func newConfigSet(conf *Config, section, envName string, onDuplicate DuplicatePolicy) *ConfigSet {
	if onDuplicate == nil {
		onDuplicate = StrictDuplicates
	}
	return &ConfigSet{
		conf:        conf,
		section:     section,
		envName:     envName,
		defined:     make(map[string]Definition),
		alias:       make(map[string]string),
		onDuplicate: onDuplicate,
	}
}

// Section returns the set's section name.
func (s *ConfigSet) Section() string { return s.section }

// EnvName returns the environment this set belongs to, or empty for the
// core set.
func (s *ConfigSet) EnvName() string { return s.envName }

// AddLoader appends a raw-value source. Loaders are consulted in append
// order during resolution and by the unused-key audit.
func (s *ConfigSet) AddLoader(l loader.Loader) {
	s.loaders = append(s.loaders, l)
}

// Loaders returns the set's loaders in consultation order.
func (s *ConfigSet) Loaders() []loader.Loader {
	out := make([]loader.Loader, len(s.loaders))
	copy(out, s.loaders)
	return out
}

// AddDynamic registers a lazily computed key under one or more aliases; the
// first alias is the primary key. The returned definition is the one just
// built, whether or not it won the registration.
func (s *ConfigSet) AddDynamic(keys []string, defaultValue any, desc string, opts ...DynamicOption) (*DynamicDefinition, error) {
	def := NewDynamicDefinition(keys, defaultValue, desc, opts...)
	if err := s.register(def); err != nil {
		return nil, err
	}
	return def, nil
}

// AddConstant registers a fixed-value key under one or more aliases; the
// first alias is the primary key.
func (s *ConfigSet) AddConstant(keys []string, desc string, value any) (*ConstantDefinition, error) {
	def := NewConstantDefinition(keys, desc, value)
	if err := s.register(def); err != nil {
		return nil, err
	}
	return def, nil
}

func (s *ConfigSet) register(def Definition) error {
	keys := def.Keys()
	if len(keys) == 0 {
		return fmt.Errorf("config definition in section %q declares no keys", s.section)
	}
	primary := keys[0]
	if existing, ok := s.defined[primary]; ok {
		return s.onDuplicate(s.section, primary, existing, def)
	}
	s.primaryKeys = append(s.primaryKeys, primary)
	for _, key := range keys {
		s.alias[key] = primary
		s.defined[key] = def
	}
	return nil
}

// Load materializes the value for a key, starting a fresh resolution chain.
// The key may be any declared alias.
func (s *ConfigSet) Load(key string) (any, error) {
	return s.LoadWithChain(key, nil)
}

// LoadWithChain materializes the value for a key, inheriting the resolution
// chain of an enclosing lookup. Dynamic defaults that resolve other keys
// must pass their chain through here so cycles are detected.
func (s *ConfigSet) LoadWithChain(key string, chain []string) (any, error) {
	def, ok := s.defined[key]
	if !ok {
		return nil, &UnknownKeyError{Key: key, Section: s.section}
	}
	args := NewLoadArgs(chain, s.section, s.envName)
	return def.Invoke(s.conf, s.loaders, args)
}

// Definition returns the definition registered under an alias.
func (s *ConfigSet) Definition(key string) (Definition, error) {
	def, ok := s.defined[key]
	if !ok {
		return nil, &UnknownKeyError{Key: key, Section: s.section}
	}
	return def, nil
}

// PrimaryKey returns the canonical name for an alias.
func (s *ConfigSet) PrimaryKey(key string) (string, error) {
	primary, ok := s.alias[key]
	if !ok {
		return "", &UnknownKeyError{Key: key, Section: s.section}
	}
	return primary, nil
}

// Contains reports whether an alias is declared in this set. Every alias of
// a declaration counts, not just the primary key.
func (s *ConfigSet) Contains(key string) bool {
	_, ok := s.alias[key]
	return ok
}

// Keys returns the primary keys in first-registration order.
func (s *ConfigSet) Keys() []string {
	out := make([]string, len(s.primaryKeys))
	copy(out, s.primaryKeys)
	return out
}

// Unused returns the keys present in this set's loader sources but never
// declared, sorted lexicographically. Loaders that serve as another loader's
// parent are skipped so inherited keys are not double-counted. A key counts
// as used when declared under any alias.
func (s *ConfigSet) Unused() []string {
	parents := make(map[loader.Loader]struct{})
	for _, l := range s.loaders {
		if p := l.Parent(); p != nil {
			parents[p] = struct{}{}
		}
	}

	found := make(map[string]struct{})
	for _, l := range s.loaders {
		if _, ok := parents[l]; ok {
			continue
		}
		for key := range l.FoundKeys() {
			found[key] = struct{}{}
		}
	}
	for key := range s.defined {
		delete(found, key)
	}

	out := make([]string, 0, len(found))
	for key := range found {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"toxhq/toxgo/pkg/config/loader"
)

// CoreSection is the section name of the global settings set.
const CoreSection = "tox"

// EnvSectionPrefix prefixes per-environment section names, e.g.
// "testenv:py311". The bare prefix names the shared base section every
// environment inherits from.
const EnvSectionPrefix = "testenv"

// Config owns the configuration sets of one toxgo invocation: the core set
// plus one set per requested test environment. It is the handle passed into
// every definition invocation, giving dynamic defaults cross-section access.
type Config struct {
	rootDir string
	srcPath string
	workDir string
	doc     *loader.Document
	logger  *slog.Logger

	core     *CoreSet
	envs     map[string]*EnvSet
	envOrder []string

	// baseEnvLoader is shared by every environment set so the audit can
	// recognize it as a parent by identity.
	baseEnvLoader loader.Loader
}

// Option adjusts Config construction.
type Option func(*Config)

// WithWorkDir supplies an externally resolved base directory for the
// working tree; the core set's work_dir default places .tox/4 under it
// instead of under the root.
func WithWorkDir(dir string) Option {
	return func(c *Config) { c.workDir = dir }
}

// WithLogger replaces the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.logger = logger }
}

// New builds a Config over an already parsed source document. The document
// may be nil, in which case every value resolves to its default.
func New(rootDir, srcPath string, doc *loader.Document, opts ...Option) (*Config, error) {
	c := &Config{
		rootDir: rootDir,
		srcPath: srcPath,
		doc:     doc,
		envs:    make(map[string]*EnvSet),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default().With("component", "config")
	}

	core, err := newCoreSet(c, CoreSection, rootDir, srcPath)
	if err != nil {
		return nil, fmt.Errorf("building core configuration set: %w", err)
	}
	if doc != nil {
		if l := doc.Section(CoreSection); l != nil {
			core.AddLoader(l)
		}
	}
	c.core = core
	return c, nil
}

// NewFromFile parses a toxgo.yaml document and builds a Config rooted at the
// file's directory.
func NewFromFile(path string, opts ...Option) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path %q: %w", path, err)
	}
	doc, err := loader.ParseFile(abs)
	if err != nil {
		return nil, err
	}
	return New(filepath.Dir(abs), abs, doc, opts...)
}

// Core returns the global settings set.
func (c *Config) Core() *CoreSet { return c.core }

// RootDir returns the project root directory.
func (c *Config) RootDir() string { return c.rootDir }

// SourcePath returns the path of the configuration file.
func (c *Config) SourcePath() string { return c.srcPath }

// WorkDir returns the externally supplied working-directory override, or
// empty when the core set's own default applies.
func (c *Config) WorkDir() string { return c.workDir }

// Env returns the settings set for a test environment, constructing and
// registering it on first request. Subsequent calls return the same set.
func (c *Config) Env(name string) (*EnvSet, error) {
	if set, ok := c.envs[name]; ok {
		return set, nil
	}

	section := EnvSectionPrefix + ":" + name
	set, err := newEnvSet(c, section, name)
	if err != nil {
		return nil, fmt.Errorf("building configuration set for environment %q: %w", name, err)
	}

	if c.doc != nil {
		if !c.doc.HasSection(section) {
			c.logger.Debug("environment has no dedicated section, defaults apply", "env", name)
		}
		base := c.sharedEnvLoader()
		if l := c.doc.SectionWithParent(section, base); l != nil {
			set.AddLoader(l)
		}
		if base != nil {
			set.AddLoader(base)
		}
	}

	c.envs[name] = set
	c.envOrder = append(c.envOrder, name)
	c.logger.Debug("environment configuration set created", "env", name, "section", section)
	return set, nil
}

// EnvNames returns the names of the environment sets built so far, in
// creation order.
func (c *Config) EnvNames() []string {
	out := make([]string, len(c.envOrder))
	copy(out, c.envOrder)
	return out
}

// DeclaredEnvNames returns the names of the environments the source document
// declares a dedicated section for, sorted. Used as the environment
// selection of last resort when env_list is empty.
func (c *Config) DeclaredEnvNames() []string {
	if c.doc == nil {
		return nil
	}
	var names []string
	for _, section := range c.doc.SectionNames() {
		if name, ok := strings.CutPrefix(section, EnvSectionPrefix+":"); ok && name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// sharedEnvLoader returns the loader over the shared base environment
// section. The same instance is handed to every environment set so the
// unused-key audit can identify it as a parent loader by identity.
func (c *Config) sharedEnvLoader() loader.Loader {
	if c.baseEnvLoader == nil {
		if l := c.doc.Section(EnvSectionPrefix); l != nil {
			c.baseEnvLoader = l
		}
	}
	return c.baseEnvLoader
}

package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a parsed toxgo.yaml configuration file. Top-level mappings are
// sections ("tox", "testenv", "testenv:py311"); their entries are the raw
// key/value pairs served to the registry.
type Document struct {
	path     string
	sections map[string]map[string]any

	// loaders memoizes section loaders so repeated requests hand out the
	// same instance; the audit's parent deduplication relies on identity.
	loaders map[string]*FileLoader
}

// ParseFile reads and parses a configuration file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses configuration file contents. The path is kept for
// diagnostics only.
func Parse(data []byte, path string) (*Document, error) {
	var raw map[string]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}
	return &Document{
		path:     path,
		sections: raw,
		loaders:  make(map[string]*FileLoader),
	}, nil
}

// Path returns the source file path.
func (d *Document) Path() string { return d.path }

// HasSection reports whether the document declares a section.
func (d *Document) HasSection(name string) bool {
	_, ok := d.sections[name]
	return ok
}

// SectionNames returns the declared section names, unordered.
func (d *Document) SectionNames() []string {
	names := make([]string, 0, len(d.sections))
	for name := range d.sections {
		names = append(names, name)
	}
	return names
}

// Section returns a loader over a section without a parent, or nil when the
// document does not declare the section. The same instance is returned for
// repeated calls.
func (d *Document) Section(name string) Loader {
	return d.SectionWithParent(name, nil)
}

// SectionWithParent returns a loader over a section that falls back to
// parent, or nil when the document does not declare the section. The parent
// recorded at the first request for a section stays in effect.
func (d *Document) SectionWithParent(name string, parent Loader) Loader {
	values, ok := d.sections[name]
	if !ok {
		return nil
	}
	if l, ok := d.loaders[name]; ok {
		return l
	}
	l := &FileLoader{path: d.path, section: name, values: values, parent: parent}
	d.loaders[name] = l
	return l
}

// FileLoader serves the raw values of one section of a configuration file.
type FileLoader struct {
	path    string
	section string
	values  map[string]any
	parent  Loader
}

// Section returns the section name this loader serves.
func (l *FileLoader) Section() string { return l.section }

// Path returns the source file path.
func (l *FileLoader) Path() string { return l.path }

// Load returns the raw value for key, consulting the parent on a miss.
func (l *FileLoader) Load(key string) (any, bool) {
	if value, ok := l.values[key]; ok {
		return value, true
	}
	if l.parent != nil {
		return l.parent.Load(key)
	}
	return nil, false
}

// FoundKeys returns the section's own keys.
func (l *FileLoader) FoundKeys() map[string]struct{} {
	keys := make(map[string]struct{}, len(l.values))
	for key := range l.values {
		keys[key] = struct{}{}
	}
	return keys
}

// Parent returns the fallback loader, or nil.
func (l *FileLoader) Parent() Loader { return l.parent }

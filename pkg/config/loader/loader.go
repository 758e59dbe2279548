package loader

// Loader is an ordered source of raw configuration values for one section.
//
// Implementations must be comparable by identity (pointer types): the
// unused-key audit deduplicates inherited sections by comparing a loader's
// Parent against the loaders of the owning set.
type Loader interface {
	// Load returns the raw value for key, falling back to the parent chain
	// when the key is not present in this loader's own source.
	Load(key string) (any, bool)

	// FoundKeys returns the keys this loader's own backing source contains,
	// excluding anything inherited from the parent.
	FoundKeys() map[string]struct{}

	// Parent returns the loader this one falls back to, or nil.
	Parent() Loader
}

// MemoryLoader serves raw values from an in-memory map.
type MemoryLoader struct {
	name   string
	values map[string]any
	parent Loader
}

// NewMemoryLoader builds a loader over a value map. The parent may be nil.
func NewMemoryLoader(name string, values map[string]any, parent Loader) *MemoryLoader {
	if values == nil {
		values = make(map[string]any)
	}
	return &MemoryLoader{name: name, values: values, parent: parent}
}

// Name returns the loader's diagnostic name.
func (l *MemoryLoader) Name() string { return l.name }

// Load returns the raw value for key, consulting the parent on a miss.
func (l *MemoryLoader) Load(key string) (any, bool) {
	if value, ok := l.values[key]; ok {
		return value, true
	}
	if l.parent != nil {
		return l.parent.Load(key)
	}
	return nil, false
}

// FoundKeys returns this loader's own keys.
func (l *MemoryLoader) FoundKeys() map[string]struct{} {
	keys := make(map[string]struct{}, len(l.values))
	for key := range l.values {
		keys[key] = struct{}{}
	}
	return keys
}

// Parent returns the fallback loader, or nil.
func (l *MemoryLoader) Parent() Loader { return l.parent }

package config

import (
	"reflect"

	"toxhq/toxgo/pkg/config/loader"
)

// Definition describes how a configuration entry's value is produced. A set
// maps every declared alias to the same Definition instance, so lookup under
// any alias materializes the same entry.
type Definition interface {
	// Keys returns the declared aliases; the first element is the primary key.
	Keys() []string

	// Description returns the help text supplied at registration.
	Description() string

	// Invoke materializes the value. It receives the owning Config (for
	// cross-section lookups), the owning set's loaders, and the resolution
	// context of the current top-level lookup.
	Invoke(conf *Config, loaders []loader.Loader, args *LoadArgs) (any, error)

	// Equal reports whether the other definition declares the same entry.
	// Used by the strict duplicate policy to allow idempotent redeclaration.
	Equal(other Definition) bool
}

// DefaultFunc computes a dynamic definition's default. It receives the owning
// Config and the resolution context with the definition's own key already
// appended to the chain, so nested lookups propagate cycle detection.
type DefaultFunc func(conf *Config, args *LoadArgs) (any, error)

// Factory converts a raw loaded value into the definition's value type.
type Factory func(raw any) (any, error)

// PostProcess adjusts a materialized value before it is returned.
type PostProcess func(value any) (any, error)

// ConstantDefinition always returns a fixed value.
type ConstantDefinition struct {
	keys  []string
	desc  string
	value any
}

// NewConstantDefinition creates a constant definition. The first key is the
// primary key.
func NewConstantDefinition(keys []string, desc string, value any) *ConstantDefinition {
	return &ConstantDefinition{keys: keys, desc: desc, value: value}
}

// Keys returns the declared aliases.
func (d *ConstantDefinition) Keys() []string { return d.keys }

// Description returns the help text.
func (d *ConstantDefinition) Description() string { return d.desc }

// Invoke returns the constant value.
func (d *ConstantDefinition) Invoke(_ *Config, _ []loader.Loader, _ *LoadArgs) (any, error) {
	return d.value, nil
}

// Equal reports whether other is a constant definition with the same keys,
// description and value.
func (d *ConstantDefinition) Equal(other Definition) bool {
	o, ok := other.(*ConstantDefinition)
	if !ok {
		return false
	}
	return reflect.DeepEqual(d.keys, o.keys) &&
		d.desc == o.desc &&
		reflect.DeepEqual(d.value, o.value)
}

// DynamicDefinition computes its value lazily. Resolution consults the set's
// loaders first (any alias, loaders in order); when no loader supplies a raw
// value the default is used. A factory, when present, converts raw loaded
// values; a post-process step, when present, adjusts the final value.
type DynamicDefinition struct {
	keys         []string
	desc         string
	defaultValue any
	defaultFunc  DefaultFunc
	factory      Factory
	postProcess  PostProcess
}

// DynamicOption configures a DynamicDefinition at registration time.
type DynamicOption func(*DynamicDefinition)

// WithDefaultFunc supplies a computed default instead of a fixed one.
func WithDefaultFunc(fn DefaultFunc) DynamicOption {
	return func(d *DynamicDefinition) { d.defaultFunc = fn }
}

// WithFactory supplies the raw-value conversion step.
func WithFactory(fn Factory) DynamicOption {
	return func(d *DynamicDefinition) { d.factory = fn }
}

// WithPostProcess supplies the post-processing step.
func WithPostProcess(fn PostProcess) DynamicOption {
	return func(d *DynamicDefinition) { d.postProcess = fn }
}

// NewDynamicDefinition creates a dynamic definition. The first key is the
// primary key; defaultValue is ignored when WithDefaultFunc is given.
func NewDynamicDefinition(keys []string, defaultValue any, desc string, opts ...DynamicOption) *DynamicDefinition {
	d := &DynamicDefinition{keys: keys, desc: desc, defaultValue: defaultValue}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Keys returns the declared aliases.
func (d *DynamicDefinition) Keys() []string { return d.keys }

// Description returns the help text.
func (d *DynamicDefinition) Description() string { return d.desc }

// Invoke materializes the value. It fails with a CircularReferenceError when
// the definition's own primary key is already on the inherited chain.
func (d *DynamicDefinition) Invoke(conf *Config, loaders []loader.Loader, args *LoadArgs) (any, error) {
	primary := d.keys[0]
	if args.ChainContains(primary) {
		return nil, &CircularReferenceError{Key: primary, Chain: args.Chain}
	}
	next := args.Next(primary)

	value, found, err := d.fromLoaders(loaders)
	if err != nil {
		return nil, err
	}
	if !found {
		if d.defaultFunc != nil {
			value, err = d.defaultFunc(conf, next)
			if err != nil {
				return nil, err
			}
		} else {
			value = d.defaultValue
		}
	}

	if d.postProcess != nil {
		value, err = d.postProcess(value)
		if err != nil {
			return nil, err
		}
	}
	return value, nil
}

// fromLoaders looks the entry up in the set's loaders, trying aliases in
// declaration order so the primary key wins over later aliases.
func (d *DynamicDefinition) fromLoaders(loaders []loader.Loader) (any, bool, error) {
	for _, key := range d.keys {
		for _, l := range loaders {
			raw, ok := l.Load(key)
			if !ok {
				continue
			}
			if d.factory == nil {
				return raw, true, nil
			}
			value, err := d.factory(raw)
			if err != nil {
				return nil, false, err
			}
			return value, true, nil
		}
	}
	return nil, false, nil
}

// Equal reports whether other declares the same dynamic entry. Function
// fields are compared by function identity.
func (d *DynamicDefinition) Equal(other Definition) bool {
	o, ok := other.(*DynamicDefinition)
	if !ok {
		return false
	}
	return reflect.DeepEqual(d.keys, o.keys) &&
		d.desc == o.desc &&
		reflect.DeepEqual(d.defaultValue, o.defaultValue) &&
		sameFunc(d.defaultFunc, o.defaultFunc) &&
		sameFunc(d.factory, o.factory) &&
		sameFunc(d.postProcess, o.postProcess)
}

// sameFunc compares two function values by identity, treating two nil
// functions as equal.
func sameFunc(a, b any) bool {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.IsNil() || bv.IsNil() {
		return av.IsNil() && bv.IsNil()
	}
	return av.Pointer() == bv.Pointer()
}

package gen

import "github.com/karstdb/karst/compiler/load"

// Accessor name styles for generated entity code.
const (
	// StyleBean generates Get/Is prefixed getters and Set prefixed
	// setters.
	StyleBean = "bean"
	// StyleFluent generates bare accessor names without prefixes.
	StyleFluent = "fluent"
)

// Config holds the global configuration for one compiler run.
type Config struct {
	// Package is the output package name for generated files.
	Package string

	// Target is the directory generated files are written to.
	Target string

	// Header is an optional comment placed at the top of every
	// generated file, before the generated-code marker.
	Header string

	// StripPrefixes are type-name prefixes removed when deriving a
	// default table name, e.g. AbstractPerson -> person.
	StripPrefixes []string

	// NameStyle selects the accessor naming style for generated
	// entities, StyleBean or StyleFluent.
	NameStyle string

	// Strict treats error diagnostics as fatal: no files are emitted
	// and processing reports a ValidationError.
	Strict bool

	// Workers bounds parallel file emission. Zero means one worker
	// per generated file.
	Workers int

	// BuildFlags are passed through to the model package loader.
	BuildFlags []string
}

// DefaultConfig returns the configuration used when no options are
// given.
func DefaultConfig() *Config {
	return &Config{
		StripPrefixes: []string{"Abstract", "Base"},
		NameStyle:     StyleBean,
	}
}

// normalize fills zero-valued fields with their defaults and rejects
// invalid settings.
func (c *Config) normalize() error {
	if c.StripPrefixes == nil {
		c.StripPrefixes = []string{"Abstract", "Base"}
	}
	switch c.NameStyle {
	case "":
		c.NameStyle = StyleBean
	case StyleBean, StyleFluent:
	default:
		return NewConfigError("NameStyle", c.NameStyle, "unsupported style; use bean or fluent")
	}
	if c.Workers < 0 {
		return NewConfigError("Workers", c.Workers, "cannot be negative")
	}
	return nil
}

// buildContext carries the shared state of one run. Each descriptor
// name is bound at most once per kind; later declarations with the
// same name are dropped, first one wins.
type buildContext struct {
	superclasses map[string]*EntityDescriptor
	embeddables  map[string]*EntityDescriptor
	entities     map[string]*EntityDescriptor

	// declaration order, for deterministic output
	order []*EntityDescriptor
}

func newBuildContext() *buildContext {
	return &buildContext{
		superclasses: make(map[string]*EntityDescriptor),
		embeddables:  make(map[string]*EntityDescriptor),
		entities:     make(map[string]*EntityDescriptor),
	}
}

// put registers a descriptor under its qualified name. It reports
// whether the descriptor was stored; a name collision keeps the first
// registration.
func (bc *buildContext) put(d *EntityDescriptor) bool {
	m := bc.bucket(d.Kind)
	if _, ok := m[d.Qualified]; ok {
		return false
	}
	m[d.Qualified] = d
	bc.order = append(bc.order, d)
	return true
}

func (bc *buildContext) bucket(kind load.Kind) map[string]*EntityDescriptor {
	switch kind {
	case load.KindSuperclass:
		return bc.superclasses
	case load.KindEmbeddable:
		return bc.embeddables
	default:
		return bc.entities
	}
}

// superclass resolves a supertype by qualified name, falling back to
// the simple name for same-package references.
func (bc *buildContext) superclass(name string) (*EntityDescriptor, bool) {
	return bc.lookup(bc.superclasses, name)
}

// embeddable resolves an embeddable by qualified or simple name.
func (bc *buildContext) embeddable(name string) (*EntityDescriptor, bool) {
	return bc.lookup(bc.embeddables, name)
}

// entity resolves an entity by qualified or simple name.
func (bc *buildContext) entity(name string) (*EntityDescriptor, bool) {
	return bc.lookup(bc.entities, name)
}

// lookup resolves a name against one kind bucket. The unqualified
// fallback scans declaration order, so two same-named types in
// different packages resolve the same way on every run.
func (bc *buildContext) lookup(m map[string]*EntityDescriptor, name string) (*EntityDescriptor, bool) {
	if d, ok := m[name]; ok {
		return d, true
	}
	for _, d := range bc.order {
		if m[d.Qualified] != d {
			continue
		}
		if d.Name == name || d.Source == name {
			return d, true
		}
	}
	return nil, false
}

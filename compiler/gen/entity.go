package gen

import (
	"github.com/karstdb/karst"
	"github.com/karstdb/karst/compiler/load"
)

// EntityDescriptor is one resolved model type: its identity, traits,
// and the ordered properties it owns after supertype merging.
type EntityDescriptor struct {
	// Name is the logical entity name used in generated code. It
	// defaults to the declared type name and may be overridden with
	// the name annotation.
	Name string
	// Source is the declared Go type name.
	Source string
	// Qualified is the package-qualified declared name.
	Qualified string
	// Package and PkgPath identify the declaring package.
	Package string
	PkgPath string
	// Table is the mapped table name.
	Table string

	Kind load.Kind

	Interface       bool
	Abstract        bool
	Immutable       bool
	Unimplementable bool
	ReadOnly        bool
	Stateless       bool

	// NameStyle is the accessor style for this entity, StyleBean or
	// StyleFluent.
	NameStyle string

	// Supers are the declared supertype references, in declaration
	// order. Properties are inherited through them transitively.
	Supers []load.TypeRef

	// Properties holds the merged property list: own properties in
	// declaration order first, inherited properties appended after in
	// supertype enumeration order. A local name shadows the inherited
	// one entirely.
	Properties []*PropertyDescriptor

	// Pos is the source position of the declaration.
	Pos string
}

// Property returns the named property, or nil.
func (e *EntityDescriptor) Property(name string) *PropertyDescriptor {
	for _, p := range e.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Keys returns the key properties in declaration order.
func (e *EntityDescriptor) Keys() []*PropertyDescriptor {
	var keys []*PropertyDescriptor
	for _, p := range e.Properties {
		if p.Key {
			keys = append(keys, p)
		}
	}
	return keys
}

// Versions returns the version properties in declaration order.
func (e *EntityDescriptor) Versions() []*PropertyDescriptor {
	var vs []*PropertyDescriptor
	for _, p := range e.Properties {
		if p.Version {
			vs = append(vs, p)
		}
	}
	return vs
}

// Relationships returns the properties declaring a cardinality.
func (e *EntityDescriptor) Relationships() []*PropertyDescriptor {
	var rels []*PropertyDescriptor
	for _, p := range e.Properties {
		if p.Cardinality != karst.None {
			rels = append(rels, p)
		}
	}
	return rels
}

// Persisted returns the non-transient properties.
func (e *EntityDescriptor) Persisted() []*PropertyDescriptor {
	var ps []*PropertyDescriptor
	for _, p := range e.Properties {
		if !p.Transient {
			ps = append(ps, p)
		}
	}
	return ps
}

// ownerInfo derives the extractor view of the entity.
func (e *EntityDescriptor) ownerInfo() ownerInfo {
	return ownerInfo{
		Name:            e.Source,
		Interface:       e.Interface,
		Immutable:       e.Immutable,
		Unimplementable: e.Unimplementable,
	}
}

// buildDescriptor turns one loaded class into a descriptor with its
// own properties resolved. Supertype properties are merged later, once
// every declaration of the batch is known.
func buildDescriptor(cl *load.Class, cfg *Config) (*EntityDescriptor, error) {
	qualified := cl.Qualified()
	if qualified == "" {
		return nil, NewModelError(cl.Name, "", "declaration has no resolvable qualified name", nil)
	}
	e := &EntityDescriptor{
		Name:            cl.Name,
		Source:          cl.Name,
		Qualified:       qualified,
		Package:         cl.Package,
		PkgPath:         cl.PkgPath,
		Kind:            cl.Kind,
		Interface:       cl.Interface,
		Abstract:        cl.Abstract,
		Unimplementable: cl.Generic && !cl.Interface,
		ReadOnly:        cl.Annotations.Has(load.AnnView) || cl.Annotations.Has(load.AnnReadOnly),
		NameStyle:       cfg.NameStyle,
		Supers:          cl.Supers,
		Pos:             cl.Pos,
	}
	if name := cl.Annotations.NonEmpty(load.AnnName); name != "" {
		e.Name = name
	}
	e.Immutable = cl.Annotations.Has(load.AnnImmutable) || e.Unimplementable
	e.Stateless = cl.Annotations.Has(load.AnnStateless) || e.Immutable
	if e.ReadOnly {
		e.Stateless = true
	}
	if style := cl.Annotations.NonEmpty(load.AnnNameStyle); style != "" {
		switch style {
		case StyleBean, StyleFluent:
			e.NameStyle = style
		default:
			return nil, NewModelError(cl.Name, "", "unsupported name_style "+style, nil)
		}
	}
	e.Table = cl.Annotations.NonEmpty(load.AnnTable)
	if e.Table == "" {
		e.Table = tableName(e.Name, cfg.StripPrefixes)
	}

	owner := e.ownerInfo()
	seen := make(map[string]bool)
	for _, m := range cl.Members {
		p, ok := extractProperty(m, owner)
		if !ok {
			continue
		}
		// duplicate member names keep the first declaration
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		e.Properties = append(e.Properties, p)
	}
	return e, nil
}

// mergeSupertypes folds the transitive supertype chain into the
// entity: own properties keep their declaration order, inherited
// properties are appended after them in supertype enumeration order,
// and a locally declared name shadows the inherited one entirely.
// Inherited descriptors are copied, never shared.
func (e *EntityDescriptor) mergeSupertypes(bc *buildContext) {
	seen := make(map[string]bool, len(e.Properties))
	for _, p := range e.Properties {
		seen[p.Name] = true
	}
	visited := map[string]bool{e.Qualified: true}

	var walk func(refs []load.TypeRef)
	walk = func(refs []load.TypeRef) {
		for _, ref := range refs {
			super, ok := bc.superclass(refName(ref))
			if !ok {
				super, ok = bc.embeddable(refName(ref))
			}
			if !ok {
				// embedded types without a marker contribute nothing
				continue
			}
			if visited[super.Qualified] {
				continue
			}
			visited[super.Qualified] = true
			walk(super.Supers)
			for _, p := range super.Properties {
				if seen[p.Name] {
					continue
				}
				seen[p.Name] = true
				cp := *p
				e.Properties = append(e.Properties, &cp)
			}
		}
	}
	walk(e.Supers)
}

func refName(ref load.TypeRef) string {
	if ref.Name != "" {
		return ref.Name
	}
	return ref.Simple
}

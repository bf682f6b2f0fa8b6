// Package karst provides the runtime support types consumed by code
// generated with the karst compiler: property state tracking, entity
// metadata descriptors and the model registry.
package karst

// PropertyState describes the load/modification state of a single
// tracked property on a generated entity implementation.
type PropertyState int

const (
	// Fetch indicates the property has not been loaded yet and must be
	// fetched on first access (lazy properties start in this state).
	Fetch PropertyState = iota
	// Loaded indicates the property holds a value read from storage.
	Loaded
	// Modified indicates the property was changed since it was loaded.
	Modified
)

// String returns the state name.
func (s PropertyState) String() string {
	switch s {
	case Loaded:
		return "Loaded"
	case Modified:
		return "Modified"
	default:
		return "Fetch"
	}
}

// TypeDescriptor is the generated, singleton metadata record for one
// mapped type. Generated packages declare one descriptor per entity,
// superclass and immutable type.
type TypeDescriptor struct {
	// Name is the entity name (simple, possibly overridden in the model).
	Name string
	// Qualified is the globally unique qualified name of the declaration.
	Qualified string
	// Table is the storage (table or view) name.
	Table string
	// Kind is one of "entity", "superclass" or "embeddable".
	Kind string

	ReadOnly  bool
	Stateless bool
	Immutable bool

	// Attributes holds one descriptor per non-transient property,
	// in declaration/merge order.
	Attributes []*AttributeDescriptor
}

// Attribute returns the attribute descriptor with the given property
// name, or nil if the type has no such attribute.
func (t *TypeDescriptor) Attribute(name string) *AttributeDescriptor {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// KeyAttributes returns the attributes forming the type identity.
func (t *TypeDescriptor) KeyAttributes() []*AttributeDescriptor {
	keys := make([]*AttributeDescriptor, 0, 1)
	for _, a := range t.Attributes {
		if a.Key {
			keys = append(keys, a)
		}
	}
	return keys
}

// VersionAttribute returns the optimistic-lock version attribute,
// or nil if the type declares none.
func (t *TypeDescriptor) VersionAttribute() *AttributeDescriptor {
	for _, a := range t.Attributes {
		if a.Version {
			return a
		}
	}
	return nil
}

// AttributeDescriptor is the generated metadata record for one mapped
// property of a type.
type AttributeDescriptor struct {
	// Name is the property name, unique within the owning type.
	Name string
	// Column is the storage name. Defaults to Name when the model
	// declares no override.
	Column string
	// Getter and Setter are the accessor method names on the generated
	// entity implementation. Empty for immutable/stateless types.
	Getter string
	Setter string

	Key       bool
	Generated bool
	Version   bool
	Nullable  bool
	ReadOnly  bool
	Lazy      bool

	// Cardinality is the relationship shape, or None for plain columns.
	Cardinality Cardinality
	// Target resolves the metadata descriptor of the related type for
	// relationship attributes. It is a supplier rather than a direct
	// reference so that mutually related descriptors can be declared in
	// any order. Nil for non-relationship attributes and for
	// relationships whose target type is not part of the model.
	Target func() *TypeDescriptor
	// State returns the address of the property's state field on a
	// generated entity instance. Nil for immutable and stateless types.
	State func(entity any) *PropertyState
}

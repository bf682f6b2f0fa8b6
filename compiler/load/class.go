// Package load reads annotated model declarations from compiled user
// packages and presents them as uniform declaration records. It is the
// only place in the compiler that touches go/ast and go/types; the gen
// package consumes the records produced here and nothing else.
package load

import "fmt"

// Kind tags a class-like declaration with its mapping role.
type Kind int

const (
	// KindEntity marks a directly persisted type with identity.
	KindEntity Kind = iota
	// KindSuperclass marks an abstract type contributing inherited
	// properties but not itself persisted.
	KindSuperclass
	// KindEmbeddable marks a value type inlined into an owning entity.
	KindEmbeddable
)

// String returns the kind name as used in directives and metadata.
func (k Kind) String() string {
	switch k {
	case KindSuperclass:
		return "superclass"
	case KindEmbeddable:
		return "embeddable"
	}
	return "entity"
}

// Class is one annotated class-like declaration (struct or interface)
// loaded from a user package. It is a plain value record: the compiler
// core never touches the underlying go/types objects.
type Class struct {
	// Name is the simple declared name.
	Name string
	// Package is the package name, PkgPath the import path.
	Package string
	PkgPath string
	// Pos is the file:line position, used only for error reporting.
	Pos string

	Kind      Kind
	Interface bool
	// Abstract reports an interface declaration or an explicit abstract
	// marker; abstract entities produce metadata but no storage rows of
	// their own.
	Abstract bool
	// Generic reports a parameterized declaration. The emitter cannot
	// instantiate an implementation for it, so the builder treats it as
	// immutable (unimplementable).
	Generic bool

	// Annotations holds the merged class-level annotations from both
	// dialects, in source order.
	Annotations Annotations
	// Members holds the declared members in declaration order: struct
	// fields, or getter-style methods for interface declarations.
	Members []Member
	// Supers holds the embedded struct types (the supertype chain) and
	// embedded interfaces, in declaration order.
	Supers []TypeRef
}

// Qualified returns the globally unique name of the declaration, or an
// empty string when the declaration has no resolvable identity.
func (c *Class) Qualified() string {
	if c.Name == "" || c.PkgPath == "" {
		return ""
	}
	return fmt.Sprintf("%s.%s", c.PkgPath, c.Name)
}

// Member is one declared member of a class: a struct field, or a
// no-argument single-result method on an interface declaration.
type Member struct {
	Name string
	// Method reports a getter-style method member; false for fields.
	Method bool
	// Exported mirrors Go visibility; unexported members are private.
	Exported bool
	// Static is part of the adapter contract but is always false for Go
	// declarations, which have no static members.
	Static bool
	// Type is the member's resolved type: the field type, or the single
	// result type for methods. Void methods yield an unresolved ref.
	Type TypeRef
	// Annotations holds the merged member annotations from both
	// dialects: struct tags for fields, doc directives for methods.
	Annotations Annotations
	// Pos is the file:line position, used only for error reporting.
	Pos string
}

// Shape classifies a resolved type into the closed set of container
// families the compiler recognizes. Shapes are derived structurally
// from go/types, never from type names.
type Shape int

const (
	// ShapeScalar is any non-container type.
	ShapeScalar Shape = iota
	// ShapeList is a slice or array.
	ShapeList
	// ShapeSet is a map with an empty-struct element (map[T]struct{}).
	ShapeSet
	// ShapeMap is any other map. Map-shaped members are detected
	// distinctly and are never relationship collections.
	ShapeMap
)

// TypeRef is an owned, derived description of a resolved type.
type TypeRef struct {
	// Name is the qualified type name: "path/to/pkg.Name" for named
	// types, the builtin name otherwise. Empty when unresolved.
	Name string
	// Simple is the bare type name without package qualification.
	Simple string
	// PkgPath is the defining package import path; empty for builtins.
	PkgPath string

	Shape Shape
	// Elem is the element type for list/set shapes and the value type
	// for map shapes; nil for scalars.
	Elem *TypeRef

	// Pointer reports that the declared type was a pointer; the ref
	// itself describes the pointed-to type.
	Pointer bool
	// Bool reports a boolean-typed member (drives Is-prefix getters).
	Bool bool
	// Unresolved is the explicit sentinel for broken references: the
	// declaration mentions a type the type-checker could not resolve.
	Unresolved bool
}

// Collection reports whether the type is a relationship-capable
// container (list or set). Map shapes are intentionally excluded.
func (t TypeRef) Collection() bool {
	return t.Shape == ShapeList || t.Shape == ShapeSet
}

// ElemName returns the qualified name of the container element, or an
// empty string for scalars.
func (t TypeRef) ElemName() string {
	if t.Elem == nil {
		return ""
	}
	return t.Elem.Name
}

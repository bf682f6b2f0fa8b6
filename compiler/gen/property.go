package gen

import (
	"strings"
	"unicode"

	"github.com/karstdb/karst"
	"github.com/karstdb/karst/compiler/load"
)

// PropertyDescriptor is one persistable property of an entity. It is a
// plain value record: merging an inherited property into a subtype
// copies the descriptor, so supertype state is never shared.
type PropertyDescriptor struct {
	// Name is the logical property name, e.g. emailAddress.
	Name string
	// Column is the mapped column name. Defaults to Name.
	Column string
	// Member is the declared Go member the property came from.
	Member string
	// Method reports whether the member is an accessor method.
	Method bool

	// Type describes the declared Go type of the property.
	Type load.TypeRef

	Key       bool
	Generated bool
	Version   bool
	Nullable  bool
	Lazy      bool
	ReadOnly  bool
	Transient bool

	// Cardinality is the declared relationship cardinality, or
	// karst.None for plain value properties.
	Cardinality karst.Cardinality

	// Pos is the source position of the declaring member.
	Pos string

	// cardinalityConflict is set when more than one cardinality
	// annotation was declared. The priority-order winner is kept in
	// Cardinality and the validator reports the conflict.
	cardinalityConflict bool
}

// Collection reports whether the property has a list or set shape.
func (p *PropertyDescriptor) Collection() bool {
	return p.Type.Collection()
}

// MapShaped reports whether the property is map shaped. Map shaped
// properties are value containers, never relationships.
func (p *PropertyDescriptor) MapShaped() bool {
	return p.Type.Shape == load.ShapeMap
}

// TargetName returns the type name a relationship property points at:
// the element type for collections, the declared type otherwise.
func (p *PropertyDescriptor) TargetName() string {
	if p.Collection() {
		return p.Type.ElemName()
	}
	return p.Type.Simple
}

// CardinalityConflict reports whether conflicting cardinality
// annotations were declared on the member.
func (p *PropertyDescriptor) CardinalityConflict() bool {
	return p.cardinalityConflict
}

// ownerInfo carries the owning declaration traits the extractor needs
// for member eligibility.
type ownerInfo struct {
	Name            string
	Interface       bool
	Immutable       bool
	Unimplementable bool
}

// cardinality annotations in priority order: when a member declares
// more than one, the first present wins and the conflict is flagged.
var cardinalityAnnotations = []struct {
	ann  string
	card karst.Cardinality
}{
	{load.AnnOneToOne, karst.OneToOne},
	{load.AnnOneToMany, karst.OneToMany},
	{load.AnnManyToOne, karst.ManyToOne},
	{load.AnnManyToMany, karst.ManyToMany},
}

// extractProperty derives a property descriptor from one declared
// member. It reports false when the member is not persistable.
func extractProperty(m load.Member, owner ownerInfo) (*PropertyDescriptor, bool) {
	if !eligible(m, owner) {
		return nil, false
	}
	name := propertyName(m.Name, m.Method)
	p := &PropertyDescriptor{
		Name:      name,
		Column:    name,
		Member:    m.Name,
		Method:    m.Method,
		Type:      m.Type,
		Key:       m.Annotations.Has(load.AnnKey),
		Generated: m.Annotations.Has(load.AnnGenerated),
		Version:   m.Annotations.Has(load.AnnVersion),
		Nullable:  m.Annotations.Has(load.AnnNullable),
		Lazy:      m.Annotations.Has(load.AnnLazy),
		ReadOnly:  m.Annotations.Has(load.AnnReadOnly),
		Transient: m.Annotations.Has(load.AnnTransient),
		Pos:       m.Pos,
	}
	if col := m.Annotations.NonEmpty(load.AnnColumn); col != "" {
		p.Column = col
	}
	declared := 0
	for _, ca := range cardinalityAnnotations {
		if !m.Annotations.Has(ca.ann) {
			continue
		}
		declared++
		if p.Cardinality == karst.None {
			p.Cardinality = ca.card
		}
	}
	p.cardinalityConflict = declared > 1
	return p, true
}

// eligible applies the member eligibility rules. Ineligible members
// are silently skipped; they are part of the Go type, not the model.
func eligible(m load.Member, owner ownerInfo) bool {
	switch {
	case !m.Exported:
		return false
	case m.Static:
		return false
	case m.Annotations.Has(load.AnnSkip):
		return false
	case m.Type.Unresolved:
		// non-getter-shaped methods and unresolvable types
		return false
	case m.Method && !getterNamed(m.Name):
		return false
	case (owner.Unimplementable || owner.Immutable) && componentAccessor(m.Name):
		return false
	case owner.Immutable && m.Type.Simple == owner.Name:
		// self-returning builder style methods on immutable types
		return false
	case m.Annotations.Has(load.AnnTransient) && !owner.Interface:
		return false
	}
	return true
}

// getterNamed reports whether a method name follows the accessor
// pattern the compiler maps to a property: a Get or Is prefix followed
// by an upper-case property name.
func getterNamed(name string) bool {
	for _, p := range getterPrefixes {
		if rest, ok := strings.CutPrefix(name, p); ok && rest != "" && unicode.IsUpper(rune(rest[0])) {
			return true
		}
	}
	return false
}

// componentAccessor reports whether the name follows the positional
// ComponentN accessor pattern.
func componentAccessor(name string) bool {
	rest, ok := strings.CutPrefix(name, "Component")
	if !ok || rest == "" {
		return false
	}
	for _, r := range rest {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

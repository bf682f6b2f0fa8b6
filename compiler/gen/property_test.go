package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karstdb/karst"
	"github.com/karstdb/karst/compiler/load"
)

func field(name string, tag string) load.Member {
	return load.Member{
		Name:        name,
		Exported:    true,
		Type:        load.TypeRef{Name: "string", Simple: "string"},
		Annotations: load.ParseMemberTag(tag),
	}
}

func method(name string, anns load.Annotations) load.Member {
	return load.Member{
		Name:        name,
		Method:      true,
		Exported:    true,
		Type:        load.TypeRef{Name: "string", Simple: "string"},
		Annotations: anns,
	}
}

func TestExtractProperty(t *testing.T) {
	owner := ownerInfo{Name: "Person"}

	t.Run("field defaults", func(t *testing.T) {
		p, ok := extractProperty(field("EmailAddress", ""), owner)
		require.True(t, ok)

		assert.Equal(t, "emailAddress", p.Name)
		assert.Equal(t, "emailAddress", p.Column, "column defaults to the property name")
		assert.Equal(t, "EmailAddress", p.Member)
		assert.False(t, p.Method)
		assert.Equal(t, karst.None, p.Cardinality)
	})

	t.Run("getter prefix is stripped", func(t *testing.T) {
		p, ok := extractProperty(method("GetEmailAddress", nil), owner)
		require.True(t, ok)
		assert.Equal(t, "emailAddress", p.Name)
	})

	t.Run("annotation flags", func(t *testing.T) {
		p, ok := extractProperty(field("ID", `karst:"key,generated,column=person_id,nullable,lazy,readonly"`), owner)
		require.True(t, ok)

		assert.True(t, p.Key)
		assert.True(t, p.Generated)
		assert.True(t, p.Nullable)
		assert.True(t, p.Lazy)
		assert.True(t, p.ReadOnly)
		assert.Equal(t, "person_id", p.Column)
	})

	t.Run("cardinality priority and conflict flag", func(t *testing.T) {
		p, ok := extractProperty(field("Owner", `karst:"many_to_one" persist:"one_to_one"`), owner)
		require.True(t, ok)

		assert.Equal(t, karst.OneToOne, p.Cardinality, "priority order wins, not declaration order")
		assert.True(t, p.CardinalityConflict())

		single, ok := extractProperty(field("Home", `karst:"one_to_one"`), owner)
		require.True(t, ok)
		assert.False(t, single.CardinalityConflict())
	})
}

func TestMemberEligibility(t *testing.T) {
	owner := ownerInfo{Name: "Person"}

	t.Run("unexported members are skipped", func(t *testing.T) {
		m := field("secret", "")
		m.Exported = false
		_, ok := extractProperty(m, owner)
		assert.False(t, ok)
	})

	t.Run("skip marker", func(t *testing.T) {
		_, ok := extractProperty(field("Cache", `karst:"-"`), owner)
		assert.False(t, ok)
	})

	t.Run("unresolved types are skipped", func(t *testing.T) {
		m := field("Broken", "")
		m.Type = load.TypeRef{Unresolved: true}
		_, ok := extractProperty(m, owner)
		assert.False(t, ok)
	})

	t.Run("transient fields are dropped on structs", func(t *testing.T) {
		_, ok := extractProperty(field("Tmp", `karst:"transient"`), owner)
		assert.False(t, ok)
	})

	t.Run("transient members survive on interfaces", func(t *testing.T) {
		iface := ownerInfo{Name: "Account", Interface: true}
		anns := load.Annotations{{Dialect: load.DialectNative, Name: load.AnnTransient}}
		p, ok := extractProperty(method("GetToken", anns), iface)
		require.True(t, ok)
		assert.True(t, p.Transient)
	})

	t.Run("self returning members are skipped on immutable owners", func(t *testing.T) {
		immutable := ownerInfo{Name: "Money", Immutable: true}
		m := method("GetSelf", nil)
		m.Type = load.TypeRef{Name: "pkg.Money", Simple: "Money", PkgPath: "pkg"}
		_, ok := extractProperty(m, immutable)
		assert.False(t, ok)

		// the same shape is a plain property on mutable owners
		_, ok = extractProperty(m, ownerInfo{Name: "Money"})
		assert.True(t, ok)
	})

	t.Run("non accessor methods are skipped", func(t *testing.T) {
		_, ok := extractProperty(method("Close", nil), owner)
		assert.False(t, ok)

		_, ok = extractProperty(method("Getty", nil), owner)
		assert.False(t, ok, "prefix must be followed by an upper case name")
	})

	t.Run("positional accessors are skipped on unimplementable owners", func(t *testing.T) {
		unimpl := ownerInfo{Name: "Pair", Unimplementable: true}
		_, ok := extractProperty(field("Component1", ""), unimpl)
		assert.False(t, ok)

		_, ok = extractProperty(field("ComponentX", ""), unimpl)
		assert.True(t, ok, "non numeric suffix is a regular member")

		_, ok = extractProperty(field("Component1", ""), owner)
		assert.True(t, ok, "pattern only applies to unimplementable owners")
	})
}

func TestPropertyShapes(t *testing.T) {
	strRef := load.TypeRef{Name: "string", Simple: "string"}

	t.Run("list", func(t *testing.T) {
		m := field("Tags", "")
		m.Type = load.TypeRef{Name: "[]string", Simple: "[]string", Shape: load.ShapeList, Elem: &strRef}
		p, ok := extractProperty(m, ownerInfo{Name: "Person"})
		require.True(t, ok)
		assert.True(t, p.Collection())
		assert.False(t, p.MapShaped())
	})

	t.Run("map is never a collection", func(t *testing.T) {
		m := field("Attrs", "")
		m.Type = load.TypeRef{Name: "map[string]string", Simple: "map[string]string", Shape: load.ShapeMap, Elem: &strRef}
		p, ok := extractProperty(m, ownerInfo{Name: "Person"})
		require.True(t, ok)
		assert.False(t, p.Collection())
		assert.True(t, p.MapShaped())
	})

	t.Run("target name", func(t *testing.T) {
		addr := load.TypeRef{Name: "pkg.Address", Simple: "Address", PkgPath: "pkg"}
		scalar := field("Address", "")
		scalar.Type = addr
		p, _ := extractProperty(scalar, ownerInfo{Name: "Person"})
		assert.Equal(t, "Address", p.TargetName())

		coll := field("Addresses", "")
		coll.Type = load.TypeRef{Name: "[]pkg.Address", Simple: "[]pkg.Address", Shape: load.ShapeList, Elem: &addr}
		p, _ = extractProperty(coll, ownerInfo{Name: "Person"})
		assert.Equal(t, "pkg.Address", p.TargetName())
	})
}

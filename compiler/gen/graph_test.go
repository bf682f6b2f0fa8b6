package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karstdb/karst"
	"github.com/karstdb/karst/compiler/load"
)

// buildGraph runs the descriptor and assembly phases over hand-built
// classes, without touching the loader.
func buildGraph(t *testing.T, classes ...*load.Class) (*Graph, []Diagnostic) {
	t.Helper()
	p, err := NewProcessor(MustNewConfig(), nil)
	require.NoError(t, err)
	return p.Process(classes)
}

func entityRef(name string) load.TypeRef {
	return load.TypeRef{
		Name:    "example.com/model." + name,
		Simple:  name,
		PkgPath: "example.com/model",
		Pointer: true,
	}
}

func TestAssembleGraph(t *testing.T) {
	t.Run("resolved relationship yields an edge", func(t *testing.T) {
		address := testClass("Address", load.KindEntity, "//karst:entity")
		address.Members = []load.Member{field("ID", `karst:"key,generated"`)}

		person := testClass("Person", load.KindEntity, "//karst:entity")
		m := field("Address", `karst:"one_to_one"`)
		m.Type = entityRef("Address")
		person.Members = []load.Member{field("ID", `karst:"key,generated"`), m}

		g, diags := buildGraph(t, address, person)
		assert.False(t, HasErrors(diags))

		require.Len(t, g.Edges, 1)
		edge := g.Edges[0]
		assert.Equal(t, "Person", edge.Source.Name)
		assert.Equal(t, "Address", edge.Target.Name)
		assert.Equal(t, "address", edge.Property.Name)
		assert.Equal(t, karst.OneToOne, edge.Cardinality())

		got, ok := g.Edge(g.Entity("Person"), "address")
		require.True(t, ok)
		assert.Equal(t, edge, got)
	})

	t.Run("collection relationships resolve through the element type", func(t *testing.T) {
		phone := testClass("Phone", load.KindEntity, "//karst:entity")
		phone.Members = []load.Member{field("ID", `karst:"key,generated"`)}

		person := testClass("Person", load.KindEntity, "//karst:entity")
		elem := entityRef("Phone")
		phones := field("Phones", `karst:"one_to_many"`)
		phones.Type = load.TypeRef{
			Name:  "[]*example.com/model.Phone",
			Shape: load.ShapeList,
			Elem:  &elem,
		}
		person.Members = []load.Member{field("ID", `karst:"key,generated"`), phones}

		g, diags := buildGraph(t, phone, person)
		assert.False(t, HasErrors(diags))
		require.Len(t, g.Edges, 1)
		assert.Equal(t, "Phone", g.Edges[0].Target.Name)
	})

	t.Run("unmapped target yields no edge and no error", func(t *testing.T) {
		person := testClass("Person", load.KindEntity, "//karst:entity")
		m := field("Address", `karst:"one_to_one"`)
		m.Type = load.TypeRef{
			Name:    "external.com/geo.Address",
			Simple:  "Address",
			PkgPath: "external.com/geo",
			Pointer: true,
		}
		person.Members = []load.Member{field("ID", `karst:"key,generated"`), m}

		g, diags := buildGraph(t, person)
		assert.Empty(t, g.Edges)
		// the property survives in the flat list for metadata purposes
		require.NotNil(t, g.Entity("Person").Property("address"))
		assert.False(t, HasErrors(diags), "external targets are legal")
		assert.Contains(t, diagnosticMessages(diags, SeverityWarning),
			`relationship target "Address" is not mapped in this model; no edge derived`)
	})

	t.Run("relationships typed at a superclass resolve", func(t *testing.T) {
		audit := testClass("Auditable", load.KindSuperclass, "//karst:superclass")
		audit.Members = []load.Member{field("Created", "")}

		person := testClass("Person", load.KindEntity, "//karst:entity")
		m := field("Audit", `karst:"one_to_one"`)
		m.Type = entityRef("Auditable")
		person.Members = []load.Member{field("ID", `karst:"key,generated"`), m}

		g, diags := buildGraph(t, audit, person)
		assert.False(t, HasErrors(diags))
		assert.Empty(t, diagnosticMessages(diags, SeverityWarning))

		require.Len(t, g.Edges, 1)
		assert.Equal(t, "Auditable", g.Edges[0].Target.Name)
		assert.Equal(t, load.KindSuperclass, g.Edges[0].Target.Kind)
	})

	t.Run("declaration order is preserved", func(t *testing.T) {
		a := testClass("Alpha", load.KindEntity, "//karst:entity")
		a.Members = []load.Member{field("ID", `karst:"key"`)}
		b := testClass("Beta", load.KindEntity, "//karst:entity")
		b.Members = []load.Member{field("ID", `karst:"key"`)}
		s := testClass("Base", load.KindSuperclass, "//karst:superclass")

		g, _ := buildGraph(t, a, s, b)
		require.Len(t, g.Entities, 2)
		assert.Equal(t, "Alpha", g.Entities[0].Name)
		assert.Equal(t, "Beta", g.Entities[1].Name)
		require.Len(t, g.Superclasses, 1)
		assert.Equal(t, "Base", g.Superclasses[0].Name)
	})
}

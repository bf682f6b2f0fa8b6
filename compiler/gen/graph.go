package gen

import (
	"github.com/karstdb/karst"
)

// RelationshipEdge is one resolved relationship between two entities
// of the graph.
type RelationshipEdge struct {
	// Source is the entity declaring the relationship property.
	Source *EntityDescriptor
	// Target is the entity the property points at.
	Target *EntityDescriptor
	// Property is the declaring property.
	Property *PropertyDescriptor
}

// Cardinality returns the declared cardinality of the edge.
func (e RelationshipEdge) Cardinality() karst.Cardinality {
	return e.Property.Cardinality
}

// Graph is the assembled entity graph: every descriptor of the batch
// plus the relationship edges resolved between entities. The graph is
// immutable after assembly.
type Graph struct {
	// Entities holds the entity descriptors in declaration order.
	Entities []*EntityDescriptor
	// Superclasses and Embeddables hold the non-entity descriptors
	// in declaration order. They contribute inherited properties and
	// metadata but no generated entity implementation.
	Superclasses []*EntityDescriptor
	Embeddables  []*EntityDescriptor

	// Edges holds the resolved relationship edges in declaration
	// order of their source entity.
	Edges []RelationshipEdge

	byName map[string]*EntityDescriptor
}

// Entity returns the entity descriptor with the given logical or
// source name, or nil.
func (g *Graph) Entity(name string) *EntityDescriptor {
	if d, ok := g.byName[name]; ok {
		return d
	}
	for _, d := range g.Entities {
		if d.Source == name || d.Qualified == name {
			return d
		}
	}
	return nil
}

// EdgesFrom returns the edges declared by the given entity.
func (g *Graph) EdgesFrom(e *EntityDescriptor) []RelationshipEdge {
	var edges []RelationshipEdge
	for _, edge := range g.Edges {
		if edge.Source == e {
			edges = append(edges, edge)
		}
	}
	return edges
}

// Edge returns the edge declared by the given entity property, or a
// zero edge and false when the property did not resolve to one.
func (g *Graph) Edge(e *EntityDescriptor, property string) (RelationshipEdge, bool) {
	for _, edge := range g.Edges {
		if edge.Source == e && edge.Property.Name == property {
			return edge, true
		}
	}
	return RelationshipEdge{}, false
}

// assembleGraph resolves relationship targets across the batch. A
// relationship property whose target name matches no known entity or
// superclass yields no edge; the property stays in the entity's flat
// property list and the validator decides whether that is a finding.
func assembleGraph(bc *buildContext) *Graph {
	g := &Graph{byName: make(map[string]*EntityDescriptor)}
	for _, d := range bc.order {
		switch {
		case bc.superclasses[d.Qualified] == d:
			g.Superclasses = append(g.Superclasses, d)
		case bc.embeddables[d.Qualified] == d:
			g.Embeddables = append(g.Embeddables, d)
		default:
			g.Entities = append(g.Entities, d)
			g.byName[d.Name] = d
		}
	}
	for _, src := range g.Entities {
		for _, p := range src.Relationships() {
			if p.MapShaped() {
				continue
			}
			// entities first, then superclass descriptors
			target, ok := bc.entity(p.TargetName())
			if !ok {
				target, ok = bc.superclass(p.TargetName())
			}
			if !ok {
				// unknown targets stay in the flat property list
				continue
			}
			g.Edges = append(g.Edges, RelationshipEdge{
				Source:   src,
				Target:   target,
				Property: p,
			})
		}
	}
	return g
}

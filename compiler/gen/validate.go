package gen

import (
	"strings"
)

// reservedTableNames are SQL keywords a table name may collide with.
// Colliding names are legal but need quoting in every dialect, so the
// validator flags them.
var reservedTableNames = map[string]bool{
	"all": true, "alter": true, "and": true, "any": true, "as": true,
	"asc": true, "between": true, "by": true, "case": true, "check": true,
	"column": true, "create": true, "cross": true, "current": true,
	"default": true, "delete": true, "desc": true, "distinct": true,
	"drop": true, "else": true, "exists": true, "from": true, "group": true,
	"having": true, "in": true, "index": true, "inner": true, "insert": true,
	"into": true, "is": true, "join": true, "key": true, "left": true,
	"like": true, "limit": true, "not": true, "null": true, "on": true,
	"or": true, "order": true, "outer": true, "primary": true, "right": true,
	"select": true, "set": true, "table": true, "then": true, "to": true,
	"union": true, "unique": true, "update": true, "user": true,
	"values": true, "when": true, "where": true,
}

// Validate checks the assembled graph and reports findings as
// diagnostics. Validation never mutates the graph and never stops at
// the first finding.
func Validate(g *Graph) []Diagnostic {
	var ds []Diagnostic
	for _, e := range g.Entities {
		ds = validateEntity(g, e, ds)
	}
	return ds
}

func validateEntity(g *Graph, e *EntityDescriptor, ds []Diagnostic) []Diagnostic {
	persisted := e.Persisted()
	if len(persisted) == 0 {
		ds = warnf(ds, e.Name, "", e.Pos, "entity has no persistable properties")
	}
	if keys := e.Keys(); len(keys) == 0 {
		if !e.ReadOnly {
			ds = errorf(ds, e.Name, "", e.Pos, "entity declares no key property")
		}
	} else if len(persisted) == 1 && keys[0].Generated {
		ds = warnf(ds, e.Name, keys[0].Name, keys[0].Pos,
			"entity consists of a single generated key and nothing else")
	}
	if vs := e.Versions(); len(vs) > 1 {
		names := make([]string, len(vs))
		for i, v := range vs {
			names[i] = v.Name
		}
		ds = errorf(ds, e.Name, "", e.Pos,
			"entity %s declares multiple version properties: %s",
			e.Name, strings.Join(names, ", "))
	}
	if reservedTableNames[strings.ToLower(e.Table)] {
		ds = warnf(ds, e.Name, "", e.Pos,
			"table name %q is a reserved word and will need quoting", e.Table)
	}
	for _, p := range e.Relationships() {
		ds = validateRelationship(g, e, p, ds)
	}
	return ds
}

func validateRelationship(g *Graph, e *EntityDescriptor, p *PropertyDescriptor, ds []Diagnostic) []Diagnostic {
	if p.CardinalityConflict() {
		ds = relationshipErrorf(ds, e.Name, p.Name, p.Pos,
			"property declares conflicting cardinalities; kept %s", p.Cardinality)
	}
	if p.MapShaped() {
		ds = relationshipErrorf(ds, e.Name, p.Name, p.Pos,
			"map shaped property cannot declare a relationship")
		return ds
	}
	if p.Cardinality.Many() && !p.Collection() {
		ds = relationshipErrorf(ds, e.Name, p.Name, p.Pos,
			"%s relationship requires a collection shaped property", p.Cardinality)
	}
	if !p.Cardinality.Many() && p.Collection() {
		ds = relationshipErrorf(ds, e.Name, p.Name, p.Pos,
			"%s relationship cannot use a collection shaped property", p.Cardinality)
	}
	// unmapped targets are legal: the type may live outside the model
	if _, ok := g.Edge(e, p.Name); !ok {
		ds = warnf(ds, e.Name, p.Name, p.Pos,
			"relationship target %q is not mapped in this model; no edge derived", p.TargetName())
	}
	return ds
}

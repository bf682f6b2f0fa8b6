package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/karstdb/karst"
	"github.com/karstdb/karst/compiler/load"
)

// entityFile generates the implementation struct for one entity: value
// fields, state tracking fields, accessors, identity methods, and
// collection helpers.
func (em *Emitter) entityFile(e *EntityDescriptor) *jen.File {
	f := em.newFile()
	typeName := entityTypeName(e)

	f.Commentf("%s is the generated implementation of the %s model type.", typeName, e.Name)
	f.Type().Id(typeName).StructFunc(func(g *jen.Group) {
		for _, p := range e.Properties {
			g.Id(p.Name).Add(em.goType(e, p))
			if em.tracked(e, p) {
				g.Id(stateField(p)).Qual(karstPkg, "PropertyState")
			}
		}
	})

	for _, p := range e.Properties {
		em.getter(f, e, p)
		em.setter(f, e, p)
	}
	em.equalMethod(f, e)
	em.hashMethod(f, e)
	for _, edge := range em.graph.EdgesFrom(e) {
		if edge.Cardinality().Many() && edge.Property.Type.Shape == load.ShapeList {
			em.collectionHelpers(f, e, edge)
		}
	}
	return f
}

// tracked reports whether the property carries a state field on the
// generated struct.
func (em *Emitter) tracked(e *EntityDescriptor, p *PropertyDescriptor) bool {
	return !e.Stateless && !p.Transient
}

func stateField(p *PropertyDescriptor) string {
	return p.Name + "State"
}

// getterName derives the accessor name for the configured style.
func getterName(e *EntityDescriptor, p *PropertyDescriptor) string {
	if e.NameStyle == StyleFluent {
		return upperFirst(p.Name)
	}
	if p.Type.Bool {
		return "Is" + upperFirst(p.Name)
	}
	return "Get" + upperFirst(p.Name)
}

func setterName(p *PropertyDescriptor) string {
	return "Set" + upperFirst(p.Name)
}

func (em *Emitter) getter(f *jen.File, e *EntityDescriptor, p *PropertyDescriptor) {
	recv := receiver(entityTypeName(e))
	f.Commentf("%s returns the %s property.", getterName(e, p), p.Name)
	f.Func().Params(jen.Id(recv).Op("*").Id(entityTypeName(e))).
		Id(getterName(e, p)).Params().Add(em.goType(e, p)).
		Block(jen.Return(jen.Id(recv).Dot(p.Name)))
}

// setter emits the mutator unless the entity or the property forbids
// writes. Setters on tracked properties mark the state Modified.
func (em *Emitter) setter(f *jen.File, e *EntityDescriptor, p *PropertyDescriptor) {
	if e.Immutable || e.ReadOnly || p.ReadOnly {
		return
	}
	recv := receiver(entityTypeName(e))
	f.Commentf("%s sets the %s property.", setterName(p), p.Name)
	f.Func().Params(jen.Id(recv).Op("*").Id(entityTypeName(e))).
		Id(setterName(p)).Params(jen.Id("v").Add(em.goType(e, p))).
		BlockFunc(func(g *jen.Group) {
			g.Id(recv).Dot(p.Name).Op("=").Id("v")
			if em.tracked(e, p) {
				g.Id(recv).Dot(stateField(p)).Op("=").Qual(karstPkg, karst.Modified.String())
			}
		})
}

// identityProperties are the properties Equal and Hash are computed
// over: the keys, or every persisted non-relationship property when
// the entity declares no key.
func (em *Emitter) identityProperties(e *EntityDescriptor) []*PropertyDescriptor {
	if keys := e.Keys(); len(keys) > 0 {
		return keys
	}
	var ps []*PropertyDescriptor
	for _, p := range e.Persisted() {
		if p.Cardinality == karst.None {
			ps = append(ps, p)
		}
	}
	return ps
}

func (em *Emitter) equalMethod(f *jen.File, e *EntityDescriptor) {
	recv := receiver(entityTypeName(e))
	ps := em.identityProperties(e)
	f.Commentf("Equal reports whether both entities have the same identity.")
	f.Func().Params(jen.Id(recv).Op("*").Id(entityTypeName(e))).
		Id("Equal").Params(jen.Id("other").Op("*").Id(entityTypeName(e))).Bool().
		BlockFunc(func(g *jen.Group) {
			g.If(jen.Id("other").Op("==").Nil()).Block(jen.Return(jen.False()))
			for _, p := range ps {
				_, isEdge := em.graph.Edge(e, p.Name)
				if comparableType(p.Type) && !isEdge {
					g.If(jen.Id(recv).Dot(p.Name).Op("!=").Id("other").Dot(p.Name)).
						Block(jen.Return(jen.False()))
				} else {
					g.If(jen.Op("!").Qual("reflect", "DeepEqual").
						Call(jen.Id(recv).Dot(p.Name), jen.Id("other").Dot(p.Name))).
						Block(jen.Return(jen.False()))
				}
			}
			g.Return(jen.True())
		})
}

func (em *Emitter) hashMethod(f *jen.File, e *EntityDescriptor) {
	recv := receiver(entityTypeName(e))
	ps := em.identityProperties(e)
	f.Commentf("Hash returns a stable hash over the entity identity.")
	f.Func().Params(jen.Id(recv).Op("*").Id(entityTypeName(e))).
		Id("Hash").Params().Uint64().
		BlockFunc(func(g *jen.Group) {
			g.Id("h").Op(":=").Qual("hash/fnv", "New64a").Call()
			for _, p := range ps {
				g.Qual("fmt", "Fprintf").Call(
					jen.Id("h"), jen.Lit("%v|"), jen.Id(recv).Dot(p.Name))
			}
			g.Return(jen.Id("h").Dot("Sum64").Call())
		})
}

// collectionHelpers emits per-element Add and Remove methods for a
// to-many relationship.
func (em *Emitter) collectionHelpers(f *jen.File, e *EntityDescriptor, edge RelationshipEdge) {
	if e.Immutable || e.ReadOnly {
		return
	}
	p := edge.Property
	recv := receiver(entityTypeName(e))
	elem := upperFirst(singular(p.Name))
	var elemType jen.Code = jen.Op("*").Id(entityTypeName(edge.Target))
	if !generatedTarget(edge) && p.Type.Elem != nil {
		elemType = declaredType(*p.Type.Elem)
	}

	f.Commentf("Add%s appends one element to the %s relationship.", elem, p.Name)
	f.Func().Params(jen.Id(recv).Op("*").Id(entityTypeName(e))).
		Id("Add"+elem).Params(jen.Id("v").Add(elemType)).
		BlockFunc(func(g *jen.Group) {
			g.Id(recv).Dot(p.Name).Op("=").Append(jen.Id(recv).Dot(p.Name), jen.Id("v"))
			if em.tracked(e, p) {
				g.Id(recv).Dot(stateField(p)).Op("=").Qual(karstPkg, karst.Modified.String())
			}
		})

	f.Commentf("Remove%s removes one element from the %s relationship.", elem, p.Name)
	f.Func().Params(jen.Id(recv).Op("*").Id(entityTypeName(e))).
		Id("Remove"+elem).Params(jen.Id("v").Add(elemType)).
		BlockFunc(func(g *jen.Group) {
			g.For(jen.Id("i"), jen.Id("cur").Op(":=").Range().Id(recv).Dot(p.Name)).
				Block(
					jen.If(jen.Id("cur").Op("==").Id("v")).BlockFunc(func(b *jen.Group) {
						b.Id(recv).Dot(p.Name).Op("=").Append(
							jen.Id(recv).Dot(p.Name).Index(jen.Empty(), jen.Id("i")),
							jen.Id(recv).Dot(p.Name).Index(jen.Id("i").Op("+").Lit(1), jen.Empty()).Op("..."),
						)
						if em.tracked(e, p) {
							b.Id(recv).Dot(stateField(p)).Op("=").Qual(karstPkg, karst.Modified.String())
						}
						b.Return()
					}),
				)
		})
}

package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/karstdb/karst"
)

// metadataFile generates the descriptor file for one declaration: the
// attribute bundle variable and the TypeDescriptor singleton the
// registry file registers.
func (em *Emitter) metadataFile(e *EntityDescriptor) *jen.File {
	f := em.newFile()

	attrs := e.Persisted()
	bundle := attrVarName(e)

	f.Commentf("%s bundles the attribute descriptors of %s.", bundle, e.Name)
	f.Var().Id(bundle).Op("=").StructFunc(func(g *jen.Group) {
		for _, p := range attrs {
			g.Id(upperFirst(p.Name)).Op("*").Qual(karstPkg, "AttributeDescriptor")
		}
	}).ValuesFunc(func(g *jen.Group) {
		for _, p := range attrs {
			g.Id(upperFirst(p.Name)).Op(":").Add(em.attributeDescriptor(e, p))
		}
	})

	f.Commentf("%s is the metadata descriptor of the %s model type.", metaVarName(e), e.Name)
	f.Var().Id(metaVarName(e)).Op("=").Op("&").Qual(karstPkg, "TypeDescriptor").ValuesFunc(func(g *jen.Group) {
		g.Id("Name").Op(":").Lit(e.Name)
		g.Id("Qualified").Op(":").Lit(e.Qualified)
		g.Id("Table").Op(":").Lit(e.Table)
		g.Id("Kind").Op(":").Lit(e.Kind.String())
		if e.ReadOnly {
			g.Id("ReadOnly").Op(":").True()
		}
		if e.Stateless {
			g.Id("Stateless").Op(":").True()
		}
		if e.Immutable {
			g.Id("Immutable").Op(":").True()
		}
		g.Id("Attributes").Op(":").Index().Op("*").Qual(karstPkg, "AttributeDescriptor").ValuesFunc(func(v *jen.Group) {
			for _, p := range attrs {
				v.Id(bundle).Dot(upperFirst(p.Name))
			}
		})
	})
	return f
}

// attributeDescriptor renders one attribute literal. Relationship
// attributes get a lazy Target supplier so mutually related
// descriptors can live in any file order; tracked attributes get a
// State accessor reaching into the generated struct.
func (em *Emitter) attributeDescriptor(e *EntityDescriptor, p *PropertyDescriptor) jen.Code {
	return jen.Op("&").Qual(karstPkg, "AttributeDescriptor").ValuesFunc(func(g *jen.Group) {
		g.Id("Name").Op(":").Lit(p.Name)
		g.Id("Column").Op(":").Lit(p.Column)
		if e.implementable() {
			g.Id("Getter").Op(":").Lit(getterName(e, p))
			if !e.Immutable && !e.ReadOnly && !p.ReadOnly {
				g.Id("Setter").Op(":").Lit(setterName(p))
			}
		}
		if p.Key {
			g.Id("Key").Op(":").True()
		}
		if p.Generated {
			g.Id("Generated").Op(":").True()
		}
		if p.Version {
			g.Id("Version").Op(":").True()
		}
		if p.Nullable {
			g.Id("Nullable").Op(":").True()
		}
		if p.ReadOnly {
			g.Id("ReadOnly").Op(":").True()
		}
		if p.Lazy {
			g.Id("Lazy").Op(":").True()
		}
		if p.Cardinality != karst.None {
			g.Id("Cardinality").Op(":").Qual(karstPkg, cardinalityConst(p.Cardinality))
		}
		if edge, ok := em.graph.Edge(e, p.Name); ok {
			g.Id("Target").Op(":").Func().Params().Op("*").Qual(karstPkg, "TypeDescriptor").
				Block(jen.Return(jen.Id(metaVarName(edge.Target))))
		}
		if e.implementable() && em.tracked(e, p) {
			g.Id("State").Op(":").Func().Params(jen.Id("entity").Any()).Op("*").Qual(karstPkg, "PropertyState").
				Block(jen.Return(jen.Op("&").Id("entity").Assert(jen.Op("*").Id(entityTypeName(e))).Dot(stateField(p))))
		}
	})
}

// cardinalityConst maps a cardinality to its runtime constant name.
func cardinalityConst(c karst.Cardinality) string {
	switch c {
	case karst.OneToOne:
		return "OneToOne"
	case karst.OneToMany:
		return "OneToMany"
	case karst.ManyToOne:
		return "ManyToOne"
	case karst.ManyToMany:
		return "ManyToMany"
	default:
		return "None"
	}
}

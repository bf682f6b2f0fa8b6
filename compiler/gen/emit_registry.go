package gen

import (
	"github.com/dave/jennifer/jen"
)

// registryFile generates the package registry: the Types slice and the
// init hook registering every descriptor into the global registry so
// lookups work as soon as the generated package is imported.
func (em *Emitter) registryFile() *jen.File {
	f := em.newFile()

	var all []*EntityDescriptor
	all = append(all, em.graph.Superclasses...)
	all = append(all, em.graph.Embeddables...)
	all = append(all, em.graph.Entities...)

	f.Comment("Types holds every generated type descriptor of the package.")
	f.Var().Id("Types").Op("=").Index().Op("*").Qual(karstPkg, "TypeDescriptor").ValuesFunc(func(g *jen.Group) {
		for _, e := range all {
			g.Id(metaVarName(e))
		}
	})

	f.Func().Id("init").Params().Block(
		jen.If(
			jen.Err().Op(":=").Qual(karstPkg, "Register").Call(jen.Id("Types").Op("...")),
			jen.Err().Op("!=").Nil(),
		).Block(jen.Panic(jen.Err())),
	)
	return f
}

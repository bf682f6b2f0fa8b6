package gen

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"

	"github.com/karstdb/karst/compiler/load"
)

// karstPkg is the import path of the runtime support package consumed
// by generated code.
const karstPkg = "github.com/karstdb/karst"

// Emitter generates the runtime support files for an assembled graph
// using Jennifer instead of templates. Jennifer auto-tracks imports,
// streams writes to disk, and lets files be emitted in parallel.
type Emitter struct {
	graph   *Graph
	cfg     *Config
	pkg     string
	workers int
}

// NewEmitter creates an emitter for the graph. The output package name
// comes from the configuration, falling back to the base name of the
// target directory.
func NewEmitter(g *Graph, cfg *Config) *Emitter {
	pkg := cfg.Package
	if pkg == "" {
		pkg = filepath.Base(cfg.Target)
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Emitter{graph: g, cfg: cfg, pkg: pkg, workers: workers}
}

// Emit writes every generated file for the graph: one entity
// implementation per implementable entity, one metadata file per
// descriptor, and the package registry. Files are written in parallel.
func (em *Emitter) Emit() error {
	if em.cfg.Target == "" {
		return NewConfigError("Target", nil, "target directory cannot be empty")
	}
	if err := os.MkdirAll(em.cfg.Target, 0o755); err != nil {
		return err
	}

	errg := new(errgroup.Group)
	errg.SetLimit(em.workers)

	for _, e := range em.graph.Entities {
		if e.implementable() {
			errg.Go(func() error {
				return em.writeFile(em.entityFile(e), snake(e.Name)+"_entity.go", "entity")
			})
		}
		errg.Go(func() error {
			return em.writeFile(em.metadataFile(e), snake(e.Name)+"_meta.go", "metadata")
		})
	}
	for _, e := range em.graph.Superclasses {
		errg.Go(func() error {
			return em.writeFile(em.metadataFile(e), snake(e.Name)+"_meta.go", "metadata")
		})
	}
	for _, e := range em.graph.Embeddables {
		errg.Go(func() error {
			return em.writeFile(em.metadataFile(e), snake(e.Name)+"_meta.go", "metadata")
		})
	}
	errg.Go(func() error {
		return em.writeFile(em.registryFile(), "karst_registry.go", "registry")
	})

	return errg.Wait()
}

// implementable reports whether the entity gets a generated
// implementation struct. Unimplementable and stateless declarations
// only contribute metadata.
func (e *EntityDescriptor) implementable() bool {
	return !e.Unimplementable && !e.Stateless
}

// newFile creates a Jennifer file with the standard header comment.
func (em *Emitter) newFile() *jen.File {
	f := jen.NewFile(em.pkg)
	if em.cfg.Header != "" {
		f.HeaderComment(em.cfg.Header)
	}
	f.HeaderComment("Code generated by karst. DO NOT EDIT.")
	return f
}

// writeFile renders one Jennifer file into the target directory.
func (em *Emitter) writeFile(f *jen.File, filename, artifact string) error {
	path := filepath.Join(em.cfg.Target, filename)
	out, err := os.Create(path)
	if err != nil {
		return NewGenerationError(artifact, path, "create failed", err)
	}
	defer out.Close()

	// Jennifer renders with correct imports and formatting
	if err := f.Render(out); err != nil {
		return NewGenerationError(artifact, path, "render failed", err)
	}
	return nil
}

// entityTypeName returns the generated implementation type name.
func entityTypeName(e *EntityDescriptor) string {
	return e.Name + "Entity"
}

// metaVarName returns the generated TypeDescriptor variable name.
func metaVarName(e *EntityDescriptor) string {
	return e.Name + "Type"
}

// attrVarName returns the generated attribute bundle variable name.
func attrVarName(e *EntityDescriptor) string {
	return e.Name + "_"
}

// generatedTarget reports whether the edge target gets a generated
// implementation type of its own. Superclass targets and stateless
// entities contribute metadata only, so properties pointing at them
// keep their declared type.
func generatedTarget(edge RelationshipEdge) bool {
	return edge.Target.Kind == load.KindEntity && edge.Target.implementable()
}

// goType renders the Go type of a property. Relationship properties
// resolved to an edge use the generated implementation type of the
// target entity; everything else keeps its declared type.
func (em *Emitter) goType(e *EntityDescriptor, p *PropertyDescriptor) jen.Code {
	edge, ok := em.graph.Edge(e, p.Name)
	if !ok || !generatedTarget(edge) {
		return declaredType(p.Type)
	}
	target := jen.Op("*").Id(entityTypeName(edge.Target))
	switch p.Type.Shape {
	case load.ShapeList:
		return jen.Index().Add(target)
	case load.ShapeSet:
		return jen.Map(target).Struct()
	}
	return target
}

// declaredType renders a loaded type reference. Container shapes are
// rebuilt structurally; named types import their declaring package.
func declaredType(t load.TypeRef) jen.Code {
	var base jen.Code
	switch {
	case t.Unresolved:
		base = jen.Id("any")
	case t.PkgPath != "":
		base = jen.Qual(t.PkgPath, t.Simple)
	case t.Shape == load.ShapeList && t.Elem != nil:
		base = jen.Index().Add(declaredType(*t.Elem))
	case t.Shape == load.ShapeSet && t.Elem != nil:
		base = jen.Map(declaredType(*t.Elem)).Struct()
	default:
		// builtin scalars and unnamed composites keep their type string
		base = jen.Id(t.Name)
	}
	if t.Pointer {
		return jen.Op("*").Add(base)
	}
	return base
}

// comparable reports whether the property type supports the ==
// operator, used when generating key comparisons.
func comparableType(t load.TypeRef) bool {
	if t.Pointer {
		return true
	}
	return t.Shape == load.ShapeScalar
}

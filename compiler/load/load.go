package load

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strconv"

	"golang.org/x/tools/go/packages"
)

// Config configures model package loading.
type Config struct {
	// BuildFlags are extra flags passed to the build system when
	// loading the model packages.
	BuildFlags []string
}

// Load type-checks the packages matching the given patterns and
// returns every class-like declaration carrying a kind marker of
// either dialect, in source order. A broken package fails the load;
// a broken member type inside an otherwise valid package does not.
// Its type is reported through the unresolved sentinel instead, so one
// malformed declaration never aborts the whole batch.
func (c Config) Load(patterns ...string) ([]*Class, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes |
			packages.NeedTypesInfo | packages.NeedSyntax | packages.NeedFiles,
		BuildFlags: c.BuildFlags,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, errors.New(e.Error()))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("load: %w", errors.Join(errs...))
	}
	var classes []*Class
	for _, pkg := range pkgs {
		classes = append(classes, classesOf(pkg)...)
	}
	return classes, nil
}

// classesOf extracts the marked declarations of one package.
func classesOf(pkg *packages.Package) []*Class {
	var classes []*Class
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := commentLines(ts.Doc)
				if len(doc) == 0 && len(gd.Specs) == 1 {
					doc = commentLines(gd.Doc)
				}
				kind, found, anns := ParseClassDirectives(doc)
				if !found {
					continue
				}
				classes = append(classes, newClass(pkg, ts, kind, anns))
			}
		}
	}
	return classes
}

func newClass(pkg *packages.Package, ts *ast.TypeSpec, kind Kind, anns Annotations) *Class {
	cl := &Class{
		Name:        ts.Name.Name,
		Package:     pkg.Name,
		PkgPath:     pkg.PkgPath,
		Pos:         pkg.Fset.Position(ts.Pos()).String(),
		Kind:        kind,
		Generic:     ts.TypeParams != nil && len(ts.TypeParams.List) > 0,
		Annotations: anns,
	}
	switch t := ts.Type.(type) {
	case *ast.StructType:
		cl.loadStruct(pkg, t)
	case *ast.InterfaceType:
		cl.Interface = true
		cl.Abstract = true
		cl.loadInterface(pkg, t)
	}
	if cl.Kind == KindSuperclass {
		cl.Abstract = true
	}
	return cl
}

// loadStruct reads fields in declaration order. Embedded fields become
// supertypes; named fields become members with struct-tag annotations.
func (cl *Class) loadStruct(pkg *packages.Package, st *ast.StructType) {
	for _, field := range st.Fields.List {
		typ := typeRefOf(pkg.TypesInfo.TypeOf(field.Type))
		if len(field.Names) == 0 {
			cl.Supers = append(cl.Supers, typ)
			continue
		}
		anns := ParseMemberTag(fieldTag(field))
		for _, name := range field.Names {
			cl.Members = append(cl.Members, Member{
				Name:        name.Name,
				Exported:    name.IsExported(),
				Type:        typ,
				Annotations: anns,
				Pos:         pkg.Fset.Position(name.Pos()).String(),
			})
		}
	}
}

// loadInterface reads explicit methods in declaration order. Embedded
// interfaces become supertypes; getter-style methods become members
// with doc-directive annotations. A method that is not getter-shaped
// (parameters, or not exactly one result) is recorded with the
// unresolved sentinel so the extractor skips it as void.
func (cl *Class) loadInterface(pkg *packages.Package, it *ast.InterfaceType) {
	for _, field := range it.Methods.List {
		if len(field.Names) == 0 {
			cl.Supers = append(cl.Supers, typeRefOf(pkg.TypesInfo.TypeOf(field.Type)))
			continue
		}
		ft, ok := field.Type.(*ast.FuncType)
		if !ok {
			continue
		}
		typ := TypeRef{Unresolved: true}
		if getterShaped(ft) {
			typ = typeRefOf(pkg.TypesInfo.TypeOf(ft.Results.List[0].Type))
		}
		name := field.Names[0]
		cl.Members = append(cl.Members, Member{
			Name:        name.Name,
			Method:      true,
			Exported:    name.IsExported(),
			Type:        typ,
			Annotations: ParseMemberDirectives(commentLines(field.Doc)),
			Pos:         pkg.Fset.Position(name.Pos()).String(),
		})
	}
}

func getterShaped(ft *ast.FuncType) bool {
	if ft.Params != nil && len(ft.Params.List) > 0 {
		return false
	}
	return ft.Results != nil && len(ft.Results.List) == 1 && len(ft.Results.List[0].Names) <= 1
}

func fieldTag(field *ast.Field) string {
	if field.Tag == nil {
		return ""
	}
	tag, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return ""
	}
	return tag
}

func commentLines(cg *ast.CommentGroup) []string {
	if cg == nil {
		return nil
	}
	lines := make([]string, 0, len(cg.List))
	for _, c := range cg.List {
		lines = append(lines, c.Text)
	}
	return lines
}

// typeRefOf derives an owned TypeRef from a checked type. Container
// shapes are resolved structurally, never by name matching.
func typeRefOf(t types.Type) TypeRef {
	if t == nil {
		return TypeRef{Unresolved: true}
	}
	var ref TypeRef
	if p, ok := t.(*types.Pointer); ok {
		ref.Pointer = true
		t = p.Elem()
	}
	switch u := t.Underlying().(type) {
	case *types.Slice:
		ref.Shape = ShapeList
		elem := typeRefOf(u.Elem())
		ref.Elem = &elem
	case *types.Array:
		ref.Shape = ShapeList
		elem := typeRefOf(u.Elem())
		ref.Elem = &elem
	case *types.Map:
		if emptyStruct(u.Elem()) {
			ref.Shape = ShapeSet
			elem := typeRefOf(u.Key())
			ref.Elem = &elem
		} else {
			ref.Shape = ShapeMap
			elem := typeRefOf(u.Elem())
			ref.Elem = &elem
		}
	case *types.Basic:
		if u.Kind() == types.Invalid {
			return TypeRef{Unresolved: true}
		}
		ref.Bool = u.Info()&types.IsBoolean != 0
	}
	if named, ok := t.(*types.Named); ok {
		obj := named.Obj()
		ref.Simple = obj.Name()
		if obj.Pkg() != nil {
			ref.PkgPath = obj.Pkg().Path()
			ref.Name = obj.Pkg().Path() + "." + obj.Name()
		} else {
			ref.Name = obj.Name()
		}
		return ref
	}
	ref.Name = types.TypeString(t, nil)
	ref.Simple = ref.Name
	return ref
}

func emptyStruct(t types.Type) bool {
	s, ok := t.Underlying().(*types.Struct)
	return ok && s.NumFields() == 0
}

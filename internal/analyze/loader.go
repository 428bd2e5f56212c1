package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// RulesMarker starts a rule line in a struct's doc comment, written as
// "//variants:" or "// variants:".
const RulesMarker = "variants:"

// Analyzer loads Go packages and extracts structs.
type Analyzer struct {
	// Dir is the directory patterns are resolved from; empty means the
	// current directory.
	Dir string
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(dir string) *Analyzer {
	return &Analyzer{Dir: dir}
}

func (a *Analyzer) load(patterns ...string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	return pkgs, nil
}

// LoadPackages loads the packages and returns every struct whose doc
// comment carries rule lines, in package then source order.
func (a *Analyzer) LoadPackages(patterns ...string) ([]*StructInfo, error) {
	pkgs, err := a.load(patterns...)
	if err != nil {
		return nil, err
	}

	var out []*StructInfo

	for _, pkg := range pkgs {
		for _, info := range structsOf(pkg) {
			if len(info.Rules) > 0 {
				out = append(out, info)
			}
		}
	}

	return out, nil
}

// LoadStruct loads one named struct, annotated or not.
func (a *Analyzer) LoadStruct(pattern, name string) (*StructInfo, error) {
	pkgs, err := a.load(pattern)
	if err != nil {
		return nil, err
	}

	for _, pkg := range pkgs {
		for _, info := range structsOf(pkg) {
			if info.ID.Name == name {
				return info, nil
			}
		}
	}

	return nil, fmt.Errorf("struct %s not found in %s", name, pattern)
}

// structsOf walks the package syntax in file order and collects structs.
func structsOf(pkg *packages.Package) []*StructInfo {
	var out []*StructInfo

	qual := packageNameQualifier(pkg.Types)

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

				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}

				info := structInfo(pkg, ts, qual)
				if info == nil {
					continue
				}

				info.Rules = ruleLines(doc)
				out = append(out, info)
			}
		}
	}

	return out
}

func structInfo(pkg *packages.Package, ts *ast.TypeSpec, qual types.Qualifier) *StructInfo {
	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return nil
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil
	}

	info := &StructInfo{
		ID:         TypeID{PkgPath: pkg.PkgPath, Name: obj.Name()},
		TypeParams: typeParams(named, qual),
		Position:   positionOf(pkg.Fset, ts.Pos()),
	}

	for i := range st.NumFields() {
		field := st.Field(i)
		if field.Embedded() {
			continue
		}

		info.Fields = append(info.Fields, FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     types.TypeString(field.Type(), qual),
			Kind:     kindOf(field.Type()),
			Tag:      reflect.StructTag(st.Tag(i)),
		})
	}

	return info
}

// packageNameQualifier drops the local package and names others by their
// package name, as they would be written in source.
func packageNameQualifier(local *types.Package) types.Qualifier {
	return func(p *types.Package) string {
		if p == local {
			return ""
		}

		return p.Name()
	}
}

func positionOf(fset *token.FileSet, pos token.Pos) string {
	p := fset.Position(pos)

	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

// ruleLines returns the text after RulesMarker of every marker line. The raw
// comment list is used since CommentGroup.Text drops directive-like lines.
func ruleLines(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}

	var out []string

	for _, c := range doc.List {
		text, ok := strings.CutPrefix(c.Text, "//")
		if !ok {
			continue
		}

		if rest, ok := strings.CutPrefix(strings.TrimLeft(text, " \t"), RulesMarker); ok {
			out = append(out, strings.TrimSpace(rest))
		}
	}

	return out
}

// typeParams renders the type parameter list, e.g. "[K comparable, V any]".
func typeParams(named *types.Named, qual types.Qualifier) string {
	tps := named.TypeParams()
	if tps == nil || tps.Len() == 0 {
		return ""
	}

	parts := make([]string, tps.Len())
	for i := range tps.Len() {
		tp := tps.At(i)
		parts[i] = tp.Obj().Name() + " " + types.TypeString(tp.Constraint(), qual)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func kindOf(t types.Type) TypeKind {
	switch tt := t.(type) {
	case *types.Basic:
		return TypeKindBasic
	case *types.Pointer:
		return TypeKindPointer
	case *types.Slice:
		return TypeKindSlice
	case *types.Array:
		return TypeKindArray
	case *types.Map:
		return TypeKindMap
	case *types.Struct:
		return TypeKindStruct
	case *types.TypeParam:
		return TypeKindParam
	case *types.Named:
		if _, ok := tt.Underlying().(*types.Struct); ok {
			return TypeKindStruct
		}

		return TypeKindNamed
	default:
		return TypeKindUnknown
	}
}

package source

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/typeforge/derive/internal/errors"
	"github.com/typeforge/derive/internal/model"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Scanner loads Go packages and builds interface models from their
// annotated interface declarations.
type Scanner struct {
	annotations *AnnotationParser
	dir         string
}

// NewScanner creates a scanner rooted at the given directory.
func NewScanner(dir string) *Scanner {
	return &Scanner{
		annotations: NewAnnotationParser(),
		dir:         dir,
	}
}

// rawIface is one interface declaration awaiting model construction.
type rawIface struct {
	pkg   *packages.Package
	file  *ast.File
	spec  *ast.TypeSpec
	decl  *ast.GenDecl
	ityp  *ast.InterfaceType
	iface *model.Interface
}

// Load scans the packages matching the patterns and returns a model for
// every interface declaration found, in file order. Embedded interfaces
// resolved within the same load become supertypes; their methods are
// flattened into the embedding interface with override links.
//
// Construction runs in three passes so declaration order never matters: every
// declaration is registered first, then own methods and supertype references
// are built, and flattening runs last, innermost supertypes first.
func (s *Scanner) Load(patterns ...string) ([]*model.Interface, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  s.dir,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.NewLoadError(fmt.Sprint(patterns), err)
	}
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			return nil, errors.NewLoadError(pkg.PkgPath, e)
		}
	}

	// First pass: register every interface declaration. Keys carry the
	// package path so same-named interfaces in different packages stay
	// distinct.
	var raws []rawIface
	byName := make(map[string]*model.Interface)

	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			for _, d := range file.Decls {
				gen, ok := d.(*ast.GenDecl)
				if !ok || gen.Tok != token.TYPE {
					continue
				}
				for _, spec := range gen.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					ityp, ok := ts.Type.(*ast.InterfaceType)
					if !ok {
						continue
					}
					iface := &model.Interface{
						Name: ts.Name.Name,
						Loc:  s.location(pkg.Fset, ts.Pos()),
					}
					raws = append(raws, rawIface{pkg: pkg, file: file, spec: ts, decl: gen, ityp: ityp, iface: iface})
					byName[pkg.PkgPath+"."+ts.Name.Name] = iface
				}
			}
		}
	}

	// Second pass: own methods, annotations, and supertype links. An
	// embedder declared before its supertype resolves fine because the
	// registry is already complete.
	for i := range raws {
		if err := s.buildInterface(&raws[i], byName); err != nil {
			return nil, err
		}
	}

	// Final pass: flatten supertype method sets into embedders.
	flattened := make(map[*model.Interface]bool, len(raws))
	out := make([]*model.Interface, 0, len(raws))
	for _, raw := range raws {
		flattenSupers(raw.iface, flattened)
		out = append(out, raw.iface)
	}
	return out, nil
}

func (s *Scanner) buildInterface(raw *rawIface, byName map[string]*model.Interface) error {
	pkg, iface := raw.pkg, raw.iface
	annots, _, err := s.docAnnotations(pkg.Fset, firstDoc(raw.spec.Doc, raw.decl.Doc))
	if err != nil {
		return err
	}
	iface.Annotations = annots

	for _, field := range raw.ityp.Methods.List {
		if len(field.Names) == 0 {
			// Embedded interface: a supertype whose methods flatten in.
			// Embeds pointing outside the loaded packages are skipped.
			if super := s.resolveEmbedded(pkg, raw.file, field.Type, byName); super != nil {
				iface.Supers = append(iface.Supers, super)
			}
			continue
		}
		ftyp, ok := field.Type.(*ast.FuncType)
		if !ok {
			continue
		}
		m, err := s.buildMethod(pkg, field, ftyp)
		if err != nil {
			return err
		}
		iface.Methods = append(iface.Methods, m)
	}
	return nil
}

// resolveEmbedded links an embedded-interface reference to its declaration.
// A bare identifier refers to the embedding interface's own package; a
// selector resolves through the file's imports to the named package. Both
// return nil when the target was not among the loaded declarations.
func (s *Scanner) resolveEmbedded(pkg *packages.Package, file *ast.File, expr ast.Expr, byName map[string]*model.Interface) *model.Interface {
	switch t := expr.(type) {
	case *ast.Ident:
		return byName[pkg.PkgPath+"."+t.Name]

	case *ast.SelectorExpr:
		alias, ok := t.X.(*ast.Ident)
		if !ok {
			return nil
		}
		for _, imp := range file.Imports {
			path := strings.Trim(imp.Path.Value, `"`)
			name := ""
			switch {
			case imp.Name != nil:
				name = imp.Name.Name
			case pkg.Imports[path] != nil:
				name = pkg.Imports[path].Name
			}
			if name == alias.Name {
				return byName[path+"."+t.Sel.Name]
			}
		}
	}
	return nil
}

// flattenSupers surfaces supertype methods on the embedding interface; a
// method redeclared on the embedder overrides its supertype declaration
// instead. Supertypes flatten before their embedders, so transitive
// embedding chains resolve regardless of declaration order.
func flattenSupers(iface *model.Interface, done map[*model.Interface]bool) {
	if done[iface] {
		return
	}
	done[iface] = true
	for _, super := range iface.Supers {
		flattenSupers(super, done)
	}

	own := make(map[string]*model.Method, len(iface.Methods))
	for _, m := range iface.Methods {
		own[m.Name] = m
	}
	for _, super := range iface.Supers {
		for _, sm := range super.Methods {
			m, seen := own[sm.Name]
			switch {
			case !seen:
				iface.Methods = append(iface.Methods, sm)
				own[sm.Name] = sm
			case m != sm:
				// The same method reached through two embedding paths is
				// one declaration, not an override of itself.
				m.Overrides = append(m.Overrides, sm)
			}
		}
	}
}

func (s *Scanner) buildMethod(pkg *packages.Package, field *ast.Field, ftyp *ast.FuncType) (*model.Method, error) {
	name := field.Names[0].Name
	annots, perParam, err := s.docAnnotations(pkg.Fset, field.Doc)
	if err != nil {
		return nil, err
	}

	m := &model.Method{
		Name:        name,
		Annotations: annots,
		Loc:         s.location(pkg.Fset, field.Pos()),
	}
	if ftyp.Results != nil && len(ftyp.Results.List) > 0 {
		m.Result = types.ExprString(ftyp.Results.List[0].Type)
	}

	// Go methods declare a single parameter list: one group.
	var group []*model.Param
	global := 0
	if ftyp.Params != nil {
		for _, pf := range ftyp.Params.List {
			typeName, flags := paramType(pf.Type)
			names := pf.Names
			if len(names) == 0 {
				// Unnamed parameter: synthesize a positional name.
				group = append(group, s.newParam(pkg, pf, fmt.Sprintf("arg%d", global), typeName, flags|model.FlagSynthetic, global, len(group), perParam))
				global++
				continue
			}
			for _, n := range names {
				group = append(group, s.newParam(pkg, pf, n.Name, typeName, flags, global, len(group), perParam))
				global++
			}
		}
	}
	m.Groups = [][]*model.Param{group}
	return m, nil
}

func (s *Scanner) newParam(pkg *packages.Package, field *ast.Field, name, typeName string, flags model.ParamFlags, global, inGroup int, perParam map[string][]model.Annotation) *model.Param {
	return &model.Param{
		Name:        name,
		Type:        typeName,
		Index:       global,
		Group:       0,
		IndexInGrp:  inGroup,
		Flags:       flags,
		Annotations: perParam[name],
		Loc:         s.location(pkg.Fset, field.Pos()),
	}
}

// docAnnotations parses a doc comment into the declaration's own
// annotations plus the ones addressed to individual parameters.
func (s *Scanner) docAnnotations(fset *token.FileSet, doc *ast.CommentGroup) ([]model.Annotation, map[string][]model.Annotation, error) {
	if doc == nil {
		return nil, nil, nil
	}
	parsed, err := s.annotations.ParseComment(doc.Text(), s.location(fset, doc.Pos()))
	if err != nil {
		return nil, nil, err
	}
	var own []model.Annotation
	perParam := make(map[string][]model.Annotation)
	for _, p := range parsed {
		if p.ParamTarget != "" {
			perParam[p.ParamTarget] = append(perParam[p.ParamTarget], p.Annotation)
			continue
		}
		own = append(own, p.Annotation)
	}
	return own, perParam, nil
}

func (s *Scanner) location(fset *token.FileSet, pos token.Pos) errors.SourceLocation {
	p := fset.Position(pos)
	return errors.SourceLocation{File: p.Filename, Line: p.Line, Column: p.Column}
}

// paramType renders a parameter's type and derives its structural flags.
func paramType(expr ast.Expr) (string, model.ParamFlags) {
	var flags model.ParamFlags
	switch t := expr.(type) {
	case *ast.Ellipsis:
		inner, _ := paramType(t.Elt)
		return "..." + inner, flags | model.FlagVariadic
	case *ast.StarExpr:
		inner, _ := paramType(t.X)
		return "*" + inner, flags | model.FlagByRef
	default:
		name := types.ExprString(expr)
		if name == "context.Context" {
			flags |= model.FlagContextual
		}
		return name, flags
	}
}

func firstDoc(docs ...*ast.CommentGroup) *ast.CommentGroup {
	for _, d := range docs {
		if d != nil {
			return d
		}
	}
	return nil
}

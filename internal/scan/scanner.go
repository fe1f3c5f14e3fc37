package scan

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	"record-generator/internal/descriptor"
	"record-generator/internal/diagnostic"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

const (
	getterPrefix = "Get"
	boolPrefix   = "Is"
	setterPrefix = "Set"
)

// Scanner loads Go packages and extracts generation requests from
// //record:generate directives.
type Scanner struct {
	index map[string]*types.Named
	descs map[string]*descriptor.TypeDescriptor
	diags diagnostic.Diagnostics
}

// New creates a new Scanner.
func New() *Scanner {
	return &Scanner{
		index: make(map[string]*types.Named),
		descs: make(map[string]*descriptor.TypeDescriptor),
	}
}

type annotated struct {
	pkgPath string
	name    string
	dir     *Directive
}

// Load loads the packages matching the given patterns and returns the
// generation requests for every annotated type, in source order, together
// with the scan diagnostics. Requests whose source could not be described
// are dropped with an error diagnostic instead of aborting the pass.
func (s *Scanner) Load(patterns ...string) ([]*descriptor.GenerationRequest, diagnostic.Diagnostics, error) {
	cfg := &packages.Config{Mode: LoadMode}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, s.diags, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, s.diags, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		s.indexPackage(pkg)
	}

	var requests []*descriptor.GenerationRequest

	for _, pkg := range pkgs {
		for _, marked := range s.collectAnnotated(pkg) {
			req, ok := s.buildRequest(marked)
			if ok {
				requests = append(requests, req)
			}
		}
	}

	return requests, s.diags, nil
}

// indexPackage records every exported named type for companion resolution.
func (s *Scanner) indexPackage(pkg *packages.Package) {
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok {
			continue
		}

		s.index[pkg.PkgPath+"."+name] = named
	}
}

// collectAnnotated walks the package syntax and returns the directive-marked
// type declarations in source order.
func (s *Scanner) collectAnnotated(pkg *packages.Package) []annotated {
	var found []annotated

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				doc := typeSpec.Doc
				if doc == nil && len(genDecl.Specs) == 1 {
					doc = genDecl.Doc
				}

				dir, ok := s.directiveOf(doc, typeSpec.Name.Name)
				if !ok {
					continue
				}

				found = append(found, annotated{
					pkgPath: pkg.PkgPath,
					name:    typeSpec.Name.Name,
					dir:     dir,
				})
			}
		}
	}

	return found
}

func (s *Scanner) directiveOf(doc *ast.CommentGroup, typeName string) (*Directive, bool) {
	if doc == nil {
		return nil, false
	}

	for _, comment := range doc.List {
		dir, isDirective, err := ParseDirective(comment.Text)
		if err != nil {
			s.diags.AddError("malformed_directive", err.Error(), typeName, "")
			return nil, false
		}

		if isDirective {
			return dir, true
		}
	}

	return nil, false
}

func (s *Scanner) buildRequest(marked annotated) (*descriptor.GenerationRequest, bool) {
	src, ok := s.describe(marked.pkgPath + "." + marked.name)
	if !ok {
		return nil, false
	}

	req := &descriptor.GenerationRequest{
		Source:  src,
		Variant: marked.dir.Variant,
	}

	for _, name := range marked.dir.Also {
		if companion, ok := s.companion(name, marked.pkgPath, marked.name); ok {
			req.AlsoConvert = append(req.AlsoConvert, companion)
		}
	}

	for _, name := range marked.dir.Merge {
		if companion, ok := s.companion(name, marked.pkgPath, marked.name); ok {
			req.MergeWith = append(req.MergeWith, companion)
		}
	}

	if marked.dir.Variant == descriptor.VariantMerge && len(req.MergeWith) == 0 {
		s.diags.AddError("unresolved_merge_sources",
			"none of the merge companions could be resolved", marked.name, "")

		return nil, false
	}

	for _, name := range marked.dir.Implements {
		req.RequestedInterfaces = append(req.RequestedInterfaces, descriptor.Simple(name))
	}

	return req, true
}

// companion resolves a directive companion name. Bare names are looked up in
// the annotated type's own package.
func (s *Scanner) companion(name, pkgPath, target string) (*descriptor.TypeDescriptor, bool) {
	qualified := name
	if !strings.Contains(name, ".") {
		qualified = pkgPath + "." + name
	}

	if _, ok := s.index[qualified]; !ok {
		s.diags.AddWarning("unknown_companion",
			fmt.Sprintf("companion type %s is not among the loaded packages", qualified),
			target, "")

		return nil, false
	}

	return s.describe(qualified)
}

// describe builds (and memoizes) the descriptor for a named type. Accessors
// keep their method declaration order.
func (s *Scanner) describe(qualified string) (*descriptor.TypeDescriptor, bool) {
	if d, ok := s.descs[qualified]; ok {
		return d, true
	}

	named, ok := s.index[qualified]
	if !ok {
		s.diags.AddError("unknown_type",
			fmt.Sprintf("type %s is not among the loaded packages", qualified), qualified, "")

		return nil, false
	}

	d := &descriptor.TypeDescriptor{ID: descriptor.ParseTypeID(qualified)}

	hasSetter := false

	for i := range named.NumMethods() {
		method := named.Method(i)
		if !method.Exported() {
			continue
		}

		sig := method.Type().(*types.Signature)

		if isSetter(method.Name(), sig) {
			hasSetter = true
			continue
		}

		acc, ok := accessorOf(method.Name(), sig)
		if !ok {
			continue
		}

		declared, err := TypeRefOf(sig.Results().At(0).Type())
		if err != nil {
			s.diags.AddError("unsupported_accessor_type", err.Error(), qualified, method.Name())
			return nil, false
		}

		acc.DeclaredType = declared
		d.Accessors = append(d.Accessors, acc)
	}

	d.Kind = inferKind(named, hasSetter)

	s.descs[qualified] = d

	return d, true
}

// accessorOf classifies a method as a field accessor by name and signature:
// no parameters, a single result, and a Get or Is prefix (Is requires a
// boolean result).
func accessorOf(name string, sig *types.Signature) (descriptor.Accessor, bool) {
	if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return descriptor.Accessor{}, false
	}

	switch {
	case strings.HasPrefix(name, getterPrefix) && len(name) > len(getterPrefix):
		return descriptor.Accessor{Name: name}, true

	case strings.HasPrefix(name, boolPrefix) && len(name) > len(boolPrefix) && isBool(sig.Results().At(0).Type()):
		return descriptor.Accessor{Name: name, IsBooleanStyle: true}, true

	default:
		return descriptor.Accessor{}, false
	}
}

func isSetter(name string, sig *types.Signature) bool {
	return strings.HasPrefix(name, setterPrefix) && len(name) > len(setterPrefix) &&
		sig.Params().Len() == 1 && sig.Results().Len() == 0
}

func isBool(t types.Type) bool {
	basic, ok := types.Unalias(t).(*types.Basic)
	return ok && basic.Kind() == types.Bool
}

// inferKind classifies the source type: setters or exported struct fields
// mean the type is a mutable holder, otherwise it is treated as an
// already-immutable aggregate.
func inferKind(named *types.Named, hasSetter bool) descriptor.Kind {
	if hasSetter {
		return descriptor.KindMutableHolder
	}

	if st, ok := named.Underlying().(*types.Struct); ok {
		for i := range st.NumFields() {
			if st.Field(i).Exported() {
				return descriptor.KindMutableHolder
			}
		}
	}

	return descriptor.KindImmutableAggregate
}

package render

import (
	"sort"
	"strings"

	"record-generator/internal/common"
	"record-generator/internal/descriptor"
)

// importSpec represents one import statement.
type importSpec struct {
	Alias string
	Path  string
}

// Aliased reports whether the import needs an explicit alias because the
// reference identifier differs from the path base.
func (i importSpec) Aliased() bool {
	return i.Alias != common.PkgAlias(i.Path)
}

// addImport records an import for a package path.
func addImport(imports map[string]importSpec, pkgPath string) {
	if pkgPath == "" {
		return
	}

	imports[pkgPath] = importSpec{
		Alias: importAlias(pkgPath),
		Path:  pkgPath,
	}
}

// importAlias derives the identifier used to qualify references to a
// package: the path base with a version-style suffix cut and dashes
// replaced, so a path like "gopkg.in/yaml.v3" reads as "yaml".
func importAlias(pkgPath string) string {
	alias := common.PkgAlias(pkgPath)
	if i := strings.IndexByte(alias, '.'); i > 0 {
		alias = alias[:i]
	}

	return strings.ReplaceAll(alias, "-", "_")
}

// sortedImports converts the import map to a path-sorted slice.
func sortedImports(imports map[string]importSpec) []importSpec {
	out := make([]importSpec, 0, len(imports))
	for _, imp := range imports {
		out = append(out, imp)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}

// goTypeString renders a resolved type reference as Go syntax, collecting
// imports for qualified names. Generated counterpart names are unqualified:
// they live in the output package.
//
// Container mapping: List<T> -> []T, Set<T> -> map[T]struct{},
// Map<K, V> -> map[K]V.
func goTypeString(ref descriptor.TypeRef, imports map[string]importSpec) string {
	switch ref.Shape {
	case descriptor.ShapeList:
		return "[]" + goTypeString(ref.Params[0], imports)
	case descriptor.ShapeSet:
		return "map[" + goTypeString(ref.Params[0], imports) + "]struct{}"
	case descriptor.ShapeMap:
		return "map[" + goTypeString(ref.Params[0], imports) + "]" + goTypeString(ref.Params[1], imports)
	}

	return simpleTypeString(ref.Name, imports)
}

// simpleTypeString renders a bare named type, qualifying and importing it
// when the name carries a package path.
func simpleTypeString(name string, imports map[string]importSpec) string {
	id := descriptor.ParseTypeID(name)
	if id.PkgPath == "" {
		return id.Name
	}

	addImport(imports, id.PkgPath)

	return importAlias(id.PkgPath) + "." + id.Name
}

// snakeCase converts a CamelCase identifier to snake_case for filenames.
func snakeCase(name string) string {
	var sb strings.Builder

	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('_')
			}

			sb.WriteRune(r + ('a' - 'A'))

			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// Filename returns the output file name for a generated type name,
// e.g. "OrderRecord" -> "order_record.go".
func Filename(targetName string) string {
	return snakeCase(targetName) + ".go"
}

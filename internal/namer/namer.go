// Package namer provides the naming-convention helpers shared by the field
// model builder, the auxiliary declarations builder and the renderer.
package namer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Conventional accessor-name prefixes. Boolean-style accessors use the
// shorter prefix.
const (
	getterPrefix  = "Get"
	booleanPrefix = "Is"
)

var titleCaser = cases.Title(language.English, cases.NoLower)

// FieldName derives a field name from an accessor name by stripping the
// conventional prefix and lower-casing the first rune of the remainder.
// Accessors without the expected prefix keep their name, lower-cased.
func FieldName(accessorName string, booleanStyle bool) string {
	name := accessorName

	prefix := getterPrefix
	if booleanStyle {
		prefix = booleanPrefix
	}

	if strings.HasPrefix(name, prefix) && len(name) > len(prefix) {
		name = name[len(prefix):]
	}

	return LowerFirst(name)
}

// LowerFirst lower-cases the first rune of s.
func LowerFirst(s string) string {
	if s == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToLower(r)) + s[size:]
}

// Exported title-cases the first letter of s, leaving the rest untouched.
func Exported(s string) string {
	if s == "" {
		return ""
	}

	return titleCaser.String(s[:1]) + s[1:]
}

// ConstantName derives the exported field-name constant identifier for a
// generated type's field, e.g. ("OrderRecord", "totalCents") ->
// "OrderRecordTotalCentsField".
func ConstantName(targetName, fieldName string) string {
	return targetName + Exported(fieldName) + "Field"
}

// WithMethodName derives the single-field mutator name for a field,
// e.g. "totalCents" -> "WithTotalCents".
func WithMethodName(fieldName string) string {
	return "With" + Exported(fieldName)
}

// MergeSuffix derives the disambiguating suffix appended to every field of a
// non-primary merge source from the source's simple type name.
func MergeSuffix(simpleTypeName string) string {
	return Exported(simpleTypeName)
}

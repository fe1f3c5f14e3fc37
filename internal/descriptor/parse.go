package descriptor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedShape marks a parameterized declared type outside the three
// recognized container shapes. It aborts the affected field's model and is
// surfaced as a request-level failure, never silently coerced to passthrough.
var ErrUnsupportedShape = errors.New("unsupported container shape")

// shapeByName maps container base names to their shapes.
var shapeByName = map[string]ContainerShape{
	"List": ShapeList,
	"Set":  ShapeSet,
	"Map":  ShapeMap,
}

// ParseTypeRef parses a declared type string such as "Item", "List<Item>" or
// "Map<String, List<Item>>" into a structured TypeRef.
//
// Parameter lists are split at top-level commas only: commas nested inside
// further generic parameters never break the split.
func ParseTypeRef(decl string) (TypeRef, error) {
	decl = strings.TrimSpace(decl)
	if decl == "" {
		return TypeRef{}, errors.New("empty declared type")
	}

	open := strings.IndexByte(decl, '<')
	if open < 0 {
		return Simple(decl), nil
	}

	if !strings.HasSuffix(decl, ">") {
		return TypeRef{}, fmt.Errorf("malformed declared type %q: unbalanced angle brackets", decl)
	}

	base := strings.TrimSpace(decl[:open])

	shape, ok := shapeByName[base]
	if !ok {
		return TypeRef{}, fmt.Errorf("%q: %w", decl, ErrUnsupportedShape)
	}

	rawParams, err := splitTopLevel(decl[open+1 : len(decl)-1])
	if err != nil {
		return TypeRef{}, fmt.Errorf("malformed declared type %q: %w", decl, err)
	}

	if len(rawParams) != shape.paramCount() {
		return TypeRef{}, fmt.Errorf("%q: %s takes %d type parameter(s), got %d: %w",
			decl, base, shape.paramCount(), len(rawParams), ErrUnsupportedShape)
	}

	params := make([]TypeRef, 0, len(rawParams))

	for _, raw := range rawParams {
		param, err := ParseTypeRef(raw)
		if err != nil {
			return TypeRef{}, err
		}

		params = append(params, param)
	}

	return TypeRef{Shape: shape, Params: params}, nil
}

// splitTopLevel splits a comma-separated type parameter list, ignoring commas
// nested inside angle brackets.
func splitTopLevel(s string) ([]string, error) {
	var (
		parts []string
		depth int
		start int
	)

	for i := range len(s) {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return nil, errors.New("unbalanced angle brackets")
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}

	if depth != 0 {
		return nil, errors.New("unbalanced angle brackets")
	}

	parts = append(parts, s[start:])

	return parts, nil
}

// Validate checks that a structured ref respects the recognized shapes and
// their parameter counts, recursively.
func Validate(ref TypeRef) error {
	if !ref.IsContainer() {
		if ref.Name == "" {
			return errors.New("simple type reference has no name")
		}

		return nil
	}

	switch ref.Shape {
	case ShapeList, ShapeSet, ShapeMap:
	default:
		return fmt.Errorf("shape %d: %w", ref.Shape, ErrUnsupportedShape)
	}

	if len(ref.Params) != ref.Shape.paramCount() {
		return fmt.Errorf("%s takes %d type parameter(s), got %d: %w",
			ref.Shape, ref.Shape.paramCount(), len(ref.Params), ErrUnsupportedShape)
	}

	for _, p := range ref.Params {
		if err := Validate(p); err != nil {
			return err
		}
	}

	return nil
}

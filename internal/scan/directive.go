package scan

import (
	"fmt"
	"strings"

	"record-generator/internal/descriptor"
)

// DirectivePrefix marks a comment line as a generation directive, e.g.
//
//	//record:generate
//	//record:generate also=OrderItem merge=Customer implements=shop/api.Priced
//	//record:generate variant=aggregate
const DirectivePrefix = "//record:generate"

// Directive is a parsed generation directive. Companion and interface names
// are kept as written; the scanner resolves them against loaded packages.
type Directive struct {
	Variant    descriptor.Variant
	Also       []string
	Merge      []string
	Implements []string
}

// ParseDirective parses one comment line. The second result reports whether
// the line is a directive at all; non-directive comments are not an error.
func ParseDirective(comment string) (*Directive, bool, error) {
	line := strings.TrimSpace(comment)
	if !strings.HasPrefix(line, DirectivePrefix) {
		return nil, false, nil
	}

	rest := line[len(DirectivePrefix):]
	if rest != "" && !strings.HasPrefix(rest, " ") {
		// Some other //record:generateX directive, not ours.
		return nil, false, nil
	}

	d := &Directive{Variant: descriptor.VariantStandard}
	explicitVariant := false

	for _, field := range strings.Fields(rest) {
		key, value, found := strings.Cut(field, "=")
		if !found || value == "" {
			return nil, true, fmt.Errorf("malformed directive argument %q", field)
		}

		switch key {
		case "variant":
			variant, err := parseVariant(value)
			if err != nil {
				return nil, true, err
			}

			d.Variant = variant
			explicitVariant = true

		case "also":
			d.Also = append(d.Also, splitNames(value)...)

		case "merge":
			d.Merge = append(d.Merge, splitNames(value)...)

		case "implements":
			d.Implements = append(d.Implements, splitNames(value)...)

		default:
			return nil, true, fmt.Errorf("unknown directive key %q", key)
		}
	}

	// A merge list implies the merge variant; an explicit conflicting
	// variant is a mistake worth flagging.
	if len(d.Merge) > 0 {
		if explicitVariant && d.Variant != descriptor.VariantMerge {
			return nil, true, fmt.Errorf("merge= conflicts with variant=%s", d.Variant)
		}

		d.Variant = descriptor.VariantMerge
	} else if d.Variant == descriptor.VariantMerge {
		return nil, true, fmt.Errorf("variant=merge requires a merge= list")
	}

	return d, true, nil
}

func parseVariant(value string) (descriptor.Variant, error) {
	switch value {
	case "standard":
		return descriptor.VariantStandard, nil
	case "aggregate":
		return descriptor.VariantAggregate, nil
	case "merge":
		return descriptor.VariantMerge, nil
	default:
		return 0, fmt.Errorf("unknown variant %q", value)
	}
}

func splitNames(value string) []string {
	var names []string

	for _, name := range strings.Split(value, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}

	return names
}

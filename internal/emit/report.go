package emit

import (
	"fmt"
	"strings"

	"record-generator/internal/common"
	"record-generator/internal/descriptor"
	"record-generator/internal/diagnostic"
)

// FailureReason tags a per-request failure.
type FailureReason int

const (
	// ReasonModelFailure - model building failed (e.g. an unsupported
	// container shape aborted a field).
	ReasonModelFailure FailureReason = iota
	// ReasonRenderFailure - the model was built but could not be rendered.
	ReasonRenderFailure
	// ReasonWriteFailure - the target was built and rendered but the sink
	// failed to persist it.
	ReasonWriteFailure
)

// String returns a human-readable reason tag.
func (r FailureReason) String() string {
	switch r {
	case ReasonModelFailure:
		return "model_failure"
	case ReasonRenderFailure:
		return "render_failure"
	case ReasonWriteFailure:
		return "write_failure"
	default:
		return common.UnknownStr
	}
}

// Failure describes one failed generation request.
type Failure struct {
	Target string
	Reason FailureReason
	Err    error
}

// InvalidUsage records a request rejected before model building because the
// source kind does not satisfy the requested variant's precondition.
type InvalidUsage struct {
	Variant  descriptor.Variant
	Expected descriptor.Kind
	Source   string
}

// InvalidUsageGroup collects rejected sources per (variant, expected kind),
// for human-readable surfacing by the host.
type InvalidUsageGroup struct {
	Variant  descriptor.Variant
	Expected descriptor.Kind
	Sources  []string
}

// Report is the per-pass outcome: emitted, skipped and failed target names
// plus the invalid-usage diagnostics.
type Report struct {
	Emitted []string
	Skipped []string
	Failed  []Failure
	Invalid []InvalidUsage
}

// InvalidGroups groups the invalid-usage entries by requested variant and
// expected source kind, in first-seen order.
func (r *Report) InvalidGroups() []InvalidUsageGroup {
	type key struct {
		variant  descriptor.Variant
		expected descriptor.Kind
	}

	index := make(map[key]int)

	var groups []InvalidUsageGroup

	for _, inv := range r.Invalid {
		k := key{variant: inv.Variant, expected: inv.Expected}

		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, InvalidUsageGroup{Variant: inv.Variant, Expected: inv.Expected})
		}

		groups[i].Sources = append(groups[i].Sources, inv.Source)
	}

	return groups
}

// Diagnostics converts the report into the shared diagnostics aggregate:
// failures become errors, invalid usages become grouped warnings.
func (r *Report) Diagnostics() diagnostic.Diagnostics {
	var d diagnostic.Diagnostics

	for _, f := range r.Failed {
		msg := f.Reason.String()
		if f.Err != nil {
			msg = f.Err.Error()
		}

		d.AddError(f.Reason.String(), msg, f.Target, "")
	}

	for _, g := range r.InvalidGroups() {
		d.AddWarning("invalid_annotation_usage",
			fmt.Sprintf("the %s variant requires a %s source; rejected: %s",
				g.Variant, g.Expected, strings.Join(g.Sources, ", ")),
			"", "")
	}

	return d
}

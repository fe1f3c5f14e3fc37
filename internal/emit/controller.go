package emit

import (
	"sync"

	"record-generator/internal/descriptor"
	"record-generator/internal/model"
	"record-generator/internal/registry"
	"record-generator/internal/resolve"
)

// Renderer turns a built model into source bytes.
type Renderer interface {
	Render(m *model.GeneratedTypeModel) ([]byte, error)
}

// Sink persists rendered output under the given target name.
type Sink interface {
	Write(targetName string, content []byte) error
}

// DebugSink is optionally implemented by sinks that can persist unformatted
// output for inspection when formatting rejects the synthesized source.
type DebugSink interface {
	WriteDebug(targetName string, content []byte) error
}

// Controller drives a generation pass: it expands requests with their
// derived companions, enforces variant preconditions, builds and renders
// each target exactly once, and hands the bytes to the sink.
type Controller struct {
	builder  *model.Builder
	renderer Renderer
	sink     Sink

	mu      sync.Mutex
	emitted map[string]bool
}

// NewController creates a controller over the given registry, renderer and
// sink. The same controller must be reused across batches when emit-once
// semantics should span them.
func NewController(reg *registry.Registry, renderer Renderer, sink Sink) *Controller {
	return &Controller{
		builder:  model.NewBuilder(reg),
		renderer: renderer,
		sink:     sink,
		emitted:  make(map[string]bool),
	}
}

// Process runs the full lifecycle for the given requests and returns the
// pass report. Requests naming an already-emitted target are skipped, not
// re-emitted, so overlapping direct and derived requests stay safe.
func (c *Controller) Process(requests []*descriptor.GenerationRequest) *Report {
	report := &Report{}

	for _, req := range expand(requests) {
		c.processOne(req, report)
	}

	return report
}

func (c *Controller) processOne(req *descriptor.GenerationRequest, report *Report) {
	if expected, ok := req.Variant.RequiredKind(); ok && req.Source.Kind != expected {
		report.Invalid = append(report.Invalid, InvalidUsage{
			Variant:  req.Variant,
			Expected: expected,
			Source:   req.Source.ID.String(),
		})

		return
	}

	target := targetName(req)

	if !c.reserve(target) {
		report.Skipped = append(report.Skipped, target)
		return
	}

	m, err := c.builder.Build(req)
	if err != nil {
		report.Failed = append(report.Failed, Failure{Target: target, Reason: ReasonModelFailure, Err: err})
		return
	}

	content, err := c.renderer.Render(m)
	if err != nil {
		// The renderer hands back unformatted source alongside formatting
		// errors; persist it best-effort so the failure can be inspected.
		if ds, ok := c.sink.(DebugSink); ok && len(content) > 0 {
			_ = ds.WriteDebug(target, content)
		}

		report.Failed = append(report.Failed, Failure{Target: target, Reason: ReasonRenderFailure, Err: err})

		return
	}

	if err := c.sink.Write(target, content); err != nil {
		report.Failed = append(report.Failed, Failure{Target: target, Reason: ReasonWriteFailure, Err: err})
		return
	}

	report.Emitted = append(report.Emitted, target)
}

// reserve claims a target name for emission. It returns false when the name
// was already claimed, including by a request that later failed: a target is
// attempted at most once per controller lifetime.
func (c *Controller) reserve(target string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.emitted[target] {
		return false
	}

	c.emitted[target] = true

	return true
}

func targetName(req *descriptor.GenerationRequest) string {
	if req.Variant == descriptor.VariantMerge {
		return resolve.MergedName(req.Source)
	}

	return resolve.GeneratedNameFor(req.Source)
}

// expand appends, after each request, the derived requests for its
// also-convert and merge-with companions. A companion's variant follows its
// kind: mutable holders get the standard variant, immutable aggregates the
// aggregate variant. Derived requests carry no interface or companion lists
// of their own.
func expand(requests []*descriptor.GenerationRequest) []*descriptor.GenerationRequest {
	var out []*descriptor.GenerationRequest

	for _, req := range requests {
		if req == nil || req.Source == nil {
			continue
		}

		out = append(out, req)

		for _, companion := range req.AlsoConvert {
			out = appendDerived(out, companion)
		}

		for _, companion := range req.MergeWith {
			out = appendDerived(out, companion)
		}
	}

	return out
}

func appendDerived(out []*descriptor.GenerationRequest, companion *descriptor.TypeDescriptor) []*descriptor.GenerationRequest {
	if companion == nil {
		return out
	}

	variant := descriptor.VariantStandard
	if companion.Kind == descriptor.KindImmutableAggregate {
		variant = descriptor.VariantAggregate
	}

	return append(out, &descriptor.GenerationRequest{Source: companion, Variant: variant})
}

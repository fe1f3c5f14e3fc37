package emit

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-generator/internal/descriptor"
	"record-generator/internal/model"
	"record-generator/internal/registry"
)

type stubRenderer struct {
	err     error
	partial []byte
}

func (r stubRenderer) Render(m *model.GeneratedTypeModel) ([]byte, error) {
	if r.err != nil {
		return r.partial, r.err
	}

	return []byte("// " + m.TargetName + "\n"), nil
}

type memSink struct {
	mu      sync.Mutex
	written map[string][]byte
	debug   map[string][]byte
	failFor map[string]error
}

func newMemSink() *memSink {
	return &memSink{
		written: make(map[string][]byte),
		debug:   make(map[string][]byte),
	}
}

func (s *memSink) Write(targetName string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failFor[targetName]; err != nil {
		return err
	}

	s.written[targetName] = content

	return nil
}

func (s *memSink) WriteDebug(targetName string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.debug[targetName] = content

	return nil
}

func holder(name string, accessors ...descriptor.Accessor) *descriptor.TypeDescriptor {
	return &descriptor.TypeDescriptor{
		ID:        descriptor.TypeID{PkgPath: "test/store", Name: name},
		Kind:      descriptor.KindMutableHolder,
		Accessors: accessors,
	}
}

func get(name, declared string) descriptor.Accessor {
	ref, err := descriptor.ParseTypeRef(declared)
	if err != nil {
		panic(err)
	}

	return descriptor.Accessor{Name: "Get" + name, DeclaredType: ref}
}

func standard(src *descriptor.TypeDescriptor) *descriptor.GenerationRequest {
	return &descriptor.GenerationRequest{Source: src, Variant: descriptor.VariantStandard}
}

func TestProcess_EmitOnce(t *testing.T) {
	a := holder("A", get("Name", "string"))
	requests := []*descriptor.GenerationRequest{standard(a), standard(a)}

	sink := newMemSink()
	ctrl := NewController(registry.Build(requests), stubRenderer{}, sink)

	report := ctrl.Process(requests)

	assert.Equal(t, []string{"ARecord"}, report.Emitted)
	assert.Equal(t, []string{"ARecord"}, report.Skipped)
	assert.Empty(t, report.Failed)
	assert.Len(t, sink.written, 1)

	// A later batch naming the same target stays skipped.
	report = ctrl.Process([]*descriptor.GenerationRequest{standard(a)})
	assert.Empty(t, report.Emitted)
	assert.Equal(t, []string{"ARecord"}, report.Skipped)
}

func TestProcess_CompanionExpansion(t *testing.T) {
	b := holder("B", get("Label", "string"))
	a := holder("A", get("Child", "test/store.B"))

	requests := []*descriptor.GenerationRequest{{
		Source:      a,
		Variant:     descriptor.VariantStandard,
		AlsoConvert: []*descriptor.TypeDescriptor{b},
	}}

	sink := newMemSink()
	ctrl := NewController(registry.Build(requests), stubRenderer{}, sink)

	report := ctrl.Process(requests)

	assert.Equal(t, []string{"ARecord", "BRecord"}, report.Emitted)
	assert.Empty(t, report.Skipped)
	assert.Contains(t, sink.written, "BRecord")
}

func TestProcess_CompanionAlreadyRequested(t *testing.T) {
	b := holder("B", get("Label", "string"))
	a := holder("A", get("Child", "test/store.B"))

	requests := []*descriptor.GenerationRequest{
		{Source: a, Variant: descriptor.VariantStandard, AlsoConvert: []*descriptor.TypeDescriptor{b}},
		standard(b),
	}

	ctrl := NewController(registry.Build(requests), stubRenderer{}, newMemSink())
	report := ctrl.Process(requests)

	assert.Equal(t, []string{"ARecord", "BRecord"}, report.Emitted)
	assert.Equal(t, []string{"BRecord"}, report.Skipped)
}

// Requesting the aggregate variant on a mutable holder is dropped before
// model building: no emission happens and the rejection is reported.
func TestProcess_InvalidVariantUsage(t *testing.T) {
	a := holder("A", get("Name", "string"))
	b := holder("B", get("Label", "string"))

	requests := []*descriptor.GenerationRequest{
		{Source: a, Variant: descriptor.VariantAggregate},
		{Source: b, Variant: descriptor.VariantAggregate},
	}

	sink := newMemSink()
	ctrl := NewController(registry.Build(requests), stubRenderer{}, sink)

	report := ctrl.Process(requests)

	assert.Empty(t, report.Emitted)
	assert.Empty(t, report.Failed)
	assert.Empty(t, sink.written)
	require.Len(t, report.Invalid, 2)
	assert.Equal(t, descriptor.KindImmutableAggregate, report.Invalid[0].Expected)

	groups := report.InvalidGroups()
	require.Len(t, groups, 1)
	assert.Equal(t, descriptor.VariantAggregate, groups[0].Variant)
	assert.Equal(t, []string{"test/store.A", "test/store.B"}, groups[0].Sources)
}

func TestProcess_WriteFailureIsolation(t *testing.T) {
	a := holder("A", get("Name", "string"))
	b := holder("B", get("Label", "string"))
	requests := []*descriptor.GenerationRequest{standard(a), standard(b)}

	sink := newMemSink()
	sink.failFor = map[string]error{"ARecord": errors.New("disk full")}
	ctrl := NewController(registry.Build(requests), stubRenderer{}, sink)

	report := ctrl.Process(requests)

	assert.Equal(t, []string{"BRecord"}, report.Emitted)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "ARecord", report.Failed[0].Target)
	assert.Equal(t, ReasonWriteFailure, report.Failed[0].Reason)
	assert.ErrorContains(t, report.Failed[0].Err, "disk full")
}

func TestProcess_RenderFailure(t *testing.T) {
	a := holder("A", get("Name", "string"))
	requests := []*descriptor.GenerationRequest{standard(a)}

	ctrl := NewController(registry.Build(requests), stubRenderer{err: errors.New("boom")}, newMemSink())
	report := ctrl.Process(requests)

	require.Len(t, report.Failed, 1)
	assert.Equal(t, ReasonRenderFailure, report.Failed[0].Reason)
}

// A renderer handing back unformatted source alongside its error gets that
// source persisted through the debug path; the real output stays untouched.
func TestProcess_RenderFailureKeepsUnformattedSource(t *testing.T) {
	a := holder("A", get("Name", "string"))
	requests := []*descriptor.GenerationRequest{standard(a)}

	unformatted := []byte("package records\n\ntype ARecord struct { broken")
	sink := newMemSink()
	ctrl := NewController(registry.Build(requests), stubRenderer{err: errors.New("expected ';'"), partial: unformatted}, sink)

	report := ctrl.Process(requests)

	require.Len(t, report.Failed, 1)
	assert.Equal(t, ReasonRenderFailure, report.Failed[0].Reason)
	assert.Empty(t, sink.written)
	assert.Equal(t, unformatted, sink.debug["ARecord"])
}

func TestProcess_ModelFailure(t *testing.T) {
	bad := holder("A", descriptor.Accessor{
		Name: "GetPair",
		DeclaredType: descriptor.TypeRef{
			Shape:  descriptor.ShapeMap,
			Params: []descriptor.TypeRef{descriptor.Simple("string")},
		},
	})
	requests := []*descriptor.GenerationRequest{standard(bad)}

	ctrl := NewController(registry.Build(requests), stubRenderer{}, newMemSink())
	report := ctrl.Process(requests)

	assert.Empty(t, report.Emitted)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, ReasonModelFailure, report.Failed[0].Reason)
	assert.ErrorIs(t, report.Failed[0].Err, descriptor.ErrUnsupportedShape)
}

func TestProcess_Concurrent(t *testing.T) {
	a := holder("A", get("Name", "string"))
	requests := []*descriptor.GenerationRequest{standard(a)}

	sink := newMemSink()
	ctrl := NewController(registry.Build(requests), stubRenderer{}, sink)

	const workers = 8

	reports := make([]*Report, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			reports[i] = ctrl.Process(requests)
		}()
	}

	wg.Wait()

	emitted, skipped := 0, 0
	for _, r := range reports {
		emitted += len(r.Emitted)
		skipped += len(r.Skipped)
	}

	assert.Equal(t, 1, emitted)
	assert.Equal(t, workers-1, skipped)
	assert.Len(t, sink.written, 1)
}

func TestReport_Diagnostics(t *testing.T) {
	report := &Report{
		Failed: []Failure{{Target: "ARecord", Reason: ReasonWriteFailure, Err: errors.New("disk full")}},
		Invalid: []InvalidUsage{
			{Variant: descriptor.VariantAggregate, Expected: descriptor.KindImmutableAggregate, Source: "test/store.A"},
			{Variant: descriptor.VariantAggregate, Expected: descriptor.KindImmutableAggregate, Source: "test/store.B"},
		},
	}

	d := report.Diagnostics()

	require.Len(t, d.Errors, 1)
	assert.Equal(t, "ARecord", d.Errors[0].Target)
	require.Len(t, d.Warnings, 1)
	assert.Contains(t, d.Warnings[0].Message, "test/store.A, test/store.B")
	assert.True(t, d.HasErrors())
}

package observability_test

import (
	"sync"
	"testing"

	"github.com/procmap/procmap/pkg/graph"
	"github.com/procmap/procmap/pkg/layout"
	"github.com/procmap/procmap/pkg/observability"
)

// recordingHooks counts engine events.
type recordingHooks struct {
	observability.NoopEngineHooks

	mu           sync.Mutex
	nodesDropped int
	edgesDropped int
	truncations  int
	cycleEdges   int
}

func (h *recordingHooks) OnNodeDropped(id, reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nodesDropped++
}

func (h *recordingHooks) OnEdgeDropped(source, target, reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.edgesDropped++
}

func (h *recordingHooks) OnTruncate(kind string, kept, total int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.truncations++
}

func (h *recordingHooks) OnCycleEdge(source, target string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cycleEdges++
}

func TestEngineHooksReceiveEvents(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetEngineHooks(hooks)
	defer observability.Reset()

	g := graph.Sanitize(
		[]graph.Node{{ID: "a"}, {ID: "b"}, {ID: "bad id"}},
		[]graph.Edge{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "a"},
			{Source: "a", Target: "ghost"},
		},
		graph.Limits{},
	)
	layout.Layout(g, layout.Options{})

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.nodesDropped != 1 {
		t.Errorf("nodes dropped = %d, want 1", hooks.nodesDropped)
	}
	if hooks.edgesDropped != 1 {
		t.Errorf("edges dropped = %d, want 1", hooks.edgesDropped)
	}
	if hooks.cycleEdges != 1 {
		t.Errorf("cycle edges = %d, want 1", hooks.cycleEdges)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	defer observability.Reset()

	hooks := &recordingHooks{}
	observability.SetEngineHooks(hooks)
	observability.SetEngineHooks(nil)

	if observability.Engine() != hooks {
		t.Error("SetEngineHooks(nil) replaced the registered hooks")
	}
}

func TestReset(t *testing.T) {
	observability.SetEngineHooks(&recordingHooks{})
	observability.Reset()

	if _, ok := observability.Engine().(observability.NoopEngineHooks); !ok {
		t.Errorf("Engine() = %T after Reset, want NoopEngineHooks", observability.Engine())
	}
}

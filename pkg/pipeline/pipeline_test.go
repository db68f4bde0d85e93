package pipeline

import (
	"context"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/procmap/procmap/pkg/annotate"
	"github.com/procmap/procmap/pkg/cache"
	"github.com/procmap/procmap/pkg/graph"
	"github.com/procmap/procmap/pkg/layout"
)

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func testGraph() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: "start", Label: "Start"},
			{ID: "review", Label: "<b>Review</b>"},
			{ID: "done"},
			{ID: "bad id"},
		},
		Edges: []graph.Edge{
			{Source: "start", Target: "review"},
			{Source: "review", Target: "done"},
			{Source: "done", Target: "ghost"},
		},
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, discardLogger())

	result, err := runner.Execute(context.Background(), testGraph(), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.RawNodes != 4 || result.Stats.NodeCount != 3 {
		t.Errorf("nodes raw=%d kept=%d, want 4/3", result.Stats.RawNodes, result.Stats.NodeCount)
	}
	if result.Stats.DroppedNodes != 1 || result.Stats.DroppedEdges != 1 {
		t.Errorf("dropped = %d/%d, want 1/1", result.Stats.DroppedNodes, result.Stats.DroppedEdges)
	}
	if result.Stats.LayoutHit {
		t.Error("first run reported a cache hit")
	}
	if len(result.Layout.Nodes) != 3 {
		t.Errorf("layout nodes = %d, want 3", len(result.Layout.Nodes))
	}
	if result.GraphHash != graph.Hash(result.Graph) {
		t.Error("GraphHash does not match sanitized graph")
	}

	// Sanitization stripped the markup before layout.
	for _, n := range result.Layout.Nodes {
		if n.ID == "review" && n.Label != "Review" {
			t.Errorf("label = %q, want Review", n.Label)
		}
	}
}

func TestExecuteInvalidDirection(t *testing.T) {
	runner := NewRunner(nil, nil, discardLogger())

	_, err := runner.Execute(context.Background(), testGraph(), Options{
		Layout: layout.Options{Direction: "diagonal"},
	})
	if err == nil {
		t.Fatal("expected error for invalid direction")
	}
}

func TestExecuteMemoizes(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil, discardLogger())
	defer runner.Close()

	ctx := context.Background()
	first, err := runner.Execute(ctx, testGraph(), Options{})
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.Stats.LayoutHit {
		t.Error("cold cache reported a hit")
	}

	second, err := runner.Execute(ctx, testGraph(), Options{})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.Stats.LayoutHit {
		t.Error("warm cache reported a miss")
	}
	if !reflect.DeepEqual(first.Layout, second.Layout) {
		t.Errorf("cached layout differs:\nfirst:  %+v\nsecond: %+v", first.Layout, second.Layout)
	}

	// Refresh bypasses the cache but yields the same layout.
	third, err := runner.Execute(ctx, testGraph(), Options{Refresh: true})
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.Stats.LayoutHit {
		t.Error("refresh run reported a hit")
	}
	if !reflect.DeepEqual(first.Layout, third.Layout) {
		t.Error("refresh produced a different layout")
	}
}

func TestExecuteDifferentOptionsDifferentKeys(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil, discardLogger())
	defer runner.Close()

	ctx := context.Background()
	if _, err := runner.Execute(ctx, testGraph(), Options{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// A different direction must not hit the top-to-bottom entry.
	result, err := runner.Execute(ctx, testGraph(), Options{
		Layout: layout.Options{Direction: layout.LeftToRight},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.LayoutHit {
		t.Error("different layout options hit the same cache entry")
	}
}

func TestRunnerAnnotate(t *testing.T) {
	runner := NewRunner(nil, nil, discardLogger())

	segments := runner.Annotate("See [1].", []annotate.Citation{
		{FactID: "f1", URL: "https://example.com"},
	}, Options{})

	resolved := 0
	for _, s := range segments {
		if s.Kind == annotate.SegmentCitation {
			resolved++
		}
	}
	if resolved != 1 {
		t.Errorf("resolved = %d, want 1", resolved)
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first call: %v", err)
	}
	logger := opts.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if opts.Logger != logger {
		t.Error("second call replaced the logger")
	}
}

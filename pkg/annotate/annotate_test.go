package annotate

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func citations(n int) []Citation {
	out := make([]Citation, n)
	for i := range out {
		out[i] = Citation{
			FactID: fmt.Sprintf("fact-%d", i+1),
			URL:    fmt.Sprintf("https://example.com/%d", i+1),
			Text:   fmt.Sprintf("Source %d", i+1),
		}
	}
	return out
}

func kinds(segments []Segment) []SegmentKind {
	out := make([]SegmentKind, len(segments))
	for i, s := range segments {
		out[i] = s.Kind
	}
	return out
}

func TestAnnotate(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		citations []Citation
		wantKinds []SegmentKind
		check     func(t *testing.T, segments []Segment)
	}{
		{
			name:      "NoMarkers",
			text:      "plain text without references",
			citations: citations(2),
			wantKinds: []SegmentKind{SegmentText},
		},
		{
			name:      "EmptyText",
			text:      "",
			citations: citations(2),
			wantKinds: []SegmentKind{},
		},
		{
			name:      "SingleMarker",
			text:      "Restart the service [1] before deploying.",
			citations: citations(1),
			wantKinds: []SegmentKind{SegmentText, SegmentCitation, SegmentText},
			check: func(t *testing.T, segments []Segment) {
				c := segments[1]
				if c.Index != 1 {
					t.Errorf("index = %d, want 1", c.Index)
				}
				if c.Citation == nil || c.Citation.FactID != "fact-1" {
					t.Errorf("citation = %+v, want fact-1", c.Citation)
				}
			},
		},
		{
			name:      "AdjacentMarkers",
			text:      "Known issue [1][2].",
			citations: citations(2),
			wantKinds: []SegmentKind{SegmentText, SegmentCitation, SegmentCitation, SegmentText},
		},
		{
			name:      "LeadingMarker",
			text:      "[1] is the primary source.",
			citations: citations(1),
			wantKinds: []SegmentKind{SegmentCitation, SegmentText},
		},
		{
			name:      "DanglingIndex",
			text:      "See [5] for details.",
			citations: citations(2),
			wantKinds: []SegmentKind{SegmentText, SegmentText, SegmentText},
			check: func(t *testing.T, segments []Segment) {
				if segments[1].Text != "[5]" {
					t.Errorf("dangling marker text = %q, want [5]", segments[1].Text)
				}
			},
		},
		{
			name:      "ZeroIndex",
			text:      "Bad [0] marker.",
			citations: citations(3),
			wantKinds: []SegmentKind{SegmentText, SegmentText, SegmentText},
		},
		{
			name:      "BeyondIndexBound",
			text:      "Huge [1001] marker.",
			citations: citations(2),
			wantKinds: []SegmentKind{SegmentText, SegmentText, SegmentText},
		},
		{
			name:      "NotAMarker",
			text:      "Array access a[i] and [note] stay literal.",
			citations: citations(3),
			wantKinds: []SegmentKind{SegmentText},
		},
		{
			name:      "MixedResolvedAndDangling",
			text:      "Good [1], bad [99], good [2].",
			citations: citations(2),
			wantKinds: []SegmentKind{
				SegmentText, SegmentCitation,
				SegmentText, SegmentText,
				SegmentText, SegmentCitation,
				SegmentText,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := Annotate(tt.text, tt.citations)

			if got := kinds(segments); !reflect.DeepEqual(got, tt.wantKinds) {
				t.Errorf("kinds = %v, want %v", got, tt.wantKinds)
			}

			// No content may be lost: literal text plus re-emitted markers
			// must reassemble into the input.
			var rebuilt strings.Builder
			for _, s := range segments {
				switch s.Kind {
				case SegmentText:
					rebuilt.WriteString(s.Text)
				case SegmentCitation:
					fmt.Fprintf(&rebuilt, "[%d]", s.Index)
				}
			}
			if rebuilt.String() != tt.text {
				t.Errorf("rebuilt = %q, want %q", rebuilt.String(), tt.text)
			}

			if tt.check != nil {
				tt.check(t, segments)
			}
		})
	}
}

func TestAnnotateMarkerCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&b, "[1] ")
	}
	text := b.String()

	segments := AnnotateWithLimit(text, citations(1), 100)

	resolved := 0
	for _, s := range segments {
		if s.Kind == SegmentCitation {
			resolved++
		}
	}
	if resolved != 100 {
		t.Errorf("resolved = %d, want 100", resolved)
	}

	// The trailing text past the cap survives as one literal segment.
	last := segments[len(segments)-1]
	if last.Kind != SegmentText || !strings.Contains(last.Text, "[1]") {
		t.Errorf("tail segment = %+v, want literal tail with markers", last)
	}
}

func TestAnnotateDanglingIdempotent(t *testing.T) {
	text := "Good [1], dangling [42]."
	cs := citations(1)

	first := Annotate(text, cs)
	again := Annotate(LiteralText(first), cs)

	// Re-annotating the literal remainder must not resolve anything new:
	// [42] is still dangling, and [1] was consumed by the first pass.
	for _, s := range again {
		if s.Kind == SegmentCitation {
			t.Errorf("second pass resolved a marker: %+v", s)
		}
	}
	if got := LiteralText(again); got != LiteralText(first) {
		t.Errorf("literal text changed: %q vs %q", got, LiteralText(first))
	}
}

func TestLiteralText(t *testing.T) {
	segments := Annotate("a [1] b [9] c", citations(1))
	if got := LiteralText(segments); got != "a  b [9] c" {
		t.Errorf("LiteralText = %q, want %q", got, "a  b [9] c")
	}
}

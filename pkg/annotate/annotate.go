// Package annotate parses citation markers out of free-form answer text.
//
// The backend returns a message string containing positional markers of the
// form [n], paired with a citation list where n is a 1-based index. Annotate
// splits the message into an ordered sequence of literal-text and
// citation-reference segments that a rendering surface can consume directly.
//
// The input is untrusted: markers may be dangling ([9999] with one
// citation), malformed, or adversarially dense. Every failure mode degrades
// to literal text - the function never errors and never drops content.
// Citation URLs pass through untouched; the consumer gates them with
// safeurl.Href before rendering a hyperlink, so an unsafe citation still
// shows its descriptive text and metadata with a neutralized link target.
package annotate

import (
	"regexp"
	"strconv"

	"github.com/procmap/procmap/pkg/observability"
)

// DefaultMaxMarkers caps the number of markers resolved in a single text.
// Past the cap, the rest of the text becomes one literal segment: this
// bounds worst-case work on marker-dense input.
const DefaultMaxMarkers = 100

// MaxCitationIndex is the largest marker index ever treated as a potential
// reference, regardless of citation-list length.
const MaxCitationIndex = 1000

// markerPattern matches a citation marker: a bracketed 1-based decimal
// index. The digit count is bounded so a pathological run of digits cannot
// produce an oversized capture.
var markerPattern = regexp.MustCompile(`\[(\d{1,7})\]`)

// Citation is one entry of the backend's citation list. It is an immutable
// lookup table row keyed by 1-based position; the annotator never mutates
// or filters it.
type Citation struct {
	FactID        string   `json:"fact_id" bson:"fact_id"`
	URL           string   `json:"url" bson:"url"`
	Text          string   `json:"text" bson:"text"`
	SourceSection string   `json:"source_section,omitempty" bson:"source_section,omitempty"`
	Confidence    *float64 `json:"confidence,omitempty" bson:"confidence,omitempty"`
}

// SegmentKind discriminates the Segment union.
type SegmentKind string

const (
	// SegmentText is a literal run of message text.
	SegmentText SegmentKind = "text"
	// SegmentCitation is a resolved citation reference.
	SegmentCitation SegmentKind = "citation"
)

// Segment is one unit of annotated output: either literal text or a
// resolved citation reference. For SegmentCitation, Index is the 1-based
// marker index and Citation is the resolved entry; for SegmentText only
// Text is set.
type Segment struct {
	Kind     SegmentKind `json:"kind" bson:"kind"`
	Text     string      `json:"text,omitempty" bson:"text,omitempty"`
	Index    int         `json:"index,omitempty" bson:"index,omitempty"`
	Citation *Citation   `json:"citation,omitempty" bson:"citation,omitempty"`
}

// Annotate splits text into literal and citation segments using the
// default marker cap. See AnnotateWithLimit.
func Annotate(text string, citations []Citation) []Segment {
	return AnnotateWithLimit(text, citations, DefaultMaxMarkers)
}

// AnnotateWithLimit is Annotate with a tunable marker cap.
//
// Scanning is a single left-to-right pass. For each marker [n], the text
// since the previous marker becomes a literal segment (omitted if empty)
// and n is resolved against the citation list. A marker whose index is
// outside [1, MaxCitationIndex] or beyond the list degrades to literal
// text. After maxMarkers matches the scan stops and the remaining text is
// appended as a single literal segment.
//
// Re-running the function on the concatenated literal text of its own
// output cannot resurrect citation segments for markers it already
// resolved, because resolved markers do not appear in literal segments.
func AnnotateWithLimit(text string, citations []Citation, maxMarkers int) []Segment {
	if maxMarkers <= 0 {
		maxMarkers = DefaultMaxMarkers
	}

	segments := []Segment{}
	pos := 0
	matches := 0

	for pos < len(text) {
		loc := markerPattern.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}

		matches++
		if matches > maxMarkers {
			observability.Engine().OnMarkerLimit(matches - 1)
			break
		}

		start, end := pos+loc[0], pos+loc[1]
		if start > pos {
			segments = append(segments, Segment{Kind: SegmentText, Text: text[pos:start]})
		}

		marker := text[start:end]
		index, err := strconv.Atoi(text[pos+loc[2] : pos+loc[3]])
		if err == nil && index >= 1 && index <= MaxCitationIndex && index <= len(citations) {
			c := citations[index-1]
			segments = append(segments, Segment{Kind: SegmentCitation, Index: index, Citation: &c})
		} else {
			// Dangling or out-of-range marker: keep it as visible text.
			segments = append(segments, Segment{Kind: SegmentText, Text: marker})
		}

		pos = end
	}

	if pos < len(text) {
		segments = append(segments, Segment{Kind: SegmentText, Text: text[pos:]})
	}

	return segments
}

// LiteralText concatenates the text of all literal segments in order.
// For output of Annotate this reconstructs the source message minus the
// resolved markers.
func LiteralText(segments []Segment) string {
	var out []byte
	for _, s := range segments {
		if s.Kind == SegmentText {
			out = append(out, s.Text...)
		}
	}
	return string(out)
}

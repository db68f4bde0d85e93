package annotate_test

import (
	"fmt"

	"github.com/procmap/procmap/pkg/annotate"
	"github.com/procmap/procmap/pkg/safeurl"
)

func ExampleAnnotate() {
	message := "Restart the scheduler [1] and clear the queue [2] before retrying."
	citations := []annotate.Citation{
		{FactID: "ops-17", URL: "https://runbook.example.com/scheduler", Text: "Scheduler runbook"},
		{FactID: "ops-23", URL: "javascript:alert(1)", Text: "Queue maintenance"},
	}

	for _, seg := range annotate.Annotate(message, citations) {
		switch seg.Kind {
		case annotate.SegmentText:
			fmt.Printf("text     %q\n", seg.Text)
		case annotate.SegmentCitation:
			// Link targets go through the safety gate before rendering.
			fmt.Printf("citation [%d] %s -> %s\n", seg.Index, seg.Citation.FactID, safeurl.Href(seg.Citation.URL))
		}
	}
	// Output:
	// text     "Restart the scheduler "
	// citation [1] ops-17 -> https://runbook.example.com/scheduler
	// text     " and clear the queue "
	// citation [2] ops-23 -> #
	// text     " before retrying."
}

func ExampleAnnotate_dangling() {
	// A marker pointing past the citation list stays visible as text
	// instead of becoming a broken reference.
	segments := annotate.Annotate("See [3] for details.", []annotate.Citation{
		{FactID: "f1", URL: "https://example.com"},
	})

	for _, seg := range segments {
		fmt.Printf("%s %q\n", seg.Kind, seg.Text)
	}
	// Output:
	// text "See "
	// text "[3]"
	// text " for details."
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/procmap/procmap/pkg/annotate"
	"github.com/procmap/procmap/pkg/pipeline"
	"github.com/procmap/procmap/pkg/safeurl"
)

// annotateInput is the file format consumed by the annotate command: the
// message with its citation list, exactly as the backend emits them.
type annotateInput struct {
	Message   string              `json:"message"`
	Citations []annotate.Citation `json:"citations"`
}

// annotateCommand creates the annotate command for resolving citation markers.
func (c *CLI) annotateCommand() *cobra.Command {
	var (
		output     string
		asJSON     bool
		maxMarkers int
	)

	cmd := &cobra.Command{
		Use:   "annotate [message.json]",
		Short: "Resolve citation markers in an answer message",
		Long: `Resolve citation markers in an answer message.

The input file holds {"message": "...", "citations": [...]}, where the message
contains [n] markers referring to 1-based citation indices. Resolvable markers
become citation references; dangling ones stay visible as literal text.

By default the annotated message is printed with its source list. Use --json
to emit the raw segment sequence instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnnotate(args[0], output, asJSON, maxMarkers)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write segment JSON to a file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print segment JSON instead of formatted text")
	cmd.Flags().IntVar(&maxMarkers, "max-markers", 0, "marker resolution cap (default from config)")

	return cmd
}

func (c *CLI) runAnnotate(input, output string, asJSON bool, maxMarkers int) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	var in annotateInput
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if maxMarkers <= 0 {
		maxMarkers = cfg.MaxMarkers
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	segments := runner.Annotate(in.Message, in.Citations, pipeline.Options{
		MaxMarkers: maxMarkers,
		Logger:     c.Logger,
	})

	if output != "" || asJSON {
		encoded, err := json.MarshalIndent(segments, "", "  ")
		if err != nil {
			return fmt.Errorf("encode segments: %w", err)
		}
		if output != "" {
			if err := os.WriteFile(output, encoded, 0o644); err != nil {
				return fmt.Errorf("write output %s: %w", output, err)
			}
			printSuccess("Annotated %d segments", len(segments))
			printFile(output)
			return nil
		}
		fmt.Println(string(encoded))
		return nil
	}

	printAnnotated(segments)
	return nil
}

// printAnnotated renders the segment sequence as styled terminal text: the
// message with inline markers, then a numbered source list. Unsafe citation
// URLs show the placeholder instead of a link.
func printAnnotated(segments []annotate.Segment) {
	type source struct {
		index    int
		citation *annotate.Citation
	}

	var b strings.Builder
	cited := []source{}
	seen := map[int]bool{}

	for _, seg := range segments {
		switch seg.Kind {
		case annotate.SegmentText:
			b.WriteString(seg.Text)
		case annotate.SegmentCitation:
			b.WriteString(StyleMarker.Render(fmt.Sprintf("[%d]", seg.Index)))
			if !seen[seg.Index] {
				seen[seg.Index] = true
				cited = append(cited, source{index: seg.Index, citation: seg.Citation})
			}
		}
	}

	fmt.Println(b.String())
	if len(cited) == 0 {
		return
	}

	printNewline()
	fmt.Println(StyleTitle.Render("Sources"))
	for _, s := range cited {
		c := s.citation
		href := safeurl.Href(c.URL)
		link := StyleDim.Render(safeurl.Placeholder)
		if href != safeurl.Placeholder {
			link = StyleLink.Render(href)
		}
		title := c.Text
		if title == "" {
			title = c.FactID
		}
		fmt.Printf("  %s %s %s\n", StyleMarker.Render(fmt.Sprintf("[%d]", s.index)), StyleValue.Render(title), link)
		if c.SourceSection != "" {
			printDetail("section: %s", c.SourceSection)
		}
	}
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/procmap/procmap/pkg/errors"
	"github.com/procmap/procmap/pkg/graph"
	"github.com/procmap/procmap/pkg/layout"
	"github.com/procmap/procmap/pkg/pipeline"
	"github.com/procmap/procmap/pkg/render"
)

// layoutCommand creates the layout command for computing process-graph layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output    string
		format    string
		direction string
		noCache   bool
		refresh   bool
		showRanks bool
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute a layered layout for a process graph",
		Long: `Compute a layered layout for a process graph.

The layout command takes a graph.json file ({"nodes": [...], "edges": [...]}),
sanitizes it, and computes deterministic node positions. The default output is
a layout.json file; -f dot and -f svg export Graphviz artifacts instead.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(format); err != nil {
				return err
			}
			if err := errors.ValidateDirection(direction); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], runLayoutOptions{
				output:    output,
				format:    format,
				direction: layout.Direction(direction),
				noCache:   noCache,
				refresh:   refresh,
				showRanks: showRanks,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatJSON, "output format: json (default), dot, svg")
	cmd.Flags().StringVarP(&direction, "direction", "d", "", "layout direction: top-to-bottom (default), left-to-right")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached layout exists")
	cmd.Flags().BoolVar(&showRanks, "show-ranks", false, "include ranks in DOT/SVG node labels")

	return cmd
}

type runLayoutOptions struct {
	output    string
	format    string
	direction layout.Direction
	noCache   bool
	refresh   bool
	showRanks bool
}

// runLayout loads the graph, runs the pipeline, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, ro runLayoutOptions) error {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		Limits:  cfg.Limits,
		Layout:  cfg.Layout,
		Refresh: ro.refresh,
		Logger:  c.Logger,
	}
	if ro.direction != "" {
		opts.Layout.Direction = ro.direction
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	format := ro.format
	if format == "" {
		format = pipeline.FormatJSON
	}
	outputPath := ro.output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout." + format
	}

	if err := writeLayoutOutput(result.Layout, format, ro.showRanks, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount,
		result.Stats.DroppedNodes, result.Stats.DroppedEdges, result.Stats.LayoutHit)
	printDetail("hash: %s", result.GraphHash)
	if format == pipeline.FormatJSON {
		printNewline()
		printNextStep("Inspect", "procmap inspect "+outputPath)
	}

	return nil
}

func writeLayoutOutput(p layout.Positioned, format string, showRanks bool, path string) error {
	switch format {
	case pipeline.FormatJSON:
		return layout.WritePositionedFile(p, path)
	case pipeline.FormatDOT:
		dot := render.ToDOT(p, render.Options{ShowRanks: showRanks})
		return os.WriteFile(path, []byte(dot), 0o644)
	case pipeline.FormatSVG:
		dot := render.ToDOT(p, render.Options{ShowRanks: showRanks})
		svg, err := render.RenderSVG(dot)
		if err != nil {
			return err
		}
		return os.WriteFile(path, svg, 0o644)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown format: %q", format)
}

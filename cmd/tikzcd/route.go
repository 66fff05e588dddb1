package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yishn/tikzcd-editor/diagram"
	"github.com/yishn/tikzcd-editor/geometry"
)

// labelPadding is added to each side of a node's label box before arrows are
// trimmed against it.
const labelPadding = 20

// shiftStep is the sideways distance between parallel arrows one shift apart.
const shiftStep = 7

var routeCmd = &cobra.Command{
	Use:   "route [file.tex]",
	Short: "Print arrow endpoints in canvas coordinates",
	Long: `Lay out a diagram on a square grid and print, for every edge, where its arrow
starts and ends once trimmed to the boxes of its source and target labels.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoute,
}

func init() {
	routeCmd.Flags().Float64("cell-size", 130, "Width and height of a grid cell")
	routeCmd.Flags().Float64("node-width", 40, "Width of a node label")
	routeCmd.Flags().Float64("node-height", 20, "Height of a node label")

	rootCmd.AddCommand(routeCmd)
}

func runRoute(cmd *cobra.Command, args []string) error {
	cell, _ := cmd.Flags().GetFloat64("cell-size")
	width, _ := cmd.Flags().GetFloat64("node-width")
	height, _ := cmd.Flags().GetFloat64("node-height")
	if cell <= 0 {
		return fmt.Errorf("--cell-size must be positive")
	}

	src, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	d, err := parseTeX(src)
	if err != nil {
		return err
	}

	printRoutes(cmd.OutOrStdout(), d, gridLayout{
		cell:   cell,
		width:  min(cell, width+labelPadding),
		height: min(cell, height+labelPadding),
	})
	return nil
}

// gridLayout places every node label in a box of the same size centered in
// its grid cell.
type gridLayout struct {
	cell, width, height float64
}

func (l gridLayout) box(p diagram.Position) geometry.Rect {
	center := geometry.Pt(
		float64(p.X)*l.cell+l.cell/2,
		float64(p.Y)*l.cell+l.cell/2,
	)
	return geometry.RectCenteredAround(center, l.width, l.height)
}

func printRoutes(w io.Writer, d *diagram.Diagram, l gridLayout) {
	for i, e := range d.Edges {
		from, to := d.NodeByID(e.From), d.NodeByID(e.To)
		if from == nil || to == nil {
			fmt.Fprintf(w, "edge %d: %s -> %s: unknown endpoint\n", i, e.From, e.To)
			continue
		}
		if e.Loop != nil {
			c := l.box(from.Position).Center()
			fmt.Fprintf(w, "edge %d: %s -> %s: loop at (%.1f, %.1f), angle %d\n",
				i, e.From, e.To, c.X, c.Y, e.Loop.Angle)
			continue
		}

		start, end := geometry.ArrowEndpoints(l.box(from.Position), l.box(to.Position),
			float64(e.Bend), float64(e.Shift)*shiftStep)
		fmt.Fprintf(w, "edge %d: %s -> %s: (%.1f, %.1f) -> (%.1f, %.1f)\n",
			i, e.From, e.To, start.X, start.Y, end.X, end.Y)
	}
}

package main

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/gogpu/gradmesh/internal/config"
)

// listPoints prints one line per point with a color swatch. The swatch
// degrades to plain text when w is not a color terminal.
func listPoints(w io.Writer, r config.Resolved) error {
	out := termenv.NewOutput(w)
	if _, err := fmt.Fprintf(w, "canvas %s, %d points\n", r.Canvas, len(r.Points)); err != nil {
		return err
	}
	for i, sp := range r.Points {
		hex := sp.Color.Hex()
		swatch := out.String("    ").Background(out.Color(hex))
		if _, err := fmt.Fprintf(w, "%3d %s %s  (%g, %g)\n",
			i+1, swatch, hex, sp.Position.X, sp.Position.Y); err != nil {
			return err
		}
	}
	return nil
}

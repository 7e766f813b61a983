package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/message"

	"github.com/gogpu/gradmesh"
	"github.com/gogpu/gradmesh/internal/config"
	"github.com/gogpu/gradmesh/internal/image"
	"github.com/gogpu/gradmesh/internal/overlay"
)

// previewSize is used for marker previews when the scene names no display.
var previewSize = gradmesh.Sz(1280, 720)

func writeMarkers(p *message.Printer, w io.Writer, r config.Resolved, path string) error {
	if r.Display.Empty() {
		r.Display = previewSize
	}
	s, err := r.NewSession(nil)
	if err != nil {
		return err
	}
	defer s.Close()

	img := overlay.Draw(s.PreviewBuffer(), s.ListPoints(), s.Canvas(), overlay.Options{Labels: true})
	data, err := image.EncodeBytes(img, image.PNG)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("markers: %w", err)
	}
	p.Fprintf(w, "wrote %s: %d x %d, %d bytes\n", path, r.Display.Width, r.Display.Height, len(data))
	return nil
}

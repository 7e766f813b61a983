package main

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/gradmesh"
	"github.com/gogpu/gradmesh/internal/config"
	"github.com/gogpu/gradmesh/internal/tui"
)

func runTUI(ctx context.Context, scene config.Scene, r config.Resolved, path string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	s, err := r.NewSession(nil)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := []tui.Option{tui.WithExportSize(r.ExportSize)}
	if path != "" {
		opts = append(opts, tui.WithSaveFunc(func(s *gradmesh.Session) error {
			return config.Capture(s, scene).Save(path)
		}))
	}
	err = tui.New(screen, s, opts...).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

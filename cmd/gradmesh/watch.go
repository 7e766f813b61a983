package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/text/message"

	"github.com/gogpu/gradmesh"
)

// watch exports once, then again each time the scene file is written.
// The directory is watched rather than the file so editors that save by
// renaming a temporary file are still seen.
func watch(ctx context.Context, p *message.Printer, w io.Writer, opts options) error {
	reexport := func() {
		_, r, err := loadScene(opts)
		if err == nil {
			err = exportOnce(p, w, r)
		}
		if err != nil {
			gradmesh.Logger().Warn("export failed", "scene", opts.config, "err", err)
			fmt.Fprintln(w, "error:", err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target := filepath.Clean(opts.config)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}
	reexport()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			gradmesh.Logger().Debug("scene changed", "op", ev.Op.String())
			reexport()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			gradmesh.Logger().Warn("watch error", "err", err)
		}
	}
}

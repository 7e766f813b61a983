// Command gradmesh renders gradient mesh scenes and edits them in the
// terminal.
//
// Usage:
//
//	gradmesh -config scene.toml                 export once
//	gradmesh -config scene.toml -watch          re-export on every save
//	gradmesh -config scene.toml -tui            edit interactively
//	gradmesh -config scene.toml -list           print the points
//	gradmesh -config scene.toml -markers m.png  preview with markers
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/gradmesh"
	"github.com/gogpu/gradmesh/internal/config"
)

type options struct {
	config  string
	export  string
	out     string
	format  string
	markers string
	watch   bool
	tui     bool
	list    bool
	verbose bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "gradmesh:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("gradmesh", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.config, "config", "", "scene file (TOML)")
	fs.StringVar(&opts.export, "export", "", "export resolution WxH (default: scene export size)")
	fs.StringVar(&opts.out, "out", "", "export directory (default: scene export dir)")
	fs.StringVar(&opts.format, "format", "", "export format: png, bmp or tiff")
	fs.StringVar(&opts.markers, "markers", "", "write a preview PNG with point markers to this file")
	fs.BoolVar(&opts.watch, "watch", false, "re-export whenever the scene file changes")
	fs.BoolVar(&opts.tui, "tui", false, "edit the scene in the terminal")
	fs.BoolVar(&opts.list, "list", false, "print the scene's points")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if opts.verbose {
		gradmesh.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if opts.watch && opts.config == "" {
		return errors.New("-watch needs -config")
	}

	scene, r, err := loadScene(opts)
	if err != nil {
		return err
	}
	p := message.NewPrinter(language.English)

	switch {
	case opts.list:
		return listPoints(stdout, r)
	case opts.markers != "":
		return writeMarkers(p, stdout, r, opts.markers)
	case opts.tui:
		return runTUI(ctx, scene, r, opts.config)
	case opts.watch:
		return watch(ctx, p, stdout, opts)
	default:
		return exportOnce(p, stdout, r)
	}
}

// loadScene reads the scene named by -config, or the default scene, and
// applies the flag overrides.
func loadScene(opts options) (config.Scene, config.Resolved, error) {
	scene := config.Default()
	if opts.config != "" {
		var err error
		if scene, err = config.Load(opts.config); err != nil {
			return config.Scene{}, config.Resolved{}, err
		}
	}
	if opts.export != "" {
		scene.Export.Size = opts.export
	}
	if opts.out != "" {
		scene.Export.Dir = opts.out
	}
	if opts.format != "" {
		scene.Export.Format = opts.format
	}
	r, err := scene.Resolve()
	if err != nil {
		return config.Scene{}, config.Resolved{}, err
	}
	return scene, r, nil
}

func exportOnce(p *message.Printer, w io.Writer, r config.Resolved) error {
	s, err := r.NewSession(nil)
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.RequestExport(r.ExportSize, func(a gradmesh.Artifact) {
		p.Fprintf(w, "wrote %s: %d x %d, %d points, %d bytes\n",
			a.Name, a.Size.Width, a.Size.Height, len(r.Points), len(a.Data))
	})
	return err
}

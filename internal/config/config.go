// Package config loads and saves gradient mesh scenes as TOML.
//
// A scene file looks like:
//
//	canvas  = "3840x2160"
//	display = "1280x720"
//
//	[field]
//	power            = 2.0
//	preview_fallback = "#1f1f1f"
//	export_fallback  = "#ffffff"
//	pixel_center     = false
//
//	[export]
//	size    = "3840x2160"
//	format  = "png"
//	dir     = "."
//	workers = 4
//
//	[[points]]
//	x     = 960.0
//	y     = 540.0
//	color = "#ff6496"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/gradmesh"
)

// Scene is the on-disk form of a session. Sizes are "WxH" strings and
// colors are hex strings so files stay easy to edit by hand.
type Scene struct {
	Canvas  string  `toml:"canvas"`
	Display string  `toml:"display,omitempty"`
	Field   Field   `toml:"field"`
	Export  Export  `toml:"export"`
	Points  []Point `toml:"points"`
}

// Field holds the interpolation settings.
type Field struct {
	Power           float64 `toml:"power"`
	PreviewFallback string  `toml:"preview_fallback"`
	ExportFallback  string  `toml:"export_fallback"`
	PixelCenter     bool    `toml:"pixel_center"`
}

// Export holds the export pipeline settings.
type Export struct {
	Size    string `toml:"size,omitempty"`
	Format  string `toml:"format"`
	Dir     string `toml:"dir"`
	Workers int    `toml:"workers"`
}

// Point is a control point in logical canvas coordinates.
type Point struct {
	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
	Color string  `toml:"color"`
}

// Default returns an empty scene on the default canvas.
func Default() Scene {
	return Scene{
		Canvas: gradmesh.DefaultCanvas.String(),
		Field: Field{
			Power:           gradmesh.DefaultPower,
			PreviewFallback: gradmesh.PreviewFallback.Hex(),
			ExportFallback:  gradmesh.ExportFallback.Hex(),
		},
		Export: Export{
			Format:  gradmesh.FormatPNG.String(),
			Dir:     ".",
			Workers: 1,
		},
	}
}

// Decode reads a scene from r. Keys missing from the input keep their
// Default values; unknown keys are an error.
func Decode(r io.Reader) (Scene, error) {
	scene := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&scene); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Scene{}, fmt.Errorf("config: %s", strict.String())
		}
		return Scene{}, fmt.Errorf("config: %w", err)
	}
	return scene, nil
}

// Parse decodes a scene from TOML bytes.
func Parse(data []byte) (Scene, error) {
	return Decode(bytes.NewReader(data))
}

// Load reads a scene file.
func Load(path string) (Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scene{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	scene, err := Decode(f)
	if err != nil {
		return Scene{}, fmt.Errorf("%s: %w", path, err)
	}
	return scene, nil
}

// Encode writes the scene as TOML.
func (s Scene) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w).SetIndentTables(true)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Save writes the scene to path, replacing any existing file.
func (s Scene) Save(path string) error {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

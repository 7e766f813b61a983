package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gradmesh"
	"github.com/gogpu/gradmesh/internal/image"
)

const scene = `
canvas = "100x50"

[export]
format = "bmp"

[[points]]
x     = 0.0
y     = 0.0
color = "#ff0000"

[[points]]
x     = 100.0
y     = 50.0
color = "#0000ff"
`

func writeScene(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(path, []byte(scene), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, path
}

func TestRunExport(t *testing.T) {
	dir, path := writeScene(t)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-config", path, "-out", dir, "-export", "2000x1000"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v (stderr %q)", err, stderr.String())
	}
	if !strings.Contains(stdout.String(), "wrote gradient-mesh-2000x1000.bmp: 2,000 x 1,000, 2 points") {
		t.Errorf("stdout = %q", stdout.String())
	}
	data, err := os.ReadFile(filepath.Join(dir, "gradient-mesh-2000x1000.bmp"))
	if err != nil {
		t.Fatal(err)
	}
	img, err := image.Decode(data, image.BMP)
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b, _ := img.At(0, 0).RGBA(); r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("pixel (0,0) = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
}

func TestRunList(t *testing.T) {
	_, path := writeScene(t)
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-config", path, "-list"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	out := stdout.String()
	for _, want := range []string{"canvas 100x50, 2 points", "#ff0000  (0, 0)", "#0000ff  (100, 50)"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestRunMarkers(t *testing.T) {
	dir, path := writeScene(t)
	out := filepath.Join(dir, "markers.png")
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-config", path, "-markers", out}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	img, err := image.Decode(data, image.PNG)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 1280 || b.Dy() != 720 {
		t.Errorf("markers size = %v, want 1280x720", b)
	}
}

func TestRunErrors(t *testing.T) {
	_, path := writeScene(t)
	tests := [][]string{
		{"-watch"},
		{"-config", filepath.Join(t.TempDir(), "missing.toml")},
		{"-config", path, "-format", "gif"},
		{"-config", path, "-export", "0x10"},
		{"-bogus"},
	}
	for _, args := range tests {
		var stdout, stderr bytes.Buffer
		if err := run(context.Background(), args, &stdout, &stderr); err == nil {
			t.Errorf("run(%q) succeeded, want error", args)
		}
	}
}

func TestRunVerboseLogs(t *testing.T) {
	t.Cleanup(func() { gradmesh.SetLogger(nil) })
	dir, path := writeScene(t)
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-config", path, "-out", dir, "-v"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr.String(), "export complete") {
		t.Errorf("stderr = %q, want export log", stderr.String())
	}
}

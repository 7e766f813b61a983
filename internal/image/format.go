// Package image encodes rendered buffers into image files for gogpu/gradmesh.
//
// PNG is the default container. BMP and TIFF are provided through
// golang.org/x/image for pipelines that want an uncompressed or
// print-oriented artifact.
package image

import (
	"fmt"
	"strings"
)

// Format is an image file container.
type Format uint8

const (
	// PNG is lossless and compressed. It is the default export format.
	PNG Format = iota

	// BMP is uncompressed.
	BMP

	// TIFF is written with deflate compression.
	TIFF

	// formatCount is the number of formats (for internal use).
	formatCount
)

var formatInfo = [formatCount]struct {
	name string
	ext  string
	mime string
}{
	PNG:  {"png", ".png", "image/png"},
	BMP:  {"bmp", ".bmp", "image/bmp"},
	TIFF: {"tiff", ".tiff", "image/tiff"},
}

// IsValid reports whether f names a supported container.
func (f Format) IsValid() bool {
	return f < formatCount
}

// String returns the lowercase format name.
func (f Format) String() string {
	if !f.IsValid() {
		return fmt.Sprintf("Format(%d)", f)
	}
	return formatInfo[f].name
}

// Extension returns the file extension, including the leading dot.
func (f Format) Extension() string {
	if !f.IsValid() {
		return ""
	}
	return formatInfo[f].ext
}

// MIME returns the media type written by Encode.
func (f Format) MIME() string {
	if !f.IsValid() {
		return "application/octet-stream"
	}
	return formatInfo[f].mime
}

// ParseFormat returns the format for a name or extension such as "png",
// ".tif" or "TIFF".
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

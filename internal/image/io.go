package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// Encode writes img to w in the given container format.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", f, err)
	}
	return nil
}

// EncodeBytes encodes img into a new byte slice.
func EncodeBytes(img image.Image, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decodes an encoded image of the given format.
func Decode(data []byte, f Format) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	var (
		img image.Image
		err error
	)
	r := bytes.NewReader(data)
	switch f {
	case PNG:
		img, err = png.Decode(r)
	case BMP:
		img, err = bmp.Decode(r)
	case TIFF:
		img, err = tiff.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("image: decode %s: %w", f, err)
	}
	return img, nil
}

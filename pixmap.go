package gradmesh

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// Pixmap represents a rectangular RGBA pixel buffer.
// Pixels are stored row-major, 4 bytes per pixel; alpha is always 255 for
// pixels written by the rasterizer.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixmap creates a new pixmap with the given dimensions.
// Negative dimensions are treated as zero, yielding an empty pixmap.
func NewPixmap(width, height int) *Pixmap {
	width = max(width, 0)
	height = max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Size returns the pixmap dimensions.
func (p *Pixmap) Size() Size {
	return Size{Width: p.width, Height: p.height}
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel with full opacity.
func (p *Pixmap) SetPixel(x, y int, c Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = 255
}

// Pixel returns the color of a single pixel.
// Out-of-bounds coordinates return black.
func (p *Pixmap) Pixel(x, y int) Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Black
	}
	i := (y*p.width + x) * 4
	return Color{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2]}
}

// Fill sets every pixel to an opaque color.
func (p *Pixmap) Fill(c Color) {
	if len(p.data) == 0 {
		return
	}
	p.data[0], p.data[1], p.data[2], p.data[3] = c.R, c.G, c.B, 255
	// Double the initialized prefix until the buffer is full.
	for n := 4; n < len(p.data); n *= 2 {
		copy(p.data[n:], p.data[:n])
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	data := make([]uint8, len(p.data))
	copy(data, p.data)
	return &Pixmap{width: p.width, height: p.height, data: data}
}

// ToImage converts the pixmap to an image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// EncodePNG writes the pixmap to w as a PNG image.
func (p *Pixmap) EncodePNG(w io.Writer) error {
	return png.Encode(w, p.ToImage())
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return p.EncodePNG(f)
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.RGBA{}
	}
	i := (y*p.width + x) * 4
	return color.RGBA{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}

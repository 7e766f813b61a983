package gradmesh

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/h2non/filetype"

	"github.com/gogpu/gradmesh/internal/cache"
	"github.com/gogpu/gradmesh/internal/image"
)

// ImageFormat is the container an export is encoded into.
type ImageFormat = image.Format

// Supported export formats.
const (
	FormatPNG  = image.PNG
	FormatBMP  = image.BMP
	FormatTIFF = image.TIFF
)

// ParseImageFormat returns the export format for a name or extension.
func ParseImageFormat(s string) (ImageFormat, error) {
	f, err := image.ParseFormat(s)
	if err != nil {
		return f, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return f, nil
}

// ArtifactName returns the file name for an export, for example
// "gradient-mesh-3840x2160.png".
func ArtifactName(size Size, f ImageFormat) string {
	return "gradient-mesh-" + size.String() + f.Extension()
}

// Artifact is an encoded export together with the buffer it was encoded from.
type Artifact struct {
	Name   string
	Size   Size
	Format ImageFormat
	MIME   string
	Data   []byte
	Pixels *Pixmap
}

// Sink receives finished artifacts, for example to save or upload them.
type Sink interface {
	Deliver(Artifact) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Artifact) error

// Deliver calls f(a).
func (f SinkFunc) Deliver(a Artifact) error {
	return f(a)
}

// DirSink writes each artifact into a directory under its own name.
type DirSink struct {
	Dir string
}

// Deliver writes the artifact to Dir/Name.
func (s DirSink) Deliver(a Artifact) error {
	path := filepath.Join(s.Dir, a.Name)
	if err := os.WriteFile(path, a.Data, 0o644); err != nil { //nolint:gosec // exported images are meant to be shared
		return fmt.Errorf("gradmesh: write %s: %w", path, err)
	}
	return nil
}

// discardSink accepts every artifact and keeps nothing.
type discardSink struct{}

func (discardSink) Deliver(Artifact) error { return nil }

// SnapshotSource provides an atomic view of the point set and the logical
// canvas it is relative to. *Store implements it.
type SnapshotSource interface {
	Snapshot() ([]ControlPoint, Size)
}

// ExporterOption configures an Exporter during creation.
type ExporterOption func(*exporterOptions)

type exporterOptions struct {
	field   Field
	format  ImageFormat
	sink    Sink
	origin  SampleOrigin
	workers int
	cached  int
}

// WithExportField sets the field used for exports. The default field has
// power 2 and a white fallback.
func WithExportField(f Field) ExporterOption {
	return func(o *exporterOptions) {
		o.field = f
	}
}

// WithFormat sets the export container. The default is PNG.
func WithFormat(f ImageFormat) ExporterOption {
	return func(o *exporterOptions) {
		o.format = f
	}
}

// WithSink sets where finished artifacts are handed off. The default sink
// discards them; the artifact is still returned from Export.
func WithSink(s Sink) ExporterOption {
	return func(o *exporterOptions) {
		o.sink = s
	}
}

// WithExportSampleOrigin sets the sampling convention of export passes.
func WithExportSampleOrigin(origin SampleOrigin) ExporterOption {
	return func(o *exporterOptions) {
		o.origin = origin
	}
}

// WithExportWorkers sets the worker count of export passes.
func WithExportWorkers(n int) ExporterOption {
	return func(o *exporterOptions) {
		o.workers = n
	}
}

// WithExportCache keeps the encoded results of the last n distinct exports.
// Exporting an unchanged point set at the same size again skips the render
// and encode steps; the artifact is still delivered and onComplete still
// runs. Cached artifacts share their Data and Pixels. The default is 0
// (no cache).
func WithExportCache(n int) ExporterOption {
	return func(o *exporterOptions) {
		o.cached = n
	}
}

// Exporter renders the point set at an arbitrary resolution and hands the
// encoded image to a Sink.
//
// Export passes never touch the live preview buffer. Exporter is safe for
// concurrent use.
type Exporter struct {
	raster *Rasterizer
	format ImageFormat
	sink   Sink
	cache  *cache.Cache[exportKey, encoded]
}

type exportKey struct {
	sum    uint64
	canvas Size
	target Size
}

// encoded is a cached export. scene holds the positions and colors it was
// rendered from, compared on every hit since the key is only a hash.
type encoded struct {
	scene  []Sample
	data   []byte
	mime   string
	pixels *Pixmap
}

// NewExporter creates an exporter.
func NewExporter(opts ...ExporterOption) *Exporter {
	o := exporterOptions{
		field:   NewField(),
		format:  FormatPNG,
		sink:    discardSink{},
		origin:  PixelCorner,
		workers: 1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sink == nil {
		o.sink = discardSink{}
	}

	e := &Exporter{
		raster: NewRasterizer(o.field, WithSampleOrigin(o.origin), WithWorkers(o.workers)),
		format: o.format,
		sink:   o.sink,
	}
	if o.cached > 0 {
		e.cache = cache.New[exportKey, encoded](o.cached)
	}
	return e
}

// Format returns the container exports are encoded into.
func (e *Exporter) Format() ImageFormat {
	return e.format
}

// Field returns the field used for export passes.
func (e *Exporter) Field() Field {
	return e.raster.Field()
}

// Export renders src at target resolution, encodes the result, hands it to
// the sink and then calls onComplete exactly once with the artifact.
//
// Points are rescaled from the logical canvas of the snapshot, never from a
// display size. An empty point set produces a uniform fallback image. If any
// step fails the error is returned and onComplete is not called.
func (e *Exporter) Export(src SnapshotSource, target Size, onComplete func(Artifact)) (Artifact, error) {
	if target.Empty() {
		return Artifact{}, fmt.Errorf("%w: export %s", ErrInvalidSize, target)
	}

	start := time.Now()
	points, canvas := src.Snapshot()
	enc, hit, err := e.encode(points, canvas, target)
	if err != nil {
		return Artifact{}, err
	}

	a := Artifact{
		Name:   ArtifactName(target, e.format),
		Size:   target,
		Format: e.format,
		MIME:   enc.mime,
		Data:   enc.data,
		Pixels: enc.pixels,
	}

	if err := e.sink.Deliver(a); err != nil {
		Logger().Warn("export delivery failed", "name", a.Name, "err", err)
		return Artifact{}, fmt.Errorf("gradmesh: deliver %s: %w", a.Name, err)
	}

	Logger().Info("export complete",
		"name", a.Name,
		"points", len(points),
		"bytes", len(a.Data),
		"cached", hit,
		"elapsed", time.Since(start))

	if onComplete != nil {
		onComplete(a)
	}
	return a, nil
}

// encode renders and encodes a snapshot, consulting the cache if enabled.
func (e *Exporter) encode(points []ControlPoint, canvas, target Size) (encoded, bool, error) {
	var key exportKey
	if e.cache != nil {
		key = exportKey{sum: fingerprint(points), canvas: canvas, target: target}
		if enc, ok := e.cache.Get(key); ok && sameScene(enc.scene, points) {
			return enc, true, nil
		}
	}

	samples := SamplesIn(points, canvas, target)
	pm := e.raster.Render(target.Width, target.Height, samples)
	data, err := image.EncodeBytes(pm.ToImage(), e.format)
	if err != nil {
		Logger().Warn("export encode failed", "size", target.String(), "err", err)
		return encoded{}, false, fmt.Errorf("gradmesh: export %s: %w", target, err)
	}
	enc := encoded{data: data, mime: detectMIME(data, e.format), pixels: pm}
	if e.cache != nil {
		enc.scene = SamplesIn(points, canvas, canvas)
		e.cache.Set(key, enc)
	}
	return enc, false, nil
}

// CacheStats returns export cache statistics. All fields are zero when the
// cache is disabled.
func (e *Exporter) CacheStats() cache.Stats {
	if e.cache == nil {
		return cache.Stats{}
	}
	return e.cache.Stats()
}

// fingerprint hashes positions and colors in order. Ids do not affect the
// rendered image and are left out.
func fingerprint(points []ControlPoint) uint64 {
	h := fnv.New64a()
	var buf [19]byte
	for _, cp := range points {
		binary.LittleEndian.PutUint64(buf[0:], math.Float64bits(cp.Position.X))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(cp.Position.Y))
		buf[16], buf[17], buf[18] = cp.Color.R, cp.Color.G, cp.Color.B
		h.Write(buf[:])
	}
	return h.Sum64()
}

func sameScene(scene []Sample, points []ControlPoint) bool {
	if len(scene) != len(points) {
		return false
	}
	for i, cp := range points {
		if scene[i].Position != cp.Position || scene[i].Color != cp.Color {
			return false
		}
	}
	return true
}

// Close releases the export worker pool.
func (e *Exporter) Close() {
	e.raster.Close()
}

// detectMIME sniffs the encoded bytes and falls back to the format's
// declared type when the signature is not recognized.
func detectMIME(data []byte, f ImageFormat) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return f.MIME()
	}
	return kind.MIME.Value
}

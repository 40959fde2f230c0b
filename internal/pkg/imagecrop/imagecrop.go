// Package imagecrop rasterizes a pan/zoom/rotate crop of an image to JPEG.
//
// Geometry follows the canvas order used by the admin cropper: the source is
// translated so its center sits at the origin, scaled, rotated, moved back,
// and finally shifted so the crop rectangle's top-left corner lands at (0,0).
package imagecrop

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	// decoders for uploaded sources
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	DefaultQuality = 95
	MaxOutputSide  = 8192
	// MaxSourcePixels bounds the decoded size of an upload, whatever its
	// compressed size.
	MaxSourcePixels = 50_000_000
	aspectEpsilon   = 0.01
)

var (
	ErrEmptyCrop      = errors.New("crop rectangle is empty")
	ErrInvalidScale   = errors.New("scale must be greater than zero")
	ErrAspectMismatch = errors.New("crop rectangle does not match aspect ratio")
	ErrOutputTooLarge = errors.New("output image too large")
	ErrDecode         = errors.New("unsupported or corrupt image")
	ErrSourceTooLarge = errors.New("source image dimensions too large")
)

// Rect is a crop rectangle in source pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Options describe one crop. Zero Scale means 1; zero Quality means DefaultQuality.
type Options struct {
	Crop        Rect
	Scale       float64
	Rotate      float64
	Aspect      float64
	OutputWidth int
	Quality     int
}

// NormalizeRotation maps deg into [-180, 180].
func NormalizeRotation(deg float64) float64 {
	r := math.Mod(deg, 360)
	switch {
	case r > 180:
		r -= 360
	case r < -180:
		r += 360
	}
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// Normalize fills defaults, snaps the crop to whole pixels and validates it.
func (o Options) Normalize() (Options, error) {
	if math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) || o.Scale < 0 {
		return o, ErrInvalidScale
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if math.IsNaN(o.Rotate) || math.IsInf(o.Rotate, 0) {
		o.Rotate = 0
	}
	o.Rotate = NormalizeRotation(o.Rotate)
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = DefaultQuality
	}

	o.Crop = Rect{
		X:      math.Round(o.Crop.X),
		Y:      math.Round(o.Crop.Y),
		Width:  math.Round(o.Crop.Width),
		Height: math.Round(o.Crop.Height),
	}
	if !(o.Crop.Width >= 1 && o.Crop.Height >= 1) {
		return o, ErrEmptyCrop
	}
	if o.Aspect > 0 {
		got := o.Crop.Width / o.Crop.Height
		if math.Abs(got-o.Aspect)/o.Aspect > aspectEpsilon {
			return o, fmt.Errorf("%w: got %.4f, want %.4f", ErrAspectMismatch, got, o.Aspect)
		}
	}
	if o.OutputWidth < 0 {
		o.OutputWidth = 0
	}
	w, h := o.outputSize()
	if w > MaxOutputSide || h > MaxOutputSide {
		return o, ErrOutputTooLarge
	}
	return o, nil
}

func (o Options) outputSize() (int, int) {
	if o.OutputWidth == 0 || float64(o.OutputWidth) == o.Crop.Width {
		return int(o.Crop.Width), int(o.Crop.Height)
	}
	h := int(math.Round(float64(o.OutputWidth) * o.Crop.Height / o.Crop.Width))
	if h < 1 {
		h = 1
	}
	return o.OutputWidth, h
}

// isIdentity reports whether the transform is a pure whole-pixel translation.
func (o Options) isIdentity() bool {
	w, _ := o.outputSize()
	return o.Scale == 1 && o.Rotate == 0 && float64(w) == o.Crop.Width
}

// CenterAspectCrop returns a crop centered on a w×h image that spans 90% of
// the width, shrunk to fit the height when the aspect requires it.
// A non-positive aspect keeps the image's own ratio.
func CenterAspectCrop(w, h int, aspect float64) Rect {
	fw, fh := float64(w), float64(h)
	if aspect <= 0 {
		aspect = fw / fh
	}
	cw := fw * 0.9
	ch := cw / aspect
	if ch > fh {
		ch = fh
		cw = ch * aspect
	}
	return Rect{X: (fw - cw) / 2, Y: (fh - ch) / 2, Width: cw, Height: ch}
}

// Crop renders src through opts into a new RGBA image. Areas outside the
// source stay transparent (black once encoded as JPEG).
func Crop(src image.Image, opts Options) (*image.RGBA, error) {
	o, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	w, h := o.outputSize()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	b := src.Bounds()

	if o.isIdentity() {
		origin := image.Pt(b.Min.X+int(o.Crop.X), b.Min.Y+int(o.Crop.Y))
		draw.Draw(dst, dst.Bounds(), src, origin, draw.Src)
		return dst, nil
	}

	draw.CatmullRom.Transform(dst, transform(b, o), src, b, draw.Src, nil)
	return dst, nil
}

// transform maps source coordinates to output coordinates.
func transform(b image.Rectangle, o Options) f64.Aff3 {
	theta := o.Rotate * math.Pi / 180
	k := o.Scale
	w, _ := o.outputSize()
	out := float64(w) / o.Crop.Width

	cx := float64(b.Dx()) / 2
	cy := float64(b.Dy()) / 2
	cos, sin := math.Cos(theta), math.Sin(theta)

	a := k * cos
	bb := -k * sin
	d := k * sin
	e := k * cos
	c := cx - o.Crop.X - (a*cx + bb*cy)
	f := cy - o.Crop.Y - (d*cx + e*cy)

	// shift for sources whose bounds do not start at the origin
	minX, minY := float64(b.Min.X), float64(b.Min.Y)
	c -= a*minX + bb*minY
	f -= d*minX + e*minY

	return f64.Aff3{
		out * a, out * bb, out * c,
		out * d, out * e, out * f,
	}
}

// EncodeJPEG encodes img at the given quality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURL wraps JPEG bytes as a data: URL for previews.
func DataURL(jpegBytes []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegBytes)
}

// Result is an encoded crop.
type Result struct {
	JPEG   []byte
	Width  int
	Height int
}

// Process decodes r, crops it and encodes the result as JPEG. The header is
// checked against MaxSourcePixels before any pixel data is decoded.
func Process(r io.Reader, opts Options) (*Result, error) {
	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxSourcePixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrSourceTooLarge, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	img, err := Crop(src, opts)
	if err != nil {
		return nil, err
	}
	o, _ := opts.Normalize()
	data, err := EncodeJPEG(img, o.Quality)
	if err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return &Result{JPEG: data, Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}, nil
}

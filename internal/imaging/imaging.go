// Package imaging shrinks receipt photos before upload.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/and161185/budget-keeper/internal/errs"
)

// Defaults applied when Options fields are zero.
const (
	DefaultMaxDimension = 1600
	DefaultQuality      = 80
)

// Options control compression.
type Options struct {
	MaxDimension int // longest side in pixels
	Quality      int // JPEG quality 1..100
}

func (o Options) withDefaults() Options {
	if o.MaxDimension <= 0 {
		o.MaxDimension = DefaultMaxDimension
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = DefaultQuality
	}
	return o
}

// Result is a compressed image ready for upload.
type Result struct {
	Data          []byte
	Width, Height int
	SourceFormat  string
}

// ContentType is always JPEG.
func (Result) ContentType() string { return "image/jpeg" }

// Compress decodes a JPEG or PNG, scales it so the longest side is at most
// MaxDimension while keeping the aspect ratio, and re-encodes it as JPEG.
func Compress(r io.Reader, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrNotImage, err)
	}
	b := src.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), opts.MaxDimension)

	var img image.Image = src
	if w != b.Dx() || h != b.Dy() || format == "png" {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		// PNG transparency becomes white on JPEG.
		draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: opts.Quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return &Result{Data: buf.Bytes(), Width: w, Height: h, SourceFormat: format}, nil
}

// Fit returns the dimensions of a w×h image scaled down so its longest side
// is at most limit. Images already within bounds are returned unchanged.
func Fit(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		return limit, scaled(h, limit, w)
	}
	return scaled(w, limit, h), limit
}

func scaled(side, num, den int) int {
	v := (side*num + den/2) / den
	if v < 1 {
		return 1
	}
	return v
}

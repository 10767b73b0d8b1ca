package res

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"sync"

	"golang.org/x/image/draw"
)

// DefaultMaxImageWidth matches the width photos were resized to before
// they were embedded
const DefaultMaxImageWidth = 1600

// photoQuality is the JPEG quality used when re-encoding opaque images
const photoQuality = 70

// MaxPixels caps the declared size of an image before it is decoded
const MaxPixels = 50_000_000

// Normalize decodes any supported raster or SVG image and re-encodes it
// as a baseline JPEG (opaque images) or an 8-bit PNG (images with
// transparency) no wider than maxWidth. The output is always something the
// PDF writer can embed.
func Normalize(res *Resource, maxWidth int) ([]byte, error) {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxImageWidth
	}
	if res.IsSVG() {
		return RasterizeSVG(bytes.NewReader(res.Data), min(maxWidth, svgRasterWidth))
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(res.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", res.URL, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("image %s is %dx%d pixels: %w", res.URL, cfg.Width, cfg.Height, ErrTooLarge)
	}

	src, _, err := image.Decode(bytes.NewReader(res.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", res.URL, err)
	}
	img := toNRGBA(src, maxWidth)

	var buf bytes.Buffer
	if img.Opaque() {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: photoQuality})
	} else {
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode image %s: %w", res.URL, err)
	}
	return buf.Bytes(), nil
}

// toNRGBA copies src into an 8-bit NRGBA image, scaling it down to
// maxWidth when wider
func toNRGBA(src image.Image, maxWidth int) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxWidth {
		h = max(1, h*maxWidth/w)
		w = maxWidth
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Images fetches assets through a Loader and normalizes them for
// embedding. It implements the fetcher used while drawing.
type Images struct {
	Loader   *Loader
	MaxWidth int

	mu    sync.Mutex
	cache map[string][]byte
}

// NewImages returns an image fetcher backed by l
func NewImages(l *Loader, maxWidth int) *Images {
	return &Images{Loader: l, MaxWidth: maxWidth, cache: make(map[string][]byte)}
}

// Fetch loads ref and returns embeddable image bytes
func (i *Images) Fetch(ctx context.Context, ref string) ([]byte, error) {
	i.mu.Lock()
	data, ok := i.cache[ref]
	i.mu.Unlock()
	if ok {
		return data, nil
	}

	res, err := i.Loader.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	data, err = Normalize(res, i.MaxWidth)
	if err != nil {
		return nil, err
	}

	i.mu.Lock()
	if i.cache == nil {
		i.cache = make(map[string][]byte)
	}
	i.cache[ref] = data
	i.mu.Unlock()
	return data, nil
}

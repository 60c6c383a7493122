// Package imgopt re-encodes raster images into their smallest usable
// form and memoizes the work in a content-addressable cache. SVG is
// handled here too, but as a text cleanup that bypasses the cache.
package imgopt

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"sync/atomic"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/avif"
	xwebp "golang.org/x/image/webp"

	"squeeze/internal/cache"
	"squeeze/internal/config"
	"squeeze/internal/minify"
	"squeeze/pkg/imgutil"
)

// Image is one encoded transform result.
type Image struct {
	Format string
	Data   []byte
}

// Stats counts pipeline work. All fields are atomic so workers can
// update them while the CLI reads a snapshot at the end of the run.
type Stats struct {
	Hits    atomic.Int64
	Misses  atomic.Int64
	Encodes atomic.Int64
}

type Pipeline struct {
	disabled bool
	opts     Options
	store    cache.Store
	stats    Stats
}

func New(cfg *config.Config, store cache.Store) *Pipeline {
	return &Pipeline{
		disabled: cfg.DisableImages,
		opts: Options{
			ToFormat: cfg.ToFormat,
			Width:    cfg.ResizeWidth,
			Height:   cfg.ResizeHeight,
			Encode:   cfg.Encode,
		},
		store: store,
	}
}

func (p *Pipeline) Stats() *Stats {
	return &p.stats
}

// Optimize returns the smallest re-encoding of data, nil when no usable
// output exists (unknown format, animated input, compression disabled),
// or an error for a genuine codec failure. Callers apply their own size
// gate to the result.
//
// The cache is consulted before the global-disable switch, so an entry
// cached while compression was enabled is still served after it is
// toggled off.
func (p *Pipeline) Optimize(data []byte) (*Image, error) {
	key := cache.Sum(data, p.opts.fingerprint())
	if res, ok := p.store.Get(key); ok {
		p.stats.Hits.Add(1)
		return &Image{Format: res.Format, Data: res.Data}, nil
	}

	if p.disabled {
		return nil, nil
	}

	kind := imgutil.Detect(data)
	if kind == imgutil.KindUnknown {
		return nil, nil
	}
	if imgutil.Animated(data, kind) {
		return nil, nil
	}

	if kind == imgutil.KindSVG {
		out, ok := minify.SVG(data)
		if !ok {
			return nil, fmt.Errorf("svg cleanup failed")
		}
		// SVG never enters the cache.
		return &Image{Format: "svg", Data: out}, nil
	}

	p.stats.Misses.Add(1)

	t := resolveTarget(kind, p.opts.ToFormat)
	if t == targetNone {
		return nil, nil
	}

	img, err := decode(data, kind)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	img = p.resize(img)

	out, err := p.encode(img, t)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", t.format(), err)
	}
	p.stats.Encodes.Add(1)

	result := Image{Format: t.format(), Data: out}
	p.store.Put(key, cache.Result{Format: result.Format, Data: result.Data})
	return &result, nil
}

// resolveTarget maps the detected source format and the requested output
// format onto a concrete encoding, or targetNone when there is nothing
// sensible to emit.
func resolveTarget(kind imgutil.Kind, to config.Format) target {
	switch to {
	case config.FormatUnchanged:
		switch kind {
		case imgutil.KindPNG:
			return targetPNG
		case imgutil.KindJPEG:
			return targetJPEG
		case imgutil.KindWebP:
			return targetWebP
		case imgutil.KindAVIF:
			return targetAVIF
		}
		return targetNone
	case config.FormatPJPEG:
		return targetPJPEG
	case config.FormatWebP:
		// Lossless only pays off for sources that were lossless.
		if kind == imgutil.KindPNG {
			return targetWebPLossless
		}
		return targetWebP
	case config.FormatAVIF:
		return targetAVIFHighEffort
	}
	return targetNone
}

func decode(data []byte, kind imgutil.Kind) (image.Image, error) {
	r := bytes.NewReader(data)
	switch kind {
	case imgutil.KindPNG:
		return png.Decode(r)
	case imgutil.KindJPEG:
		img, err := jpeg.Decode(r)
		if err != nil {
			return nil, err
		}
		// Re-encoding drops EXIF, so bake the orientation in first.
		return applyOrientation(img, data), nil
	case imgutil.KindWebP:
		return xwebp.Decode(r)
	case imgutil.KindAVIF:
		return avif.Decode(r)
	}
	return nil, fmt.Errorf("no decoder for %s", kind)
}

// resize applies the requested fill fit. Enlargement is never applied:
// sources smaller than the target box keep their natural size.
func (p *Pipeline) resize(img image.Image) image.Image {
	w, h := p.opts.Width, p.opts.Height
	if w <= 0 || h <= 0 {
		return img
	}
	bounds := img.Bounds()
	if bounds.Dx() < w || bounds.Dy() < h {
		return img
	}
	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
}

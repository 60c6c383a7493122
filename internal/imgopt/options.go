package imgopt

import (
	"fmt"

	"squeeze/internal/config"
)

// Options describe one image transform. The value is immutable and two
// field-equal values address the same cache entry.
type Options struct {
	ToFormat config.Format
	// Resize target; both dimensions set, or neither.
	Width  int
	Height int

	Encode config.EncodeOptions
}

// fingerprint serializes every field that can change encoder output.
// The leading version tag invalidates old cache entries when the layout
// changes.
func (o Options) fingerprint() string {
	return fmt.Sprintf("v1|%s|%dx%d|png:%d|jpeg:%d,%d|webp:%d,%d|avif:%d,%d,%d",
		o.ToFormat, o.Width, o.Height,
		o.Encode.PNGCompression,
		o.Encode.JPEGQuality, o.Encode.JPEGProgressiveLevel,
		o.Encode.WebPQuality, o.Encode.WebPMethod,
		o.Encode.AVIFQuality, o.Encode.AVIFSpeed, o.Encode.AVIFSpeedHighEffort)
}

// target is a fully resolved output encoding.
type target int

const (
	targetNone target = iota
	targetPNG
	targetJPEG
	targetPJPEG
	targetWebP
	targetWebPLossless
	targetAVIF
	targetAVIFHighEffort
)

func (t target) format() string {
	switch t {
	case targetPNG:
		return "png"
	case targetJPEG, targetPJPEG:
		return "jpg"
	case targetWebP, targetWebPLossless:
		return "webp"
	case targetAVIF, targetAVIFHighEffort:
		return "avif"
	default:
		return ""
	}
}

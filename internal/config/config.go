// Package config holds the run-wide switches and the static per-format
// encode options. All options are plain values filled from CLI flags;
// there is no config file.
package config

import (
	"fmt"
	"image/png"
	"strconv"
	"strings"
)

// Format selects the target encoding for image transforms.
type Format string

const (
	FormatUnchanged Format = "unchanged"
	FormatWebP      Format = "webp"
	FormatPJPEG     Format = "pjpg"
	FormatAVIF      Format = "avif"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatUnchanged, FormatWebP, FormatPJPEG, FormatAVIF:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (want unchanged, webp, pjpg, or avif)", s)
}

// Config is read-only once a run starts.
type Config struct {
	DryRun        bool
	DisableImages bool
	ToFormat      Format
	ResizeWidth   int
	ResizeHeight  int
	Concurrency   int    // 0 = no cap on in-flight files
	CacheDir      string // empty = in-memory image cache only
	Quiet         bool

	Encode EncodeOptions
}

// EncodeOptions carries the per-format quality/effort knobs. Two equal
// values must produce identical encoder behavior; they participate in
// the image cache key.
type EncodeOptions struct {
	PNGCompression       int // image/png compression level constant
	JPEGQuality          int
	JPEGProgressiveLevel int // scan script level used for pjpg output
	WebPQuality          int
	WebPMethod           int // cpu effort 0..6
	AVIFQuality          int
	AVIFSpeed            int // default effort, 0 (slow) .. 10 (fast)
	AVIFSpeedHighEffort  int // used when avif is requested explicitly
}

// Default returns the options the CLI starts from.
func Default() Config {
	return Config{
		ToFormat: FormatUnchanged,
		Encode: EncodeOptions{
			PNGCompression:       int(png.BestCompression),
			JPEGQuality:          82,
			JPEGProgressiveLevel: 2,
			WebPQuality:          80,
			WebPMethod:           4,
			AVIFQuality:          60,
			AVIFSpeed:            6,
			AVIFSpeedHighEffort:  2,
		},
	}
}

// ParseResize parses a "WIDTHxHEIGHT" flag value. Both dimensions are
// required together.
func ParseResize(s string) (width, height int, err error) {
	if s == "" {
		return 0, 0, nil
	}
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("resize %q: want WIDTHxHEIGHT", s)
	}
	width, err = strconv.Atoi(w)
	if err == nil {
		height, err = strconv.Atoi(h)
	}
	if err != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("resize %q: want two positive integers", s)
	}
	return width, height, nil
}

package processor

import (
	"path/filepath"
	"strings"
)

// Kind is the transformer pipeline an asset routes through.
type Kind int

const (
	KindUnknown Kind = iota
	KindImage
	KindCSS
	KindJS
	KindHTML
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindCSS:
		return "css"
	case KindJS:
		return "js"
	case KindHTML:
		return "html"
	default:
		return "unknown"
	}
}

// kinds is the extension registry. New asset kinds register here rather
// than growing a dispatch conditional.
var kinds = map[string]Kind{
	".png":  KindImage,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".webp": KindImage,
	".avif": KindImage,
	".svg":  KindImage,
	".css":  KindCSS,
	".js":   KindJS,
	".mjs":  KindJS,
	".html": KindHTML,
	".htm":  KindHTML,
}

// KindOf resolves a path's pipeline from its extension.
func KindOf(path string) Kind {
	return kinds[strings.ToLower(filepath.Ext(path))]
}

// ReportItem is the per-file outcome handed to the aggregator.
// CompressedSize never exceeds OriginalSize.
type ReportItem struct {
	Path           string
	Kind           Kind
	OriginalSize   int64
	CompressedSize int64
}

// Saved is the byte gain for this file; zero when nothing improved.
func (i ReportItem) Saved() int64 {
	return i.OriginalSize - i.CompressedSize
}

// ProgressUpdate is one delta event for the live display.
type ProgressUpdate struct {
	TotalDelta    int
	FilesDelta    int
	OriginalDelta int64
	FinalDelta    int64
	ErrorDelta    int
}

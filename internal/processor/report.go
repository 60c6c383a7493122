package processor

import (
	"fmt"
	"sync/atomic"

	"github.com/dustin/go-humanize"
)

// Summary accumulates run-lifetime counters. Every field is atomic:
// workers Record concurrently and the display reads whenever it likes.
type Summary struct {
	files         atomic.Int64
	originalBytes atomic.Int64
	finalBytes    atomic.Int64
	errors        atomic.Int64
}

// Record folds one completed file into the counters.
func (s *Summary) Record(item ReportItem) {
	s.files.Add(1)
	s.originalBytes.Add(item.OriginalSize)
	s.finalBytes.Add(item.CompressedSize)
}

func (s *Summary) RecordError() {
	s.errors.Add(1)
}

func (s *Summary) Files() int64         { return s.files.Load() }
func (s *Summary) OriginalBytes() int64 { return s.originalBytes.Load() }
func (s *Summary) FinalBytes() int64    { return s.finalBytes.Load() }
func (s *Summary) Errors() int64        { return s.errors.Load() }

// Saved is the aggregate byte gain. Never negative: the size gate keeps
// every per-file contribution at original size or below.
func (s *Summary) Saved() int64 {
	return s.OriginalBytes() - s.FinalBytes()
}

// ProgressText renders the live one-line summary, e.g.
// "14 files | 2.1 MB → 1.6 MB | -500 kB".
func (s *Summary) ProgressText() string {
	orig := s.OriginalBytes()
	final := s.FinalBytes()
	return fmt.Sprintf("%d files | %s → %s | -%s",
		s.Files(),
		humanize.Bytes(uint64(orig)),
		humanize.Bytes(uint64(final)),
		humanize.Bytes(uint64(orig-final)))
}

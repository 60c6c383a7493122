// Package processor is the orchestration core: it fans file paths out
// to concurrent per-file tasks, routes each file through the right
// transformer pipeline, commits only strictly-smaller results, and
// aggregates the run report.
package processor

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"squeeze/internal/cache"
	"squeeze/internal/config"
	"squeeze/internal/imgopt"
)

// Runner owns the state of one run: the already-processed set, the
// aggregate counters, and the image pipeline with its cache.
type Runner struct {
	cfg      *config.Config
	pipeline *imgopt.Pipeline
	log      *log.Logger
	updates  chan<- ProgressUpdate

	mu   sync.Mutex
	seen map[string]bool

	summary Summary
}

func New(cfg *config.Config, store cache.Store, logger *log.Logger, updates chan<- ProgressUpdate) *Runner {
	return &Runner{
		cfg:      cfg,
		pipeline: imgopt.New(cfg, store),
		log:      logger,
		updates:  updates,
		seen:     make(map[string]bool),
	}
}

func (r *Runner) Summary() *Summary {
	return &r.summary
}

// PipelineStats exposes the image pipeline's cache-hit and encode
// counters for the end-of-run report.
func (r *Runner) PipelineStats() *imgopt.Stats {
	return r.pipeline.Stats()
}

// Run processes every path not yet seen this run, one concurrent task
// per file, and waits for all of them. By default there is no cap on
// in-flight files; cfg.Concurrency > 0 adds back-pressure without
// changing per-file behavior. Per-file failures are logged and counted,
// never fatal: the run always attempts every claimed file.
func (r *Runner) Run(ctx context.Context, paths []string) *Summary {
	fresh := r.claim(paths)
	r.emit(ProgressUpdate{TotalDelta: len(fresh)})

	var g errgroup.Group
	if r.cfg.Concurrency > 0 {
		g.SetLimit(r.cfg.Concurrency)
	}
	for _, path := range fresh {
		g.Go(func() error {
			if ctx.Err() == nil {
				r.process(path)
			}
			return nil
		})
	}
	_ = g.Wait()

	return &r.summary
}

// claim filters out paths already processed this run and marks the
// rest, so overlapping Run calls never double-process a file.
func (r *Runner) claim(paths []string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var fresh []string
	for _, p := range paths {
		if r.seen[p] {
			continue
		}
		r.seen[p] = true
		fresh = append(fresh, p)
	}
	return fresh
}

func (r *Runner) process(path string) {
	item, err := r.dispatch(path)
	if err != nil {
		r.summary.RecordError()
		r.log.Warn("file left unchanged", "path", path, "err", err)
		r.emit(ProgressUpdate{ErrorDelta: 1})
	}
	if item.Path == "" {
		// Not even a stat size to report.
		return
	}

	r.summary.Record(item)
	r.emit(ProgressUpdate{
		FilesDelta:    1,
		OriginalDelta: item.OriginalSize,
		FinalDelta:    item.CompressedSize,
	})
}

func (r *Runner) emit(u ProgressUpdate) {
	if r.updates != nil {
		r.updates <- u
	}
}

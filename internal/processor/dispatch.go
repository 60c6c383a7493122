package processor

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"squeeze/internal/minify"
)

// dispatch routes one file through its kind's transformer pipeline and
// commits the result when it is strictly smaller than the bytes on
// disk. The returned item always satisfies CompressedSize <=
// OriginalSize; a transform failure returns the no-change item plus the
// error.
func (r *Runner) dispatch(path string) (ReportItem, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ReportItem{}, err
	}
	item := ReportItem{
		Path:           path,
		Kind:           KindOf(path),
		OriginalSize:   info.Size(),
		CompressedSize: info.Size(),
	}

	if item.Kind == KindUnknown {
		return item, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return item, err
	}

	var out []byte
	var ok bool
	switch item.Kind {
	case KindImage:
		img, perr := r.pipeline.Optimize(data)
		if perr != nil {
			return item, perr
		}
		if img != nil {
			out, ok = img.Data, true
		}
	case KindCSS:
		out, ok = minify.CSS(data)
	case KindJS:
		out, ok = minify.JS(data)
	case KindHTML:
		// HTML minification is non-expanding by construction; the
		// shared gate below only skips the pointless rewrite when the
		// output did not shrink.
		out, ok = minify.HTML(data)
	}

	// The size gate: accept only strictly-smaller results.
	if !ok || int64(len(out)) >= item.OriginalSize {
		return item, nil
	}

	if err := r.commit(path, out, info.Mode()); err != nil {
		return item, err
	}
	item.CompressedSize = int64(len(out))
	return item, nil
}

// commit replaces the file's bytes via a temp file in the same
// directory, keeping the original mode. Dry-run reports the would-be
// savings without touching the disk.
func (r *Runner) commit(path string, data []byte, mode fs.FileMode) error {
	if r.cfg.DryRun {
		return nil
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".squeeze-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return replaceFile(tmp.Name(), path)
}

// replaceFile swaps the destination for the temp file. On POSIX the
// rename is atomic and a failure leaves the destination untouched.
// Only Windows, which refuses to rename over an existing file, takes
// the remove-then-rename path.
func replaceFile(tmpPath, destPath string) error {
	err := os.Rename(tmpPath, destPath)
	if err == nil || runtime.GOOS != "windows" {
		return err
	}
	if rerr := os.Remove(destPath); rerr != nil && !os.IsNotExist(rerr) {
		return rerr
	}
	return os.Rename(tmpPath, destPath)
}

package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"squeeze/internal/cache"
	"squeeze/internal/config"
	"squeeze/internal/processor"
	"squeeze/internal/tui"
)

var (
	runDryRun      bool
	runNoImages    bool
	runFormat      string
	runResize      string
	runConcurrency int
	runCacheDir    string
	runQuiet       bool
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <path>",
	Short: "Optimize a file or directory tree in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		cfg.DryRun = runDryRun
		cfg.DisableImages = runNoImages
		cfg.Concurrency = runConcurrency
		cfg.CacheDir = runCacheDir
		cfg.Quiet = runQuiet

		format, err := config.ParseFormat(runFormat)
		if err != nil {
			return err
		}
		cfg.ToFormat = format

		cfg.ResizeWidth, cfg.ResizeHeight, err = config.ParseResize(runResize)
		if err != nil {
			return err
		}

		paths, err := discover(args[0])
		if err != nil {
			return err
		}

		var store cache.Store = cache.NewMemoryStore()
		if cfg.CacheDir != "" {
			disk, err := cache.NewDiskStore(cfg.CacheDir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			store = disk
		}

		logger := log.New(os.Stderr)

		var updates chan processor.ProgressUpdate
		uiDone := make(chan struct{})
		if cfg.Quiet {
			close(uiDone)
		} else {
			updates = make(chan processor.ProgressUpdate, 64)
			program := tea.NewProgram(tui.NewModel(updates))
			go func() {
				_, _ = program.Run()
				close(uiDone)
			}()
		}

		runner := processor.New(&cfg, store, logger, updates)
		summary := runner.Run(context.Background(), paths)

		if updates != nil {
			close(updates)
		}
		<-uiDone

		stats := runner.PipelineStats()
		rows := []tui.SummaryRow{
			{Label: "Files processed", Value: fmt.Sprintf("%d", summary.Files())},
			{Label: "Bytes before", Value: humanize.Bytes(uint64(summary.OriginalBytes()))},
			{Label: "Bytes after", Value: humanize.Bytes(uint64(summary.FinalBytes()))},
			{Label: "Saved", Value: humanize.Bytes(uint64(summary.Saved()))},
			{Label: "Image cache hits", Value: fmt.Sprintf("%d", stats.Hits.Load())},
			{Label: "Images encoded", Value: fmt.Sprintf("%d", stats.Encodes.Load())},
			{Label: "Errors", Value: fmt.Sprintf("%d", summary.Errors())},
		}
		fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))
		fmt.Fprintln(os.Stdout, summary.ProgressText())
		if cfg.DryRun {
			fmt.Fprintln(os.Stdout, "Dry run: no files were modified.")
		}

		return nil
	},
}

// discover collects the regular files under root, or root itself when
// it is a single file. Traversal order does not matter: files complete
// in any order anyway.
func discover(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{absRoot}, nil
	}

	var paths []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func init() {
	runCmd.Flags().BoolVarP(&runDryRun, "dry-run", "n", false, "report savings without writing any file")
	runCmd.Flags().BoolVar(&runNoImages, "no-images", false, "disable image compression")
	runCmd.Flags().StringVar(&runFormat, "format", string(config.FormatUnchanged), "image output format: unchanged, webp, pjpg, or avif")
	runCmd.Flags().StringVar(&runResize, "resize", "", "resize images to WIDTHxHEIGHT with a fill fit (never enlarges)")
	runCmd.Flags().IntVarP(&runConcurrency, "concurrency", "c", 0, "max files in flight (0 = unlimited)")
	runCmd.Flags().StringVar(&runCacheDir, "cache-dir", "", "persist the image transform cache in this directory")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "disable the progress display")

	rootCmd.AddCommand(runCmd)
}

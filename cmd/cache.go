package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"squeeze/internal/cache"
)

var cacheDir string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Maintain the persistent image transform cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached image transform",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCacheDir()
		if err != nil {
			return err
		}
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Cache cleared.")
		return nil
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cached entry count and size on disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCacheDir()
		if err != nil {
			return err
		}
		entries, bytes, err := store.Stats()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%d entries, %s on disk\n", entries, humanize.Bytes(uint64(bytes)))
		return nil
	},
}

func openCacheDir() (*cache.DiskStore, error) {
	if cacheDir == "" {
		return nil, fmt.Errorf("--cache-dir is required")
	}
	return cache.NewDiskStore(cacheDir)
}

func init() {
	cacheCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "cache directory")
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatsCmd)

	rootCmd.AddCommand(cacheCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "squeeze",
	Short: "squeeze - rewrite static assets in place with smaller encodings",
	Long:  "squeeze walks a directory of images, CSS, JS, HTML, and SVG and rewrites each file with the smallest semantically-equivalent encoding it can produce.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

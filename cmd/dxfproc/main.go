package main

import (
	"fmt"
	"os"

	"github.com/geotech-assist/dxf-example/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dxfproc",
	Short: "A CLI tool for extracting and summarizing 3D mesh data from DXF files",
	Long: `dxfproc parses AutoCAD DXF files, extracts 3DFACE entities as a
triangle mesh, and reports geometric statistics such as surface area,
bounding box and centroid. Summaries can be written as JSON, text or CSV.`,
	Version: version.GetFullVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// progressPrinter writes a coarse percentage to stderr, updating on
// every tenth percent so large files show liveness without flooding
// the terminal.
func progressPrinter() func(float64) {
	lastPercent := -1
	return func(progress float64) {
		percent := int(progress * 100)
		if percent != lastPercent && percent%10 == 0 {
			fmt.Fprintf(os.Stderr, "Processing: %d%% complete\r", percent)
			lastPercent = percent
		}
		if progress >= 1.0 {
			fmt.Fprint(os.Stderr, "\n")
		}
	}
}

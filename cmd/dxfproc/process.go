package main

import (
	"fmt"
	"os"
	"time"

	"github.com/geotech-assist/dxf-example/internal/report"
	"github.com/geotech-assist/dxf-example/pkg/analysis"
	"github.com/geotech-assist/dxf-example/pkg/dxf"
	"github.com/spf13/cobra"
)

var (
	processOutputDir  string
	processFormat     string
	processSummarizer string
	processBaseName   string
	processNoStamp    bool
	processNoPretty   bool
)

var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Parse a DXF file and write a summary report",
	Long: `Parse the 3DFACE entities of a DXF file, compute summary statistics,
and write them to a JSON, text or CSV file in the output directory.`,
	Args: cobra.ExactArgs(1),
	Run:  runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&processOutputDir, "output", "o", ".", "Output directory")
	processCmd.Flags().StringVarP(&processFormat, "format", "f", "json", "Output format: json, text, csv")
	processCmd.Flags().StringVarP(&processSummarizer, "summarizer", "s", "basic", "Summarizer level: basic, detailed")
	processCmd.Flags().StringVarP(&processBaseName, "name", "n", "mesh_summary", "Output file base name")
	processCmd.Flags().BoolVar(&processNoStamp, "no-timestamp", false, "Don't include timestamp in filename and content")
	processCmd.Flags().BoolVar(&processNoPretty, "no-pretty", false, "Compact JSON output")
}

func runProcess(cmd *cobra.Command, args []string) {
	filename := args[0]
	start := time.Now()

	fmt.Printf("Processing: %s\n", filename)

	reader := dxf.NewReader()
	reader.SetProgressCallback(progressPrinter())

	mesh, err := reader.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing DXF file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Read %d triangles from DXF file.\n", mesh.TriangleCount())

	summary := analysis.Summarize(mesh, analysis.ParseLevel(processSummarizer))

	writer := report.NewWriter(report.ParseFormat(processFormat), processOutputDir)
	writer.SetIncludeTimestamp(!processNoStamp)
	writer.SetPrettyPrint(!processNoPretty)

	outputPath, err := writer.WriteFile(summary, processBaseName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing summary: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nOutput written to: %s\n", outputPath)
	fmt.Printf("Processing time: %d ms\n", time.Since(start).Milliseconds())

	size := summary.BoundingBox.Size()
	fmt.Println("\nSummary:")
	fmt.Printf("  Triangles: %d\n", summary.TriangleCount)
	fmt.Printf("  Surface Area: %.2f\n", summary.SurfaceArea)
	fmt.Printf("  Bounding Box: %s to %s\n",
		analysis.FormatVector(summary.BoundingBox.Min),
		analysis.FormatVector(summary.BoundingBox.Max))
	fmt.Printf("  Dimensions: %g x %g x %g\n", size.X, size.Y, size.Z)
}

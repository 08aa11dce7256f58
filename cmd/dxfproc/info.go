package main

import (
	"fmt"
	"os"

	"github.com/geotech-assist/dxf-example/pkg/analysis"
	"github.com/geotech-assist/dxf-example/pkg/dxf"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a DXF file",
	Long:  "Parse a DXF file and show triangle count, surface area, bounding box, dimensions and centroid.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	reader := dxf.NewReader()
	reader.SetProgressCallback(progressPrinter())

	mesh, err := reader.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing DXF file: %v\n", err)
		os.Exit(1)
	}

	summary := analysis.Summarize(mesh, analysis.Basic)

	fmt.Println("DXF File Information")
	fmt.Println("====================")
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Model Statistics:")
	fmt.Printf("  3DFACE entities: %d\n", reader.LastEntityCount())
	fmt.Printf("  Triangles: %d\n", summary.TriangleCount)
	fmt.Printf("  Surface Area: %.6f square units\n\n", summary.SurfaceArea)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(summary.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(summary.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(summary.BoundingBox.Center()))

	size := summary.BoundingBox.Size()
	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", size.X)
	fmt.Printf("  Depth (Y): %.6f units\n", size.Y)
	fmt.Printf("  Height (Z): %.6f units\n", size.Z)
	fmt.Printf("  Diagonal: %.6f units\n", summary.BoundingBox.Diagonal())
	fmt.Printf("  Volume: %.6f cubic units\n\n", summary.BoundingBox.Volume())

	fmt.Printf("Centroid: %s\n", analysis.FormatVector(summary.Centroid))
}

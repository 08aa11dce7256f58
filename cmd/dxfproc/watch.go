package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geotech-assist/dxf-example/internal/report"
	"github.com/geotech-assist/dxf-example/pkg/analysis"
	"github.com/geotech-assist/dxf-example/pkg/dxf"
	"github.com/geotech-assist/dxf-example/pkg/watcher"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-process a DXF file whenever it changes",
	Long: `Watch a DXF file and regenerate its summary report on every change.
Useful while iterating on a CAD export. Accepts the same output flags
as the process command. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&processOutputDir, "output", "o", ".", "Output directory")
	watchCmd.Flags().StringVarP(&processFormat, "format", "f", "json", "Output format: json, text, csv")
	watchCmd.Flags().StringVarP(&processSummarizer, "summarizer", "s", "basic", "Summarizer level: basic, detailed")
	watchCmd.Flags().StringVarP(&processBaseName, "name", "n", "mesh_summary", "Output file base name")
	watchCmd.Flags().BoolVar(&processNoStamp, "no-timestamp", false, "Don't include timestamp in filename and content")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Delay after the last change before re-processing")
}

func runWatch(cmd *cobra.Command, args []string) {
	filename := args[0]

	processOnce(filename)

	fw, err := watcher.New(watchDebounce)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating watcher: %v\n", err)
		os.Exit(1)
	}
	defer fw.Close()

	if err := fw.Watch([]string{filename}, func(path string) {
		fmt.Printf("\nChange detected: %s\n", path)
		processOnce(path)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error watching file: %v\n", err)
		os.Exit(1)
	}
	fw.Start()

	go func() {
		for err := range fw.Errors() {
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		}
	}()

	fmt.Printf("Watching %s (Ctrl-C to stop)\n", filename)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
}

// processOnce runs the parse/summarize/write pipeline, reporting
// failures without exiting so a broken intermediate export does not
// kill the watch loop.
func processOnce(filename string) {
	reader := dxf.NewReader()
	reader.SetProgressCallback(progressPrinter())

	mesh, err := reader.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing DXF file: %v\n", err)
		return
	}

	summary := analysis.Summarize(mesh, analysis.ParseLevel(processSummarizer))

	writer := report.NewWriter(report.ParseFormat(processFormat), processOutputDir)
	writer.SetIncludeTimestamp(!processNoStamp)

	outputPath, err := writer.WriteFile(summary, processBaseName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing summary: %v\n", err)
		return
	}

	fmt.Printf("Read %d triangles, summary written to %s\n", mesh.TriangleCount(), outputPath)
}

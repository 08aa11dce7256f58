// Package report serializes mesh summaries to JSON, text or CSV files.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/geotech-assist/dxf-example/pkg/analysis"
)

// Format selects the output serialization
type Format int

const (
	JSON Format = iota
	Text
	CSV
)

// ParseFormat maps a format name to a Format. Unknown names fall back
// to JSON.
func ParseFormat(name string) Format {
	switch name {
	case "text", "txt":
		return Text
	case "csv":
		return CSV
	default:
		return JSON
	}
}

// Extension returns the file extension for the format
func (f Format) Extension() string {
	switch f {
	case Text:
		return ".txt"
	case CSV:
		return ".csv"
	default:
		return ".json"
	}
}

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case CSV:
		return "csv"
	default:
		return "json"
	}
}

// Writer writes summaries to files in an output directory.
// The directory is created on demand; a path that exists but is not a
// directory is an error.
type Writer struct {
	format           Format
	outputDir        string
	includeTimestamp bool
	prettyPrint      bool
	lastOutputPath   string
}

// NewWriter creates a writer for the given format and output directory.
// Timestamps and pretty printing are enabled by default.
func NewWriter(format Format, outputDir string) *Writer {
	return &Writer{
		format:           format,
		outputDir:        outputDir,
		includeTimestamp: true,
		prettyPrint:      true,
	}
}

// SetIncludeTimestamp controls the timestamp in filenames and content
func (w *Writer) SetIncludeTimestamp(include bool) {
	w.includeTimestamp = include
}

// SetPrettyPrint controls JSON indentation
func (w *Writer) SetPrettyPrint(pretty bool) {
	w.prettyPrint = pretty
}

// LastOutputPath returns the absolute path of the most recent output file
func (w *Writer) LastOutputPath() string {
	return w.lastOutputPath
}

// WriteFile serializes the summary and writes it under the output
// directory as <baseName>[_timestamp].<ext>. It returns the absolute
// path of the written file.
func (w *Writer) WriteFile(summary *analysis.Summary, baseName string) (string, error) {
	if err := w.ensureOutputDir(); err != nil {
		return "", err
	}

	var content []byte
	var err error
	switch w.format {
	case Text:
		content = []byte(w.formatText(summary))
	case CSV:
		content, err = w.formatCSV(summary)
	default:
		content, err = w.formatJSON(summary)
	}
	if err != nil {
		return "", fmt.Errorf("failed to serialize summary: %w", err)
	}

	path := filepath.Join(w.outputDir, w.filename(baseName))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("cannot create output file %s: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	w.lastOutputPath = absPath
	return absPath, nil
}

func (w *Writer) ensureOutputDir() error {
	info, err := os.Stat(w.outputDir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("output path exists but is not a directory: %s", w.outputDir)
		}
		return nil
	}
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", w.outputDir, err)
	}
	return nil
}

func (w *Writer) filename(baseName string) string {
	name := baseName
	if w.includeTimestamp {
		now := time.Now()
		name += now.Format("_20060102_150405")
		name += fmt.Sprintf("_%03d", now.Nanosecond()/1e6)
	}
	return name + w.format.Extension()
}

type jsonVector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type jsonSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

type jsonBoundingBox struct {
	Min  jsonVector `json:"min"`
	Max  jsonVector `json:"max"`
	Size jsonSize   `json:"size"`
}

type jsonSummary struct {
	TriangleCount    int             `json:"triangle_count"`
	TotalSurfaceArea float64         `json:"total_surface_area"`
	BoundingBox      jsonBoundingBox `json:"bounding_box"`
	Centroid         jsonVector      `json:"centroid"`
	CustomFields     map[string]any  `json:"custom_fields,omitempty"`
	Timestamp        string          `json:"timestamp,omitempty"`
}

func (w *Writer) formatJSON(summary *analysis.Summary) ([]byte, error) {
	size := summary.BoundingBox.Size()
	doc := jsonSummary{
		TriangleCount:    summary.TriangleCount,
		TotalSurfaceArea: summary.SurfaceArea,
		BoundingBox: jsonBoundingBox{
			Min:  jsonVector{summary.BoundingBox.Min.X, summary.BoundingBox.Min.Y, summary.BoundingBox.Min.Z},
			Max:  jsonVector{summary.BoundingBox.Max.X, summary.BoundingBox.Max.Y, summary.BoundingBox.Max.Z},
			Size: jsonSize{size.X, size.Y, size.Z},
		},
		Centroid: jsonVector{summary.Centroid.X, summary.Centroid.Y, summary.Centroid.Z},
	}

	if len(summary.Fields) > 0 {
		doc.CustomFields = make(map[string]any, len(summary.Fields))
		for key, value := range summary.Fields {
			// Numeric fields are emitted as numbers. Non-finite values
			// (flat meshes make mesh_density infinite) stay strings,
			// since JSON cannot represent them.
			number, err := strconv.ParseFloat(value, 64)
			if err == nil && !math.IsInf(number, 0) && !math.IsNaN(number) {
				doc.CustomFields[key] = number
			} else {
				doc.CustomFields[key] = value
			}
		}
	}

	if w.includeTimestamp {
		doc.Timestamp = timestamp()
	}

	if w.prettyPrint {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

func (w *Writer) formatText(summary *analysis.Summary) string {
	var text strings.Builder

	text.WriteString("DXF Mesh Summary\n")
	text.WriteString("================\n\n")

	if w.includeTimestamp {
		fmt.Fprintf(&text, "Generated: %s\n\n", timestamp())
	}

	text.WriteString("Basic Statistics:\n")
	text.WriteString("-----------------\n")
	fmt.Fprintf(&text, "Triangle Count: %d\n", summary.TriangleCount)
	fmt.Fprintf(&text, "Total Surface Area: %.6f\n\n", summary.SurfaceArea)

	text.WriteString("Bounding Box:\n")
	text.WriteString("-------------\n")
	fmt.Fprintf(&text, "Min Point: %s\n", analysis.FormatVector(summary.BoundingBox.Min))
	fmt.Fprintf(&text, "Max Point: %s\n", analysis.FormatVector(summary.BoundingBox.Max))

	size := summary.BoundingBox.Size()
	fmt.Fprintf(&text, "Dimensions: %g x %g x %g\n", size.X, size.Y, size.Z)
	fmt.Fprintf(&text, "Volume: %g\n\n", summary.BoundingBox.Volume())

	fmt.Fprintf(&text, "Centroid: %s\n\n", analysis.FormatVector(summary.Centroid))

	if len(summary.Fields) > 0 {
		text.WriteString("Additional Properties:\n")
		text.WriteString("---------------------\n")
		for _, key := range summary.FieldKeys() {
			fmt.Fprintf(&text, "%s: %s\n", key, summary.Fields[key])
		}
	}

	return text.String()
}

func (w *Writer) formatCSV(summary *analysis.Summary) ([]byte, error) {
	var buffer strings.Builder
	writer := csv.NewWriter(&buffer)

	size := summary.BoundingBox.Size()
	records := [][]string{
		{"Property", "Value"},
		{"triangle_count", strconv.Itoa(summary.TriangleCount)},
		{"total_surface_area", formatFloat(summary.SurfaceArea)},
		{"bounding_box_min_x", formatFloat(summary.BoundingBox.Min.X)},
		{"bounding_box_min_y", formatFloat(summary.BoundingBox.Min.Y)},
		{"bounding_box_min_z", formatFloat(summary.BoundingBox.Min.Z)},
		{"bounding_box_max_x", formatFloat(summary.BoundingBox.Max.X)},
		{"bounding_box_max_y", formatFloat(summary.BoundingBox.Max.Y)},
		{"bounding_box_max_z", formatFloat(summary.BoundingBox.Max.Z)},
		{"width", formatFloat(size.X)},
		{"height", formatFloat(size.Y)},
		{"depth", formatFloat(size.Z)},
		{"volume", formatFloat(summary.BoundingBox.Volume())},
		{"centroid_x", formatFloat(summary.Centroid.X)},
		{"centroid_y", formatFloat(summary.Centroid.Y)},
		{"centroid_z", formatFloat(summary.Centroid.Z)},
	}

	for _, key := range summary.FieldKeys() {
		records = append(records, []string{key, summary.Fields[key]})
	}

	if w.includeTimestamp {
		records = append(records, []string{"timestamp", timestamp()})
	}

	if err := writer.WriteAll(records); err != nil {
		return nil, err
	}
	return []byte(buffer.String()), nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 6, 64)
}

func timestamp() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}

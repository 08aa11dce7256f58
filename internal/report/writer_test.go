package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/geotech-assist/dxf-example/pkg/analysis"
	"github.com/geotech-assist/dxf-example/pkg/dxf"
	"github.com/geotech-assist/dxf-example/pkg/geometry"
)

func sampleSummary() *analysis.Summary {
	mesh := dxf.NewMesh()
	mesh.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(3, 0, 0),
		geometry.NewVector3(0, 4, 2),
	))
	return analysis.Summarize(mesh, analysis.Detailed)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		expected Format
	}{
		{"json", JSON},
		{"text", Text},
		{"txt", Text},
		{"csv", CSV},
		{"", JSON},
		{"bogus", JSON},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.name); got != tt.expected {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(JSON, dir)
	writer.SetIncludeTimestamp(false)

	path, err := writer.WriteFile(sampleSummary(), "mesh_summary")
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if filepath.Ext(path) != ".json" {
		t.Errorf("expected .json extension, got %s", path)
	}
	if writer.LastOutputPath() != path {
		t.Errorf("LastOutputPath mismatch: %s vs %s", writer.LastOutputPath(), path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(content, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc["triangle_count"] != float64(1) {
		t.Errorf("unexpected triangle_count: %v", doc["triangle_count"])
	}
	if _, ok := doc["bounding_box"]; !ok {
		t.Error("missing bounding_box in JSON output")
	}
	if _, ok := doc["timestamp"]; ok {
		t.Error("timestamp must be omitted when disabled")
	}

	fields, ok := doc["custom_fields"].(map[string]any)
	if !ok {
		t.Fatal("missing custom_fields in JSON output")
	}
	if _, ok := fields["mesh_density"].(float64); !ok {
		t.Errorf("numeric custom field should be a JSON number, got %T", fields["mesh_density"])
	}
}

func TestWriteJSONFlatMesh(t *testing.T) {
	// A flat mesh has a zero-volume bounding box, making mesh_density
	// infinite; the writer must still produce valid JSON.
	mesh := dxf.NewMesh()
	mesh.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0, 1, 0),
	))
	summary := analysis.Summarize(mesh, analysis.Basic)

	writer := NewWriter(JSON, t.TempDir())
	writer.SetIncludeTimestamp(false)

	path, err := writer.WriteFile(summary, "flat")
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	content, _ := os.ReadFile(path)
	var doc map[string]any
	if err := json.Unmarshal(content, &doc); err != nil {
		t.Fatalf("flat mesh output is not valid JSON: %v", err)
	}
	fields := doc["custom_fields"].(map[string]any)
	if _, ok := fields["mesh_density"].(string); !ok {
		t.Errorf("infinite mesh_density should stay a string, got %T", fields["mesh_density"])
	}
}

func TestWriteCompactJSON(t *testing.T) {
	writer := NewWriter(JSON, t.TempDir())
	writer.SetIncludeTimestamp(false)
	writer.SetPrettyPrint(false)

	path, err := writer.WriteFile(sampleSummary(), "compact")
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	content, _ := os.ReadFile(path)
	if strings.Contains(string(content), "\n  ") {
		t.Error("compact JSON should not be indented")
	}
	var doc map[string]any
	if err := json.Unmarshal(content, &doc); err != nil {
		t.Fatalf("compact output is not valid JSON: %v", err)
	}
}

func TestWriteText(t *testing.T) {
	writer := NewWriter(Text, t.TempDir())
	writer.SetIncludeTimestamp(false)

	path, err := writer.WriteFile(sampleSummary(), "mesh_summary")
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if filepath.Ext(path) != ".txt" {
		t.Errorf("expected .txt extension, got %s", path)
	}

	content, _ := os.ReadFile(path)
	text := string(content)
	for _, want := range []string{"DXF Mesh Summary", "Triangle Count: 1", "Bounding Box:", "Centroid:"} {
		if !strings.Contains(text, want) {
			t.Errorf("text output missing %q", want)
		}
	}
	if strings.Contains(text, "Generated:") {
		t.Error("timestamp line must be omitted when disabled")
	}
}

func TestWriteCSV(t *testing.T) {
	writer := NewWriter(CSV, t.TempDir())
	writer.SetIncludeTimestamp(false)

	path, err := writer.WriteFile(sampleSummary(), "mesh_summary")
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(records) < 16 {
		t.Fatalf("expected at least 16 CSV rows, got %d", len(records))
	}
	if records[0][0] != "Property" || records[0][1] != "Value" {
		t.Errorf("unexpected CSV header: %v", records[0])
	}
	if records[1][0] != "triangle_count" || records[1][1] != "1" {
		t.Errorf("unexpected first row: %v", records[1])
	}
}

func TestTimestampedFilename(t *testing.T) {
	writer := NewWriter(JSON, t.TempDir())

	path, err := writer.WriteFile(sampleSummary(), "base")
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "base_") {
		t.Errorf("expected timestamped filename, got %s", name)
	}
	// base_YYYYMMDD_HHMMSS_mmm.json
	if parts := strings.Split(strings.TrimSuffix(name, ".json"), "_"); len(parts) != 4 {
		t.Errorf("unexpected filename shape: %s", name)
	}
}

func TestOutputDirectoryCreated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	writer := NewWriter(JSON, dir)

	if _, err := writer.WriteFile(sampleSummary(), "mesh_summary"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("output directory was not created: %v", err)
	}
}

func TestOutputPathNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	writer := NewWriter(JSON, file)
	if _, err := writer.WriteFile(sampleSummary(), "mesh_summary"); err == nil {
		t.Error("expected an error when the output path is a file")
	}
}

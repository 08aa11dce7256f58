package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/geotech-assist/dxf-example/pkg/dxf"
	"github.com/geotech-assist/dxf-example/pkg/geometry"
)

// Level selects how much statistical detail a summary carries.
// There is exactly one summarization algorithm; Detailed is a superset
// of Basic, not a different strategy.
type Level int

const (
	// Basic computes counts, bounds, surface area and centroid plus a
	// small set of derived fields.
	Basic Level = iota
	// Detailed adds volume estimation and triangle area distribution.
	Detailed
)

// ParseLevel maps a level name to a Level. Unknown names fall back to
// Basic rather than failing.
func ParseLevel(name string) Level {
	if name == "detailed" {
		return Detailed
	}
	return Basic
}

func (l Level) String() string {
	if l == Detailed {
		return "detailed"
	}
	return "basic"
}

// Summary holds the aggregate statistics of a parsed mesh.
// Fields carries derived key/value statistics; writers emit its keys in
// sorted order so output is deterministic.
type Summary struct {
	TriangleCount int
	SurfaceArea   float64
	BoundingBox   geometry.BoundingBox
	Centroid      geometry.Vector3
	Fields        map[string]string
}

// FieldKeys returns the derived field names in sorted order
func (s *Summary) FieldKeys() []string {
	keys := make([]string, 0, len(s.Fields))
	for key := range s.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Summarize computes summary statistics for a mesh at the given level
func Summarize(mesh *dxf.Mesh, level Level) *Summary {
	summary := &Summary{
		TriangleCount: mesh.TriangleCount(),
		SurfaceArea:   mesh.SurfaceArea(),
		BoundingBox:   mesh.BoundingBox(),
		Centroid:      centroid(mesh),
		Fields:        make(map[string]string),
	}

	if mesh.IsEmpty() {
		return summary
	}

	count := float64(summary.TriangleCount)
	boxVolume := summary.BoundingBox.Volume()
	size := summary.BoundingBox.Size()

	summary.Fields["mesh_density"] = formatFloat(count / boxVolume)
	summary.Fields["average_triangle_area"] = formatFloat(summary.SurfaceArea / count)
	summary.Fields["bounding_box_volume"] = formatFloat(boxVolume)
	summary.Fields["width"] = formatFloat(size.X)
	summary.Fields["height"] = formatFloat(size.Y)
	summary.Fields["depth"] = formatFloat(size.Z)

	if level == Detailed {
		addDetailedFields(mesh, summary)
	}

	return summary
}

// addDetailedFields computes volume and triangle area distribution stats
func addDetailedFields(mesh *dxf.Mesh, summary *Summary) {
	summary.Fields["volume_estimate"] = formatFloat(volumeEstimate(mesh))

	minArea := math.MaxFloat64
	maxArea := -math.MaxFloat64
	for _, triangle := range mesh.Triangles {
		area := triangle.Area()
		minArea = math.Min(minArea, area)
		maxArea = math.Max(maxArea, area)
	}
	summary.Fields["min_triangle_area"] = formatFloat(minArea)
	summary.Fields["max_triangle_area"] = formatFloat(maxArea)
	summary.Fields["triangle_area_variance"] = formatFloat(maxArea - minArea)

	summary.Fields["compactness_ratio"] = formatFloat(
		summary.SurfaceArea / summary.BoundingBox.Volume())

	count := float64(summary.TriangleCount)
	avgArea := summary.SurfaceArea / count
	summary.Fields["average_triangle_area_detailed"] = formatFloat(avgArea)

	smallTriangles := 0
	largeTriangles := 0
	for _, triangle := range mesh.Triangles {
		area := triangle.Area()
		if area < avgArea*0.5 {
			smallTriangles++
		}
		if area > avgArea*2.0 {
			largeTriangles++
		}
	}
	summary.Fields["small_triangles_count"] = strconv.Itoa(smallTriangles)
	summary.Fields["large_triangles_count"] = strconv.Itoa(largeTriangles)
	summary.Fields["small_triangles_percentage"] = formatFloat(float64(smallTriangles) / count * 100.0)
	summary.Fields["large_triangles_percentage"] = formatFloat(float64(largeTriangles) / count * 100.0)
}

// centroid returns the area-weighted centroid of all triangle centers.
// A mesh of only degenerate triangles has centroid at the origin.
func centroid(mesh *dxf.Mesh) geometry.Vector3 {
	if mesh.IsEmpty() {
		return geometry.Vector3{}
	}

	var weighted geometry.Vector3
	totalArea := 0.0
	for _, triangle := range mesh.Triangles {
		area := triangle.Area()
		weighted = weighted.Add(triangle.Center().Mul(area))
		totalArea += area
	}

	if totalArea > 0 {
		weighted = weighted.Mul(1.0 / totalArea)
	}
	return weighted
}

// volumeEstimate sums signed tetrahedron volumes against the origin.
// Exact for closed meshes with consistent winding, an estimate otherwise.
func volumeEstimate(mesh *dxf.Mesh) float64 {
	volume := 0.0
	for _, triangle := range mesh.Triangles {
		volume += triangle.V1.Dot(triangle.V2.Cross(triangle.V3)) / 6.0
	}
	return math.Abs(volume)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 6, 64)
}

// FormatVector formats a 3D vector for display
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}

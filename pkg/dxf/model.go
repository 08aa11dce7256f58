package dxf

import (
	"github.com/geotech-assist/dxf-example/pkg/geometry"
)

// Mesh holds the triangles extracted from a DXF file.
// Triangles are appended in file order during parsing; the order carries
// no meaning afterwards. A Mesh is not mutated once the reader returns it.
type Mesh struct {
	Triangles []geometry.Triangle
}

// NewMesh creates a new empty mesh
func NewMesh() *Mesh {
	return &Mesh{
		Triangles: make([]geometry.Triangle, 0),
	}
}

// Reserve grows the underlying capacity so that at least n triangles can
// be appended without reallocation. A hint only; never shrinks.
func (m *Mesh) Reserve(n int) {
	if cap(m.Triangles) < n {
		triangles := make([]geometry.Triangle, len(m.Triangles), n)
		copy(triangles, m.Triangles)
		m.Triangles = triangles
	}
}

// AddTriangle adds a triangle to the mesh
func (m *Mesh) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// IsEmpty reports whether the mesh contains no triangles
func (m *Mesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// BoundingBox calculates the bounding box of the entire mesh
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the mesh
func (m *Mesh) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}

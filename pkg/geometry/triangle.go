package geometry

// Triangle represents a triangular face in 3D space.
// Vertex order matters: the normal direction follows the winding
// of V1, V2, V3 by the right-hand rule. The zero value is a
// degenerate triangle at the origin with zero area.
type Triangle struct {
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v1, v2, v3 Vector3) Triangle {
	return Triangle{V1: v1, V2: v2, V3: v3}
}

// Normal returns the triangle normal (V2-V1) x (V3-V1).
// The result is not normalized; its magnitude is twice the area.
func (t Triangle) Normal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2)
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.Normal().Length() / 2.0
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return t.V1.Add(t.V2).Add(t.V3).Mul(1.0 / 3.0)
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float64 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

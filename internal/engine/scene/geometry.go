package scene

// Geometry is an indexed triangle mesh: packed vertex positions, texture
// coordinates and a triangle index list.
type Geometry struct {
	// Positions holds XYZ triples, one per vertex.
	Positions []float32
	// UVs holds texture coordinate pairs, one per vertex.
	UVs []float32
	// Indices holds triangle corner indices into the vertex arrays.
	Indices []uint32

	disposed bool
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// Dispose releases the vertex data. Safe to call more than once.
func (g *Geometry) Dispose() {
	g.Positions = nil
	g.UVs = nil
	g.Indices = nil
	g.disposed = true
}

// Disposed reports whether Dispose has been called.
func (g *Geometry) Disposed() bool {
	return g.disposed
}

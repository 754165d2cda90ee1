package scene

// Mesh pairs a geometry with a material as a drawable scene node.
type Mesh struct {
	Node

	Geometry *Geometry
	Material *Material
}

// NewMesh creates a mesh node from a geometry and a material.
func NewMesh(name string, geom *Geometry, mat *Material) *Mesh {
	return &Mesh{
		Node:     *NewNode(name),
		Geometry: geom,
		Material: mat,
	}
}

// Package scene provides headless scene-graph primitives with explicit
// resource lifecycle: nodes, textures, materials, geometries and meshes.
// Resources hold CPU-side data only; a rendering backend uploads them.
package scene

import "github.com/go-gl/mathgl/mgl64"

// Pose is a position and orientation in some reference frame.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// IdentityPose returns a pose at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Orientation: mgl64.QuatIdent()}
}

// Node is the base element of the scene graph. It carries a name, a pose
// relative to its parent, a visibility flag and an ordered child list.
type Node struct {
	Name    string
	Pose    Pose
	Visible bool

	children []*Node
}

// NewNode creates a visible node with an identity pose.
func NewNode(name string) *Node {
	return &Node{
		Name:    name,
		Pose:    IdentityPose(),
		Visible: true,
	}
}

// Add appends child to the node's child list. Nil children are ignored.
func (n *Node) Add(child *Node) {
	if child == nil {
		return
	}
	n.children = append(n.children, child)
}

// Remove detaches child from the node's child list. Removing a node that is
// not a child is a no-op.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// RemoveAll detaches every child.
func (n *Node) RemoveAll() {
	n.children = nil
}

// Children returns the node's child list. The slice is owned by the node and
// must not be mutated by callers.
func (n *Node) Children() []*Node {
	return n.children
}

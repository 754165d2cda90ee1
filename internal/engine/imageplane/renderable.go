package imageplane

import (
	"github.com/visnova/camviz/internal/engine/scene"
	"github.com/visnova/camviz/internal/msg"
)

// Renderable is the scene object displaying one image topic as a textured
// plane. It exclusively owns its texture, material and geometry; the mesh
// exists only while both geometry and material do. All mutation goes through
// the Manager.
type Renderable struct {
	scene.Node

	Topic    string
	Settings Settings

	image *msg.Image

	texture  *scene.Texture
	material *scene.Material
	geometry *scene.Geometry
	mesh     *scene.Mesh

	// decodeGeneration tags in-flight bitmap decodes; completions carrying
	// an older generation are discarded.
	decodeGeneration uint64
}

func newRenderable(topic string, settings Settings) *Renderable {
	return &Renderable{
		Node:     *scene.NewNode(topic),
		Topic:    topic,
		Settings: settings,
	}
}

// Image returns the most recent image message, if any.
func (r *Renderable) Image() *msg.Image { return r.image }

// Texture returns the current texture resource, if any.
func (r *Renderable) Texture() *scene.Texture { return r.texture }

// Material returns the current material resource, if any.
func (r *Renderable) Material() *scene.Material { return r.material }

// Geometry returns the current geometry resource, if any.
func (r *Renderable) Geometry() *scene.Geometry { return r.geometry }

// Mesh returns the attached mesh, if any.
func (r *Renderable) Mesh() *scene.Mesh { return r.mesh }

// detachMesh removes the mesh from the scene graph and drops the reference.
// Geometry and material stay alive; the mesh is only their pairing.
func (r *Renderable) detachMesh() {
	if r.mesh == nil {
		return
	}
	r.Remove(&r.mesh.Node)
	r.mesh = nil
}

// attachMesh pairs the current geometry and material into a mesh when both
// exist and none is attached yet.
func (r *Renderable) attachMesh() {
	if r.mesh != nil || r.geometry == nil || r.material == nil {
		return
	}
	r.mesh = scene.NewMesh(r.Topic, r.geometry, r.material)
	r.Add(&r.mesh.Node)
}

// disposeResources releases everything the renderable owns. Used on manager
// disposal; partial releases during reconciliation are done inline.
func (r *Renderable) disposeResources() {
	r.detachMesh()
	if r.texture != nil {
		r.texture.Dispose()
		r.texture = nil
	}
	if r.material != nil {
		r.material.Dispose()
		r.material = nil
	}
	if r.geometry != nil {
		r.geometry.Dispose()
		r.geometry = nil
	}
	r.RemoveAll()
}

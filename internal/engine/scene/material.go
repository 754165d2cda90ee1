package scene

// Material describes how a mesh surface is shaded: an optional texture map
// modulated by a tint color, with blending and depth state derived from the
// tint's alpha.
type Material struct {
	Texture *Texture
	Color   Color

	Transparent bool
	DepthWrite  bool
	DoubleSided bool

	disposed bool
}

// NewMaterial builds a material from a texture (may be nil) and a tint.
// A tint alpha below one yields a transparent material with depth writes
// disabled; otherwise the material is opaque and writes depth. Both faces
// are always rendered.
func NewMaterial(tex *Texture, tint Color) *Material {
	return &Material{
		Texture:     tex,
		Color:       tint,
		Transparent: tint.A < 1,
		DepthWrite:  tint.A >= 1,
		DoubleSided: true,
	}
}

// Dispose releases the material. The texture is not disposed; textures are
// owned by whoever created them and may outlive several materials.
func (m *Material) Dispose() {
	m.Texture = nil
	m.disposed = true
}

// Disposed reports whether Dispose has been called.
func (m *Material) Disposed() bool {
	return m.disposed
}

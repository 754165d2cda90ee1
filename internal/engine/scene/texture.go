package scene

import "image"

// Filter selects a texture sampling filter.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
	FilterLinearMipmapLinear
)

// Wrap selects the texture coordinate wrap mode.
type Wrap int

const (
	WrapClampToEdge Wrap = iota
	WrapRepeat
)

// ColorSpace selects how texel values are interpreted.
type ColorSpace int

const (
	ColorSpaceSRGB ColorSpace = iota
	ColorSpaceLinear
)

// TextureParams describe sampling state for a texture.
type TextureParams struct {
	MagFilter  Filter
	MinFilter  Filter
	WrapS      Wrap
	WrapT      Wrap
	ColorSpace ColorSpace
}

// Texture is an image resource. The pixel data can be replaced in place with
// Update, which bumps Version so a backend knows to re-upload.
type Texture struct {
	Image  *image.RGBA
	Params TextureParams

	// Version increments on every pixel update.
	Version uint64

	disposed bool
}

// NewTexture creates a texture from decoded pixels with the given sampling
// parameters.
func NewTexture(img *image.RGBA, params TextureParams) *Texture {
	return &Texture{Image: img, Params: params}
}

// Update replaces the texture pixels and bumps the version. Updating a
// disposed texture is a no-op.
func (t *Texture) Update(img *image.RGBA) {
	if t.disposed {
		return
	}
	t.Image = img
	t.Version++
}

// Dispose releases the pixel data. Safe to call more than once.
func (t *Texture) Dispose() {
	t.Image = nil
	t.disposed = true
}

// Disposed reports whether Dispose has been called.
func (t *Texture) Disposed() bool {
	return t.disposed
}

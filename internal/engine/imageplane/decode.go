package imageplane

import (
	"bytes"
	"image"

	// Codecs the texture pipeline can decode. Stdlib decoders cover the
	// common compressed camera formats; x/image adds the rest.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"github.com/visnova/camviz/internal/engine/scene"
)

// decodeResult carries a finished bitmap decode back into the manager's
// single-threaded context. generation ties the result to the decode request
// so results for replaced or removed renderables can be dropped.
type decodeResult struct {
	topic      string
	generation uint64
	bitmap     *image.RGBA
	err        error
}

// decodeBitmap decodes compressed image bytes into RGBA pixels. The decoded
// values are sRGB, matching the default texture color space.
func decodeBitmap(data []byte, format string) (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %q image", format)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}

// defaultTextureParams is the sampling state for image-plane textures:
// crisp magnification, mipmapped minification, no tiling.
func defaultTextureParams() scene.TextureParams {
	return scene.TextureParams{
		MagFilter:  scene.FilterNearest,
		MinFilter:  scene.FilterLinearMipmapLinear,
		WrapS:      scene.WrapClampToEdge,
		WrapT:      scene.WrapClampToEdge,
		ColorSpace: scene.ColorSpaceSRGB,
	}
}

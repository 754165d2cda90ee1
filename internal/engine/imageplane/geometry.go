package imageplane

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/visnova/camviz/internal/engine/camera"
	"github.com/visnova/camviz/internal/engine/scene"
)

// depthEpsilon is subtracted from the projected depth so the image plane
// does not z-fight with geometry placed exactly at the configured distance.
const depthEpsilon = 1e-3

// BuildImageGeometry constructs the image-plane quad for a calibrated
// camera. Each corner pixel of the image is rectified, projected to a ray
// and pushed out along it by distance; UVs map the full image onto the quad
// without a vertical flip. Pure function of (model, distance).
func BuildImageGeometry(model camera.Model, distance float64) *scene.Geometry {
	w := float64(model.Width())
	h := float64(model.Height())

	corners := [4]mgl64.Vec2{
		{0, 0},
		{w, 0},
		{0, h},
		{w, h},
	}

	positions := make([]float32, 0, 4*3)
	for _, px := range corners {
		p := model.PixelToRay(model.Rectify(px)).Mul(distance)
		positions = append(positions,
			float32(p.X()),
			float32(p.Y()),
			float32(p.Z()-depthEpsilon),
		)
	}

	return &scene.Geometry{
		Positions: positions,
		UVs: []float32{
			0, 0,
			1, 0,
			0, 1,
			1, 1,
		},
		Indices: []uint32{0, 1, 2, 1, 3, 2},
	}
}

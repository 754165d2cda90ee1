// Package camera provides camera calibration models: pixel rectification and
// pixel-to-ray projection derived from per-topic calibration messages.
package camera

import "github.com/go-gl/mathgl/mgl64"

// Model is the projection capability the image-plane layer needs from a
// calibrated camera: image dimensions, lens-distortion correction for a pixel
// coordinate, and projection of a rectified pixel to a ray through the
// camera origin.
type Model interface {
	// Width and Height are the calibrated image size in pixels.
	Width() int
	Height() int

	// Rectify corrects a distorted pixel coordinate for lens distortion.
	Rectify(px mgl64.Vec2) mgl64.Vec2

	// PixelToRay projects a rectified pixel coordinate to a unit ray in the
	// camera frame (+Z forward).
	PixelToRay(px mgl64.Vec2) mgl64.Vec3
}

package camera

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/visnova/camviz/internal/msg"
)

// Distortion model names as they appear in calibration messages.
const (
	DistortionPlumbBob           = "plumb_bob"
	DistortionRationalPolynomial = "rational_polynomial"
)

// Pinhole is a calibrated pinhole camera. Intrinsics come from the projection
// matrix P (falling back to K when P is all zeros); distortion coefficients
// come from D and are inverted iteratively during rectification.
type Pinhole struct {
	width  int
	height int

	// Intrinsics of the raw image (K) used for undistortion.
	kfx, kfy, kcx, kcy float64
	// Intrinsics of the rectified image (P) used for ray projection.
	fx, fy, cx, cy float64

	// Distortion coefficients: radial k1..k6, tangential p1 p2.
	k1, k2, k3, k4, k5, k6 float64
	p1, p2                 float64
}

// NewPinhole builds a pinhole model from a calibration message.
func NewPinhole(info *msg.CameraInfo) (*Pinhole, error) {
	if info == nil {
		return nil, errors.New("nil camera info")
	}
	if info.Width == 0 || info.Height == 0 {
		return nil, errors.Errorf("invalid calibration size %dx%d", info.Width, info.Height)
	}

	m := &Pinhole{
		width:  int(info.Width),
		height: int(info.Height),
		kfx:    info.K[0],
		kfy:    info.K[4],
		kcx:    info.K[2],
		kcy:    info.K[5],
		fx:     info.P[0],
		fy:     info.P[5],
		cx:     info.P[2],
		cy:     info.P[6],
	}
	// Some drivers publish an empty P; fall back to K.
	if m.fx == 0 && m.fy == 0 {
		m.fx, m.fy, m.cx, m.cy = m.kfx, m.kfy, m.kcx, m.kcy
	}
	if m.kfx == 0 && m.kfy == 0 {
		m.kfx, m.kfy, m.kcx, m.kcy = m.fx, m.fy, m.cx, m.cy
	}
	if m.fx <= 0 || m.fy <= 0 {
		return nil, errors.Errorf("invalid focal lengths fx=%v fy=%v", m.fx, m.fy)
	}

	switch info.DistortionModel {
	case DistortionPlumbBob, "":
		d := pad(info.D, 5)
		m.k1, m.k2, m.p1, m.p2, m.k3 = d[0], d[1], d[2], d[3], d[4]
	case DistortionRationalPolynomial:
		d := pad(info.D, 8)
		m.k1, m.k2, m.p1, m.p2, m.k3 = d[0], d[1], d[2], d[3], d[4]
		m.k4, m.k5, m.k6 = d[5], d[6], d[7]
	default:
		return nil, errors.Errorf("unsupported distortion model %q", info.DistortionModel)
	}

	return m, nil
}

func pad(d []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, d)
	return out
}

// Width returns the calibrated image width in pixels.
func (m *Pinhole) Width() int { return m.width }

// Height returns the calibrated image height in pixels.
func (m *Pinhole) Height() int { return m.height }

// Rectify corrects a pixel coordinate for lens distortion. The distorted
// pixel is normalized through K, the distortion model is inverted by
// fixed-point iteration, and the result is reprojected through the rectified
// intrinsics.
func (m *Pinhole) Rectify(px mgl64.Vec2) mgl64.Vec2 {
	xd := (px.X() - m.kcx) / m.kfx
	yd := (px.Y() - m.kcy) / m.kfy

	x, y := xd, yd
	const maxIterations = 20
	const tolerance = 1e-12
	for i := 0; i < maxIterations; i++ {
		r2 := x*x + y*y
		r4 := r2 * r2
		r6 := r4 * r2

		radial := (1 + m.k1*r2 + m.k2*r4 + m.k3*r6)
		denom := (1 + m.k4*r2 + m.k5*r4 + m.k6*r6)
		if radial == 0 || denom == 0 {
			break
		}
		icdist := denom / radial

		deltaX := 2*m.p1*x*y + m.p2*(r2+2*x*x)
		deltaY := m.p1*(r2+2*y*y) + 2*m.p2*x*y

		xn := (xd - deltaX) * icdist
		yn := (yd - deltaY) * icdist

		dx, dy := xn-x, yn-y
		x, y = xn, yn
		if dx*dx+dy*dy < tolerance {
			break
		}
	}

	return mgl64.Vec2{x*m.fx + m.cx, y*m.fy + m.cy}
}

// PixelToRay projects a rectified pixel to a unit ray in the camera frame.
func (m *Pinhole) PixelToRay(px mgl64.Vec2) mgl64.Vec3 {
	ray := mgl64.Vec3{
		(px.X() - m.cx) / m.fx,
		(px.Y() - m.cy) / m.fy,
		1,
	}
	return ray.Normalize()
}

package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/visnova/camviz/internal/msg"
)

func testInfo() *msg.CameraInfo {
	return &msg.CameraInfo{
		Width:           640,
		Height:          480,
		DistortionModel: DistortionPlumbBob,
		D:               []float64{0, 0, 0, 0, 0},
		K: [9]float64{
			500, 0, 320,
			0, 500, 240,
			0, 0, 1,
		},
		P: [12]float64{
			500, 0, 320, 0,
			0, 500, 240, 0,
			0, 0, 1, 0,
		},
	}
}

func TestNewPinholeValidation(t *testing.T) {
	if _, err := NewPinhole(nil); err == nil {
		t.Error("expected error for nil info")
	}

	info := testInfo()
	info.Width = 0
	if _, err := NewPinhole(info); err == nil {
		t.Error("expected error for zero width")
	}

	info = testInfo()
	info.DistortionModel = "equidistant"
	if _, err := NewPinhole(info); err == nil {
		t.Error("expected error for unsupported distortion model")
	}
}

func TestPinholeFallsBackToK(t *testing.T) {
	info := testInfo()
	info.P = [12]float64{}
	m, err := NewPinhole(info)
	if err != nil {
		t.Fatalf("NewPinhole: %v", err)
	}
	ray := m.PixelToRay(mgl64.Vec2{320, 240})
	if math.Abs(ray.Z()-1) > 1e-9 {
		t.Errorf("expected principal-point ray along +Z, got %v", ray)
	}
}

func TestRectifyWithoutDistortionIsIdentity(t *testing.T) {
	m, err := NewPinhole(testInfo())
	if err != nil {
		t.Fatalf("NewPinhole: %v", err)
	}

	for _, px := range []mgl64.Vec2{{0, 0}, {320, 240}, {640, 480}, {17, 451}} {
		got := m.Rectify(px)
		if math.Abs(got.X()-px.X()) > 1e-9 || math.Abs(got.Y()-px.Y()) > 1e-9 {
			t.Errorf("Rectify(%v) = %v, want identity", px, got)
		}
	}
}

// distort applies the forward plumb_bob model, so rectification can be
// checked as its inverse.
func distort(m *Pinhole, px mgl64.Vec2) mgl64.Vec2 {
	x := (px.X() - m.kcx) / m.kfx
	y := (px.Y() - m.kcy) / m.kfy
	r2 := x*x + y*y
	radial := 1 + m.k1*r2 + m.k2*r2*r2 + m.k3*r2*r2*r2
	xd := x*radial + 2*m.p1*x*y + m.p2*(r2+2*x*x)
	yd := y*radial + m.p1*(r2+2*y*y) + 2*m.p2*x*y
	return mgl64.Vec2{xd*m.kfx + m.kcx, yd*m.kfy + m.kcy}
}

func TestRectifyInvertsDistortion(t *testing.T) {
	info := testInfo()
	info.D = []float64{-0.2, 0.05, 0.001, -0.001, 0}
	m, err := NewPinhole(info)
	if err != nil {
		t.Fatalf("NewPinhole: %v", err)
	}

	for _, px := range []mgl64.Vec2{{320, 240}, {100, 100}, {500, 400}} {
		distorted := distort(m, px)
		rectified := m.Rectify(distorted)
		if math.Abs(rectified.X()-px.X()) > 1e-3 || math.Abs(rectified.Y()-px.Y()) > 1e-3 {
			t.Errorf("Rectify(distort(%v)) = %v, want original", px, rectified)
		}
	}
}

func TestPixelToRay(t *testing.T) {
	m, err := NewPinhole(testInfo())
	if err != nil {
		t.Fatalf("NewPinhole: %v", err)
	}

	// Principal point projects straight ahead.
	ray := m.PixelToRay(mgl64.Vec2{320, 240})
	if math.Abs(ray.X()) > 1e-9 || math.Abs(ray.Y()) > 1e-9 || math.Abs(ray.Z()-1) > 1e-9 {
		t.Errorf("expected +Z ray at principal point, got %v", ray)
	}

	// Rays are unit length.
	for _, px := range []mgl64.Vec2{{0, 0}, {640, 480}, {10, 300}} {
		if l := m.PixelToRay(px).Len(); math.Abs(l-1) > 1e-9 {
			t.Errorf("PixelToRay(%v) length %v, want 1", px, l)
		}
	}

	// A pixel right of the principal point yields a ray leaning +X.
	ray = m.PixelToRay(mgl64.Vec2{420, 240})
	if ray.X() <= 0 {
		t.Errorf("expected positive X component, got %v", ray)
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.ModelForTopic("cam/info"); ok {
		t.Error("expected miss before calibration seen")
	}

	m, err := NewPinhole(testInfo())
	if err != nil {
		t.Fatalf("NewPinhole: %v", err)
	}
	reg.Update("cam/info", m)

	got, ok := reg.ModelForTopic("cam/info")
	if !ok {
		t.Fatal("expected hit after update")
	}
	if got.Width() != 640 || got.Height() != 480 {
		t.Errorf("unexpected model size %dx%d", got.Width(), got.Height())
	}
}

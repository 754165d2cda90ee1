package transform

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/visnova/camviz/internal/engine/scene"
)

func translation(x, y, z float64) scene.Pose {
	return scene.Pose{
		Position:    mgl64.Vec3{x, y, z},
		Orientation: mgl64.QuatIdent(),
	}
}

func approxEqual(a, b mgl64.Vec3) bool {
	return math.Abs(a.X()-b.X()) < 1e-9 &&
		math.Abs(a.Y()-b.Y()) < 1e-9 &&
		math.Abs(a.Z()-b.Z()) < 1e-9
}

func TestResolveChain(t *testing.T) {
	tree := NewTree()
	tree.AddTransform("world", "base", translation(1, 0, 0))
	tree.AddTransform("base", "cam", translation(0, 2, 0))

	pose := scene.IdentityPose()
	if !tree.UpdatePose(&pose, "world", "world", "cam", time.Now(), time.Now()) {
		t.Fatal("expected resolution to succeed")
	}
	if !approxEqual(pose.Position, mgl64.Vec3{1, 2, 0}) {
		t.Errorf("expected position (1,2,0), got %v", pose.Position)
	}
}

func TestResolveIntoNonRootFrame(t *testing.T) {
	tree := NewTree()
	tree.AddTransform("world", "base", translation(1, 0, 0))
	tree.AddTransform("world", "cam", translation(4, 0, 0))

	pose := scene.IdentityPose()
	if !tree.UpdatePose(&pose, "base", "world", "cam", time.Now(), time.Now()) {
		t.Fatal("expected resolution to succeed")
	}
	if !approxEqual(pose.Position, mgl64.Vec3{3, 0, 0}) {
		t.Errorf("expected position (3,0,0), got %v", pose.Position)
	}
}

func TestResolveWithRotation(t *testing.T) {
	tree := NewTree()
	// base is rotated 90 degrees about Z in world.
	tree.AddTransform("world", "base", scene.Pose{
		Orientation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}),
	})
	tree.AddTransform("base", "cam", translation(1, 0, 0))

	pose := scene.IdentityPose()
	if !tree.UpdatePose(&pose, "world", "world", "cam", time.Now(), time.Now()) {
		t.Fatal("expected resolution to succeed")
	}
	if !approxEqual(pose.Position, mgl64.Vec3{0, 1, 0}) {
		t.Errorf("expected position (0,1,0), got %v", pose.Position)
	}
}

func TestResolveFailures(t *testing.T) {
	tree := NewTree()
	tree.AddTransform("world", "base", translation(1, 0, 0))
	tree.AddTransform("island", "cam", translation(0, 1, 0))

	pose := scene.IdentityPose()
	if tree.UpdatePose(&pose, "world", "world", "missing", time.Now(), time.Now()) {
		t.Error("expected failure for unknown source frame")
	}
	if tree.UpdatePose(&pose, "missing", "missing", "base", time.Now(), time.Now()) {
		t.Error("expected failure for unknown render frame")
	}
	// Two disjoint trees never resolve against each other.
	if tree.UpdatePose(&pose, "world", "world", "cam", time.Now(), time.Now()) {
		t.Error("expected failure across disconnected trees")
	}
}

func TestHasFrame(t *testing.T) {
	tree := NewTree()
	tree.AddTransform("world", "base", translation(0, 0, 0))

	if !tree.HasFrame("world") || !tree.HasFrame("base") {
		t.Error("expected both ends of a transform to be known frames")
	}
	if tree.HasFrame("cam") {
		t.Error("expected unknown frame to be reported missing")
	}
}

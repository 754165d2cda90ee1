// Package transform resolves poses between named coordinate frames using a
// tree of static parent-child transforms.
package transform

import (
	"sync"
	"time"

	"github.com/visnova/camviz/internal/engine/scene"
)

type edge struct {
	parent string
	pose   scene.Pose
}

// Tree is a static transform tree. Each frame has at most one parent; roots
// are frames that never appear as a child.
type Tree struct {
	mu     sync.RWMutex
	frames map[string]edge
}

// NewTree creates an empty transform tree.
func NewTree() *Tree {
	return &Tree{frames: make(map[string]edge)}
}

// AddTransform records child's pose relative to parent, replacing any
// previous transform for child.
func (t *Tree) AddTransform(parent, child string, pose scene.Pose) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frames[child] = edge{parent: parent, pose: pose}
}

// HasFrame reports whether frame is known to the tree, either as a child or
// as a parent of some child.
func (t *Tree) HasFrame(frame string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.hasFrameLocked(frame)
}

func (t *Tree) hasFrameLocked(frame string) bool {
	if _, ok := t.frames[frame]; ok {
		return true
	}
	for _, e := range t.frames {
		if e.parent == frame {
			return true
		}
	}
	return false
}

// UpdatePose resolves sourceFrame's pose in renderFrame and writes it to
// pose, returning false when either frame is unknown or the frames are not
// connected. The tree is static, so fixedFrame and the timestamps do not
// affect the result; they are part of the resolver contract.
func (t *Tree) UpdatePose(pose *scene.Pose, renderFrame, fixedFrame, sourceFrame string, currentTime, sourceTime time.Time) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	srcRoot, srcPose, ok := t.poseInRootLocked(sourceFrame)
	if !ok {
		return false
	}
	dstRoot, dstPose, ok := t.poseInRootLocked(renderFrame)
	if !ok || srcRoot != dstRoot {
		return false
	}

	*pose = compose(invert(dstPose), srcPose)
	return true
}

// poseInRootLocked accumulates frame's pose up to its root frame.
func (t *Tree) poseInRootLocked(frame string) (root string, pose scene.Pose, ok bool) {
	if !t.hasFrameLocked(frame) {
		return "", scene.Pose{}, false
	}
	pose = scene.IdentityPose()
	cur := frame
	// Bounded walk to guard against accidental cycles.
	for i := 0; i <= len(t.frames); i++ {
		e, exists := t.frames[cur]
		if !exists {
			return cur, pose, true
		}
		pose = compose(e.pose, pose)
		cur = e.parent
	}
	return "", scene.Pose{}, false
}

// compose returns the pose of b expressed through a (a then b).
func compose(a, b scene.Pose) scene.Pose {
	return scene.Pose{
		Position:    a.Position.Add(a.Orientation.Rotate(b.Position)),
		Orientation: a.Orientation.Mul(b.Orientation).Normalize(),
	}
}

// invert returns the inverse pose.
func invert(p scene.Pose) scene.Pose {
	inv := p.Orientation.Inverse()
	return scene.Pose{
		Position:    inv.Rotate(p.Position).Mul(-1),
		Orientation: inv,
	}
}

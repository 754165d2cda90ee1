// Package msg defines the wire-level message types consumed by the viewer:
// camera images and camera calibration data, plus their timestamps.
package msg

import "time"

// ImageKind discriminates the image message variants. Every image carries an
// explicit kind so handling code branches on the tag, never on which fields
// happen to be populated.
type ImageKind int

const (
	// KindCompressed is an image encoded as a compressed byte stream
	// (jpeg, png, webp, ...). Data holds the full file bytes and Format
	// names the container.
	KindCompressed ImageKind = iota
	// KindRaw is an uncompressed pixel buffer (rgb8, bgra8, mono16, ...).
	// Raw images are not supported by the image-plane layer and must be
	// rejected loudly rather than silently skipped.
	KindRaw
)

// String returns the kind name for logs and errors.
func (k ImageKind) String() string {
	switch k {
	case KindCompressed:
		return "compressed"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Image is a single camera image message. The Kind tag selects which of the
// variant fields are meaningful: Format for compressed images, Encoding plus
// Width/Height/Step for raw ones. Data is owned by the message and never
// mutated after receipt.
type Image struct {
	// FrameID is the transform frame the image was captured in.
	FrameID string
	// Stamp is the source capture time.
	Stamp time.Time

	Kind ImageKind

	// Format is the compressed container name ("jpeg", "png", ...).
	Format string

	// Encoding is the raw pixel layout ("rgb8", "mono8", ...).
	Encoding string
	Width    uint32
	Height   uint32
	Step     uint32

	Data []byte
}

// CameraInfo is a camera calibration message in the conventional layout:
// D holds distortion coefficients for DistortionModel, K the 3x3 intrinsic
// matrix, R the 3x3 rectification matrix and P the 3x4 projection matrix,
// all row-major.
type CameraInfo struct {
	FrameID string
	Stamp   time.Time

	Width  uint32
	Height uint32

	DistortionModel string
	D               []float64
	K               [9]float64
	R               [9]float64
	P               [12]float64
}

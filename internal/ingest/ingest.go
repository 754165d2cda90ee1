// Package ingest subscribes to a viewer bridge over websocket and decodes
// CBOR message envelopes into typed image, calibration and transform
// messages.
package ingest

import (
	"context"
	"math"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/visnova/camviz/internal/engine/scene"
	"github.com/visnova/camviz/internal/msg"
)

// Envelope operations on the wire.
const (
	opImage      = "image"
	opCameraInfo = "camera_info"
	opTransform  = "transform"
)

// Transform is a frame transform announcement: child's pose in parent.
type Transform struct {
	Parent string
	Child  string
	Pose   scene.Pose
}

// Message is one decoded bridge message. Exactly one of the payload fields
// is set.
type Message struct {
	Topic      string
	Image      *msg.Image
	CameraInfo *msg.CameraInfo
	Transform  *Transform
}

// wireEnvelope is the CBOR shape shared by every bridge message. Fields
// irrelevant to an op are simply absent on the wire.
type wireEnvelope struct {
	Op      string  `cbor:"op"`
	Topic   string  `cbor:"topic"`
	FrameID string  `cbor:"frame_id"`
	Stamp   float64 `cbor:"stamp"`

	// image
	Format   string `cbor:"format"`
	Encoding string `cbor:"encoding"`
	Width    uint32 `cbor:"width"`
	Height   uint32 `cbor:"height"`
	Step     uint32 `cbor:"step"`
	Data     []byte `cbor:"data"`

	// camera_info
	DistortionModel string    `cbor:"distortion_model"`
	D               []float64 `cbor:"d"`
	K               []float64 `cbor:"k"`
	R               []float64 `cbor:"r"`
	P               []float64 `cbor:"p"`

	// transform
	Parent      string     `cbor:"parent"`
	Child       string     `cbor:"child"`
	Translation [3]float64 `cbor:"translation"`
	Rotation    [4]float64 `cbor:"rotation"`
}

// Stream connects to a bridge and returns a channel of decoded messages.
// The channel closes when the connection drops or ctx is cancelled;
// reconnecting is the caller's policy. Undecodable envelopes are logged and
// skipped.
func Stream(ctx context.Context, url string, connectTimeout time.Duration, log *zap.Logger) (<-chan Message, error) {
	if log == nil {
		log = zap.NewNop()
	}

	dialer := websocket.Dialer{HandshakeTimeout: connectTimeout}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to %s", url)
	}

	out := make(chan Message, 64)
	go func() {
		defer close(out)
		defer conn.Close()

		go func() {
			// Unblock ReadMessage when the context ends.
			<-ctx.Done()
			_ = conn.Close()
		}()

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil {
					log.Warn("ingest connection closed", zap.Error(err))
				}
				return
			}

			message, err := decodeEnvelope(payload)
			if err != nil {
				log.Warn("ingest envelope skipped", zap.Error(err))
				continue
			}

			select {
			case <-ctx.Done():
				return
			case out <- message:
			}
		}
	}()

	return out, nil
}

// decodeEnvelope unmarshals one CBOR envelope into a typed message.
func decodeEnvelope(payload []byte) (Message, error) {
	var env wireEnvelope
	if err := cbor.Unmarshal(payload, &env); err != nil {
		return Message{}, errors.Wrap(err, "decoding envelope")
	}

	switch env.Op {
	case opImage:
		return Message{Topic: env.Topic, Image: decodeImage(&env)}, nil
	case opCameraInfo:
		return Message{Topic: env.Topic, CameraInfo: decodeCameraInfo(&env)}, nil
	case opTransform:
		return Message{Topic: env.Topic, Transform: decodeTransform(&env)}, nil
	default:
		return Message{}, errors.Errorf("unknown op %q", env.Op)
	}
}

func decodeImage(env *wireEnvelope) *msg.Image {
	image := &msg.Image{
		FrameID:  env.FrameID,
		Stamp:    stampToTime(env.Stamp),
		Format:   env.Format,
		Encoding: env.Encoding,
		Width:    env.Width,
		Height:   env.Height,
		Step:     env.Step,
		Data:     env.Data,
	}
	if env.Format == "" && env.Encoding != "" {
		image.Kind = msg.KindRaw
	} else {
		image.Kind = msg.KindCompressed
	}
	return image
}

func decodeCameraInfo(env *wireEnvelope) *msg.CameraInfo {
	info := &msg.CameraInfo{
		FrameID:         env.FrameID,
		Stamp:           stampToTime(env.Stamp),
		Width:           env.Width,
		Height:          env.Height,
		DistortionModel: env.DistortionModel,
		D:               env.D,
	}
	copy(info.K[:], env.K)
	copy(info.R[:], env.R)
	copy(info.P[:], env.P)
	return info
}

func decodeTransform(env *wireEnvelope) *Transform {
	rot := mgl64.Quat{
		W: env.Rotation[3],
		V: mgl64.Vec3{env.Rotation[0], env.Rotation[1], env.Rotation[2]},
	}
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	return &Transform{
		Parent: env.Parent,
		Child:  env.Child,
		Pose: scene.Pose{
			Position:    mgl64.Vec3{env.Translation[0], env.Translation[1], env.Translation[2]},
			Orientation: rot.Normalize(),
		},
	}
}

// stampToTime converts a fractional-seconds epoch stamp to time.Time.
func stampToTime(stamp float64) time.Time {
	if stamp == 0 {
		return time.Time{}
	}
	sec, frac := math.Modf(stamp)
	return time.Unix(int64(sec), int64(frac*1e9))
}

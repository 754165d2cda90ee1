// Package viewer wires the image-plane scene layer to its collaborators and
// runs the single-threaded frame loop: bridge messages and frame ticks are
// handled on one goroutine, the way an interactive render loop would.
package viewer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/visnova/camviz/internal/config"
	"github.com/visnova/camviz/internal/diagnostics"
	"github.com/visnova/camviz/internal/engine/camera"
	"github.com/visnova/camviz/internal/engine/imageplane"
	"github.com/visnova/camviz/internal/engine/transform"
	"github.com/visnova/camviz/internal/ingest"
)

// Viewer owns the scene layer and its collaborators.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	registry *camera.Registry
	tree     *transform.Tree
	diag     *diagnostics.Reporter
	manager  *imageplane.Manager
}

// New builds a viewer from configuration.
func New(cfg *config.Config, log *zap.Logger) *Viewer {
	if log == nil {
		log = zap.NewNop()
	}

	v := &Viewer{
		cfg:      cfg,
		log:      log,
		registry: camera.NewRegistry(),
		tree:     transform.NewTree(),
		diag:     diagnostics.NewReporter(log),
	}
	v.manager = imageplane.NewManager(imageplane.Config{
		Log:         log,
		Diagnostics: v.diag,
		Models:      v.registry,
		Resolver:    v.tree,
		Store:       cfg,
	})
	v.manager.SetRenderFrames(cfg.Scene.RenderFrame, cfg.Scene.FixedFrame)

	// Persist auto-selected settings so they survive the session.
	v.manager.OnSettingsChanged(func(path []string) {
		if err := cfg.Save(); err != nil {
			log.Warn("saving config", zap.Error(err))
		}
	})

	return v
}

// Manager returns the image-plane manager, for embedding the scene root in a
// rendering backend.
func (v *Viewer) Manager() *imageplane.Manager { return v.manager }

// Run drives the frame loop until ctx is cancelled, reconnecting to the
// bridge with backoff when the connection drops.
func (v *Viewer) Run(ctx context.Context) error {
	frameRate := v.cfg.Scene.FrameRate
	if frameRate <= 0 {
		frameRate = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(frameRate))
	defer ticker.Stop()
	defer v.manager.Dispose()

	var messages <-chan ingest.Message
	retry := time.After(0)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-retry:
			msgs, err := ingest.Stream(ctx, v.cfg.Ingest.URL, v.cfg.Ingest.ConnectTimeout, v.log)
			if err != nil {
				v.log.Warn("bridge connect failed", zap.Error(err))
				retry = time.After(v.cfg.Ingest.ReconnectBackoff)
				continue
			}
			v.log.Info("bridge connected", zap.String("url", v.cfg.Ingest.URL))
			messages = msgs
			retry = nil

		case message, ok := <-messages:
			if !ok {
				messages = nil
				retry = time.After(v.cfg.Ingest.ReconnectBackoff)
				continue
			}
			v.handleMessage(message)

		case now := <-ticker.C:
			v.manager.StartFrame(now)
		}
	}
}

func (v *Viewer) handleMessage(message ingest.Message) {
	switch {
	case message.Image != nil:
		if err := v.manager.AddImage(message.Topic, message.Image); err != nil {
			// Raw encodings are a defect in the publisher, not a condition
			// to swallow.
			v.log.Error("image rejected",
				zap.String("topic", message.Topic), zap.Error(err))
		}

	case message.CameraInfo != nil:
		model, err := camera.NewPinhole(message.CameraInfo)
		if err != nil {
			v.log.Warn("bad calibration",
				zap.String("topic", message.Topic), zap.Error(err))
		} else {
			v.registry.Update(message.Topic, model)
		}
		v.manager.AddCameraInfo(message.Topic, message.CameraInfo)

	case message.Transform != nil:
		t := message.Transform
		v.tree.AddTransform(t.Parent, t.Child, t.Pose)
	}
}

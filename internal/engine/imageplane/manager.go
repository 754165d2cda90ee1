// Package imageplane manages per-topic image renderables: textured planes
// projected into the scene through each camera's calibration model. It
// reconciles textures, materials, geometries and meshes as images,
// calibration data and settings arrive.
package imageplane

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/visnova/camviz/internal/engine/camera"
	"github.com/visnova/camviz/internal/engine/scene"
	"github.com/visnova/camviz/internal/msg"
)

// Error kinds reported to the diagnostics channel. Distinct kinds coexist
// per topic; a recurring error of one kind replaces its previous report.
const (
	ErrorKindDecode           = "image_decode"
	ErrorKindMissingTransform = "missing_transform"
)

// ErrUnsupportedEncoding is returned when a raw (uncompressed) image message
// reaches the manager. Raw pixel formats are a hard failure, not a silent
// skip, so the gap surfaces upstream.
var ErrUnsupportedEncoding = errors.New("raw image encodings are not supported")

// Diagnostics is the per-topic error channel. Errors are keyed by
// (topic, kind); see the diagnostics package for the standard implementation.
type Diagnostics interface {
	AddToTopic(topic, kind, message string)
	RemoveFromTopic(topic, kind string)
	ClearTopic(topic string)
}

// ModelProvider looks up the camera model for a calibration topic. A lookup
// may miss until calibration data has been seen for the topic.
type ModelProvider interface {
	ModelForTopic(topic string) (camera.Model, bool)
}

// PoseResolver resolves a source frame's pose in the render frame, writing
// it to pose and reporting failure when no transform path exists.
type PoseResolver interface {
	UpdatePose(pose *scene.Pose, renderFrame, fixedFrame, sourceFrame string, currentTime, sourceTime time.Time) bool
}

// SettingsStore is the externally owned per-topic settings mapping. The
// manager reads user overrides from it when a topic is first seen and writes
// auto-selected calibration topics back.
type SettingsStore interface {
	TopicSettings(topic string) (PartialSettings, bool)
	SetTopicSettings(topic string, settings PartialSettings)
}

// Config wires a Manager's collaborators. Diagnostics, Models, Resolver and
// Store may be nil; nil collaborators are replaced with no-ops.
type Config struct {
	Log         *zap.Logger
	Diagnostics Diagnostics
	Models      ModelProvider
	Resolver    PoseResolver
	Store       SettingsStore
}

// Manager owns one Renderable per image topic and keeps each renderable's
// texture, material, geometry and mesh consistent with incoming messages and
// settings changes. All methods must be called from a single goroutine;
// bitmap decoding is the only background operation and re-enters the manager
// through a channel drained at frame start.
type Manager struct {
	log      *zap.Logger
	diag     Diagnostics
	models   ModelProvider
	resolver PoseResolver
	store    SettingsStore

	root        *scene.Node
	renderables map[string]*Renderable

	// cameraInfoTopics accumulates every calibration topic seen this
	// session. It never shrinks.
	cameraInfoTopics map[string]struct{}

	renderFrame string
	fixedFrame  string

	decodes chan decodeResult

	settingsHandlers []func(path []string)

	// staleDecodes counts decode completions dropped because their
	// renderable was removed or superseded.
	staleDecodes uint64

	// droppedDecodes counts decode completions that never reached the
	// frame loop because the result channel was full. Written from decode
	// goroutines, hence atomic.
	droppedDecodes atomic.Uint64

	disposed bool
}

// NewManager creates a manager with an empty scene root.
func NewManager(cfg Config) *Manager {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		log:              log,
		diag:             cfg.Diagnostics,
		models:           cfg.Models,
		resolver:         cfg.Resolver,
		store:            cfg.Store,
		root:             scene.NewNode("image_planes"),
		renderables:      make(map[string]*Renderable),
		cameraInfoTopics: make(map[string]struct{}),
		decodes:          make(chan decodeResult, 32),
	}
	if m.diag == nil {
		m.diag = nopDiagnostics{}
	}
	if m.models == nil {
		m.models = nopModels{}
	}
	if m.resolver == nil {
		m.resolver = nopResolver{}
	}
	if m.store == nil {
		m.store = nopStore{}
	}
	return m
}

// Root returns the scene node all per-topic renderables hang off.
func (m *Manager) Root() *scene.Node { return m.root }

// Renderable returns the renderable for topic, if one exists.
func (m *Manager) Renderable(topic string) (*Renderable, bool) {
	r, ok := m.renderables[topic]
	return r, ok
}

// SetRenderFrames sets the scene's render and fixed frame identifiers. Until
// both are known, StartFrame hides the manager's whole output.
func (m *Manager) SetRenderFrames(renderFrame, fixedFrame string) {
	m.renderFrame = renderFrame
	m.fixedFrame = fixedFrame
}

// OnSettingsChanged registers fn to be called whenever the manager mutates
// shared configuration as a side effect, with the settings path that changed.
func (m *Manager) OnSettingsChanged(fn func(path []string)) {
	if fn != nil {
		m.settingsHandlers = append(m.settingsHandlers, fn)
	}
}

func (m *Manager) emitSettingsChanged(path ...string) {
	for _, fn := range m.settingsHandlers {
		fn(path)
	}
}

// AddImage feeds an image message for topic into the manager, creating the
// renderable on first sight. Returns an error only for raw-encoded images,
// which the image-plane layer does not support.
func (m *Manager) AddImage(topic string, image *msg.Image) error {
	if m.disposed || image == nil {
		return nil
	}

	r, ok := m.renderables[topic]
	if !ok {
		settings := DefaultSettings()
		if partial, found := m.store.TopicSettings(topic); found {
			settings = settings.Apply(&partial)
		}
		r = newRenderable(topic, settings)
		m.renderables[topic] = r
		m.root.Add(&r.Node)
		m.log.Debug("image topic added", zap.String("topic", topic))
	}

	next := r.Settings
	if next.CameraInfoTopic == "" {
		if selected, found := selectCameraInfoTopic(topic, m.cameraInfoTopics); found {
			next.CameraInfoTopic = selected
			m.persistCameraInfoTopic(topic, selected)
			m.emitSettingsChanged("topics", topic)
		}
	}

	return m.updateRenderable(r, next, image)
}

// AddCameraInfo records a calibration topic. On first sight of the topic,
// renderables that can use it are refreshed and a single settings-changed
// event fires for the topics subtree. Model construction is the
// ModelProvider's concern; the manager only tracks topic names.
func (m *Manager) AddCameraInfo(topic string, info *msg.CameraInfo) {
	if m.disposed {
		return
	}
	if _, known := m.cameraInfoTopics[topic]; known {
		return
	}
	m.cameraInfoTopics[topic] = struct{}{}
	m.log.Debug("camera info topic added", zap.String("topic", topic))

	for imageTopic, r := range m.renderables {
		next := r.Settings
		switch {
		case next.CameraInfoTopic == "":
			selected, found := selectCameraInfoTopic(imageTopic, m.cameraInfoTopics)
			if !found {
				continue
			}
			next.CameraInfoTopic = selected
			m.persistCameraInfoTopic(imageTopic, selected)
		case next.CameraInfoTopic != topic:
			continue
		}
		// Geometry may now be constructible.
		if err := m.updateRenderable(r, next, nil); err != nil {
			m.log.Error("renderable refresh failed",
				zap.String("topic", imageTopic), zap.Error(err))
		}
	}

	m.emitSettingsChanged("topics")
}

// SetTopicSettings merges partial over the renderable's current settings and
// reconciles its resources. No-op when no renderable exists for topic yet.
func (m *Manager) SetTopicSettings(topic string, partial PartialSettings) {
	if m.disposed {
		return
	}
	r, ok := m.renderables[topic]
	if !ok {
		return
	}
	if err := m.updateRenderable(r, r.Settings.Apply(&partial), nil); err != nil {
		m.log.Error("settings update failed", zap.String("topic", topic), zap.Error(err))
	}
}

// persistCameraInfoTopic writes an auto-selected calibration topic into the
// externally owned settings store so the selection survives the session.
func (m *Manager) persistCameraInfoTopic(topic, infoTopic string) {
	partial, _ := m.store.TopicSettings(topic)
	partial.CameraInfoTopic = &infoTopic
	m.store.SetTopicSettings(topic, partial)
	m.log.Info("auto-selected camera info topic",
		zap.String("topic", topic), zap.String("camera_info_topic", infoTopic))
}

// updateRenderable reconciles a renderable's resources against the next
// settings and an optional new image. Geometry follows (cameraInfoTopic,
// distance), material follows color, texture follows the image bytes; the
// mesh is re-paired whenever geometry or material is replaced.
func (m *Manager) updateRenderable(r *Renderable, next Settings, image *msg.Image) error {
	prev := r.Settings
	r.Settings = next

	geometryChanged := prev.CameraInfoTopic != next.CameraInfoTopic || prev.Distance != next.Distance
	materialChanged := prev.Color != next.Color

	if geometryChanged && r.geometry != nil {
		r.geometry.Dispose()
		r.geometry = nil
		r.detachMesh()
	}

	if next.CameraInfoTopic != "" && r.geometry == nil {
		if model, ok := m.models.ModelForTopic(next.CameraInfoTopic); ok {
			r.geometry = BuildImageGeometry(model, next.Distance)
			r.detachMesh()
		}
		// Without a model yet, geometry stays absent until a later update.
	}

	if image != nil {
		r.image = image
		switch image.Kind {
		case msg.KindCompressed:
			m.launchDecode(r, image)
		case msg.KindRaw:
			return errors.Wrapf(ErrUnsupportedEncoding,
				"topic %q encoding %q", r.Topic, image.Encoding)
		default:
			return errors.Errorf("topic %q: unknown image kind %d", r.Topic, image.Kind)
		}
	}

	if materialChanged || r.material == nil {
		m.rebuildMaterial(r)
	}

	r.attachMesh()
	return nil
}

// rebuildMaterial replaces the renderable's material, keeping the current
// texture bound. Old material first, then the new one; never both.
func (m *Manager) rebuildMaterial(r *Renderable) {
	if r.material != nil {
		r.material.Dispose()
		r.material = nil
		r.detachMesh()
	}
	r.material = scene.NewMaterial(r.texture, r.Settings.Color)
}

// launchDecode dispatches a bitmap decode off the frame loop. The result is
// tagged with the renderable's current decode generation and handed back
// through the decode channel.
func (m *Manager) launchDecode(r *Renderable, image *msg.Image) {
	r.decodeGeneration++
	generation := r.decodeGeneration
	topic := r.Topic
	data := image.Data
	format := image.Format

	go func() {
		bitmap, err := decodeBitmap(data, format)
		select {
		case m.decodes <- decodeResult{topic: topic, generation: generation, bitmap: bitmap, err: err}:
		default:
			// Manager disposed or badly backlogged; the next decode for
			// this topic supersedes the result anyway.
			m.droppedDecodes.Add(1)
			m.log.Debug("decode channel full, dropping result", zap.String("topic", topic))
		}
	}()
}

// drainDecodes applies every finished decode that is still current.
func (m *Manager) drainDecodes() {
	for {
		select {
		case res := <-m.decodes:
			m.applyDecode(res)
		default:
			return
		}
	}
}

func (m *Manager) applyDecode(res decodeResult) {
	r, ok := m.renderables[res.topic]
	if !ok || res.generation != r.decodeGeneration {
		m.staleDecodes++
		m.log.Debug("dropping stale decode", zap.String("topic", res.topic))
		return
	}

	if res.err != nil {
		m.diag.AddToTopic(res.topic, ErrorKindDecode, res.err.Error())
		return
	}
	m.diag.RemoveFromTopic(res.topic, ErrorKindDecode)

	if r.texture == nil {
		r.texture = scene.NewTexture(res.bitmap, defaultTextureParams())
		m.rebuildMaterial(r)
		r.attachMesh()
		return
	}
	r.texture.Update(res.bitmap)
}

// StaleDecodes returns how many decode completions were dropped because
// their renderable was removed or superseded.
func (m *Manager) StaleDecodes() uint64 { return m.staleDecodes }

// DroppedDecodes returns how many decode completions were discarded because
// the result channel was full. A rising count means the frame loop is not
// keeping up with the decode rate.
func (m *Manager) DroppedDecodes() uint64 { return m.droppedDecodes.Load() }

// StartFrame applies finished decodes, then refreshes every renderable's
// visibility and pose for the frame at now. With the render or fixed frame
// unknown the whole output is hidden and nothing else runs. Transform
// failures are reported per topic and the last resolved pose keeps rendering.
func (m *Manager) StartFrame(now time.Time) {
	if m.disposed {
		return
	}
	m.drainDecodes()

	if m.renderFrame == "" || m.fixedFrame == "" {
		m.root.Visible = false
		return
	}
	m.root.Visible = true

	for topic, r := range m.renderables {
		r.Visible = r.Settings.Visible
		if !r.Visible {
			m.diag.ClearTopic(topic)
			continue
		}
		if r.image == nil {
			continue
		}
		if m.resolver.UpdatePose(&r.Pose, m.renderFrame, m.fixedFrame, r.image.FrameID, now, r.image.Stamp) {
			m.diag.RemoveFromTopic(topic, ErrorKindMissingTransform)
		} else {
			m.diag.AddToTopic(topic, ErrorKindMissingTransform,
				"no transform from "+r.image.FrameID+" to "+m.renderFrame)
		}
	}
}

// Dispose releases every renderable and its resources and empties the topic
// map. Safe to call more than once; the manager stays unusable afterwards.
func (m *Manager) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	for topic, r := range m.renderables {
		r.disposeResources()
		m.root.Remove(&r.Node)
		m.diag.ClearTopic(topic)
	}
	m.renderables = make(map[string]*Renderable)
	m.root.RemoveAll()
}

// No-op collaborators used when Config leaves a dependency nil.

type nopDiagnostics struct{}

func (nopDiagnostics) AddToTopic(string, string, string) {}
func (nopDiagnostics) RemoveFromTopic(string, string)    {}
func (nopDiagnostics) ClearTopic(string)                 {}

type nopModels struct{}

func (nopModels) ModelForTopic(string) (camera.Model, bool) { return nil, false }

type nopResolver struct{}

func (nopResolver) UpdatePose(*scene.Pose, string, string, string, time.Time, time.Time) bool {
	return true
}

type nopStore struct{}

func (nopStore) TopicSettings(string) (PartialSettings, bool) { return PartialSettings{}, false }
func (nopStore) SetTopicSettings(string, PartialSettings)     {}

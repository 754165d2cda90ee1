package imageplane

import "github.com/visnova/camviz/internal/engine/scene"

// Settings is the resolved per-topic display configuration. Values are
// always copied on merge, never shared between renderables.
type Settings struct {
	// Visible toggles the whole renderable.
	Visible bool
	// CameraInfoTopic names the calibration topic the image plane is
	// projected with. Empty means not yet selected.
	CameraInfoTopic string
	// Distance scales the projected image plane along the camera rays.
	Distance float64
	// Color tints the image texture.
	Color scene.Color
}

// DefaultSettings returns the settings applied to a topic the user never
// configured: visible, one meter out, untinted.
func DefaultSettings() Settings {
	return Settings{
		Visible:  true,
		Distance: 1,
		Color:    scene.White,
	}
}

// PartialSettings is a sparse settings override: nil fields keep the value
// they are merged over. Color uses hex notation so overrides round-trip
// through YAML config.
type PartialSettings struct {
	Visible         *bool    `yaml:"visible,omitempty"`
	CameraInfoTopic *string  `yaml:"camera_info_topic,omitempty"`
	Distance        *float64 `yaml:"distance,omitempty"`
	Color           *string  `yaml:"color,omitempty"`
}

// Apply merges p over s and returns the result. Invalid color strings are
// ignored. A nil p returns s unchanged.
func (s Settings) Apply(p *PartialSettings) Settings {
	if p == nil {
		return s
	}
	if p.Visible != nil {
		s.Visible = *p.Visible
	}
	if p.CameraInfoTopic != nil {
		s.CameraInfoTopic = *p.CameraInfoTopic
	}
	if p.Distance != nil {
		s.Distance = *p.Distance
	}
	if p.Color != nil {
		if c, err := scene.ParseColor(*p.Color); err == nil {
			s.Color = c
		}
	}
	return s
}

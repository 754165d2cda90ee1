// Package config handles viewer configuration loading and management.
package config

import (
	"time"

	"github.com/visnova/camviz/internal/engine/imageplane"
	"github.com/visnova/camviz/internal/logger"
)

// Config holds all viewer settings.
type Config struct {
	Scene   SceneConfig                           `yaml:"scene"`
	Ingest  IngestConfig                          `yaml:"ingest"`
	Topics  map[string]imageplane.PartialSettings `yaml:"topics"`
	Logging LoggingConfig                         `yaml:"logging"`
}

// SceneConfig holds frame-loop and coordinate-frame settings.
type SceneConfig struct {
	// RenderFrame is the frame renderables are posed in.
	RenderFrame string `yaml:"render_frame"`
	// FixedFrame is the world-fixed frame used for pose resolution.
	FixedFrame string `yaml:"fixed_frame"`
	// FrameRate is the frame-loop tick rate in Hz.
	FrameRate int `yaml:"frame_rate"`
}

// IngestConfig holds message-source connection settings.
type IngestConfig struct {
	URL              string        `yaml:"url"`
	ConnectTimeout   time.Duration `yaml:"connect_timeout"`
	ReconnectBackoff time.Duration `yaml:"reconnect_backoff"`
}

// LoggingConfig holds logging settings. An empty File disables file output;
// the rotation limits only apply when a file is set.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// FileConfig converts the logging section into the logger's file settings.
func (l LoggingConfig) FileConfig() logger.FileConfig {
	return logger.FileConfig{
		Path:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
		Compress:   l.Compress,
	}
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Scene: SceneConfig{
			FrameRate: 30,
		},
		Ingest: IngestConfig{
			URL:              "ws://127.0.0.1:8765",
			ConnectTimeout:   10 * time.Second,
			ReconnectBackoff: 2 * time.Second,
		},
		Topics: map[string]imageplane.PartialSettings{},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// TopicSettings returns the stored per-topic settings override, if any.
// Together with SetTopicSettings this makes Config the settings store the
// image-plane manager reads defaults from and writes selections back to.
func (c *Config) TopicSettings(topic string) (imageplane.PartialSettings, bool) {
	s, ok := c.Topics[topic]
	return s, ok
}

// SetTopicSettings stores a per-topic settings override.
func (c *Config) SetTopicSettings(topic string, settings imageplane.PartialSettings) {
	if c.Topics == nil {
		c.Topics = map[string]imageplane.PartialSettings{}
	}
	c.Topics[topic] = settings
}

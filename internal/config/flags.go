package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagURL         = flag.String("url", "", "Message source websocket URL")
	flagRenderFrame = flag.String("render-frame", "", "Scene render frame")
	flagFixedFrame  = flag.String("fixed-frame", "", "Scene fixed frame")
	flagFPS         = flag.Int("fps", 0, "Frame-loop rate in Hz")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagURL != "" {
		cfg.Ingest.URL = *flagURL
	}
	if *flagRenderFrame != "" {
		cfg.Scene.RenderFrame = *flagRenderFrame
	}
	if *flagFixedFrame != "" {
		cfg.Scene.FixedFrame = *flagFixedFrame
	}
	if *flagFPS > 0 {
		cfg.Scene.FrameRate = *flagFPS
	}
}

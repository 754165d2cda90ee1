package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testFileConfig(path string) FileConfig {
	return FileConfig{Path: path, MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 1}
}

func TestInitAndLevels(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "test.log")

	err := Init("debug", testFileConfig(logFile), false)
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer Sync()

	Log.Debug("debug entry")
	Info("info entry")
	Log.Warn("warn entry")
	Sugar.Infof("sugared entry %d", 42)
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	content := string(data)
	for _, want := range []string{"debug entry", "info entry", "warn entry", "sugared entry 42"} {
		if !strings.Contains(content, want) {
			t.Errorf("log file missing %q", want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "test.log")

	err := Init("warn", testFileConfig(logFile), false)
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer Sync()

	Info("filtered entry")
	Log.Warn("kept entry")
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if strings.Contains(string(data), "filtered entry") {
		t.Error("info entry should be filtered at warn level")
	}
	if !strings.Contains(string(data), "kept entry") {
		t.Error("warn entry should be kept at warn level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "debug",
		"info":    "info",
		"warn":    "warn",
		"error":   "error",
		"unknown": "info",
	}
	for in, want := range tests {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

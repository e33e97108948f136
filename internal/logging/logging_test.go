package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/decker502/lastfighter/pkg/config"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name  string
		cfg   config.LoggingConfig
		debug bool
		info  bool
	}{
		{"控制台 debug", config.LoggingConfig{Level: "debug", Format: "console"}, true, true},
		{"json info", config.LoggingConfig{Level: "info", Format: "json"}, false, true},
		{"warn", config.LoggingConfig{Level: "warn"}, false, false},
		{"无效级别按 info", config.LoggingConfig{Level: "loud"}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			if got := log.Core().Enabled(zapcore.DebugLevel); got != tt.debug {
				t.Errorf("debug enabled = %v, want %v", got, tt.debug)
			}
			if got := log.Core().Enabled(zapcore.InfoLevel); got != tt.info {
				t.Errorf("info enabled = %v, want %v", got, tt.info)
			}
		})
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	log, err := NewFile(config.LoggingConfig{Level: "info"}, path)
	if err != nil {
		t.Fatalf("NewFile() error: %v", err)
	}
	log.Info("match started", zap.Int("lives", 3))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"lives":3`) {
		t.Errorf("log = %q, want the lives field", data)
	}
}

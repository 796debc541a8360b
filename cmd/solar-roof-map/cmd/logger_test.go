package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bbzsolar/solar-roof-map/internal/config"
	"go.uber.org/zap"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		config   config.LoggingConfig
		override string
		wantErr  bool
		debug    bool
	}{
		{name: "defaults", config: config.LoggingConfig{}},
		{name: "console debug", config: config.LoggingConfig{Level: "debug", Format: "console"}, debug: true},
		{name: "override wins", config: config.LoggingConfig{Level: "error"}, override: "debug", debug: true},
		{name: "warning alias", config: config.LoggingConfig{Level: "warning"}},
		{name: "invalid level", config: config.LoggingConfig{Level: "verbose"}, wantErr: true},
		{name: "invalid format", config: config.LoggingConfig{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.config, tt.override)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := logger.Core().Enabled(zap.DebugLevel); got != tt.debug {
				t.Errorf("debug enabled = %v, want %v", got, tt.debug)
			}
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "solar.log")

	logger, err := initializeLogger(config.LoggingConfig{OutputFile: path}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("hello", zap.String("op", "test"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected log output in file")
	}
}

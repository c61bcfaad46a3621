package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "default config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "console output",
			config: &Config{
				Level:  "info",
				Format: "console",
				Output: "console",
			},
			wantErr: false,
		},
		{
			name: "file output",
			config: &Config{
				Level:  "debug",
				Format: "json",
				Output: "file",
				File: FileConfig{
					Filename:   filepath.Join(dir, "ingest.log"),
					MaxSize:    10,
					MaxAge:     7,
					MaxBackups: 3,
				},
			},
			wantErr: false,
		},
		{
			name: "both output",
			config: &Config{
				Level:  "warn",
				Format: "json",
				Output: "both",
				File: FileConfig{
					Filename:   filepath.Join(dir, "nested", "ingest.log"),
					MaxSize:    10,
					MaxAge:     7,
					MaxBackups: 0,
				},
			},
			wantErr: false,
		},
		{
			name:    "invalid level",
			config:  &Config{Level: "verbose", Format: "json", Output: "console"},
			wantErr: true,
		},
		{
			name:    "invalid format",
			config:  &Config{Level: "info", Format: "xml", Output: "console"},
			wantErr: true,
		},
		{
			name:    "invalid output",
			config:  &Config{Level: "info", Format: "json", Output: "syslog"},
			wantErr: true,
		},
		{
			name:    "file output without filename",
			config:  &Config{Level: "info", Format: "json", Output: "file"},
			wantErr: true,
		},
		{
			name: "file output without rotation size",
			config: &Config{
				Level:  "info",
				Format: "json",
				Output: "file",
				File:   FileConfig{Filename: filepath.Join(dir, "x.log"), MaxAge: 1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && logger == nil {
				t.Fatal("New() returned nil logger")
			}
			if logger != nil {
				logger.Info("document processed", zap.Int("chunks", 3))
				_ = logger.Sync()
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "nested")); err != nil {
		t.Errorf("log directory not created: %v", err)
	}
}

func TestLogger_WithAndNamed(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewFromZap(zap.New(core))

	logger.Named("chunker").With(zap.String("strategy", "paragraph")).Info("chunked")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].LoggerName != "chunker" {
		t.Errorf("LoggerName = %q, want %q", entries[0].LoggerName, "chunker")
	}
	if got := entries[0].ContextMap()["strategy"]; got != "paragraph" {
		t.Errorf("strategy = %v, want paragraph", got)
	}
}

func TestContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewFromZap(zap.New(core))

	ctx := context.Background()
	if logger.WithContext(ctx) != logger {
		t.Error("WithContext() without values should return the same logger")
	}

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithDocument(ctx, "devis.pdf")
	ctx = ToContext(ctx, logger)

	if got := GetRequestID(ctx); got != "req-1" {
		t.Errorf("GetRequestID() = %q, want %q", got, "req-1")
	}
	if got := GetDocument(ctx); got != "devis.pdf" {
		t.Errorf("GetDocument() = %q, want %q", got, "devis.pdf")
	}

	InfoContext(ctx, "loaded")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-1" || fields["document"] != "devis.pdf" {
		t.Errorf("unexpected fields %v", fields)
	}
}

func TestGlobalLogger(t *testing.T) {
	if L() == nil {
		t.Fatal("L() returned nil logger")
	}

	if err := InitGlobal(&Config{Level: "nope", Format: "json", Output: "console"}); err == nil {
		t.Error("InitGlobal() accepted an invalid config")
	}

	core, logs := observer.New(zapcore.DebugLevel)
	previous := L()
	SetGlobal(NewFromZap(zap.New(core)))
	defer SetGlobal(previous)

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	if logs.Len() != 4 {
		t.Errorf("got %d entries, want 4", logs.Len())
	}
}

func TestNewWithOptions(t *testing.T) {
	logger, err := NewWithOptions(
		WithLevel("debug"),
		WithFormat("console"),
		WithCaller(false),
		WithStacktrace(false),
	)
	if err != nil {
		t.Fatalf("NewWithOptions() error = %v", err)
	}

	cfg := logger.Config()
	if cfg.Level != "debug" || cfg.Format != "console" || cfg.EnableCaller {
		t.Errorf("options not applied: %+v", cfg)
	}
}

func TestPresets(t *testing.T) {
	dev, err := Development()
	if err != nil {
		t.Fatalf("Development() error = %v", err)
	}
	if !dev.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Development() should enable debug")
	}

	filename := filepath.Join(t.TempDir(), "prod.log")
	prod, err := Production(filename)
	if err != nil {
		t.Fatalf("Production() error = %v", err)
	}
	if prod.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Production() should not enable debug")
	}
	prod.Info("ready")
	_ = prod.Sync()

	if _, err := os.Stat(filename); err != nil {
		t.Errorf("log file not written: %v", err)
	}
}

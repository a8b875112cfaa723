package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/felixgeelhaar/plancraft/internal/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{
			name:   "default config",
			config: DefaultConfig(),
		},
		{
			name: "json with source",
			config: Config{
				Level:     LevelDebug,
				Format:    FormatJSON,
				Output:    &bytes.Buffer{},
				AddSource: true,
			},
		},
		{
			name: "text at warn",
			config: Config{
				Level:  LevelWarn,
				Format: FormatText,
				Output: &bytes.Buffer{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.config)
			if logger == nil {
				t.Fatal("expected logger, got nil")
			}
			if logger.slog == nil {
				t.Fatal("expected slog logger, got nil")
			}
			if logger.config.Level != tt.config.Level {
				t.Errorf("expected level %v, got %v", tt.config.Level, logger.config.Level)
			}
		})
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatJSON, Output: &buf})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("debug message should be filtered at warn level")
	}
	if strings.Contains(output, "info message") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn message should be logged at warn level")
	}
	if !strings.Contains(output, "error message") {
		t.Error("error message should be logged at warn level")
	}
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	logger.With("plan", "demo").Info("plan loaded")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["plan"] != "demo" {
		t.Errorf("expected plan attribute demo, got %v", entry["plan"])
	}
}

func TestLoggerWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	perr := errors.NewPlanNotFoundError("demo")
	logger.WithError(perr).Warn("load failed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["error_code"] != string(errors.ErrCodePlanNotFound) {
		t.Errorf("expected error_code %s, got %v", errors.ErrCodePlanNotFound, entry["error_code"])
	}
	if _, ok := entry["suggestions"]; !ok {
		t.Error("expected suggestions attribute for coded error")
	}
}

func TestLoggerWithErrorNil(t *testing.T) {
	logger := New(DefaultConfig())
	if got := logger.WithError(nil); got != logger {
		t.Error("WithError(nil) should return the same logger")
	}
}

func TestDefaultLoggerNeverNil(t *testing.T) {
	if DefaultLogger() == nil {
		t.Fatal("default logger must be initialized before any SetDefaultLogger call")
	}

	current := DefaultLogger()
	SetDefaultLogger(nil)
	if DefaultLogger() != current {
		t.Error("SetDefaultLogger(nil) must be ignored")
	}

	replacement := New(Config{Level: LevelError, Format: FormatJSON, Output: &bytes.Buffer{}})
	SetDefaultLogger(replacement)
	defer SetDefaultLogger(current)
	if DefaultLogger() != replacement {
		t.Error("SetDefaultLogger should replace the default")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{input: "debug", want: LevelDebug},
		{input: "INFO", want: LevelInfo},
		{input: "", want: LevelInfo},
		{input: "warning", want: LevelWarn},
		{input: "Error", want: LevelError},
		{input: "loud", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLevel(%q) expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLevel(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "text", want: FormatText},
		{input: "", want: FormatText},
		{input: "JSON", want: FormatJSON},
		{input: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q) expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

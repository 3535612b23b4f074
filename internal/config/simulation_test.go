package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultSimConfig(t *testing.T) {
	cfg := DefaultSimConfig()

	if cfg.DefaultDist == nil || *cfg.DefaultDist != 3.0 {
		t.Errorf("Expected DefaultDist 3.0, got %v", cfg.DefaultDist)
	}
	if cfg.SampleCount == nil || *cfg.SampleCount != 100 {
		t.Errorf("Expected SampleCount 100, got %v", cfg.SampleCount)
	}
	if cfg.TickInterval == nil || *cfg.TickInterval != "100ms" {
		t.Errorf("Expected TickInterval '100ms', got %v", cfg.TickInterval)
	}
	if cfg.Seed != nil {
		t.Errorf("Expected no Seed, got %v", *cfg.Seed)
	}

	if cfg.GetAngularCutoff() != math.Pi {
		t.Errorf("GetAngularCutoff() = %f, want pi", cfg.GetAngularCutoff())
	}
	if cfg.GetOmega() != math.Pi {
		t.Errorf("GetOmega() = %f, want pi", cfg.GetOmega())
	}
	if cfg.GetSpeed() != 0.1 {
		t.Errorf("GetSpeed() = %f, want 0.1", cfg.GetSpeed())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadSimConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.json")

	testJSON := `{
  "default_dist": 5.0,
  "sample_count": 360,
  "noise_sigma": 0.06,
  "seed": 99,
  "tick_interval": "50ms",
  "circles": [{"x": 1.5, "y": 1.0, "radius": 0.25}],
  "segments": [{"x1": 0, "y1": 1, "x2": 1, "y2": 1}]
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadSimConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GetDefaultDist() != 5.0 {
		t.Errorf("Expected DefaultDist 5.0, got %f", cfg.GetDefaultDist())
	}
	if cfg.GetSampleCount() != 360 {
		t.Errorf("Expected SampleCount 360, got %d", cfg.GetSampleCount())
	}
	if cfg.GetNoiseSigma() != 0.06 {
		t.Errorf("Expected NoiseSigma 0.06, got %f", cfg.GetNoiseSigma())
	}
	if seed, ok := cfg.GetSeed(); !ok || seed != 99 {
		t.Errorf("Expected seed 99, got %d (set=%v)", seed, ok)
	}
	if cfg.GetTickInterval() != 50*time.Millisecond {
		t.Errorf("Expected TickInterval 50ms, got %v", cfg.GetTickInterval())
	}
	if len(cfg.Circles) != 1 || cfg.Circles[0].Radius != 0.25 {
		t.Errorf("Expected one circle of radius 0.25, got %+v", cfg.Circles)
	}
	if len(cfg.Segments) != 1 || cfg.Segments[0].X2 != 1 {
		t.Errorf("Expected one segment ending at x=1, got %+v", cfg.Segments)
	}

	// Unset values keep their defaults.
	if cfg.GetRoomWidth() != 3.0 || cfg.GetRoomHeight() != 2.0 {
		t.Errorf("Expected default room 3x2, got %fx%f", cfg.GetRoomWidth(), cfg.GetRoomHeight())
	}
	if cfg.GetStartX() != 1.0 || cfg.GetStartY() != 1.0 {
		t.Errorf("Expected default start (1, 1), got (%f, %f)", cfg.GetStartX(), cfg.GetStartY())
	}
}

func TestLoadSimConfigMissing(t *testing.T) {
	_, err := LoadSimConfig("/nonexistent/path/to/config.json")
	if err == nil {
		t.Error("Expected error when loading missing file, got nil")
	}
}

func TestLoadSimConfigInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_config.json")

	if err := os.WriteFile(configPath, []byte(`{"sample_count": "many"`), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := LoadSimConfig(configPath); err == nil {
		t.Error("Expected error when loading invalid JSON, got nil")
	}
}

func TestLoadSimConfigRejectsNonJSON(t *testing.T) {
	if _, err := LoadSimConfig("/some/path/config.yaml"); err == nil {
		t.Error("Expected error for non-.json extension, got nil")
	}
}

func TestLoadSimConfigRejectsLargeFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "large.json")

	largeData := make([]byte, 2*1024*1024) // 2MB
	if err := os.WriteFile(configPath, largeData, 0644); err != nil {
		t.Fatalf("Failed to write large file: %v", err)
	}

	if _, err := LoadSimConfig(configPath); err == nil {
		t.Error("Expected error for file size > 1MB, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *SimConfig
		wantErr bool
	}{
		{"valid config", DefaultSimConfig(), false},
		{"empty config is valid", &SimConfig{}, false},
		{"zero default dist", &SimConfig{DefaultDist: ptrFloat64(0)}, true},
		{"negative sample count", &SimConfig{SampleCount: ptrInt(-1)}, true},
		{"zero samples allowed", &SimConfig{SampleCount: ptrInt(0)}, false},
		{"cutoff above pi", &SimConfig{AngularCutoff: ptrFloat64(4)}, true},
		{"zero cutoff", &SimConfig{AngularCutoff: ptrFloat64(0)}, true},
		{"negative noise", &SimConfig{NoiseSigma: ptrFloat64(-0.1)}, true},
		{"negative fit window", &SimConfig{FitWindow: ptrFloat64(-1)}, true},
		{"invalid tick interval", &SimConfig{TickInterval: ptrString("soon")}, true},
		{"negative tick interval", &SimConfig{TickInterval: ptrString("-1s")}, true},
		{"zero room width", &SimConfig{RoomWidth: ptrFloat64(0)}, true},
		{"negative room height", &SimConfig{RoomHeight: ptrFloat64(-2)}, true},
		{"negative circle radius", &SimConfig{Circles: []CircleConfig{{Radius: -1}}}, true},
		{"degenerate segment", &SimConfig{Segments: []SegmentConfig{{X1: 1, Y1: 1, X2: 1, Y2: 1}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetTickIntervalFallback(t *testing.T) {
	cfg := &SimConfig{TickInterval: ptrString("garbage")}
	if got := cfg.GetTickInterval(); got != 100*time.Millisecond {
		t.Errorf("GetTickInterval() = %v, want 100ms fallback", got)
	}
}

func TestLoadDefaultConfigFile(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	empty := EmptySimConfig()

	// The defaults file and the getters must agree.
	if cfg.GetDefaultDist() != empty.GetDefaultDist() {
		t.Errorf("default_dist: file %f, getter %f", cfg.GetDefaultDist(), empty.GetDefaultDist())
	}
	if cfg.GetSampleCount() != empty.GetSampleCount() {
		t.Errorf("sample_count: file %d, getter %d", cfg.GetSampleCount(), empty.GetSampleCount())
	}
	if cfg.GetAngularCutoff() != empty.GetAngularCutoff() {
		t.Errorf("angular_cutoff: file %f, getter %f", cfg.GetAngularCutoff(), empty.GetAngularCutoff())
	}
	if cfg.GetFitWindow() != empty.GetFitWindow() {
		t.Errorf("fit_window: file %f, getter %f", cfg.GetFitWindow(), empty.GetFitWindow())
	}
	if cfg.GetTickInterval() != empty.GetTickInterval() {
		t.Errorf("tick_interval: file %v, getter %v", cfg.GetTickInterval(), empty.GetTickInterval())
	}
}

func TestLoadExampleConfigFile(t *testing.T) {
	cfg, err := LoadSimConfig("../../config/sim.example.json")
	if err != nil {
		t.Fatalf("Failed to load example: %v", err)
	}
	if cfg.GetNoiseSigma() != 0.06 {
		t.Errorf("Expected 0.06, got %f", cfg.GetNoiseSigma())
	}
	if len(cfg.Circles) != 2 {
		t.Errorf("Expected 2 circles, got %d", len(cfg.Circles))
	}
}

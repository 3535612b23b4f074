package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"
)

// DefaultConfigPath is the path to the canonical simulation defaults file.
const DefaultConfigPath = "config/sim.defaults.json"

// SimConfig is the root configuration of a simulation run.
//
// Every field is optional; the Get* methods supply the default for fields
// left out of the JSON, so partial configs are safe.
type SimConfig struct {
	// Sensor params
	DefaultDist   *float64 `json:"default_dist,omitempty"`
	SampleCount   *int     `json:"sample_count,omitempty"`
	AngularCutoff *float64 `json:"angular_cutoff,omitempty"` // radians, half-width of the fan
	NoiseSigma    *float64 `json:"noise_sigma,omitempty"`    // absent or 0 disables noise
	Seed          *uint64  `json:"seed,omitempty"`           // absent uses the process-wide generator

	// Trajectory params
	StartX       *float64 `json:"start_x,omitempty"`
	StartY       *float64 `json:"start_y,omitempty"`
	StartHeading *float64 `json:"start_heading,omitempty"`
	Speed        *float64 `json:"speed,omitempty"` // m/s
	Omega        *float64 `json:"omega,omitempty"` // rad/s
	TickInterval *string  `json:"tick_interval,omitempty"`

	// Fit params
	FitWindow *float64 `json:"fit_window,omitempty"` // radians either side of the heading, 0 disables

	// Environment
	RoomWidth  *float64        `json:"room_width,omitempty"`
	RoomHeight *float64        `json:"room_height,omitempty"`
	Circles    []CircleConfig  `json:"circles,omitempty"`
	Segments   []SegmentConfig `json:"segments,omitempty"`
}

// CircleConfig is a circular obstacle.
type CircleConfig struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// SegmentConfig is a wall segment in addition to the room boundary.
type SegmentConfig struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }
func ptrString(v string) *string    { return &v }

// EmptySimConfig returns a SimConfig with all fields unset.
func EmptySimConfig() *SimConfig {
	return &SimConfig{}
}

// DefaultSimConfig returns a SimConfig with every scalar field set to its
// default. It matches config/sim.defaults.json.
func DefaultSimConfig() *SimConfig {
	c := EmptySimConfig()
	return &SimConfig{
		DefaultDist:   ptrFloat64(c.GetDefaultDist()),
		SampleCount:   ptrInt(c.GetSampleCount()),
		AngularCutoff: ptrFloat64(c.GetAngularCutoff()),
		NoiseSigma:    ptrFloat64(c.GetNoiseSigma()),
		StartX:        ptrFloat64(c.GetStartX()),
		StartY:        ptrFloat64(c.GetStartY()),
		StartHeading:  ptrFloat64(c.GetStartHeading()),
		Speed:         ptrFloat64(c.GetSpeed()),
		Omega:         ptrFloat64(c.GetOmega()),
		TickInterval:  ptrString("100ms"),
		FitWindow:     ptrFloat64(c.GetFitWindow()),
		RoomWidth:     ptrFloat64(c.GetRoomWidth()),
		RoomHeight:    ptrFloat64(c.GetRoomHeight()),
	}
}

// LoadSimConfig loads a SimConfig from a JSON file.
// The file must have a .json extension and be at most 1MB.
func LoadSimConfig(path string) (*SimConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptySimConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching upwards from the
// current directory. Panics if the file cannot be loaded; intended for
// tests.
func MustLoadDefaultConfig() *SimConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadSimConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *SimConfig) Validate() error {
	if c.DefaultDist != nil && *c.DefaultDist <= 0 {
		return fmt.Errorf("default_dist must be positive, got %f", *c.DefaultDist)
	}
	if c.SampleCount != nil && *c.SampleCount < 0 {
		return fmt.Errorf("sample_count must be non-negative, got %d", *c.SampleCount)
	}
	if c.AngularCutoff != nil {
		if *c.AngularCutoff <= 0 || *c.AngularCutoff > math.Pi {
			return fmt.Errorf("angular_cutoff must be in (0, pi], got %f", *c.AngularCutoff)
		}
	}
	if c.NoiseSigma != nil && *c.NoiseSigma < 0 {
		return fmt.Errorf("noise_sigma must be non-negative, got %f", *c.NoiseSigma)
	}
	if c.FitWindow != nil && *c.FitWindow < 0 {
		return fmt.Errorf("fit_window must be non-negative, got %f", *c.FitWindow)
	}
	if c.TickInterval != nil && *c.TickInterval != "" {
		d, err := time.ParseDuration(*c.TickInterval)
		if err != nil {
			return fmt.Errorf("invalid tick_interval '%s': %w", *c.TickInterval, err)
		}
		if d <= 0 {
			return fmt.Errorf("tick_interval must be positive, got %s", d)
		}
	}
	if c.RoomWidth != nil && *c.RoomWidth <= 0 {
		return fmt.Errorf("room_width must be positive, got %f", *c.RoomWidth)
	}
	if c.RoomHeight != nil && *c.RoomHeight <= 0 {
		return fmt.Errorf("room_height must be positive, got %f", *c.RoomHeight)
	}
	for i, circle := range c.Circles {
		if circle.Radius < 0 {
			return fmt.Errorf("circles[%d].radius must be non-negative, got %f", i, circle.Radius)
		}
	}
	for i, s := range c.Segments {
		if s.X1 == s.X2 && s.Y1 == s.Y2 {
			return fmt.Errorf("segments[%d] has zero length", i)
		}
	}
	return nil
}

// GetDefaultDist returns the default_dist value or the default.
func (c *SimConfig) GetDefaultDist() float64 {
	if c.DefaultDist == nil {
		return 3.0
	}
	return *c.DefaultDist
}

// GetSampleCount returns the sample_count value or the default.
func (c *SimConfig) GetSampleCount() int {
	if c.SampleCount == nil {
		return 100
	}
	return *c.SampleCount
}

// GetAngularCutoff returns the angular_cutoff value or the default.
func (c *SimConfig) GetAngularCutoff() float64 {
	if c.AngularCutoff == nil {
		return math.Pi // full sweep
	}
	return *c.AngularCutoff
}

// GetNoiseSigma returns the noise_sigma value or the default.
func (c *SimConfig) GetNoiseSigma() float64 {
	if c.NoiseSigma == nil {
		return 0
	}
	return *c.NoiseSigma
}

// GetSeed returns the seed and whether one was configured.
func (c *SimConfig) GetSeed() (uint64, bool) {
	if c.Seed == nil {
		return 0, false
	}
	return *c.Seed, true
}

// GetStartX returns the start_x value or the default.
func (c *SimConfig) GetStartX() float64 {
	if c.StartX == nil {
		return 1.0
	}
	return *c.StartX
}

// GetStartY returns the start_y value or the default.
func (c *SimConfig) GetStartY() float64 {
	if c.StartY == nil {
		return 1.0
	}
	return *c.StartY
}

// GetStartHeading returns the start_heading value or the default.
func (c *SimConfig) GetStartHeading() float64 {
	if c.StartHeading == nil {
		return 0
	}
	return *c.StartHeading
}

// GetSpeed returns the speed value or the default.
func (c *SimConfig) GetSpeed() float64 {
	if c.Speed == nil {
		return 0.1
	}
	return *c.Speed
}

// GetOmega returns the omega value or the default.
func (c *SimConfig) GetOmega() float64 {
	if c.Omega == nil {
		return math.Pi
	}
	return *c.Omega
}

// GetTickInterval parses and returns the TickInterval as a time.Duration.
func (c *SimConfig) GetTickInterval() time.Duration {
	if c.TickInterval == nil || *c.TickInterval == "" {
		return 100 * time.Millisecond // default
	}
	d, err := time.ParseDuration(*c.TickInterval)
	if err != nil || d <= 0 {
		return 100 * time.Millisecond // default on parse error
	}
	return d
}

// GetFitWindow returns the fit_window value or the default.
func (c *SimConfig) GetFitWindow() float64 {
	if c.FitWindow == nil {
		return math.Pi / 4
	}
	return *c.FitWindow
}

// GetRoomWidth returns the room_width value or the default.
func (c *SimConfig) GetRoomWidth() float64 {
	if c.RoomWidth == nil {
		return 3.0
	}
	return *c.RoomWidth
}

// GetRoomHeight returns the room_height value or the default.
func (c *SimConfig) GetRoomHeight() float64 {
	if c.RoomHeight == nil {
		return 2.0
	}
	return *c.RoomHeight
}

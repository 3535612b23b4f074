// Package monitor renders simulated scans for offline inspection: PNG
// plots through gonum/plot and an HTML chart through go-echarts.
package monitor

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/linda/internal/lidarsim"
	"github.com/banshee-data/linda/internal/regression"
)

// ScanPlotter records every Nth scan of a run and writes plots afterwards.
type ScanPlotter struct {
	mu        sync.Mutex
	enabled   bool
	outputDir string
	every     int

	// maxRange bounds the distance axis; 0 autoscales.
	maxRange float64

	samples []ScanSample
}

// ScanSample is one recorded scan with its optional fit.
type ScanSample struct {
	Tick int
	Pose lidarsim.Pose
	Scan lidarsim.Scan
	// Fit is nil when no fit was made for this scan.
	Fit       *regression.Gaussian
	FitWindow float64
}

// NewScanPlotter creates a plotter keeping one scan out of every `every`
// ticks (values below 1 keep all). maxRange fixes the distance axis.
func NewScanPlotter(every int, maxRange float64) *ScanPlotter {
	if every < 1 {
		every = 1
	}
	return &ScanPlotter{every: every, maxRange: maxRange}
}

// Start initializes the plotter for a new run writing into outputDir.
func (sp *ScanPlotter) Start(outputDir string) error {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	sp.outputDir = outputDir
	sp.enabled = true
	sp.samples = nil
	return nil
}

// Stop disables recording. Call GeneratePlots() to produce output files.
func (sp *ScanPlotter) Stop() {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.enabled = false
}

// IsEnabled returns true if the plotter is currently recording.
func (sp *ScanPlotter) IsEnabled() bool {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.enabled
}

// Sample records s if the plotter is enabled and s.Tick falls on the
// recording interval. It reports whether the sample was kept.
func (sp *ScanPlotter) Sample(s ScanSample) bool {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if !sp.enabled || s.Tick%sp.every != 0 {
		return false
	}
	sp.samples = append(sp.samples, s)
	return true
}

// Samples returns a copy of the recorded samples.
func (sp *ScanPlotter) Samples() []ScanSample {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return append([]ScanSample(nil), sp.samples...)
}

// GeneratePlots writes one PNG per recorded scan plus an overlay of all of
// them. Returns the number of files written.
func (sp *ScanPlotter) GeneratePlots() (int, error) {
	sp.mu.Lock()
	samples := append([]ScanSample(nil), sp.samples...)
	outputDir := sp.outputDir
	sp.mu.Unlock()

	if outputDir == "" {
		return 0, fmt.Errorf("plotter was never started")
	}
	if len(samples) == 0 {
		return 0, nil
	}

	count := 0
	for _, s := range samples {
		file := filepath.Join(outputDir, fmt.Sprintf("scan_%05d.png", s.Tick))
		if err := sp.plotScan(s, file); err != nil {
			return count, fmt.Errorf("tick %d: %w", s.Tick, err)
		}
		count++
	}

	if err := sp.plotOverlay(samples, filepath.Join(outputDir, "scan_overlay.png")); err != nil {
		return count, fmt.Errorf("overlay: %w", err)
	}
	count++

	return count, nil
}

func (sp *ScanPlotter) newScanPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Relative angle (rad)"
	p.Y.Label.Text = "Distance (m)"
	p.X.Min = -math.Pi
	p.X.Max = math.Pi
	p.Y.Min = 0
	if sp.maxRange > 0 {
		p.Y.Max = sp.maxRange
	}
	p.Add(plotter.NewGrid())

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p
}

// plotScan draws distance against relative angle, with the fitted
// parabola over its window when present.
func (sp *ScanPlotter) plotScan(s ScanSample, file string) error {
	p := sp.newScanPlot(fmt.Sprintf("Tick %d - pose (%.2f, %.2f) heading %.2f rad",
		s.Tick, s.Pose.X, s.Pose.Y, s.Pose.Heading))

	scatter, err := plotter.NewScatter(scanXYs(s.Scan))
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 220, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(scatter)
	p.Legend.Add("measurement", scatter)

	if s.Fit != nil {
		fit := *s.Fit
		curve := plotter.NewFunction(fit.Predict)
		curve.XMin = -s.FitWindow
		curve.XMax = s.FitWindow
		curve.Color = color.RGBA{B: 200, A: 255}
		curve.Width = vg.Points(1.5)
		p.Add(curve)
		p.Legend.Add(fmt.Sprintf("fit %.3f + %.3fx + %.3fx²", fit.Mean[0], fit.Mean[1], fit.Mean[2]), curve)
	}

	if err := p.Save(10*vg.Inch, 5*vg.Inch, file); err != nil {
		return fmt.Errorf("save scan plot: %w", err)
	}
	return nil
}

// plotOverlay draws every recorded scan as a line, one color per tick.
func (sp *ScanPlotter) plotOverlay(samples []ScanSample, file string) error {
	p := sp.newScanPlot(fmt.Sprintf("%d scans", len(samples)))
	colors := generateColors(len(samples))

	for i, s := range samples {
		if s.Scan.Len() == 0 {
			continue
		}
		line, err := plotter.NewLine(scanXYs(s.Scan))
		if err != nil {
			return err
		}
		line.Color = colors[i]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("tick %d", s.Tick), line)
	}

	if err := p.Save(14*vg.Inch, 6*vg.Inch, file); err != nil {
		return fmt.Errorf("save overlay plot: %w", err)
	}
	return nil
}

func scanXYs(scan lidarsim.Scan) plotter.XYs {
	pts := make(plotter.XYs, scan.Len())
	for i := range scan.Angles {
		pts[i] = plotter.XY{X: scan.Angles[i], Y: scan.Distances[i]}
	}
	return pts
}

// generateColors creates a palette of n distinct colors.
func generateColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}

	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL to RGB (0-255 range).
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	if s == 0 {
		v := uint8(l * 255)
		return v, v, v
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return uint8(hueToRGB(p, q, h+1.0/3.0) * 255),
		uint8(hueToRGB(p, q, h) * 255),
		uint8(hueToRGB(p, q, h-1.0/3.0) * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

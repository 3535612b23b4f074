package lidarsim

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/banshee-data/linda/internal/geom"
)

// ErrInvalidNoise is returned for a negative noise standard deviation.
var ErrInvalidNoise = errors.New("noise sigma must be non-negative")

// Config describes the simulated sensor.
type Config struct {
	// DefaultDist is reported for rays that hit nothing.
	DefaultDist float64
	// SampleCount is the number of rays per sweep.
	SampleCount int
	// AngularCutoff is the half-width of the fan in radians. Samples cover
	// (heading - AngularCutoff, heading + AngularCutoff].
	AngularCutoff float64
}

// DefaultConfig returns a full 360 degree sweep of 100 rays with a 10 m
// fallback range.
func DefaultConfig() Config {
	return Config{
		DefaultDist:   10.0,
		SampleCount:   100,
		AngularCutoff: math.Pi,
	}
}

// Scan holds one sweep. Angles are relative to the pose heading and
// Distances[i] is the range measured at Angles[i].
type Scan struct {
	Angles    []float64
	Distances []float64
}

func (s Scan) Len() int {
	return len(s.Angles)
}

// Window returns the samples with |angle| <= halfWidth, preserving order.
func (s Scan) Window(halfWidth float64) Scan {
	var out Scan
	for i, a := range s.Angles {
		if math.Abs(a) <= halfWidth {
			out.Angles = append(out.Angles, a)
			out.Distances = append(out.Distances, s.Distances[i])
		}
	}
	return out
}

// Points converts the scan to world-frame points as seen from pose.
func (s Scan) Points(pose Pose) []geom.Vector2 {
	origin := pose.Position()
	points := make([]geom.Vector2, len(s.Angles))
	for i, a := range s.Angles {
		dir := geom.Vector2{X: 1}.Rotate(pose.Heading + a)
		points[i] = origin.Add(dir.Scale(s.Distances[i]))
	}
	return points
}

// Simulator produces scans. The random source is only read by
// SampleWithNoise; a Simulator sharing its source with other goroutines
// must be guarded by the caller.
type Simulator struct {
	cfg Config
	src rand.Source
}

// NewSimulator returns a simulator for cfg. src feeds the measurement
// noise; nil uses the process-wide generator.
func NewSimulator(cfg Config, src rand.Source) *Simulator {
	return &Simulator{cfg: cfg, src: src}
}

// Config returns the sensor configuration.
func (s *Simulator) Config() Config {
	return s.cfg
}

// Sample sweeps the sensor from pose across obstacles without noise.
func (s *Simulator) Sample(pose Pose, obstacles []geom.Obstacle) (Scan, error) {
	return s.sample(pose, obstacles, nil)
}

// SampleWithNoise is Sample with one independent Normal(0, sigma) draw added
// to every distance.
func (s *Simulator) SampleWithNoise(pose Pose, obstacles []geom.Obstacle, sigma float64) (Scan, error) {
	if sigma < 0 || math.IsNaN(sigma) {
		return Scan{}, fmt.Errorf("%w: got %f", ErrInvalidNoise, sigma)
	}
	noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: s.src}
	return s.sample(pose, obstacles, &noise)
}

func (s *Simulator) sample(pose Pose, obstacles []geom.Obstacle, noise *distuv.Normal) (Scan, error) {
	n := s.cfg.SampleCount
	if n <= 0 {
		return Scan{}, nil
	}

	origin := pose.Position()
	start := pose.Heading - s.cfg.AngularCutoff
	delta := 2 * s.cfg.AngularCutoff / float64(n)

	scan := Scan{
		Angles:    make([]float64, 0, n),
		Distances: make([]float64, 0, n),
	}

	// The start angle itself is never sampled; the last ray sits exactly
	// on heading + cutoff.
	for i := 1; i <= n; i++ {
		angle := start + float64(i)*delta
		ray := geom.Ray{Origin: origin, Direction: geom.Vector2{X: 1}.Rotate(angle)}

		dist, err := s.closestHit(ray, obstacles)
		if err != nil {
			return Scan{}, fmt.Errorf("sample %d at %.4f rad: %w", i, angle, err)
		}
		if noise != nil {
			dist += noise.Rand()
		}

		scan.Angles = append(scan.Angles, angle-pose.Heading)
		scan.Distances = append(scan.Distances, dist)
	}
	return scan, nil
}

// closestHit returns the distance from the ray origin to the nearest
// intersection, or DefaultDist when nothing is hit.
func (s *Simulator) closestHit(ray geom.Ray, obstacles []geom.Obstacle) (float64, error) {
	best := math.Inf(1)
	for _, obs := range obstacles {
		points, err := obs.IntersectRay(ray)
		if err != nil {
			return 0, err
		}
		for _, p := range points {
			if d := p.DistanceTo(ray.Origin); d < best {
				best = d
			}
		}
	}
	if math.IsInf(best, 1) {
		return s.cfg.DefaultDist, nil
	}
	return best, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/banshee-data/linda/internal/config"
	"github.com/banshee-data/linda/internal/db"
	"github.com/banshee-data/linda/internal/geom"
	"github.com/banshee-data/linda/internal/lidarsim"
	"github.com/banshee-data/linda/internal/monitor"
	"github.com/banshee-data/linda/internal/monitoring"
	"github.com/banshee-data/linda/internal/regression"
	"github.com/banshee-data/linda/internal/timeutil"
)

// minClearance is the gap kept between the sensor and whatever is straight
// ahead when driving forward.
const minClearance = 0.1

type runOptions struct {
	Ticks    int
	Forward  bool
	Turn     bool
	Realtime bool

	// Clock paces realtime runs. Nil uses the wall clock.
	Clock timeutil.Clock

	// Optional sinks. Nil disables them.
	Store   *db.DB
	Plotter *monitor.ScanPlotter
}

type runResult struct {
	Ticks int
	Fits  int
	Pose  lidarsim.Pose
}

// buildEnvironment returns the configured room with extra walls and circles.
func buildEnvironment(cfg *config.SimConfig) lidarsim.Environment {
	env := lidarsim.Room(cfg.GetRoomWidth(), cfg.GetRoomHeight())

	segments := make([]geom.LineSegment, 0, len(cfg.Segments))
	for _, s := range cfg.Segments {
		segments = append(segments, geom.LineSegment{
			Start: geom.Vector2{X: s.X1, Y: s.Y1},
			End:   geom.Vector2{X: s.X2, Y: s.Y2},
		})
	}
	circles := make([]geom.Circle, 0, len(cfg.Circles))
	for _, c := range cfg.Circles {
		circles = append(circles, geom.Circle{Pos: geom.Vector2{X: c.X, Y: c.Y}, Radius: c.Radius})
	}
	return env.WithSegments(segments...).WithCircles(circles...)
}

func newSimulator(cfg *config.SimConfig) *lidarsim.Simulator {
	var src rand.Source
	if seed, ok := cfg.GetSeed(); ok {
		src = rand.NewPCG(seed, seed)
	}
	return lidarsim.NewSimulator(lidarsim.Config{
		DefaultDist:   cfg.GetDefaultDist(),
		SampleCount:   cfg.GetSampleCount(),
		AngularCutoff: cfg.GetAngularCutoff(),
	}, src)
}

// run steps the simulation opts.Ticks times. It returns early with the
// context error when ctx is cancelled.
func run(ctx context.Context, cfg *config.SimConfig, env lidarsim.Environment, opts runOptions) (runResult, error) {
	sim := newSimulator(cfg)
	obstacles := env.Obstacles()
	sigma := cfg.GetNoiseSigma()
	window := cfg.GetFitWindow()
	interval := cfg.GetTickInterval()
	dt := interval.Seconds()

	res := runResult{
		Pose: lidarsim.Pose{X: cfg.GetStartX(), Y: cfg.GetStartY(), Heading: cfg.GetStartHeading()},
	}

	var pace <-chan time.Time
	if opts.Realtime {
		clock := opts.Clock
		if clock == nil {
			clock = timeutil.RealClock{}
		}
		ticker := clock.NewTicker(interval)
		defer ticker.Stop()
		pace = ticker.C()
	}

	for tick := 0; tick < opts.Ticks; tick++ {
		if pace != nil {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case <-pace:
			}
		} else if err := ctx.Err(); err != nil {
			return res, err
		}

		scan, err := sim.SampleWithNoise(res.Pose, obstacles, sigma)
		if err != nil {
			return res, fmt.Errorf("tick %d: %w", tick, err)
		}

		fit, err := fitAhead(scan, window)
		if err != nil {
			return res, fmt.Errorf("tick %d: %w", tick, err)
		}
		if fit != nil {
			res.Fits++
			monitoring.Debugf("tick %d pose=%+v fit=%.4f", tick, res.Pose, fit.Mean)
		} else {
			monitoring.Debugf("tick %d pose=%+v no fit", tick, res.Pose)
		}

		if opts.Store != nil {
			id, err := opts.Store.RecordScan(tick, res.Pose, sigma, scan)
			if err != nil {
				return res, fmt.Errorf("tick %d: %w", tick, err)
			}
			if fit != nil {
				if err := opts.Store.RecordFit(id, window, *fit); err != nil {
					return res, fmt.Errorf("tick %d: %w", tick, err)
				}
			}
		}

		if opts.Plotter != nil {
			opts.Plotter.Sample(monitor.ScanSample{Tick: tick, Pose: res.Pose, Scan: scan, Fit: fit, FitWindow: window})
		}

		res.Pose = step(res.Pose, scan, cfg.GetSpeed()*dt, cfg.GetOmega()*dt, opts)
		res.Ticks++
	}
	return res, nil
}

// fitAhead fits a quadratic to the samples within window of the heading.
// It returns nil when fitting is disabled or the window holds too few
// samples to determine the curve.
func fitAhead(scan lidarsim.Scan, window float64) (*regression.Gaussian, error) {
	if window <= 0 {
		return nil, nil
	}
	w := scan.Window(window)
	if w.Len() < 3 {
		return nil, nil
	}
	fit, err := regression.QuadraticRegression(nil, w.Angles, w.Distances)
	if errors.Is(err, regression.ErrSingularCovariance) {
		monitoring.Logf("skipping fit over %d samples: %v", w.Len(), err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fit, nil
}

// step advances pose by one tick. Forward motion is skipped when it would
// bring the sensor within minClearance of the reading straight ahead.
func step(pose lidarsim.Pose, scan lidarsim.Scan, dist, turn float64, opts runOptions) lidarsim.Pose {
	if opts.Forward && distanceAhead(scan) > dist+minClearance {
		pose = pose.Advance(dist)
	}
	if opts.Turn {
		pose = pose.Rotate(turn)
	}
	return pose
}

// distanceAhead returns the reading closest to the heading, or +Inf for an
// empty scan.
func distanceAhead(scan lidarsim.Scan) float64 {
	best, dist := math.Inf(1), math.Inf(1)
	for i, a := range scan.Angles {
		if abs := math.Abs(a); abs < best {
			best = abs
			dist = scan.Distances[i]
		}
	}
	return dist
}

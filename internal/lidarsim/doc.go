// Package lidarsim simulates a rotating 2D range sensor.
//
// A Simulator sweeps a fan of rays from a Pose across a set of
// geom.Obstacle values and reports, per ray, the relative angle and the
// distance to the closest hit. Key types: Pose, Simulator, Scan,
// Environment.
//
// The package has no knowledge of rendering, input or timing. Callers
// construct the environment, advance the pose and sample once per tick.
package lidarsim

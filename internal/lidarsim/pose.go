package lidarsim

import "github.com/banshee-data/linda/internal/geom"

// Pose is the sensor position (meters) and heading (radians, any range).
type Pose struct {
	X, Y    float64
	Heading float64
}

// Position returns the pose origin as a vector.
func (p Pose) Position() geom.Vector2 {
	return geom.Vector2{X: p.X, Y: p.Y}
}

// Forward returns the unit vector along the heading.
func (p Pose) Forward() geom.Vector2 {
	return geom.Vector2{X: 1}.Rotate(p.Heading)
}

// Advance returns the pose moved dist meters along its heading. Negative
// distances move backwards.
func (p Pose) Advance(dist float64) Pose {
	pos := p.Position().Add(p.Forward().Scale(dist))
	return Pose{X: pos.X, Y: pos.Y, Heading: p.Heading}
}

// Rotate returns the pose turned by angle radians (counter-clockwise).
func (p Pose) Rotate(angle float64) Pose {
	return Pose{X: p.X, Y: p.Y, Heading: p.Heading + angle}
}

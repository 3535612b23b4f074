package lidarsim

import "github.com/banshee-data/linda/internal/geom"

// Environment is the static scene scanned by the simulator.
type Environment struct {
	Segments []geom.LineSegment
	Circles  []geom.Circle
}

// Room returns an environment bounded by four walls, with the bottom-left
// corner at the origin. Walls are listed bottom, right, top, left.
func Room(width, height float64) Environment {
	bl := geom.Vector2{}
	br := geom.Vector2{X: width}
	tr := geom.Vector2{X: width, Y: height}
	tl := geom.Vector2{Y: height}

	return Environment{
		Segments: []geom.LineSegment{
			{Start: bl, End: br},
			{Start: br, End: tr},
			{Start: tr, End: tl},
			{Start: tl, End: bl},
		},
	}
}

// WithCircles returns a copy of e with circles appended.
func (e Environment) WithCircles(circles ...geom.Circle) Environment {
	out := Environment{
		Segments: append([]geom.LineSegment(nil), e.Segments...),
		Circles:  make([]geom.Circle, 0, len(e.Circles)+len(circles)),
	}
	out.Circles = append(out.Circles, e.Circles...)
	out.Circles = append(out.Circles, circles...)
	return out
}

// Obstacles flattens the environment, segments first.
func (e Environment) Obstacles() []geom.Obstacle {
	obstacles := make([]geom.Obstacle, 0, len(e.Segments)+len(e.Circles))
	for _, s := range e.Segments {
		obstacles = append(obstacles, s)
	}
	for _, c := range e.Circles {
		obstacles = append(obstacles, c)
	}
	return obstacles
}

// WithSegments returns a copy of e with segments appended.
func (e Environment) WithSegments(segments ...geom.LineSegment) Environment {
	out := e.WithCircles()
	out.Segments = append(out.Segments, segments...)
	return out
}

// Extent returns the largest X and Y reached by any obstacle, clamped at
// zero. For a Room it is the room size.
func (e Environment) Extent() (width, height float64) {
	grow := func(p geom.Vector2) {
		width = max(width, p.X)
		height = max(height, p.Y)
	}
	for _, s := range e.Segments {
		grow(s.Start)
		grow(s.End)
	}
	for _, c := range e.Circles {
		grow(c.Pos.Add(geom.Vector2{X: c.Radius, Y: c.Radius}))
	}
	return width, height
}

package lidarsim

import (
	"math"
	"testing"

	"github.com/banshee-data/linda/internal/geom"
)

func TestPoseAdvance(t *testing.T) {
	testCases := []struct {
		name string
		pose Pose
		dist float64
		want Pose
	}{
		{"east", Pose{X: 1, Y: 1}, 0.5, Pose{X: 1.5, Y: 1}},
		{"north", Pose{X: 1, Y: 1, Heading: math.Pi / 2}, 0.5, Pose{X: 1, Y: 1.5, Heading: math.Pi / 2}},
		{"backwards", Pose{X: 1, Y: 1}, -0.25, Pose{X: 0.75, Y: 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.pose.Advance(tc.dist)
			if !got.Position().IsEqual(tc.want.Position()) || got.Heading != tc.want.Heading {
				t.Errorf("Advance(%f) = %+v, want %+v", tc.dist, got, tc.want)
			}
		})
	}
}

func TestPoseRotate(t *testing.T) {
	p := Pose{X: 1, Y: 2, Heading: 0.5}
	got := p.Rotate(-0.25)
	if got.X != 1 || got.Y != 2 || got.Heading != 0.25 {
		t.Errorf("Rotate = %+v, want {1 2 0.25}", got)
	}
	if p.Heading != 0.5 {
		t.Error("Rotate must not modify the receiver")
	}
}

func TestRoomWalls(t *testing.T) {
	env := Room(3, 2)
	if len(env.Segments) != 4 {
		t.Fatalf("expected 4 walls, got %d", len(env.Segments))
	}

	want := []geom.LineSegment{
		{Start: geom.Vector2{}, End: geom.Vector2{X: 3}},
		{Start: geom.Vector2{X: 3}, End: geom.Vector2{X: 3, Y: 2}},
		{Start: geom.Vector2{X: 3, Y: 2}, End: geom.Vector2{Y: 2}},
		{Start: geom.Vector2{Y: 2}, End: geom.Vector2{}},
	}
	for i := range want {
		if !env.Segments[i].IsEqual(&want[i]) {
			t.Errorf("wall %d = %v, want %v", i, env.Segments[i], want[i])
		}
	}
}

func TestEnvironmentObstacles(t *testing.T) {
	base := Room(3, 2)
	env := base.WithCircles(geom.Circle{Pos: geom.Vector2{X: 2, Y: 1}, Radius: 0.2})

	if len(base.Circles) != 0 {
		t.Error("WithCircles must not modify the receiver")
	}

	obstacles := env.Obstacles()
	if len(obstacles) != 5 {
		t.Fatalf("expected 5 obstacles, got %d", len(obstacles))
	}
	for i := 0; i < 4; i++ {
		if _, ok := obstacles[i].(geom.LineSegment); !ok {
			t.Errorf("obstacle %d is %T, want geom.LineSegment", i, obstacles[i])
		}
	}
	if _, ok := obstacles[4].(geom.Circle); !ok {
		t.Errorf("obstacle 4 is %T, want geom.Circle", obstacles[4])
	}
}

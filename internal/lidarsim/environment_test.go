package lidarsim

import (
	"testing"

	"github.com/banshee-data/linda/internal/geom"
)

func TestRoom_WallOrder(t *testing.T) {
	env := Room(3, 2)

	want := []geom.LineSegment{
		{Start: geom.Vector2{X: 0, Y: 0}, End: geom.Vector2{X: 3, Y: 0}},
		{Start: geom.Vector2{X: 3, Y: 0}, End: geom.Vector2{X: 3, Y: 2}},
		{Start: geom.Vector2{X: 3, Y: 2}, End: geom.Vector2{X: 0, Y: 2}},
		{Start: geom.Vector2{X: 0, Y: 2}, End: geom.Vector2{X: 0, Y: 0}},
	}
	if len(env.Segments) != len(want) {
		t.Fatalf("got %d walls, want %d", len(env.Segments), len(want))
	}
	for i := range want {
		if env.Segments[i] != want[i] {
			t.Errorf("wall %d = %v, want %v", i, env.Segments[i], want[i])
		}
	}
	if len(env.Circles) != 0 {
		t.Errorf("expected no circles, got %d", len(env.Circles))
	}
}

func TestEnvironment_WithDoesNotAlias(t *testing.T) {
	base := Room(3, 2)
	withCircle := base.WithCircles(geom.Circle{Pos: geom.Vector2{X: 1, Y: 1}, Radius: 0.2})
	withWall := base.WithSegments(geom.LineSegment{End: geom.Vector2{X: 1, Y: 1}})

	if len(base.Circles) != 0 || len(base.Segments) != 4 {
		t.Fatalf("base environment modified: %d segments, %d circles", len(base.Segments), len(base.Circles))
	}
	if len(withCircle.Circles) != 1 || len(withCircle.Segments) != 4 {
		t.Errorf("WithCircles: %d segments, %d circles", len(withCircle.Segments), len(withCircle.Circles))
	}
	if len(withWall.Segments) != 5 || len(withWall.Circles) != 0 {
		t.Errorf("WithSegments: %d segments, %d circles", len(withWall.Segments), len(withWall.Circles))
	}

	withWall.Segments[0].Start.X = 99
	if base.Segments[0].Start.X != 0 {
		t.Error("WithSegments shares backing array with base")
	}
}

func TestEnvironment_Obstacles(t *testing.T) {
	env := Room(3, 2).WithCircles(geom.UnitCircle())

	obstacles := env.Obstacles()
	if len(obstacles) != 5 {
		t.Fatalf("got %d obstacles, want 5", len(obstacles))
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

func TestEnvironment_Extent(t *testing.T) {
	tests := []struct {
		name  string
		env   Environment
		wantW float64
		wantH float64
	}{
		{"empty", Environment{}, 0, 0},
		{"room", Room(3, 2), 3, 2},
		{"circle beyond room", Room(3, 2).WithCircles(geom.Circle{Pos: geom.Vector2{X: 3, Y: 1}, Radius: 0.5}), 3.5, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.env.Extent()
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Extent() = (%v, %v), want (%v, %v)", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

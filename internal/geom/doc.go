// Package geom owns the 2D geometry used by the lidar simulator.
//
// Responsibilities: vector algebra, rays, quadratic root finding and
// ray intersection against circles and line segments.
// Key types: Vector2, Ray, Circle, LineSegment, Obstacle.
//
// All types are values. Every tolerance check in this package and its
// callers uses Epsilon.
package geom

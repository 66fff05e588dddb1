// Package geometry provides the small amount of vector math needed to route
// diagram arrows: points, axis-aligned rectangles and the intersection of a
// line segment with a rectangle's boundary.
package geometry

import "math"

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Norm returns the Euclidean length of the vector.
func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (p Point) Normalize() Point {
	n := p.Norm()
	if n == 0 {
		return Point{}
	}
	return Point{X: p.X / n, Y: p.Y / n}
}

// PerpendicularLeft rotates the vector by 90 degrees: (x, y) becomes (-y, x).
func (p Point) PerpendicularLeft() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// RectCenteredAround returns the rectangle of the given size whose center is c.
func RectCenteredAround(c Point, width, height float64) Rect {
	return Rect{
		Left:   c.X - width/2,
		Top:    c.Y - height/2,
		Width:  width,
		Height: height,
	}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// Contains reports whether p lies inside r. Points on the edges count as inside.
func (r Rect) Contains(p Point) bool {
	return r.Left <= p.X && p.X <= r.Left+r.Width &&
		r.Top <= p.Y && p.Y <= r.Top+r.Height
}

// SegmentIntersections returns the points where the segment p1→p2 crosses the
// boundary of r, in left, right, top, bottom order. A segment that passes
// through two opposite sides yields two points; one that stays inside or
// outside yields none.
func (r Rect) SegmentIntersections(p1, p2 Point) []Point {
	d := p2.Sub(p1)

	var ts []float64
	if d.X != 0 {
		ts = append(ts, (r.Left-p1.X)/d.X, (r.Left+r.Width-p1.X)/d.X)
	}
	if d.Y != 0 {
		ts = append(ts, (r.Top-p1.Y)/d.Y, (r.Top+r.Height-p1.Y)/d.Y)
	}

	var result []Point
	for _, t := range ts {
		if t < 0 || t > 1 {
			continue
		}
		p := p1.Add(d.Mul(t))
		// The boundary lines extend past the rectangle.
		if r.Contains(p) {
			result = append(result, p)
		}
	}
	return result
}

// ArrowEndpoints computes where an arrow between the centers of from and to
// should start and end so that it does not run under either node's label.
// bend is the arrow's curvature in degrees, positive curving to the left of
// the direction of travel. shift moves the whole arrow sideways by that
// distance, positive to the right of the direction of travel, as parallel
// arrows are drawn. The arrow is modelled as a quadratic curve; each end is
// trimmed against the chord to the curve's control point. When a rectangle
// has no intersection (for example when it is empty), the shifted center is
// used.
func ArrowEndpoints(from, to Rect, bend, shift float64) (start, end Point) {
	fromCenter, toCenter := from.Center(), to.Center()
	d := toCenter.Sub(fromCenter)
	normal := d.PerpendicularLeft().Normalize()

	fromCenter = fromCenter.Add(normal.Mul(shift))
	toCenter = toCenter.Add(normal.Mul(shift))
	m := fromCenter.Add(toCenter).Mul(0.5)

	offset := d.Norm() * math.Tan(-bend*math.Pi/180) / 2
	control := m.Add(normal.Mul(offset))

	start, end = fromCenter, toCenter
	if ps := from.SegmentIntersections(fromCenter, control); len(ps) > 0 {
		start = ps[0]
	}
	if ps := to.SegmentIntersections(control, toCenter); len(ps) > 0 {
		end = ps[0]
	}
	return start, end
}

package section

import "math"

// MMToM converts millimeter input to the meters used by profiles.
const MMToM = 0.001

// CircleSegments is the number of straight segments approximating a
// circular ring.
const CircleSegments = 32

// Point is a 2D coordinate in meters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Ring is a closed polyline. The closing edge from the last vertex back
// to the first is implicit; the first vertex is not repeated.
type Ring []Point

// Profile is a closed cross-section outline. Outer is counter-clockwise,
// every hole is clockwise and lies strictly inside Outer.
type Profile struct {
	Outer Ring   `json:"outer"`
	Holes []Ring `json:"holes,omitempty"`
}

// Closed returns the vertices with the first one appended again, as
// needed by path-drawing consumers.
func (r Ring) Closed() []Point {
	if len(r) == 0 {
		return nil
	}
	out := make([]Point, 0, len(r)+1)
	out = append(out, r...)
	return append(out, r[0])
}

// SignedArea is positive for counter-clockwise rings.
func (r Ring) SignedArea() float64 {
	var sum float64
	n := len(r)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += r[i].X*r[j].Y - r[j].X*r[i].Y
	}
	return sum / 2
}

// Reversed returns the ring with opposite winding.
func (r Ring) Reversed() Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// Contains reports whether p lies inside the ring (even-odd rule).
// Points exactly on an edge may go either way.
func (r Ring) Contains(p Point) bool {
	inside := false
	n := len(r)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := r[i], r[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// SelfIntersects reports whether any two non-adjacent edges of the ring
// touch or cross, or any edge is degenerate.
func (r Ring) SelfIntersects() bool {
	n := len(r)
	if n < 3 {
		return true
	}
	for i := 0; i < n; i++ {
		a1, a2 := r[i], r[(i+1)%n]
		if a1 == a2 {
			return true
		}
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			b1, b2 := r[j], r[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

func orient(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func onSegment(a, b, p Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

func segmentsIntersect(p1, p2, q1, q2 Point) bool {
	d1 := orient(q1, q2, p1)
	d2 := orient(q1, q2, p2)
	d3 := orient(p1, p2, q1)
	d4 := orient(p1, p2, q2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	switch {
	case d1 == 0 && onSegment(q1, q2, p1):
		return true
	case d2 == 0 && onSegment(q1, q2, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, q1):
		return true
	case d4 == 0 && onSegment(p1, p2, q2):
		return true
	}
	return false
}

// Bounds returns the axis-aligned bounding box of the outer ring.
func (p *Profile) Bounds() (minX, minY, maxX, maxY float64) {
	if len(p.Outer) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = p.Outer[0].X, p.Outer[0].X
	minY, maxY = p.Outer[0].Y, p.Outer[0].Y
	for _, v := range p.Outer {
		minX = math.Min(minX, v.X)
		maxX = math.Max(maxX, v.X)
		minY = math.Min(minY, v.Y)
		maxY = math.Max(maxY, v.Y)
	}
	return minX, minY, maxX, maxY
}

// Rings returns the outer ring followed by the holes.
func (p *Profile) Rings() []Ring {
	out := make([]Ring, 0, 1+len(p.Holes))
	out = append(out, p.Outer)
	return append(out, p.Holes...)
}

// Transform returns a copy of p with f applied to every vertex.
// f must preserve orientation.
func (p *Profile) Transform(f func(Point) Point) *Profile {
	apply := func(r Ring) Ring {
		out := make(Ring, len(r))
		for i, v := range r {
			out[i] = f(v)
		}
		return out
	}
	q := &Profile{Outer: apply(p.Outer)}
	for _, h := range p.Holes {
		q.Holes = append(q.Holes, apply(h))
	}
	return q
}

// Rotated orients the profile for rendering. The weak axis turns the
// section by 90° so its flanges lie in the vertical plane; strong and
// both leave it unchanged.
func (p *Profile) Rotated(axis Axis) *Profile {
	if axis != AxisWeak {
		return p.Transform(func(v Point) Point { return v })
	}
	return p.Transform(func(v Point) Point { return Point{X: -v.Y, Y: v.X} })
}

// valid checks the closure invariants: a non-degenerate, simple outer
// ring and holes of opposite winding strictly inside it.
func (p *Profile) valid() bool {
	if len(p.Outer) < 3 || p.Outer.SignedArea() <= 0 || p.Outer.SelfIntersects() {
		return false
	}
	for _, h := range p.Holes {
		if len(h) < 3 || h.SignedArea() >= 0 || h.SelfIntersects() {
			return false
		}
		for _, v := range h {
			if !p.Outer.Contains(v) {
				return false
			}
		}
	}
	return true
}

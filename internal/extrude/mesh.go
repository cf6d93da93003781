// Package extrude sweeps section profiles along member centerlines into
// triangle meshes for rendering.
package extrude

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gosteel/internal/section"
)

// Vec3 is a point or direction in model space (meters).
type Vec3 struct {
	X, Y, Z float64
}

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Len() float64 { return math.Sqrt(a.Dot(a)) }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{a.Y*b.Z - a.Z*b.Y, a.Z*b.X - a.X*b.Z, a.X*b.Y - a.Y*b.X}
}

func (a Vec3) Unit() Vec3 {
	l := a.Len()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

// Mesh is an indexed triangle mesh. Triangles wind counter-clockwise
// seen from outside the solid.
type Mesh struct {
	Vertices  []Vec3
	Triangles [][3]int
}

// Normal returns the unit normal of triangle i.
func (m *Mesh) Normal(i int) Vec3 {
	t := m.Triangles[i]
	a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
	return b.Sub(a).Cross(c.Sub(a)).Unit()
}

// ErrDegenerateMember is returned for members of zero length.
var ErrDegenerateMember = errors.New("member start and end coincide")

// Frame is the local coordinate system of a member: the profile x axis
// maps to U, the profile y axis to V, and W runs from start to end.
type Frame struct {
	U, V, W Vec3
}

// MemberFrame builds the local frame of a member. The profile y axis
// (section depth) points along global +Z for horizontal members; for
// vertical members it points along global +Y.
func MemberFrame(start, end Vec3) (Frame, error) {
	axis := end.Sub(start)
	if axis.Len() == 0 {
		return Frame{}, ErrDegenerateMember
	}
	w := axis.Unit()
	up := Vec3{Z: 1}
	if math.Abs(w.Dot(up)) > 0.999 {
		up = Vec3{Y: 1}
	}
	u := up.Cross(w).Unit()
	v := w.Cross(u)
	return Frame{U: u, V: v, W: w}, nil
}

// Extrude sweeps p from start to end. Each ring contributes one band of
// side quads; the end caps are triangulated by ear clipping for solid
// sections and by bridging outer and inner ring for hollow ones.
func Extrude(p *section.Profile, start, end Vec3) (*Mesh, error) {
	if p == nil {
		return nil, errors.New("no profile to extrude")
	}
	f, err := MemberFrame(start, end)
	if err != nil {
		return nil, err
	}

	m := &Mesh{}
	place := func(pt section.Point, origin Vec3) Vec3 {
		return origin.Add(f.U.Scale(pt.X)).Add(f.V.Scale(pt.Y))
	}

	// Vertex layout per ring: n vertices at start followed by n at end.
	type band struct{ first, n int }
	var bands []band
	for _, r := range p.Rings() {
		b := band{first: len(m.Vertices), n: len(r)}
		for _, pt := range r {
			m.Vertices = append(m.Vertices, place(pt, start))
		}
		for _, pt := range r {
			m.Vertices = append(m.Vertices, place(pt, end))
		}
		bands = append(bands, b)
	}

	// Sides. Outer rings are counter-clockwise and holes clockwise, so
	// the same winding gives outward normals for both.
	for _, b := range bands {
		for i := 0; i < b.n; i++ {
			j := (i + 1) % b.n
			s0, s1 := b.first+i, b.first+j
			e0, e1 := s0+b.n, s1+b.n
			m.Triangles = append(m.Triangles, [3]int{s0, s1, e1}, [3]int{s0, e1, e0})
		}
	}

	var caps [][3]int
	switch len(p.Holes) {
	case 0:
		caps, err = earClip(p.Outer)
	case 1:
		caps, err = bridge(p.Outer, p.Holes[0])
	default:
		err = fmt.Errorf("cannot cap a profile with %d holes", len(p.Holes))
	}
	if err != nil {
		return nil, err
	}

	// Cap indices refer to the ring vertices in cap order: outer first,
	// then the hole. Start caps face -W so they are flipped.
	capIndex := func(k int, atEnd bool) int {
		b := bands[0]
		if k >= bands[0].n {
			b = bands[1]
			k -= bands[0].n
		}
		idx := b.first + k
		if atEnd {
			idx += b.n
		}
		return idx
	}
	for _, t := range caps {
		m.Triangles = append(m.Triangles,
			[3]int{capIndex(t[0], false), capIndex(t[2], false), capIndex(t[1], false)},
			[3]int{capIndex(t[0], true), capIndex(t[1], true), capIndex(t[2], true)},
		)
	}

	return m, nil
}

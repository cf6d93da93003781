package section

import "math"

// Build returns the profile for spec, or nil when the dimensions cannot
// describe a section. A nil result means "no profile": callers skip the
// member or fall back to an estimated shape.
func Build(spec Spec) *Profile {
	shape, err := ParseDims(spec.Family, spec.Dims, spec.MemberArea)
	if err != nil {
		return nil
	}
	p := shape.Outline()
	if p == nil || !p.valid() {
		return nil
	}
	return p
}

// BuildProfile is Build without a member area.
func BuildProfile(family Family, dims Dims) *Profile {
	return Build(Spec{Family: family, Dims: dims})
}

func mm(v float64) float64 { return v * MMToM }

// Outline of the H family: a 12-vertex I shape centered on both axes.
func (d HBeamDims) Outline() *Profile {
	h, b := mm(d.H)/2, mm(d.B)/2
	tw, tf := mm(d.T1)/2, mm(d.T2)
	return &Profile{Outer: Ring{
		{-b, -h}, {b, -h}, {b, -h + tf}, {tw, -h + tf},
		{tw, h - tf}, {b, h - tf}, {b, h}, {-b, h},
		{-b, h - tf}, {-tw, h - tf}, {-tw, -h + tf}, {-b, -h + tf},
	}}
}

func (d LippedLightHDims) Outline() *Profile {
	return d.HBeamDims.Outline()
}

func (d ChannelDims) Outline() *Profile {
	h, b := mm(d.H)/2, mm(d.B)/2
	tw, tf := mm(d.T1), mm(d.T2)
	return &Profile{Outer: Ring{
		{-b, -h}, {b, -h}, {b, -h + tf}, {-b + tw, -h + tf},
		{-b + tw, h - tf}, {b, h - tf}, {b, h}, {-b, h},
	}}
}

func (d LippedChannelDims) Outline() *Profile {
	h, a := mm(d.H)/2, mm(d.A)/2
	c, t := mm(d.C), mm(d.T)
	return &Profile{Outer: Ring{
		{-a, -h}, {a, -h}, {a, -h + c}, {a - t, -h + c},
		{a - t, -h + t}, {-a + t, -h + t}, {-a + t, h - t}, {a - t, h - t},
		{a - t, h - c}, {a, h - c}, {a, h}, {-a, h},
	}}
}

// Outline of an angle: heel at the origin before the shift, leg A up
// and leg B to the right, then moved so the centroid is at the origin.
func (d AngleDims) Outline() *Profile {
	a, b, t := mm(d.A), mm(d.B), mm(d.T)
	ring := Ring{{0, 0}, {b, 0}, {b, t}, {t, t}, {t, a}, {0, a}}
	cx, cy := ringCentroid(ring)
	p := &Profile{Outer: ring}
	return p.Transform(func(v Point) Point { return Point{X: v.X - cx, Y: v.Y - cy} })
}

func (d TubeDims) Outline() *Profile {
	hy, hx, t := mm(d.A)/2, mm(d.B)/2, mm(d.T)
	return &Profile{
		Outer: rect(hx, hy),
		Holes: []Ring{rect(hx-t, hy-t).Reversed()},
	}
}

func (d PipeDims) Outline() *Profile {
	r := mm(d.D) / 2
	return &Profile{
		Outer: circle(r),
		Holes: []Ring{circle(r - mm(d.T)).Reversed()},
	}
}

func (d RectDims) Outline() *Profile {
	return &Profile{Outer: rect(mm(d.B)/2, mm(d.H)/2)}
}

func (d CircleDims) Outline() *Profile {
	return &Profile{Outer: circle(mm(d.D) / 2)}
}

func (d EstimatedDims) Outline() *Profile {
	return &Profile{Outer: circle(mm(d.D) / 2)}
}

// rect is a counter-clockwise rectangle starting at the lower left.
func rect(hx, hy float64) Ring {
	return Ring{{-hx, -hy}, {hx, -hy}, {hx, hy}, {-hx, hy}}
}

// circle is a counter-clockwise polygon starting on the +x axis.
func circle(r float64) Ring {
	ring := make(Ring, CircleSegments)
	for i := range ring {
		theta := 2 * math.Pi * float64(i) / CircleSegments
		ring[i] = Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
	}
	return ring
}

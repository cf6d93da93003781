package section

import (
	"math"
)

// Shape is a validated, family-specific dimension record. Values are
// kept in millimeters; Outline converts to meters.
type Shape interface {
	Family() Family
	Outline() *Profile
}

// HBeamDims covers the H-beam variants, I-beams and light H sections.
type HBeamDims struct {
	Kind Family
	H    float64 // overall depth
	B    float64 // flange width
	T1   float64 // web thickness
	T2   float64 // flange thickness
}

// LippedLightHDims carries an optional lip length C. The lip is drawn
// in diagrams only; the profile is the plain H outline.
type LippedLightHDims struct {
	HBeamDims
	C float64
}

// ChannelDims covers channel and light channel sections. The web sits
// on the negative x side and the section opens towards +x.
type ChannelDims struct {
	Kind Family
	H    float64
	B    float64
	T1   float64 // web
	T2   float64 // flange
}

// LippedChannelDims is a cold-formed C section with inward lips.
type LippedChannelDims struct {
	H float64
	A float64 // flange width
	C float64 // lip length
	T float64
}

// AngleDims covers equal and unequal angles. Leg A is vertical, leg B
// horizontal.
type AngleDims struct {
	Kind Family
	A    float64
	B    float64
	T    float64
}

// TubeDims covers square and rectangular hollow sections. A is the
// depth (y), B the width (x).
type TubeDims struct {
	Kind Family
	A    float64
	B    float64
	T    float64
}

type PipeDims struct {
	D float64
	T float64
}

type RectDims struct {
	H float64
	B float64
}

type CircleDims struct {
	D float64
}

// EstimatedDims is the circular fallback. D is the resolved diameter.
type EstimatedDims struct {
	D float64
}

func (d HBeamDims) Family() Family { return d.Kind }
func (d LippedLightHDims) Family() Family { return LippedLightH }
func (d ChannelDims) Family() Family { return d.Kind }
func (d LippedChannelDims) Family() Family { return LippedChannel }
func (d AngleDims) Family() Family { return d.Kind }
func (d TubeDims) Family() Family { return d.Kind }
func (d PipeDims) Family() Family { return Pipe }
func (d RectDims) Family() Family { return Rectangle }
func (d CircleDims) Family() Family { return Circle }
func (d EstimatedDims) Family() Family { return Estimated }

// dimReader pulls symbols out of a raw record and remembers the first
// failure so the parse functions read straight through.
type dimReader struct {
	family Family
	dims   Dims
	err    *DimensionError
}

func (r *dimReader) fail(symbol, reason string) {
	if r.err == nil {
		r.err = &DimensionError{Family: r.family, Symbol: symbol, Reason: reason}
	}
}

func (r *dimReader) lookup(symbol string) (float64, bool) {
	v, ok := r.dims[symbol]
	if !ok {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		r.fail(symbol, "is not a finite number")
		return 0, true
	}
	if v <= 0 {
		r.fail(symbol, "must be positive")
		return 0, true
	}
	return v, true
}

// required returns the first present symbol among names.
func (r *dimReader) required(names ...string) float64 {
	for _, n := range names {
		if v, ok := r.lookup(n); ok {
			return v
		}
	}
	r.fail(names[0], "is required")
	return 0
}

func (r *dimReader) optional(name string, fallback float64) float64 {
	if v, ok := r.lookup(name); ok {
		return v
	}
	return fallback
}

func (r *dimReader) check(cond bool, reason string) {
	if !cond {
		r.fail("", reason)
	}
}

func (r *dimReader) result(s Shape) (Shape, error) {
	if r.err != nil {
		return nil, r.err
	}
	return s, nil
}

// ParseDims validates a raw dimension record for family and returns the
// family-specific record. memberArea (m²) is only used by Estimated.
func ParseDims(family Family, dims Dims, memberArea float64) (Shape, error) {
	r := &dimReader{family: family, dims: dims}

	switch family {
	case HWide, HMedium, HNarrow, IBeam, LightH:
		d := HBeamDims{Kind: family, H: r.required("H"), B: r.required("B"), T1: r.required("t1"), T2: r.required("t2")}
		checkH(r, d)
		return r.result(d)

	case LippedLightH:
		d := LippedLightHDims{
			HBeamDims: HBeamDims{Kind: family, H: r.required("H"), B: r.required("B"), T1: r.required("t1"), T2: r.required("t2")},
			C:         r.optional("C", 0),
		}
		checkH(r, d.HBeamDims)
		if d.C > 0 {
			r.check(d.C < d.H/2, "lip C must be shorter than H/2")
		}
		return r.result(d)

	case Channel, LightChannel:
		d := ChannelDims{Kind: family, H: r.required("H"), B: r.required("B", "A"), T1: r.required("t1", "t"), T2: r.required("t2", "t")}
		r.check(d.T1 < d.B, "web thickness must be less than B")
		r.check(2*d.T2 < d.H, "flange thickness must be less than H/2")
		return r.result(d)

	case LippedChannel:
		d := LippedChannelDims{H: r.required("H"), A: r.required("A"), C: r.required("C"), T: r.required("t")}
		r.check(2*d.T < d.A, "wall thickness must be less than A/2")
		r.check(d.C > d.T, "lip C must exceed the wall thickness")
		r.check(2*d.C < d.H, "lip C must be shorter than H/2")
		return r.result(d)

	case EqualAngle:
		a := r.required("A")
		d := AngleDims{Kind: family, A: a, B: a, T: r.required("t")}
		r.check(d.T < d.A, "leg thickness must be less than A")
		return r.result(d)

	case UnequalAngle:
		a := r.required("A")
		d := AngleDims{Kind: family, A: a, B: r.optional("B", a), T: r.required("t")}
		r.check(d.T < d.A && d.T < d.B, "leg thickness must be less than both legs")
		return r.result(d)

	case SquareTube:
		a := r.required("A")
		d := TubeDims{Kind: family, A: a, B: a, T: r.required("t")}
		r.check(2*d.T < d.A, "wall thickness must be less than A/2")
		return r.result(d)

	case RectTube:
		a := r.required("A")
		d := TubeDims{Kind: family, A: a, B: r.optional("B", a), T: r.required("t")}
		r.check(2*d.T < d.A && 2*d.T < d.B, "wall thickness must be less than half of each side")
		return r.result(d)

	case Pipe:
		d := PipeDims{D: r.required("D"), T: r.required("t")}
		r.check(2*d.T < d.D, "wall thickness must be less than D/2")
		return r.result(d)

	case Rectangle:
		return r.result(RectDims{H: r.required("H"), B: r.required("B")})

	case Circle:
		return r.result(CircleDims{D: r.required("D")})

	case Estimated:
		return parseEstimated(r, memberArea)
	}

	return nil, &DimensionError{Family: family, Reason: "unknown section family"}
}

func checkH(r *dimReader, d HBeamDims) {
	r.check(d.T1 < d.B, "web thickness t1 must be less than B")
	r.check(2*d.T2 < d.H, "flange thickness t2 must be less than H/2")
}

// parseEstimated resolves the fallback diameter: D_scaled, then D, then
// the member area.
func parseEstimated(r *dimReader, memberArea float64) (Shape, error) {
	for _, sym := range []string{"D_scaled", "D"} {
		if v, ok := r.lookup(sym); ok {
			return r.result(EstimatedDims{D: v})
		}
	}
	if math.IsNaN(memberArea) || math.IsInf(memberArea, 0) || memberArea <= 0 {
		r.fail("A", "member area is required when no diameter is given")
		return r.result(nil)
	}
	return r.result(EstimatedDims{D: EstimatedDiameter(memberArea)})
}

// EstimatedDiameter returns the diameter in millimeters of the solid
// circle whose area equals area (m²).
func EstimatedDiameter(area float64) float64 {
	areaMM2 := area * 1e6
	return 2 * math.Sqrt(areaMM2/math.Pi)
}

package section

import (
	"math"
	"sort"
)

// Properties holds geometric properties of a profile, in meters.
type Properties struct {
	// Overall dimensions
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Area   float64 `json:"area"` // m², holes subtracted

	// Centroid location
	CentroidX float64 `json:"centroid_x"`
	CentroidY float64 `json:"centroid_y"`

	// Second moments of area about the centroidal axes (m⁴)
	Ix float64 `json:"ix"`
	Iy float64 `json:"iy"`

	// Bounding box
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

// CalculateProperties computes geometric properties of the profile.
func (p *Profile) CalculateProperties() *Properties {
	props := &Properties{}
	if len(p.Outer) < 3 {
		return props
	}

	props.MinX, props.MinY, props.MaxX, props.MaxY = p.Bounds()
	props.Width = props.MaxX - props.MinX
	props.Height = props.MaxY - props.MinY

	// Holes wind clockwise, so summing signed contributions subtracts them.
	var area, sx, sy, ixx, iyy float64
	for _, r := range p.Rings() {
		a, mx, my, ix, iy := ringMoments(r)
		area += a
		sx += mx
		sy += my
		ixx += ix
		iyy += iy
	}

	props.Area = math.Abs(area)
	if area != 0 {
		props.CentroidX = sx / area
		props.CentroidY = sy / area
	}
	props.Ix = math.Abs(ixx - area*props.CentroidY*props.CentroidY)
	props.Iy = math.Abs(iyy - area*props.CentroidX*props.CentroidX)

	return props
}

// ringMoments uses the shoelace formula and returns the signed area, the
// first moments (∫x dA, ∫y dA) and the second moments about the origin
// (∫y² dA, ∫x² dA).
func ringMoments(r Ring) (area, mx, my, ix, iy float64) {
	n := len(r)
	for i := 0; i < n; i++ {
		a, b := r[i], r[(i+1)%n]
		cross := a.X*b.Y - b.X*a.Y
		area += cross
		mx += (a.X + b.X) * cross
		my += (a.Y + b.Y) * cross
		ix += (a.Y*a.Y + a.Y*b.Y + b.Y*b.Y) * cross
		iy += (a.X*a.X + a.X*b.X + b.X*b.X) * cross
	}
	return area / 2, mx / 6, my / 6, ix / 12, iy / 12
}

func ringCentroid(r Ring) (cx, cy float64) {
	a, mx, my, _, _ := ringMoments(r)
	if a == 0 {
		return 0, 0
	}
	return mx / a, my / a
}

// WidthAt returns the total material width of the profile along the
// horizontal line at y. Holes are excluded.
func (p *Profile) WidthAt(y float64) float64 {
	xs := p.intersectionsAtY(y)
	if len(xs) < 2 {
		return 0
	}
	var total float64
	for i := 0; i+1 < len(xs); i += 2 {
		total += xs[i+1] - xs[i]
	}
	return total
}

// SpansAt returns the filled [x0, x1] intervals along the horizontal
// line at y, sorted left to right.
func (p *Profile) SpansAt(y float64) [][2]float64 {
	xs := p.intersectionsAtY(y)
	var spans [][2]float64
	for i := 0; i+1 < len(xs); i += 2 {
		spans = append(spans, [2]float64{xs[i], xs[i+1]})
	}
	return spans
}

// intersectionsAtY finds all x where a horizontal line at y crosses any
// ring, sorted ascending.
func (p *Profile) intersectionsAtY(y float64) []float64 {
	var xs []float64
	for _, r := range p.Rings() {
		n := len(r)
		for i := 0; i < n; i++ {
			v1, v2 := r[i], r[(i+1)%n]
			if (v1.Y <= y && v2.Y > y) || (v2.Y <= y && v1.Y > y) {
				t := (y - v1.Y) / (v2.Y - v1.Y)
				xs = append(xs, v1.X+t*(v2.X-v1.X))
			}
		}
	}
	sort.Float64s(xs)
	return xs
}

package diagram

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/alexiusacademia/gosteel/internal/section"
)

const (
	// BaseFontSize is the label size in drawing units. It does not
	// follow the section size so labels stay legible for any section.
	BaseFontSize = 12.0

	// DrawingSize is the side of the square box the shape is fitted into.
	DrawingSize = 200.0
)

// ErrNoProfile is returned when the section dimensions cannot be drawn.
var ErrNoProfile = errors.New("no profile for section")

// Orientation of a linear dimension.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Dimension is a linear dimension between two points of the profile,
// drawn with extension lines at a distance Offset (drawing units) from
// the measured points. Positive offsets go below for horizontal and
// left for vertical dimensions.
type Dimension struct {
	From, To    section.Point // meters
	Orientation Orientation
	Offset      float64
	Label       string
}

// Callout is a text label with a leader line to a point on the profile.
// DX and DY are in drawing units, y pointing down.
type Callout struct {
	At     section.Point
	DX, DY float64
	Label  string
}

// Diagram is an annotated 2D section drawing.
type Diagram struct {
	Title      string
	Profile    *section.Profile
	Dimensions []Dimension
	Callouts   []Callout

	FontSize float64
	Margin   float64
	Scale    float64 // drawing units per meter

	minX, minY, maxX, maxY float64
	padX, padY             float64
}

// Width and Height of the whole canvas including margins.
func (d *Diagram) Width() float64  { return DrawingSize + 2*d.Margin }
func (d *Diagram) Height() float64 { return DrawingSize + 2*d.Margin }

// Canvas maps a profile point in meters to canvas coordinates with the
// y axis pointing down.
func (d *Diagram) Canvas(p section.Point) (x, y float64) {
	x = d.Margin + d.padX + (p.X-d.minX)*d.Scale
	y = d.Margin + d.padY + (d.maxY-p.Y)*d.Scale
	return x, y
}

// Annotate builds the profile for spec and attaches the dimension lines
// and thickness callouts of its family. Diagrams always show the strong
// axis orientation; spec.Axis is ignored.
func Annotate(spec section.Spec) (*Diagram, error) {
	shape, err := section.ParseDims(spec.Family, spec.Dims, spec.MemberArea)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoProfile, err)
	}
	p := section.Build(spec)
	if p == nil {
		return nil, ErrNoProfile
	}

	d := &Diagram{
		Title:    spec.Family.String(),
		Profile:  p,
		FontSize: BaseFontSize,
		Margin:   4 * BaseFontSize,
	}
	d.minX, d.minY, d.maxX, d.maxY = p.Bounds()
	w, h := d.maxX-d.minX, d.maxY-d.minY
	d.Scale = DrawingSize / math.Max(w, h)
	d.padX = (DrawingSize - w*d.Scale) / 2
	d.padY = (DrawingSize - h*d.Scale) / 2

	d.annotate(shape)
	return d, nil
}

func (d *Diagram) overall(hSym string, hVal float64, wSym string, wVal float64) {
	off := 1.5 * d.FontSize
	d.Dimensions = append(d.Dimensions,
		Dimension{
			From:        section.Point{X: d.minX, Y: d.maxY},
			To:          section.Point{X: d.minX, Y: d.minY},
			Orientation: Vertical,
			Offset:      off,
			Label:       label(hSym, hVal),
		},
		Dimension{
			From:        section.Point{X: d.minX, Y: d.minY},
			To:          section.Point{X: d.maxX, Y: d.minY},
			Orientation: Horizontal,
			Offset:      off,
			Label:       label(wSym, wVal),
		},
	)
}

func (d *Diagram) callout(x, y, dx, dy float64, sym string, v float64) {
	d.Callouts = append(d.Callouts, Callout{
		At:    section.Point{X: x, Y: y},
		DX:    dx * d.FontSize,
		DY:    dy * d.FontSize,
		Label: label(sym, v),
	})
}

func (d *Diagram) annotate(shape section.Shape) {
	const m = section.MMToM
	switch s := shape.(type) {
	case section.HBeamDims:
		d.hBeam(s)
	case section.LippedLightHDims:
		d.hBeam(s.HBeamDims)
		if s.C > 0 {
			// The lip is drawn as a callout only.
			d.callout(d.maxX, d.maxY, 1, -1, "C", s.C)
		}
	case section.ChannelDims:
		d.overall("H", s.H, "B", s.B)
		d.callout(d.minX+s.T1*m/2, 0, 2, 0, "t1", s.T1)
		d.callout(d.maxX, d.maxY-s.T2*m/2, 1, 1, "t2", s.T2)
	case section.LippedChannelDims:
		d.overall("H", s.H, "A", s.A)
		d.callout(d.minX+s.T*m/2, 0, 2, 0, "t", s.T)
		d.Dimensions = append(d.Dimensions, Dimension{
			From:        section.Point{X: d.maxX, Y: d.maxY},
			To:          section.Point{X: d.maxX, Y: d.maxY - s.C*m},
			Orientation: Vertical,
			Offset:      -1.5 * d.FontSize,
			Label:       label("C", s.C),
		})
	case section.AngleDims:
		d.overall("A", s.A, "B", s.B)
		d.callout(d.minX+s.T*m/2, d.maxY-s.T*m, 2, 0, "t", s.T)
	case section.TubeDims:
		d.overall("A", s.A, "B", s.B)
		d.callout(d.maxX-s.T*m/2, 0, 2, 0, "t", s.T)
	case section.PipeDims:
		d.diameter("D", s.D)
		d.callout(d.maxX-s.T*m/2, 0, 2, -1, "t", s.T)
	case section.RectDims:
		d.overall("H", s.H, "B", s.B)
	case section.CircleDims:
		d.diameter("D", s.D)
	case section.EstimatedDims:
		d.diameter("D≈", s.D)
	}
}

func (d *Diagram) hBeam(s section.HBeamDims) {
	const m = section.MMToM
	d.overall("H", s.H, "B", s.B)
	d.callout(s.T1*m/2, 0, 2, 0, "t1", s.T1)
	d.callout(d.maxX, d.maxY-s.T2*m/2, 1, 1, "t2", s.T2)
}

func (d *Diagram) diameter(sym string, v float64) {
	d.Dimensions = append(d.Dimensions, Dimension{
		From:        section.Point{X: d.minX, Y: d.minY},
		To:          section.Point{X: d.maxX, Y: d.minY},
		Orientation: Horizontal,
		Offset:      1.5 * d.FontSize,
		Label:       label(sym, v),
	})
}

func label(sym string, v float64) string {
	s := strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
	if sym == "D≈" {
		return sym + s
	}
	return sym + "=" + s
}

package diagram

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

const (
	shapeStyle     = `fill="#d6dde6" stroke="#1f2d3d" stroke-width="1.5" fill-rule="evenodd"`
	dimensionStyle = `stroke="#3a6ea5" stroke-width="1"`
	extensionStyle = `stroke="#8aa9c9" stroke-width="0.75"`
)

// WriteSVG writes the diagram as a standalone SVG document: a viewBox,
// the section shape as a single even-odd path and a "dimensions" group
// holding every dimension line and callout.
func WriteSVG(w io.Writer, d *Diagram) error {
	ew := &errWriter{w: w}
	cw, ch := iround(d.Width()), iround(d.Height())

	canvas := svg.New(ew)
	canvas.Startview(cw, ch, 0, 0, cw, ch)
	canvas.Title(d.Title)
	canvas.Path(d.shapePath(), shapeStyle)

	canvas.Gid("dimensions")
	font := fmt.Sprintf(`font-family="sans-serif" font-size="%d" fill="#1f2d3d"`, iround(d.FontSize))
	for _, dim := range d.Dimensions {
		d.writeDimension(canvas, dim, font)
	}
	for _, c := range d.Callouts {
		x, y := d.Canvas(c.At)
		tx, ty := x+c.DX, y+c.DY
		canvas.Line(iround(x), iround(y), iround(tx), iround(ty), extensionStyle)
		anchor := `text-anchor="start"`
		if c.DX < 0 {
			anchor = `text-anchor="end"`
		}
		canvas.Text(iround(tx+math.Copysign(2, c.DX)), iround(ty+d.FontSize/3), c.Label, font, anchor)
	}
	canvas.Gend()
	canvas.End()

	return ew.err
}

// shapePath returns the SVG path data for every ring of the profile.
func (d *Diagram) shapePath() string {
	var sb strings.Builder
	for _, r := range d.Profile.Rings() {
		for i, p := range r {
			x, y := d.Canvas(p)
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			fmt.Fprintf(&sb, "%s%.2f %.2f ", cmd, x, y)
		}
		sb.WriteString("Z ")
	}
	return strings.TrimSpace(sb.String())
}

func (d *Diagram) writeDimension(canvas *svg.SVG, dim Dimension, font string) {
	x1, y1 := d.Canvas(dim.From)
	x2, y2 := d.Canvas(dim.To)
	tick := d.FontSize / 3

	switch dim.Orientation {
	case Horizontal:
		ly := math.Max(y1, y2) + dim.Offset
		if dim.Offset < 0 {
			ly = math.Min(y1, y2) + dim.Offset
		}
		canvas.Line(iround(x1), iround(y1), iround(x1), iround(ly), extensionStyle)
		canvas.Line(iround(x2), iround(y2), iround(x2), iround(ly), extensionStyle)
		canvas.Line(iround(x1), iround(ly), iround(x2), iround(ly), dimensionStyle)
		for _, x := range []float64{x1, x2} {
			canvas.Line(iround(x-tick), iround(ly+tick), iround(x+tick), iround(ly-tick), dimensionStyle)
		}
		canvas.Text(iround((x1+x2)/2), iround(ly+d.FontSize+2), dim.Label, font, `text-anchor="middle"`)

	case Vertical:
		lx := math.Min(x1, x2) - dim.Offset
		if dim.Offset < 0 {
			lx = math.Max(x1, x2) - dim.Offset
		}
		canvas.Line(iround(x1), iround(y1), iround(lx), iround(y1), extensionStyle)
		canvas.Line(iround(x2), iround(y2), iround(lx), iround(y2), extensionStyle)
		canvas.Line(iround(lx), iround(y1), iround(lx), iround(y2), dimensionStyle)
		for _, y := range []float64{y1, y2} {
			canvas.Line(iround(lx-tick), iround(y+tick), iround(lx+tick), iround(y-tick), dimensionStyle)
		}
		tx := lx - 4
		if dim.Offset < 0 {
			tx = lx + d.FontSize
		}
		ty := (y1 + y2) / 2
		rotate := fmt.Sprintf(`transform="rotate(-90 %d %d)"`, iround(tx), iround(ty))
		canvas.Text(iround(tx), iround(ty), dim.Label, font, `text-anchor="middle"`, rotate)
	}
}

func iround(v float64) int {
	return int(math.Round(v))
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

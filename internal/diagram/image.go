package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/alexiusacademia/gosteel/internal/section"
)

// ExportImage exports the diagram through gonum/plot. The format follows
// the file extension (png, svg, pdf, jpg, eps, tif); other extensions
// get ".png" appended. Plot axes are in millimeters.
func ExportImage(d *Diagram, filename string) error {
	p := plot.New()
	p.Title.Text = d.Title
	p.X.Label.Text = "x (mm)"
	p.Y.Label.Text = "y (mm)"

	var rings []plotter.XYer
	for _, r := range d.Profile.Rings() {
		rings = append(rings, toXYs(r))
	}
	shape, err := plotter.NewPolygon(rings...)
	if err != nil {
		return err
	}
	shape.Color = color.RGBA{R: 214, G: 221, B: 230, A: 255}
	shape.LineStyle.Color = color.RGBA{R: 31, G: 45, B: 61, A: 255}
	shape.LineStyle.Width = vg.Points(1.5)
	p.Add(shape)

	// Offsets are in drawing units; convert them to millimeters.
	toMM := 1 / d.Scale / section.MMToM
	for _, dim := range d.Dimensions {
		if err := addDimension(p, dim, dim.Offset*toMM); err != nil {
			return err
		}
	}
	for _, c := range d.Callouts {
		at := plotter.XY{X: c.At.X / section.MMToM, Y: c.At.Y / section.MMToM}
		to := plotter.XY{X: at.X + c.DX*toMM, Y: at.Y - c.DY*toMM}
		leader, err := plotter.NewLine(plotter.XYs{at, to})
		if err != nil {
			return err
		}
		leader.LineStyle.Color = color.RGBA{R: 138, G: 169, B: 201, A: 255}
		p.Add(leader)
		if err := addLabel(p, to, c.Label); err != nil {
			return err
		}
	}

	p.Add(plotter.NewGrid())

	width := 6 * vg.Inch
	height := 6 * vg.Inch

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg", ".eps", ".tif", ".tiff":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

func addDimension(p *plot.Plot, dim Dimension, offset float64) error {
	from := plotter.XY{X: dim.From.X / section.MMToM, Y: dim.From.Y / section.MMToM}
	to := plotter.XY{X: dim.To.X / section.MMToM, Y: dim.To.Y / section.MMToM}

	var a, b plotter.XY
	switch dim.Orientation {
	case Horizontal:
		y := min(from.Y, to.Y) - offset
		if offset < 0 {
			y = max(from.Y, to.Y) - offset
		}
		a, b = plotter.XY{X: from.X, Y: y}, plotter.XY{X: to.X, Y: y}
	case Vertical:
		x := min(from.X, to.X) - offset
		if offset < 0 {
			x = max(from.X, to.X) - offset
		}
		a, b = plotter.XY{X: x, Y: from.Y}, plotter.XY{X: x, Y: to.Y}
	default:
		return fmt.Errorf("unknown dimension orientation %d", dim.Orientation)
	}

	ext, err := plotter.NewLine(plotter.XYs{from, a})
	if err != nil {
		return err
	}
	ext2, err := plotter.NewLine(plotter.XYs{to, b})
	if err != nil {
		return err
	}
	line, err := plotter.NewLine(plotter.XYs{a, b})
	if err != nil {
		return err
	}
	for _, l := range []*plotter.Line{ext, ext2} {
		l.LineStyle.Color = color.RGBA{R: 138, G: 169, B: 201, A: 255}
		l.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
	}
	line.LineStyle.Color = color.RGBA{R: 58, G: 110, B: 165, A: 255}
	p.Add(ext, ext2, line)

	mid := plotter.XY{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	return addLabel(p, mid, dim.Label)
}

func addLabel(p *plot.Plot, at plotter.XY, text string) error {
	l, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{at},
		Labels: []string{text},
	})
	if err != nil {
		return err
	}
	p.Add(l)
	return nil
}

func toXYs(r section.Ring) plotter.XYs {
	xys := make(plotter.XYs, len(r))
	for i, v := range r {
		xys[i] = plotter.XY{X: v.X / section.MMToM, Y: v.Y / section.MMToM}
	}
	return xys
}

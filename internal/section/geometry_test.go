package section

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func approx(a, b, rel float64) bool {
	return math.Abs(a-b) <= rel*math.Max(math.Abs(a), math.Abs(b))
}

func TestCalculateProperties(t *testing.T) {
	cases := []struct {
		name   string
		family Family
		dims   Dims
		area   float64 // m²
		ix     float64 // m⁴
		iy     float64 // m⁴
	}{
		{
			name:   "rectangle",
			family: Rectangle,
			dims:   Dims{"H": 200, "B": 100},
			area:   0.02,
			ix:     0.1 * 0.2 * 0.2 * 0.2 / 12,
			iy:     0.2 * 0.1 * 0.1 * 0.1 / 12,
		},
		{
			name:   "H 300x150x6.5x9",
			family: HMedium,
			dims:   Dims{"H": 300, "B": 150, "t1": 6.5, "t2": 9},
			area:   0.15*0.3 - (0.15-0.0065)*(0.3-0.018),
			ix:     0.15*math.Pow(0.3, 3)/12 - (0.15-0.0065)*math.Pow(0.282, 3)/12,
			iy:     2*0.009*math.Pow(0.15, 3)/12 + 0.282*math.Pow(0.0065, 3)/12,
		},
		{
			name:   "square tube",
			family: SquareTube,
			dims:   Dims{"A": 100, "t": 5},
			area:   0.1*0.1 - 0.09*0.09,
			ix:     (math.Pow(0.1, 4) - math.Pow(0.09, 4)) / 12,
			iy:     (math.Pow(0.1, 4) - math.Pow(0.09, 4)) / 12,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			props := BuildProfile(c.family, c.dims).CalculateProperties()
			if !approx(props.Area, c.area, 1e-9) {
				t.Errorf("area %g, want %g", props.Area, c.area)
			}
			if !approx(props.Ix, c.ix, 1e-9) {
				t.Errorf("Ix %g, want %g", props.Ix, c.ix)
			}
			if !approx(props.Iy, c.iy, 1e-9) {
				t.Errorf("Iy %g, want %g", props.Iy, c.iy)
			}
			if math.Abs(props.CentroidX) > 1e-12 || math.Abs(props.CentroidY) > 1e-12 {
				t.Errorf("centroid (%g, %g) off the origin", props.CentroidX, props.CentroidY)
			}
		})
	}
}

func TestPipeAreaApproachesAnnulus(t *testing.T) {
	props := BuildProfile(Pipe, Dims{"D": 200, "t": 10}).CalculateProperties()
	exact := math.Pi * (0.1*0.1 - 0.09*0.09)
	// A 32-gon holds about 0.6% less area than its circumscribed circle.
	if props.Area >= exact || props.Area < 0.99*exact {
		t.Errorf("area %g, want just under %g", props.Area, exact)
	}
}

func TestWidthAt(t *testing.T) {
	p := BuildProfile(HWide, Dims{"H": 200, "B": 200, "t1": 8, "t2": 12})
	if w := p.WidthAt(0); !approx(w, 0.008, 1e-9) {
		t.Errorf("web width %g, want 0.008", w)
	}
	if w := p.WidthAt(0.095); !approx(w, 0.2, 1e-9) {
		t.Errorf("flange width %g, want 0.2", w)
	}
	if w := p.WidthAt(0.2); w != 0 {
		t.Errorf("width above the section %g, want 0", w)
	}

	tube := BuildProfile(SquareTube, Dims{"A": 100, "t": 10})
	spans := tube.SpansAt(0)
	if len(spans) != 2 {
		t.Fatalf("got %d spans through the tube, want 2", len(spans))
	}
	if w := tube.WidthAt(0); !approx(w, 0.02, 1e-9) {
		t.Errorf("tube wall width %g, want 0.02", w)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"beam.json": `{"family": "h-wide", "dims": {"H": 300, "B": 300, "t1": 10, "t2": 15}, "axis": "weak"}`,
		"beam.yaml": "family: h-wide\ndims:\n  H: 300\n  B: 300\n  t1: 10\n  t2: 15\naxis: weak\n",
	}
	want := &Spec{Family: HWide, Dims: Dims{"H": 300, "B": 300, "t1": 10, "t2": 15}, Axis: AxisWeak}
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if d := cmp.Diff(want, got); d != "" {
			t.Errorf("%s (-want +got):\n%s", name, d)
		}
	}
}

func TestLoadFromFileRejectsBadSpecs(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"family.json":   `{"family": "z-purlin", "dims": {"H": 100}}`,
		"nofamily.json": `{"dims": {"H": 100}}`,
		"dims.json":     `{"family": "pipe", "dims": {"D": 100}}`,
		"axis.yaml":     "family: circle\ndims: {D: 100}\naxis: diagonal\n",
	}
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFromFile(path); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

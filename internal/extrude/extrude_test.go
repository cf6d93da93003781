package extrude

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alexiusacademia/gosteel/internal/section"
)

var testSections = []struct {
	family section.Family
	dims   section.Dims
}{
	{section.HWide, section.Dims{"H": 300, "B": 300, "t1": 10, "t2": 15}},
	{section.Channel, section.Dims{"H": 200, "B": 80, "t1": 7.5, "t2": 11}},
	{section.LippedChannel, section.Dims{"H": 150, "A": 65, "C": 20, "t": 2.3}},
	{section.UnequalAngle, section.Dims{"A": 150, "B": 90, "t": 12}},
	{section.RectTube, section.Dims{"A": 150, "B": 100, "t": 6}},
	{section.Pipe, section.Dims{"D": 165.2, "t": 5}},
	{section.Rectangle, section.Dims{"H": 200, "B": 100}},
	{section.Circle, section.Dims{"D": 200}},
}

// signedVolume sums the tetrahedra formed by each triangle and the origin.
func signedVolume(m *Mesh) float64 {
	var v float64
	for _, t := range m.Triangles {
		a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		v += a.Dot(b.Cross(c)) / 6
	}
	return v
}

func TestExtrudeClosedSolid(t *testing.T) {
	start, end := Vec3{1, 2, 0}, Vec3{4, 6, 0}
	length := 5.0
	for _, c := range testSections {
		t.Run(c.family.String(), func(t *testing.T) {
			p := section.BuildProfile(c.family, c.dims)
			m, err := Extrude(p, start, end)
			if err != nil {
				t.Fatal(err)
			}
			for e, n := range EdgeUse(m) {
				if n != 2 {
					t.Fatalf("edge %v used by %d triangles, mesh is not closed", e, n)
				}
			}
			want := p.CalculateProperties().Area * length
			got := signedVolume(m)
			if math.Abs(got-want) > 1e-9*want+1e-15 {
				t.Errorf("volume %g, want %g", got, want)
			}
		})
	}
}

func TestExtrudeVertical(t *testing.T) {
	p := section.BuildProfile(section.Rectangle, section.Dims{"H": 200, "B": 100})
	m, err := Extrude(p, Vec3{}, Vec3{Z: 3})
	if err != nil {
		t.Fatal(err)
	}
	if v := signedVolume(m); math.Abs(v-0.06) > 1e-12 {
		t.Errorf("volume %g, want 0.06", v)
	}
}

func TestMemberFrameRightHanded(t *testing.T) {
	for _, end := range []Vec3{{X: 1}, {Y: 2}, {Z: 3}, {X: 1, Y: 1, Z: 1}} {
		f, err := MemberFrame(Vec3{}, end)
		if err != nil {
			t.Fatal(err)
		}
		if d := f.U.Cross(f.V).Sub(f.W).Len(); d > 1e-12 {
			t.Errorf("end %v: U×V differs from W by %g", end, d)
		}
	}
	// Horizontal members keep the section depth vertical.
	f, _ := MemberFrame(Vec3{}, Vec3{X: 5})
	if f.V.Sub(Vec3{Z: 1}).Len() > 1e-12 {
		t.Errorf("V = %v, want +Z", f.V)
	}
}

func TestExtrudeErrors(t *testing.T) {
	p := section.BuildProfile(section.Circle, section.Dims{"D": 100})
	if _, err := Extrude(p, Vec3{1, 1, 1}, Vec3{1, 1, 1}); !errors.Is(err, ErrDegenerateMember) {
		t.Errorf("got %v, want ErrDegenerateMember", err)
	}
	if _, err := Extrude(nil, Vec3{}, Vec3{X: 1}); err == nil {
		t.Error("nil profile extruded")
	}
}

func TestFeatureEdges(t *testing.T) {
	cases := []struct {
		family section.Family
		dims   section.Dims
		want   int
	}{
		// A box shows its 12 edges.
		{section.Rectangle, section.Dims{"H": 200, "B": 100}, 12},
		// 4 + 4 long edges and four square outlines.
		{section.SquareTube, section.Dims{"A": 100, "t": 5}, 24},
		// Facets of a 32-gon meet at 11.25°, so only the end outlines show.
		{section.Pipe, section.Dims{"D": 200, "t": 10}, 4 * section.CircleSegments},
		{section.Circle, section.Dims{"D": 200}, 2 * section.CircleSegments},
		// 12 long edges and two 12-edge outlines.
		{section.HWide, section.Dims{"H": 300, "B": 300, "t1": 10, "t2": 15}, 36},
	}
	for _, c := range cases {
		t.Run(c.family.String(), func(t *testing.T) {
			p := section.BuildProfile(c.family, c.dims)
			m, err := Extrude(p, Vec3{}, Vec3{X: 4})
			if err != nil {
				t.Fatal(err)
			}
			edges := FeatureEdges(m, DefaultEdgeThreshold)
			if len(edges) != c.want {
				t.Errorf("got %d feature edges, want %d", len(edges), c.want)
			}
			for i := 1; i < len(edges); i++ {
				a, b := edges[i-1], edges[i]
				if a.A > b.A || (a.A == b.A && a.B >= b.B) {
					t.Fatalf("edges not sorted at %d", i)
				}
			}
		})
	}
}

func TestEarClipConcave(t *testing.T) {
	p := section.BuildProfile(section.LippedChannel, section.Dims{"H": 150, "A": 65, "C": 20, "t": 2.3})
	tris, err := earClip(p.Outer)
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != len(p.Outer)-2 {
		t.Errorf("got %d triangles, want %d", len(tris), len(p.Outer)-2)
	}
	var area float64
	for _, tr := range tris {
		area += cross(p.Outer[tr[0]], p.Outer[tr[1]], p.Outer[tr[2]]) / 2
	}
	if want := p.Outer.SignedArea(); math.Abs(area-want) > 1e-15 {
		t.Errorf("triangles cover %g, ring area %g", area, want)
	}
}

func TestBridgeMismatch(t *testing.T) {
	outer := section.Ring{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	hole := section.Ring{{X: 0.5, Y: 0.4}, {X: 0.4, Y: 0.6}, {X: 0.6, Y: 0.6}}
	if _, err := bridge(outer, hole); err == nil {
		t.Error("bridged rings of different length")
	}
}

func TestWriteSTL(t *testing.T) {
	p := section.BuildProfile(section.Rectangle, section.Dims{"H": 200, "B": 100})
	m, err := Extrude(p, Vec3{}, Vec3{X: 1})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteSTL(&buf, "beam", m); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "solid beam\n") || !strings.HasSuffix(out, "endsolid beam\n") {
		t.Errorf("bad solid framing:\n%s", out)
	}
	if n := strings.Count(out, "facet normal"); n != len(m.Triangles) {
		t.Errorf("got %d facets, want %d", n, len(m.Triangles))
	}
}

// readSTL parses ASCII STL facets back into vertex triples and normals.
func readSTL(t *testing.T, r io.Reader) (name string, facets [][3]Vec3, normals []Vec3) {
	t.Helper()
	sc := bufio.NewScanner(r)
	var cur []Vec3
	for sc.Scan() {
		f := strings.Fields(sc.Text())
		if len(f) == 0 {
			continue
		}
		switch {
		case f[0] == "solid" && len(f) == 2:
			name = f[1]
		case f[0] == "facet" && len(f) == 5:
			normals = append(normals, parseFields(t, f[2:]))
		case f[0] == "vertex" && len(f) == 4:
			cur = append(cur, parseFields(t, f[1:]))
		case f[0] == "endloop":
			if len(cur) != 3 {
				t.Fatalf("facet with %d vertices", len(cur))
			}
			facets = append(facets, [3]Vec3{cur[0], cur[1], cur[2]})
			cur = nil
		}
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	return name, facets, normals
}

func parseFields(t *testing.T, f []string) Vec3 {
	t.Helper()
	var c [3]float64
	for i, s := range f {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			t.Fatalf("bad number %q: %v", s, err)
		}
		c[i] = v
	}
	return Vec3{c[0], c[1], c[2]}
}

func TestWriteSTLRoundTrip(t *testing.T) {
	p := section.BuildProfile(section.Pipe, section.Dims{"D": 165.2, "t": 5})
	m, err := Extrude(p, Vec3{0.5, -1, 2}, Vec3{3.25, 4, 2.5})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteSTL(&buf, "pipe", m); err != nil {
		t.Fatal(err)
	}

	name, facets, normals := readSTL(t, &buf)
	if name != "pipe" {
		t.Errorf("solid name %q", name)
	}
	var want [][3]Vec3
	var wantNormals []Vec3
	for i, tr := range m.Triangles {
		want = append(want, [3]Vec3{m.Vertices[tr[0]], m.Vertices[tr[1]], m.Vertices[tr[2]]})
		wantNormals = append(wantNormals, m.Normal(i))
	}
	if d := cmp.Diff(want, facets); d != "" {
		t.Errorf("facets (-mesh +stl):\n%s", d)
	}
	if d := cmp.Diff(wantNormals, normals); d != "" {
		t.Errorf("normals (-mesh +stl):\n%s", d)
	}
}

package extrude

import (
	"bufio"
	"fmt"
	"io"
)

// WriteSTL writes m as an ASCII STL solid.
func WriteSTL(w io.Writer, name string, m *Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", name)
	for i, t := range m.Triangles {
		n := m.Normal(i)
		fmt.Fprintf(bw, "  facet normal %g %g %g\n", n.X, n.Y, n.Z)
		fmt.Fprintln(bw, "    outer loop")
		for _, k := range t {
			v := m.Vertices[k]
			fmt.Fprintf(bw, "      vertex %g %g %g\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintln(bw, "    endloop")
		fmt.Fprintln(bw, "  endfacet")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	return bw.Flush()
}

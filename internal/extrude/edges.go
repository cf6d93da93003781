package extrude

import (
	"math"
	"sort"
)

// DefaultEdgeThreshold is the crease angle in degrees above which an
// edge is drawn as a feature line.
const DefaultEdgeThreshold = 15.0

// Edge joins two mesh vertices, A < B.
type Edge struct {
	A, B int
}

// FeatureEdges returns the edges whose adjacent faces meet at more than
// thresholdDeg degrees, together with boundary and non-manifold edges.
// The result is sorted.
func FeatureEdges(m *Mesh, thresholdDeg float64) []Edge {
	faces := make(map[Edge][]int)
	for i, t := range m.Triangles {
		for k := 0; k < 3; k++ {
			a, b := t[k], t[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			e := Edge{a, b}
			faces[e] = append(faces[e], i)
		}
	}

	limit := math.Cos(thresholdDeg * math.Pi / 180)
	var out []Edge
	for e, fs := range faces {
		if len(fs) != 2 {
			out = append(out, e)
			continue
		}
		if m.Normal(fs[0]).Dot(m.Normal(fs[1])) < limit {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// EdgeUse counts how many triangles share each edge.
func EdgeUse(m *Mesh) map[Edge]int {
	use := make(map[Edge]int)
	for _, t := range m.Triangles {
		for k := 0; k < 3; k++ {
			a, b := t[k], t[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			use[Edge{a, b}]++
		}
	}
	return use
}

package extrude

import (
	"fmt"

	"github.com/alexiusacademia/gosteel/internal/section"
)

func cross(a, b, c section.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// inTriangle reports whether p lies inside or on the boundary of the
// counter-clockwise triangle abc.
func inTriangle(p, a, b, c section.Point) bool {
	return cross(a, b, p) >= 0 && cross(b, c, p) >= 0 && cross(c, a, p) >= 0
}

// earClip triangulates a simple counter-clockwise ring. Indices refer
// to positions in r.
func earClip(r section.Ring) ([][3]int, error) {
	n := len(r)
	if n < 3 {
		return nil, fmt.Errorf("ring with %d vertices", n)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	var tris [][3]int
	for len(idx) > 3 {
		k := len(idx)
		found := false
		for i := 0; i < k; i++ {
			pi, ci, ni := idx[(i+k-1)%k], idx[i], idx[(i+1)%k]
			a, b, c := r[pi], r[ci], r[ni]
			if cross(a, b, c) <= 0 {
				continue
			}
			ear := true
			for _, j := range idx {
				if j == pi || j == ci || j == ni {
					continue
				}
				q := r[j]
				if q == a || q == b || q == c {
					continue
				}
				if inTriangle(q, a, b, c) {
					ear = false
					break
				}
			}
			if !ear {
				continue
			}
			tris = append(tris, [3]int{pi, ci, ni})
			idx = append(idx[:i], idx[i+1:]...)
			found = true
			break
		}
		if !found {
			return nil, fmt.Errorf("no ear among %d remaining vertices", k)
		}
	}
	return append(tris, [3]int{idx[0], idx[1], idx[2]}), nil
}

// bridge triangulates the band between an outer ring and a hole built
// as its inset: the hole has the same vertex count and, read backwards,
// lines up vertex for vertex with the outer ring. Hole vertices are
// numbered after the outer ones.
func bridge(outer, hole section.Ring) ([][3]int, error) {
	n := len(outer)
	if len(hole) != n {
		return nil, fmt.Errorf("cannot bridge %d outer and %d hole vertices", n, len(hole))
	}
	inner := func(k int) int { return n + (n - 1 - k%n) }

	tris := make([][3]int, 0, 2*n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		tris = append(tris,
			[3]int{i, j, inner(j)},
			[3]int{i, inner(j), inner(i)},
		)
	}
	return tris, nil
}

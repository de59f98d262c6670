package rwg

import (
	"fmt"

	"github.com/notargets/gomom/geometry"
	"github.com/notargets/gomom/utils"
)

// TriangleRef locates one half of a basis function: a triangle and its local edge
type TriangleRef struct {
	K, Edge int
}

// BasisFunction is the RWG function on one interior mesh edge
type BasisFunction[FT utils.Float] struct {
	ID          int
	EdgeLength  FT
	Plus, Minus TriangleRef
}

/*
Evaluate returns the RWG half basis on triangle tri at point r, where idx is the
local index (0, 1, 2) of the shared edge on tri:

	f(r) = sign(tri.EdgeLength[idx]) * l / (2 A) * (r - tri.Vertices[idx])

The caller guarantees a non degenerate triangle.
*/
func Evaluate[FT utils.Float](r utils.Vector3[FT], bf BasisFunction[FT], tri *geometry.Triangle[FT], idx int) utils.Vector3[FT] {
	var (
		sign = FT(1)
	)
	if tri.EdgeLength[idx] < 0 {
		sign = -1
	}
	return r.SubScale(tri.Vertices[idx], sign*bf.EdgeLength/(2*tri.Area))
}

// Divergence is the surface divergence of the half basis on tri, constant over the triangle
func Divergence[FT utils.Float](bf BasisFunction[FT], tri *geometry.Triangle[FT], idx int) FT {
	if tri.EdgeLength[idx] < 0 {
		return -bf.EdgeLength / tri.Area
	}
	return bf.EdgeLength / tri.Area
}

// BuildBasis collects the basis function table from triangles numbered by geometry.NewSurface
func BuildBasis[FT utils.Float](tris []geometry.Triangle[FT], nBasis int) (basis []BasisFunction[FT], err error) {
	var (
		seen = make([]uint8, nBasis) // bit 0: plus half found, bit 1: minus half found
	)
	basis = make([]BasisFunction[FT], nBasis)
	for k := range tris {
		for i, id := range tris[k].BasisIDs {
			if id < 0 {
				continue
			}
			if id >= nBasis {
				return nil, fmt.Errorf("triangle %d edge %d has basis ID %d, only %d basis functions",
					k, i, id, nBasis)
			}
			var (
				l   = tris[k].EdgeLength[i]
				bit = uint8(1)
				ref = TriangleRef{K: k, Edge: i}
			)
			if l < 0 {
				bit, l = 2, -l
			}
			if seen[id]&bit != 0 {
				return nil, fmt.Errorf("basis function %d has two triangles with the same sign", id)
			}
			seen[id] |= bit
			basis[id].ID, basis[id].EdgeLength = id, l
			if bit == 1 {
				basis[id].Plus = ref
			} else {
				basis[id].Minus = ref
			}
		}
	}
	for id, s := range seen {
		if s != 3 {
			return nil, fmt.Errorf("basis function %d is missing a plus or minus triangle", id)
		}
	}
	return
}

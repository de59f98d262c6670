package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomom/utils"
)

type vec = utils.Vector3[float64]

var (
	squareVerts = [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	squareEToV  = [][3]int{{0, 1, 2}, {0, 2, 3}}
)

func TestTriangle(t *testing.T) {
	{ // Area, centroid, edges
		tri := NewTriangle(7, vec{0, 0, 0}, vec{2, 0, 0}, vec{0, 2, 0})
		assert.Equal(t, 7, tri.ID)
		assert.InDelta(t, 2., tri.Area, 1.e-14)
		c := tri.Center()
		assert.InDeltaSlice(t, []float64{2. / 3, 2. / 3, 0}, c[:], 1.e-14)
		assert.Equal(t, [3]int{-1, -1, -1}, tri.BasisIDs)
		assert.InDelta(t, 2*math.Sqrt2, tri.EdgeLength[0], 1.e-14)
		assert.InDelta(t, 2., tri.EdgeLength[1], 1.e-14)
		assert.InDelta(t, 2., tri.EdgeLength[2], 1.e-14)
		assert.Equal(t, vec{-2, 2, 0}, tri.Edge(0))
		assert.Equal(t, vec{0, 0, 1}, tri.Normal())
		assert.Equal(t, [2]int{5, 9}, EdgeVertices([3]int{4, 5, 9}, 0))
		assert.Equal(t, [2]int{4, 5}, EdgeVertices([3]int{4, 5, 9}, 2))
	}
	{ // Single precision
		tri := NewTriangle[float32](0, utils.Vector3[float32]{0, 0, 0},
			utils.Vector3[float32]{1, 0, 0}, utils.Vector3[float32]{0, 1, 0})
		assert.InDelta(t, 0.5, float64(tri.Area), 1.e-7)
	}
	{ // IBC triangles default to zero impedance and share geometry
		tris := []Triangle[float64]{NewTriangle(0, vec{0, 0, 0}, vec{1, 0, 0}, vec{0, 1, 0})}
		ibc := NewIBCTriangles[float64, complex128](tris)
		require.Len(t, ibc, 1)
		assert.Equal(t, complex128(0), ibc[0].SurfaceImpedance())
		ibc[0].SetSurfaceImpedance(complex(50, -10))
		assert.Equal(t, complex(50, -10), ibc[0].Zs)
		assert.Equal(t, tris[0].Center(), ibc[0].Center())
		var e Element[float64] = ibc[0]
		_ = e
	}
}

func TestFlatten(t *testing.T) {
	{ // Flat is returned as is
		in := []int{1, 2, 3}
		c := Flat(in)
		out := Flatten(c)
		assert.Equal(t, 3, c.Len())
		assert.Equal(t, in, out)
		assert.Same(t, &in[0], &out[0])
	}
	{ // Groups concatenate in order
		c := Groups([][]string{{"a", "b"}, {}, {"c"}})
		assert.Equal(t, 3, c.Len())
		assert.Equal(t, []string{"a", "b", "c"}, Flatten(c))
	}
	{ // Nested expands depth first, never writes into caller slices
		first := make([]int, 2, 10)
		first[0], first[1] = 1, 2
		c := Nested(
			Flat(first),
			Nested(Groups([][]int{{3}, {4, 5}}), Flat([]int{6})),
			Nested[int](),
			Flat([]int{7}),
		)
		assert.Equal(t, 7, c.Len())
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, Flatten(c))
		assert.Equal(t, []int{1, 2}, first)
		assert.Equal(t, 0, first[:3][2])
	}
	{ // Empty
		assert.Empty(t, Flatten(Nested[int]()))
		assert.Empty(t, Flatten(Groups[int](nil)))
	}
}

func TestSurface(t *testing.T) {
	{ // Two triangles sharing the diagonal of a unit square
		s, err := NewSurface[float64](squareVerts, squareEToV)
		require.NoError(t, err)
		require.Len(t, s.Triangles, 2)
		assert.Equal(t, 1, s.NBasis)
		t0, t1 := s.Triangles[0], s.Triangles[1]
		assert.InDelta(t, 0.5, t0.Area, 1.e-14)
		assert.InDelta(t, 0.5, t1.Area, 1.e-14)
		// Triangle 1 traverses the diagonal 0->2, so it is the plus triangle
		assert.Equal(t, [3]int{-1, 0, -1}, t0.BasisIDs)
		assert.Equal(t, [3]int{-1, -1, 0}, t1.BasisIDs)
		assert.InDelta(t, -math.Sqrt2, t0.EdgeLength[1], 1.e-14)
		assert.InDelta(t, math.Sqrt2, t1.EdgeLength[2], 1.e-14)
		assert.True(t, t0.EdgeLength[0] > 0 && t0.EdgeLength[2] > 0)
		assert.Equal(t, [2]int{0, 2}, s.BasisEdges[0].GetVertices(false))
	}
	{ // Inconsistent orientation falls back to the lower numbered triangle
		s, err := NewSurface[float64](squareVerts, [][3]int{{0, 1, 2}, {0, 3, 2}})
		require.NoError(t, err)
		assert.Equal(t, 1, s.NBasis)
		assert.True(t, s.Triangles[0].EdgeLength[1] > 0)
		assert.True(t, s.Triangles[1].EdgeLength[1] < 0)
	}
	{ // Errors
		_, err := NewSurface[float64](squareVerts, [][3]int{{0, 1, 4}})
		assert.True(t, errors.Is(err, ErrVertexIndex))
		_, err = NewSurface[float64]([][3]float64{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}, [][3]int{{0, 1, 2}})
		assert.True(t, errors.Is(err, ErrDegenerate))
		verts := append(append([][3]float64{}, squareVerts...), [3]float64{0, 0, 1})
		_, err = NewSurface[float64](verts, [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 2, 4}})
		assert.True(t, errors.Is(err, ErrJunctionEdge))
	}
}

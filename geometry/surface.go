package geometry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/notargets/gomom/types"
	"github.com/notargets/gomom/utils"
)

var (
	ErrVertexIndex  = errors.New("vertex index out of range")
	ErrDegenerate   = errors.New("degenerate triangle")
	ErrJunctionEdge = errors.New("edge shared by more than two triangles")
)

type EdgeKeySlice []types.EdgeKey

func (p EdgeKeySlice) Len() int           { return len(p) }
func (p EdgeKeySlice) Less(i, j int) bool { return p[i] < p[j] }
func (p EdgeKeySlice) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

// Sort is a convenience method.
func (p EdgeKeySlice) Sort() { sort.Sort(p) }

type edgeUse struct {
	k, edge int
	dir     types.EdgeInt
}

// Surface is a triangulated surface with one RWG basis function per interior edge
type Surface[FT utils.Float] struct {
	Triangles  []Triangle[FT]
	NBasis     int
	BasisEdges []types.EdgeKey // Mesh edge of each basis function, indexed by basis ID
}

/*
NewSurface builds triangles from vertex coordinates and triangle connectivity and
numbers the RWG basis functions. Basis IDs follow the sorted order of the edge keys,
so numbering does not depend on the order triangles are listed in.

For each shared edge the plus triangle is the one that traverses the edge from its
lower to its higher vertex index. On a mesh with inconsistent orientation both
triangles traverse it the same way and the lower numbered triangle becomes plus.
*/
func NewSurface[FT utils.Float](vertices [][3]float64, EToV [][3]int) (s *Surface[FT], err error) {
	var (
		K    = len(EToV)
		Nv   = len(vertices)
		uses = make(map[types.EdgeKey][]edgeUse, 3*K/2)
	)
	s = &Surface[FT]{
		Triangles: make([]Triangle[FT], K),
	}
	for k, verts := range EToV {
		var v [3]utils.Vector3[FT]
		for n, iv := range verts {
			if iv < 0 || iv >= Nv {
				err = fmt.Errorf("triangle %d vertex %d: %w", k, iv, ErrVertexIndex)
				return nil, err
			}
			v[n] = utils.FromFloat64[FT](utils.Vector3[float64](vertices[iv]))
		}
		s.Triangles[k] = NewTriangle(k, v[0], v[1], v[2])
		if s.Triangles[k].Area == 0 {
			err = fmt.Errorf("triangle %d: %w", k, ErrDegenerate)
			return nil, err
		}
		for i := 0; i < 3; i++ {
			e := types.NewEdgeInt(EdgeVertices(verts, i))
			key := e.GetKey()
			uses[key] = append(uses[key], edgeUse{k: k, edge: i, dir: e})
		}
	}
	keys := make(EdgeKeySlice, 0, len(uses))
	for key, u := range uses {
		if len(u) > 2 {
			vv := key.GetVertices(false)
			err = fmt.Errorf("edge [%d,%d] has %d triangles: %w", vv[0], vv[1], len(u), ErrJunctionEdge)
			return nil, err
		}
		if len(u) == 2 {
			keys = append(keys, key)
		}
	}
	keys.Sort()
	s.BasisEdges = make([]types.EdgeKey, len(keys))
	for id, key := range keys {
		u := uses[key]
		plus, minus := u[0], u[1]
		if plus.dir.Ascending() == minus.dir.Ascending() {
			if minus.k < plus.k {
				plus, minus = minus, plus
			}
		} else if !plus.dir.Ascending() {
			plus, minus = minus, plus
		}
		tp, tm := &s.Triangles[plus.k], &s.Triangles[minus.k]
		tp.BasisIDs[plus.edge] = id
		tm.BasisIDs[minus.edge] = id
		tm.EdgeLength[minus.edge] = -tm.EdgeLength[minus.edge]
		s.BasisEdges[id] = key
	}
	s.NBasis = len(keys)
	return
}

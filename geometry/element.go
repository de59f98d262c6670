package geometry

import (
	"github.com/notargets/gomom/utils"
)

// Element is the capability required of anything sampled by the field engine
type Element[FT utils.Float] interface {
	Center() utils.Vector3[FT]
}

/*
Triangle is a flat surface cell.

Local edge i is the edge opposite vertex i, so Vertices[i] is the free vertex of
edge i. EdgeLength[i] is signed: positive when this triangle is the plus triangle of
the RWG basis function living on edge i, negative for the minus triangle. Edges with
no basis function (open boundary) carry BasisIDs[i] = -1 and a positive length.
*/
type Triangle[FT utils.Float] struct {
	ID         int
	Vertices   [3]utils.Vector3[FT]
	Area       FT
	EdgeLength [3]FT
	BasisIDs   [3]int
	Centroid   utils.Vector3[FT]
}

func NewTriangle[FT utils.Float](id int, v0, v1, v2 utils.Vector3[FT]) (tri Triangle[FT]) {
	tri = Triangle[FT]{
		ID:       id,
		Vertices: [3]utils.Vector3[FT]{v0, v1, v2},
		BasisIDs: [3]int{-1, -1, -1},
	}
	a, b := v1.Sub(v0), v2.Sub(v0)
	tri.Area = FT(0.5 * utils.RealNorm(a.Cross(b)))
	tri.Centroid = v0.Add(v1).Add(v2).Scale(FT(1) / FT(3))
	for i := 0; i < 3; i++ {
		tri.EdgeLength[i] = FT(utils.RealNorm(tri.Edge(i)))
	}
	return
}

func (tri Triangle[FT]) Center() utils.Vector3[FT] { return tri.Centroid }

// Edge returns the vector along local edge i, from vertex i+1 to vertex i+2
func (tri Triangle[FT]) Edge(i int) utils.Vector3[FT] {
	return tri.Vertices[(i+2)%3].Sub(tri.Vertices[(i+1)%3])
}

// EdgeVertices returns the global vertex pair of local edge i given the triangle's connectivity
func EdgeVertices(verts [3]int, i int) [2]int {
	return [2]int{verts[(i+1)%3], verts[(i+2)%3]}
}

func (tri Triangle[FT]) Normal() utils.Vector3[FT] {
	n := tri.Vertices[1].Sub(tri.Vertices[0]).Cross(tri.Vertices[2].Sub(tri.Vertices[0]))
	mag := utils.RealNorm(n)
	if mag == 0 {
		return n
	}
	return n.Scale(FT(1 / mag))
}

// IBCTriangle is a triangle on an impedance boundary surface. Zs is consumed by the
// system assembly stage only, field sampling ignores it.
type IBCTriangle[FT utils.Float, CT utils.Complex] struct {
	Triangle[FT]
	Zs CT
}

func NewIBCTriangles[FT utils.Float, CT utils.Complex](tris []Triangle[FT]) (ibc []*IBCTriangle[FT, CT]) {
	ibc = make([]*IBCTriangle[FT, CT], len(tris))
	for k := range tris {
		ibc[k] = &IBCTriangle[FT, CT]{Triangle: tris[k]}
	}
	return
}

func (t *IBCTriangle[FT, CT]) SetSurfaceImpedance(zs CT) { t.Zs = zs }

func (t *IBCTriangle[FT, CT]) SurfaceImpedance() CT { return t.Zs }

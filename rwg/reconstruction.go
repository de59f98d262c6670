package rwg

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/notargets/gomom/fields"
	"github.com/notargets/gomom/geometry"
	"github.com/notargets/gomom/utils"
)

/*
Reconstruction maps basis function coefficients to surface current density at the
triangle centroids. Each Cartesian component is a K x NBasis sparse operator with at
most three non zeros per row, one per local edge carrying a basis function.
*/
type Reconstruction[FT utils.Float, CT utils.Complex] struct {
	K, NBasis int
	Positions []utils.Vector3[FT]
	ops       [3]*sparse.CSR
}

func NewReconstruction[FT utils.Float, CT utils.Complex](tris []geometry.Triangle[FT],
	basis []BasisFunction[FT]) (rc *Reconstruction[FT, CT]) {
	var (
		K, Nb = len(tris), len(basis)
	)
	rc = &Reconstruction[FT, CT]{
		K:         K,
		NBasis:    Nb,
		Positions: make([]utils.Vector3[FT], K),
	}
	for k := range tris {
		rc.Positions[k] = tris[k].Center()
	}
	if K == 0 || Nb == 0 {
		return
	}
	var doks [3]*sparse.DOK
	for c := 0; c < 3; c++ {
		doks[c] = sparse.NewDOK(K, Nb)
	}
	for k := range tris {
		for i, id := range tris[k].BasisIDs {
			if id < 0 {
				continue
			}
			f := Evaluate(rc.Positions[k], basis[id], &tris[k], i)
			for c := 0; c < 3; c++ {
				if f[c] != 0 {
					doks[c].Set(k, id, float64(f[c]))
				}
			}
		}
	}
	for c := 0; c < 3; c++ {
		rc.ops[c] = doks[c].ToCSR()
	}
	return
}

// Apply returns the current density at each centroid for the given coefficients
func (rc *Reconstruction[FT, CT]) Apply(coeffs []CT) (J []utils.Vector3[CT], err error) {
	if len(coeffs) != rc.NBasis {
		err = fmt.Errorf("have %d coefficients for %d basis functions", len(coeffs), rc.NBasis)
		return
	}
	J = make([]utils.Vector3[CT], rc.K)
	if rc.K == 0 || rc.NBasis == 0 {
		return
	}
	for c := 0; c < 3; c++ {
		rc.ops[c].DoNonZero(func(i, j int, v float64) {
			J[i][c] += CT(complex(v, 0)) * coeffs[j]
		})
	}
	return
}

// Currents wraps Apply into a FieldData holding one field under the caller chosen name
func (rc *Reconstruction[FT, CT]) Currents(name string, coeffs []CT) (fd *fields.FieldData[FT, CT], err error) {
	var J []utils.Vector3[CT]
	if J, err = rc.Apply(coeffs); err != nil {
		return
	}
	fd = fields.NewFieldData[FT, CT](rc.Positions)
	err = fd.Insert(name, J)
	return
}

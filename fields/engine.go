package fields

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/notargets/gomom/geometry"
	"github.com/notargets/gomom/sources"
	"github.com/notargets/gomom/utils"
)

// Engine samples exciting sources over geometry in parallel
type Engine[FT utils.Float, CT utils.Complex] struct {
	ParallelDegree int
	log            *logrus.Logger
}

// NewEngine uses one goroutine per CPU when parallelDegree is not positive
func NewEngine[FT utils.Float, CT utils.Complex](parallelDegree int) *Engine[FT, CT] {
	return &Engine[FT, CT]{
		ParallelDegree: utils.DefaultParallelDegree(parallelDegree),
		log:            utils.NamedLogger("fields"),
	}
}

/*
sample fills positions, E and H for every element. The index range is split into
ParallelDegree contiguous partitions and each goroutine writes only its own
indices, so the output slices need no locking.
*/
func (eng *Engine[FT, CT]) sample(n int, center func(k int) utils.Vector3[FT],
	src sources.ExcitingSource[FT, CT]) (positions []utils.Vector3[FT], E, H []utils.Vector3[CT]) {
	var (
		pm    = utils.NewPartitionMap(eng.ParallelDegree, n)
		start = time.Now()
	)
	positions = make([]utils.Vector3[FT], n)
	E = make([]utils.Vector3[CT], n)
	H = make([]utils.Vector3[CT], n)
	pm.ParallelFor(func(bn, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			r := center(k)
			positions[k] = r
			E[k] = src.EvaluateE(r)
			H[k] = src.EvaluateH(r)
		}
	})
	eng.log.WithFields(logrus.Fields{
		"points":     n,
		"partitions": pm.ParallelDegree,
		"elapsed":    time.Since(start),
	}).Debug("sampled exciting source")
	return
}

// EvaluateAt samples the source at arbitrary observation points, returned under the incident field names
func (eng *Engine[FT, CT]) EvaluateAt(points []utils.Vector3[FT], src sources.ExcitingSource[FT, CT]) *FieldData[FT, CT] {
	positions, E, H := eng.sample(len(points), func(k int) utils.Vector3[FT] { return points[k] }, src)
	return &FieldData[FT, CT]{
		NPoints:   len(points),
		Positions: positions,
		Fields: map[string][]utils.Vector3[CT]{
			IncidentE: E,
			IncidentH: H,
		},
	}
}

/*
EvaluateIncidentFields flattens the collection and samples the source at each
element's center. Output index k corresponds to the k-th flattened element.
*/
func EvaluateIncidentFields[FT utils.Float, CT utils.Complex, E geometry.Element[FT]](eng *Engine[FT, CT],
	collection geometry.Collection[E], src sources.ExcitingSource[FT, CT]) *FieldData[FT, CT] {
	var (
		elems = geometry.Flatten(collection)
	)
	positions, Ef, Hf := eng.sample(len(elems), func(k int) utils.Vector3[FT] { return elems[k].Center() }, src)
	return &FieldData[FT, CT]{
		NPoints:   len(elems),
		Positions: positions,
		Fields: map[string][]utils.Vector3[CT]{
			IncidentE: Ef,
			IncidentH: Hf,
		},
	}
}

// EvaluateExcitationFields is EvaluateIncidentFields returning the fixed two field form
func EvaluateExcitationFields[FT utils.Float, CT utils.Complex, E geometry.Element[FT]](eng *Engine[FT, CT],
	collection geometry.Collection[E], src sources.ExcitingSource[FT, CT]) *ExcitationFieldData[FT, CT] {
	var (
		elems = geometry.Flatten(collection)
	)
	positions, Ef, Hf := eng.sample(len(elems), func(k int) utils.Vector3[FT] { return elems[k].Center() }, src)
	return &ExcitationFieldData[FT, CT]{
		NPoints:   len(elems),
		Positions: positions,
		E:         Ef,
		H:         Hf,
	}
}

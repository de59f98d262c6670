package fields

import (
	"fmt"
	"sort"

	"github.com/notargets/gomom/utils"
)

// Canonical names of the incident field quantities
const (
	IncidentE = "Einc"
	IncidentH = "Hinc"
)

/*
FieldData holds any number of named complex vector fields sampled on one ordered
set of points. Every field has exactly NPoints samples, index aligned with
Positions. The point set is fixed at construction; fields are added by Insert or
Merge. Field slices are treated as immutable once inserted and may be shared
between FieldData values after a merge.

FieldData has no internal locking.
*/
type FieldData[FT utils.Float, CT utils.Complex] struct {
	NPoints   int
	Positions []utils.Vector3[FT]
	Fields    map[string][]utils.Vector3[CT]
}

// NewFieldData copies positions into a new FieldData with no fields
func NewFieldData[FT utils.Float, CT utils.Complex](positions []utils.Vector3[FT]) (fd *FieldData[FT, CT]) {
	fd = &FieldData[FT, CT]{
		NPoints:   len(positions),
		Positions: make([]utils.Vector3[FT], len(positions)),
		Fields:    make(map[string][]utils.Vector3[CT]),
	}
	copy(fd.Positions, positions)
	return
}

// Insert adds or replaces the named field
func (fd *FieldData[FT, CT]) Insert(name string, values []utils.Vector3[CT]) error {
	if len(values) != fd.NPoints {
		return fmt.Errorf("field %q has %d values for %d points: %w",
			name, len(values), fd.NPoints, ErrFieldLength)
	}
	if fd.Fields == nil {
		fd.Fields = make(map[string][]utils.Vector3[CT])
	}
	fd.Fields[name] = values
	return nil
}

func (fd *FieldData[FT, CT]) Get(name string) (values []utils.Vector3[CT], ok bool) {
	values, ok = fd.Fields[name]
	return
}

func (fd *FieldData[FT, CT]) Has(name string) bool {
	_, ok := fd.Fields[name]
	return ok
}

// Validate checks that positions and every field hold NPoints samples
func (fd *FieldData[FT, CT]) Validate() error {
	if len(fd.Positions) != fd.NPoints {
		return fmt.Errorf("%d positions for %d points: %w", len(fd.Positions), fd.NPoints, ErrFieldLength)
	}
	for _, name := range fd.Names() {
		if n := len(fd.Fields[name]); n != fd.NPoints {
			return fmt.Errorf("field %q has %d values for %d points: %w", name, n, fd.NPoints, ErrFieldLength)
		}
	}
	return nil
}

// Names returns the field names in lexicographic order
func (fd *FieldData[FT, CT]) Names() (names []string) {
	names = make([]string, 0, len(fd.Fields))
	for name := range fd.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

/*
ExcitationFieldData is the fixed two field form, incident E and H only. It carries
the same samples as the FieldData returned by EvaluateIncidentFields.
*/
type ExcitationFieldData[FT utils.Float, CT utils.Complex] struct {
	NPoints   int
	Positions []utils.Vector3[FT]
	E, H      []utils.Vector3[CT]
}

// ToFieldData converts to the general form under the canonical incident field names
func (ex *ExcitationFieldData[FT, CT]) ToFieldData() (fd *FieldData[FT, CT]) {
	fd = &FieldData[FT, CT]{
		NPoints:   ex.NPoints,
		Positions: ex.Positions,
		Fields: map[string][]utils.Vector3[CT]{
			IncidentE: ex.E,
			IncidentH: ex.H,
		},
	}
	return
}

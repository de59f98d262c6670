package fields

import (
	"github.com/notargets/gomom/utils"
)

/*
Merge inserts every field of source into target and returns target. A name present
in both takes the source's values. The point counts must agree; positions are not
compared, callers must only merge data sampled on the same points. On error neither
argument is modified.
*/
func Merge[FT utils.Float, CT utils.Complex](target, source *FieldData[FT, CT]) (*FieldData[FT, CT], error) {
	if target.NPoints != source.NPoints {
		return target, &PointCountError{Target: target.NPoints, Source: source.NPoints}
	}
	if target.Fields == nil {
		target.Fields = make(map[string][]utils.Vector3[CT], len(source.Fields))
	}
	for name, values := range source.Fields {
		target.Fields[name] = values
	}
	return target, nil
}

func (fd *FieldData[FT, CT]) Merge(source *FieldData[FT, CT]) error {
	_, err := Merge(fd, source)
	return err
}

// MergeAll checks every source before merging any, then merges them in order
func MergeAll[FT utils.Float, CT utils.Complex](target *FieldData[FT, CT],
	sources ...*FieldData[FT, CT]) (*FieldData[FT, CT], error) {
	for _, src := range sources {
		if src.NPoints != target.NPoints {
			return target, &PointCountError{Target: target.NPoints, Source: src.NPoints}
		}
	}
	for _, src := range sources {
		if _, err := Merge(target, src); err != nil {
			return target, err
		}
	}
	return target, nil
}

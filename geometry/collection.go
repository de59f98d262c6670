package geometry

type shape uint8

const (
	shapeFlat shape = iota
	shapeGroups
	shapeNested
)

/*
Collection is one of three input shapes accepted by the field engine:
  - Flat: an ordered slice of elements, used as is
  - Groups: a slice of slices (for instance one per mesh region), concatenated in order
  - Nested: a tree of collections of any depth, expanded depth first in order

The shape is fixed by the constructor, so Flatten never inspects element types.
*/
type Collection[E any] struct {
	kind   shape
	flat   []E
	groups [][]E
	nested []Collection[E]
}

func Flat[E any](elems []E) Collection[E] {
	return Collection[E]{kind: shapeFlat, flat: elems}
}

func Groups[E any](groups [][]E) Collection[E] {
	return Collection[E]{kind: shapeGroups, groups: groups}
}

func Nested[E any](items ...Collection[E]) Collection[E] {
	return Collection[E]{kind: shapeNested, nested: items}
}

// Len is the number of elements Flatten will return
func (c Collection[E]) Len() (n int) {
	switch c.kind {
	case shapeFlat:
		n = len(c.flat)
	case shapeGroups:
		for _, g := range c.groups {
			n += len(g)
		}
	case shapeNested:
		for _, item := range c.nested {
			n += item.Len()
		}
	}
	return
}

// Flatten returns the elements in encountered order. A Flat collection is returned
// without copying, callers must treat the result as read only.
func Flatten[E any](c Collection[E]) []E {
	if c.kind == shapeFlat {
		return c.flat
	}
	return c.appendTo(make([]E, 0, c.Len()))
}

func (c Collection[E]) appendTo(dst []E) []E {
	switch c.kind {
	case shapeFlat:
		dst = append(dst, c.flat...)
	case shapeGroups:
		for _, g := range c.groups {
			dst = append(dst, g...)
		}
	case shapeNested:
		for _, item := range c.nested {
			dst = item.appendTo(dst)
		}
	}
	return dst
}

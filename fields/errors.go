package fields

import (
	"errors"
	"fmt"
)

var (
	ErrPointCountMismatch = errors.New("point count mismatch")
	ErrFieldLength        = errors.New("field length does not match point count")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrBadMagic           = errors.New("not a field data file")
	ErrMalformed          = errors.New("malformed field data")
)

// PointCountError reports a merge between field data sampled at different numbers of points
type PointCountError struct {
	Target, Source int
}

func (e *PointCountError) Error() string {
	return fmt.Sprintf("cannot merge field data with %d points into field data with %d points",
		e.Source, e.Target)
}

func (e *PointCountError) Unwrap() error { return ErrPointCountMismatch }

package fields

import (
	"encoding/binary"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gomom/utils"
)

const (
	binaryVersion uint32 = 1
	PositionsKey         = "positions"
	maxNameLen           = 4096
)

var binaryMagic = [4]byte{'G', 'M', 'F', 'D'}

type entryKind uint8

const (
	kindPositions entryKind = iota // NPoints x 3 real
	kindComplex                    // NPoints x 6, real and imaginary parts interleaved per component
)

/*
WriteBinary writes a self describing dictionary of named arrays, all little endian:

	magic "GMFD", version uint32, npoints uint64, nentries uint32
	per entry: name length uint32, name, kind uint8, gonum mat.Dense binary (omitted when npoints is 0)

The first entry is "positions", an npoints x 3 matrix, followed by one entry per
field. A complex field is stored as an npoints x 6 real matrix with columns
x_real, x_imag, y_real, y_imag, z_real, z_imag, the same order as the CSV
columns. Values are stored as float64 regardless of the working precision.
Entry names are at most 4096 bytes.
*/
func WriteBinary[FT utils.Float, CT utils.Complex](w io.Writer, fd *FieldData[FT, CT]) (err error) {
	var (
		names = fd.Names()
		n     = fd.NPoints
	)
	if err = fd.Validate(); err != nil {
		return
	}
	header := []any{binaryMagic, binaryVersion, uint64(n), uint32(1 + len(names))}
	for _, h := range header {
		if err = binary.Write(w, binary.LittleEndian, h); err != nil {
			return
		}
	}
	var pos *mat.Dense
	if n > 0 {
		pos = mat.NewDense(n, 3, nil)
		for k, r := range fd.Positions {
			for i := 0; i < 3; i++ {
				pos.Set(k, i, float64(r[i]))
			}
		}
	}
	if err = writeEntry(w, PositionsKey, kindPositions, pos); err != nil {
		return
	}
	for _, name := range names {
		var m *mat.Dense
		if n > 0 {
			m = mat.NewDense(n, 6, nil)
			for k, v := range fd.Fields[name] {
				for i := 0; i < 3; i++ {
					c := complex128(v[i])
					m.Set(k, 2*i, real(c))
					m.Set(k, 2*i+1, imag(c))
				}
			}
		}
		if err = writeEntry(w, name, kindComplex, m); err != nil {
			return
		}
	}
	return
}

func writeEntry(w io.Writer, name string, kind entryKind, m *mat.Dense) (err error) {
	if err = binary.Write(w, binary.LittleEndian, uint32(len(name))); err != nil {
		return
	}
	if _, err = io.WriteString(w, name); err != nil {
		return
	}
	if err = binary.Write(w, binary.LittleEndian, kind); err != nil {
		return
	}
	if m != nil {
		_, err = m.MarshalBinaryTo(w)
	}
	return
}

// ReadBinary parses the layout written by WriteBinary
func ReadBinary[FT utils.Float, CT utils.Complex](r io.Reader) (fd *FieldData[FT, CT], err error) {
	var (
		magic    [4]byte
		version  uint32
		n64      uint64
		nEntries uint32
	)
	if err = binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return
	}
	if magic != binaryMagic {
		return nil, ErrBadMagic
	}
	for _, h := range []any{&version, &n64, &nEntries} {
		if err = binary.Read(r, binary.LittleEndian, h); err != nil {
			return
		}
	}
	if version != binaryVersion {
		return nil, fmt.Errorf("version %d, can read %d: %w", version, binaryVersion, ErrMalformed)
	}
	n := int(n64)
	if n < 0 || uint64(n) != n64 {
		return nil, fmt.Errorf("point count %d: %w", n64, ErrMalformed)
	}
	fd = &FieldData[FT, CT]{
		NPoints: n,
		Fields:  make(map[string][]utils.Vector3[CT]),
	}
	var havePositions bool
	for e := uint32(0); e < nEntries; e++ {
		var (
			name string
			kind entryKind
			m    *mat.Dense
		)
		if name, kind, m, err = readEntry(r, n); err != nil {
			return nil, fmt.Errorf("entry %d: %w", e, err)
		}
		switch kind {
		case kindPositions:
			fd.Positions = make([]utils.Vector3[FT], n)
			for k := 0; k < n; k++ {
				for i := 0; i < 3; i++ {
					fd.Positions[k][i] = FT(m.At(k, i))
				}
			}
			havePositions = true
		case kindComplex:
			values := make([]utils.Vector3[CT], n)
			for k := 0; k < n; k++ {
				for i := 0; i < 3; i++ {
					values[k][i] = CT(complex(m.At(k, 2*i), m.At(k, 2*i+1)))
				}
			}
			fd.Fields[name] = values
		}
	}
	if !havePositions {
		return nil, fmt.Errorf("no %s entry: %w", PositionsKey, ErrMalformed)
	}
	return
}

func readEntry(r io.Reader, n int) (name string, kind entryKind, m *mat.Dense, err error) {
	var nameLen uint32
	if err = binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return
	}
	if nameLen > maxNameLen {
		err = fmt.Errorf("entry name length %d exceeds %d: %w", nameLen, maxNameLen, ErrMalformed)
		return
	}
	buf := make([]byte, nameLen)
	if _, err = io.ReadFull(r, buf); err != nil {
		return
	}
	name = string(buf)
	if err = binary.Read(r, binary.LittleEndian, &kind); err != nil {
		return
	}
	var cols int
	switch kind {
	case kindPositions:
		cols = 3
	case kindComplex:
		cols = 6
	default:
		err = fmt.Errorf("%q has unknown kind %d: %w", name, kind, ErrMalformed)
		return
	}
	if n == 0 {
		return
	}
	m = &mat.Dense{}
	if _, err = m.UnmarshalBinaryFrom(r); err != nil {
		return
	}
	if nr, nc := m.Dims(); nr != n || nc != cols {
		err = fmt.Errorf("%q is %d x %d, want %d x %d: %w", name, nr, nc, n, cols, ErrMalformed)
	}
	return
}

package fields

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/notargets/gomom/utils"
)

const (
	CSVSuffix    = ".csv"
	BinarySuffix = ".fdb"
)

var (
	positionColumns  = []string{"rx", "ry", "rz"}
	componentColumns = []string{"x_real", "x_imag", "y_real", "y_imag", "z_real", "z_imag"}
)

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'e', 6, 64)
}

/*
WriteCSV writes one header line and one row per point. The header is rx,ry,rz
followed by six columns per field, fields in lexicographic order of their names:

	<name>x_real,<name>x_imag,<name>y_real,<name>y_imag,<name>z_real,<name>z_imag
*/
func WriteCSV[FT utils.Float, CT utils.Complex](w io.Writer, fd *FieldData[FT, CT]) (err error) {
	var (
		names  = fd.Names()
		header = make([]string, 0, 3+6*len(names))
		cw     = csv.NewWriter(w)
	)
	if err = fd.Validate(); err != nil {
		return
	}
	header = append(header, positionColumns...)
	for _, name := range names {
		for _, col := range componentColumns {
			header = append(header, name+col)
		}
	}
	if err = cw.Write(header); err != nil {
		return
	}
	row := make([]string, len(header))
	for k := 0; k < fd.NPoints; k++ {
		col := 0
		for i := 0; i < 3; i++ {
			row[col] = formatValue(float64(fd.Positions[k][i]))
			col++
		}
		for _, name := range names {
			v := fd.Fields[name][k]
			for i := 0; i < 3; i++ {
				c := complex128(v[i])
				row[col], row[col+1] = formatValue(real(c)), formatValue(imag(c))
				col += 2
			}
		}
		if err = cw.Write(row); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the layout written by WriteCSV
func ReadCSV[FT utils.Float, CT utils.Complex](r io.Reader) (fd *FieldData[FT, CT], err error) {
	var (
		cr      = csv.NewReader(r)
		records [][]string
	)
	if records, err = cr.ReadAll(); err != nil {
		return
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file: %w", ErrMalformed)
	}
	header := records[0]
	if len(header) < 3 || (len(header)-3)%6 != 0 {
		return nil, fmt.Errorf("header has %d columns: %w", len(header), ErrMalformed)
	}
	for i, col := range positionColumns {
		if header[i] != col {
			return nil, fmt.Errorf("header column %d is %q, want %q: %w", i, header[i], col, ErrMalformed)
		}
	}
	var (
		nFields = (len(header) - 3) / 6
		names   = make([]string, nFields)
		n       = len(records) - 1
	)
	for f := 0; f < nFields; f++ {
		base := 3 + 6*f
		name, ok := strings.CutSuffix(header[base], componentColumns[0])
		if !ok {
			return nil, fmt.Errorf("header column %q: %w", header[base], ErrMalformed)
		}
		for i, col := range componentColumns {
			if header[base+i] != name+col {
				return nil, fmt.Errorf("header column %q, want %q: %w", header[base+i], name+col, ErrMalformed)
			}
		}
		names[f] = name
	}
	values := make([][]utils.Vector3[CT], nFields)
	for f := range values {
		values[f] = make([]utils.Vector3[CT], n)
	}
	positions := make([]utils.Vector3[FT], n)
	parse := func(row, col int) (v float64) {
		if err != nil {
			return
		}
		if v, err = strconv.ParseFloat(records[row][col], 64); err != nil {
			err = fmt.Errorf("row %d column %d: %w", row, col, err)
		}
		return
	}
	for k := 0; k < n; k++ {
		row := k + 1
		for i := 0; i < 3; i++ {
			positions[k][i] = FT(parse(row, i))
		}
		for f := 0; f < nFields; f++ {
			base := 3 + 6*f
			for i := 0; i < 3; i++ {
				re, im := parse(row, base+2*i), parse(row, base+2*i+1)
				values[f][k][i] = CT(complex(re, im))
			}
		}
		if err != nil {
			return nil, err
		}
	}
	fd = &FieldData[FT, CT]{
		NPoints:   n,
		Positions: positions,
		Fields:    make(map[string][]utils.Vector3[CT], nFields),
	}
	for f, name := range names {
		fd.Fields[name] = values[f]
	}
	return
}

// Export writes fd to filename, choosing the format from the file suffix
func Export[FT utils.Float, CT utils.Complex](fd *FieldData[FT, CT], filename string) (err error) {
	var writer func(w io.Writer) error
	switch strings.ToLower(filepath.Ext(filename)) {
	case CSVSuffix:
		writer = func(w io.Writer) error { return WriteCSV(w, fd) }
	case BinarySuffix:
		writer = func(w io.Writer) error { return WriteBinary(w, fd) }
	default:
		return fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
	}
	var file *os.File
	if file, err = os.Create(filename); err != nil {
		return
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()
	bw := bufio.NewWriter(file)
	if err = writer(bw); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return bw.Flush()
}

// Import reads a file written by Export
func Import[FT utils.Float, CT utils.Complex](filename string) (fd *FieldData[FT, CT], err error) {
	var reader func(r io.Reader) (*FieldData[FT, CT], error)
	switch strings.ToLower(filepath.Ext(filename)) {
	case CSVSuffix:
		reader = ReadCSV[FT, CT]
	case BinarySuffix:
		reader = ReadBinary[FT, CT]
	default:
		return nil, fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
	}
	var file *os.File
	if file, err = os.Open(filename); err != nil {
		return
	}
	defer file.Close()
	if fd, err = reader(bufio.NewReader(file)); err != nil {
		err = fmt.Errorf("reading %s: %w", filename, err)
	}
	return
}

/*
ExportAll writes the primary file and then each optional file. A failure on the
primary file is returned. Failures on optional files are logged and skipped; the
names of the optional files that were written are returned.
*/
func ExportAll[FT utils.Float, CT utils.Complex](fd *FieldData[FT, CT], primary string,
	optional ...string) (written []string, err error) {
	log := utils.NamedLogger("fields")
	if err = Export(fd, primary); err != nil {
		return
	}
	log.Infof("wrote %d points, fields %v to %s", fd.NPoints, fd.Names(), primary)
	for _, filename := range optional {
		if oErr := Export(fd, filename); oErr != nil {
			log.Warnf("skipping optional export: %v", oErr)
			continue
		}
		log.Infof("wrote %s", filename)
		written = append(written, filename)
	}
	return
}

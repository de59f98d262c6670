package readfiles

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

/*
ReadCoefficients reads one complex basis coefficient per line as "re,im". Lines
starting with # are comments. The coefficient order is the basis numbering.
*/
func ReadCoefficients(filename string) (coeffs []complex128, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(filename); err != nil {
		return
	}
	defer file.Close()
	if coeffs, err = ParseCoefficients(file); err != nil {
		err = fmt.Errorf("%s: %w", filename, err)
	}
	return
}

func ParseCoefficients(r io.Reader) (coeffs []complex128, err error) {
	var (
		cr = csv.NewReader(r)
	)
	cr.Comment = '#'
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	for {
		var (
			record []string
			re, im float64
		)
		if record, err = cr.Read(); err == io.EOF {
			return coeffs, nil
		} else if err != nil {
			return nil, err
		}
		if re, err = strconv.ParseFloat(record[0], 64); err != nil {
			return nil, fmt.Errorf("coefficient %d: %w", len(coeffs), err)
		}
		if im, err = strconv.ParseFloat(record[1], 64); err != nil {
			return nil, fmt.Errorf("coefficient %d: %w", len(coeffs), err)
		}
		coeffs = append(coeffs, complex(re, im))
	}
}

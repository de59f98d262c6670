package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomom/fields"
	"github.com/notargets/gomom/utils"
)

var plateMesh = `% 2 x 2 plate, the upper right cell is coated
NDIME= 3
NELEM= 8
5 0 1 4
5 0 4 3
5 1 2 5
5 1 5 4
5 3 4 7
5 3 7 6
5 4 5 8
5 4 8 7
NPOIN= 9
0 0 0
0.5 0 0
1 0 0
0 0.5 0
0.5 0.5 0
1 0.5 0
0 1 0
0.5 1 0
1 1 0
NMARK= 1
MARKER_TAG= IBC-coating
MARKER_ELEMS= 2
5 4 5 8
5 4 8 7
`

func writeCase(t *testing.T, precision string, withCoeffs bool) (dir, paramsFile string) {
	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plate.su2"), []byte(plateMesh), 0644))
	params := `
Title: Plate
Frequency: 3.e8
Precision: ` + precision + `
MeshFile: plate.su2
PlaneWave:
  Theta: 90
  Phi: 0
  Alpha: 0
SurfaceImpedance:
  coating: [50., -10.]
Output: [` + filepath.Join(dir, "out.csv") + `, ` + filepath.Join(dir, "out.fdb") + `, ` +
		filepath.Join(dir, "missing", "out.csv") + `]
ParallelDegree: 3
`
	if withCoeffs {
		coeffs := "# re,im\n"
		for i := 0; i < 8; i++ {
			coeffs += "1,0\n"
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, "coeffs.csv"), []byte(coeffs), 0644))
		params += "CoefficientsFile: coeffs.csv\n"
	}
	paramsFile = filepath.Join(dir, "params.yaml")
	require.NoError(t, os.WriteFile(paramsFile, []byte(params), 0644))
	return
}

func TestProcessInput(t *testing.T) {
	{ // Relative paths follow the parameters file
		dir, paramsFile := writeCase(t, "double", true)
		ip, err := processInput(paramsFile)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "plate.su2"), ip.MeshFile)
		assert.Equal(t, filepath.Join(dir, "coeffs.csv"), ip.CoefficientsFile)
		assert.Equal(t, "J", ip.CurrentName)
		assert.Equal(t, 1., ip.PlaneWave.Amplitude)
		assert.Equal(t, complex(50, -10), ip.Impedance("coating"))
	}
	{ // Missing or invalid input
		_, err := processInput("")
		assert.Error(t, err)
		_, err = processInput(filepath.Join(t.TempDir(), "none.yaml"))
		assert.Error(t, err)
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("Title: nothing\nFrequency: -1\n"), 0644))
		_, err = processInput(bad)
		assert.ErrorContains(t, err, "MeshFile")
		assert.ErrorContains(t, err, "frequency")
	}
}

func TestRunSample(t *testing.T) {
	for _, precision := range []string{"double", "single"} {
		dir, paramsFile := writeCase(t, precision, true)
		ip, err := processInput(paramsFile)
		require.NoError(t, err)
		written, err := RunSample(ip)
		require.NoError(t, err)
		// The optional output in a missing directory is skipped
		assert.Equal(t, []string{filepath.Join(dir, "out.csv"), filepath.Join(dir, "out.fdb")}, written)

		fd, err := fields.Import[float64, complex128](filepath.Join(dir, "out.fdb"))
		require.NoError(t, err)
		assert.Equal(t, 8, fd.NPoints)
		assert.Equal(t, []string{"Einc", "Hinc", "J"}, fd.Names())
		// The first centroid is (1/3, 1/6, 0)
		assert.InDelta(t, 1./3, fd.Positions[0][0], 1.e-6)
		assert.InDelta(t, 1./6, fd.Positions[0][1], 1.e-6)
		for k := 0; k < fd.NPoints; k++ {
			assert.InDelta(t, 1., utils.ComplexNorm(fd.Fields["Einc"][k]), 1.e-6)
			assert.Equal(t, complex128(0), fd.Fields["J"][k][2])
		}

		data, err := os.ReadFile(filepath.Join(dir, "out.csv"))
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		assert.Len(t, lines, 9)
		assert.Len(t, strings.Split(lines[0], ","), 3+6*3)
	}
	{ // Coefficient count must match the basis
		dir, paramsFile := writeCase(t, "double", true)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "coeffs.csv"), []byte("1,0\n"), 0644))
		ip, err := processInput(paramsFile)
		require.NoError(t, err)
		_, err = RunSample(ip)
		assert.ErrorContains(t, err, "basis functions")
	}
	{ // Non finite coefficients are caught before writing
		dir, paramsFile := writeCase(t, "double", true)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "coeffs.csv"),
			[]byte(strings.Repeat("1,0\n", 7)+"NaN,0\n"), 0644))
		ip, err := processInput(paramsFile)
		require.NoError(t, err)
		_, err = RunSample(ip)
		assert.ErrorContains(t, err, "not finite")
		assert.NoFileExists(t, filepath.Join(dir, "out.csv"))
	}
}

func TestRunMerge(t *testing.T) {
	var (
		dir, paramsFile = writeCase(t, "double", false)
	)
	ip, err := processInput(paramsFile)
	require.NoError(t, err)
	_, err = RunSample(ip)
	require.NoError(t, err)

	incident, err := fields.Import[float64, complex128](filepath.Join(dir, "out.fdb"))
	require.NoError(t, err)
	currents := fields.NewFieldData[float64, complex128](incident.Positions)
	require.NoError(t, currents.Insert("M", make([]utils.Vector3[complex128], incident.NPoints)))
	currentsFile := filepath.Join(dir, "currents.fdb")
	require.NoError(t, fields.Export(currents, currentsFile))

	output := filepath.Join(dir, "merged.csv")
	require.NoError(t, RunMerge(output, []string{filepath.Join(dir, "out.fdb"), currentsFile}))
	merged, err := fields.Import[float64, complex128](output)
	require.NoError(t, err)
	assert.Equal(t, []string{"Einc", "Hinc", "M"}, merged.Names())

	short := fields.NewFieldData[float64, complex128](incident.Positions[:3])
	shortFile := filepath.Join(dir, "short.fdb")
	require.NoError(t, fields.Export(short, shortFile))
	err = RunMerge(filepath.Join(dir, "bad.csv"), []string{currentsFile, shortFile})
	assert.ErrorIs(t, err, fields.ErrPointCountMismatch)
	assert.Error(t, RunMerge(output, nil))
}

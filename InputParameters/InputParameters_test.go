package InputParameters

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldParameters(t *testing.T) {
	fileInput := []byte(`
Title: Plate at broadside
Frequency: 3.0e8
Precision: single
MeshFile: plate.su2
PlaneWave:
  Theta: 90
  Phi: 0
  Alpha: 0
CoefficientsFile: coeffs.csv
SurfaceImpedance:
  default: [50.0, 0.0]
  coating: [10.0, -5.0]
Output: [plate.csv, plate.fdb]
ParallelDegree: 4
`)
	var ip FieldParameters
	require.NoError(t, ip.Parse(fileInput))
	assert.Equal(t, "Plate at broadside", ip.Title)
	assert.Equal(t, 3.e8, ip.Frequency)
	assert.Equal(t, 1., ip.PlaneWave.Amplitude)
	assert.Equal(t, "J", ip.CurrentName)
	assert.Equal(t, []string{"plate.csv", "plate.fdb"}, ip.Output)
	assert.Equal(t, 4, ip.ParallelDegree)
	assert.Equal(t, complex(10, -5), ip.Impedance("coating"))
	assert.Equal(t, complex(50, 0), ip.Impedance("hull"))
	theta, phi, alpha := ip.PlaneWave.Radians()
	assert.InDelta(t, math.Pi/2, theta, 1.e-15)
	assert.Equal(t, 0., phi)
	assert.Equal(t, 0., alpha)
	require.NoError(t, ip.Validate())
	cfg, err := ip.Configuration()
	require.NoError(t, err)
	assert.Equal(t, Single, cfg.Precision)
	// 300 MHz is a one meter wavelength, to within the rounding of c
	assert.InDelta(t, 2*math.Pi, cfg.Wavenumber(), 0.02)
	assert.InDelta(t, 1., cfg.Wavelength(), 0.002)
	ip.Print()
}

func TestConfiguration(t *testing.T) {
	{
		p, err := NewPrecision("")
		assert.NoError(t, err)
		assert.Equal(t, Double, p)
		p, err = NewPrecision("Float32")
		assert.NoError(t, err)
		assert.Equal(t, Single, p)
		assert.Equal(t, "single", p.String())
		_, err = NewPrecision("half")
		assert.Error(t, err)
	}
	{
		cfg, err := NewConfiguration(Double, SpeedOfLight)
		require.NoError(t, err)
		assert.InDelta(t, 2*math.Pi, cfg.Wavenumber(), 1.e-12)
		_, err = NewConfiguration(Double, 0)
		assert.Error(t, err)
		_, err = NewConfiguration(Double, math.Inf(1))
		assert.Error(t, err)
	}
	{ // Amplitude defaults to 1 only when omitted
		var ip FieldParameters
		require.NoError(t, ip.Parse([]byte("PlaneWave:\n  Theta: 45\n")))
		assert.Equal(t, 1., ip.PlaneWave.Amplitude)
		assert.Equal(t, 45., ip.PlaneWave.Theta)
		ip = FieldParameters{}
		require.NoError(t, ip.Parse([]byte("PlaneWave:\n  Amplitude: 0\n")))
		assert.Equal(t, 0., ip.PlaneWave.Amplitude)
		ip = FieldParameters{}
		require.NoError(t, ip.Parse([]byte("PlaneWave:\n  Amplitude: 2.5\n")))
		assert.Equal(t, 2.5, ip.PlaneWave.Amplitude)
	}
	{ // Missing required fields are all reported
		var ip FieldParameters
		require.NoError(t, ip.Parse([]byte("Title: empty\n")))
		err := ip.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MeshFile")
		assert.Contains(t, err.Error(), "Output")
		assert.Contains(t, err.Error(), "frequency")
	}
}

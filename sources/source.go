package sources

import (
	"math"
	"math/cmplx"

	"github.com/notargets/gomom/InputParameters"
	"github.com/notargets/gomom/utils"
)

/*
ExcitingSource is an analytic field generator that can be sampled at any point.
Implementations must be safe for concurrent calls, the field engine samples from
many goroutines at once.
*/
type ExcitingSource[FT utils.Float, CT utils.Complex] interface {
	EvaluateE(r utils.Vector3[FT]) utils.Vector3[CT]
	EvaluateH(r utils.Vector3[FT]) utils.Vector3[CT]
}

var (
	_ ExcitingSource[float64, complex128] = (*PlaneWave[float64, complex128])(nil)
	_ ExcitingSource[float32, complex64]  = (*PlaneWave[float32, complex64])(nil)
)

/*
PlaneWave is a time harmonic plane wave arriving from the direction (Theta, Phi)
with polarization angle Alpha measured from the theta unit vector toward phi:

	khat = -(sin(Theta)cos(Phi), sin(Theta)sin(Phi), cos(Theta))
	E(r) = Amplitude * (cos(Alpha) thetahat + sin(Alpha) phihat) * exp(-j k0 khat.r)
	H(r) = khat x E(r) / eta0

Arithmetic is carried in double precision and rounded to CT on return.
*/
type PlaneWave[FT utils.Float, CT utils.Complex] struct {
	Theta, Phi, Alpha float64
	Amplitude         float64
	k0                float64
	khat, pol         utils.Vector3[float64]
}

func NewPlaneWave[FT utils.Float, CT utils.Complex](cfg InputParameters.Configuration,
	theta, phi, alpha, amplitude float64) (pw *PlaneWave[FT, CT]) {
	var (
		st, ct   = math.Sincos(theta)
		sp, cp   = math.Sincos(phi)
		sa, ca   = math.Sincos(alpha)
		thetaHat = utils.Vector3[float64]{ct * cp, ct * sp, -st}
		phiHat   = utils.Vector3[float64]{-sp, cp, 0}
	)
	pw = &PlaneWave[FT, CT]{
		Theta:     theta,
		Phi:       phi,
		Alpha:     alpha,
		Amplitude: amplitude,
		k0:        cfg.Wavenumber(),
		khat:      utils.Vector3[float64]{-st * cp, -st * sp, -ct},
		pol:       thetaHat.Scale(ca).Add(phiHat.Scale(sa)),
	}
	return
}

// Direction is the unit propagation vector
func (pw *PlaneWave[FT, CT]) Direction() utils.Vector3[float64] { return pw.khat }

func (pw *PlaneWave[FT, CT]) Polarization() utils.Vector3[float64] { return pw.pol }

func (pw *PlaneWave[FT, CT]) Wavenumber() float64 { return pw.k0 }

func (pw *PlaneWave[FT, CT]) efield(r utils.Vector3[FT]) (e utils.Vector3[complex128]) {
	var (
		phase = cmplx.Exp(complex(0, -pw.k0*pw.khat.Dot(utils.ToFloat64(r))))
		scale = complex(pw.Amplitude, 0) * phase
	)
	for i := 0; i < 3; i++ {
		e[i] = complex(pw.pol[i], 0) * scale
	}
	return
}

func (pw *PlaneWave[FT, CT]) EvaluateE(r utils.Vector3[FT]) utils.Vector3[CT] {
	return utils.FromComplex128[CT](pw.efield(r))
}

func (pw *PlaneWave[FT, CT]) EvaluateH(r utils.Vector3[FT]) utils.Vector3[CT] {
	var (
		e = pw.efield(r)
		k = utils.ToComplex[float64, complex128](pw.khat)
	)
	return utils.FromComplex128[CT](k.Cross(e).Scale(complex(1/InputParameters.FreeSpaceImpedance, 0)))
}

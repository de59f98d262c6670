package InputParameters

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
	"go.uber.org/multierr"
)

const (
	SpeedOfLight       = 299792458.0   // m/s
	FreeSpaceImpedance = 376.730313668 // Ohms
)

type Precision uint8

const (
	Double Precision = iota
	Single
)

func NewPrecision(label string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "double", "float64":
		return Double, nil
	case "single", "float32":
		return Single, nil
	}
	return Double, fmt.Errorf("unknown precision %q, use single or double", label)
}

func (p Precision) String() string {
	if p == Single {
		return "single"
	}
	return "double"
}

/*
Configuration is the run wide numeric setup: working precision and operating
frequency. It is built once per run and handed to the sources and the engine.
*/
type Configuration struct {
	Precision Precision
	Frequency float64 // Hz
}

func NewConfiguration(precision Precision, frequency float64) (cfg Configuration, err error) {
	cfg = Configuration{Precision: precision, Frequency: frequency}
	err = cfg.Validate()
	return
}

func (cfg Configuration) Validate() error {
	if !(cfg.Frequency > 0) || math.IsInf(cfg.Frequency, 0) {
		return fmt.Errorf("frequency must be positive and finite, have %v", cfg.Frequency)
	}
	return nil
}

func (cfg Configuration) AngularFrequency() float64 { return 2 * math.Pi * cfg.Frequency }

// Wavenumber is the free space angular wavenumber k0 = omega / c
func (cfg Configuration) Wavenumber() float64 { return cfg.AngularFrequency() / SpeedOfLight }

func (cfg Configuration) Wavelength() float64 { return SpeedOfLight / cfg.Frequency }

// Angles are in degrees in the input file
type PlaneWaveParameters struct {
	Theta     float64 `json:"Theta"`
	Phi       float64 `json:"Phi"`
	Alpha     float64 `json:"Alpha"`
	Amplitude float64 `json:"Amplitude"`
}

func (pw PlaneWaveParameters) Radians() (theta, phi, alpha float64) {
	toRad := math.Pi / 180
	return pw.Theta * toRad, pw.Phi * toRad, pw.Alpha * toRad
}

// Parameters obtained from the YAML input file
type FieldParameters struct {
	Title            string                `json:"Title"`
	Frequency        float64               `json:"Frequency"`
	Precision        string                `json:"Precision"`
	MeshFile         string                `json:"MeshFile"`
	PlaneWave        PlaneWaveParameters   `json:"PlaneWave"`
	CoefficientsFile string                `json:"CoefficientsFile"`
	CurrentName      string                `json:"CurrentName"`
	SurfaceImpedance map[string][2]float64 `json:"SurfaceImpedance"` // Keyed by IBC marker label, "default" for unlabeled
	Output           []string              `json:"Output"`
	ParallelDegree   int                   `json:"ParallelDegree"`
}

// Parse defaults Amplitude to 1 when the file omits it, an explicit value is kept as given
func (ip *FieldParameters) Parse(data []byte) (err error) {
	ip.PlaneWave.Amplitude = 1
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	if len(ip.CurrentName) == 0 {
		ip.CurrentName = "J"
	}
	return
}

func (ip *FieldParameters) Validate() (err error) {
	if len(ip.MeshFile) == 0 {
		err = multierr.Append(err, fmt.Errorf("MeshFile is required"))
	}
	if len(ip.Output) == 0 {
		err = multierr.Append(err, fmt.Errorf("at least one Output file is required"))
	}
	if _, cErr := ip.Configuration(); cErr != nil {
		err = multierr.Append(err, cErr)
	}
	return
}

func (ip *FieldParameters) Configuration() (cfg Configuration, err error) {
	var p Precision
	if p, err = NewPrecision(ip.Precision); err != nil {
		return
	}
	return NewConfiguration(p, ip.Frequency)
}

// Impedance returns the surface impedance for an IBC marker label
func (ip *FieldParameters) Impedance(label string) complex128 {
	if z, ok := ip.SurfaceImpedance[label]; ok {
		return complex(z[0], z[1])
	}
	if z, ok := ip.SurfaceImpedance["default"]; ok {
		return complex(z[0], z[1])
	}
	return 0
}

func (ip *FieldParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%12.6g\t\t= Frequency\n", ip.Frequency)
	fmt.Printf("[%s]\t\t= Precision\n", ip.Precision)
	fmt.Printf("[%s]\t= MeshFile\n", ip.MeshFile)
	fmt.Printf("%8.3f %8.3f %8.3f %8.3f\t= PlaneWave Theta Phi Alpha Amplitude\n",
		ip.PlaneWave.Theta, ip.PlaneWave.Phi, ip.PlaneWave.Alpha, ip.PlaneWave.Amplitude)
	if len(ip.CoefficientsFile) != 0 {
		fmt.Printf("[%s] -> %s\t= Coefficients\n", ip.CoefficientsFile, ip.CurrentName)
	}
	keys := make([]string, len(ip.SurfaceImpedance))
	i := 0
	for k := range ip.SurfaceImpedance {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Zs[%s] = %v\n", key, ip.SurfaceImpedance[key])
	}
	fmt.Printf("%v\t= Output\n", ip.Output)
}

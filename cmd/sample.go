/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/notargets/gomom/InputParameters"
	"github.com/notargets/gomom/fields"
	"github.com/notargets/gomom/geometry"
	"github.com/notargets/gomom/readfiles"
	"github.com/notargets/gomom/rwg"
	"github.com/notargets/gomom/sources"
	"github.com/notargets/gomom/types"
	"github.com/notargets/gomom/utils"
)

const exampleFile = `
########################################
Title: "Plate at broadside"
Frequency: 1.e9
Precision: double # or single
MeshFile: plate.su2
PlaneWave:
  Theta: 90 # degrees
  Phi: 0
  Alpha: 0
  Amplitude: 1 # 1 when omitted, an explicit 0 is kept
CoefficientsFile: plate_coeffs.csv # optional, one "re,im" per basis function
CurrentName: J
SurfaceImpedance: # keyed by IBC marker label, "default" for the rest
  coating: [50., -10.]
Output: [plate.csv, plate.fdb]
ParallelDegree: 0 # 0 uses every CPU
########################################
`

// SampleCmd represents the sample command
var SampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Sample the incident plane wave and surface currents at triangle centroids",
	Long: `
Reads a triangulated surface in SU2 format, samples the incident plane wave at each
triangle centroid, optionally reconstructs the surface current from basis function
coefficients, and writes the merged field data.

gomom sample -I params.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip       *InputParameters.FieldParameters
			fileName string
		)
		if fileName, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
			return
		}
		if ip, err = processInput(fileName); err != nil {
			return
		}
		if cmd.Flags().Changed("parallelDegree") {
			ip.ParallelDegree, _ = cmd.Flags().GetInt("parallelDegree")
		}
		ip.Print()
		_, err = RunSample(ip)
		return
	},
}

func init() {
	rootCmd.AddCommand(SampleCmd)
	SampleCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for input parameters like:\n\t- Frequency\n\t- MeshFile\n\t- PlaneWave")
	SampleCmd.Flags().IntP("parallelDegree", "n", 0, "number of goroutines sampling the source, overrides the input file")
}

// processInput reads the parameters file. Mesh and coefficient paths are relative to it.
func processInput(fileName string) (ip *InputParameters.FieldParameters, err error) {
	var (
		data []byte
	)
	if len(fileName) == 0 {
		fmt.Printf("Example File:%s\n", exampleFile)
		return nil, fmt.Errorf("must supply an input parameters file (-I, --inputParametersFile)")
	}
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	ip = &InputParameters.FieldParameters{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	if err = ip.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	dir := filepath.Dir(fileName)
	for _, p := range []*string{&ip.MeshFile, &ip.CoefficientsFile} {
		if len(*p) != 0 && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return
}

// RunSample returns the names of the output files written
func RunSample(ip *InputParameters.FieldParameters) (written []string, err error) {
	var (
		cfg InputParameters.Configuration
		sm  *readfiles.SurfaceMesh
	)
	if cfg, err = ip.Configuration(); err != nil {
		return
	}
	if sm, err = readfiles.ReadSU2Surface(ip.MeshFile); err != nil {
		return
	}
	switch cfg.Precision {
	case InputParameters.Single:
		return runSample[float32, complex64](ip, cfg, sm)
	default:
		return runSample[float64, complex128](ip, cfg, sm)
	}
}

func runSample[FT utils.Float, CT utils.Complex](ip *InputParameters.FieldParameters,
	cfg InputParameters.Configuration, sm *readfiles.SurfaceMesh) (written []string, err error) {
	var (
		log   = utils.NamedLogger("gomom")
		start = time.Now()
		surf  *geometry.Surface[FT]
	)
	if surf, err = geometry.NewSurface[FT](sm.Vertices, sm.Triangles); err != nil {
		return
	}
	log.Infof("%d triangles, %d basis functions, %s precision, %g Hz",
		len(surf.Triangles), surf.NBasis, cfg.Precision, cfg.Frequency)
	tris := geometry.NewIBCTriangles[FT, CT](surf.Triangles)
	for _, name := range sm.MarkerNames() {
		tag := types.NewSurfaceTAG(name)
		if tag.GetFLAG() != types.Surface_IBC {
			continue
		}
		zs := CT(ip.Impedance(tag.GetLabel()))
		for _, k := range sm.Markers[name] {
			tris[k].SetSurfaceImpedance(zs)
		}
		log.Debugf("marker %s: %d triangles with Zs = %v", name, len(sm.Markers[name]), zs)
	}

	var (
		eng               = fields.NewEngine[FT, CT](ip.ParallelDegree)
		theta, phi, alpha = ip.PlaneWave.Radians()
		src               sources.ExcitingSource[FT, CT]
		fd                *fields.FieldData[FT, CT]
	)
	src = sources.NewPlaneWave[FT, CT](cfg, theta, phi, alpha, ip.PlaneWave.Amplitude)
	fd = fields.EvaluateIncidentFields(eng, geometry.Flat(tris), src)

	if len(ip.CoefficientsFile) != 0 {
		var currents *fields.FieldData[FT, CT]
		if currents, err = reconstructCurrents[FT, CT](ip, surf); err != nil {
			return
		}
		if err = fd.Merge(currents); err != nil {
			return
		}
	}
	for _, name := range fd.Names() {
		if k := utils.FirstNonFinite(fd.Fields[name]); k >= 0 {
			return nil, fmt.Errorf("field %s is not finite at point %d %v", name, k, fd.Positions[k])
		}
	}
	log.Infof("sampled %v at %d points in %v", fd.Names(), fd.NPoints, time.Since(start))
	log.Debug(utils.GetMemUsage())
	if written, err = fields.ExportAll(fd, ip.Output[0], ip.Output[1:]...); err != nil {
		return
	}
	written = append([]string{ip.Output[0]}, written...)
	return
}

func reconstructCurrents[FT utils.Float, CT utils.Complex](ip *InputParameters.FieldParameters,
	surf *geometry.Surface[FT]) (fd *fields.FieldData[FT, CT], err error) {
	var (
		coeffs []complex128
		basis  []rwg.BasisFunction[FT]
	)
	if coeffs, err = readfiles.ReadCoefficients(ip.CoefficientsFile); err != nil {
		return
	}
	if len(coeffs) != surf.NBasis {
		return nil, fmt.Errorf("%s has %d coefficients, the mesh has %d basis functions",
			ip.CoefficientsFile, len(coeffs), surf.NBasis)
	}
	if basis, err = rwg.BuildBasis(surf.Triangles, surf.NBasis); err != nil {
		return
	}
	c := make([]CT, len(coeffs))
	for i, v := range coeffs {
		c[i] = CT(v)
	}
	return rwg.NewReconstruction[FT, CT](surf.Triangles, basis).Currents(ip.CurrentName, c)
}

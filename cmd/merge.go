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

	"github.com/spf13/cobra"

	"github.com/notargets/gomom/fields"
	"github.com/notargets/gomom/utils"
)

// MergeCmd represents the merge command
var MergeCmd = &cobra.Command{
	Use:   "merge [flags] input...",
	Short: "Merge field data files sampled on the same points",
	Long: `
Reads field data files (.csv or .fdb) sampled on the same points and writes one
file holding every field. Later inputs win when two inputs carry the same field.

gomom merge -o all.csv incident.fdb currents.fdb`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var output string
		if output, err = cmd.Flags().GetString("output"); err != nil {
			return
		}
		return RunMerge(output, args)
	},
}

func init() {
	rootCmd.AddCommand(MergeCmd)
	MergeCmd.Flags().StringP("output", "o", "merged.fdb", "output file, format chosen by suffix (.csv or .fdb)")
}

func RunMerge(output string, inputs []string) (err error) {
	var (
		all = make([]*fields.FieldData[float64, complex128], len(inputs))
	)
	if len(inputs) == 0 {
		return fmt.Errorf("no input files")
	}
	for i, fileName := range inputs {
		if all[i], err = fields.Import[float64, complex128](fileName); err != nil {
			return
		}
	}
	var merged *fields.FieldData[float64, complex128]
	if merged, err = fields.MergeAll(all[0], all[1:]...); err != nil {
		return
	}
	if err = fields.Export(merged, output); err != nil {
		return
	}
	utils.NamedLogger("gomom").Infof("merged %d files into %s, fields %v", len(inputs), output, merged.Names())
	return
}

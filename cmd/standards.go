/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/nutrigap/internal/ioview"
	"github.com/gnames/nutrigap/pkg/standards"
	"github.com/spf13/cobra"
)

// getStandardsCmd returns the standards command.
func getStandardsCmd() *cobra.Command {
	var category string

	standardsCmd := &cobra.Command{
		Use:   "standards",
		Short: "Show reference nutrient standards",
		Long: `Show recommended ranges used for gap analysis.

Standards come from the built-in MPOB reference data, or from a YAML
file given by --reference or 'reference.path' in config.yaml.

Examples:
  nutrigap standards
  nutrigap standards --category leaf
  nutrigap standards -r my-standards.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStandards(category)
		},
	}

	standardsCmd.Flags().StringVarP(&category, "category", "c", "",
		"show only 'soil' or 'leaf' standards")

	return standardsCmd
}

func runStandards(category string) error {
	var cats []standards.Category
	if category != "" {
		cat, ok := standards.NewCategory(category)
		if !ok {
			err := fmt.Errorf("unknown category %q", category)
			gn.Warn("Category must be <em>soil</em> or <em>leaf</em>")
			return err
		}
		cats = append(cats, cat)
	}

	eng, err := newEngine()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	fmt.Print(ioview.Standards(eng.Standards(), cats...))
	return nil
}

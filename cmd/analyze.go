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
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gnames/gn"
	"github.com/gnames/nutrigap/internal/iobatch"
	"github.com/gnames/nutrigap/internal/ioexport"
	"github.com/gnames/nutrigap/internal/iofs"
	"github.com/gnames/nutrigap/internal/iohistory"
	"github.com/gnames/nutrigap/internal/ioreport"
	"github.com/gnames/nutrigap/internal/ioview"
	"github.com/gnames/nutrigap/pkg/config"
	"github.com/gnames/nutrigap/pkg/engine"
	"github.com/gnames/nutrigap/pkg/history"
	"github.com/spf13/cobra"
)

// analyzeFlags keeps values of analyze command flags.
type analyzeFlags struct {
	format      string
	interactive bool
	pdf         string
	save        bool
}

// getAnalyzeCmd returns the analyze command.
func getAnalyzeCmd() *cobra.Command {
	var flags analyzeFlags

	analyzeCmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Build nutrient gap tables from JSON uploads",
		Long: `Analyze soil and leaf laboratory results.

Each file is a JSON document that maps 'soil' and/or 'leaf' to
parameter entries. An entry is either pre-aggregated
({"average": 0.08, "sample_count": 5}) or raw ({"values": [...]}).
A category can also be an array of sample rows.

Parameter labels are matched against aliases of reference standards,
unrecognized labels and non-numeric values are reported, not fatal.

Several files are analyzed concurrently.

Output formats:
  table    formatted table (default)
  csv      comma separated values
  tsv      tab separated values
  compact  JSON with diagnostics
  pretty   indented JSON with diagnostics

Examples:
  nutrigap analyze estate.json
  nutrigap analyze -i estate.json
  nutrigap analyze -f csv block-*.json
  nutrigap analyze --pdf reports/ --save block-*.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, flags)
		},
	}

	analyzeCmd.Flags().StringVarP(&flags.format, "format", "f", "",
		"output format: table, csv, tsv, compact, pretty")
	analyzeCmd.Flags().BoolVarP(&flags.interactive, "interactive", "i",
		false, "browse the table interactively")
	analyzeCmd.Flags().StringVarP(&flags.pdf, "pdf", "p", "",
		"write PDF report to a file or a directory")
	analyzeCmd.Flags().BoolVarP(&flags.save, "save", "s", false,
		"save gap tables to history")

	return analyzeCmd
}

func runAnalyze(cmd *cobra.Command, args []string, flags analyzeFlags) error {
	ctx := context.Background()

	var runOpts []config.Option
	if cmd.Flags().Changed("format") {
		runOpts = append(runOpts, config.OptAnalyzeFormat(flags.format))
	}
	runOpts = append(runOpts,
		config.OptAnalyzeInteractive(flags.interactive),
		config.OptAnalyzePDFPath(flags.pdf),
		config.OptAnalyzeSave(flags.save),
	)
	cfg.Update(runOpts)

	eng, err := newEngine()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var store history.Store
	if cfg.Analyze.Save {
		store, err = iohistory.New(ctx, cfg)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		defer store.Close()
	}

	runner := iobatch.New(eng, cfg.JobsNumber, isTerminal(os.Stderr))
	outs, err := runner.Run(ctx, args)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var failed int
	for _, o := range outs {
		if o.Err != nil {
			failed++
			gn.PrintErrorMessage(o.Err)
			continue
		}
		if err = output(ctx, o, len(outs) > 1, store); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be analyzed",
			failed, len(outs))
	}
	return nil
}

// output shows, exports, prints and saves one analysis result.
func output(
	ctx context.Context,
	o iobatch.Outcome,
	multi bool,
	store history.Store,
) error {
	res := o.Result
	title := cfg.Report.Title
	if multi {
		title = o.Source
	}

	if err := show(res, title); err != nil {
		return err
	}

	if cfg.Analyze.PDFPath != "" {
		path := pdfPath(cfg.Analyze.PDFPath, o.Source, multi)
		opts := ioreport.Options{
			Title:       cfg.Report.Title,
			PageSize:    cfg.Report.PageSize,
			Source:      o.Source,
			Diagnostics: &res.Diagnostics,
		}
		if err := ioreport.WriteFile(path, res.Table, opts); err != nil {
			return err
		}
		gn.Info("Report for <em>%s</em> written to <em>%s</em>", o.Source, path)
	}

	if store != nil {
		snap, err := history.New(res.Table, o.Source)
		if err != nil {
			return err
		}
		if err = store.Save(ctx, snap); err != nil {
			return err
		}
		gn.Info("Saved <em>%s</em> as snapshot <em>%s</em>", o.Source, snap.ID)
	}
	return nil
}

// show writes the result to stdout in the configured format.
func show(res engine.Result, title string) error {
	if cfg.Analyze.Format != "table" {
		f, err := ioexport.ParseFormat(cfg.Analyze.Format)
		if err != nil {
			return err
		}
		return ioexport.Write(os.Stdout, res, f)
	}

	if cfg.Analyze.Interactive && isTerminal(os.Stdout) {
		if err := ioview.Run(res.Table, title); err != nil {
			return err
		}
	} else {
		fmt.Print(ioview.Static(res.Table, title))
	}
	printDiagnostics(res.Diagnostics)
	return nil
}

// pdfPath picks a report file name. Directories and batches get one
// file per input.
func pdfPath(target, source string, multi bool) string {
	if multi || iofs.IsDir(target) || filepath.Ext(target) == "" {
		return filepath.Join(target, source+".pdf")
	}
	return target
}

func printDiagnostics(d engine.Diagnostics) {
	if d.IsEmpty() {
		return
	}
	for _, l := range d.Unmapped {
		gn.Warn("Unrecognized %s parameter: <em>%s</em>", l.Category, l.Label)
	}
	for _, ex := range d.NoValidSamples {
		gn.Warn("No valid values for <em>%s</em> (%s), %d dropped",
			ex.Parameter, ex.Category, ex.Dropped)
	}
	for _, k := range d.NoStandard {
		gn.Warn("No reference standard for <em>%s</em>", k)
	}
	for _, k := range d.ZeroMinimum {
		gn.Warn("Percent gap of <em>%s</em> is undefined, minimum is zero", k)
	}
	for _, m := range d.Merged {
		gn.Info("<em>%s</em> (%s) combined from %d labels",
			m.Parameter, m.Category, len(m.Labels))
	}
	if d.DroppedValues > 0 {
		gn.Info("Ignored %d non-numeric or missing values", d.DroppedValues)
	}
}

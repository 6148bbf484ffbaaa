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
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/nutrigap/internal/ioexport"
	"github.com/gnames/nutrigap/internal/iohistory"
	"github.com/gnames/nutrigap/internal/ioreport"
	"github.com/gnames/nutrigap/internal/ioview"
	"github.com/gnames/nutrigap/pkg/engine"
	"github.com/gnames/nutrigap/pkg/history"
	"github.com/gnames/nutrigap/pkg/render"
	"github.com/spf13/cobra"
)

// getHistoryCmd returns the history command with its subcommands.
func getHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List and show saved gap tables",
		Long: `Work with gap tables saved by 'nutrigap analyze --save'.

Saved tables are restored exactly as they were produced, they are never
recomputed with current reference standards.

The storage is selected by 'history.backend' in config.yaml: sqlite
(default), postgres or none.`,
	}

	historyCmd.AddCommand(getHistoryListCmd(), getHistoryShowCmd())
	return historyCmd
}

func getHistoryListCmd() *cobra.Command {
	var limit int

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved gap tables, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(limit)
		},
	}

	listCmd.Flags().IntVarP(&limit, "limit", "n", 20,
		"maximum number of snapshots, 0 lists all")
	return listCmd
}

func getHistoryShowCmd() *cobra.Command {
	var format, pdf string

	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a saved gap table",
		Long: `Show a saved gap table.

Examples:
  nutrigap history show 2f1e4c7a-...
  nutrigap history show 2f1e4c7a-... --format csv
  nutrigap history show 2f1e4c7a-... --pdf block-7.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(args[0], format, pdf)
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "table",
		"output format: table, csv, tsv, compact, pretty")
	showCmd.Flags().StringVarP(&pdf, "pdf", "p", "",
		"write PDF report to a file")
	return showCmd
}

func runHistoryList(limit int) error {
	ctx := context.Background()
	store, err := iohistory.New(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer store.Close()

	snaps, err := store.List(ctx, limit)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if len(snaps) == 0 {
		gn.Info("No saved gap tables")
		return nil
	}
	fmt.Print(formatSnapshots(snaps))
	return nil
}

func formatSnapshots(snaps []history.Snapshot) string {
	var b strings.Builder
	for _, s := range snaps {
		fmt.Fprintf(&b, "%s  %s (%s)  %-20s  %s\n",
			s.ID,
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			humanize.Time(s.CreatedAt),
			s.Source,
			render.Summary(s.Counts),
		)
	}
	return b.String()
}

func runHistoryShow(id, format, pdf string) error {
	ctx := context.Background()
	store, err := iohistory.New(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer store.Close()

	snap, tbl, err := iohistory.Load(ctx, store, id)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if format == "table" {
		title := fmt.Sprintf("%s (%s)", snap.Source,
			snap.CreatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Print(ioview.Static(tbl, title))
	} else {
		f, err := ioexport.ParseFormat(format)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		res := engine.Result{Table: tbl}
		if err = ioexport.Write(os.Stdout, res, f); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	}

	if pdf != "" {
		opts := ioreport.Options{
			Title:     cfg.Report.Title,
			PageSize:  cfg.Report.PageSize,
			Source:    snap.Source,
			CreatedAt: snap.CreatedAt,
		}
		if err = ioreport.WriteFile(pdf, tbl, opts); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		gn.Info("Report written to <em>%s</em>", pdf)
	}
	return nil
}

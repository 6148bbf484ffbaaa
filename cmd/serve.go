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
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/gnames/gn"
	"github.com/gnames/nutrigap/internal/iohistory"
	"github.com/gnames/nutrigap/internal/ioserver"
	"github.com/gnames/nutrigap/pkg/config"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	var port int

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run nutrient gap analysis HTTP API",
		Long: `Run an HTTP service for nutrient gap analysis.

Endpoints:
  GET  /ping                        service status
  POST /api/v1/gaps                 gap table and diagnostics as JSON
  POST /api/v1/gaps/report          PDF report
  GET  /api/v1/standards            reference standards
  GET  /api/v1/history              saved gap tables
  GET  /api/v1/history/:id          saved gap table
  GET  /api/v1/history/:id/report   PDF report of a saved gap table

Examples:
  nutrigap serve
  nutrigap serve --port 9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				cfg.Update([]config.Option{config.OptServerPort(port)})
			}
			return runServe()
		},
	}

	serveCmd.Flags().IntVarP(&port, "port", "p", 0,
		"port of the service (default: 'server.port' from config)")
	return serveCmd
}

func runServe() error {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng, err := newEngine()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	store, err := iohistory.New(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer store.Close()

	gin.SetMode(gin.ReleaseMode)
	srv := ioserver.New(eng, store, cfg)
	gn.Info("Listening on port <em>%d</em>", cfg.Server.Port)
	if err = srv.Run(ctx, cfg.Server.Port); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

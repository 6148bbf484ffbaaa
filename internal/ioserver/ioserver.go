// Package ioserver exposes gap analysis over HTTP.
package ioserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gnames/gn"
	nutrigap "github.com/gnames/nutrigap/pkg"
	"github.com/gnames/nutrigap/pkg/config"
	"github.com/gnames/nutrigap/pkg/engine"
	"github.com/gnames/nutrigap/pkg/errcode"
	"github.com/gnames/nutrigap/pkg/history"
)

// MaxBodySize limits the size of uploaded documents.
const MaxBodySize = 4 << 20

// Server handles analysis requests. It shares one engine between all
// requests.
type Server struct {
	eng      *engine.Engine
	store    history.Store
	title    string
	pageSize string
}

// New creates a Server. Store can be nil when history is not needed.
func New(e *engine.Engine, store history.Store, cfg *config.Config) *Server {
	return &Server{
		eng:      e,
		store:    store,
		title:    cfg.Report.Title,
		pageSize: cfg.Report.PageSize,
	}
}

// Router creates a gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	s.RegisterRoutes(router)
	return router
}

// RegisterRoutes adds routes of the service to a router.
func (s *Server) RegisterRoutes(router *gin.Engine) {
	router.GET("/ping", s.ping)

	api := router.Group("/api/v1")
	api.POST("/gaps", s.analyze)
	api.POST("/gaps/report", s.report)
	api.GET("/standards", s.standards)
	api.GET("/history", s.historyList)
	api.GET("/history/:id", s.historyGet)
	api.GET("/history/:id/report", s.historyReport)
}

// Run serves requests on a port until ctx is canceled.
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return StartError(port, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 10*time.Second,
		)
		defer cancel()
		slog.Info("Stopping server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"version":          nutrigap.Version,
		"referenceVersion": s.eng.Standards().Version(),
	})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Path  string `json:"path,omitempty"`
}

func abort(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}

// abortGN converts application errors to HTTP statuses.
func abortGN(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		switch gnErr.Code {
		case errcode.HistoryNotFoundError:
			status = http.StatusNotFound
		case errcode.HistoryDisabledError:
			status = http.StatusServiceUnavailable
		}
		err = gnErr.Err
	}
	slog.Error("Request failed", "path", c.Request.URL.Path, "error", err)
	abort(c, status, err)
}

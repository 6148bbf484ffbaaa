package ioserver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gnames/nutrigap/internal/iohistory"
	"github.com/gnames/nutrigap/internal/ioreport"
	"github.com/gnames/nutrigap/pkg/engine"
	"github.com/gnames/nutrigap/pkg/gaptable"
	"github.com/gnames/nutrigap/pkg/history"
	"github.com/gnames/nutrigap/pkg/standards"
	"github.com/gnames/nutrigap/pkg/upload"
)

type gapsQuery struct {
	Source string `form:"source" binding:"max=255"`
	Save   bool   `form:"save"`
}

type reportQuery struct {
	Source string `form:"source" binding:"max=255"`
	Title  string `form:"title" binding:"max=255"`
}

type standardsQuery struct {
	Category string `form:"category" binding:"omitempty,oneof=soil leaf"`
}

type historyQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000"`
}

type gapsResponse struct {
	Source     string `json:"source,omitempty"`
	SnapshotID string `json:"snapshotId,omitempty"`
	engine.Result
}

type standardResponse struct {
	Parameter string             `json:"parameter"`
	Category  standards.Category `json:"category"`
	Min       float64            `json:"min"`
	Max       *float64           `json:"max,omitempty"`
	Unit      string             `json:"unit"`
}

type snapshotResponse struct {
	history.Snapshot
	Table *gaptable.Table `json:"table,omitempty"`
}

// analyze returns the gap table and diagnostics of an uploaded document.
func (s *Server) analyze(c *gin.Context) {
	var q gapsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	res, ok := s.analyzeBody(c)
	if !ok {
		return
	}

	resp := gapsResponse{Source: q.Source, Result: res}
	if q.Save {
		snap, err := s.save(c, res.Table, q.Source)
		if err != nil {
			abortGN(c, err)
			return
		}
		resp.SnapshotID = snap.ID
	}
	c.JSON(http.StatusOK, resp)
}

// report returns a PDF report of an uploaded document.
func (s *Server) report(c *gin.Context) {
	var q reportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	res, ok := s.analyzeBody(c)
	if !ok {
		return
	}

	opts := s.reportOptions(q.Title, q.Source)
	opts.Diagnostics = &res.Diagnostics
	s.sendReport(c, res.Table, opts)
}

func (s *Server) standards(c *gin.Context) {
	var q standardsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	var cats []standards.Category
	if q.Category != "" {
		cat, _ := standards.NewCategory(q.Category)
		cats = append(cats, cat)
	}

	tbl := s.eng.Standards()
	stds := tbl.Standards(cats...)
	res := make([]standardResponse, len(stds))
	for i, std := range stds {
		res[i] = standardResponse{
			Parameter: std.Parameter,
			Category:  std.Category,
			Min:       std.Min,
			Max:       std.Max,
			Unit:      std.Unit,
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"version":   tbl.Version(),
		"source":    tbl.Source(),
		"standards": res,
	})
}

func (s *Server) historyList(c *gin.Context) {
	var q historyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if !s.hasHistory(c) {
		return
	}

	snaps, err := s.store.List(c.Request.Context(), q.Limit)
	if err != nil {
		abortGN(c, err)
		return
	}
	if snaps == nil {
		snaps = []history.Snapshot{}
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snaps})
}

func (s *Server) historyGet(c *gin.Context) {
	if !s.hasHistory(c) {
		return
	}
	snap, tbl, err := iohistory.Load(c.Request.Context(), s.store, c.Param("id"))
	if err != nil {
		abortGN(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshotResponse{Snapshot: snap, Table: tbl})
}

func (s *Server) historyReport(c *gin.Context) {
	if !s.hasHistory(c) {
		return
	}
	snap, tbl, err := iohistory.Load(c.Request.Context(), s.store, c.Param("id"))
	if err != nil {
		abortGN(c, err)
		return
	}
	opts := s.reportOptions("", snap.Source)
	opts.CreatedAt = snap.CreatedAt
	s.sendReport(c, tbl, opts)
}

// analyzeBody validates the request body and runs the analysis. When it
// returns false the response is already written.
func (s *Server) analyzeBody(c *gin.Context) (engine.Result, bool) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodySize)
	data, err := io.ReadAll(body)
	if err != nil {
		abort(c, http.StatusRequestEntityTooLarge, err)
		return engine.Result{}, false
	}

	up, err := upload.Parse(data)
	if err != nil {
		resp := errorResponse{Error: err.Error()}
		var vErr *upload.ValidationError
		if errors.As(err, &vErr) {
			resp = errorResponse{Error: vErr.Reason, Path: vErr.Path}
		}
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, resp)
		return engine.Result{}, false
	}
	res, err := s.eng.Analyze(up)
	if err != nil {
		abort(c, http.StatusUnprocessableEntity, err)
		return engine.Result{}, false
	}
	return res, true
}

func (s *Server) save(
	c *gin.Context,
	t *gaptable.Table,
	source string,
) (history.Snapshot, error) {
	if s.store == nil {
		return history.Snapshot{}, iohistory.DisabledError()
	}
	snap, err := history.New(t, source)
	if err != nil {
		return snap, err
	}
	return snap, s.store.Save(c.Request.Context(), snap)
}

func (s *Server) hasHistory(c *gin.Context) bool {
	if s.store == nil {
		abortGN(c, iohistory.DisabledError())
		return false
	}
	return true
}

func (s *Server) reportOptions(title, source string) ioreport.Options {
	if title == "" {
		title = s.title
	}
	return ioreport.Options{
		Title:    title,
		PageSize: s.pageSize,
		Source:   source,
	}
}

func (s *Server) sendReport(
	c *gin.Context,
	t *gaptable.Table,
	opts ioreport.Options,
) {
	var buf bytes.Buffer
	if err := ioreport.Write(&buf, t, opts); err != nil {
		abortGN(c, err)
		return
	}
	id := t.GenerationID()
	name := fmt.Sprintf("nutrigap-%s.pdf", id[:min(8, len(id))])
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

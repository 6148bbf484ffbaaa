package ioreport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/nutrigap/pkg/errcode"
)

// RenderError is returned when PDF document cannot be produced.
func RenderError(err error) error {
	msg := "Cannot create PDF report"
	return &gn.Error{
		Code: errcode.ReportRenderError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot render pdf: %w", err),
	}
}

// ChartError is returned when the gap chart cannot be drawn.
func ChartError(err error) error {
	msg := "Cannot draw gap chart"
	return &gn.Error{
		Code: errcode.ChartRenderError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot render chart: %w", err),
	}
}

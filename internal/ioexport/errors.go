package ioexport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/nutrigap/pkg/errcode"
)

// FormatError is returned for unsupported output formats.
func FormatError(format string) error {
	msg := `Unsupported output format <em>%s</em>

Supported formats: table, csv, tsv, compact, pretty`
	vars := []any{format}
	return &gn.Error{
		Code: errcode.ExportFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unsupported format %q", format),
	}
}

// EncodeError is returned when a result cannot be serialized.
func EncodeError(format string, err error) error {
	msg := "Cannot write <em>%s</em> output"
	vars := []any{format}
	return &gn.Error{
		Code: errcode.ExportFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot encode %s: %w", format, err),
	}
}

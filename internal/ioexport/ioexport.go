// Package ioexport serializes analysis results to CSV, TSV and JSON.
// Values in CSV and TSV are formatted the same way as on screen.
package ioexport

import (
	"bytes"
	"io"

	"github.com/gnames/gnfmt"
	"github.com/gnames/nutrigap/pkg/engine"
	"github.com/gnames/nutrigap/pkg/render"
)

// ParseFormat converts an analyze format name to gnfmt.Format.
// "compact" and "pretty" select JSON.
func ParseFormat(s string) (gnfmt.Format, error) {
	switch s {
	case "csv":
		return gnfmt.CSV, nil
	case "tsv":
		return gnfmt.TSV, nil
	case "compact", "json":
		return gnfmt.CompactJSON, nil
	case "pretty":
		return gnfmt.PrettyJSON, nil
	default:
		return gnfmt.FormatNone, FormatError(s)
	}
}

// Encode serializes a result. CSV and TSV keep the table only, JSON
// formats add diagnostics.
func Encode(res engine.Result, f gnfmt.Format) ([]byte, error) {
	switch f {
	case gnfmt.CSV:
		return delimited(res, ','), nil
	case gnfmt.TSV:
		return delimited(res, '\t'), nil
	case gnfmt.CompactJSON, gnfmt.PrettyJSON:
		enc := gnfmt.GNjson{Pretty: f == gnfmt.PrettyJSON}
		data, err := enc.Encode(res)
		if err != nil {
			return nil, EncodeError(f.String(), err)
		}
		return append(data, '\n'), nil
	default:
		return nil, FormatError(f.String())
	}
}

// Write encodes a result to w.
func Write(w io.Writer, res engine.Result, f gnfmt.Format) error {
	data, err := Encode(res, f)
	if err != nil {
		return err
	}
	if _, err = w.Write(data); err != nil {
		return EncodeError(f.String(), err)
	}
	return nil
}

func delimited(res engine.Result, sep rune) []byte {
	var buf bytes.Buffer
	buf.WriteString(gnfmt.ToCSV(render.Headers, sep))
	buf.WriteByte('\n')
	for _, row := range render.Rows(res.Table) {
		buf.WriteString(gnfmt.ToCSV(row, sep))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

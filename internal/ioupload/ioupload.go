// Package ioupload reads analysis input files.
package ioupload

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gnames/nutrigap/internal/iofs"
	"github.com/gnames/nutrigap/pkg/upload"
)

// Read loads and validates an upload file.
func Read(path string) (*upload.Upload, error) {
	data, err := iofs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	slog.Debug("Upload parsed",
		"file", path, "measurements", len(res.Measurements))
	return res, nil
}

// Parse validates upload data, origin is used in error messages.
func Parse(data []byte, origin string) (*upload.Upload, error) {
	res, err := upload.Parse(data)
	if err == nil {
		return res, nil
	}

	var vErr *upload.ValidationError
	if errors.As(err, &vErr) {
		return nil, ValidationError(origin, vErr)
	}
	return nil, DecodeError(origin, err)
}

// Label returns a short name of an upload file for reports and history.
func Label(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Package ioreference loads reference standards from the embedded YAML
// file or from a user supplied override.
package ioreference

import (
	_ "embed"
	"log/slog"
	"os"

	"github.com/gnames/gnlib"
	"github.com/gnames/nutrigap/pkg/config"
	"github.com/gnames/nutrigap/pkg/standards"
	"gopkg.in/yaml.v3"
)

// EmbeddedName is used as the origin of the embedded reference data in
// messages and logs.
const EmbeddedName = "embedded reference.yaml"

//go:embed reference.yaml
var ReferenceYAML []byte

// Load reads reference standards. An empty path selects embedded data.
// The returned catalog is validated and its version is checked against
// config.MinVersionReference.
func Load(path string) (*standards.Catalog, error) {
	if path == "" {
		return Decode(ReferenceYAML, EmbeddedName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	return Decode(data, path)
}

// Decode parses and validates reference standards. The origin is used in
// error messages only.
func Decode(data []byte, origin string) (*standards.Catalog, error) {
	var res standards.Catalog
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, DecodeError(origin, err)
	}

	if err := checkVersion(origin, res.Version); err != nil {
		return nil, err
	}

	if err := res.Validate(); err != nil {
		return nil, InvalidError(origin, err)
	}

	for _, w := range res.Warnings {
		slog.Warn("Reference data issue", "origin", origin, "warning", w)
	}

	slog.Info("Reference standards loaded",
		"origin", origin,
		"version", res.Version,
		"parameters", len(res.Parameters),
	)
	return &res, nil
}

func checkVersion(origin, version string) error {
	if !gnlib.IsVersion(version) {
		return NotVersionError(origin, version)
	}
	if gnlib.CmpVersion(version, config.MinVersionReference) < 0 {
		return VersionTooOldError(origin, version)
	}
	return nil
}

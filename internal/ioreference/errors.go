package ioreference

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/nutrigap/pkg/config"
	"github.com/gnames/nutrigap/pkg/errcode"
)

// ReadError is returned when a reference file cannot be read.
func ReadError(path string, err error) error {
	msg := `Cannot read reference standards

<em>Reference file:</em> %s

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Remove <em>reference.path</em> from config.yaml to use built-in standards`
	vars := []any{path, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReferenceReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), path, err),
	}
}

// DecodeError is returned when reference data is not valid YAML.
func DecodeError(origin string, err error) error {
	msg := "Cannot parse reference standards from <em>%s</em>"
	vars := []any{origin}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReferenceDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot decode yaml: %w", fn.Name(), err),
	}
}

// NotVersionError is returned when the version field is not a semantic
// version.
func NotVersionError(origin, version string) error {
	msg := "Reference standards from <em>%s</em> have invalid version '%s'"
	vars := []any{origin, version}
	return &gn.Error{
		Code: errcode.ReferenceVersionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid reference version %q", version),
	}
}

// VersionTooOldError is returned when reference data is older than the
// minimal supported version.
func VersionTooOldError(origin, version string) error {
	msg := `Reference standards from <em>%s</em> are too old

<em>Version:</em> %s
<em>Minimal supported version:</em> %s`
	vars := []any{origin, version, config.MinVersionReference}
	return &gn.Error{
		Code: errcode.ReferenceVersionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("reference version %s is older than %s",
			version, config.MinVersionReference),
	}
}

// InvalidError is returned when reference data fails validation.
func InvalidError(origin string, err error) error {
	msg := `Reference standards from <em>%s</em> are invalid

<em>Reason:</em> %s`
	vars := []any{origin, err.Error()}
	return &gn.Error{
		Code: errcode.ReferenceInvalidError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid reference data: %w", err),
	}
}

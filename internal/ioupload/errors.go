package ioupload

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/nutrigap/pkg/errcode"
	"github.com/gnames/nutrigap/pkg/upload"
)

// ValidationError is returned when upload data has a wrong shape.
func ValidationError(origin string, err *upload.ValidationError) error {
	msg := `Rejected input from <em>%s</em>

<em>Location:</em> %s
<em>Problem:</em> %s

Input must map 'soil' and/or 'leaf' to parameter entries
({"average": ..., "sample_count": ...} or {"values": [...]})
or to an array of sample rows.`
	path := err.Path
	if path == "" {
		path = "(document)"
	}
	vars := []any{origin, path, err.Reason}
	return &gn.Error{
		Code: errcode.UploadValidationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid upload %s: %w", origin, err),
	}
}

// DecodeError is returned when upload data cannot be decoded.
func DecodeError(origin string, err error) error {
	msg := "Cannot decode input from <em>%s</em>"
	vars := []any{origin}
	return &gn.Error{
		Code: errcode.UploadDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot decode upload %s: %w", origin, err),
	}
}

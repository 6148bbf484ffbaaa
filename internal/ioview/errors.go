package ioview

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/nutrigap/pkg/errcode"
)

// RenderError is returned when the interactive view fails.
func RenderError(err error) error {
	msg := `Cannot show interactive table

<em>Tip:</em> run without <em>--interactive</em> to print the table`
	return &gn.Error{
		Code: errcode.ViewRenderError,
		Msg:  msg,
		Err:  fmt.Errorf("interactive view failed: %w", err),
	}
}

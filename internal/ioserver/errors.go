package ioserver

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/nutrigap/pkg/errcode"
)

// StartError is returned when the HTTP server cannot start.
func StartError(port int, err error) error {
	msg := `Cannot start server on port <em>%d</em>

<em>How to fix:</em>
  1. Check if the port is already used: <em>lsof -i :%d</em>
  2. Choose another port: <em>nutrigap serve --port 8788</em>`
	vars := []any{port, port}
	return &gn.Error{
		Code: errcode.ServerStartError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot listen on port %d: %w", port, err),
	}
}

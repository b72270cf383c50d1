package server

import "errors"

var (
	errNoHTTPHandler   = errors.New("http handler is not created")
	errNoListenAddress = errors.New("listen address is empty")
)

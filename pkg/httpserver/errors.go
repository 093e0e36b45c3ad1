package httpserver

import "errors"

var (
	// ErrStart wraps a listen or serve failure.
	ErrStart = errors.New("httpserver: failed to start")
	// ErrShutdown wraps a graceful shutdown that did not finish in time.
	ErrShutdown = errors.New("httpserver: graceful shutdown failed")
	// ErrAlreadyRunning is returned when Run or Serve is called twice.
	ErrAlreadyRunning = errors.New("httpserver: already running")
)

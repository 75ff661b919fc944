package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/inkwell-labs/mdpdf"
	"github.com/inkwell-labs/mdpdf/internal/server"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	// NewPool builds the converter pool used by convert and serve.
	NewPool func(size int, opts ...mdpdf.Option) Pool
	// Serve runs the HTTP server until ctx is canceled.
	Serve func(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewPool: newConverterPool,
		Serve:   server.ListenAndServe,
	}
}

package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/inkwell-labs/mdpdf"
	"github.com/inkwell-labs/mdpdf/internal/fileutil"
	"github.com/inkwell-labs/mdpdf/internal/server"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake converter, pool and environment
// ---------------------------------------------------------------------------

// fakeConverter returns canned results without touching the disk. Errors
// are keyed by source base name.
type fakeConverter struct {
	mu          sync.Mutex
	fail        map[string]error
	sources     []string
	stylesheets []string
}

func (f *fakeConverter) Convert(_ context.Context, src, css string) (*mdpdf.Result, error) {
	f.mu.Lock()
	f.sources = append(f.sources, src)
	f.stylesheets = append(f.stylesheets, css)
	f.mu.Unlock()

	if err := f.fail[filepath.Base(src)]; err != nil {
		return nil, err
	}
	return &mdpdf.Result{
		OutputPath: fileutil.ReplaceExt(src, ".pdf"),
		Pages:      2,
		Bytes:      1024,
		Duration:   15 * time.Millisecond,
	}, nil
}

type fakePool struct {
	mu         sync.Mutex
	conv       server.Converter
	acquireErr error
	size       int
	optCount   int
	acquired   int
	released   int
	closed     bool
}

func (p *fakePool) Acquire(context.Context) (server.Converter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquired++
	return p.conv, nil
}

func (p *fakePool) Release(server.Converter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

func (p *fakePool) Size() int { return p.size }

func (p *fakePool) Close() error {
	p.closed = true
	return nil
}

// serveCall records what runServe handed to Environment.Serve.
type serveCall struct {
	called  bool
	addr    string
	handler http.Handler
}

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	pool   *fakePool
	conv   *fakeConverter
	serve  *serveCall
}

func newTestEnv() *testEnv {
	conv := &fakeConverter{fail: map[string]error{}}
	pool := &fakePool{conv: conv}
	call := &serveCall{}
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		pool:   pool,
		conv:   conv,
		serve:  call,
	}
	te.Environment = &Environment{
		Stdout: te.stdout,
		Stderr: te.stderr,
		NewPool: func(size int, opts ...mdpdf.Option) Pool {
			pool.size = size
			pool.optCount = len(opts)
			return pool
		},
		Serve: func(_ context.Context, addr string, h http.Handler, _ *slog.Logger) error {
			call.called = true
			call.addr = addr
			call.handler = h
			return nil
		},
	}
	return te
}

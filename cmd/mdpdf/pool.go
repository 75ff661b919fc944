package main

import (
	"context"
	"fmt"

	"github.com/inkwell-labs/mdpdf"
	"github.com/inkwell-labs/mdpdf/internal/server"
)

// Pool abstracts converter pool operations for testability.
// It satisfies server.Pool.
type Pool interface {
	Acquire(ctx context.Context) (server.Converter, error)
	Release(server.Converter)
	Size() int
	Close() error
}

// poolAdapter exposes an mdpdf.ConverterPool as a Pool.
type poolAdapter struct {
	pool *mdpdf.ConverterPool
}

func newConverterPool(size int, opts ...mdpdf.Option) Pool {
	return &poolAdapter{pool: mdpdf.NewConverterPool(size, opts...)}
}

var (
	_ Pool        = (*poolAdapter)(nil)
	_ server.Pool = Pool(nil)
)

func (a *poolAdapter) Acquire(ctx context.Context) (server.Converter, error) {
	c, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Release panics when given a converter the pool did not lend.
func (a *poolAdapter) Release(c server.Converter) {
	conv, ok := c.(*mdpdf.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}

// checkOptions builds and discards a converter so option errors (unknown
// style, bad timeout) surface once, before any file is processed. No
// browser is started.
func checkOptions(opts []mdpdf.Option) error {
	c, err := mdpdf.NewConverter(opts...)
	if err != nil {
		return err
	}
	return c.Close()
}

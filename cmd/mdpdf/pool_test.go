package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/inkwell-labs/mdpdf"
)

// ---------------------------------------------------------------------------
// TestPoolAdapter - mdpdf.ConverterPool adapter
// ---------------------------------------------------------------------------

func TestPoolAdapter_Release_WrongType(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(1)
	defer func() { _ = pool.Close() }()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for wrong type, got none")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "unexpected type") {
			t.Errorf("panic = %v, want message containing 'unexpected type'", r)
		}
	}()

	pool.Release(&fakeConverter{})
}

func TestPoolAdapter_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(3)
	defer func() { _ = pool.Close() }()

	if pool.Size() != 3 {
		t.Errorf("Size() = %d, want 3", pool.Size())
	}

	conv, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() unexpected error: %v", err)
	}
	if _, ok := conv.(*mdpdf.Converter); !ok {
		t.Errorf("Acquire() returned %T, want *mdpdf.Converter", conv)
	}
	pool.Release(conv)
}

func TestPoolAdapter_Closed(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(1)
	_ = pool.Close()

	conv, err := pool.Acquire(context.Background())
	if !errors.Is(err, mdpdf.ErrPoolClosed) {
		t.Errorf("Acquire() error = %v, want ErrPoolClosed", err)
	}
	if conv != nil {
		t.Errorf("Acquire() = %v, want nil interface", conv)
	}
}

// ---------------------------------------------------------------------------
// TestCheckOptions
// ---------------------------------------------------------------------------

func TestCheckOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []mdpdf.Option
		wantErr error
	}{
		{name: "none"},
		{name: "known style", opts: []mdpdf.Option{mdpdf.WithStyle("plain")}},
		{name: "unknown style", opts: []mdpdf.Option{mdpdf.WithStyle("nope")}, wantErr: mdpdf.ErrStyleNotFound},
		{name: "zero timeout", opts: []mdpdf.Option{mdpdf.WithTimeout(0)}, wantErr: mdpdf.ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := checkOptions(tt.opts)
			if tt.wantErr == nil && err != nil {
				t.Errorf("checkOptions() unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("checkOptions() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

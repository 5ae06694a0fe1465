package pool

import (
	"errors"
	"fmt"
	"os"

	"github.com/joshuapare/poolkit/internal/format"
	"github.com/joshuapare/poolkit/internal/mmarena"
)

var (
	// ErrZeroSize indicates a pool creation request with no capacity.
	ErrZeroSize = errors.New("pool: total size must be greater than zero")

	// ErrTooLarge indicates the requested arena exceeds the int32 offset range.
	ErrTooLarge = errors.New("pool: total size exceeds the 2GB offset limit")

	// ErrBadAlignment indicates an unsupported payload alignment. Alignment
	// must be a power of two no larger than the block header size.
	ErrBadAlignment = errors.New("pool: unsupported alignment")
)

type state int

const (
	stateUninitialized state = iota
	stateActive
	stateDestroyed
)

// Pool is a fixed-size arena, backed by an anonymous mapping (unix) or a
// byte slice (others). The arena is acquired once at Create and released
// once at Close; it is never resized.
//
// A Pool is not safe for concurrent use. Callers must synchronize access
// externally.
type Pool struct {
	name      string
	data      []byte
	release   func() error
	alignment int
	totalSize int
	state     state
}

// Create acquires a page-rounded anonymous region of at least totalSize
// bytes and initializes it as a single free block spanning the whole arena.
//
// alignment governs per-payload size rounding; zero selects the platform
// default (8). name is used only in diagnostics; empty means "unnamed".
func Create(totalSize, alignment int, name string) (*Pool, error) {
	if totalSize <= 0 {
		return nil, ErrZeroSize
	}
	if alignment == 0 {
		alignment = format.DefaultAlignment
	}
	if !format.IsPowerOfTwo(alignment) || alignment > format.MaxAlignment {
		return nil, ErrBadAlignment
	}

	totalSize = format.AlignUp(totalSize, os.Getpagesize())
	if totalSize > format.MaxPoolSize {
		return nil, ErrTooLarge
	}

	data, release, err := mmarena.Map(totalSize)
	if err != nil {
		return nil, fmt.Errorf("pool: arena mapping failed: %w", err)
	}

	if name == "" {
		name = "unnamed"
	}

	// The entire usable arena starts life as one free block at offset 0.
	format.WriteBlockHeader(data, 0, int32(totalSize-format.HeaderSize), true)

	return &Pool{
		name:      name,
		data:      data,
		release:   release,
		alignment: alignment,
		totalSize: totalSize,
		state:     stateActive,
	}, nil
}

// Name returns the diagnostic name given at creation.
func (p *Pool) Name() string { return p.name }

// Bytes returns the raw arena memory.
func (p *Pool) Bytes() []byte { return p.data }

// TotalSize returns the page-rounded arena size in bytes.
func (p *Pool) TotalSize() int { return p.totalSize }

// Alignment returns the payload alignment requirement.
func (p *Pool) Alignment() int { return p.alignment }

// Active reports whether the pool is usable. A pool is Active from Create
// until Close; operations on a closed pool are rejected by callers checking
// this.
func (p *Pool) Active() bool {
	return p != nil && p.state == stateActive
}

// Close releases the arena back to the operating system. Close is terminal:
// the pool cannot be reused afterwards. Calling Close again is a no-op.
func (p *Pool) Close() error {
	if p == nil || p.state != stateActive {
		return nil
	}
	p.state = stateDestroyed
	p.data = nil
	return p.release()
}

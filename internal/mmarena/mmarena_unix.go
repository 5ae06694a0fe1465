//go:build unix

// Package mmarena acquires and releases the raw memory region backing a
// pool. On unix systems the region is an anonymous read/write mapping so the
// arena is page-aligned and returned to the OS in one munmap; elsewhere a
// plain byte slice stands in.
package mmarena

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Map acquires size bytes of anonymous read/write memory and returns the
// region together with a release func. The release func is safe to call
// more than once; a double-unmap is treated as a no-op.
func Map(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmarena: non-positive size %d", size)
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("mmarena: mmap failed: %w", err)
	}
	released := false
	release := func() error {
		if released {
			return nil
		}
		released = true
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			return nil
		}
		return err
	}
	return data, release, nil
}

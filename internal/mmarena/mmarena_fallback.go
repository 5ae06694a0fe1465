//go:build !unix

package mmarena

import "fmt"

// Map returns a heap-backed region on platforms without anonymous mmap
// support. The release func only drops the reference; the Go runtime
// reclaims the memory.
func Map(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmarena: non-positive size %d", size)
	}
	data := make([]byte, size)
	release := func() error { return nil }
	return data, release, nil
}

//go:build !linux

package zbd

import "fmt"

// Open always fails outside Linux.
func Open(path string) (Device, error) {
	return nil, fmt.Errorf("%s: %w", path, ErrNotSupported)
}

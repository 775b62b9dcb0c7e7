//go:build !unix

package source

import (
	"fmt"
	"os"
)

// mapFile reads name into memory on platforms without mmap.
func mapFile(name string) ([]byte, func() error, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil, nil
}

// Package source loads documents into memory for scanning. Files are mapped
// read-only where the platform allows it, so large crawls do not copy every
// page onto the heap.
package source

import (
	"fmt"
	"io"
	"os"
)

// A Source is a document held in memory. Its bytes stay valid until Close.
type Source struct {
	Name    string
	data    []byte
	release func() error
}

// Open loads the named file. The name "-" reads standard input.
func Open(name string) (*Source, error) {
	if name == "-" {
		return Read(os.Stdin, name)
	}
	data, release, err := mapFile(name)
	if err != nil {
		return nil, err
	}
	return &Source{Name: name, data: data, release: release}, nil
}

// Read loads the whole of r.
func Read(r io.Reader, name string) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return &Source{Name: name, data: data}, nil
}

func (s *Source) Bytes() []byte {
	return s.data
}

// Close releases the document. Bytes must not be used afterwards.
func (s *Source) Close() error {
	s.data = nil
	if s.release == nil {
		return nil
	}
	release := s.release
	s.release = nil
	return release()
}

package htmlscan

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is used when the caller does not declare one.
var DefaultEncoding encoding.Encoding = charmap.Windows1252

// LookupEncoding resolves a WHATWG encoding label such as "latin1" or
// "shift_jis". The labels "", "utf8" and "utf-8" return nil, which the
// scanner treats as UTF-8 without validation.
func LookupEncoding(label string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "utf8", "utf-8":
		return nil, nil
	}
	e, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", label, err)
	}
	return e, nil
}

// EncodingName returns the canonical name of e.
func EncodingName(e encoding.Encoding) string {
	if e == nil {
		return "utf-8"
	}
	name, err := htmlindex.Name(e)
	if err != nil {
		return "unknown"
	}
	return name
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

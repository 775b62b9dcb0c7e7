package htmlscan

import (
	"encoding/base32"

	"github.com/cespare/xxhash/v2"
)

var fingerprintEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Fingerprint returns a base32 xxhash of the text content of buf. Markup,
// comments and scripts do not contribute, so two pages that differ only in
// their tags share a fingerprint.
func Fingerprint(buf []byte, opts Options) string {
	opts.KeepComments = false
	opts.KeepScripts = false
	opts.KeepRawTags = false

	z := AcquireScanner(buf, opts)
	defer ReleaseScanner(z)
	return z.Fingerprint()
}

// Fingerprint consumes the rest of the token stream and returns the
// fingerprint of its text, as the package-level Fingerprint does.
func (z *Scanner) Fingerprint() string {
	h := xxhash.New()
	for z.Next() != ErrorToken {
		if z.tt == TextToken {
			_, _ = h.WriteString(z.Text())
		}
	}
	return encodeSum(h.Sum64())
}

func encodeSum(sum uint64) string {
	var b [8]byte
	for i := 7; i >= 0; i-- {
		b[i] = byte(sum)
		sum >>= 8
	}
	return fingerprintEncoding.EncodeToString(b[:])
}

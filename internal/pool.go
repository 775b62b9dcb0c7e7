package htmlscan

import (
	"sync"
)

var scannerPool = sync.Pool{
	New: func() any {
		return &Scanner{}
	},
}

// AcquireScanner returns a pooled Scanner over buf. Return it with
// ReleaseScanner once its tokens are no longer needed.
func AcquireScanner(buf []byte, opts Options) *Scanner {
	z := scannerPool.Get().(*Scanner)
	z.configure(opts)
	z.Reset(buf)
	return z
}

// ReleaseScanner puts z back into the pool. z and any Token obtained from
// it must not be used afterwards.
func ReleaseScanner(z *Scanner) {
	z.Reset(nil)
	z.opts = Options{}
	z.matcher = nil
	z.dec = nil
	z.handler = nil
	scannerPool.Put(z)
}

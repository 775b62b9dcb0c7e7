package printer

import (
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// printer writes to an io.Writer and keeps the first error it sees. Later
// writes are dropped once an error has been recorded.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) print(text string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, text)
}

func (p *printer) printByte(c byte) {
	if p.err != nil {
		return
	}
	_, p.err = p.w.Write([]byte{c})
}

// printJSONLine writes v as a single line of JSON. Invalid UTF-8 is passed
// through so that documents scanned without an encoding still print.
func (p *printer) printJSONLine(v any) {
	if p.err != nil {
		return
	}
	if p.err = json.MarshalWrite(p.w, v, jsontext.AllowInvalidUTF8(true)); p.err != nil {
		return
	}
	p.printByte('\n')
}

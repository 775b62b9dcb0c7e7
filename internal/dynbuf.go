package htmlscan

import "unicode/utf8"

// dynBuf accumulates bytes that cannot be referenced by offset, such as
// case-folded names and entity-decoded values. Each Scanner owns one and
// resets it for every value it builds.
type dynBuf struct {
	b []byte
}

func (d *dynBuf) reset() {
	d.b = d.b[:0]
}

func (d *dynBuf) len() int {
	return len(d.b)
}

func (d *dynBuf) write(p []byte) {
	d.b = append(d.b, p...)
}

func (d *dynBuf) writeByte(c byte) {
	d.b = append(d.b, c)
}

func (d *dynBuf) writeRune(r rune) {
	d.b = utf8.AppendRune(d.b, r)
}

// writeLower appends p with ASCII upper case folded.
func (d *dynBuf) writeLower(p []byte) {
	for _, c := range p {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		d.b = append(d.b, c)
	}
}

func (d *dynBuf) bytes() []byte {
	return d.b
}

func (d *dynBuf) String() string {
	return string(d.b)
}

package htmlscan

import (
	"bytes"
	"io"

	"github.com/crawlkit/htmlscan/internal/loc"
	"golang.org/x/net/html/atom"
)

var (
	commentPrefix = []byte("!--")
	cdataPrefix   = []byte("![CDATA[")
)

func isSpace(c byte) bool {
	switch c {
	case ' ', '\n', '\r', '\t', '\f':
		return true
	}
	return false
}

// readByte returns the next byte from the buffer. At the end of the buffer
// it returns 0 and sets z.err to io.EOF; z.raw.End is then len(z.buf).
func (z *Scanner) readByte() byte {
	if z.raw.End >= len(z.buf) {
		z.err = io.EOF
		return 0
	}
	c := z.buf[z.raw.End]
	z.raw.End++
	return c
}

// peek returns the byte at z.raw.End+i, or 0 and false past the end.
func (z *Scanner) peek(i int) (byte, bool) {
	if z.raw.End+i >= len(z.buf) {
		return 0, false
	}
	return z.buf[z.raw.End+i], true
}

// skipWhiteSpace advances past any white space and reports whether input
// remains.
func (z *Scanner) skipWhiteSpace() bool {
	for z.raw.End < len(z.buf) {
		if !isSpace(z.buf[z.raw.End]) {
			return true
		}
		z.raw.End++
	}
	return false
}

// readTag reads a tag, comment or CDATA section. The opening '<' has
// already been consumed.
func (z *Scanner) readTag() TokenType {
	rest := z.buf[z.raw.End:]
	switch {
	case len(rest) == 0:
		z.warn(loc.WARNING_TRUNCATED_TAG, "Buffer ends after <", loc.Range{Loc: loc.Loc{Start: z.raw.Start}, Len: 1})
		return OpenTagToken
	case bytes.HasPrefix(rest, commentPrefix):
		z.readComment()
		return CommentToken
	case bytes.HasPrefix(rest, cdataPrefix):
		z.readCDATA()
		return CommentToken
	}

	tt := OpenTagToken
	if rest[0] == '/' {
		z.raw.End++
		z.tok.Closure = true
		tt = CloseTagToken
	}
	if !z.skipWhiteSpace() {
		z.warnUnclosed()
		return tt
	}

	tag, done := z.matchTag()
	if tag == 0 {
		done = z.readTagName()
	}
	if !done {
		z.readAttrs(tag)
	}
	return tt
}

// matchTag tries to recognise the tag name at z.raw.End with the heuristic
// matcher. On a hit it sets the token name, consumes the name and its
// terminator and returns the data ID; done reports whether that terminator
// was '>'. On a miss nothing is consumed.
func (z *Scanner) matchTag() (tag int16, done bool) {
	if z.matcher == nil {
		return 0, false
	}
	b1, _ := z.peek(0)
	b2, ok := z.peek(1)
	if !ok {
		return 0, false
	}
	id := z.matcher.MatchTag(b1, b2)
	n := 1
	switch {
	case id == 0:
		return 0, false
	case id > 0:
		name := z.matcher.TagBytes(id)
		n = len(name)
		if !bytes.HasPrefix(z.buf[z.raw.End:], name) {
			return 0, false
		}
		term, ok := z.peek(n)
		if !ok || term != '>' && !isSpace(term) {
			return 0, false
		}
	}
	z.tok.Data = z.matcher.TagName(id)
	z.raw.End += n
	return id, z.readByte() == '>'
}

// readTagName sets the token name from the bytes at z.raw.End. It reports
// whether the tag ended with '>'.
func (z *Scanner) readTagName() bool {
	start := z.raw.End
	upper := false
	for {
		c := z.readByte()
		if z.err != nil {
			z.tok.Data = z.name(loc.Span{Start: start, End: z.raw.End}, upper)
			z.warnUnclosed()
			return true
		}
		switch {
		case isSpace(c):
			z.tok.Data = z.name(loc.Span{Start: start, End: z.raw.End - 1}, upper)
			return false
		case c == '/' || c == '>':
			z.raw.End--
			z.tok.Data = z.name(loc.Span{Start: start, End: z.raw.End}, upper)
			if c == '>' {
				z.raw.End++
				return true
			}
			return false
		case 'A' <= c && c <= 'Z':
			upper = true
		}
	}
}

// name returns the lower-cased name held in s. Known HTML names are
// interned through atom.
func (z *Scanner) name(s loc.Span, upper bool) string {
	b := z.buf[s.Start:s.End]
	if upper {
		z.dyn.reset()
		z.dyn.writeLower(b)
		b = z.dyn.bytes()
	}
	if a := atom.Lookup(b); a != 0 {
		return a.String()
	}
	if z.dec == nil || isASCII(b) {
		return string(b)
	}
	out, err := z.dec.Bytes(b)
	if err != nil {
		z.warnUndecodable(s, err)
		return ""
	}
	return string(out)
}

// readAttrs reads attributes until the end of the tag. tag is the data ID
// of the tag if the matcher recognised it, or zero.
func (z *Scanner) readAttrs(tag int16) {
	for {
		if !z.skipWhiteSpace() {
			z.warnUnclosed()
			return
		}
		switch z.buf[z.raw.End] {
		case '>':
			z.raw.End++
			return
		case '/':
			z.raw.End++
			if c, ok := z.peek(0); ok && c == '>' {
				z.raw.End++
				z.tok.SelfClosing = true
				return
			}
			continue
		}
		if z.readAttr(tag) {
			return
		}
	}
}

// readAttr reads one attribute starting at z.raw.End, which holds neither
// white space, '/' nor '>'. It reports whether the tag ended.
func (z *Scanner) readAttr(tag int16) bool {
	var a Attribute
	a.KeySpan.Start = z.raw.End
	if key, ok := z.matchAttr(tag); ok {
		a.Key = key
		a.KeySpan.End = z.raw.End
	} else {
		a.KeySpan.End = z.readAttrKey()
		a.Key = z.name(a.KeySpan, hasUpper(z.buf[a.KeySpan.Start:a.KeySpan.End]))
	}
	a.ValSpan = loc.Span{Start: z.raw.End, End: z.raw.End}

	// The value, if any, may be separated from the key by white space.
	mark := z.raw.End
	if !z.skipWhiteSpace() {
		z.addAttr(a)
		z.warnUnclosed()
		return true
	}
	if z.buf[z.raw.End] != '=' {
		z.raw.End = mark
		z.addAttr(a)
		return false
	}
	z.raw.End++
	ended := z.readAttrVal(&a)
	z.addAttr(a)
	return ended
}

func (z *Scanner) addAttr(a Attribute) {
	if a.Key == "" {
		return
	}
	z.tok.setAttr(a)
}

// matchAttr tries to recognise the attribute name at z.raw.End with the
// heuristic matcher. The name must be followed directly by '='.
func (z *Scanner) matchAttr(tag int16) (string, bool) {
	if tag == 0 {
		return "", false
	}
	id := z.matcher.MatchAttr(z.buf[z.raw.End], tag)
	if id == 0 {
		return "", false
	}
	name := z.matcher.AttrBytes(id)
	if !bytes.HasPrefix(z.buf[z.raw.End:], name) {
		return "", false
	}
	if c, ok := z.peek(len(name)); !ok || c != '=' {
		return "", false
	}
	z.raw.End += len(name)
	return z.matcher.AttrName(id), true
}

// readAttrKey consumes an attribute name and returns its end offset. The
// first byte is always part of the name, even when it is '='.
func (z *Scanner) readAttrKey() int {
	z.raw.End++
	for z.raw.End < len(z.buf) {
		switch c := z.buf[z.raw.End]; {
		case c == '=' || c == '/' || c == '>' || isSpace(c):
			return z.raw.End
		}
		z.raw.End++
	}
	return z.raw.End
}

// readAttrVal reads the value after '='. It reports whether the tag ended.
func (z *Scanner) readAttrVal(a *Attribute) bool {
	if !z.skipWhiteSpace() {
		a.ValSpan = loc.Span{Start: z.raw.End, End: z.raw.End}
		z.warnUnclosed()
		return true
	}
	switch quote := z.buf[z.raw.End]; quote {
	case '"', '\'':
		start := z.raw.End + 1
		end := len(z.buf)
		if i := bytes.IndexByte(z.buf[start:], quote); i >= 0 {
			end = start + i
			z.raw.End = end + 1
		} else {
			z.raw.End = end
			z.warn(loc.WARNING_UNTERMINATED_QUOTED_VALUE, "Unterminated attribute value", loc.Range{Loc: loc.Loc{Start: start - 1}, Len: end - start + 1})
		}
		a.Quote = quote
		a.ValSpan = loc.Span{Start: start, End: end}
		a.Val = z.decodeText(a.ValSpan)
		if z.raw.End >= len(z.buf) {
			z.warnUnclosed()
			return true
		}
		return false
	}

	start := z.raw.End
	for z.raw.End < len(z.buf) {
		c := z.buf[z.raw.End]
		if c == '>' || isSpace(c) {
			break
		}
		z.raw.End++
	}
	a.ValSpan = loc.Span{Start: start, End: z.raw.End}
	a.Val = z.extract(a.ValSpan)
	if z.raw.End >= len(z.buf) {
		z.warnUnclosed()
		return true
	}
	if z.buf[z.raw.End] == '>' {
		z.raw.End++
		return true
	}
	return false
}

func (z *Scanner) warnUnclosed() {
	z.warn(loc.WARNING_UNCLOSED_HTML_TAG, "Unclosed tag", loc.Range{Loc: loc.Loc{Start: z.raw.Start}, Len: z.raw.End - z.raw.Start})
}

func hasUpper(b []byte) bool {
	for _, c := range b {
		if 'A' <= c && c <= 'Z' {
			return true
		}
	}
	return false
}

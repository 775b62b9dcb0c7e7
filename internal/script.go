// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package htmlscan

import (
	"bytes"

	"github.com/crawlkit/htmlscan/internal/loc"
)

// commentEnd returns the offset just past the '>' that closes a comment
// whose body starts at from, and whether one was found. A comment ends at
// the first '>' preceded by two dashes; the dashes of the opening "<!--"
// count, so "<!-->" is a complete, empty comment.
func commentEnd(buf []byte, from int) (int, bool) {
	dashCount := 2
	for i := from; i < len(buf); i++ {
		switch buf[i] {
		case '-':
			dashCount++
			continue
		case '>':
			if dashCount >= 2 {
				return i + 1, true
			}
		}
		dashCount = 0
	}
	return len(buf), false
}

// readComment reads a comment. The opening "<" has been consumed and
// z.raw.End is at "!--".
func (z *Scanner) readComment() {
	z.tok.Data = CommentData
	z.data.Start = z.raw.End + len(commentPrefix)
	end, ok := commentEnd(z.buf, z.data.Start)
	z.raw.End = end
	if !ok {
		z.data.End = end
		z.warn(loc.WARNING_UNTERMINATED_HTML_COMMENT, "Unterminated comment", loc.Range{Loc: loc.Loc{Start: z.raw.Start}, Len: 4})
		return
	}
	z.data.End = end - len("-->")
	if z.data.End < z.data.Start {
		// It's a comment with no data, like <!-->.
		z.data.End = z.data.Start
	}
}

// readCDATA reads a CDATA section. The opening "<" has been consumed and
// z.raw.End is at "![CDATA[".
func (z *Scanner) readCDATA() {
	z.tok.Data = CDATAData
	z.raw.End += len(cdataPrefix)
	z.data.Start = z.raw.End
	brackets := 0
	for {
		c := z.readByte()
		if z.err != nil {
			z.data.End = z.raw.End
			z.warn(loc.WARNING_UNTERMINATED_CDATA, "Unterminated CDATA section", loc.Range{Loc: loc.Loc{Start: z.raw.Start}, Len: 9})
			return
		}
		switch c {
		case ']':
			brackets++
		case '>':
			if brackets >= 2 {
				z.data.End = z.raw.End - len("]]>")
				return
			}
			brackets = 0
		default:
			brackets = 0
		}
	}
}

var scriptEnd = []byte("/script>")

// readScript reads the body of a script element up to and including its
// end tag. The open tag has already been read. HTML comments inside the
// body are skipped, so a "</script>" inside one does not end the script.
func (z *Scanner) readScript() {
	z.data.Start = z.raw.End
	for i := z.raw.End; i < len(z.buf); {
		j := bytes.IndexByte(z.buf[i:], '<')
		if j < 0 {
			break
		}
		lt := i + j
		if bytes.HasPrefix(z.buf[lt+1:], commentPrefix) {
			i, _ = commentEnd(z.buf, lt+1+len(commentPrefix))
			continue
		}
		if end, ok := matchScriptEnd(z.buf, lt+1); ok {
			z.data.End = lt
			z.raw.End = end
			return
		}
		// Not an end tag: carry on from the byte after '<'.
		i = lt + 1
	}
	z.data.End = len(z.buf)
	z.raw.End = len(z.buf)
	z.warn(loc.WARNING_UNTERMINATED_SCRIPT, "Unterminated script", loc.Range{Loc: loc.Loc{Start: z.raw.Start}, Len: z.data.Start - z.raw.Start})
}

// matchScriptEnd matches "/script>" case-insensitively at buf[i:], allowing
// white space before each byte. It returns the offset past the '>'.
func matchScriptEnd(buf []byte, i int) (int, bool) {
	for _, want := range scriptEnd {
		for i < len(buf) && isSpace(buf[i]) {
			i++
		}
		if i >= len(buf) {
			return 0, false
		}
		c := buf[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != want {
			return 0, false
		}
		i++
	}
	return i, true
}

package htmlscan

import (
	"strconv"
	"strings"

	"github.com/crawlkit/htmlscan/internal/loc"
)

// A TokenType is the type of a Token.
type TokenType uint32

const (
	// ErrorToken means that the end of the buffer was reached.
	ErrorToken TokenType = iota
	// TextToken means a text run between tags.
	TextToken
	// An OpenTagToken looks like <a> or <br/>.
	OpenTagToken
	// A CloseTagToken looks like </a>.
	CloseTagToken
	// A CommentToken looks like <!--x--> or <![CDATA[x]]>.
	CommentToken
	// A ScriptToken covers <script ...> through </script>.
	ScriptToken
)

// String returns a string representation of the TokenType.
func (t TokenType) String() string {
	switch t {
	case ErrorToken:
		return "Error"
	case TextToken:
		return "Text"
	case OpenTagToken:
		return "OpenTag"
	case CloseTagToken:
		return "CloseTag"
	case CommentToken:
		return "Comment"
	case ScriptToken:
		return "Script"
	}
	return "Invalid(" + strconv.Itoa(int(t)) + ")"
}

const (
	CommentData = "!--"
	CDATAData   = "![CDATA["
	ScriptData  = "script"
)

// An Attribute is a key-value pair from a tag. Key is lower-cased. Quote is
// the quote byte that delimited the value, or zero for unquoted values and
// attributes without a value.
type Attribute struct {
	Key     string
	Val     string
	Quote   byte
	KeySpan loc.Span
	ValSpan loc.Span
}

// A Token is one unit of scanner output. Type decides which fields are
// meaningful; the others are zero.
//
// Data is the lower-cased tag name for tags and scripts, CommentData for
// comments and CDATAData for CDATA sections. Text holds the decoded text of
// a text token when Options.DecodeText is set, the captured body or raw
// markup of comments and scripts when Options.KeepComments or
// Options.KeepScripts is set, and the raw markup of a tag when
// Options.KeepRawTags is set.
//
// A Scanner owns a single Token which it clears and refills on every call to
// Next. Use Clone to keep a token past the next call.
type Token struct {
	Type        TokenType
	Data        string
	Closure     bool
	SelfClosing bool
	Attr        []Attribute
	Text        string
	Span        loc.Span
	Entities    bool
	LtEntity    bool
}

func (t *Token) reset() {
	attr := t.Attr[:0]
	*t = Token{Attr: attr}
}

// Clone returns a copy of t that does not share storage with the scanner.
func (t *Token) Clone() *Token {
	c := *t
	if t.Attr != nil {
		c.Attr = make([]Attribute, len(t.Attr))
		copy(c.Attr, t.Attr)
	}
	return &c
}

// AttrVal returns the value of the attribute named key, which must be lower
// case.
func (t *Token) AttrVal(key string) (string, bool) {
	for i := range t.Attr {
		if t.Attr[i].Key == key {
			return t.Attr[i].Val, true
		}
	}
	return "", false
}

// setAttr appends an attribute, or overwrites the value of an earlier one
// with the same key in place.
func (t *Token) setAttr(a Attribute) {
	for i := range t.Attr {
		if t.Attr[i].Key == a.Key {
			t.Attr[i].Val = a.Val
			t.Attr[i].Quote = a.Quote
			t.Attr[i].ValSpan = a.ValSpan
			return
		}
	}
	t.Attr = append(t.Attr, a)
}

// String returns a compact description of the token, for debugging.
func (t *Token) String() string {
	var b strings.Builder
	b.WriteString(t.Type.String())
	switch t.Type {
	case OpenTagToken, CloseTagToken, ScriptToken:
		b.WriteByte('(')
		b.WriteString(strconv.Quote(t.Data))
		for _, a := range t.Attr {
			b.WriteByte(' ')
			b.WriteString(a.Key)
			b.WriteByte('=')
			b.WriteString(strconv.Quote(a.Val))
		}
		if t.SelfClosing {
			b.WriteString(" /")
		}
		b.WriteByte(')')
	case TextToken, CommentToken:
		b.WriteByte('(')
		b.WriteString(strconv.Quote(t.Text))
		b.WriteByte(')')
	}
	return b.String()
}

package htmlscan

import (
	"strings"

	"golang.org/x/net/html"
)

// PrintToSource writes markup for tok that scans back to an equivalent
// token. Comments, CDATA sections and scripts are rebuilt from tok.Text,
// which must hold the body, as captured with ExtractBetweenTagsOnly.
func PrintToSource(buf *strings.Builder, tok *Token) {
	switch tok.Type {
	case TextToken:
		if tok.Entities {
			buf.WriteString(html.EscapeString(tok.Text))
		} else {
			buf.WriteString(tok.Text)
		}
	case OpenTagToken, CloseTagToken:
		buf.WriteByte('<')
		if tok.Closure {
			buf.WriteByte('/')
		}
		buf.WriteString(tok.Data)
		printAttrs(buf, tok.Attr)
		if tok.SelfClosing {
			buf.WriteByte('/')
		}
		buf.WriteByte('>')
	case CommentToken:
		if tok.Data == CDATAData {
			buf.WriteString("<![CDATA[")
			buf.WriteString(tok.Text)
			buf.WriteString("]]>")
			return
		}
		buf.WriteString("<!--")
		buf.WriteString(tok.Text)
		buf.WriteString("-->")
	case ScriptToken:
		buf.WriteString("<script")
		printAttrs(buf, tok.Attr)
		buf.WriteByte('>')
		buf.WriteString(tok.Text)
		buf.WriteString("</script>")
	}
}

func printAttrs(buf *strings.Builder, attrs []Attribute) {
	for _, a := range attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Key)
		switch {
		case a.Val == "" && a.Quote == 0:
		case a.Quote == 0 && !needsQuotes(a.Val):
			buf.WriteByte('=')
			buf.WriteString(a.Val)
		default:
			quote := a.Quote
			if quote == 0 {
				quote = '"'
			}
			buf.WriteByte('=')
			buf.WriteByte(quote)
			buf.WriteString(html.EscapeString(a.Val))
			buf.WriteByte(quote)
		}
	}
}

func needsQuotes(s string) bool {
	return strings.ContainsAny(s, " \t\r\n\f\"'`<>=&")
}

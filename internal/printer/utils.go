package printer

import (
	htmlscan "github.com/crawlkit/htmlscan/internal"
	"github.com/iancoleman/strcase"
)

// kindName returns the JSON name of a token type, e.g. "open_tag".
func kindName(tt htmlscan.TokenType) string {
	return strcase.ToSnake(tt.String())
}

// blockTags end a line in the text rendering.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "title": true, "tr": true, "ul": true,
}

func isBlock(name string) bool {
	return blockTags[name]
}

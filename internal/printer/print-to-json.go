package printer

import (
	"fmt"
	"io"

	htmlscan "github.com/crawlkit/htmlscan/internal"
	"github.com/crawlkit/htmlscan/internal/handler"
)

type TokenPosition struct {
	Start TokenPoint `json:"start"`
	End   TokenPoint `json:"end"`
}

type TokenPoint struct {
	Line   int `json:"line,omitzero"`
	Column int `json:"column,omitzero"`
	Offset int `json:"offset"`
}

type TokenNode struct {
	Kind        string        `json:"kind"`
	Name        string        `json:"name,omitzero"`
	Attributes  []AttrNode    `json:"attributes,omitempty"`
	Text        string        `json:"text,omitzero"`
	SelfClosing bool          `json:"selfClosing,omitzero"`
	Entities    bool          `json:"entities,omitzero"`
	Position    TokenPosition `json:"position"`
}

type AttrNode struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Quote string `json:"quote,omitzero"`
}

type JSONOptions struct {
	// Lines resolves line and column numbers for every position through h.
	// Offsets are always printed.
	Lines *handler.Handler
}

// PrintToJSON writes one JSON object per token until z is exhausted.
func PrintToJSON(w io.Writer, z *htmlscan.Scanner, opts JSONOptions) error {
	p := &printer{w: w}
	for z.Next() != htmlscan.ErrorToken {
		p.printJSONLine(renderToken(z, opts))
		if p.err != nil {
			return fmt.Errorf("printing token: %w", p.err)
		}
	}
	return nil
}

func renderToken(z *htmlscan.Scanner, opts JSONOptions) TokenNode {
	tok := z.Token()
	node := TokenNode{
		Kind:        kindName(tok.Type),
		SelfClosing: tok.SelfClosing,
		Position: TokenPosition{
			Start: pointAt(opts, tok.Span.Start),
			End:   pointAt(opts, tok.Span.End),
		},
	}
	switch tok.Type {
	case htmlscan.TextToken:
		node.Text = z.Text()
		node.Entities = tok.Entities
	case htmlscan.CommentToken:
		if tok.Data == htmlscan.CDATAData {
			node.Name = "cdata"
		}
		node.Text = tok.Text
	default:
		node.Name = tok.Data
		node.Text = tok.Text
		for _, a := range tok.Attr {
			attr := AttrNode{Name: a.Key, Value: a.Val}
			if a.Quote != 0 {
				attr.Quote = string(a.Quote)
			}
			node.Attributes = append(node.Attributes, attr)
		}
	}
	return node
}

func pointAt(opts JSONOptions, offset int) TokenPoint {
	if opts.Lines == nil {
		return TokenPoint{Offset: offset}
	}
	line, column := opts.Lines.LineAndColumn(offset)
	return TokenPoint{
		Line:   line,
		Column: column,
		Offset: offset,
	}
}

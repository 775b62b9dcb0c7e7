//go:build js && wasm

package wasm_utils

import (
	"runtime/debug"
	"strings"
	"syscall/js"

	htmlscan "github.com/crawlkit/htmlscan/internal"
	"github.com/crawlkit/htmlscan/internal/loc"
	"github.com/iancoleman/strcase"
	"github.com/norunners/vert"
)

type Attribute struct {
	Name  string `js:"name"`
	Value string `js:"value"`
}

type Token struct {
	Kind        string      `js:"kind"`
	Name        string      `js:"name"`
	Text        string      `js:"text"`
	SelfClosing bool        `js:"selfClosing"`
	Start       int         `js:"start"`
	End         int         `js:"end"`
	Attributes  []Attribute `js:"attributes"`
}

type TokenizeResult struct {
	Tokens      []Token                 `js:"tokens"`
	Diagnostics []loc.DiagnosticMessage `js:"diagnostics"`
}

func (r *TokenizeResult) Value() js.Value {
	return vert.ValueOf(r).Value
}

// GetToken copies the current token of z into a value that can cross into JS.
func GetToken(z *htmlscan.Scanner) Token {
	tok := z.Token()
	t := Token{
		Kind:        strcase.ToLowerCamel(tok.Type.String()),
		SelfClosing: tok.SelfClosing,
		Start:       tok.Span.Start,
		End:         tok.Span.End,
		Attributes:  make([]Attribute, 0, len(tok.Attr)),
	}
	switch tok.Type {
	case htmlscan.TextToken:
		t.Text = z.Text()
	case htmlscan.CommentToken:
		t.Text = tok.Text
	default:
		t.Name = tok.Data
		t.Text = tok.Text
	}
	for _, a := range tok.Attr {
		t.Attributes = append(t.Attributes, Attribute{Name: a.Key, Value: a.Val})
	}
	return t
}

type JSError struct {
	Message string `js:"message"`
	Stack   string `js:"stack"`
}

func (err *JSError) Value() js.Value {
	return vert.ValueOf(err).Value
}

func ErrorToJSError(err error) js.Value {
	stack := string(debug.Stack())
	message := strings.TrimSpace(err.Error())
	jsError := JSError{
		Message: message,
		Stack:   stack,
	}
	return jsError.Value()
}

//go:build js && wasm

package main

import (
	"errors"
	"syscall/js"

	htmlscan "github.com/crawlkit/htmlscan/internal"
	"github.com/crawlkit/htmlscan/internal/handler"
	wasm_utils "github.com/crawlkit/htmlscan/internal_wasm/utils"
)

func main() {
	js.Global().Set("__htmlscan_tokens", js.FuncOf(Tokens))
	<-make(chan bool)
}

func jsString(j js.Value) string {
	if j.IsUndefined() || j.IsNull() {
		return ""
	}
	return j.String()
}

// Tokens scans args[0] and returns {tokens, diagnostics}. JS strings arrive
// as UTF-8, so no encoding is applied.
func Tokens(this js.Value, args []js.Value) interface{} {
	if len(args) == 0 {
		return wasm_utils.ErrorToJSError(errors.New("__htmlscan_tokens: missing source argument"))
	}
	source := []byte(jsString(args[0]))
	h := handler.NewHandler(source, "")

	opts := htmlscan.DefaultOptions()
	opts.Encoding = nil
	opts.Handler = h
	z := htmlscan.AcquireScanner(source, opts)
	defer htmlscan.ReleaseScanner(z)

	result := wasm_utils.TokenizeResult{Tokens: make([]wasm_utils.Token, 0)}
	for z.Next() != htmlscan.ErrorToken {
		result.Tokens = append(result.Tokens, wasm_utils.GetToken(z))
	}
	result.Diagnostics = h.Diagnostics()
	return result.Value()
}

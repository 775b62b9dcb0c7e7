package htmlscan

import (
	"github.com/crawlkit/htmlscan/internal/handler"
	"github.com/crawlkit/htmlscan/internal/heuristics"
	"golang.org/x/text/encoding"
)

// Options configures a Scanner. The zero value is valid but turns every
// feature off; most callers start from DefaultOptions.
type Options struct {
	// DecodeEntities decodes character references in quoted attribute values
	// and decoded text. When false '&' is always literal.
	DecodeEntities bool
	// EnableHeuristics lets the scanner recognise names from Matcher without
	// scanning them. It never changes the output.
	EnableHeuristics bool
	// Matcher is the vocabulary used when EnableHeuristics is set. Nil means
	// heuristics.Standard().
	Matcher *heuristics.Matcher

	// DecodeText fills Token.Text for text tokens.
	DecodeText bool
	// KeepRawTags fills Token.Text with the raw markup of tags.
	KeepRawTags bool
	// KeepComments fills Token.Text for comments and CDATA sections.
	KeepComments bool
	// KeepScripts fills Token.Text for scripts.
	KeepScripts bool
	// ExtractBetweenTagsOnly strips the delimiters from captured comments,
	// CDATA sections and scripts.
	ExtractBetweenTagsOnly bool
	// HandleScripts switches to the script body scanner after <script>.
	HandleScripts bool

	// Encoding converts non-ASCII bytes to UTF-8 when strings are extracted.
	// Nil means the buffer is already UTF-8.
	Encoding encoding.Encoding
	// Handler receives warnings about malformed input. Optional.
	Handler *handler.Handler
}

// DefaultOptions returns the options used by NewScanner callers that do not
// need anything special.
func DefaultOptions() Options {
	return Options{
		DecodeEntities:         true,
		EnableHeuristics:       true,
		KeepComments:           true,
		KeepScripts:            true,
		ExtractBetweenTagsOnly: true,
		HandleScripts:          true,
		Encoding:               DefaultEncoding,
	}
}

package htmlscan

import (
	"bytes"
	"fmt"
	"io"

	"github.com/crawlkit/htmlscan/internal/entity"
	"github.com/crawlkit/htmlscan/internal/handler"
	"github.com/crawlkit/htmlscan/internal/heuristics"
	"github.com/crawlkit/htmlscan/internal/loc"
	"golang.org/x/text/encoding"
)

// A Scanner returns a stream of Tokens from a buffer holding a whole
// document. It never fails on malformed input: every call to Next consumes
// at least one byte until the buffer is exhausted, and the Span of
// consecutive tokens partitions the buffer.
//
// A Scanner is not safe for concurrent use. Many Scanners may share one
// heuristics.Matcher.
type Scanner struct {
	buf []byte
	// buf[raw.Start:raw.End] holds the bytes of the current token.
	// buf[raw.End:] is input that will yield future tokens.
	raw loc.Span
	// data is the body of the current text, comment or script token.
	data loc.Span
	tt   TokenType
	// err is io.EOF once Next has returned ErrorToken.
	err error

	tok Token
	// textDone is set once tok.Text holds the decoded body of the token.
	textDone bool

	opts    Options
	matcher *heuristics.Matcher
	dec     *encoding.Decoder
	handler *handler.Handler
	dyn     dynBuf
}

// NewScanner returns a Scanner over buf. The buffer must not be modified
// while the Scanner is in use.
func NewScanner(buf []byte, opts Options) *Scanner {
	z := &Scanner{}
	z.configure(opts)
	z.Reset(buf)
	return z
}

func (z *Scanner) configure(opts Options) {
	z.opts = opts
	z.matcher = nil
	if opts.EnableHeuristics {
		z.matcher = opts.Matcher
		if z.matcher == nil {
			z.matcher = heuristics.Standard()
		}
	}
	z.dec = nil
	if opts.Encoding != nil {
		z.dec = opts.Encoding.NewDecoder()
	}
	z.handler = opts.Handler
}

// Reset rewinds the Scanner to the start of buf, keeping its options and
// buffers.
func (z *Scanner) Reset(buf []byte) {
	z.buf = buf
	z.raw = loc.Span{}
	z.data = loc.Span{}
	z.tt = ErrorToken
	z.err = nil
	z.tok.reset()
	z.textDone = false
	z.dyn.reset()
}

// Err returns io.EOF after Next has returned ErrorToken, and nil otherwise.
func (z *Scanner) Err() error {
	if z.tt != ErrorToken {
		return nil
	}
	return z.err
}

// Buffered returns the input that has not been tokenized yet.
func (z *Scanner) Buffered() []byte {
	return z.buf[z.raw.End:]
}

// Raw returns the unmodified bytes of the current token. The token stream's
// raw bytes partition the buffer: there are no gaps and no overlaps between
// consecutive tokens.
func (z *Scanner) Raw() []byte {
	return z.buf[z.raw.Start:z.raw.End]
}

// Slice returns the bytes of the buffer covered by s, such as an
// attribute's ValSpan, without copying.
func (z *Scanner) Slice(s loc.Span) []byte {
	s = s.Clamp(len(z.buf))
	return z.buf[s.Start:s.End]
}

// Token returns the current token. It is owned by the Scanner and is
// overwritten by the next call to Next.
func (z *Scanner) Token() *Token {
	return &z.tok
}

// Text returns the text of the current token: entity-decoded for text
// tokens, the body for comments, CDATA sections and scripts, and the empty
// string for tags. The result is computed on first use.
func (z *Scanner) Text() string {
	if z.textDone {
		return z.tok.Text
	}
	switch z.tt {
	case TextToken:
		z.tok.Text = z.decodeText(z.data)
	case CommentToken, ScriptToken:
		z.tok.Text = z.extract(z.data)
	default:
		return ""
	}
	z.textDone = true
	return z.tok.Text
}

// Next scans the next token and returns its type. ErrorToken means the
// buffer is exhausted and Err returns io.EOF.
func (z *Scanner) Next() TokenType {
	z.tok.reset()
	z.textDone = false
	z.raw.Start = z.raw.End
	z.data = loc.Span{Start: z.raw.End, End: z.raw.End}

	if z.err != nil || z.raw.End >= len(z.buf) {
		z.err = io.EOF
		z.tt = ErrorToken
		return z.tt
	}

	if z.buf[z.raw.End] == '<' {
		z.raw.End++
		z.tt = z.readTag()
		if z.tt == OpenTagToken && !z.tok.SelfClosing && z.opts.HandleScripts && z.tok.Data == ScriptData {
			z.readScript()
			z.tt = ScriptToken
		}
	} else {
		z.readText()
		z.tt = TextToken
	}

	z.tok.Type = z.tt
	z.tok.Span = z.raw
	z.capture()
	return z.tt
}

// readText sets z.data to the run of bytes up to the next '<' or the end of
// the buffer.
func (z *Scanner) readText() {
	z.data.Start = z.raw.End
	if i := bytes.IndexByte(z.buf[z.raw.End:], '<'); i >= 0 {
		z.raw.End += i
	} else {
		z.raw.End = len(z.buf)
	}
	z.data.End = z.raw.End
}

// capture fills Token.Text according to the options.
func (z *Scanner) capture() {
	switch z.tt {
	case TextToken:
		if z.opts.DecodeText {
			z.Text()
		}
	case CommentToken:
		if z.opts.KeepComments {
			z.captureBody()
		}
	case ScriptToken:
		if z.opts.KeepScripts {
			z.captureBody()
		}
	case OpenTagToken, CloseTagToken:
		if z.opts.KeepRawTags {
			z.tok.Text = z.extract(z.raw)
		}
	}
}

func (z *Scanner) captureBody() {
	if z.opts.ExtractBetweenTagsOnly {
		z.Text()
		return
	}
	z.tok.Text = z.extract(z.raw)
}

// extract converts the bytes of s to a string through the configured
// encoding. Undecodable input yields the empty string.
func (z *Scanner) extract(s loc.Span) string {
	s = s.Clamp(len(z.buf))
	b := z.buf[s.Start:s.End]
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

// appendDecoded writes the bytes of s to the dynamic buffer through the
// configured encoding.
func (z *Scanner) appendDecoded(s loc.Span) bool {
	b := z.buf[s.Start:s.End]
	if z.dec == nil || isASCII(b) {
		z.dyn.write(b)
		return true
	}
	out, err := z.dec.Bytes(b)
	if err != nil {
		z.warnUndecodable(s, err)
		return false
	}
	z.dyn.write(out)
	return true
}

// decodeText returns the bytes of s with character references decoded when
// Options.DecodeEntities is set.
func (z *Scanner) decodeText(s loc.Span) string {
	s = s.Clamp(len(z.buf))
	if !z.opts.DecodeEntities || bytes.IndexByte(z.buf[s.Start:s.End], '&') < 0 {
		return z.extract(s)
	}
	z.dyn.reset()
	lit := s.Start
	for i := s.Start; i < s.End; {
		j := bytes.IndexByte(z.buf[i:s.End], '&')
		if j < 0 {
			break
		}
		amp := i + j
		r, next, ok := entity.Decode(z.buf, amp+1, s.End)
		if !ok {
			i = amp + 1
			continue
		}
		if !z.appendDecoded(loc.Span{Start: lit, End: amp}) {
			return ""
		}
		z.dyn.writeRune(r)
		z.tok.Entities = true
		if r == '<' {
			z.tok.LtEntity = true
		}
		lit, i = next, next
	}
	if lit == s.Start {
		return z.extract(s)
	}
	if !z.appendDecoded(loc.Span{Start: lit, End: s.End}) {
		return ""
	}
	return z.dyn.String()
}

func (z *Scanner) warn(code loc.DiagnosticCode, text string, r loc.Range) {
	if z.handler == nil {
		return
	}
	z.handler.AppendWarning(&loc.ErrorWithRange{
		Code:  code,
		Text:  text,
		Range: r,
	})
}

func (z *Scanner) warnUndecodable(s loc.Span, err error) {
	z.warn(loc.WARNING_UNDECODABLE_BYTES, fmt.Sprintf("Cannot decode bytes: %v", err), s.Range())
}

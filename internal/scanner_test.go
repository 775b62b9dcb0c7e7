package htmlscan

import (
	"io"
	"strings"
	"testing"

	"github.com/crawlkit/htmlscan/internal/handler"
	"github.com/crawlkit/htmlscan/internal/heuristics"
	"github.com/crawlkit/htmlscan/internal/loc"
	"github.com/crawlkit/htmlscan/internal/test_utils"
	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.DecodeText = true
	return opts
}

func scanAll(t *testing.T, input string, opts Options) []*Token {
	t.Helper()
	z := NewScanner([]byte(input), opts)
	var toks []*Token
	for z.Next() != ErrorToken {
		toks = append(toks, z.Token().Clone())
	}
	assert.Equal(t, z.Err(), io.EOF)
	return toks
}

func describe(toks []*Token) []string {
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.String())
	}
	return out
}

var scannerTests = []struct {
	name  string
	input string
	want  []string
}{
	{
		"tag with text",
		`<a href="x">hi</a>`,
		[]string{`OpenTag("a" href="x")`, `Text("hi")`, `CloseTag("a")`},
	},
	{
		"self-closing",
		`<br/>`,
		[]string{`OpenTag("br" /)`},
	},
	{
		"comment containing >",
		`<!-- a > b -->`,
		[]string{`Comment(" a > b ")`},
	},
	{
		"entities in text",
		`<p>it&amp;s &#169; &nosuchent;</p>`,
		[]string{`OpenTag("p")`, `Text("it&s © &nosuchent;")`, `CloseTag("p")`},
	},
	{
		"script with less-than",
		`<script>if (a<b) {}</script>`,
		[]string{`Script("script")`},
	},
	{
		"upper case folded",
		`<DIV Class=Main>x</DIV>`,
		[]string{`OpenTag("div" class="Main")`, `Text("x")`, `CloseTag("div")`},
	},
	{
		"duplicate attribute overwrites in place",
		`<a href="1" title=t href="2">`,
		[]string{`OpenTag("a" href="2" title="t")`},
	},
	{
		"attributes without value",
		`<input disabled checked>`,
		[]string{`OpenTag("input" disabled="" checked="")`},
	},
	{
		"white space around equals",
		`<a href = "x" >`,
		[]string{`OpenTag("a" href="x")`},
	},
	{
		"single quoted value with entity",
		`<a title='a &lt; b'>`,
		[]string{`OpenTag("a" title="a < b")`},
	},
	{
		"unquoted value is not decoded",
		`<a href=x&amp;y>`,
		[]string{`OpenTag("a" href="x&amp;y")`},
	},
	{
		"unterminated quoted value",
		`<a href="x`,
		[]string{`OpenTag("a" href="x")`},
	},
	{
		"unterminated tag",
		`<div class`,
		[]string{`OpenTag("div" class="")`},
	},
	{
		"buffer ends after <",
		`x<`,
		[]string{`Text("x")`, `OpenTag("")`},
	},
	{
		"cdata",
		`<![CDATA[a<b]]>`,
		[]string{`Comment("a<b")`},
	},
	{
		"empty comment",
		`<!-->x`,
		[]string{`Comment("")`, `Text("x")`},
	},
	{
		"unterminated comment",
		`<!-- x`,
		[]string{`Comment(" x")`},
	},
	{
		"close tag marked self-closing",
		`</br/>`,
		[]string{`CloseTag("br" /)`},
	},
	{
		"processing instruction",
		`<?xml version="1.0"?>`,
		[]string{`OpenTag("?xml" version="1.0" ?="")`},
	},
	{
		"namespaced name",
		`<svg:rect x=1 />`,
		[]string{`OpenTag("svg:rect" x="1" /)`},
	},
	{
		"doctype",
		`<!DOCTYPE html>`,
		[]string{`OpenTag("!doctype" html="")`},
	},
	{
		"stray ampersand",
		`a & b`,
		[]string{`Text("a & b")`},
	},
	{
		"script hides end tag inside comment",
		`<script><!-- </script> --></script>x`,
		[]string{`Script("script")`, `Text("x")`},
	},
	{
		"script end tag with case and spaces",
		`<SCRIPT type="text/javascript">x</SCRIPT >`,
		[]string{`Script("script" type="text/javascript")`},
	},
	{
		"self-closing script is a tag",
		`<script src="a.js"/><p>`,
		[]string{`OpenTag("script" src="a.js" /)`, `OpenTag("p")`},
	},
	{
		"unterminated script",
		`<script>abc`,
		[]string{`Script("script")`},
	},
	{
		"every < starts a tag",
		`a < b`,
		[]string{`Text("a ")`, `OpenTag("b")`},
	},
	{
		"slash inside tag separates attributes",
		`<a/b>`,
		[]string{`OpenTag("a" b="")`},
	},
	{
		"empty tag",
		`<>`,
		[]string{`OpenTag("")`},
	},
	{
		"line breaks inside tag",
		"<p\n class=x\t>",
		[]string{`OpenTag("p" class="x")`},
	},
	{
		"decimal reference swallows its terminator",
		`&#65 b &#65x &#X41;`,
		[]string{`Text("Ab A &#X41;")`},
	},
	{
		"leading = is part of the name",
		`<a =x>`,
		[]string{`OpenTag("a" =x="")`},
	},
	{
		"custom element",
		`<my-widget data-id='7'></my-widget>`,
		[]string{`OpenTag("my-widget" data-id="7")`, `CloseTag("my-widget")`},
	},
}

func TestScanner(t *testing.T) {
	for _, tt := range scannerTests {
		t.Run(tt.name, func(t *testing.T) {
			got := describe(scanAll(t, tt.input, testOptions()))
			if diff := test_utils.ANSIDiff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHeuristicsDoNotChangeOutput(t *testing.T) {
	inputs := []string{
		`<DIV><Div><div><DIVX><di><d>`,
		`<P>p<p class=x><p	id="y"><pre>`,
		`<a HREF="x" href=y hre=z hreff="w"><A Href='q'>`,
		`<TABLE CELLPADDING=1 WIDTH="50%"><td valign=top colspan=2>`,
		`<img src="a.png" alt="&lt;x&gt;"/><br><BR/><b>`,
		`<meta http-equiv="refresh" content="0;url=/x">`,
		`<h1 class = "t">x</h1><h2/><h3`,
		`<a href`,
		`<ta`,
	}
	for _, tt := range scannerTests {
		inputs = append(inputs, tt.input)
	}
	on := testOptions()
	off := testOptions()
	off.EnableHeuristics = false
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			want := scanAll(t, input, off)
			got := scanAll(t, input, on)
			if diff := test_utils.ANSIDiff(want, got); diff != "" {
				t.Errorf("mismatch (-off +on):\n%s", diff)
			}
		})
	}
}

func TestHeuristicsWithCustomMatcher(t *testing.T) {
	m := heuristics.New()
	assert.Assert(t, m.Register("item", "sku,price"))
	assert.Assert(t, m.Register("x", ""))

	opts := testOptions()
	opts.Matcher = m
	got := describe(scanAll(t, `<ITEM SKU="1" price=2><x>y</x ><items>`, opts))
	want := []string{
		`OpenTag("item" sku="1" price="2")`,
		`OpenTag("x")`,
		`Text("y")`,
		`CloseTag("x")`,
		`OpenTag("items")`,
	}
	if diff := test_utils.ANSIDiff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSpansPartitionInput(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		`<a href="x">hi</a>`,
		`<html><head><title>T</title></head><body><!-- c --><p>x &amp; y</p></body></html>`,
		`<script>if (a<b) {}</script><![CDATA[z]]>`,
		`<a href="unterminated`,
		`<<<>>>`,
		`< / >text<`,
		"<p\x00>\xff\xfe</p>",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			z := NewScanner([]byte(input), testOptions())
			var b strings.Builder
			next := 0
			for z.Next() != ErrorToken {
				span := z.Token().Span
				assert.Equal(t, span.Start, next)
				assert.Assert(t, span.End > span.Start)
				assert.Equal(t, string(z.Raw()), input[span.Start:span.End])
				b.Write(z.Raw())
				next = span.End
			}
			assert.Equal(t, b.String(), input)
			assert.Equal(t, len(z.Buffered()), 0)
		})
	}
}

func TestScriptBody(t *testing.T) {
	input := `<script type="module">if (a<b) {}</script>`

	z := NewScanner([]byte(input), DefaultOptions())
	assert.Equal(t, z.Next(), ScriptToken)
	tok := z.Token()
	assert.Equal(t, tok.Data, "script")
	assert.Equal(t, tok.Text, "if (a<b) {}")
	assert.Equal(t, z.Text(), "if (a<b) {}")
	val, ok := tok.AttrVal("type")
	assert.Assert(t, ok)
	assert.Equal(t, val, "module")
	assert.Equal(t, tok.Span, loc.Span{Start: 0, End: len(input)})
	assert.Equal(t, z.Next(), ErrorToken)

	opts := DefaultOptions()
	opts.ExtractBetweenTagsOnly = false
	z = NewScanner([]byte(input), opts)
	assert.Equal(t, z.Next(), ScriptToken)
	assert.Equal(t, z.Token().Text, input)

	opts = DefaultOptions()
	opts.KeepScripts = false
	z = NewScanner([]byte(input), opts)
	assert.Equal(t, z.Next(), ScriptToken)
	assert.Equal(t, z.Token().Text, "")
	assert.Equal(t, z.Text(), "if (a<b) {}")
}

func TestHandleScriptsDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.HandleScripts = false
	z := NewScanner([]byte(`<script>x</script>`), opts)
	var got []TokenType
	for z.Next() != ErrorToken {
		got = append(got, z.Token().Type)
	}
	assert.DeepEqual(t, got, []TokenType{OpenTagToken, TextToken, CloseTagToken})
}

func TestCommentCapture(t *testing.T) {
	input := `<!--x--><![CDATA[y]]>`

	opts := DefaultOptions()
	z := NewScanner([]byte(input), opts)
	assert.Equal(t, z.Next(), CommentToken)
	assert.Equal(t, z.Token().Data, CommentData)
	assert.Equal(t, z.Token().Text, "x")
	assert.Equal(t, z.Next(), CommentToken)
	assert.Equal(t, z.Token().Data, CDATAData)
	assert.Equal(t, z.Token().Text, "y")

	opts.ExtractBetweenTagsOnly = false
	z = NewScanner([]byte(input), opts)
	z.Next()
	assert.Equal(t, z.Token().Text, "<!--x-->")
	z.Next()
	assert.Equal(t, z.Token().Text, "<![CDATA[y]]>")

	opts.KeepComments = false
	z = NewScanner([]byte(input), opts)
	z.Next()
	assert.Equal(t, z.Token().Text, "")
	assert.Equal(t, z.Text(), "x")
}

func TestKeepRawTags(t *testing.T) {
	opts := DefaultOptions()
	opts.KeepRawTags = true
	z := NewScanner([]byte(`<A HREF='x'>y</A>`), opts)
	assert.Equal(t, z.Next(), OpenTagToken)
	assert.Equal(t, z.Token().Text, `<A HREF='x'>`)
	assert.Equal(t, z.Next(), TextToken)
	assert.Equal(t, z.Token().Text, "")
	assert.Equal(t, z.Text(), "y")
	assert.Equal(t, z.Next(), CloseTagToken)
	assert.Equal(t, z.Token().Text, `</A>`)
}

func TestEntityFlags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		entities bool
		lt       bool
	}{
		{"none", `<a title="x">`, false, false},
		{"amp in value", `<a title="x &amp; y">`, true, false},
		{"lt in value", `<a title="&lt;b&gt;">`, true, true},
		{"numeric lt in value", `<a title="&#60;">`, true, true},
		{"unknown entity", `<a title="&bogus;">`, false, false},
		{"unquoted value", `<a title=&lt;>`, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := NewScanner([]byte(tt.input), DefaultOptions())
			assert.Equal(t, z.Next(), OpenTagToken)
			assert.Equal(t, z.Token().Entities, tt.entities)
			assert.Equal(t, z.Token().LtEntity, tt.lt)
		})
	}

	z := NewScanner([]byte(`a &lt; b`), DefaultOptions())
	assert.Equal(t, z.Next(), TextToken)
	assert.Equal(t, z.Text(), "a < b")
	assert.Assert(t, z.Token().Entities)
	assert.Assert(t, z.Token().LtEntity)
}

func TestDecodeEntitiesDisabled(t *testing.T) {
	opts := testOptions()
	opts.DecodeEntities = false
	got := describe(scanAll(t, `<a title="&amp;">it&amp;s</a>`, opts))
	want := []string{`OpenTag("a" title="&amp;")`, `Text("it&amp;s")`, `CloseTag("a")`}
	if diff := test_utils.ANSIDiff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestAttributeSpans(t *testing.T) {
	input := `<a href="x" id=y disabled>`
	z := NewScanner([]byte(input), DefaultOptions())
	assert.Equal(t, z.Next(), OpenTagToken)
	attrs := z.Token().Attr
	assert.Equal(t, len(attrs), 3)

	assert.Equal(t, string(z.Slice(attrs[0].KeySpan)), "href")
	assert.Equal(t, string(z.Slice(attrs[0].ValSpan)), "x")
	assert.Equal(t, attrs[0].Quote, byte('"'))
	assert.Equal(t, string(z.Slice(attrs[1].KeySpan)), "id")
	assert.Equal(t, string(z.Slice(attrs[1].ValSpan)), "y")
	assert.Equal(t, attrs[1].Quote, byte(0))
	assert.Equal(t, string(z.Slice(attrs[2].KeySpan)), "disabled")
	assert.Equal(t, attrs[2].ValSpan.Len(), 0)
}

func TestTokenReuseAndClone(t *testing.T) {
	z := NewScanner([]byte(`<a href="x"><b id=y>`), DefaultOptions())
	z.Next()
	tok := z.Token()
	kept := tok.Clone()

	z.Next()
	assert.Assert(t, tok == z.Token())
	assert.Equal(t, tok.Data, "b")
	assert.Equal(t, kept.Data, "a")
	assert.Equal(t, len(kept.Attr), 1)
	assert.Equal(t, kept.Attr[0].Key, "href")
	assert.Equal(t, kept.Attr[0].Val, "x")
}

func TestReset(t *testing.T) {
	z := NewScanner([]byte(`<a>`), DefaultOptions())
	for z.Next() != ErrorToken {
	}
	assert.Equal(t, z.Err(), io.EOF)

	z.Reset([]byte(`<b>`))
	assert.NilError(t, z.Err())
	assert.Equal(t, z.Next(), OpenTagToken)
	assert.Equal(t, z.Token().Data, "b")
	assert.NilError(t, z.Err())
	assert.Equal(t, z.Next(), ErrorToken)
	assert.Equal(t, z.Err(), io.EOF)
}

func TestEncoding(t *testing.T) {
	input := []byte("<p title=\"caf\xe9\">caf\xe9 &amp; cr\xe8me</p>")

	z := NewScanner(input, testOptions())
	assert.Equal(t, z.Next(), OpenTagToken)
	val, _ := z.Token().AttrVal("title")
	assert.Equal(t, val, "café")
	assert.Equal(t, z.Next(), TextToken)
	assert.Equal(t, z.Token().Text, "café & crème")

	latin1, err := LookupEncoding("latin1")
	assert.NilError(t, err)
	assert.Equal(t, EncodingName(latin1), "windows-1252")

	utf8, err := LookupEncoding("UTF-8")
	assert.NilError(t, err)
	assert.Assert(t, utf8 == nil)
	assert.Equal(t, EncodingName(utf8), "utf-8")

	opts := testOptions()
	opts.Encoding = utf8
	z = NewScanner([]byte("<p>café</p>"), opts)
	z.Next()
	z.Next()
	assert.Equal(t, z.Token().Text, "café")

	_, err = LookupEncoding("no-such-charset")
	assert.ErrorContains(t, err, "no-such-charset")
}

func TestDiagnostics(t *testing.T) {
	input := `<div class="x`
	h := handler.NewHandler([]byte(input), "page.html")
	opts := DefaultOptions()
	opts.Handler = h
	scanAll(t, input, opts)

	warnings := h.Warnings()
	assert.Equal(t, len(warnings), 2)
	assert.Equal(t, warnings[0].Code, int(loc.WARNING_UNTERMINATED_QUOTED_VALUE))
	assert.Equal(t, warnings[0].Location.File, "page.html")
	assert.Equal(t, warnings[0].Location.Line, 1)
	assert.Equal(t, warnings[0].Location.Column, 12)
	assert.Equal(t, warnings[1].Code, int(loc.WARNING_UNCLOSED_HTML_TAG))
	assert.Assert(t, !h.HasErrors())

	for _, input := range []string{`<!-- x`, `<![CDATA[x`, `<script>x`, `x<`} {
		h := handler.NewHandler([]byte(input), "")
		opts.Handler = h
		scanAll(t, input, opts)
		assert.Equal(t, len(h.Warnings()), 1, input)
	}

	h = handler.NewHandler([]byte(`<a href="x">ok</a>`), "")
	opts.Handler = h
	scanAll(t, `<a href="x">ok</a>`, opts)
	assert.Assert(t, !h.HasWarnings())
}

func TestPrintToSource(t *testing.T) {
	inputs := []string{
		`<a href="x y" title='it"s'>`,
		`<img src=a.png alt="a &amp; b">`,
		`<br/>`,
		`</div>`,
		`it&amp;s &lt;ok&gt;`,
		`<!-- c -->`,
		`<![CDATA[a<b]]>`,
		`<script src="x.js">var a = 1 < 2;</script>`,
		`<input disabled value="">`,
		`<p class=x&y>`,
	}
	ignore := cmp.Options{
		cmp.FilterPath(func(p cmp.Path) bool {
			switch p.Last().String() {
			case ".Span", ".KeySpan", ".ValSpan", ".Quote", ".Entities", ".LtEntity":
				return true
			}
			return false
		}, cmp.Ignore()),
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			want := scanAll(t, input, testOptions())
			var b strings.Builder
			for _, tok := range want {
				PrintToSource(&b, tok)
			}
			got := scanAll(t, b.String(), testOptions())
			if diff := test_utils.ANSIDiff(want, got, ignore); diff != "" {
				t.Errorf("regenerated %q mismatch (-want +got):\n%s", b.String(), diff)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte(`<b>hi</b> there`), DefaultOptions())
	b := Fingerprint([]byte(`<i class="x">hi</i> there<!-- note --><script>var x</script>`), DefaultOptions())
	c := Fingerprint([]byte(`<b>hi</b> where`), DefaultOptions())
	d := Fingerprint([]byte(`hi &#116;here`), DefaultOptions())

	assert.Equal(t, a, b)
	assert.Equal(t, a, d)
	assert.Assert(t, a != c)
	assert.Equal(t, len(a), 13)
}

func TestScannerFingerprint(t *testing.T) {
	input := []byte(`<p class="x">hi &amp; <b>there</b></p><!-- c -->`)
	opts := DefaultOptions()
	opts.KeepRawTags = true
	z := NewScanner(input, opts)
	assert.Equal(t, z.Fingerprint(), Fingerprint(input, DefaultOptions()))
	assert.Equal(t, z.Next(), ErrorToken)
}

func TestPool(t *testing.T) {
	z := AcquireScanner([]byte(`<a>`), DefaultOptions())
	assert.Equal(t, z.Next(), OpenTagToken)
	ReleaseScanner(z)

	z = AcquireScanner([]byte(`text`), testOptions())
	defer ReleaseScanner(z)
	assert.Equal(t, z.Next(), TextToken)
	assert.Equal(t, z.Token().Text, "text")
	assert.Equal(t, z.Next(), ErrorToken)
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, OpenTagToken.String(), "OpenTag")
	assert.Equal(t, ScriptToken.String(), "Script")
	assert.Equal(t, TokenType(42).String(), "Invalid(42)")
}

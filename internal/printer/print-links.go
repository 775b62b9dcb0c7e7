package printer

import (
	"fmt"
	"io"

	htmlscan "github.com/crawlkit/htmlscan/internal"
	"github.com/dlclark/regexp2"
)

// linkAttrs maps a tag name to the attribute holding the URL it references.
var linkAttrs = map[string]string{
	"a":      "href",
	"area":   "href",
	"audio":  "src",
	"base":   "href",
	"embed":  "src",
	"form":   "action",
	"frame":  "src",
	"iframe": "src",
	"img":    "src",
	"link":   "href",
	"script": "src",
	"source": "src",
	"video":  "src",
}

type Link struct {
	Tag    string `json:"tag"`
	Attr   string `json:"attr"`
	URL    string `json:"url"`
	Offset int    `json:"offset"`
}

// CompileTagPattern compiles a case-insensitive tag name filter.
func CompileTagPattern(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.IgnoreCase)
	if err != nil {
		return nil, fmt.Errorf("invalid tag pattern %q: %w", pattern, err)
	}
	return re, nil
}

// ExtractLinks returns the URLs referenced by the tags of z whose name
// matches tagPattern. A nil pattern matches every tag. Empty URLs are
// skipped.
func ExtractLinks(z *htmlscan.Scanner, tagPattern *regexp2.Regexp) ([]Link, error) {
	var links []Link
	for {
		tt := z.Next()
		if tt == htmlscan.ErrorToken {
			return links, nil
		}
		if tt != htmlscan.OpenTagToken && tt != htmlscan.ScriptToken {
			continue
		}
		tok := z.Token()
		key, ok := linkAttrs[tok.Data]
		if !ok {
			continue
		}
		if tagPattern != nil {
			matched, err := tagPattern.MatchString(tok.Data)
			if err != nil {
				return links, fmt.Errorf("matching tag %q: %w", tok.Data, err)
			}
			if !matched {
				continue
			}
		}
		for _, a := range tok.Attr {
			if a.Key != key || a.Val == "" {
				continue
			}
			links = append(links, Link{
				Tag:    tok.Data,
				Attr:   a.Key,
				URL:    a.Val,
				Offset: a.ValSpan.Start,
			})
			break
		}
	}
}

// PrintLinks writes the links of z as JSON lines.
func PrintLinks(w io.Writer, z *htmlscan.Scanner, tagPattern *regexp2.Regexp) error {
	links, err := ExtractLinks(z, tagPattern)
	if err != nil {
		return err
	}
	p := &printer{w: w}
	for _, link := range links {
		p.printJSONLine(link)
	}
	if p.err != nil {
		return fmt.Errorf("printing links: %w", p.err)
	}
	return nil
}

package printer

import (
	"fmt"
	"io"

	htmlscan "github.com/crawlkit/htmlscan/internal"
)

// PrintToText writes the decoded text content of z, starting a new line at
// block-level tags. Comments and scripts are skipped.
func PrintToText(w io.Writer, z *htmlscan.Scanner) error {
	p := &printer{w: w}
	atLineStart := true
	for {
		tt := z.Next()
		switch tt {
		case htmlscan.ErrorToken:
			if !atLineStart {
				p.printByte('\n')
			}
			if p.err != nil {
				return fmt.Errorf("printing text: %w", p.err)
			}
			return nil
		case htmlscan.TextToken:
			text := z.Text()
			if text == "" {
				continue
			}
			p.print(text)
			atLineStart = text[len(text)-1] == '\n'
		case htmlscan.OpenTagToken, htmlscan.CloseTagToken:
			if !atLineStart && isBlock(z.Token().Data) {
				p.printByte('\n')
				atLineStart = true
			}
		}
		if p.err != nil {
			return fmt.Errorf("printing text: %w", p.err)
		}
	}
}

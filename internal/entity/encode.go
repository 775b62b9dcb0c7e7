package entity

import (
	"strconv"
	"strings"
)

// EncodeEntities replaces characters that are unsafe in regenerated markup
// with character references. Control characters, the apostrophe and the
// Windows-1252 smart quote range U+0091..U+0094 become numeric references;
// characters with a known name become named references. Everything else is
// copied unchanged.
func EncodeEntities(s string) string {
	i := strings.IndexFunc(s, needsEncoding)
	if i < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	b.WriteString(s[:i])
	for _, r := range s[i:] {
		switch {
		case r < 0x20 || r == '\'' || 0x91 <= r && r <= 0x94:
			b.WriteString("&#")
			b.WriteString(strconv.Itoa(int(r)))
			b.WriteByte(';')
		default:
			if name, ok := byRune[r]; ok {
				b.WriteByte('&')
				b.WriteString(name)
				b.WriteByte(';')
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func needsEncoding(r rune) bool {
	if r < 0x20 || r == '\'' || 0x91 <= r && r <= 0x94 {
		return true
	}
	_, ok := byRune[r]
	return ok
}

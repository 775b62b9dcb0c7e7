// Package entity maps HTML character references to code points and back.
//
// The tables are built once at package initialisation and never mutated, so
// every function here may be called from any number of goroutines.
package entity

import (
	"unicode/utf8"
)

var (
	byName     map[string]rune
	byRune     map[rune]string
	maxNameLen int
)

func init() {
	byName = make(map[string]rune, len(table))
	byRune = make(map[rune]string, len(table))
	for _, e := range table {
		byName[e.name] = e.r
		if len(e.name) > maxNameLen {
			maxNameLen = len(e.name)
		}
		switch e.name {
		case "nbsp", "AMP", "REG":
			continue
		}
		if _, ok := byRune[e.r]; !ok {
			byRune[e.r] = e.name
		}
	}
	byRune[0xA0] = "nbsp"
}

// Lookup returns the code point for a case-sensitive entity name, without
// the leading '&' or trailing ';'.
func Lookup(name string) (rune, bool) {
	r, ok := byName[name]
	return r, ok
}

// Name returns the entity name used to encode r.
func Name(r rune) (string, bool) {
	name, ok := byRune[r]
	return name, ok
}

// MaxNameLen is the length of the longest known entity name.
func MaxNameLen() int {
	return maxNameLen
}

// Decode attempts to decode the character reference whose body starts at
// buf[pos], the byte after '&'. Bytes at or past limit are never read.
//
// On success it returns the decoded rune and the offset of the first byte
// after the reference. On failure it returns ok == false and next == pos,
// and the caller treats the '&' as literal text.
//
// Three forms are recognised:
//
//	&#169;   decimal, ended by any non-digit, which is consumed
//	&#xA9;   hexadecimal (lowercase x), ended by ';' only
//	&copy;   named, case-sensitive, ended by ';'
//
// Numbers that do not parse, zero, and values outside the Unicode scalar
// range are not a match.
func Decode(buf []byte, pos, limit int) (r rune, next int, ok bool) {
	if limit > len(buf) {
		limit = len(buf)
	}
	if pos < 0 || pos >= limit {
		return 0, pos, false
	}
	if buf[pos] == '#' {
		return decodeNumeric(buf, pos, limit)
	}

	end := pos + maxNameLen + 1
	if end > limit {
		end = limit
	}
	for i := pos; i < end; i++ {
		c := buf[i]
		if c == ';' {
			if r, found := byName[string(buf[pos:i])]; found {
				return r, i + 1, true
			}
			return 0, pos, false
		}
		if !isNameByte(c) {
			return 0, pos, false
		}
	}
	return 0, pos, false
}

func decodeNumeric(buf []byte, pos, limit int) (rune, int, bool) {
	i := pos + 1
	hex := false
	if i < limit && buf[i] == 'x' {
		hex = true
		i++
	}
	start := i
	end := start + maxNameLen + 1
	if end > limit {
		end = limit
	}

	var n int64
	for ; i < end; i++ {
		c := buf[i]
		var d int64
		switch {
		case '0' <= c && c <= '9':
			d = int64(c - '0')
		case hex && 'a' <= c && c <= 'f':
			d = int64(c-'a') + 10
		case hex && 'A' <= c && c <= 'F':
			d = int64(c-'A') + 10
		default:
			if i == start {
				return 0, pos, false
			}
			if c != ';' && hex {
				return 0, pos, false
			}
			r := rune(n)
			if n == 0 || n > utf8.MaxRune || !utf8.ValidRune(r) {
				return 0, pos, false
			}
			// The terminator is consumed even when it is not ';'.
			return r, i + 1, true
		}
		if hex {
			n = n*16 + d
		} else {
			n = n*10 + d
		}
	}
	// Ran out of room before a terminator.
	return 0, pos, false
}

func isNameByte(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

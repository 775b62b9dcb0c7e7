// Package heuristics implements a two-byte dispatch table that recognises a
// small vocabulary of tag and attribute names without scanning them byte by
// byte.
//
// A Matcher maps the first two bytes of a tag name to a data ID. Each
// registered tag gets a tag ID in [1, MaxTags] and two data IDs: id*2 for
// the lower-case spelling and id*2+1 for the upper-case spelling. A positive
// table entry means "this may be the tag with that data ID, verify the rest
// of the name". A negative entry is only ever stored for one-character tags
// and is keyed by the byte that follows the tag (space, tab, CR, LF or '>'),
// so it needs no further verification. Zero means no hit.
//
// Attributes work the same way but are scoped to a tag: each tag has a
// 256-entry table from the first byte of an attribute name to an attribute
// data ID. Only one attribute per first byte is tracked.
//
// A Matcher is built once and must not be modified while scanners use it.
// After construction it is read-only and may be shared between goroutines.
package heuristics

import (
	"strings"
)

const (
	// MaxTags is the number of tags a Matcher can hold.
	MaxTags = 255
	// MaxAttrs is the number of distinct attribute names a Matcher can hold.
	MaxAttrs = 255
	// MaxNameLen is the longest tag name that can be registered.
	MaxNameLen = 32
)

// Terminators are the bytes that may follow a one-character tag name.
var terminators = [...]byte{' ', '\t', '\r', '\n', '>'}

type Matcher struct {
	tags [256 * 256]int16

	tagIDs   map[string]int16
	tagNames []string
	tagBytes [][]byte

	attrs     [][256]uint16
	attrIDs   map[string]uint16
	attrNames []string
	attrBytes [][]byte
}

// New returns an empty Matcher.
func New() *Matcher {
	return &Matcher{
		tagIDs:    make(map[string]int16),
		tagNames:  make([]string, 1, 16),
		tagBytes:  make([][]byte, 2, 32),
		attrs:     make([][256]uint16, 1, 16),
		attrIDs:   make(map[string]uint16),
		attrNames: make([]string, 1, 16),
		attrBytes: make([][]byte, 2, 32),
	}
}

// Register adds a tag and a comma separated list of its common attributes.
//
// The name is trimmed and lower-cased. Register returns false, leaving the
// Matcher untouched, if the name is empty, longer than MaxNameLen, contains
// a byte that ends a tag name, is already registered, if the Matcher is full,
// or if another tag already owns the same two-byte prefix. Tags registered
// first win collisions, so register the most frequent tags first.
//
// Attribute names that are malformed, or whose first byte is already taken
// for this tag, are skipped silently.
func (m *Matcher) Register(name, attributeNamesCsv string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" || len(lower) > MaxNameLen || !validName(lower) {
		return false
	}
	if _, ok := m.tagIDs[lower]; ok {
		return false
	}
	if len(m.tagNames)-1 >= MaxTags {
		return false
	}
	upper := strings.ToUpper(lower)
	if !m.free(lower) || upper != lower && !m.free(upper) {
		return false
	}

	id := int16(len(m.tagNames))
	m.tagIDs[lower] = id
	m.tagNames = append(m.tagNames, lower)
	m.tagBytes = append(m.tagBytes, []byte(lower), []byte(upper))
	m.set(lower, id*2)
	if upper != lower {
		m.set(upper, id*2+1)
	}

	m.attrs = append(m.attrs, [256]uint16{})
	table := &m.attrs[id]
	for _, attr := range strings.Split(strings.ToLower(attributeNamesCsv), ",") {
		attr = strings.TrimSpace(attr)
		if attr == "" || !validName(attr) {
			continue
		}
		first, firstUpper := attr[0], upperByte(attr[0])
		if table[first] != 0 || table[firstUpper] != 0 {
			continue
		}
		attrID, ok := m.attrIDs[attr]
		if !ok {
			if len(m.attrNames)-1 >= MaxAttrs {
				continue
			}
			attrID = uint16(len(m.attrNames))
			m.attrIDs[attr] = attrID
			m.attrNames = append(m.attrNames, attr)
			m.attrBytes = append(m.attrBytes, []byte(attr), []byte(strings.ToUpper(attr)))
		}
		table[first] = attrID * 2
		if firstUpper != first {
			table[firstUpper] = attrID*2 + 1
		}
	}
	return true
}

// free reports whether all dispatch slots for the spelling s are unused.
func (m *Matcher) free(s string) bool {
	if len(s) == 1 {
		for _, t := range terminators {
			if m.tags[slot(s[0], t)] != 0 {
				return false
			}
		}
		return true
	}
	return m.tags[slot(s[0], s[1])] == 0
}

func (m *Matcher) set(s string, dataID int16) {
	if len(s) == 1 {
		for _, t := range terminators {
			m.tags[slot(s[0], t)] = -dataID
		}
		return
	}
	m.tags[slot(s[0], s[1])] = dataID
}

// MatchTag returns the dispatch entry for a tag name starting with b1, b2.
func (m *Matcher) MatchTag(b1, b2 byte) int16 {
	return m.tags[slot(b1, b2)]
}

// MatchAttr returns the attribute data ID tracked for the first byte b under
// the tag identified by tag, a value returned by MatchTag.
func (m *Matcher) MatchAttr(b byte, tag int16) uint16 {
	id := TagID(tag)
	if id <= 0 || int(id) >= len(m.attrs) {
		return 0
	}
	return m.attrs[id][b]
}

// TagID converts a data ID, of either sign, to its tag ID.
func TagID(dataID int16) int16 {
	if dataID < 0 {
		dataID = -dataID
	}
	return dataID >> 1
}

// TagName returns the lower-case name for a data ID.
func (m *Matcher) TagName(dataID int16) string {
	id := TagID(dataID)
	if id <= 0 || int(id) >= len(m.tagNames) {
		return ""
	}
	return m.tagNames[id]
}

// TagBytes returns the spelling, lower or upper case, that a data ID stands
// for.
func (m *Matcher) TagBytes(dataID int16) []byte {
	if dataID < 0 {
		dataID = -dataID
	}
	if dataID < 2 || int(dataID) >= len(m.tagBytes) {
		return nil
	}
	return m.tagBytes[dataID]
}

// AttrName returns the lower-case name for an attribute data ID.
func (m *Matcher) AttrName(dataID uint16) string {
	id := dataID >> 1
	if id == 0 || int(id) >= len(m.attrNames) {
		return ""
	}
	return m.attrNames[id]
}

// AttrBytes returns the spelling that an attribute data ID stands for.
func (m *Matcher) AttrBytes(dataID uint16) []byte {
	if dataID < 2 || int(dataID) >= len(m.attrBytes) {
		return nil
	}
	return m.attrBytes[dataID]
}

// Len returns the number of registered tags.
func (m *Matcher) Len() int {
	return len(m.tagNames) - 1
}

// AttrLen returns the number of distinct registered attribute names.
func (m *Matcher) AttrLen() int {
	return len(m.attrNames) - 1
}

func slot(b1, b2 byte) int {
	return int(b1)<<8 | int(b2)
}

func upperByte(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func validName(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c <= ' ' || c >= 0x7f:
			return false
		case c == '/' || c == '>' || c == '<' || c == '=' || c == '"' || c == '\'':
			return false
		}
	}
	return true
}

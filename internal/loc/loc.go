package loc

import "fmt"

type Loc struct {
	// This is the 0-based index of this location from the start of the buffer, in bytes
	Start int
}

type Range struct {
	Loc Loc
	Len int
}

func (r Range) End() int {
	return r.Loc.Start + r.Len
}

// Span is a range of bytes in a Scanner's buffer. The start is inclusive,
// the end is exclusive.
type Span struct {
	Start, End int
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Range converts the span to a Range.
func (s Span) Range() Range {
	return Range{Loc: Loc{Start: s.Start}, Len: s.Len()}
}

// Clamp restricts the span to [0, n).
func (s Span) Clamp(n int) Span {
	if s.Start < 0 {
		s.Start = 0
	}
	if s.End > n {
		s.End = n
	}
	if s.Start > s.End {
		s.Start = s.End
	}
	return s
}

type DiagnosticSeverity int

const (
	ErrorType       DiagnosticSeverity = 1
	WarningType     DiagnosticSeverity = 2
	InformationType DiagnosticSeverity = 3
	HintType        DiagnosticSeverity = 4
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case ErrorType:
		return "error"
	case WarningType:
		return "warning"
	case InformationType:
		return "info"
	case HintType:
		return "hint"
	}
	return fmt.Sprintf("Invalid(%d)", int(s))
}

type DiagnosticMessage struct {
	Severity int                 `json:"severity" js:"severity"`
	Code     int                 `json:"code" js:"code"`
	Location *DiagnosticLocation `json:"location,omitempty" js:"location"`
	Text     string              `json:"text" js:"text"`
}

type DiagnosticLocation struct {
	File   string `json:"file,omitempty" js:"file"`
	Line   int    `json:"line" js:"line"`
	Column int    `json:"column" js:"column"`
	Length int    `json:"length" js:"length"`
}

// ErrorWithRange is a diagnostic anchored to a byte range of the input.
type ErrorWithRange struct {
	Code  DiagnosticCode
	Text  string
	Range Range
}

func (e *ErrorWithRange) Error() string {
	return e.Text
}

func (e *ErrorWithRange) ToMessage(location *DiagnosticLocation) DiagnosticMessage {
	return DiagnosticMessage{
		Code:     int(e.Code),
		Text:     e.Error(),
		Location: location,
	}
}

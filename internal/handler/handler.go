package handler

import (
	"errors"
	"sort"
	"unicode/utf8"

	"github.com/crawlkit/htmlscan/internal/loc"
)

// Handler collects the diagnostics produced while scanning one buffer.
// It is not safe for concurrent use.
type Handler struct {
	source   []byte
	filename string
	errors   []error
	warnings []error
	infos    []error
	hints    []error

	// lineStarts holds the offset of the first byte of every line. It is
	// built on the first position lookup.
	lineStarts []int
}

func NewHandler(source []byte, filename string) *Handler {
	return &Handler{
		source:   source,
		filename: filename,
		errors:   make([]error, 0),
		warnings: make([]error, 0),
		infos:    make([]error, 0),
		hints:    make([]error, 0),
	}
}

func (h *Handler) HasErrors() bool {
	return len(h.errors) > 0
}

func (h *Handler) HasWarnings() bool {
	return len(h.warnings) > 0
}

func (h *Handler) AppendError(err error) {
	h.errors = append(h.errors, err)
}

func (h *Handler) AppendWarning(err error) {
	h.warnings = append(h.warnings, err)
}

func (h *Handler) AppendInfo(err error) {
	h.infos = append(h.infos, err)
}
func (h *Handler) AppendHint(err error) {
	h.hints = append(h.hints, err)
}

func (h *Handler) Errors() []loc.DiagnosticMessage {
	return h.messages(loc.ErrorType, h.errors, nil)
}

func (h *Handler) Warnings() []loc.DiagnosticMessage {
	return h.messages(loc.WarningType, h.warnings, nil)
}

func (h *Handler) Diagnostics() []loc.DiagnosticMessage {
	msgs := make([]loc.DiagnosticMessage, 0)
	msgs = h.messages(loc.ErrorType, h.errors, msgs)
	msgs = h.messages(loc.WarningType, h.warnings, msgs)
	msgs = h.messages(loc.InformationType, h.infos, msgs)
	msgs = h.messages(loc.HintType, h.hints, msgs)
	return msgs
}

func (h *Handler) messages(severity loc.DiagnosticSeverity, errs []error, msgs []loc.DiagnosticMessage) []loc.DiagnosticMessage {
	if msgs == nil {
		msgs = make([]loc.DiagnosticMessage, 0, len(errs))
	}
	for _, err := range errs {
		if err != nil {
			msgs = append(msgs, ErrorToMessage(h, severity, err))
		}
	}
	return msgs
}

// LineAndColumn returns the 1-based line and column of a byte offset.
// Columns count characters. "\n", "\r\n" and a lone "\r" end a line.
func (h *Handler) LineAndColumn(offset int) (int, int) {
	if offset > len(h.source) {
		offset = len(h.source)
	}
	if offset < 0 {
		offset = 0
	}
	if len(h.lineStarts) == 0 {
		h.lineStarts = lineOffsetTable(h.source, h.lineStarts)
	}
	// The last line starting at or before offset.
	line := sort.SearchInts(h.lineStarts, offset+1) - 1
	start := h.lineStarts[line]
	return line + 1, utf8.RuneCount(h.source[start:offset]) + 1
}

func lineOffsetTable(source []byte, starts []int) []int {
	starts = append(starts, 0)
	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(source) && source[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return starts
}

func ErrorToMessage(h *Handler, severity loc.DiagnosticSeverity, err error) loc.DiagnosticMessage {
	var rangedError *loc.ErrorWithRange
	switch {
	case errors.As(err, &rangedError):
		line, column := h.LineAndColumn(rangedError.Range.Loc.Start)
		location := &loc.DiagnosticLocation{
			File:   h.filename,
			Line:   line,
			Column: column,
			Length: rangedError.Range.Len,
		}
		message := rangedError.ToMessage(location)
		message.Severity = int(severity)
		return message
	default:
		return loc.DiagnosticMessage{Severity: int(severity), Text: err.Error()}
	}
}

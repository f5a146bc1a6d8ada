package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/fjord/lang/parser"
	"github.com/ardnew/fjord/lang/syntax"
)

// Sentinel errors.
var (
	ErrReadInput = NewError("failed to read input")
	ErrSyntax    = NewError("syntax error")
)

// Error is an error message with an optional cause and structured logging
// attributes.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError returns an Error with the given message.
func NewError(msg string) *Error { return &Error{msg: msg} }

// Error implements the error interface as "<msg>: <cause>", omitting
// whichever part is empty.
func (e *Error) Error() string {
	switch {
	case e.err == nil:
		return e.msg
	case e.msg == "":
		return e.err.Error()
	default:
		return e.msg + ": " + e.err.Error()
	}
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an Error with the same message, so that
// errors derived from a sentinel with Wrap or With still match it.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.err == nil && t.msg != "" && t.msg == e.msg
}

// LogValue implements [slog.LogValuer].
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.Any("cause", e.err))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e caused by err.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a copy of e with attrs appended to its logging attributes.
func (e *Error) With(attrs ...slog.Attr) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: append(e.attrs[:len(e.attrs):len(e.attrs)], attrs...),
	}
}

// Diagnostic locates a message in source text for display.
type Diagnostic struct {
	Message string
	Range   syntax.Range

	// Line and Column are one-based; Column counts runes.
	Line, Column int
	// Text is the full source line containing the start of Range.
	Text string
	// Width is the number of runes of Text covered by Range, at least one.
	Width int
}

// Diagnose computes the position of rng in source.
func Diagnose(source string, rng syntax.Range, message string) Diagnostic {
	start := min(max(rng.Start, 0), len(source))

	lineStart := strings.LastIndexByte(source[:start], '\n') + 1

	lineEnd := strings.IndexByte(source[start:], '\n')
	if lineEnd < 0 {
		lineEnd = len(source)
	} else {
		lineEnd += start
	}

	text := strings.TrimSuffix(source[lineStart:lineEnd], "\r")
	end := min(max(rng.End, start), lineStart+len(text))

	return Diagnostic{
		Message: message,
		Range:   rng,
		Line:    strings.Count(source[:start], "\n") + 1,
		Column:  utf8.RuneCountInString(source[lineStart:start]) + 1,
		Text:    text,
		Width:   max(utf8.RuneCountInString(source[start:end]), 1),
	}
}

// Position formats the diagnostic's location as "line:column".
func (d Diagnostic) Position() string {
	return strconv.Itoa(d.Line) + ":" + strconv.Itoa(d.Column)
}

// Snippet renders the source line with a caret underline beneath the
// diagnosed range:
//
//	3 | let 5 = 10
//	  |     ^
func (d Diagnostic) Snippet() string {
	num := strconv.Itoa(d.Line)
	gutter := strings.Repeat(" ", len(num))

	var sb strings.Builder

	sb.WriteString("  " + num + " | " + d.Text + "\n")
	sb.WriteString("  " + gutter + " | ")
	sb.WriteString(strings.Repeat(" ", d.Column-1))
	sb.WriteString(strings.Repeat("^", d.Width))

	return sb.String()
}

// ParseError reports every syntax error found in a source.
type ParseError struct {
	Errors []parser.SyntaxError
	Source string
}

// Error implements the error interface with the first syntax error's
// position and message.
func (e *ParseError) Error() string {
	if len(e.Errors) == 0 {
		return ErrSyntax.Error()
	}

	d := e.Diagnostics()[0]
	msg := ErrSyntax.Error() + " at " + d.Position() + ": " + d.Message

	if n := len(e.Errors) - 1; n > 0 {
		msg += " (and " + strconv.Itoa(n) + " more)"
	}

	return msg
}

// Unwrap returns [ErrSyntax].
func (e *ParseError) Unwrap() error { return ErrSyntax }

// Diagnostics locates every syntax error in the source.
func (e *ParseError) Diagnostics() []Diagnostic {
	ds := make([]Diagnostic, len(e.Errors))

	for i, se := range e.Errors {
		ds[i] = Diagnose(e.Source, se.Range, se.Message)
	}

	return ds
}

// LogValue implements [slog.LogValuer].
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Int("count", len(e.Errors))}

	for i, d := range e.Diagnostics() {
		attrs = append(attrs, slog.String(strconv.Itoa(i),
			d.Position()+": "+d.Message))
	}

	return slog.GroupValue(attrs...)
}

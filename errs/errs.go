// Package errs defines the typed error kinds Tourmaline raises, per
// spec.md §7. Unlike the teacher repo, which represents every failure as
// a GoMixObject living in the same value space as user data, Tourmaline's
// value model (spec.md §3) has no error variant: try/except catches
// failures, not values. So these are plain Go errors with a Kind label,
// propagated the way idiomatic Go keeps host failures distinct from
// language-level data.
package errs

import "fmt"

// Kind names one of the error categories from spec.md §7.
type Kind string

const (
	Lexical    Kind = "LexicalError"
	Parse      Kind = "ParseError"
	Name       Kind = "NameError"
	Type       Kind = "TypeError"
	Arithmetic Kind = "ArithmeticError"
	Index      Kind = "IndexError"
	IO         Kind = "IOError"
)

// Error is a Tourmaline interpreter error: a Kind plus a human-readable
// message. try/except binds Error() to the except variable verbatim.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Lexf builds a lexical error (unterminated string literal).
func Lexf(format string, args ...interface{}) *Error { return newf(Lexical, format, args...) }

// Parsef builds a parse error (bad literal shape, missing ':' in a map,
// a malformed declaration).
func Parsef(format string, args ...interface{}) *Error { return newf(Parse, format, args...) }

// Namef builds a name error (undefined variable, unknown function,
// missing library member).
func Namef(format string, args ...interface{}) *Error { return newf(Name, format, args...) }

// Typef builds a type error (an operator or builtin applied to an
// incompatible kind).
func Typef(format string, args ...interface{}) *Error { return newf(Type, format, args...) }

// Arithf builds an arithmetic error (division by zero and similar host
// arithmetic failures).
func Arithf(format string, args ...interface{}) *Error { return newf(Arithmetic, format, args...) }

// Indexf builds an index error (out-of-range list/text access, or a
// missing map key through the index-access form — the '.' accessor form
// instead returns nil for a missing key per spec.md §4.4).
func Indexf(format string, args ...interface{}) *Error { return newf(Index, format, args...) }

// IOf builds an I/O error (source file not found).
func IOf(format string, args ...interface{}) *Error { return newf(IO, format, args...) }

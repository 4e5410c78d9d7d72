// Package builtins holds Tourmaline's fixed global builtin function table
// and its single library bundle ("random"), per spec.md §4.6. Both are
// package-level tables populated once, at package initialization, and
// never mutated by user code (spec.md §3: "Library registry ... not mutable by user code").
package builtins

import (
	"bufio"
	"io"
)

// Runtime carries the I/O Tourmaline's builtins need (print's
// destination, input's source) without builtin functions closing over a
// particular interpreter instance — the same Global/Libraries tables are
// reused across every Interpreter (spec.md §3: "process-wide mapping").
type Runtime struct {
	Writer io.Writer
	Reader *bufio.Reader
}

// NewRuntime builds a Runtime around the given writer/reader.
func NewRuntime(w io.Writer, r io.Reader) *Runtime {
	return &Runtime{Writer: w, Reader: bufio.NewReader(r)}
}

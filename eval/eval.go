// Package eval implements the pivotal middle of the Tourmaline
// interpreter: the call resolver (spec.md §4.3), the list/map literal
// parsers (§4.2), and the right-to-left precedence-climbing expression
// evaluator (§4.4). All three operate over token slices handed to them
// by the statement executor (package interp) and recurse into each
// other — a literal element is an expression, a call argument is an
// expression, and a resolved call's argument list is itself scanned by
// the same bracket-balanced splitter the literal parsers use.
//
// This package never imports interp: invoking a user-defined or
// library function is expressed through the CallInvoker interface below,
// which interp.Interpreter implements. That indirection is what breaks
// the cycle spec.md §4.3 calls out explicitly — call resolution must run
// before operator evaluation, and the values it splices back in come
// from code (statement execution) that itself depends on the evaluator.
package eval

import (
	"github.com/mochacinno-dev/tourmaline/env"
	"github.com/mochacinno-dev/tourmaline/errs"
	"github.com/mochacinno-dev/tourmaline/lexer"
	"github.com/mochacinno-dev/tourmaline/value"
)

// CallInvoker is the set of call operations the evaluator needs but does
// not own. An interp.Interpreter satisfies this by dispatching to its
// function table, its builtin table, or the library registry.
type CallInvoker interface {
	// IsCallable reports whether name is a known user-defined function or
	// a builtin — i.e. whether `name(...)` should be treated as a call by
	// the resolver (spec.md §4.3 case 3).
	IsCallable(name string) bool
	// Call invokes name (user-defined or builtin) with already-evaluated
	// arguments.
	Call(name string, args []value.Value) (value.Value, error)
	// IsLibraryMember reports whether lib.member is a valid, imported
	// library call target (spec.md §4.3 case 2).
	IsLibraryMember(lib, member string) bool
	// CallLibrary invokes lib.member with already-evaluated arguments.
	CallLibrary(lib, member string, args []value.Value) (value.Value, error)
}

// Evaluator ties together one Environment and one CallInvoker. A fresh
// Evaluator is cheap to build (interp constructs one per statement
// dispatch); its only mutable state is the side table used to splice
// non-scalar call results back into a token stream (see resolver.go).
type Evaluator struct {
	Env     *env.Environment
	Invoker CallInvoker

	refs   map[string]value.Value
	refSeq int
}

// New builds an Evaluator over the given environment and call invoker.
func New(e *env.Environment, invoker CallInvoker) *Evaluator {
	return &Evaluator{Env: e, Invoker: invoker, refs: make(map[string]value.Value)}
}

// Eval resolves every call in tokens and then walks the resulting
// expression, per spec.md §4.4. This is the package's main entry point;
// everything else here is a helper reachable from it.
func (ev *Evaluator) Eval(tokens []lexer.Token) (value.Value, error) {
	if len(tokens) == 0 {
		return nil, errs.Parsef("empty expression")
	}
	resolved, err := ev.resolveCalls(tokens)
	if err != nil {
		return nil, err
	}
	return ev.walk(resolved)
}

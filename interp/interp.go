// Package interp implements Tourmaline's statement executor (spec.md
// §4.5) and the call-frame mechanics around user-defined functions
// (spec.md §4.5's "User-function call" subsection, §4.6's G component).
// It is the one package allowed to depend on both package eval (for
// expression evaluation) and package builtins (for the fixed global and
// library call tables); it closes the loop by implementing
// eval.CallInvoker so the call resolver can invoke user functions and
// builtins without eval importing this package back.
package interp

import (
	"github.com/mochacinno-dev/tourmaline/builtins"
	"github.com/mochacinno-dev/tourmaline/env"
	"github.com/mochacinno-dev/tourmaline/eval"
	"github.com/mochacinno-dev/tourmaline/errs"
	"github.com/mochacinno-dev/tourmaline/lexer"
	"github.com/mochacinno-dev/tourmaline/value"
)

// Interpreter is one running Tourmaline program: its environment,
// function table, struct table, and the shared I/O runtime its builtins
// write through. One Interpreter instance is reused for an entire file
// run or REPL session (spec.md §5: "owns the environment, function
// table, struct table ... for its full lifetime").
type Interpreter struct {
	Env       *env.Environment
	Functions map[string][]string
	Structs   map[string][]string
	Runtime   *builtins.Runtime

	hasReturned bool
	returnValue value.Value
}

// New builds an Interpreter with an empty environment, ready to execute
// against the given Runtime (the print/input destination).
func New(rt *builtins.Runtime) *Interpreter {
	return &Interpreter{
		Env:         env.New(),
		Functions:   make(map[string][]string),
		Structs:     make(map[string][]string),
		Runtime:     rt,
		returnValue: value.NilValue,
	}
}

// Run splits src into lines and executes them in order against this
// Interpreter's environment. State persists across calls, so a REPL can
// call Run once per line; a block statement (function, if, while, for,
// try, struct) must arrive within a single call together with its `end`.
func (in *Interpreter) Run(src string) error {
	return in.Exec(splitLines(src))
}

// eval builds a fresh expression evaluator over the current environment
// and this Interpreter (as the CallInvoker) and evaluates tokens.
func (in *Interpreter) eval(tokens []lexer.Token) (value.Value, error) {
	return eval.New(in.Env, in).Eval(tokens)
}

// IsCallable implements eval.CallInvoker: name is callable if it is a
// user-defined function or one of the fixed builtins.
func (in *Interpreter) IsCallable(name string) bool {
	if _, ok := in.Functions[name]; ok {
		return true
	}
	_, ok := builtins.Global[name]
	return ok
}

// Call implements eval.CallInvoker, dispatching to a user function ahead
// of the builtin table, so a user function declared with a builtin's
// name shadows that builtin.
func (in *Interpreter) Call(name string, args []value.Value) (value.Value, error) {
	if _, ok := in.Functions[name]; ok {
		return in.callUser(name, args)
	}
	if fn, ok := builtins.Global[name]; ok {
		return fn(in.Runtime, args)
	}
	return nil, errs.Namef("unknown function: %s", name)
}

// IsLibraryMember implements eval.CallInvoker against the process-wide
// library registry.
func (in *Interpreter) IsLibraryMember(lib, member string) bool {
	l, ok := builtins.Libraries[lib]
	if !ok {
		return false
	}
	_, ok = l.Members[member]
	return ok
}

// CallLibrary implements eval.CallInvoker against the process-wide
// library registry.
func (in *Interpreter) CallLibrary(lib, member string, args []value.Value) (value.Value, error) {
	l, ok := builtins.Libraries[lib]
	if !ok {
		return nil, errs.Namef("unknown library: %s", lib)
	}
	fn, ok := l.Members[member]
	if !ok {
		return nil, errs.Namef("library '%s' has no function '%s'", lib, member)
	}
	return fn(in.Runtime, args)
}

// Package env implements Tourmaline's variable environment: a single flat
// mapping from identifier to value.Value, per spec.md §3. Unlike the
// teacher repo's scope.Scope, this has no parent chain — Tourmaline's
// functions have no lexical closures (spec.md §1 Non-goals), so a child
// scope would never be consulted. The whole-environment
// snapshot-and-restore this package exposes is what spec.md §4.5 calls
// for around a user function call.
package env

import "github.com/mochacinno-dev/tourmaline/value"

// Environment is the currently visible set of variable bindings.
type Environment struct {
	vars map[string]value.Value
}

// New returns an empty Environment.
func New() *Environment {
	return &Environment{vars: make(map[string]value.Value)}
}

// Get looks up name, reporting whether it was bound.
func (e *Environment) Get(name string) (value.Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Set binds name to val, replacing any prior binding (spec.md §4.5:
// "Redeclaration replaces").
func (e *Environment) Set(name string, val value.Value) {
	e.vars[name] = val
}

// Has reports whether name is currently bound.
func (e *Environment) Has(name string) bool {
	_, ok := e.vars[name]
	return ok
}

// Snapshot returns the current Environment unchanged — environments are
// replaced wholesale rather than nested, so "snapshotting" is simply
// keeping a reference that the caller assigns back once the call
// returns. The call frame code in package interp is explicit about this:
// it only ever holds one Environment at a time.
func (e *Environment) Snapshot() *Environment {
	return e
}

// FreshWithParams returns a brand new Environment containing exactly the
// given parameter bindings — the environment a user function body
// executes against (spec.md §4.5: "Replace the environment with a fresh
// mapping containing only the parameter bindings").
func FreshWithParams(params []string, args []value.Value) *Environment {
	next := New()
	for i, p := range params {
		if i < len(args) {
			next.vars[p] = args[i]
		} else {
			next.vars[p] = value.NilValue
		}
	}
	return next
}

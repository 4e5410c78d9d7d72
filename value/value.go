// Package value defines the tagged dynamic value that flows through every
// stage of the Tourmaline interpreter: the literal parsers, the expression
// evaluator, the environment, and the builtin registry all exchange plain
// Value handles rather than any richer internal representation.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant of Value a particular instance holds.
// It is a string, following the teacher repo's convention of string-typed
// discriminants (GoMixType in objects.go), so that type mismatches show up
// readably in error messages without a separate stringer.
type Kind string

const (
	KindInt          Kind = "int"
	KindFloat        Kind = "float"
	KindBool         Kind = "bool"
	KindText         Kind = "text"
	KindNil          Kind = "nil"
	KindList         Kind = "list"
	KindMap          Kind = "map"
	KindCallableName Kind = "callable"
)

// Value is the single interface every Tourmaline runtime value implements.
// It mirrors the three-method shape of the teacher's GoMixObject interface
// (GetType/ToString/ToObject) under idiomatic Go names.
type Value interface {
	// Kind reports which concrete variant this value holds.
	Kind() Kind
	// String renders the value the way a program's own output would show
	// it (print, str(), token re-splicing after a call resolves).
	String() string
	// Repr renders a debug form, used in error messages.
	Repr() string
	// Truthy implements the language's falsy/truthy rule (spec.md §4.4):
	// false, nil, 0, 0.0, "", [], {} are falsy; everything else is truthy.
	Truthy() bool
}

// Int is a 64-bit signed integer value.
type Int struct{ Val int64 }

func (Int) Kind() Kind          { return KindInt }
func (i Int) String() string    { return strconv.FormatInt(i.Val, 10) }
func (i Int) Repr() string      { return i.String() }
func (i Int) Truthy() bool      { return i.Val != 0 }

// Float is a 64-bit floating point value.
type Float struct{ Val float64 }

func (Float) Kind() Kind       { return KindFloat }
func (f Float) String() string { return strconv.FormatFloat(f.Val, 'f', -1, 64) }
func (f Float) Repr() string   { return f.String() }
func (f Float) Truthy() bool   { return f.Val != 0 }

// Bool is a boolean value.
type Bool struct{ Val bool }

func (Bool) Kind() Kind       { return KindBool }
func (b Bool) String() string { return strconv.FormatBool(b.Val) }
func (b Bool) Repr() string   { return b.String() }
func (b Bool) Truthy() bool   { return b.Val }

// Text is an immutable string value (spec.md §5: "Text values are
// immutable").
type Text struct{ Val string }

func (Text) Kind() Kind       { return KindText }
func (t Text) String() string { return t.Val }
func (t Text) Repr() string   { return strconv.Quote(t.Val) }
func (t Text) Truthy() bool   { return t.Val != "" }

// Nil is the singleton absence-of-value. NilValue is the value every
// package should use instead of constructing Nil{} ad hoc.
type Nil struct{}

func (Nil) Kind() Kind       { return KindNil }
func (Nil) String() string   { return "nil" }
func (Nil) Repr() string     { return "nil" }
func (Nil) Truthy() bool     { return false }

// NilValue is the shared Nil instance.
var NilValue Value = Nil{}

// List is an ordered, mutable sequence of values. Lists are shared by
// identity (spec.md §5): passing a *List into a user function lets the
// callee mutate the caller's data, which is why List is always handled
// through a pointer.
type List struct{ Elems []Value }

func (*List) Kind() Kind { return KindList }
func (l *List) String() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (l *List) Repr() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = e.Repr()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (l *List) Truthy() bool { return len(l.Elems) > 0 }

// Map is an insertion-ordered text-keyed mapping. Like List, it is always
// handled through a pointer so container identity is preserved across
// function calls.
type Map struct {
	Keys   []string
	Values map[string]Value
}

// NewMap returns an empty, ready-to-use Map.
func NewMap() *Map {
	return &Map{Values: make(map[string]Value)}
}

// Set binds key to val, appending key to the insertion-order slice only
// the first time it is seen.
func (m *Map) Set(key string, val Value) {
	if _, exists := m.Values[key]; !exists {
		m.Keys = append(m.Keys, key)
	}
	m.Values[key] = val
}

// Get returns the value bound to key, or Nil if absent — spec.md §4.4:
// "absent key → nil" for the '.' accessor. Index access (§4.4) surfaces
// a missing key as an error instead; callers needing that distinction
// should check ok themselves via the map's Values field.
func (m *Map) Get(key string) Value {
	if v, ok := m.Values[key]; ok {
		return v
	}
	return NilValue
}

func (*Map) Kind() Kind { return KindMap }
func (m *Map) String() string {
	parts := make([]string, len(m.Keys))
	for i, k := range m.Keys {
		parts[i] = k + ": " + m.Values[k].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (m *Map) Repr() string {
	parts := make([]string, len(m.Keys))
	for i, k := range m.Keys {
		parts[i] = strconv.Quote(k) + ": " + m.Values[k].Repr()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (m *Map) Truthy() bool { return len(m.Keys) > 0 }

// CallableName is the representation of a bare identifier that names a
// user-defined function, or a library member reached through `.` without
// being immediately applied (spec.md §4.4's "returned as a callable
// value"). It is distinct from the library sentinel itself, which is a
// plain Text value equal to the library's name (spec.md §4.4: "a text
// value equal to the name of an imported library").
type CallableName struct{ Name string }

func (CallableName) Kind() Kind       { return KindCallableName }
func (c CallableName) String() string { return c.Name }
func (c CallableName) Repr() string   { return fmt.Sprintf("<callable %s>", c.Name) }
func (c CallableName) Truthy() bool   { return true }

// Equal implements the value-equality rule from spec.md §3: numeric kinds
// compare by numeric value across Int/Float, Text compares byte-exact,
// and all other kinds require identical Kind plus structural equality.
func Equal(a, b Value) bool {
	if isNumeric(a) && isNumeric(b) {
		return asFloat(a) == asFloat(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Bool:
		return av.Val == b.(Bool).Val
	case Text:
		return av.Val == b.(Text).Val
	case Nil:
		return true
	case CallableName:
		return av.Name == b.(CallableName).Name
	case *List:
		bv := b.(*List)
		if len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !Equal(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv := b.(*Map)
		if len(av.Keys) != len(bv.Keys) {
			return false
		}
		for k, v := range av.Values {
			ov, ok := bv.Values[k]
			if !ok || !Equal(v, ov) {
				return false
			}
		}
		return true
	}
	return false
}

func isNumeric(v Value) bool {
	return v.Kind() == KindInt || v.Kind() == KindFloat
}

func asFloat(v Value) float64 {
	switch n := v.(type) {
	case Int:
		return float64(n.Val)
	case Float:
		return n.Val
	}
	return 0
}

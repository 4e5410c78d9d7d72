package builtins

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mochacinno-dev/tourmaline/errs"
	"github.com/mochacinno-dev/tourmaline/value"
)

// Func is the signature every builtin and library member implements: a
// Runtime for I/O plus the already-evaluated argument values, returning a
// result or a typed error. This mirrors the teacher's
// objects.CallbackFunc, generalized to also carry error instead of
// folding failures into the value space (see errs package doc comment).
type Func func(rt *Runtime, args []value.Value) (value.Value, error)

// Global is the fixed table of builtin names addressable without an
// import, per spec.md §4.6.
var Global = map[string]Func{
	"print":   builtinPrint,
	"input":   builtinInput,
	"len":     builtinLen,
	"str":     builtinStr,
	"int":     builtinInt,
	"float":   builtinFloat,
	"type":    builtinType,
	"abs":     builtinAbs,
	"sqrt":    builtinSqrt,
	"pow":     builtinPow,
	"sin":     builtinSin,
	"cos":     builtinCos,
	"tan":     builtinTan,
	"floor":   builtinFloor,
	"ceil":    builtinCeil,
	"round":   builtinRound,
	"min":     builtinMin,
	"max":     builtinMax,
	"append":  builtinAppend,
	"insert":  builtinInsert,
	"remove":  builtinRemove,
	"pop":     builtinPop,
	"clear":   builtinClear,
}

func wantArgs(name string, args []value.Value, n int) error {
	if len(args) != n {
		return errs.Typef("%s expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func builtinPrint(rt *Runtime, args []value.Value) (value.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	fmt.Fprintln(rt.Writer, strings.Join(parts, " "))
	return value.NilValue, nil
}

func builtinInput(rt *Runtime, args []value.Value) (value.Value, error) {
	if len(args) > 1 {
		return nil, errs.Typef("input expects at most 1 argument, got %d", len(args))
	}
	if len(args) == 1 {
		fmt.Fprint(rt.Writer, args[0].String())
	}
	line, err := rt.Reader.ReadString('\n')
	if err != nil && line == "" {
		return nil, errs.IOf("input: %v", err)
	}
	return value.Text{Val: strings.TrimRight(line, "\r\n")}, nil
}

func builtinLen(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("len", args, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case value.Text:
		return value.Int{Val: int64(len(v.Val))}, nil
	case *value.List:
		return value.Int{Val: int64(len(v.Elems))}, nil
	case *value.Map:
		return value.Int{Val: int64(len(v.Keys))}, nil
	default:
		return nil, errs.Typef("len() unsupported for %s", args[0].Kind())
	}
}

func builtinStr(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("str", args, 1); err != nil {
		return nil, err
	}
	return value.Text{Val: args[0].String()}, nil
}

func builtinType(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("type", args, 1); err != nil {
		return nil, err
	}
	return value.Text{Val: string(args[0].Kind())}, nil
}

// builtinInt converts text (including text with a decimal point),
// integers, floats, and booleans to an Int — spec.md §4.6.
func builtinInt(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("int", args, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case value.Int:
		return v, nil
	case value.Float:
		return value.Int{Val: int64(v.Val)}, nil
	case value.Bool:
		if v.Val {
			return value.Int{Val: 1}, nil
		}
		return value.Int{Val: 0}, nil
	case value.Text:
		if strings.Contains(v.Val, ".") {
			f, err := strconv.ParseFloat(v.Val, 64)
			if err != nil {
				return nil, errs.Typef("cannot convert %q to integer", v.Val)
			}
			return value.Int{Val: int64(f)}, nil
		}
		n, err := strconv.ParseInt(v.Val, 10, 64)
		if err != nil {
			return nil, errs.Typef("cannot convert %q to integer", v.Val)
		}
		return value.Int{Val: n}, nil
	default:
		return nil, errs.Typef("cannot convert %s to integer", args[0].Kind())
	}
}

func builtinFloat(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("float", args, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case value.Float:
		return v, nil
	case value.Int:
		return value.Float{Val: float64(v.Val)}, nil
	case value.Bool:
		if v.Val {
			return value.Float{Val: 1}, nil
		}
		return value.Float{Val: 0}, nil
	case value.Text:
		f, err := strconv.ParseFloat(v.Val, 64)
		if err != nil {
			return nil, errs.Typef("cannot convert %q to float", v.Val)
		}
		return value.Float{Val: f}, nil
	default:
		return nil, errs.Typef("cannot convert %s to float", args[0].Kind())
	}
}

func asFloat(v value.Value) (float64, error) {
	switch n := v.(type) {
	case value.Int:
		return float64(n.Val), nil
	case value.Float:
		return n.Val, nil
	default:
		return 0, errs.Typef("expected a number, got %s", v.Kind())
	}
}

func builtinAbs(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("abs", args, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case value.Int:
		if v.Val < 0 {
			return value.Int{Val: -v.Val}, nil
		}
		return v, nil
	case value.Float:
		return value.Float{Val: math.Abs(v.Val)}, nil
	default:
		return nil, errs.Typef("abs() unsupported for %s", args[0].Kind())
	}
}

func mathUnary(name string, fn func(float64) float64) Func {
	return func(rt *Runtime, args []value.Value) (value.Value, error) {
		if err := wantArgs(name, args, 1); err != nil {
			return nil, err
		}
		f, err := asFloat(args[0])
		if err != nil {
			return nil, err
		}
		return value.Float{Val: fn(f)}, nil
	}
}

var (
	builtinSqrt = mathUnary("sqrt", math.Sqrt)
	builtinSin  = mathUnary("sin", math.Sin)
	builtinCos  = mathUnary("cos", math.Cos)
	builtinTan  = mathUnary("tan", math.Tan)
)

func builtinPow(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("pow", args, 2); err != nil {
		return nil, err
	}
	base, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	exp, err := asFloat(args[1])
	if err != nil {
		return nil, err
	}
	result := math.Pow(base, exp)
	if _, ok := args[0].(value.Int); ok {
		if expInt, ok2 := args[1].(value.Int); ok2 && expInt.Val >= 0 {
			return value.Int{Val: int64(result)}, nil
		}
	}
	return value.Float{Val: result}, nil
}

func builtinFloor(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("floor", args, 1); err != nil {
		return nil, err
	}
	f, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	return value.Int{Val: int64(math.Floor(f))}, nil
}

func builtinCeil(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("ceil", args, 1); err != nil {
		return nil, err
	}
	f, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	return value.Int{Val: int64(math.Ceil(f))}, nil
}

func builtinRound(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("round", args, 1); err != nil {
		return nil, err
	}
	f, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	return value.Int{Val: int64(math.Round(f))}, nil
}

func builtinMin(rt *Runtime, args []value.Value) (value.Value, error) {
	return extremum("min", args, func(a, b float64) bool { return a < b })
}

func builtinMax(rt *Runtime, args []value.Value) (value.Value, error) {
	return extremum("max", args, func(a, b float64) bool { return a > b })
}

func extremum(name string, args []value.Value, better func(a, b float64) bool) (value.Value, error) {
	if len(args) == 0 {
		return nil, errs.Typef("%s() expects at least 1 argument", name)
	}
	best := args[0]
	bestF, err := asFloat(best)
	if err != nil {
		return nil, err
	}
	for _, v := range args[1:] {
		f, err := asFloat(v)
		if err != nil {
			return nil, err
		}
		if better(f, bestF) {
			best, bestF = v, f
		}
	}
	return best, nil
}

func asList(name string, v value.Value) (*value.List, error) {
	l, ok := v.(*value.List)
	if !ok {
		return nil, errs.Typef("%s() requires a list as first argument", name)
	}
	return l, nil
}

// builtinAppend mutates list in place and returns it (spec.md §4.6, §8's
// round-trip property: append(L, v); L[len(L)-1] == v).
func builtinAppend(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("append", args, 2); err != nil {
		return nil, err
	}
	l, err := asList("append", args[0])
	if err != nil {
		return nil, err
	}
	l.Elems = append(l.Elems, args[1])
	return l, nil
}

func builtinInsert(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("insert", args, 3); err != nil {
		return nil, err
	}
	l, err := asList("insert", args[0])
	if err != nil {
		return nil, err
	}
	idxV, ok := args[1].(value.Int)
	if !ok {
		return nil, errs.Typef("insert() index must be an integer")
	}
	idx := int(idxV.Val)
	if idx < 0 || idx > len(l.Elems) {
		return nil, errs.Indexf("insert() index %d out of range", idx)
	}
	l.Elems = append(l.Elems, nil)
	copy(l.Elems[idx+1:], l.Elems[idx:])
	l.Elems[idx] = args[2]
	return l, nil
}

func builtinRemove(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("remove", args, 2); err != nil {
		return nil, err
	}
	l, err := asList("remove", args[0])
	if err != nil {
		return nil, err
	}
	for i, e := range l.Elems {
		if value.Equal(e, args[1]) {
			l.Elems = append(l.Elems[:i], l.Elems[i+1:]...)
			return l, nil
		}
	}
	return nil, errs.Indexf("item %s not found in list", args[1].Repr())
}

// builtinPop removes and returns the element at the given index
// (defaulting to the last element), per original_source/Tourmaline.py's
// list_pop — unlike append/insert/remove/clear, pop's useful result is
// the removed element, not the list.
func builtinPop(rt *Runtime, args []value.Value) (value.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, errs.Typef("pop() expects 1 or 2 arguments, got %d", len(args))
	}
	l, err := asList("pop", args[0])
	if err != nil {
		return nil, err
	}
	if len(l.Elems) == 0 {
		return nil, errs.Indexf("cannot pop from empty list")
	}
	idx := len(l.Elems) - 1
	if len(args) == 2 {
		iv, ok := args[1].(value.Int)
		if !ok {
			return nil, errs.Typef("pop() index must be an integer")
		}
		idx = int(iv.Val)
	}
	if idx < 0 || idx >= len(l.Elems) {
		return nil, errs.Indexf("pop() index %d out of range", idx)
	}
	popped := l.Elems[idx]
	l.Elems = append(l.Elems[:idx], l.Elems[idx+1:]...)
	return popped, nil
}

func builtinClear(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("clear", args, 1); err != nil {
		return nil, err
	}
	l, err := asList("clear", args[0])
	if err != nil {
		return nil, err
	}
	l.Elems = nil
	return l, nil
}

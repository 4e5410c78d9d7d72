package builtins

import (
	"math/rand"

	"github.com/mochacinno-dev/tourmaline/errs"
	"github.com/mochacinno-dev/tourmaline/value"
)

// Library is a named bundle of host-provided callables, addressable only
// after `import <name>` (spec.md §4.6, §GLOSSARY "library sentinel").
type Library struct {
	Name    string
	Members map[string]Func
}

// Libraries is the process-wide library registry (spec.md §3), currently
// holding just "random" — the only bundle spec.md's fixed registry names.
// A future library would be added here the same way.
var Libraries = map[string]*Library{
	"random": {
		Name: "random",
		Members: map[string]Func{
			"randint":   randomRandint,
			"random":    randomRandom,
			"choice":    randomChoice,
			"shuffle":   randomShuffle,
			"uniform":   randomUniform,
			"randrange": randomRandrange,
		},
	},
}

func randomRandint(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("random.randint", args, 2); err != nil {
		return nil, err
	}
	a, ok1 := args[0].(value.Int)
	b, ok2 := args[1].(value.Int)
	if !ok1 || !ok2 {
		return nil, errs.Typef("random.randint expects two integers")
	}
	if b.Val < a.Val {
		return nil, errs.Arithf("random.randint: empty range [%d, %d]", a.Val, b.Val)
	}
	return value.Int{Val: a.Val + rand.Int63n(b.Val-a.Val+1)}, nil
}

func randomRandom(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("random.random", args, 0); err != nil {
		return nil, err
	}
	return value.Float{Val: rand.Float64()}, nil
}

func randomChoice(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("random.choice", args, 1); err != nil {
		return nil, err
	}
	l, err := asList("random.choice", args[0])
	if err != nil {
		return nil, err
	}
	if len(l.Elems) == 0 {
		return nil, errs.Indexf("random.choice: list is empty")
	}
	return l.Elems[rand.Intn(len(l.Elems))], nil
}

func randomShuffle(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("random.shuffle", args, 1); err != nil {
		return nil, err
	}
	l, err := asList("random.shuffle", args[0])
	if err != nil {
		return nil, err
	}
	rand.Shuffle(len(l.Elems), func(i, j int) {
		l.Elems[i], l.Elems[j] = l.Elems[j], l.Elems[i]
	})
	return l, nil
}

func randomUniform(rt *Runtime, args []value.Value) (value.Value, error) {
	if err := wantArgs("random.uniform", args, 2); err != nil {
		return nil, err
	}
	a, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	b, err := asFloat(args[1])
	if err != nil {
		return nil, err
	}
	return value.Float{Val: a + rand.Float64()*(b-a)}, nil
}

// randomRandrange mirrors Python's random.randrange: one argument is
// taken as an exclusive stop with an implicit start of 0; two or three
// arguments give an explicit start/stop/step, per
// original_source/Tourmaline.py's libraries['random']['randrange'].
func randomRandrange(rt *Runtime, args []value.Value) (value.Value, error) {
	if len(args) < 1 || len(args) > 3 {
		return nil, errs.Typef("random.randrange expects 1 to 3 arguments, got %d", len(args))
	}
	ints := make([]int64, len(args))
	for i, a := range args {
		n, ok := a.(value.Int)
		if !ok {
			return nil, errs.Typef("random.randrange expects integer arguments")
		}
		ints[i] = n.Val
	}
	start, stop, step := int64(0), ints[0], int64(1)
	if len(ints) >= 2 {
		start, stop = ints[0], ints[1]
	}
	if len(ints) == 3 {
		step = ints[2]
	}
	if step == 0 {
		return nil, errs.Arithf("random.randrange: step must not be zero")
	}
	var count int64
	if step > 0 {
		count = (stop - start + step - 1) / step
	} else {
		count = (start - stop + abs64(step) - 1) / abs64(step)
	}
	if count <= 0 {
		return nil, errs.Arithf("random.randrange: empty range")
	}
	return value.Int{Val: start + rand.Int63n(count)*step}, nil
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

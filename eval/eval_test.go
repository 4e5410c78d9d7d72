package eval

import (
	"testing"

	"github.com/mochacinno-dev/tourmaline/env"
	"github.com/mochacinno-dev/tourmaline/errs"
	"github.com/mochacinno-dev/tourmaline/lexer"
	"github.com/mochacinno-dev/tourmaline/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubInvoker is a minimal CallInvoker for exercising the resolver and
// evaluator without standing up a full interp.Interpreter.
type stubInvoker struct {
	callable map[string]bool
	calls    func(name string, args []value.Value) (value.Value, error)
	libs     map[string]map[string]bool
	libCalls func(lib, member string, args []value.Value) (value.Value, error)
}

func (s *stubInvoker) IsCallable(name string) bool { return s.callable[name] }
func (s *stubInvoker) Call(name string, args []value.Value) (value.Value, error) {
	return s.calls(name, args)
}
func (s *stubInvoker) IsLibraryMember(lib, member string) bool {
	return s.libs[lib] != nil && s.libs[lib][member]
}
func (s *stubInvoker) CallLibrary(lib, member string, args []value.Value) (value.Value, error) {
	return s.libCalls(lib, member, args)
}

func evalString(t *testing.T, src string, e *env.Environment, invoker CallInvoker) (value.Value, error) {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	require.NoError(t, err)
	return New(e, invoker).Eval(toks)
}

func TestArithmeticIsLeftAssociativeViaRightToLeftScan(t *testing.T) {
	v, err := evalString(t, "10 - 2 - 3", env.New(), nil)
	require.NoError(t, err)
	assert.Equal(t, value.Int{Val: 5}, v)
}

func TestDivisionAlwaysYieldsFloat(t *testing.T) {
	v, err := evalString(t, "4 / 2", env.New(), nil)
	require.NoError(t, err)
	assert.Equal(t, value.Float{Val: 2}, v)
}

func TestModuloPreservesFractionForFloatOperand(t *testing.T) {
	v, err := evalString(t, "7.5 % 2", env.New(), nil)
	require.NoError(t, err)
	assert.Equal(t, value.Float{Val: 1.5}, v)
}

func TestPrecedenceMulBeforeAdd(t *testing.T) {
	v, err := evalString(t, "2 + 3 * 4", env.New(), nil)
	require.NoError(t, err)
	assert.Equal(t, value.Int{Val: 14}, v)
}

func TestParenOverridesPrecedence(t *testing.T) {
	v, err := evalString(t, "(2 + 3) * 4", env.New(), nil)
	require.NoError(t, err)
	assert.Equal(t, value.Int{Val: 20}, v)
}

func TestOrShortCircuitsAndReturnsOperand(t *testing.T) {
	e := env.New()
	e.Set("x", value.Int{Val: 0})
	e.Set("y", value.Text{Val: "hi"})
	v, err := evalString(t, "x or y", e, nil)
	require.NoError(t, err)
	assert.Equal(t, value.Text{Val: "hi"}, v)
}

func TestAndShortCircuitsOnFalsyLeft(t *testing.T) {
	e := env.New()
	e.Set("x", value.Int{Val: 0})
	v, err := evalString(t, "x and undefined_name", e, nil)
	require.NoError(t, err)
	assert.Equal(t, value.Int{Val: 0}, v)
}

func TestListLiteralWithNestedExpressions(t *testing.T) {
	v, err := evalString(t, "[1, 2 + 3, [4]]", env.New(), nil)
	require.NoError(t, err)
	l, ok := v.(*value.List)
	require.True(t, ok)
	assert.Equal(t, value.Int{Val: 1}, l.Elems[0])
	assert.Equal(t, value.Int{Val: 5}, l.Elems[1])
	inner, ok := l.Elems[2].(*value.List)
	require.True(t, ok)
	assert.Equal(t, value.Int{Val: 4}, inner.Elems[0])
}

func TestMapLiteralCoercesKeyToText(t *testing.T) {
	v, err := evalString(t, `{"a": 1, "b": 2}`, env.New(), nil)
	require.NoError(t, err)
	m, ok := v.(*value.Map)
	require.True(t, ok)
	assert.Equal(t, value.Int{Val: 1}, m.Get("a"))
	assert.Equal(t, value.Int{Val: 2}, m.Get("b"))
}

func TestMemberAccessOnMapMissingKeyIsNil(t *testing.T) {
	e := env.New()
	m := value.NewMap()
	m.Set("name", value.Text{Val: "rin"})
	e.Set("person", m)
	v, err := evalString(t, "person.missing", e, nil)
	require.NoError(t, err)
	assert.Equal(t, value.NilValue, v)

	v, err = evalString(t, "person.name", e, nil)
	require.NoError(t, err)
	assert.Equal(t, value.Text{Val: "rin"}, v)
}

func TestIndexAccessOnListAndText(t *testing.T) {
	e := env.New()
	e.Set("nums", &value.List{Elems: []value.Value{value.Int{Val: 10}, value.Int{Val: 20}}})
	v, err := evalString(t, "nums[1]", e, nil)
	require.NoError(t, err)
	assert.Equal(t, value.Int{Val: 20}, v)

	e.Set("word", value.Text{Val: "hi"})
	v, err = evalString(t, "word[0]", e, nil)
	require.NoError(t, err)
	assert.Equal(t, value.Text{Val: "h"}, v)
}

func TestIndexOutOfRangeIsIndexError(t *testing.T) {
	e := env.New()
	e.Set("nums", &value.List{Elems: []value.Value{value.Int{Val: 1}}})
	_, err := evalString(t, "nums[5]", e, nil)
	require.Error(t, err)
	var ee *errs.Error
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, errs.Index, ee.Kind)
}

func TestCallResolutionSplicesScalarResult(t *testing.T) {
	inv := &stubInvoker{
		callable: map[string]bool{"double": true},
		calls: func(name string, args []value.Value) (value.Value, error) {
			n := args[0].(value.Int)
			return value.Int{Val: n.Val * 2}, nil
		},
	}
	v, err := evalString(t, "double(3) + 1", env.New(), inv)
	require.NoError(t, err)
	assert.Equal(t, value.Int{Val: 7}, v)
}

func TestCallResolutionSplicesContainerResultViaRefTable(t *testing.T) {
	want := &value.List{Elems: []value.Value{value.Int{Val: 1}, value.Int{Val: 2}}}
	inv := &stubInvoker{
		callable: map[string]bool{"makelist": true},
		calls: func(name string, args []value.Value) (value.Value, error) {
			return want, nil
		},
	}
	v, err := evalString(t, "makelist()[0]", env.New(), inv)
	require.NoError(t, err)
	assert.Equal(t, value.Int{Val: 1}, v)
}

func TestLibraryCallRequiresImportSentinel(t *testing.T) {
	e := env.New()
	inv := &stubInvoker{
		libs: map[string]map[string]bool{"random": {"randint": true}},
		libCalls: func(lib, member string, args []value.Value) (value.Value, error) {
			return value.Int{Val: 4}, nil
		},
	}
	_, err := evalString(t, "random.randint(1, 10)", e, inv)
	require.Error(t, err, "unimported library name should not resolve as a call")

	e.Set("random", value.Text{Val: "random"})
	v, err := evalString(t, "random.randint(1, 10)", e, inv)
	require.NoError(t, err)
	assert.Equal(t, value.Int{Val: 4}, v)
}

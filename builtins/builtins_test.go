package builtins

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mochacinno-dev/tourmaline/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRuntime() (*Runtime, *bytes.Buffer) {
	var out bytes.Buffer
	return NewRuntime(&out, strings.NewReader("")), &out
}

func TestPrintJoinsWithSpaceAndNewline(t *testing.T) {
	rt, out := testRuntime()
	_, err := Global["print"](rt, []value.Value{value.Text{Val: "a"}, value.Int{Val: 1}})
	require.NoError(t, err)
	assert.Equal(t, "a 1\n", out.String())
}

func TestIntConvertsDecimalText(t *testing.T) {
	rt, _ := testRuntime()
	v, err := Global["int"](rt, []value.Value{value.Text{Val: "3.9"}})
	require.NoError(t, err)
	assert.Equal(t, value.Int{Val: 3}, v)
}

func TestIntRejectsGarbageText(t *testing.T) {
	rt, _ := testRuntime()
	_, err := Global["int"](rt, []value.Value{value.Text{Val: "nope"}})
	assert.Error(t, err)
}

func TestAppendMutatesAndReturnsList(t *testing.T) {
	rt, _ := testRuntime()
	l := &value.List{}
	got, err := Global["append"](rt, []value.Value{l, value.Int{Val: 7}})
	require.NoError(t, err)
	assert.Same(t, l, got)
	assert.Len(t, l.Elems, 1)
	assert.Equal(t, value.Int{Val: 7}, l.Elems[len(l.Elems)-1])
}

func TestPopReturnsRemovedElement(t *testing.T) {
	rt, _ := testRuntime()
	l := &value.List{Elems: []value.Value{value.Int{Val: 1}, value.Int{Val: 2}, value.Int{Val: 3}}}
	got, err := Global["pop"](rt, []value.Value{l})
	require.NoError(t, err)
	assert.Equal(t, value.Int{Val: 3}, got)
	assert.Len(t, l.Elems, 2)
}

func TestPopFromEmptyListErrors(t *testing.T) {
	rt, _ := testRuntime()
	_, err := Global["pop"](rt, []value.Value{&value.List{}})
	assert.Error(t, err)
}

func TestClearEmptiesList(t *testing.T) {
	rt, _ := testRuntime()
	l := &value.List{Elems: []value.Value{value.Int{Val: 1}}}
	got, err := Global["clear"](rt, []value.Value{l})
	require.NoError(t, err)
	assert.Same(t, l, got)
	assert.Empty(t, l.Elems)
}

func TestPowWithIntArgsReturnsInt(t *testing.T) {
	rt, _ := testRuntime()
	v, err := Global["pow"](rt, []value.Value{value.Int{Val: 2}, value.Int{Val: 5}})
	require.NoError(t, err)
	assert.Equal(t, value.Int{Val: 32}, v)
}

func TestPowWithNegativeIntExponentReturnsFloat(t *testing.T) {
	rt, _ := testRuntime()
	v, err := Global["pow"](rt, []value.Value{value.Int{Val: 2}, value.Int{Val: -1}})
	require.NoError(t, err)
	assert.Equal(t, value.Float{Val: 0.5}, v)
}

func TestRandomRandintSingleValueRange(t *testing.T) {
	rt, _ := testRuntime()
	v, err := Libraries["random"].Members["randint"](rt, []value.Value{value.Int{Val: 1}, value.Int{Val: 1}})
	require.NoError(t, err)
	assert.Equal(t, value.Int{Val: 1}, v)
}

func TestRandomRandrangeSingleArg(t *testing.T) {
	rt, _ := testRuntime()
	v, err := Libraries["random"].Members["randrange"](rt, []value.Value{value.Int{Val: 1}})
	require.NoError(t, err)
	n, ok := v.(value.Int)
	require.True(t, ok)
	assert.Equal(t, int64(0), n.Val)
}

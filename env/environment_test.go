package env

import (
	"testing"

	"github.com/mochacinno-dev/tourmaline/value"
	"github.com/stretchr/testify/assert"
)

func TestSetGet(t *testing.T) {
	e := New()
	_, ok := e.Get("x")
	assert.False(t, ok)

	e.Set("x", value.Int{Val: 5})
	v, ok := e.Get("x")
	assert.True(t, ok)
	assert.Equal(t, value.Int{Val: 5}, v)
}

func TestRedeclarationReplaces(t *testing.T) {
	e := New()
	e.Set("x", value.Int{Val: 1})
	e.Set("x", value.Text{Val: "hi"})
	v, _ := e.Get("x")
	assert.Equal(t, value.Text{Val: "hi"}, v)
}

func TestFreshWithParamsIsolated(t *testing.T) {
	outer := New()
	outer.Set("a", value.Int{Val: 1})
	outer.Set("b", value.Int{Val: 2})

	frame := FreshWithParams([]string{"x", "y"}, []value.Value{value.Int{Val: 10}, value.Int{Val: 20}})

	_, ok := frame.Get("a")
	assert.False(t, ok, "fresh call frame must not see the caller's bindings")

	x, ok := frame.Get("x")
	assert.True(t, ok)
	assert.Equal(t, value.Int{Val: 10}, x)
}

func TestFreshWithParamsMissingArgsAreNil(t *testing.T) {
	frame := FreshWithParams([]string{"x", "y"}, []value.Value{value.Int{Val: 10}})
	y, ok := frame.Get("y")
	assert.True(t, ok)
	assert.Equal(t, value.NilValue, y)
}

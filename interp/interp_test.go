package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mochacinno-dev/tourmaline/builtins"
	"github.com/mochacinno-dev/tourmaline/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInterp() (*Interpreter, *bytes.Buffer) {
	var out bytes.Buffer
	rt := builtins.NewRuntime(&out, strings.NewReader(""))
	return New(rt), &out
}

func TestLetAndPrint(t *testing.T) {
	in, out := newTestInterp()
	require.NoError(t, in.Run("let x = 2 + 3\nprint(x)"))
	assert.Equal(t, "5\n", out.String())
}

func TestCompoundAssignment(t *testing.T) {
	in, _ := newTestInterp()
	require.NoError(t, in.Run("let x = 10\nx -= 3\nx *= 2"))
	v, ok := in.Env.Get("x")
	require.True(t, ok)
	assert.Equal(t, value.Int{Val: 14}, v)
}

func TestAssignmentToUndeclaredNameFails(t *testing.T) {
	in, _ := newTestInterp()
	err := in.Run("x = 1")
	assert.Error(t, err)
}

func TestIfElifElse(t *testing.T) {
	in, out := newTestInterp()
	src := `
let x = 2
if x == 1
    print("one")
elif x == 2
    print("two")
else
    print("other")
end
`
	require.NoError(t, in.Run(src))
	assert.Equal(t, "two\n", out.String())
}

func TestWhileLoopStopsOnReturn(t *testing.T) {
	in, out := newTestInterp()
	src := `
function countTo(n)
    let i = 0
    while i < n
        print(i)
        i += 1
        if i == 2
            return i
        end
    end
    return -1
end
print(countTo(5))
`
	require.NoError(t, in.Run(src))
	assert.Equal(t, "0\n1\n2\n", out.String())
}

func TestForLoopOverListAndText(t *testing.T) {
	in, out := newTestInterp()
	require.NoError(t, in.Run(`
for x in [1, 2, 3]
    print(x)
end
`))
	assert.Equal(t, "1\n2\n3\n", out.String())

	in2, out2 := newTestInterp()
	require.NoError(t, in2.Run(`
for c in "ab"
    print(c)
end
`))
	assert.Equal(t, "a\nb\n", out2.String())
}

func TestFunctionCallEnvironmentIsolation(t *testing.T) {
	in, _ := newTestInterp()
	src := `
let shared = 100
function clobber(shared)
    shared = shared + 1
    return shared
end
let result = clobber(shared)
`
	require.NoError(t, in.Run(src))
	shared, _ := in.Env.Get("shared")
	assert.Equal(t, value.Int{Val: 100}, shared, "caller's binding must survive the callee's parameter of the same name")
	result, _ := in.Env.Get("result")
	assert.Equal(t, value.Int{Val: 101}, result)
}

func TestFunctionMutatesSharedListByIdentity(t *testing.T) {
	in, _ := newTestInterp()
	src := `
let nums = [1, 2]
function addOne(l)
    append(l, 1)
end
addOne(nums)
`
	require.NoError(t, in.Run(src))
	nums, _ := in.Env.Get("nums")
	l := nums.(*value.List)
	assert.Len(t, l.Elems, 3)
}

func TestTryExceptBindsErrorText(t *testing.T) {
	in, out := newTestInterp()
	src := `
try
    let nums = [1]
    let y = nums[5]
except err
    print("caught")
    print(err)
end
`
	require.NoError(t, in.Run(src))
	assert.Equal(t, "caught\nIndexError: list index out of range: 5\n", out.String())
}

func TestImportAndLibraryCall(t *testing.T) {
	in, _ := newTestInterp()
	require.NoError(t, in.Run(`
import random
let n = random.randint(5, 5)
`))
	n, ok := in.Env.Get("n")
	require.True(t, ok)
	assert.Equal(t, value.Int{Val: 5}, n)
}

func TestLibraryCallWithoutImportFails(t *testing.T) {
	in, _ := newTestInterp()
	err := in.Run("let n = random.randint(5, 5)")
	assert.Error(t, err)
}

func TestBareExpressionSwallowsError(t *testing.T) {
	in, out := newTestInterp()
	require.NoError(t, in.Run(`undefined_name
print("still running")`))
	assert.Equal(t, "still running\n", out.String())
}

func TestNestedFunctionCallsThroughExpressions(t *testing.T) {
	in, out := newTestInterp()
	src := `
function square(n)
    return n * n
end
function sumSquares(a, b)
    return square(a) + square(b)
end
print(sumSquares(2, 3))
`
	require.NoError(t, in.Run(src))
	assert.Equal(t, "13\n", out.String())
}

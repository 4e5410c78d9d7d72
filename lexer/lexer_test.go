package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type tokenizeCase struct {
	name     string
	input    string
	expected []Token
}

func TestTokenize(t *testing.T) {
	cases := []tokenizeCase{
		{
			name:  "arithmetic",
			input: "1 + 2 * 3",
			expected: []Token{
				tok(Int, "1"), tok(Plus, "+"), tok(Int, "2"), tok(Star, "*"), tok(Int, "3"),
			},
		},
		{
			name:  "string literal preserved with quotes",
			input: `"a" + "b"`,
			expected: []Token{
				tok(String, `"a"`), tok(Plus, "+"), tok(String, `"b"`),
			},
		},
		{
			name:  "two-char operators",
			input: "x == y != z <= w >= v += 1",
			expected: []Token{
				tok(Word, "x"), tok(Eq, "=="), tok(Word, "y"), tok(Neq, "!="),
				tok(Word, "z"), tok(Le, "<="), tok(Word, "w"), tok(Ge, ">="),
				tok(Word, "v"), tok(PlusAssign, "+="), tok(Int, "1"),
			},
		},
		{
			name:  "float literal absorbs dot",
			input: "3.14",
			expected: []Token{
				tok(Float, "3.14"),
			},
		},
		{
			name:  "member access dot is its own token",
			input: "lib.fn",
			expected: []Token{
				tok(Word, "lib"), tok(Dot, "."), tok(Word, "fn"),
			},
		},
		{
			name:  "structural punctuation always terminates",
			input: "[1,2]",
			expected: []Token{
				tok(LBracket, "["), tok(Int, "1"), tok(Comma, ","), tok(Int, "2"), tok(RBracket, "]"),
			},
		},
		{
			name:  "map literal",
			input: `{"a": 1, "b": 2}`,
			expected: []Token{
				tok(LBrace, "{"), tok(String, `"a"`), tok(Colon, ":"), tok(Int, "1"),
				tok(Comma, ","), tok(String, `"b"`), tok(Colon, ":"), tok(Int, "2"), tok(RBrace, "}"),
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Tokenize(c.input)
			assert.NoError(t, err)
			assert.Equal(t, c.expected, got)
		})
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := Tokenize(`let s = "unterminated`)
	assert.Error(t, err)
}

func TestTokenizeEscapedQuoteInsideString(t *testing.T) {
	got, err := Tokenize(`"a\"b"`)
	assert.NoError(t, err)
	assert.Equal(t, []Token{tok(String, `"a\"b"`)}, got)
}

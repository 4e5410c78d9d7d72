package eval

import (
	"fmt"
	"strconv"

	"github.com/mochacinno-dev/tourmaline/errs"
	"github.com/mochacinno-dev/tourmaline/lexer"
	"github.com/mochacinno-dev/tourmaline/value"
)

// resolveCalls is the call resolver (spec.md §4.3): a single left-to-right
// pass over tokens that finds `name(...)` and `lib.name(...)` forms,
// evaluates their arguments (recursing into Eval, so nested calls resolve
// themselves first), invokes the call, and splices the result back into
// the token stream as a literal. The operator evaluator that runs after
// this never itself performs a call.
func (ev *Evaluator) resolveCalls(tokens []lexer.Token) ([]lexer.Token, error) {
	out := make([]lexer.Token, 0, len(tokens))
	i := 0
	for i < len(tokens) {
		t := tokens[i]

		// Case 1: `[` or `{` opens a literal — copy the whole
		// bracket-balanced region unchanged. Calls nested inside a literal
		// are resolved later, when parseList/parseMap evaluates that
		// element as its own expression.
		if t.Type == lexer.LBracket || t.Type == lexer.LBrace {
			end := findMatch(tokens, i)
			if end < 0 {
				return nil, errs.Parsef("unmatched %q", t.Text)
			}
			out = append(out, tokens[i:end+1]...)
			i = end + 1
			continue
		}

		// Case 2: `name . name (` where name is an imported library and
		// the second name is one of its members.
		if t.Type == lexer.Word && i+3 < len(tokens) &&
			tokens[i+1].Type == lexer.Dot && tokens[i+2].Type == lexer.Word && tokens[i+3].Type == lexer.LParen &&
			ev.isLibrarySentinel(t.Text) && ev.Invoker.IsLibraryMember(t.Text, tokens[i+2].Text) {

			lib, member := t.Text, tokens[i+2].Text
			parenStart := i + 3
			end := findMatch(tokens, parenStart)
			if end < 0 {
				return nil, errs.Parsef("unmatched '(' in call to %s.%s", lib, member)
			}
			args, err := ev.evalArgs(tokens[parenStart+1 : end])
			if err != nil {
				return nil, err
			}
			result, err := ev.Invoker.CallLibrary(lib, member, args)
			if err != nil {
				return nil, err
			}
			out = append(out, ev.spliceResult(result))
			i = end + 1
			continue
		}

		// Case 3: `name (` where name is a known user function or builtin.
		if t.Type == lexer.Word && i+1 < len(tokens) && tokens[i+1].Type == lexer.LParen &&
			ev.Invoker != nil && ev.Invoker.IsCallable(t.Text) {

			parenStart := i + 1
			end := findMatch(tokens, parenStart)
			if end < 0 {
				return nil, errs.Parsef("unmatched '(' in call to %s", t.Text)
			}
			args, err := ev.evalArgs(tokens[parenStart+1 : end])
			if err != nil {
				return nil, err
			}
			result, err := ev.Invoker.Call(t.Text, args)
			if err != nil {
				return nil, err
			}
			out = append(out, ev.spliceResult(result))
			i = end + 1
			continue
		}

		out = append(out, t)
		i++
	}
	return out, nil
}

// evalArgs splits a call's parenthesized interior on top-level commas and
// evaluates each argument independently.
func (ev *Evaluator) evalArgs(inner []lexer.Token) ([]value.Value, error) {
	if len(inner) == 0 {
		return nil, nil
	}
	parts := splitTopLevel(inner)
	args := make([]value.Value, 0, len(parts))
	for _, part := range parts {
		if len(part) == 0 {
			return nil, errs.Parsef("empty argument in call")
		}
		v, err := ev.Eval(part)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

// isLibrarySentinel reports whether name is bound, in the current
// environment, to the sentinel text value an `import` statement binds —
// a Text value equal to the library's own name (spec.md §GLOSSARY
// "library sentinel"). Syntax alone (`name.member(`) is not enough; the
// library must actually have been imported.
func (ev *Evaluator) isLibrarySentinel(name string) bool {
	v, ok := ev.Env.Get(name)
	if !ok {
		return false
	}
	text, ok := v.(value.Text)
	return ok && text.Val == name
}

// spliceResult turns a call's result into the token that replaces the
// call expression in the stream. Scalars become literal tokens directly;
// containers and function values are too rich to round-trip through a
// token's text, so they're parked in the evaluator's ref table behind an
// opaque identifier instead (spec.md §9).
func (ev *Evaluator) spliceResult(v value.Value) lexer.Token {
	switch r := v.(type) {
	case value.Int:
		return lexer.Token{Type: lexer.Int, Text: strconv.FormatInt(r.Val, 10)}
	case value.Float:
		return lexer.Token{Type: lexer.Float, Text: strconv.FormatFloat(r.Val, 'f', -1, 64)}
	case value.Bool:
		if r.Val {
			return lexer.Token{Type: lexer.Word, Text: "true"}
		}
		return lexer.Token{Type: lexer.Word, Text: "false"}
	case value.Nil:
		return lexer.Token{Type: lexer.Word, Text: "nil"}
	case value.Text:
		return lexer.Token{Type: lexer.String, Text: `"` + r.Val + `"`}
	default:
		key := fmt.Sprintf("\x00ref%d", ev.refSeq)
		ev.refSeq++
		ev.refs[key] = v
		return lexer.Token{Type: lexer.Word, Text: key}
	}
}

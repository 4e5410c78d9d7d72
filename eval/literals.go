package eval

import (
	"strconv"
	"strings"

	"github.com/mochacinno-dev/tourmaline/errs"
	"github.com/mochacinno-dev/tourmaline/lexer"
	"github.com/mochacinno-dev/tourmaline/value"
)

// parseList builds a *value.List from a `[` ... `]` token slice, per
// spec.md §4.2: elements are split on commas at bracket depth 0 and each
// element is evaluated as its own expression (so a call or a nested
// literal inside a list element works the same as anywhere else).
func (ev *Evaluator) parseList(tokens []lexer.Token) (value.Value, error) {
	end := findMatch(tokens, 0)
	if end != len(tokens)-1 {
		return nil, errs.Parsef("malformed list literal")
	}
	inner := tokens[1:end]
	if len(inner) == 0 {
		return &value.List{}, nil
	}
	parts := splitTopLevel(inner)
	elems := make([]value.Value, 0, len(parts))
	for _, part := range parts {
		if len(part) == 0 {
			return nil, errs.Parsef("empty element in list literal")
		}
		v, err := ev.Eval(part)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return &value.List{Elems: elems}, nil
}

// parseMap builds a *value.Map from a `{` ... `}` token slice. Each key
// slice is evaluated like any expression and its result coerced to its
// textual representation (spec.md §4.2) — the key expression need not
// itself be a string literal. Insertion order is preserved via
// value.Map.Keys.
func (ev *Evaluator) parseMap(tokens []lexer.Token) (value.Value, error) {
	end := findMatch(tokens, 0)
	if end != len(tokens)-1 {
		return nil, errs.Parsef("malformed map literal")
	}
	inner := tokens[1:end]
	m := value.NewMap()
	if len(inner) == 0 {
		return m, nil
	}
	for _, part := range splitTopLevel(inner) {
		keyToks, valToks, ok := splitFirstAtDepth0(part, lexer.Colon)
		if !ok {
			return nil, errs.Parsef("map entry missing ':'")
		}
		keyVal, err := ev.Eval(keyToks)
		if err != nil {
			return nil, err
		}
		val, err := ev.Eval(valToks)
		if err != nil {
			return nil, err
		}
		// The key slice's result is coerced to its textual representation
		// rather than required to already be text.
		m.Set(keyVal.String(), val)
	}
	return m, nil
}

// splitFirstAtDepth0 splits tokens on the first occurrence of sep sitting
// at bracket depth 0.
func splitFirstAtDepth0(tokens []lexer.Token, sep lexer.TokenType) (left, right []lexer.Token, ok bool) {
	depth := 0
	for i, t := range tokens {
		depth += depthDelta(t)
		if depth == 0 && t.Type == sep {
			return tokens[:i], tokens[i+1:], true
		}
	}
	return nil, nil, false
}

// parseSingle turns one token into a value, per spec.md §4.4 step 2 and
// the single-token rules in §4.1/§4.2. Identifiers are looked up in the
// environment first (which is also where an import's library sentinel
// lives), then in the user function and builtin tables, either of which
// yields a value.CallableName so it can be passed around as data, per
// spec.md's "function values are names".
func (ev *Evaluator) parseSingle(t lexer.Token) (value.Value, error) {
	if v, ok := ev.refs[t.Text]; ok {
		return v, nil
	}
	switch t.Type {
	case lexer.String:
		return value.Text{Val: unescapeString(t.Text)}, nil
	case lexer.Int:
		n, err := strconv.ParseInt(t.Text, 10, 64)
		if err != nil {
			return nil, errs.Parsef("malformed integer literal: %s", t.Text)
		}
		return value.Int{Val: n}, nil
	case lexer.Float:
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, errs.Parsef("malformed float literal: %s", t.Text)
		}
		return value.Float{Val: f}, nil
	case lexer.Word:
		switch t.Text {
		case "true":
			return value.Bool{Val: true}, nil
		case "false":
			return value.Bool{Val: false}, nil
		case "nil":
			return value.NilValue, nil
		}
		if v, ok := ev.Env.Get(t.Text); ok {
			return v, nil
		}
		if ev.Invoker != nil && ev.Invoker.IsCallable(t.Text) {
			return value.CallableName{Name: t.Text}, nil
		}
		return nil, errs.Namef("undefined identifier: %s", t.Text)
	default:
		return nil, errs.Parsef("unexpected token %q in expression", t.Text)
	}
}

// unescapeString strips a string literal's surrounding quote characters
// and resolves the two escapes Tourmaline recognizes.
func unescapeString(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	s := raw[1 : len(raw)-1]
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\t`, "\t")
	return s
}

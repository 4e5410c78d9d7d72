package interp

import (
	"strings"

	"github.com/mochacinno-dev/tourmaline/env"
	"github.com/mochacinno-dev/tourmaline/errs"
	"github.com/mochacinno-dev/tourmaline/lexer"
	"github.com/mochacinno-dev/tourmaline/value"
)

// callUser implements the "User-function call" mechanics of spec.md
// §4.5: extract parameters from the header (fresh every call — there is
// no pre-parsed signature), snapshot the environment, replace it with a
// fresh mapping of just the parameter bindings, run the body, capture
// the return value, and restore the snapshot regardless of how the body
// finished.
func (in *Interpreter) callUser(name string, args []value.Value) (value.Value, error) {
	full, ok := in.Functions[name]
	if !ok {
		return nil, errs.Namef("function '%s' not defined", name)
	}
	header, err := lexer.Tokenize(strings.TrimSpace(full[0]))
	if err != nil {
		return nil, err
	}
	params, err := extractParams(header)
	if err != nil {
		return nil, err
	}
	body := full[1 : len(full)-1]

	saved := in.Env.Snapshot()
	in.Env = env.FreshWithParams(params, args)
	in.hasReturned = false
	in.returnValue = value.NilValue

	execErr := in.Exec(body)

	result := in.returnValue
	in.Env = saved
	in.hasReturned = false
	in.returnValue = value.NilValue

	if execErr != nil {
		return nil, execErr
	}
	return result, nil
}

// extractParams reads the comma-separated parameter names out of a
// `function name(a, b, c)` header line, re-derived fresh on every call
// (spec.md §3: "there is no pre-parsed signature").
func extractParams(header []lexer.Token) ([]string, error) {
	open := -1
	for i, t := range header {
		if t.Type == lexer.LParen {
			open = i
			break
		}
	}
	if open < 0 {
		return nil, errs.Parsef("function header missing '('")
	}
	var params []string
	i := open + 1
	for i < len(header) && header[i].Type != lexer.RParen {
		if header[i].Type != lexer.Comma {
			params = append(params, header[i].Text)
		}
		i++
	}
	return params, nil
}

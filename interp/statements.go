package interp

import (
	"strings"

	"github.com/mochacinno-dev/tourmaline/builtins"
	"github.com/mochacinno-dev/tourmaline/errs"
	"github.com/mochacinno-dev/tourmaline/eval"
	"github.com/mochacinno-dev/tourmaline/lexer"
	"github.com/mochacinno-dev/tourmaline/value"
)

// Exec is the statement executor (spec.md §4.5): it takes source already
// split into lines, skips blanks and comments, tokenizes each non-trivial line,
// and dispatches on its leading keyword. Block-structured statements
// collect their body lines by depth-counting and recurse into Exec.
func (in *Interpreter) Exec(lines []string) error {
	i := 0
	for i < len(lines) {
		if in.hasReturned {
			return nil
		}
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			i++
			continue
		}
		toks, err := lexer.Tokenize(trimmed)
		if err != nil {
			return err
		}
		if len(toks) == 0 {
			i++
			continue
		}
		head := toks[0]

		switch {
		case head.Type == lexer.Word && head.Text == "import":
			if err := in.execImport(toks); err != nil {
				return err
			}
			i++

		case head.Type == lexer.Word && head.Text == "let":
			if err := in.execLet(toks); err != nil {
				return err
			}
			i++

		case head.Type == lexer.Word && head.Text == "function":
			name, err := funcName(toks)
			if err != nil {
				return err
			}
			body, next, err := collectBlock(lines, i+1)
			if err != nil {
				return err
			}
			full := make([]string, 0, len(body)+2)
			full = append(full, lines[i])
			full = append(full, body...)
			full = append(full, "end")
			in.Functions[name] = full
			i = next

		case head.Type == lexer.Word && head.Text == "struct":
			if len(toks) < 2 {
				return errs.Parsef("struct declaration missing a name")
			}
			fields, next, err := collectStructBody(lines, i+1)
			if err != nil {
				return err
			}
			in.Structs[toks[1].Text] = fields
			i = next

		case head.Type == lexer.Word && head.Text == "try":
			tryBody, exceptVar, exceptBody, next, err := collectTryChain(lines, i+1)
			if err != nil {
				return err
			}
			if execErr := in.Exec(tryBody); execErr != nil {
				if exceptVar != "" {
					in.Env.Set(exceptVar, value.Text{Val: execErr.Error()})
				}
				if err := in.Exec(exceptBody); err != nil {
					return err
				}
			}
			i = next

		case head.Type == lexer.Word && head.Text == "if":
			if len(toks) < 2 {
				return errs.Parsef("if without a condition")
			}
			cond := toks[1:]
			ifBody, elifs, elseBody, next, err := collectIfChain(lines, i+1)
			if err != nil {
				return err
			}
			if err := in.execIfChain(cond, ifBody, elifs, elseBody); err != nil {
				return err
			}
			i = next

		case head.Type == lexer.Word && head.Text == "while":
			if len(toks) < 2 {
				return errs.Parsef("while without a condition")
			}
			cond := toks[1:]
			body, next, err := collectBlock(lines, i+1)
			if err != nil {
				return err
			}
			if err := in.execWhile(cond, body); err != nil {
				return err
			}
			i = next

		case head.Type == lexer.Word && head.Text == "for":
			body, next, err := collectBlock(lines, i+1)
			if err != nil {
				return err
			}
			if err := in.execFor(toks, body); err != nil {
				return err
			}
			i = next

		case head.Type == lexer.Word && head.Text == "return":
			if len(toks) > 1 {
				v, err := in.eval(toks[1:])
				if err != nil {
					return err
				}
				in.returnValue = v
			} else {
				in.returnValue = value.NilValue
			}
			in.hasReturned = true
			return nil

		case len(toks) >= 2 && isAssignOp(toks[1].Type):
			if err := in.execAssign(toks); err != nil {
				return err
			}
			i++

		default:
			// Fallback "bare expression" path — errors are silently
			// discarded so a line that only calls a function for its side
			// effect doesn't abort execution (spec.md §7).
			in.eval(toks)
			i++
		}
	}
	return nil
}

func isAssignOp(t lexer.TokenType) bool {
	switch t {
	case lexer.Assign, lexer.PlusAssign, lexer.MinusAssign, lexer.StarAssign, lexer.SlashAssign:
		return true
	}
	return false
}

func (in *Interpreter) execImport(toks []lexer.Token) error {
	if len(toks) < 2 {
		return errs.Parsef("invalid import statement")
	}
	name := toks[1].Text
	if _, ok := builtins.Libraries[name]; !ok {
		return errs.Namef("library '%s' not found", name)
	}
	in.Env.Set(name, value.Text{Val: name})
	return nil
}

func (in *Interpreter) execLet(toks []lexer.Token) error {
	if len(toks) < 4 || toks[1].Type != lexer.Word || toks[2].Type != lexer.Assign {
		return errs.Parsef("invalid variable declaration")
	}
	v, err := in.eval(toks[3:])
	if err != nil {
		return err
	}
	in.Env.Set(toks[1].Text, v)
	return nil
}

func (in *Interpreter) execAssign(toks []lexer.Token) error {
	name := toks[0].Text
	if !in.Env.Has(name) {
		return errs.Namef("variable '%s' not declared", name)
	}
	rhs, err := in.eval(toks[2:])
	if err != nil {
		return err
	}
	op := toks[1].Type
	if op == lexer.Assign {
		in.Env.Set(name, rhs)
		return nil
	}
	cur, _ := in.Env.Get(name)
	var arithOp lexer.TokenType
	switch op {
	case lexer.PlusAssign:
		arithOp = lexer.Plus
	case lexer.MinusAssign:
		arithOp = lexer.Minus
	case lexer.StarAssign:
		arithOp = lexer.Star
	case lexer.SlashAssign:
		arithOp = lexer.Slash
	}
	next, err := eval.ApplyArith(arithOp, cur, rhs)
	if err != nil {
		return err
	}
	in.Env.Set(name, next)
	return nil
}

func (in *Interpreter) execIfChain(cond []lexer.Token, ifBody []string, elifs []elifBranch, elseBody []string) error {
	v, err := in.eval(cond)
	if err != nil {
		return err
	}
	if v.Truthy() {
		return in.Exec(ifBody)
	}
	for _, branch := range elifs {
		bv, err := in.eval(branch.Cond)
		if err != nil {
			return err
		}
		if bv.Truthy() {
			return in.Exec(branch.Body)
		}
	}
	if elseBody != nil {
		return in.Exec(elseBody)
	}
	return nil
}

func (in *Interpreter) execWhile(cond []lexer.Token, body []string) error {
	for {
		v, err := in.eval(cond)
		if err != nil {
			return err
		}
		if !v.Truthy() {
			return nil
		}
		if err := in.Exec(body); err != nil {
			return err
		}
		if in.hasReturned {
			return nil
		}
	}
}

func (in *Interpreter) execFor(toks []lexer.Token, body []string) error {
	if len(toks) < 4 || toks[1].Type != lexer.Word || !(toks[2].Type == lexer.Word && toks[2].Text == "in") {
		return errs.Parsef("invalid for loop: expected 'for <name> in <expr>'")
	}
	varName := toks[1].Text
	iterable, err := in.eval(toks[3:])
	if err != nil {
		return err
	}
	items, err := iterationItems(iterable)
	if err != nil {
		return err
	}
	for _, item := range items {
		if in.hasReturned {
			return nil
		}
		in.Env.Set(varName, item)
		if err := in.Exec(body); err != nil {
			return err
		}
	}
	return nil
}

// iterationItems enumerates the values a `for ... in ...` loop walks:
// list elements in order, map keys in the map's own insertion order (the
// iteration order is otherwise unspecified, per spec.md §4.5), or a
// text's characters.
func iterationItems(v value.Value) ([]value.Value, error) {
	switch it := v.(type) {
	case *value.List:
		return it.Elems, nil
	case *value.Map:
		items := make([]value.Value, len(it.Keys))
		for i, k := range it.Keys {
			items[i] = value.Text{Val: k}
		}
		return items, nil
	case value.Text:
		items := make([]value.Value, len(it.Val))
		for i := 0; i < len(it.Val); i++ {
			items[i] = value.Text{Val: string(it.Val[i])}
		}
		return items, nil
	default:
		return nil, errs.Typef("cannot iterate over %s", v.Kind())
	}
}

func funcName(toks []lexer.Token) (string, error) {
	if len(toks) < 2 || toks[1].Type != lexer.Word {
		return "", errs.Parsef("function declaration missing a name")
	}
	return toks[1].Text, nil
}

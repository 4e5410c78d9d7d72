package eval

import (
	"math"

	"github.com/mochacinno-dev/tourmaline/errs"
	"github.com/mochacinno-dev/tourmaline/lexer"
	"github.com/mochacinno-dev/tourmaline/value"
)

// walk evaluates an already call-resolved token slice per spec.md §4.4.
// It is only ever called with call-free input: resolveCalls has already
// replaced every call with a literal or a ref token.
func (ev *Evaluator) walk(tokens []lexer.Token) (value.Value, error) {
	if len(tokens) == 0 {
		return nil, errs.Parsef("empty expression")
	}

	if tokens[0].Type == lexer.LBracket {
		return ev.parseList(tokens)
	}
	if tokens[0].Type == lexer.LBrace {
		return ev.parseMap(tokens)
	}
	if len(tokens) == 1 {
		return ev.parseSingle(tokens[0])
	}
	if tokens[0].Type == lexer.LParen && tokens[len(tokens)-1].Type == lexer.RParen && findMatch(tokens, 0) == len(tokens)-1 {
		return ev.walk(tokens[1 : len(tokens)-1])
	}

	if i := scanRTL(tokens, isWord("or")); i >= 0 {
		return ev.evalOr(tokens[:i], tokens[i+1:])
	}
	if i := scanRTL(tokens, isWord("and")); i >= 0 {
		return ev.evalAnd(tokens[:i], tokens[i+1:])
	}
	if i := scanRTL(tokens, isComparison); i >= 0 {
		return ev.evalComparison(tokens[:i], tokens[i].Type, tokens[i+1:])
	}
	if i := scanRTL(tokens, isAddSub); i >= 0 {
		return ev.evalArith(tokens[:i], tokens[i].Type, tokens[i+1:])
	}
	if i := scanRTL(tokens, isMulDivMod); i >= 0 {
		return ev.evalArith(tokens[:i], tokens[i].Type, tokens[i+1:])
	}
	if i := scanRTL(tokens, isDot); i >= 0 {
		return ev.evalMember(tokens[:i], tokens[i+1:])
	}
	if i := scanRTL(tokens, isLBracket); i >= 0 {
		end := findMatch(tokens, i)
		if end != len(tokens)-1 {
			return nil, errs.Parsef("malformed index expression")
		}
		return ev.evalIndex(tokens[:i], tokens[i+1:end])
	}

	return nil, errs.Parsef("cannot evaluate expression: %s", joinText(tokens))
}

// scanRTL returns the rightmost index, at bracket depth 0 and never index
// 0, where match reports true — or -1 if there is none. This is the
// right-to-left precedence scan spec.md §4.4 mandates at every level; its
// rightmost-wins tie-break is what makes left-associative operators fall
// out of a right-to-left scan (the right side ends up a single operand).
func scanRTL(tokens []lexer.Token, match func(lexer.Token) bool) int {
	depth := 0
	depths := make([]int, len(tokens))
	for i, t := range tokens {
		depth += depthDelta(t)
		depths[i] = depth
	}
	for i := len(tokens) - 1; i > 0; i-- {
		if depths[i]-depthDelta(tokens[i]) == 0 && match(tokens[i]) {
			return i
		}
	}
	return -1
}

func isWord(w string) func(lexer.Token) bool {
	return func(t lexer.Token) bool { return t.Type == lexer.Word && t.Text == w }
}

func isComparison(t lexer.Token) bool {
	switch t.Type {
	case lexer.Eq, lexer.Neq, lexer.Lt, lexer.Gt, lexer.Le, lexer.Ge:
		return true
	}
	return false
}

func isAddSub(t lexer.Token) bool { return t.Type == lexer.Plus || t.Type == lexer.Minus }

func isMulDivMod(t lexer.Token) bool {
	return t.Type == lexer.Star || t.Type == lexer.Slash || t.Type == lexer.Pct
}

func isDot(t lexer.Token) bool { return t.Type == lexer.Dot }

func isLBracket(t lexer.Token) bool { return t.Type == lexer.LBracket }

func (ev *Evaluator) evalOr(left, right []lexer.Token) (value.Value, error) {
	l, err := ev.walk(left)
	if err != nil {
		return nil, err
	}
	if l.Truthy() {
		return l, nil
	}
	return ev.walk(right)
}

func (ev *Evaluator) evalAnd(left, right []lexer.Token) (value.Value, error) {
	l, err := ev.walk(left)
	if err != nil {
		return nil, err
	}
	if !l.Truthy() {
		return l, nil
	}
	return ev.walk(right)
}

func (ev *Evaluator) evalComparison(left []lexer.Token, op lexer.TokenType, right []lexer.Token) (value.Value, error) {
	l, err := ev.walk(left)
	if err != nil {
		return nil, err
	}
	r, err := ev.walk(right)
	if err != nil {
		return nil, err
	}
	switch op {
	case lexer.Eq:
		return value.Bool{Val: value.Equal(l, r)}, nil
	case lexer.Neq:
		return value.Bool{Val: !value.Equal(l, r)}, nil
	}
	lf, lok := asOrderedFloat(l)
	rf, rok := asOrderedFloat(r)
	if lok && rok {
		switch op {
		case lexer.Lt:
			return value.Bool{Val: lf < rf}, nil
		case lexer.Gt:
			return value.Bool{Val: lf > rf}, nil
		case lexer.Le:
			return value.Bool{Val: lf <= rf}, nil
		case lexer.Ge:
			return value.Bool{Val: lf >= rf}, nil
		}
	}
	if lt, lok := l.(value.Text); lok {
		if rt, rok := r.(value.Text); rok {
			switch op {
			case lexer.Lt:
				return value.Bool{Val: lt.Val < rt.Val}, nil
			case lexer.Gt:
				return value.Bool{Val: lt.Val > rt.Val}, nil
			case lexer.Le:
				return value.Bool{Val: lt.Val <= rt.Val}, nil
			case lexer.Ge:
				return value.Bool{Val: lt.Val >= rt.Val}, nil
			}
		}
	}
	return nil, errs.Typef("cannot compare %s and %s", l.Kind(), r.Kind())
}

func asOrderedFloat(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case value.Int:
		return float64(n.Val), true
	case value.Float:
		return n.Val, true
	}
	return 0, false
}

func (ev *Evaluator) evalArith(left []lexer.Token, op lexer.TokenType, right []lexer.Token) (value.Value, error) {
	l, err := ev.walk(left)
	if err != nil {
		return nil, err
	}
	r, err := ev.walk(right)
	if err != nil {
		return nil, err
	}
	return ApplyArith(op, l, r)
}

// ApplyArith implements +, -, *, /, % with Tourmaline's numeric
// promotion rule: either operand being Float promotes the result to
// Float, and `/` always yields Float regardless of operand kinds
// (spec.md §9's resolved open question). `+` on two texts concatenates.
// Exported so package interp can reuse it for compound assignment
// (`+= -= *= /=`), which performs the identical read-modify-write.
func ApplyArith(op lexer.TokenType, l, r value.Value) (value.Value, error) {
	if op == lexer.Plus {
		if lt, ok := l.(value.Text); ok {
			if rt, ok := r.(value.Text); ok {
				return value.Text{Val: lt.Val + rt.Val}, nil
			}
		}
	}

	li, liok := l.(value.Int)
	ri, riok := r.(value.Int)
	lf, lfok := asOrderedFloat(l)
	rf, rfok := asOrderedFloat(r)
	if !lfok || !rfok {
		return nil, errs.Typef("unsupported operand kinds for arithmetic: %s, %s", l.Kind(), r.Kind())
	}

	if op == lexer.Slash {
		if rf == 0 {
			return nil, errs.Arithf("division by zero")
		}
		return value.Float{Val: lf / rf}, nil
	}

	bothInt := liok && riok
	if bothInt {
		switch op {
		case lexer.Plus:
			return value.Int{Val: li.Val + ri.Val}, nil
		case lexer.Minus:
			return value.Int{Val: li.Val - ri.Val}, nil
		case lexer.Star:
			return value.Int{Val: li.Val * ri.Val}, nil
		case lexer.Pct:
			if ri.Val == 0 {
				return nil, errs.Arithf("modulo by zero")
			}
			return value.Int{Val: li.Val % ri.Val}, nil
		}
	}
	switch op {
	case lexer.Plus:
		return value.Float{Val: lf + rf}, nil
	case lexer.Minus:
		return value.Float{Val: lf - rf}, nil
	case lexer.Star:
		return value.Float{Val: lf * rf}, nil
	case lexer.Pct:
		if rf == 0 {
			return nil, errs.Arithf("modulo by zero")
		}
		return value.Float{Val: math.Mod(lf, rf)}, nil
	}
	return nil, errs.Parsef("unknown arithmetic operator")
}

// evalMember implements `.`: either library-sentinel → callable lookup,
// or mapping → key lookup (absent key yields nil), per spec.md §4.4. Only
// the single token immediately right of the dot is taken as the member
// name — a further accessor chained after it (`a.b[0]`) is not supported,
// since member access sits at lower scan precedence than indexing and so
// greedily captures everything to its right.
func (ev *Evaluator) evalMember(left, right []lexer.Token) (value.Value, error) {
	obj, err := ev.walk(left)
	if err != nil {
		return nil, err
	}
	if len(right) != 1 || right[0].Type != lexer.Word {
		return nil, errs.Parsef("member access expects a bare identifier")
	}
	member := right[0].Text

	if lib, ok := obj.(value.Text); ok && ev.isLibrarySentinel(lib.Val) {
		if !ev.Invoker.IsLibraryMember(lib.Val, member) {
			return nil, errs.Namef("library '%s' has no function '%s'", lib.Val, member)
		}
		return value.CallableName{Name: lib.Val + "." + member}, nil
	}

	m, ok := obj.(*value.Map)
	if !ok {
		return nil, errs.Typef("cannot access member of %s", obj.Kind())
	}
	return m.Get(member), nil
}

// evalIndex implements `[...]`: mapping key lookup (a missing key is an
// Index error), or integer position into a list or text (spec.md §4.4 —
// negative indices are not required, so out-of-range on either end is an
// Index error).
func (ev *Evaluator) evalIndex(objToks, idxToks []lexer.Token) (value.Value, error) {
	obj, err := ev.walk(objToks)
	if err != nil {
		return nil, err
	}
	idx, err := ev.walk(idxToks)
	if err != nil {
		return nil, err
	}

	switch o := obj.(type) {
	case *value.Map:
		v, ok := o.Values[idx.String()]
		if !ok {
			return nil, errs.Indexf("map key not found: %s", idx.String())
		}
		return v, nil
	case *value.List:
		n, ok := idx.(value.Int)
		if !ok {
			return nil, errs.Typef("list index must be an integer")
		}
		if n.Val < 0 || n.Val >= int64(len(o.Elems)) {
			return nil, errs.Indexf("list index out of range: %d", n.Val)
		}
		return o.Elems[n.Val], nil
	case value.Text:
		n, ok := idx.(value.Int)
		if !ok {
			return nil, errs.Typef("text index must be an integer")
		}
		if n.Val < 0 || n.Val >= int64(len(o.Val)) {
			return nil, errs.Indexf("text index out of range: %d", n.Val)
		}
		return value.Text{Val: string(o.Val[n.Val])}, nil
	default:
		return nil, errs.Typef("cannot index %s", obj.Kind())
	}
}

func joinText(tokens []lexer.Token) string {
	s := ""
	for i, t := range tokens {
		if i > 0 {
			s += " "
		}
		s += t.Text
	}
	return s
}

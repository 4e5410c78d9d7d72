package eval

import "github.com/mochacinno-dev/tourmaline/lexer"

// depthDelta reports how a token changes bracket nesting depth. All three
// bracket kinds are folded into one counter: the literal/argument
// splitters below only need to know when they're back at the depth they
// started at, not which bracket kind is open, per spec.md §4.2's
// depth-counted scan.
func depthDelta(t lexer.Token) int {
	switch t.Type {
	case lexer.LParen, lexer.LBracket, lexer.LBrace:
		return 1
	case lexer.RParen, lexer.RBracket, lexer.RBrace:
		return -1
	}
	return 0
}

func closeFor(open lexer.TokenType) lexer.TokenType {
	switch open {
	case lexer.LParen:
		return lexer.RParen
	case lexer.LBracket:
		return lexer.RBracket
	case lexer.LBrace:
		return lexer.RBrace
	}
	return ""
}

// findMatch returns the index, within tokens, of the bracket that closes
// the opening bracket at start. It returns -1 if tokens[start] is not an
// opening bracket or the bracket never closes.
func findMatch(tokens []lexer.Token, start int) int {
	want := closeFor(tokens[start].Type)
	if want == "" {
		return -1
	}
	depth := 0
	for i := start; i < len(tokens); i++ {
		depth += depthDelta(tokens[i])
		if depth == 0 {
			return i
		}
	}
	return -1
}

// splitTopLevel divides tokens on commas that sit at bracket depth 0,
// the same bracket-balanced scan spec.md §4.2 uses for list elements and
// spec.md §4.3 uses for call arguments. An empty slice yields no parts.
func splitTopLevel(tokens []lexer.Token) [][]lexer.Token {
	if len(tokens) == 0 {
		return nil
	}
	var parts [][]lexer.Token
	depth := 0
	last := 0
	for i, t := range tokens {
		depth += depthDelta(t)
		if depth == 0 && t.Type == lexer.Comma {
			parts = append(parts, tokens[last:i])
			last = i + 1
		}
	}
	parts = append(parts, tokens[last:])
	return parts
}

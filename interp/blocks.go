package interp

import (
	"strings"

	"github.com/mochacinno-dev/tourmaline/errs"
	"github.com/mochacinno-dev/tourmaline/lexer"
)

// openers is the set of block-opening keywords tracked while scanning
// for a matching `end` (spec.md §4.5: "tracking nested block openers
// (function, if, while, for)"). `try` is deliberately absent — spec.md
// says try/except nesting is "counted as for function", i.e. the same
// rule, not an additional opener — so a try nested inside another try's
// body is not depth-tracked; this mirrors the one block form spec.md
// does not name as an opener anywhere.
var openers = map[string]bool{"function": true, "if": true, "while": true, "for": true}

func splitLines(src string) []string { return strings.Split(src, "\n") }

// firstWord returns the leading whitespace-delimited word of a trimmed
// line, used to classify a line as a block opener or an `elif`/`except`
// arm without running the full tokenizer over every line of a block
// being collected.
func firstWord(trimmed string) string {
	if sp := strings.IndexAny(trimmed, " \t"); sp >= 0 {
		return trimmed[:sp]
	}
	return trimmed
}

func isOpener(trimmed string) bool { return openers[firstWord(trimmed)] }

// collectBlock gathers body lines starting at lines[start] up to (not
// including) the `end` that closes the block opened just before start,
// depth-counting nested openers along the way. It returns the body and
// the index of the line just past the closing `end`.
func collectBlock(lines []string, start int) (body []string, next int, err error) {
	depth := 1
	i := start
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "end" {
			depth--
			if depth == 0 {
				return body, i + 1, nil
			}
			body = append(body, lines[i])
			i++
			continue
		}
		if isOpener(trimmed) {
			depth++
		}
		body = append(body, lines[i])
		i++
	}
	return nil, 0, errs.Parsef("unterminated block (missing 'end')")
}

// elifBranch is one `elif <expr> ... ` arm of an if-chain.
type elifBranch struct {
	Cond []lexer.Token
	Body []string
}

// collectIfChain gathers an if-statement's body, its elif branches (with
// their conditions pre-tokenized), and its else body, per spec.md §4.5.
func collectIfChain(lines []string, start int) (ifBody []string, elifs []elifBranch, elseBody []string, next int, err error) {
	depth := 1
	i := start
	target := &ifBody
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		switch {
		case trimmed == "end":
			depth--
			if depth == 0 {
				return ifBody, elifs, elseBody, i + 1, nil
			}
			*target = append(*target, lines[i])
		case isOpener(trimmed):
			depth++
			*target = append(*target, lines[i])
		case depth == 1 && firstWord(trimmed) == "elif":
			toks, terr := lexer.Tokenize(trimmed)
			if terr != nil {
				return nil, nil, nil, 0, terr
			}
			if len(toks) < 2 {
				return nil, nil, nil, 0, errs.Parsef("elif without a condition")
			}
			elifs = append(elifs, elifBranch{Cond: toks[1:]})
			target = &elifs[len(elifs)-1].Body
		case depth == 1 && trimmed == "else":
			target = &elseBody
		default:
			*target = append(*target, lines[i])
		}
		i++
	}
	return nil, nil, nil, 0, errs.Parsef("unterminated if (missing 'end')")
}

// collectTryChain gathers a try-statement's body, its optional except
// variable name, and the except body, per spec.md §4.5.
func collectTryChain(lines []string, start int) (tryBody []string, exceptVar string, exceptBody []string, next int, err error) {
	depth := 1
	i := start
	target := &tryBody
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		switch {
		case trimmed == "end":
			depth--
			if depth == 0 {
				return tryBody, exceptVar, exceptBody, i + 1, nil
			}
			*target = append(*target, lines[i])
		case isOpener(trimmed):
			depth++
			*target = append(*target, lines[i])
		case depth == 1 && firstWord(trimmed) == "except":
			toks, terr := lexer.Tokenize(trimmed)
			if terr != nil {
				return nil, "", nil, 0, terr
			}
			if len(toks) > 1 {
				exceptVar = toks[1].Text
			}
			target = &exceptBody
		default:
			*target = append(*target, lines[i])
		}
		i++
	}
	return nil, "", nil, 0, errs.Parsef("unterminated try (missing 'end')")
}

// collectStructBody gathers a struct's field-declaration lines, skipping
// blanks and comments, up to its closing `end` (spec.md §4.5: structs
// don't nest, so no depth counting is needed).
func collectStructBody(lines []string, start int) (fields []string, next int, err error) {
	i := start
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "end" {
			return fields, i + 1, nil
		}
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			fields = append(fields, trimmed)
		}
		i++
	}
	return nil, 0, errs.Parsef("unterminated struct (missing 'end')")
}

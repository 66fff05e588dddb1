package tikzcd

import (
	"fmt"
	"regexp"

	"github.com/yishn/tikzcd-editor/diagram"
)

var argValuePattern = regexp.MustCompile(`^=\d+(em)?`)

// arrowRules tokenize the inside of one \arrow[...] construct.
var arrowRules = []Rule{
	{TokenIgnored, regexRule(`^\s+`)},
	{TokenIgnored, regexRule(`^,`)},
	{TokenCommand, regexRule(`^\\arrow\s*\[`)},
	{TokenClose, regexRule(`^\]`)},
	{TokenDirection, matchDirection},
	{TokenAlt, regexRule(`^'`)},
	{TokenArgName, regexRule(`^([a-zA-Z]+ )*[a-zA-Z]+`)},
	{TokenArgValue, matchArgValue},
	{TokenLabel, matchLabel},
}

func isClose(tok Token) bool { return tok.Kind == TokenClose }

func newArrowTokenizer(opts ...TokenizerOption) *Tokenizer {
	return NewTokenizer(arrowRules, append([]TokenizerOption{StopWhen(isClose)}, opts...)...)
}

var arrowTokenizer = newArrowTokenizer()

// TokenizeArrow tokenizes one \arrow[...] construct at the start of src,
// stopping after its closing bracket.
func TokenizeArrow(src string) []Token {
	return arrowTokenizer.Tokenize(src)
}

// matchDirection matches a run of direction letters that is not the start of
// a longer word.
func matchDirection(rest string) (Match, bool) {
	n := 0
	for n < len(rest) && isDirectionLetter(rest[n]) {
		n++
	}
	if n == 0 || (n < len(rest) && isLetter(rest[n])) {
		return Match{}, false
	}
	return Match{Text: rest[:n], Value: rest[:n]}, true
}

func isDirectionLetter(c byte) bool {
	return c == 'l' || c == 'r' || c == 'u' || c == 'd'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// arrowMatcher recognizes a complete arrow construct at the document level.
// A missing closing bracket still matches; the parser reports it.
func arrowMatcher(t *Tokenizer) Matcher {
	return func(rest string) (Match, bool) {
		if !arrowPattern.MatchString(rest) {
			return Match{}, false
		}
		tokens, n := t.Scan(rest)
		return Match{Text: rest[:n], Value: rest[:n], Sub: tokens}, true
	}
}

// ArrowAttributes is the interpretation of one arrow construct: the grid
// displacement from its source cell to its target cell plus the edge style.
type ArrowAttributes struct {
	Direction diagram.Position
	diagram.Style
}

// ParseArrow tokenizes and interprets a single \arrow[...] construct.
func ParseArrow(src string) (ArrowAttributes, error) {
	tokens := TokenizeArrow(src)
	if len(tokens) == 0 {
		return ArrowAttributes{}, &SyntaxError{
			ParseError: ParseError{Pos: Position{}},
			Expected:   tokenNames[TokenCommand],
			Got:        "EOF",
		}
	}
	return interpretArrow(tokens)
}

// interpretArrow folds an arrow's argument tokens into ArrowAttributes.
//
// Grammar:
//
//	arrow  = command { item } close
//	item   = direction | label [ alt | "description" ] | clause
//	clause = name [ value ] [ alt ]
func interpretArrow(tokens []Token) (ArrowAttributes, error) {
	for _, tok := range tokens {
		if tok.Kind == TokenUnmatched {
			return ArrowAttributes{}, &LexError{ParseError{
				Message: fmt.Sprintf("unexpected character %q in arrow", tok.Value),
				Pos:     tok.Pos,
			}}
		}
	}

	if tokens[0].Kind != TokenCommand {
		return ArrowAttributes{}, unexpected(tokens[0], tokenNames[TokenCommand])
	}
	if tokens[len(tokens)-1].Kind != TokenClose {
		return ArrowAttributes{}, &SyntaxError{
			ParseError: ParseError{
				Message: `\arrow[ is never closed with ']'`,
				Pos:     tokens[0].Pos,
			},
			Expected: tokenNames[TokenClose],
			Got:      "EOF",
		}
	}

	var (
		attrs    ArrowAttributes
		label    *diagram.Style
		clauses  []clause
		body     = tokens[1 : len(tokens)-1]
		peekKind = func(i int, kind TokenKind) bool {
			return i < len(body) && body[i].Kind == kind
		}
	)

	for i := 0; i < len(body); i++ {
		tok := body[i]
		switch tok.Kind {
		case TokenDirection:
			for _, c := range tok.Value {
				attrs.Direction = attrs.Direction.Add(directionVectors[c])
			}

		case TokenLabel:
			l := diagram.Style{Value: tok.Value, LabelPosition: diagram.LabelLeft}
			switch {
			case peekKind(i+1, TokenAlt):
				l.LabelPosition = diagram.LabelRight
				i++
			case peekKind(i+1, TokenArgName) && body[i+1].Value == "description":
				l.LabelPosition = diagram.LabelInside
				i++
			}
			if label == nil {
				label = &l
			}

		case TokenArgName:
			c := clause{name: tok.Value, tok: tok}
			if peekKind(i+1, TokenArgValue) {
				v, err := ParseArgValue(body[i+1])
				if err != nil {
					return ArrowAttributes{}, err
				}
				c.value = &v
				i++
			}
			if peekKind(i+1, TokenAlt) {
				c.alt = true
				i++
			}
			clauses = append(clauses, c)

		default:
			return ArrowAttributes{}, unexpected(tok, "direction, label or option")
		}
	}

	state := arrowState{style: diagram.Style{LabelPosition: diagram.LabelLeft}}
	if label != nil {
		state.style.Value = label.Value
		state.style.LabelPosition = label.LabelPosition
	}
	for _, c := range clauses {
		apply, ok := arrowKeywords[c.name]
		if !ok {
			args := []any{"option", c.name, "row", c.tok.Pos.Row, "col", c.tok.Pos.Col}
			if c.value != nil {
				args = append(args, "value", c.value.String())
			}
			Logger().Debug("ignoring arrow option", args...)
			continue
		}
		apply(&state, c)
	}

	if state.loop {
		loop := diagram.Loop{}
		if state.in != nil && state.out != nil {
			loop = loopFromAngles(*state.in, *state.out)
		}
		state.style.Loop = &loop
	}

	attrs.Style = state.style
	return attrs, nil
}

var directionVectors = map[rune]diagram.Position{
	'l': {X: -1, Y: 0},
	'r': {X: 1, Y: 0},
	'u': {X: 0, Y: -1},
	'd': {X: 0, Y: 1},
}

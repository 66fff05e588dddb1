package tikzcd

import (
	"regexp"
	"unicode/utf8"
)

// Match is the result of a successful Matcher call.
type Match struct {
	Text  string  // consumed source text; must be a non-empty prefix of the input
	Value string  // value carried by the emitted token
	Sub   []Token // nested tokens, positioned relative to the start of Text
}

// Matcher inspects the unconsumed remainder of the input and reports whether
// (and how much of) it matches.
type Matcher func(rest string) (Match, bool)

// Rule pairs a token kind with the matcher that recognizes it. Rules of kind
// TokenIgnored consume input without emitting a token.
type Rule struct {
	Kind  TokenKind
	Match Matcher
}

// Tokenizer is a generic, rule-driven lexer. Rules are tried in order and the
// first match wins, so rule order encodes priority rather than match length.
type Tokenizer struct {
	rules           []Rule
	stop            func(Token) bool
	stopOnUnmatched bool
}

// TokenizerOption configures a Tokenizer.
type TokenizerOption func(*Tokenizer)

// StopWhen ends tokenization right after the first emitted token for which
// pred returns true.
func StopWhen(pred func(Token) bool) TokenizerOption {
	return func(t *Tokenizer) { t.stop = pred }
}

// StopOnUnmatched ends tokenization at the first unmatched character instead
// of continuing after it. The unmatched token is still emitted so callers
// can report where input stopped making sense.
func StopOnUnmatched(stop bool) TokenizerOption {
	return func(t *Tokenizer) { t.stopOnUnmatched = stop }
}

// NewTokenizer creates a Tokenizer for the given rules.
func NewTokenizer(rules []Rule, opts ...TokenizerOption) *Tokenizer {
	t := &Tokenizer{rules: rules}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize converts src into a token stream.
func (t *Tokenizer) Tokenize(src string) []Token {
	tokens, _ := t.Scan(src)
	return tokens
}

// Scan is like Tokenize but also returns the number of bytes of src consumed,
// which is less than len(src) when a stop condition ended the scan early.
func (t *Tokenizer) Scan(src string) ([]Token, int) {
	var (
		tokens []Token
		pos    Position
		rest   = src
	)

	for len(rest) > 0 {
		kind, m, ok := t.match(rest)
		if !ok {
			_, size := utf8.DecodeRuneInString(rest)
			tokens = append(tokens, Token{
				Kind:   TokenUnmatched,
				Value:  rest[:size],
				Pos:    pos,
				Length: 1,
			})
			pos = pos.advance(rest[:size])
			rest = rest[size:]
			if t.stopOnUnmatched {
				break
			}
			continue
		}

		if kind != TokenIgnored {
			tok := Token{
				Kind:   kind,
				Value:  m.Value,
				Pos:    pos,
				Length: utf8.RuneCountInString(m.Text),
				Sub:    rebase(m.Sub, pos),
			}
			tokens = append(tokens, tok)
			if t.stop != nil && t.stop(tok) {
				rest = rest[len(m.Text):]
				break
			}
		}

		pos = pos.advance(m.Text)
		rest = rest[len(m.Text):]
	}

	return tokens, len(src) - len(rest)
}

func (t *Tokenizer) match(rest string) (TokenKind, Match, bool) {
	for _, r := range t.rules {
		m, ok := r.Match(rest)
		if ok && m.Text != "" {
			return r.Kind, m, true
		}
	}
	return TokenUnmatched, Match{}, false
}

// rebase shifts tokens positioned relative to base into absolute positions.
func rebase(tokens []Token, base Position) []Token {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]Token, len(tokens))
	for i, tok := range tokens {
		if tok.Pos.Row == 0 {
			tok.Pos.Col += base.Col
		}
		tok.Pos.Row += base.Row
		tok.Pos.Offset += base.Offset
		tok.Sub = rebase(tok.Sub, base)
		out[i] = tok
	}
	return out
}

// regexRule builds a Matcher from a pattern anchored with ^. The whole match
// becomes the token value.
func regexRule(pattern string) Matcher {
	re := regexp.MustCompile(pattern)
	return func(rest string) (Match, bool) {
		loc := re.FindStringIndex(rest)
		if loc == nil {
			return Match{}, false
		}
		text := rest[:loc[1]]
		return Match{Text: text, Value: text}, true
	}
}

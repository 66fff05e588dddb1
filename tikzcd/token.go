package tikzcd

import (
	"strings"
	"unicode/utf8"
)

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenUnmatched TokenKind = iota // a single character no rule accepted
	TokenIgnored                    // whitespace, commas, comments; never emitted

	// Diagram document
	TokenBegin  // \begin{tikzcd}
	TokenEnd    // \end{tikzcd}
	TokenNode   // cell text
	TokenArrow  // \arrow[...], with the argument tokens in Sub
	TokenAlign  // &
	TokenNewRow // \\

	// Arrow arguments
	TokenCommand   // \arrow[
	TokenClose     // ]
	TokenDirection // [lrud]+
	TokenAlt       // '
	TokenArgName   // bend left
	TokenArgValue  // =30, =2em
	TokenLabel     // "..."
)

var tokenNames = map[TokenKind]string{
	TokenUnmatched: "unmatched",
	TokenIgnored:   "ignored",
	TokenBegin:     `'\begin{tikzcd}'`,
	TokenEnd:       `'\end{tikzcd}'`,
	TokenNode:      "node",
	TokenArrow:     "arrow",
	TokenAlign:     "'&'",
	TokenNewRow:    `'\\'`,
	TokenCommand:   `'\arrow['`,
	TokenClose:     "']'",
	TokenDirection: "direction",
	TokenAlt:       `"'"`,
	TokenArgName:   "argument name",
	TokenArgValue:  "argument value",
	TokenLabel:     "label",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Position tracks a source location. All fields are 0-based and count
// characters (runes), not bytes.
type Position struct {
	Row    int
	Col    int
	Offset int
}

// advance returns the position just past text.
func (p Position) advance(text string) Position {
	n := utf8.RuneCountInString(text)
	p.Offset += n
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		p.Row += strings.Count(text, "\n")
		p.Col = utf8.RuneCountInString(text[i+1:])
	} else {
		p.Col += n
	}
	return p
}

// Token is a single lexical unit produced by a Tokenizer.
type Token struct {
	Kind   TokenKind
	Value  string // extracted value (label text without quotes, value without '=')
	Pos    Position
	Length int     // length of the matched source text in characters
	Sub    []Token // nested tokens, positioned in the enclosing source
}

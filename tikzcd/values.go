package tikzcd

import (
	"fmt"
	"strconv"
	"strings"
)

// ArgValue is the numeric value of an arrow option such as bend left=45 or
// distance=2em. A trailing em unit is accepted and dropped from Number.
type ArgValue struct {
	Number int
	Raw    string // original text without the '='
}

// String returns the original text representation of the value.
func (v ArgValue) String() string { return v.Raw }

// ParseArgValue converts an argument value token into an ArgValue.
func ParseArgValue(tok Token) (ArgValue, error) {
	if tok.Kind != TokenArgValue {
		return ArgValue{}, &ValueError{ParseError{
			Message: fmt.Sprintf("unexpected token %s in value position", tok.Kind),
			Pos:     tok.Pos,
		}}
	}

	n, err := strconv.Atoi(strings.TrimSuffix(tok.Value, "em"))
	if err != nil {
		return ArgValue{}, &ValueError{ParseError{
			Message: fmt.Sprintf("invalid number %q: %v", tok.Value, err),
			Pos:     tok.Pos,
			Cause:   err,
		}}
	}
	return ArgValue{Number: n, Raw: tok.Value}, nil
}

func matchArgValue(rest string) (Match, bool) {
	loc := argValuePattern.FindStringIndex(rest)
	if loc == nil {
		return Match{}, false
	}
	text := rest[:loc[1]]
	return Match{Text: text, Value: text[1:]}, true
}

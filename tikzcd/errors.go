package tikzcd

import "fmt"

// ParseError is the base error type for all tikzcd parse errors.
// Pos is 0-based; messages print 1-based lines and columns.
type ParseError struct {
	Message string
	Pos     Position
	Cause   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Pos.Row+1, e.Pos.Col+1, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Position returns the source position of the error.
func (e *ParseError) Position() Position { return e.Pos }

// LexError represents a character no tokenizer rule accepted.
type LexError struct{ ParseError }

// SyntaxError represents a token where the grammar does not allow it.
type SyntaxError struct {
	ParseError
	Expected string
	Got      string
}

func (e *SyntaxError) Error() string {
	if e.Message != "" {
		return e.ParseError.Error()
	}
	return fmt.Sprintf("line %d, col %d: expected %s, got %s", e.Pos.Row+1, e.Pos.Col+1, e.Expected, e.Got)
}

// ValueError represents an argument value that cannot be converted (overflow).
type ValueError struct{ ParseError }

func unexpected(tok Token, expected string) *SyntaxError {
	return &SyntaxError{
		ParseError: ParseError{Pos: tok.Pos},
		Expected:   expected,
		Got:        fmt.Sprintf("%s (%q)", tok.Kind, tok.Value),
	}
}

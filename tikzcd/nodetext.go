package tikzcd

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	beginPattern    = regexp.MustCompile(`^\\begin\s*\{\s*tikzcd\s*\}`)
	endPattern      = regexp.MustCompile(`^\\end\s*\{\s*tikzcd\s*\}`)
	arrowPattern    = regexp.MustCompile(`^\\arrow\s*\[`)
	rowBreakPattern = regexp.MustCompile(`^\\\\`)
)

// cellDelimiters are the control sequences that end a cell's text.
var cellDelimiters = []*regexp.Regexp{rowBreakPattern, arrowPattern, endPattern, beginPattern}

// ScanNodeText scans the text of one diagram cell at the start of src. It
// stops before a bare '&' or '%', a row break, an arrow or a begin/end
// marker; a backslash protects the following character. The text is trimmed
// and one layer of wrapping braces is removed. consumed is the number of
// bytes of src that belong to the cell, trailing whitespace included.
func ScanNodeText(src string) (value string, consumed int, ok bool) {
	var (
		sb        strings.Builder
		protected int // length of sb up to the last escaped character
		i         int
	)

scan:
	for i < len(src) {
		c := src[i]
		switch c {
		case '&', '%':
			break scan
		case '\\':
			for _, re := range cellDelimiters {
				if re.MatchString(src[i:]) {
					break scan
				}
			}
			sb.WriteByte(c)
			i++
			if i < len(src) {
				_, size := utf8.DecodeRuneInString(src[i:])
				sb.WriteString(src[i : i+size])
				i += size
			}
			protected = sb.Len()
		default:
			sb.WriteByte(c)
			i++
		}
	}

	raw := sb.String()
	start := len(raw) - len(strings.TrimLeft(raw, " \t\r\n"))
	end := len(raw)
	for end > max(start, protected) && isSpace(raw[end-1]) {
		end--
	}
	if start >= end {
		return "", 0, false
	}

	return unwrapBraces(raw[start:end]), i, true
}

// unwrapBraces strips one pair of braces if the opening brace at the start
// is matched by the closing brace at the end.
func unwrapBraces(s string) string {
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return s
	}

	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 && i != len(s)-1 {
				return s
			}
		}
	}
	if depth != 0 {
		return s
	}
	return s[1 : len(s)-1]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func matchNodeText(rest string) (Match, bool) {
	value, n, ok := ScanNodeText(rest)
	if !ok {
		return Match{}, false
	}
	return Match{Text: rest[:n], Value: value}, true
}

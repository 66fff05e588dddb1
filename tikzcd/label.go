package tikzcd

// Label is a quoted arrow label recognized by ParseLabel.
type Label struct {
	Match   string // full source text, quotes included
	Value   string // label text with the quotes (and a wrapping brace pair) removed
	Wrapped bool   // whether the text was wrapped as "{...}"
}

// ParseLabel matches a quoted label at the start of src. The scan tracks
// brace nesting, treats a backslash as escaping the following character and
// ends at the first unescaped quote outside of braces. A label counts as
// wrapped only when its opening brace is closed immediately before the
// closing quote. It returns false when src does not start with a quote or the
// quote is never closed.
func ParseLabel(src string) (Label, bool) {
	if len(src) == 0 || src[0] != '"' {
		return Label{}, false
	}

	i := 1
	depth := 0
	wrapped := len(src) > 1 && src[1] == '{'

	for i < len(src) {
		c := src[i]
		if c == '"' && depth <= 0 {
			break
		}

		switch c {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 && (i+1 >= len(src) || src[i+1] != '"') {
				wrapped = false
			}
		}
		i++
	}

	if i >= len(src) || src[i] != '"' {
		return Label{}, false
	}

	l := Label{Match: src[:i+1], Wrapped: wrapped}
	if wrapped {
		l.Value = src[2 : i-1]
	} else {
		l.Value = src[1:i]
	}
	return l, true
}

func matchLabel(rest string) (Match, bool) {
	l, ok := ParseLabel(rest)
	if !ok {
		return Match{}, false
	}
	return Match{Text: l.Match, Value: l.Value}, true
}

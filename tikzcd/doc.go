// Package tikzcd converts between diagram values and tikzcd source text.
//
// Reading is done in three layers:
//
//   - Tokenizer: a rule-driven lexer. Rules are tried in order and the first
//     match wins. Characters no rule accepts become TokenUnmatched tokens.
//   - Arrow interpreter: each \arrow[...] is scanned by its own tokenizer and
//     folded through a fixed keyword table into a diagram.Style.
//   - Grid walker: '&' advances the column, '\\' starts a new row, cell text
//     becomes a node and arrows become edges resolved by grid position once
//     the whole document has been read.
//
// ToTeX writes a diagram back using the same keyword table in reverse, so
// Parse(ToTeX(d)) reproduces d up to node ids, translation and attributes
// that are written implicitly (bend=30, shift=1).
//
// Usage:
//
//	d, err := tikzcd.Parse(src)
//	if err != nil {
//	    var perr *tikzcd.SyntaxError
//	    if errors.As(err, &perr) {
//	        fmt.Println(perr.Pos.Row, perr.Pos.Col)
//	    }
//	    log.Fatal(err)
//	}
//	fmt.Println(tikzcd.ToTeX(d))
package tikzcd

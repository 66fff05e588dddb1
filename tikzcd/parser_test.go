package tikzcd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yishn/tikzcd-editor/diagram"
)

const pullback = `% This is a comment
    \begin  {tikzcd}
    A \ \arrow[d, "\overline{g}"'] &  & A\times B \arrow  [rrdd, "g"]
      \arrow[rr,  "\pi_2"] \arrow [ll,"\pi_1"']
      \arrow[dd, "\overline{g}\times\mathbf{1}_B" description, dashed] &
      & B\% \arrow[d, "\mathbf{1}_B"] \\
    \{C^B\} &  &  &  & {B} % This is a comment
      \\
    &  & C^B\times B \arrow[llu, "\pi'_1"] \arrow[rru, "\pi'_2"']
      \arrow[rr, "{\mathrm{ev}_{B,C}}"'] &  & C
    \end{tikzcd}`

func TestTokenizeDocument(t *testing.T) {
	tokens := documentTokenizer.Tokenize(pullback)

	assert.Equal(t, []TokenKind{
		TokenBegin,
		TokenNode, TokenArrow, TokenAlign, TokenAlign,
		TokenNode, TokenArrow, TokenArrow, TokenArrow, TokenArrow, TokenAlign, TokenAlign,
		TokenNode, TokenArrow, TokenNewRow,
		TokenNode, TokenAlign, TokenAlign, TokenAlign, TokenAlign, TokenNode, TokenNewRow,
		TokenAlign, TokenAlign,
		TokenNode, TokenArrow, TokenArrow, TokenArrow, TokenAlign, TokenAlign,
		TokenNode,
		TokenEnd,
	}, kinds(tokens))

	var nodes []string
	for _, tok := range tokens {
		if tok.Kind == TokenNode {
			nodes = append(nodes, tok.Value)
		}
	}
	assert.Equal(t, []string{
		`A \ `, `A\times B`, `B\%`, `\{C^B\}`, `B`, `C^B\times B`, `C`,
	}, nodes)

	assert.Equal(t, Position{Row: 1, Col: 4, Offset: 24}, tokens[0].Pos)

	arrow := tokens[2]
	want := TokenizeArrow(`\arrow[d, "\overline{g}"']`)
	assert.Equal(t, kinds(want), kinds(arrow.Sub))
	assert.Equal(t, values(want), values(arrow.Sub))
	assert.Equal(t, arrow.Pos, arrow.Sub[0].Pos)
	assert.Equal(t, 2, arrow.Sub[1].Pos.Row)
	assert.Equal(t, 15, arrow.Sub[1].Pos.Col)
}

func TestParsePullback(t *testing.T) {
	d, err := Parse([]byte(pullback))
	require.NoError(t, err)

	node := func(id string, x, y int, value string) diagram.Node {
		return diagram.Node{ID: diagram.NodeID(id), Position: diagram.Position{X: x, Y: y}, Value: value}
	}
	edge := func(from, to string, pos diagram.LabelPosition, value string) diagram.Edge {
		return diagram.Edge{
			From:  diagram.NodeID(from),
			To:    diagram.NodeID(to),
			Style: diagram.Style{Value: value, LabelPosition: pos},
		}
	}
	dashed := edge("1", "5", diagram.LabelInside, `\overline{g}\times\mathbf{1}_B`)
	dashed.Line = diagram.LineDashed

	assert.Equal(t, []diagram.Node{
		node("0", 0, 0, `A \ `),
		node("1", 2, 0, `A\times B`),
		node("2", 4, 0, `B\%`),
		node("3", 0, 1, `\{C^B\}`),
		node("4", 4, 1, `B`),
		node("5", 2, 2, `C^B\times B`),
		node("6", 4, 2, `C`),
	}, d.Nodes)

	assert.Equal(t, []diagram.Edge{
		edge("0", "3", diagram.LabelRight, `\overline{g}`),
		edge("1", "6", diagram.LabelLeft, `g`),
		edge("1", "2", diagram.LabelLeft, `\pi_2`),
		edge("1", "0", diagram.LabelRight, `\pi_1`),
		dashed,
		edge("2", "4", diagram.LabelLeft, `\mathbf{1}_B`),
		edge("5", "3", diagram.LabelLeft, `\pi'_1`),
		edge("5", "4", diagram.LabelRight, `\pi'_2`),
		edge("5", "6", diagram.LabelRight, `\mathrm{ev}_{B,C}`),
	}, d.Edges)

	assert.Empty(t, diagram.Validate(d))
}

func TestParseWithoutEnvironment(t *testing.T) {
	d, err := Parse([]byte(`A \arrow[r] & B`))
	require.NoError(t, err)
	require.Len(t, d.Nodes, 2)
	require.Len(t, d.Edges, 1)
	assert.Equal(t, diagram.NodeID("0"), d.Edges[0].From)
	assert.Equal(t, diagram.NodeID("1"), d.Edges[0].To)
}

func TestParseEmpty(t *testing.T) {
	for _, src := range []string{"", "  % nothing\n", `\begin{tikzcd}\end{tikzcd}`} {
		d, err := Parse([]byte(src))
		require.NoError(t, err, src)
		assert.Empty(t, d.Nodes)
		assert.Empty(t, d.Edges)
	}
}

func TestParseBeginOptions(t *testing.T) {
	d, err := Parse([]byte("\\begin{tikzcd}[row sep=large, column sep=2em]\nA & B\n\\end{tikzcd}"))
	require.NoError(t, err)
	assert.Len(t, d.Nodes, 2)
}

func TestParseTrailingRowBreak(t *testing.T) {
	d, err := Parse([]byte("\\begin{tikzcd}\nA \\\\\nB \\\\\n\\end{tikzcd}"))
	require.NoError(t, err)
	require.Len(t, d.Nodes, 2)
	assert.Equal(t, diagram.Position{X: 0, Y: 1}, d.Nodes[1].Position)
}

func TestParseSynthesizesEndpoints(t *testing.T) {
	d, err := Parse([]byte(`\arrow[rd, "f"] & A \arrow[l]`))
	require.NoError(t, err)

	assert.Equal(t, []diagram.Node{
		{ID: "0", Position: diagram.Position{X: 1, Y: 0}, Value: "A"},
		{ID: "1", Position: diagram.Position{X: 0, Y: 0}},
		{ID: "2", Position: diagram.Position{X: 1, Y: 1}},
	}, d.Nodes)
	require.Len(t, d.Edges, 2)
	assert.Equal(t, diagram.NodeID("1"), d.Edges[0].From)
	assert.Equal(t, diagram.NodeID("2"), d.Edges[0].To)
	assert.Equal(t, diagram.NodeID("0"), d.Edges[1].From)
	assert.Equal(t, diagram.NodeID("1"), d.Edges[1].To)
}

func TestParseNegativeTarget(t *testing.T) {
	d, err := Parse([]byte(`A \arrow[lu]`))
	require.NoError(t, err)
	require.Len(t, d.Nodes, 2)
	assert.Equal(t, diagram.Position{X: -1, Y: -1}, d.Nodes[1].Position)
}

func TestParseLoopResolvesToSource(t *testing.T) {
	d, err := Parse([]byte(`A \arrow[r, "f", loop, in=145, out=215]`))
	require.NoError(t, err)

	require.Len(t, d.Nodes, 1, "a loop never creates a target node")
	require.Len(t, d.Edges, 1)
	e := d.Edges[0]
	assert.Equal(t, e.From, e.To)
	assert.Equal(t, &diagram.Loop{Angle: 270, Clockwise: true}, e.Loop)
}

func TestParseWithAllocator(t *testing.T) {
	d, err := Parse([]byte(`A & B`), WithAllocator(diagram.NewCounterAllocator(10)))
	require.NoError(t, err)
	assert.Equal(t, diagram.NodeID("10"), d.Nodes[0].ID)
	assert.Equal(t, diagram.NodeID("11"), d.Nodes[1].ID)

	d, err = Parse([]byte(`A \arrow[r] & B`), WithAllocator(diagram.UUIDAllocator{}))
	require.NoError(t, err)
	assert.Len(t, string(d.Nodes[0].ID), 36)
	assert.NotEqual(t, d.Nodes[0].ID, d.Nodes[1].ID)
	assert.Equal(t, d.Nodes[1].ID, d.Edges[0].To)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		pos     Position
		message string
	}{
		{
			name:    "end without begin",
			input:   `A & B \end{tikzcd}`,
			pos:     Position{Row: 0, Col: 6, Offset: 6},
			message: `\end{tikzcd} without \begin{tikzcd}`,
		},
		{
			name:    "missing end",
			input:   "\\begin{tikzcd}\nA",
			pos:     Position{Row: 1, Col: 1, Offset: 16},
			message: `missing \end{tikzcd}`,
		},
		{
			name:    "begin after content",
			input:   `A \begin{tikzcd}`,
			pos:     Position{Row: 0, Col: 2, Offset: 2},
			message: `\begin{tikzcd} must come once`,
		},
		{
			name:    "duplicate begin",
			input:   `\begin{tikzcd} \begin{tikzcd}`,
			pos:     Position{Row: 0, Col: 15, Offset: 15},
			message: `\begin{tikzcd} must come once`,
		},
		{
			name:    "content after end",
			input:   "\\begin{tikzcd} A \\end{tikzcd}\nB",
			pos:     Position{Row: 1, Col: 0, Offset: 30},
			message: `content after \end{tikzcd}`,
		},
		{
			name:    "two texts in one cell",
			input:   `A \arrow[r] B & C`,
			pos:     Position{Row: 0, Col: 12, Offset: 12},
			message: "expected '&' or '\\\\' before the next cell",
		},
		{
			name:    "unclosed arrow",
			input:   "A & B\n  C \\arrow[u, \"f\"",
			pos:     Position{Row: 1, Col: 4, Offset: 10},
			message: `never closed`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, d)

			var synErr *SyntaxError
			require.ErrorAs(t, err, &synErr)
			assert.Equal(t, tt.pos, synErr.Pos)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestParseUnmatchedCharacter(t *testing.T) {
	src := "A & B \\\\\nC \\arrow[u, =] & D"

	for _, strict := range []bool{false, true} {
		d, err := Parse([]byte(src), WithStrictLexing(strict))
		require.Error(t, err)
		assert.Nil(t, d)

		var lexErr *LexError
		require.ErrorAs(t, err, &lexErr, "strict=%v", strict)
		assert.Equal(t, Position{Row: 1, Col: 12, Offset: 21}, lexErr.Position())
		assert.Equal(t, `line 2, col 13: unexpected character "=" in arrow`, err.Error())
	}
}

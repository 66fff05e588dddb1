package tikzcd

import (
	"fmt"

	"github.com/yishn/tikzcd-editor/diagram"
)

// Option configures Parse.
type Option func(*config)

type config struct {
	ids    diagram.IDAllocator
	strict bool
}

// WithAllocator sets the allocator that assigns ids to parsed nodes. By
// default each Parse call numbers its nodes from zero.
func WithAllocator(ids diagram.IDAllocator) Option {
	return func(c *config) { c.ids = ids }
}

// WithStrictLexing makes the tokenizers stop at the first character no rule
// accepts instead of scanning past it. Either way Parse fails on it.
func WithStrictLexing(strict bool) Option {
	return func(c *config) { c.strict = strict }
}

var (
	documentTokenizer       = newDocumentTokenizer(false)
	strictDocumentTokenizer = newDocumentTokenizer(true)
)

func newDocumentTokenizer(strict bool) *Tokenizer {
	arrows := newArrowTokenizer(StopOnUnmatched(strict))
	return NewTokenizer([]Rule{
		{TokenIgnored, regexRule(`^\s+`)},
		{TokenIgnored, regexRule(`^%[^\n]*`)},
		{TokenBegin, regexRule(`^\\begin\s*\{\s*tikzcd\s*\}(\s*\[[^\]]*\])?`)},
		{TokenEnd, regexRule(endPattern.String())},
		{TokenNewRow, regexRule(rowBreakPattern.String())},
		{TokenArrow, arrowMatcher(arrows)},
		{TokenAlign, regexRule(`^&`)},
		{TokenNode, matchNodeText},
	}, StopOnUnmatched(strict))
}

// Parse reads a tikzcd diagram. The \begin{tikzcd} ... \end{tikzcd}
// wrapper is optional. Cells are placed on a grid starting at (0,0); arrows
// pointing at empty cells create empty nodes there. An arrow may also stand
// in a cell without text, including before any node of the diagram; it then
// starts at an empty node in that cell, which is how ToTeX writes arrows
// leaving empty nodes.
// Returns a *LexError, *SyntaxError, or *ValueError on failure.
func Parse(src []byte, opts ...Option) (*diagram.Diagram, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ids == nil {
		cfg.ids = diagram.NewCounterAllocator(0)
	}

	t := documentTokenizer
	if cfg.strict {
		t = strictDocumentTokenizer
	}

	text := string(src)
	p := &parser{
		ids:   cfg.ids,
		d:     &diagram.Diagram{},
		cells: make(map[diagram.Position]int),
		eof:   Position{}.advance(text),
	}
	if err := p.walk(t.Tokenize(text)); err != nil {
		return nil, err
	}
	p.resolve()
	return p.d, nil
}

type pendingEdge struct {
	from, to diagram.Position
	style    diagram.Style
}

type parser struct {
	ids     diagram.IDAllocator
	d       *diagram.Diagram
	cells   map[diagram.Position]int // position -> index into d.Nodes
	pending []pendingEdge
	eof     Position

	cursor diagram.Position
	filled bool // current cell already has text

	begun, ended, content bool
}

func (p *parser) walk(tokens []Token) error {
	for _, tok := range tokens {
		if p.ended {
			return &SyntaxError{
				ParseError: ParseError{Message: `content after \end{tikzcd}`, Pos: tok.Pos},
				Expected:   "EOF",
				Got:        tok.Kind.String(),
			}
		}

		switch tok.Kind {
		case TokenUnmatched:
			return &LexError{ParseError{
				Message: fmt.Sprintf("unexpected character %q", tok.Value),
				Pos:     tok.Pos,
			}}

		case TokenBegin:
			if p.begun || p.content {
				return &SyntaxError{
					ParseError: ParseError{
						Message: `\begin{tikzcd} must come once, before the diagram content`,
						Pos:     tok.Pos,
					},
					Expected: "cell content",
					Got:      tok.Kind.String(),
				}
			}
			p.begun = true

		case TokenEnd:
			if !p.begun {
				return &SyntaxError{
					ParseError: ParseError{Message: `\end{tikzcd} without \begin{tikzcd}`, Pos: tok.Pos},
					Expected:   "cell content",
					Got:        tok.Kind.String(),
				}
			}
			p.ended = true

		case TokenNode:
			if p.filled {
				return unexpected(tok, fmt.Sprintf("%s or %s before the next cell", TokenAlign, TokenNewRow))
			}
			p.addNode(p.cursor, tok.Value)
			p.filled = true
			p.content = true

		case TokenArrow:
			attrs, err := interpretArrow(tok.Sub)
			if err != nil {
				return err
			}
			p.pending = append(p.pending, pendingEdge{
				from:  p.cursor,
				to:    p.cursor.Add(attrs.Direction),
				style: attrs.Style,
			})
			p.content = true

		case TokenAlign:
			p.cursor.X++
			p.filled = false
			p.content = true

		case TokenNewRow:
			p.cursor = diagram.Position{X: 0, Y: p.cursor.Y + 1}
			p.filled = false
			p.content = true

		default:
			return unexpected(tok, "cell content")
		}
	}

	if p.begun && !p.ended {
		return &SyntaxError{
			ParseError: ParseError{Message: `missing \end{tikzcd}`, Pos: p.eof},
			Expected:   tokenNames[TokenEnd],
			Got:        "EOF",
		}
	}
	return nil
}

func (p *parser) addNode(pos diagram.Position, value string) diagram.NodeID {
	id := p.ids.NextID()
	p.cells[pos] = len(p.d.Nodes)
	p.d.Nodes = append(p.d.Nodes, diagram.Node{ID: id, Position: pos, Value: value})
	return id
}

// ensureNode returns the node at pos, creating an empty one if the cell is
// vacant.
func (p *parser) ensureNode(pos diagram.Position) diagram.NodeID {
	if i, ok := p.cells[pos]; ok {
		return p.d.Nodes[i].ID
	}
	Logger().Debug("creating empty node for arrow endpoint", "x", pos.X, "y", pos.Y)
	return p.addNode(pos, "")
}

func (p *parser) resolve() {
	for _, e := range p.pending {
		from := p.ensureNode(e.from)
		to := from
		if e.style.Loop == nil {
			to = p.ensureNode(e.to)
		}
		p.d.Edges = append(p.d.Edges, diagram.Edge{From: from, To: to, Style: e.style})
	}
}

package tikzcd

import (
	"strconv"
	"strings"

	"github.com/yishn/tikzcd-editor/diagram"
)

// ToTeX renders d as a tikzcd environment. The diagram is normalized first,
// so its top-left occupied cell becomes the first cell of the output. Each
// arrow is written into the cell of its source node. Edges whose endpoints
// are not in the diagram are dropped.
//
// Node and label text is written verbatim, without escaping. Text that
// would not scan back to the same value, such as a node containing a bare
// '&' or '%' or a label ending in a backslash, is still written and a
// warning is logged.
func ToTeX(d *diagram.Diagram) string {
	n := d.Normalize()

	type cell struct {
		text   string
		arrows []string
	}

	var (
		cells  = make(map[diagram.Position]*cell, len(n.Nodes))
		where  = make(map[diagram.NodeID]diagram.Position, len(n.Nodes))
		widths = make(map[int]int)
		rows   int
	)
	for _, node := range n.Nodes {
		text := nodeText(node.Value)
		if node.Value != "" && !reparsesAsNode(text, node.Value) {
			Logger().Warn("node text does not parse back unchanged", "node", node.ID, "value", node.Value)
		}
		cells[node.Position] = &cell{text: text}
		where[node.ID] = node.Position
		rows = max(rows, node.Position.Y+1)
		widths[node.Position.Y] = max(widths[node.Position.Y], node.Position.X+1)
	}

	for i, e := range n.Edges {
		from, ok := where[e.From]
		to, ok2 := where[e.To]
		if !ok || !ok2 {
			Logger().Warn("dropping edge with unknown endpoint", "edge", i, "from", e.From, "to", e.To)
			continue
		}
		if e.Value != "" && !reparsesAsLabel(quoteLabel(e.Value), e.Value) {
			Logger().Warn("label does not parse back unchanged", "edge", i, "value", e.Value)
		}
		c := cells[from]
		c.arrows = append(c.arrows, arrowText(to.Sub(from), e.Style))
	}

	var sb strings.Builder
	sb.WriteString(`\begin{tikzcd}` + "\n")
	for y := 0; y < rows; y++ {
		var line strings.Builder
		for x := 0; x < widths[y]; x++ {
			if x > 0 {
				line.WriteString(" &")
			}
			c, ok := cells[diagram.Position{X: x, Y: y}]
			if !ok {
				continue
			}
			for _, part := range append([]string{c.text}, c.arrows...) {
				if part != "" {
					line.WriteString(" " + part)
				}
			}
		}
		if y < rows-1 {
			line.WriteString(` \\`)
		}
		sb.WriteString(strings.TrimSpace(line.String()))
		sb.WriteByte('\n')
	}
	sb.WriteString(`\end{tikzcd}`)
	return sb.String()
}

// nodeText adds a brace pair where parsing would otherwise strip one or
// trim the value.
func nodeText(v string) string {
	if unwrapBraces(v) != v || strings.TrimSpace(v) != v {
		return "{" + v + "}"
	}
	return v
}

// reparsesAsNode reports whether text, written into a cell, scans back as v.
func reparsesAsNode(text, v string) bool {
	value, n, ok := ScanNodeText(text + " &")
	return ok && n == len(text)+1 && value == v
}

func arrowText(dir diagram.Position, s diagram.Style) string {
	var args []string
	if s.Loop == nil {
		if d := directionText(dir); d != "" {
			args = append(args, d)
		}
	}

	phantom := s.Line == diagram.LineNone
	if s.Value != "" {
		args = append(args, labelText(s, phantom))
	}

	if !phantom {
		if kw, ok := headKeywords[s.Head]; ok {
			args = append(args, kw)
		}
	}
	if phantom {
		args = append(args, "phantom")
	} else if kw, ok := lineKeywords[s.Line]; ok {
		args = append(args, kw)
	}
	if !phantom {
		if kw, ok := tailKeywords[s.Tail]; ok {
			args = append(args, kw)
		}
	}
	if kw, ok := longitudinalKeywords[s.LabelPositionLongitudinal]; ok {
		args = append(args, kw)
	}

	if s.Loop != nil {
		in, out := loopAngles(*s.Loop)
		args = append(args, "loop", "distance=2em",
			"in="+strconv.Itoa(in), "out="+strconv.Itoa(out))
	} else {
		switch {
		case s.Bend > 0:
			args = append(args, magnitude("bend left", s.Bend, defaultBend))
		case s.Bend < 0:
			args = append(args, magnitude("bend right", -s.Bend, defaultBend))
		}
		switch {
		case s.Shift > 0:
			args = append(args, magnitude("shift right", s.Shift, defaultShift))
		case s.Shift < 0:
			args = append(args, magnitude("shift left", -s.Shift, defaultShift))
		}
	}

	return `\arrow[` + strings.Join(args, ", ") + "]"
}

// directionText spells a grid displacement, horizontal steps first.
func directionText(dir diagram.Position) string {
	var sb strings.Builder
	for x := dir.X; x > 0; x-- {
		sb.WriteByte('r')
	}
	for x := dir.X; x < 0; x++ {
		sb.WriteByte('l')
	}
	for y := dir.Y; y > 0; y-- {
		sb.WriteByte('d')
	}
	for y := dir.Y; y < 0; y++ {
		sb.WriteByte('u')
	}
	return sb.String()
}

func labelText(s diagram.Style, phantom bool) string {
	label := quoteLabel(s.Value)
	if phantom {
		return label
	}
	switch s.EffectiveLabelPosition() {
	case diagram.LabelRight:
		label += "'"
	case diagram.LabelInside:
		label += " description"
	}
	return label
}

func quoteLabel(v string) string {
	if strings.Contains(v, `"`) || strings.HasPrefix(v, "{") {
		v = "{" + v + "}"
	}
	return `"` + v + `"`
}

func reparsesAsLabel(quoted, v string) bool {
	l, ok := ParseLabel(quoted)
	return ok && l.Match == quoted && l.Value == v
}

func magnitude(keyword string, n, def int) string {
	if n == def {
		return keyword
	}
	return keyword + "=" + strconv.Itoa(n)
}

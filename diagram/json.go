package diagram

import (
	"encoding/json"
	"fmt"
)

// wireDiagram is the JSON encoding of a Diagram. Nodes are referenced by
// their index in the position-sorted node list instead of by ID.
type wireDiagram struct {
	Nodes []wireNode `json:"nodes"`
	Edges []wireEdge `json:"edges"`
}

type wireNode struct {
	Position [2]int `json:"position"`
	Value    string `json:"value"`
}

type wireEdge struct {
	From                      int                  `json:"from"`
	To                        int                  `json:"to"`
	Value                     string               `json:"value,omitempty"`
	LabelPosition             LabelPosition        `json:"labelPosition"`
	LabelPositionLongitudinal LongitudinalPosition `json:"labelPositionLongitudinal,omitempty"`
	Head                      Head                 `json:"head,omitempty"`
	Tail                      Tail                 `json:"tail,omitempty"`
	Line                      Line                 `json:"line,omitempty"`
	Bend                      int                  `json:"bend,omitempty"`
	Shift                     int                  `json:"shift,omitempty"`
	Loop                      *Loop                `json:"loop,omitempty"`
}

// MarshalJSON encodes a loop as the pair [angle, clockwise].
func (l Loop) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{l.Angle, l.Clockwise})
}

// UnmarshalJSON decodes the pair [angle, clockwise].
func (l *Loop) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("loop: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("loop: expected [angle, clockwise], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &l.Angle); err != nil {
		return fmt.Errorf("loop angle: %w", err)
	}
	if err := json.Unmarshal(pair[1], &l.Clockwise); err != nil {
		return fmt.Errorf("loop clockwise: %w", err)
	}
	return nil
}

// ToJSON encodes the diagram in the JSON wire format. Positions are
// normalized so the top-left occupied cell is (0, 0) and nodes are sorted
// row-major, which makes the encoding independent of node IDs and order.
func ToJSON(d *Diagram) ([]byte, error) {
	nodes := d.Normalize().SortedNodes()

	index := make(map[NodeID]int, len(nodes))
	w := wireDiagram{
		Nodes: make([]wireNode, 0, len(nodes)),
		Edges: make([]wireEdge, 0, len(d.Edges)),
	}
	for i, n := range nodes {
		index[n.ID] = i
		w.Nodes = append(w.Nodes, wireNode{
			Position: [2]int{n.Position.X, n.Position.Y},
			Value:    n.Value,
		})
	}

	for i, e := range d.Edges {
		from, ok := index[e.From]
		if !ok {
			return nil, fmt.Errorf("edge %d: unknown source node %q", i, e.From)
		}
		to, ok := index[e.To]
		if !ok {
			return nil, fmt.Errorf("edge %d: unknown target node %q", i, e.To)
		}
		w.Edges = append(w.Edges, wireEdge{
			From:                      from,
			To:                        to,
			Value:                     e.Value,
			LabelPosition:             e.EffectiveLabelPosition(),
			LabelPositionLongitudinal: e.LabelPositionLongitudinal,
			Head:                      e.Head,
			Tail:                      e.Tail,
			Line:                      e.Line,
			Bend:                      e.Bend,
			Shift:                     e.Shift,
			Loop:                      e.Loop,
		})
	}

	return json.Marshal(w)
}

// FromJSON decodes a diagram from the JSON wire format, allocating a fresh
// ID for every node. The result is checked with ValidateOrError.
func FromJSON(data []byte, ids IDAllocator) (*Diagram, error) {
	var w wireDiagram
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decoding diagram: %w", err)
	}

	d := &Diagram{
		Nodes: make([]Node, 0, len(w.Nodes)),
		Edges: make([]Edge, 0, len(w.Edges)),
	}
	for _, n := range w.Nodes {
		d.Nodes = append(d.Nodes, Node{
			ID:       ids.NextID(),
			Position: Position{X: n.Position[0], Y: n.Position[1]},
			Value:    n.Value,
		})
	}

	nodeID := func(edge, index int) (NodeID, error) {
		if index < 0 || index >= len(d.Nodes) {
			return "", fmt.Errorf("edge %d: node index %d out of range [0, %d)", edge, index, len(d.Nodes))
		}
		return d.Nodes[index].ID, nil
	}

	for i, e := range w.Edges {
		from, err := nodeID(i, e.From)
		if err != nil {
			return nil, err
		}
		to, err := nodeID(i, e.To)
		if err != nil {
			return nil, err
		}
		labelPosition := e.LabelPosition
		if labelPosition == "" {
			labelPosition = LabelLeft
		}
		d.Edges = append(d.Edges, Edge{
			From: from,
			To:   to,
			Style: Style{
				Value:                     e.Value,
				LabelPosition:             labelPosition,
				LabelPositionLongitudinal: e.LabelPositionLongitudinal,
				Head:                      e.Head,
				Tail:                      e.Tail,
				Line:                      e.Line,
				Bend:                      e.Bend,
				Shift:                     e.Shift,
				Loop:                      e.Loop,
			},
		})
	}

	if _, err := ValidateOrError(d); err != nil {
		return nil, err
	}
	return d, nil
}

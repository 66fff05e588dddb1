// Package diagram defines the in-memory model of a commutative diagram:
// nodes placed on an integer grid and directed, styled edges between them.
//
// Nodes are identified by a stable NodeID assigned at creation time by an
// IDAllocator. The two wire formats identify nodes differently (the JSON
// encoding by array index, the tikzcd text by grid position); translation
// happens only at those boundaries.
package diagram

import "sort"

// NodeID is an opaque, stable node identifier.
type NodeID string

// Position is an integer grid cell. X grows to the right, Y grows downwards.
type Position struct {
	X int
	Y int
}

// Add returns the cell displaced by q.
func (p Position) Add(q Position) Position {
	return Position{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the displacement from q to p.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y}
}

// Less orders positions row-major: by Y, then by X.
func (p Position) Less(q Position) bool {
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.X < q.X
}

// LabelPosition places an edge label relative to its line.
type LabelPosition string

const (
	LabelLeft   LabelPosition = "left"
	LabelRight  LabelPosition = "right"
	LabelInside LabelPosition = "inside"
)

// LongitudinalPosition places an edge label along its line.
type LongitudinalPosition string

const (
	NearStart     LongitudinalPosition = "nearstart"
	NearEnd       LongitudinalPosition = "nearend"
	VeryNearStart LongitudinalPosition = "verynearstart"
	VeryNearEnd   LongitudinalPosition = "verynearend"
)

// Head is the decoration drawn at an edge's target end.
type Head string

const (
	HeadNone       Head = "none"
	HeadDefault    Head = "default"
	HeadHarpoon    Head = "harpoon"
	HeadHarpoonAlt Head = "harpoonalt"
	HeadTwoHeads   Head = "twoheads"
)

// Tail is the decoration drawn at an edge's source end.
type Tail string

const (
	TailNone    Tail = "none"
	TailDefault Tail = "default"
	TailHook    Tail = "hook"
	TailHookAlt Tail = "hookalt"
	TailMapsTo  Tail = "mapsto"
	TailTail    Tail = "tail"
)

// Line is the stroke style of an edge.
type Line string

const (
	LineSolid  Line = "solid"
	LineDashed Line = "dashed"
	LineDotted Line = "dotted"
	LineDouble Line = "double"
	LineNone   Line = "none"
)

// Loop describes a self-edge. Angle is in degrees in [0, 360).
type Loop struct {
	Angle     int
	Clockwise bool
}

// Style holds the attributes of an edge apart from its endpoints.
// Zero values mean "not set": no label, default decorations, no bend,
// no shift and no loop.
type Style struct {
	Value                     string
	LabelPosition             LabelPosition
	LabelPositionLongitudinal LongitudinalPosition
	Head                      Head
	Tail                      Tail
	Line                      Line
	Bend                      int // degrees, positive curves left of the direction of travel
	Shift                     int // positive offsets to the right
	Loop                      *Loop
}

// EffectiveLabelPosition returns the label position, defaulting to left.
func (s Style) EffectiveLabelPosition() LabelPosition {
	if s.LabelPosition == "" {
		return LabelLeft
	}
	return s.LabelPosition
}

// Node is a single grid cell with content.
type Node struct {
	ID       NodeID
	Position Position
	Value    string
}

// Edge is a directed arrow between two nodes.
type Edge struct {
	From NodeID
	To   NodeID
	Style
}

// Diagram is a complete diagram value. Callers treat it as immutable: parsing,
// decoding and normalization always produce a new Diagram.
type Diagram struct {
	Nodes []Node
	Edges []Edge
}

// NodeByID returns the node with the given ID, or nil if not found.
func (d *Diagram) NodeByID(id NodeID) *Node {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i]
		}
	}
	return nil
}

// NodeAt returns the node occupying the given cell, or nil if the cell is empty.
func (d *Diagram) NodeAt(pos Position) *Node {
	for i := range d.Nodes {
		if d.Nodes[i].Position == pos {
			return &d.Nodes[i]
		}
	}
	return nil
}

// EdgesFrom returns all edges originating from the given node ID.
func (d *Diagram) EdgesFrom(id NodeID) []Edge {
	var result []Edge
	for _, e := range d.Edges {
		if e.From == id {
			result = append(result, e)
		}
	}
	return result
}

// EdgesTo returns all edges targeting the given node ID.
func (d *Diagram) EdgesTo(id NodeID) []Edge {
	var result []Edge
	for _, e := range d.Edges {
		if e.To == id {
			result = append(result, e)
		}
	}
	return result
}

// Clone returns a deep copy of the diagram.
func (d *Diagram) Clone() *Diagram {
	c := &Diagram{
		Nodes: make([]Node, len(d.Nodes)),
		Edges: make([]Edge, len(d.Edges)),
	}
	copy(c.Nodes, d.Nodes)
	copy(c.Edges, d.Edges)
	for i, e := range c.Edges {
		if e.Loop != nil {
			loop := *e.Loop
			c.Edges[i].Loop = &loop
		}
	}
	return c
}

// Normalize returns a copy of the diagram translated so that the smallest
// occupied X and Y coordinates are both zero.
func (d *Diagram) Normalize() *Diagram {
	c := d.Clone()
	if len(c.Nodes) == 0 {
		return c
	}

	minX, minY := c.Nodes[0].Position.X, c.Nodes[0].Position.Y
	for _, n := range c.Nodes[1:] {
		minX = min(minX, n.Position.X)
		minY = min(minY, n.Position.Y)
	}

	shift := Position{X: -minX, Y: -minY}
	for i := range c.Nodes {
		c.Nodes[i].Position = c.Nodes[i].Position.Add(shift)
	}
	return c
}

// SortedNodes returns the nodes ordered row-major by position. The
// receiver is not modified.
func (d *Diagram) SortedNodes() []Node {
	nodes := make([]Node, len(d.Nodes))
	copy(nodes, d.Nodes)
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Position.Less(nodes[j].Position)
	})
	return nodes
}

package diagram

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDiagram() *Diagram {
	return &Diagram{
		Nodes: []Node{
			{ID: "b", Position: Position{X: 4, Y: 3}, Value: "B"},
			{ID: "a", Position: Position{X: 3, Y: 3}, Value: "A"},
			{ID: "c", Position: Position{X: 3, Y: 4}, Value: "C"},
		},
		Edges: []Edge{
			{From: "a", To: "b", Style: Style{Value: "f", LabelPosition: LabelLeft}},
			{From: "a", To: "c", Style: Style{Value: "g", LabelPosition: LabelRight, Bend: -30}},
			{From: "c", To: "c", Style: Style{LabelPosition: LabelLeft, Loop: &Loop{Angle: 270, Clockwise: true}}},
		},
	}
}

func TestPositionArithmetic(t *testing.T) {
	p := Position{X: 2, Y: 1}
	assert.Equal(t, Position{X: 3, Y: -1}, p.Add(Position{X: 1, Y: -2}))
	assert.Equal(t, Position{X: 1, Y: 3}, p.Sub(Position{X: 1, Y: -2}))
	assert.True(t, Position{X: 5, Y: 0}.Less(Position{X: 0, Y: 1}))
	assert.True(t, Position{X: 0, Y: 1}.Less(Position{X: 1, Y: 1}))
	assert.False(t, p.Less(p))
}

func TestNodeLookups(t *testing.T) {
	d := sampleDiagram()

	n := d.NodeByID("c")
	require.NotNil(t, n)
	assert.Equal(t, "C", n.Value)
	assert.Nil(t, d.NodeByID("missing"))

	n = d.NodeAt(Position{X: 4, Y: 3})
	require.NotNil(t, n)
	assert.Equal(t, NodeID("b"), n.ID)
	assert.Nil(t, d.NodeAt(Position{X: 0, Y: 0}))

	assert.Len(t, d.EdgesFrom("a"), 2)
	assert.Len(t, d.EdgesTo("c"), 2)
	assert.Empty(t, d.EdgesFrom("b"))
}

func TestNormalize(t *testing.T) {
	d := sampleDiagram()
	n := d.Normalize()

	assert.Equal(t, Position{X: 1, Y: 0}, n.NodeByID("b").Position)
	assert.Equal(t, Position{X: 0, Y: 0}, n.NodeByID("a").Position)
	assert.Equal(t, Position{X: 0, Y: 1}, n.NodeByID("c").Position)

	// The input is left untouched.
	assert.Equal(t, Position{X: 4, Y: 3}, d.NodeByID("b").Position)

	empty := (&Diagram{}).Normalize()
	assert.Empty(t, empty.Nodes)
}

func TestNormalizeNegativePositions(t *testing.T) {
	d := &Diagram{Nodes: []Node{
		{ID: "0", Position: Position{X: -2, Y: 5}},
		{ID: "1", Position: Position{X: 1, Y: -1}},
	}}
	n := d.Normalize()
	assert.Equal(t, Position{X: 0, Y: 6}, n.Nodes[0].Position)
	assert.Equal(t, Position{X: 3, Y: 0}, n.Nodes[1].Position)
}

func TestCloneIsDeep(t *testing.T) {
	d := sampleDiagram()
	c := d.Clone()

	c.Nodes[0].Value = "changed"
	c.Edges[2].Loop.Angle = 90

	assert.Equal(t, "B", d.Nodes[0].Value)
	assert.Equal(t, 270, d.Edges[2].Loop.Angle)
}

func TestSortedNodes(t *testing.T) {
	d := sampleDiagram()
	var ids []NodeID
	for _, n := range d.SortedNodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []NodeID{"a", "b", "c"}, ids)
	assert.Equal(t, NodeID("b"), d.Nodes[0].ID, "receiver order unchanged")
}

func TestEffectiveLabelPosition(t *testing.T) {
	assert.Equal(t, LabelLeft, Style{}.EffectiveLabelPosition())
	assert.Equal(t, LabelInside, Style{LabelPosition: LabelInside}.EffectiveLabelPosition())
}

func TestCounterAllocator(t *testing.T) {
	a := NewCounterAllocator(0)
	assert.Equal(t, NodeID("0"), a.NextID())
	assert.Equal(t, NodeID("1"), a.NextID())
	assert.Equal(t, NodeID("2"), a.NextID())

	b := NewCounterAllocator(10)
	assert.Equal(t, NodeID("10"), b.NextID())
}

func TestUUIDAllocatorConcurrent(t *testing.T) {
	var alloc UUIDAllocator

	const workers, perWorker = 8, 50
	var (
		mu   sync.Mutex
		seen = make(map[NodeID]bool)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := alloc.NextID()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

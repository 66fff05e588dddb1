package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJSONEncoding(t *testing.T) {
	d := &Diagram{
		Nodes: []Node{
			{ID: "b", Position: Position{X: 2, Y: 1}, Value: "B"},
			{ID: "a", Position: Position{X: 1, Y: 1}, Value: "A"},
		},
		Edges: []Edge{
			{From: "a", To: "b", Style: Style{Value: "f", Head: HeadHarpoon}},
			{From: "b", To: "b", Style: Style{LabelPosition: LabelRight, Loop: &Loop{Angle: 270, Clockwise: true}}},
		},
	}

	data, err := ToJSON(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"nodes": [
			{"position": [0, 0], "value": "A"},
			{"position": [1, 0], "value": "B"}
		],
		"edges": [
			{"from": 0, "to": 1, "value": "f", "labelPosition": "left", "head": "harpoon"},
			{"from": 1, "to": 1, "labelPosition": "right", "loop": [270, true]}
		]
	}`, string(data))
}

func TestToJSONUnknownNode(t *testing.T) {
	d := &Diagram{
		Nodes: []Node{{ID: "a"}},
		Edges: []Edge{{From: "a", To: "ghost"}},
	}
	_, err := ToJSON(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestFromJSON(t *testing.T) {
	src := `{
		"nodes": [
			{"position": [0, 0], "value": "A"},
			{"position": [1, 0], "value": "B"}
		],
		"edges": [
			{"from": 0, "to": 1, "value": "f", "tail": "hookalt", "line": "dashed", "bend": -45, "shift": 2},
			{"from": 1, "to": 1, "labelPosition": "inside", "loop": [90, false]}
		]
	}`

	d, err := FromJSON([]byte(src), NewCounterAllocator(0))
	require.NoError(t, err)
	require.Len(t, d.Nodes, 2)
	require.Len(t, d.Edges, 2)

	assert.Equal(t, Node{ID: "0", Position: Position{X: 0, Y: 0}, Value: "A"}, d.Nodes[0])
	assert.Equal(t, Node{ID: "1", Position: Position{X: 1, Y: 0}, Value: "B"}, d.Nodes[1])

	assert.Equal(t, Edge{From: "0", To: "1", Style: Style{
		Value:         "f",
		LabelPosition: LabelLeft,
		Tail:          TailHookAlt,
		Line:          LineDashed,
		Bend:          -45,
		Shift:         2,
	}}, d.Edges[0])

	loop := d.Edges[1]
	assert.Equal(t, NodeID("1"), loop.From)
	assert.Equal(t, NodeID("1"), loop.To)
	assert.Equal(t, LabelInside, loop.LabelPosition)
	require.NotNil(t, loop.Loop)
	assert.Equal(t, Loop{Angle: 90, Clockwise: false}, *loop.Loop)
}

func TestFromJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"malformed", `{"nodes": [`, "decoding diagram"},
		{"index out of range", `{"nodes": [{"position": [0, 0], "value": "A"}], "edges": [{"from": 0, "to": 3}]}`, "out of range"},
		{"negative index", `{"nodes": [{"position": [0, 0], "value": "A"}], "edges": [{"from": -1, "to": 0}]}`, "out of range"},
		{"bad loop", `{"nodes": [{"position": [0, 0], "value": "A"}], "edges": [{"from": 0, "to": 0, "loop": [1]}]}`, "loop"},
		{"duplicate position", `{"nodes": [{"position": [0, 0], "value": "A"}, {"position": [0, 0], "value": "B"}], "edges": []}`, "unique_position"},
		{"loop between nodes", `{"nodes": [{"position": [0, 0], "value": "A"}, {"position": [1, 0], "value": "B"}], "edges": [{"from": 0, "to": 1, "loop": [0, false]}]}`, "loop_self"},
		{"unknown head", `{"nodes": [{"position": [0, 0], "value": "A"}, {"position": [1, 0], "value": "B"}], "edges": [{"from": 0, "to": 1, "head": "triangle"}]}`, "attribute_values"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromJSON([]byte(tt.src), NewCounterAllocator(0))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestJSONNormalizationIsIdempotent(t *testing.T) {
	d := sampleDiagram()

	first, err := ToJSON(d)
	require.NoError(t, err)

	decoded, err := FromJSON(first, UUIDAllocator{})
	require.NoError(t, err)

	second, err := ToJSON(decoded)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

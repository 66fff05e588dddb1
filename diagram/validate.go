package diagram

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a validation diagnostic.
type Severity int

const (
	// Error means the diagram violates a structural invariant.
	Error Severity = iota
	// Warning means the diagram is usable but probably not what was meant.
	Warning
	// Info is an informational note.
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	case Info:
		return "INFO"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a single validation finding.
type Diagnostic struct {
	Rule     string   // rule identifier (e.g., "unique_position")
	Severity Severity // ERROR, WARNING, or INFO
	Message  string   // human-readable description
	NodeID   NodeID   // related node ID (optional)
	Edge     *EdgeRef // related edge (optional)
	Fix      string   // suggested fix (optional)
}

// EdgeRef identifies an edge by its index and endpoints.
type EdgeRef struct {
	Index int
	From  NodeID
	To    NodeID
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", d.Severity, d.Rule, d.Message)
	if d.NodeID != "" {
		fmt.Fprintf(&b, " (node: %s)", d.NodeID)
	}
	if d.Edge != nil {
		fmt.Fprintf(&b, " (edge %d: %s -> %s)", d.Edge.Index, d.Edge.From, d.Edge.To)
	}
	if d.Fix != "" {
		fmt.Fprintf(&b, " -- fix: %s", d.Fix)
	}
	return b.String()
}

// LintRule is the interface for a single validation rule.
type LintRule interface {
	Name() string
	Apply(d *Diagram) []Diagnostic
}

// ValidationError is returned by ValidateOrError when error-severity diagnostics exist.
type ValidationError struct {
	Diagnostics []Diagnostic
}

func (e *ValidationError) Error() string {
	var msgs []string
	for _, d := range e.Diagnostics {
		msgs = append(msgs, d.String())
	}
	return fmt.Sprintf("validation failed with %d error(s):\n  %s", len(e.Diagnostics), strings.Join(msgs, "\n  "))
}

// Validate runs all built-in rules (and any extra rules) against the diagram.
// Returns all diagnostics regardless of severity.
func Validate(d *Diagram, extraRules ...LintRule) []Diagnostic {
	rules := builtInRules()
	rules = append(rules, extraRules...)

	var diagnostics []Diagnostic
	for _, rule := range rules {
		diagnostics = append(diagnostics, rule.Apply(d)...)
	}
	return diagnostics
}

// ValidateOrError runs Validate and returns an error if any error-severity
// diagnostics are found. Non-error diagnostics are still returned.
func ValidateOrError(d *Diagram, extraRules ...LintRule) ([]Diagnostic, error) {
	diagnostics := Validate(d, extraRules...)

	var errors []Diagnostic
	for _, diag := range diagnostics {
		if diag.Severity == Error {
			errors = append(errors, diag)
		}
	}
	if len(errors) > 0 {
		return diagnostics, &ValidationError{Diagnostics: errors}
	}
	return diagnostics, nil
}

func builtInRules() []LintRule {
	return []LintRule{
		uniqueIDRule{},
		uniquePositionRule{},
		edgeEndpointsRule{},
		loopSelfRule{},
		bendLoopExclusiveRule{},
		attributeValuesRule{},
		loopAngleRule{},
		selfEdgeRule{},
		removableNodeRule{},
	}
}

var (
	validLabelPositions = map[LabelPosition]bool{
		"": true, LabelLeft: true, LabelRight: true, LabelInside: true,
	}
	validLongitudinal = map[LongitudinalPosition]bool{
		"": true, NearStart: true, NearEnd: true, VeryNearStart: true, VeryNearEnd: true,
	}
	validHeads = map[Head]bool{
		"": true, HeadNone: true, HeadDefault: true, HeadHarpoon: true, HeadHarpoonAlt: true, HeadTwoHeads: true,
	}
	validTails = map[Tail]bool{
		"": true, TailNone: true, TailDefault: true, TailHook: true, TailHookAlt: true, TailMapsTo: true, TailTail: true,
	}
	validLines = map[Line]bool{
		"": true, LineSolid: true, LineDashed: true, LineDotted: true, LineDouble: true, LineNone: true,
	}
)

func edgeRef(i int, e Edge) *EdgeRef {
	return &EdgeRef{Index: i, From: e.From, To: e.To}
}

// --- Rule implementations ---

// unique_id: node IDs must be unique.
type uniqueIDRule struct{}

func (uniqueIDRule) Name() string { return "unique_id" }

func (uniqueIDRule) Apply(d *Diagram) []Diagnostic {
	var diags []Diagnostic
	seen := make(map[NodeID]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if seen[n.ID] {
			diags = append(diags, Diagnostic{
				Rule:     "unique_id",
				Severity: Error,
				Message:  fmt.Sprintf("node ID %q is used more than once", n.ID),
				NodeID:   n.ID,
			})
		}
		seen[n.ID] = true
	}
	return diags
}

// unique_position: at most one node per grid cell.
type uniquePositionRule struct{}

func (uniquePositionRule) Name() string { return "unique_position" }

func (uniquePositionRule) Apply(d *Diagram) []Diagnostic {
	var diags []Diagnostic
	for i, n := range d.Nodes {
		if first := d.NodeAt(n.Position); first != &d.Nodes[i] {
			diags = append(diags, Diagnostic{
				Rule:     "unique_position",
				Severity: Error,
				Message:  fmt.Sprintf("cell (%d, %d) is already occupied by node %q", n.Position.X, n.Position.Y, first.ID),
				NodeID:   n.ID,
				Fix:      "move the node to an empty cell",
			})
		}
	}
	return diags
}

// edge_endpoints: every edge must reference existing nodes.
type edgeEndpointsRule struct{}

func (edgeEndpointsRule) Name() string { return "edge_endpoints" }

func (edgeEndpointsRule) Apply(d *Diagram) []Diagnostic {
	ids := make(map[NodeID]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		ids[n.ID] = true
	}

	var diags []Diagnostic
	for i, e := range d.Edges {
		if !ids[e.From] {
			diags = append(diags, Diagnostic{
				Rule:     "edge_endpoints",
				Severity: Error,
				Message:  fmt.Sprintf("edge source %q does not exist", e.From),
				Edge:     edgeRef(i, e),
			})
		}
		if !ids[e.To] {
			diags = append(diags, Diagnostic{
				Rule:     "edge_endpoints",
				Severity: Error,
				Message:  fmt.Sprintf("edge target %q does not exist", e.To),
				Edge:     edgeRef(i, e),
			})
		}
	}
	return diags
}

// loop_self: a loop edge must start and end at the same node.
type loopSelfRule struct{}

func (loopSelfRule) Name() string { return "loop_self" }

func (loopSelfRule) Apply(d *Diagram) []Diagnostic {
	var diags []Diagnostic
	for i, e := range d.Edges {
		if e.Loop != nil && e.From != e.To {
			diags = append(diags, Diagnostic{
				Rule:     "loop_self",
				Severity: Error,
				Message:  "loop edge connects two different nodes",
				Edge:     edgeRef(i, e),
				Fix:      "remove the loop or make the edge a self-edge",
			})
		}
	}
	return diags
}

// bend_loop_exclusive: an edge cannot both bend and loop.
type bendLoopExclusiveRule struct{}

func (bendLoopExclusiveRule) Name() string { return "bend_loop_exclusive" }

func (bendLoopExclusiveRule) Apply(d *Diagram) []Diagnostic {
	var diags []Diagnostic
	for i, e := range d.Edges {
		if e.Loop != nil && e.Bend != 0 {
			diags = append(diags, Diagnostic{
				Rule:     "bend_loop_exclusive",
				Severity: Error,
				Message:  fmt.Sprintf("loop edge has bend %d", e.Bend),
				Edge:     edgeRef(i, e),
				Fix:      "set bend to 0",
			})
		}
	}
	return diags
}

// attribute_values: enumerated style attributes must use known values.
type attributeValuesRule struct{}

func (attributeValuesRule) Name() string { return "attribute_values" }

func (attributeValuesRule) Apply(d *Diagram) []Diagnostic {
	var diags []Diagnostic
	report := func(i int, e Edge, attr, value string) {
		diags = append(diags, Diagnostic{
			Rule:     "attribute_values",
			Severity: Error,
			Message:  fmt.Sprintf("unknown %s %q", attr, value),
			Edge:     edgeRef(i, e),
		})
	}
	for i, e := range d.Edges {
		if !validLabelPositions[e.LabelPosition] {
			report(i, e, "labelPosition", string(e.LabelPosition))
		}
		if !validLongitudinal[e.LabelPositionLongitudinal] {
			report(i, e, "labelPositionLongitudinal", string(e.LabelPositionLongitudinal))
		}
		if !validHeads[e.Head] {
			report(i, e, "head", string(e.Head))
		}
		if !validTails[e.Tail] {
			report(i, e, "tail", string(e.Tail))
		}
		if !validLines[e.Line] {
			report(i, e, "line", string(e.Line))
		}
	}
	return diags
}

// loop_angle: loop angles are degrees in [0, 360).
type loopAngleRule struct{}

func (loopAngleRule) Name() string { return "loop_angle" }

func (loopAngleRule) Apply(d *Diagram) []Diagnostic {
	var diags []Diagnostic
	for i, e := range d.Edges {
		if e.Loop != nil && (e.Loop.Angle < 0 || e.Loop.Angle >= 360) {
			diags = append(diags, Diagnostic{
				Rule:     "loop_angle",
				Severity: Error,
				Message:  fmt.Sprintf("loop angle %d is outside [0, 360)", e.Loop.Angle),
				Edge:     edgeRef(i, e),
			})
		}
	}
	return diags
}

// self_edge: a self-edge without a loop draws as a zero-length arrow.
type selfEdgeRule struct{}

func (selfEdgeRule) Name() string { return "self_edge" }

func (selfEdgeRule) Apply(d *Diagram) []Diagnostic {
	var diags []Diagnostic
	for i, e := range d.Edges {
		if e.Loop == nil && e.From == e.To {
			diags = append(diags, Diagnostic{
				Rule:     "self_edge",
				Severity: Warning,
				Message:  "edge starts and ends at the same node but is not a loop",
				Edge:     edgeRef(i, e),
				Fix:      "add a loop attribute",
			})
		}
	}
	return diags
}

// removable_node: an empty node without edges carries no meaning.
type removableNodeRule struct{}

func (removableNodeRule) Name() string { return "removable_node" }

func (removableNodeRule) Apply(d *Diagram) []Diagnostic {
	var diags []Diagnostic
	for _, n := range d.Nodes {
		if n.Value != "" || len(d.EdgesFrom(n.ID)) > 0 || len(d.EdgesTo(n.ID)) > 0 {
			continue
		}
		diags = append(diags, Diagnostic{
			Rule:     "removable_node",
			Severity: Info,
			Message:  fmt.Sprintf("empty node at (%d, %d) has no edges", n.Position.X, n.Position.Y),
			NodeID:   n.ID,
			Fix:      "remove the node",
		})
	}
	return diags
}

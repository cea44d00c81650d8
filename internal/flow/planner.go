package flow

import (
	"github.com/goswamishashwatpuri/nextract/internal/task"
	"github.com/goswamishashwatpuri/nextract/internal/utils"
)

// Planner validates a workflow graph against the task catalogue and computes
// a deterministic execution order.
type Planner struct {
	registry *task.Registry
}

// NewPlanner creates a planner over the given task registry.
func NewPlanner(registry *task.Registry) *Planner {
	return &Planner{registry: registry}
}

// Plan validates the definition and returns node ids in execution order.
//
// The order is a topological order of the edge graph (Kahn's algorithm).
// Nodes with no ordering constraint between them keep the relative order in
// which they appear in the definition, so repeated runs of an unchanged
// workflow replay identically.
func (p *Planner) Plan(def *Definition) ([]string, error) {
	if err := p.Validate(def); err != nil {
		return nil, err
	}

	indegree := make(map[string]int, len(def.Nodes))
	successors := make(map[string][]string, len(def.Nodes))
	for i := range def.Nodes {
		indegree[def.Nodes[i].ID] = 0
	}
	for i := range def.Edges {
		e := &def.Edges[i]
		successors[e.Source] = append(successors[e.Source], e.Target)
		indegree[e.Target]++
	}

	// Ready queue seeded and drained in definition order for determinism.
	var order []string
	var ready []string
	for i := range def.Nodes {
		if indegree[def.Nodes[i].ID] == 0 {
			ready = append(ready, def.Nodes[i].ID)
		}
	}

	position := make(map[string]int, len(def.Nodes))
	for i := range def.Nodes {
		position[def.Nodes[i].ID] = i
	}

	for len(ready) > 0 {
		// Pick the ready node that appears earliest in the definition.
		best := 0
		for i := 1; i < len(ready); i++ {
			if position[ready[i]] < position[ready[best]] {
				best = i
			}
		}
		id := ready[best]
		ready = append(ready[:best], ready[best+1:]...)
		order = append(order, id)

		for _, succ := range successors[id] {
			indegree[succ]--
			if indegree[succ] == 0 {
				ready = append(ready, succ)
			}
		}
	}

	if len(order) != len(def.Nodes) {
		// Some node never reached indegree zero: the graph has a cycle.
		return nil, ErrInvalidGraph
	}
	return order, nil
}

// Validate checks the structural invariants of the graph without ordering it:
// known task types, known edge endpoints and handles, kind compatibility, at
// most one edge per (node, input), SELECT literals inside their option set,
// and every required input satisfied by a literal or an incoming edge.
func (p *Planner) Validate(def *Definition) error {
	if def == nil || len(def.Nodes) == 0 {
		return ErrEmptyGraph
	}

	defs := make(map[string]*task.Definition, len(def.Nodes))
	seen := make(map[string]bool, len(def.Nodes))
	for i := range def.Nodes {
		n := &def.Nodes[i]
		if seen[n.ID] {
			return &UnknownReferenceError{What: "duplicate node id", Ref: n.ID}
		}
		seen[n.ID] = true

		td, err := p.registry.Lookup(n.Type)
		if err != nil {
			return &UnknownReferenceError{What: "task type", Ref: string(n.Type)}
		}
		defs[n.ID] = td
	}

	edgeTargets := make(map[string]map[string]bool, len(def.Nodes))
	for i := range def.Edges {
		e := &def.Edges[i]

		srcDef, ok := defs[e.Source]
		if !ok {
			return &UnknownReferenceError{What: "edge source node", Ref: e.Source}
		}
		dstDef, ok := defs[e.Target]
		if !ok {
			return &UnknownReferenceError{What: "edge target node", Ref: e.Target}
		}

		srcOut, ok := srcDef.Output(e.SourceHandle)
		if !ok {
			return &UnknownReferenceError{What: "source output", Ref: e.Source + "." + e.SourceHandle}
		}
		dstIn, ok := dstDef.Input(e.TargetHandle)
		if !ok {
			return &UnknownReferenceError{What: "target input", Ref: e.Target + "." + e.TargetHandle}
		}

		if !kindsCompatible(srcOut.Kind, dstIn.Kind) {
			return &TypeMismatchError{
				EdgeID:       e.ID,
				Source:       e.Source,
				SourceHandle: e.SourceHandle,
				Target:       e.Target,
				TargetHandle: e.TargetHandle,
				SourceKind:   string(srcOut.Kind),
				TargetKind:   string(dstIn.Kind),
			}
		}

		if edgeTargets[e.Target] == nil {
			edgeTargets[e.Target] = make(map[string]bool)
		}
		if edgeTargets[e.Target][e.TargetHandle] {
			return &DuplicateInputEdgeError{NodeID: e.Target, Input: e.TargetHandle}
		}
		edgeTargets[e.Target][e.TargetHandle] = true
	}

	for i := range def.Nodes {
		n := &def.Nodes[i]
		td := defs[n.ID]
		for _, in := range td.Inputs {
			if v := n.Inputs[in.Name]; v != "" {
				if in.Kind == task.ParamSelect && !utils.SliceContains(in.Options, v) {
					return &InvalidOptionError{NodeID: n.ID, Input: in.Name, Value: v, Options: in.Options}
				}
				continue
			}
			if !in.Required {
				continue
			}
			if edgeTargets[n.ID][in.Name] {
				continue
			}
			return &UnsatisfiedInputError{NodeID: n.ID, Input: in.Name}
		}
	}

	return nil
}

// kindsCompatible reports whether a source output kind may feed a target
// input kind. SELECT inputs accept plain strings; everything else must match
// exactly.
func kindsCompatible(src, dst task.ParamKind) bool {
	if src == dst {
		return true
	}
	if src == task.ParamString && dst == task.ParamSelect {
		return true
	}
	return false
}

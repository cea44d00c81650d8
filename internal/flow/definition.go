// Package flow parses the serialized node/edge graph of a workflow and plans
// a deterministic execution order over it.
package flow

import (
	"fmt"

	"github.com/goswamishashwatpuri/nextract/internal/task"
	"github.com/goswamishashwatpuri/nextract/internal/utils"
)

// Node is one task instance inside a workflow graph.
type Node struct {
	ID   string    `json:"id"`
	Type task.Type `json:"type"`
	// Inputs holds literal overrides keyed by input name.
	Inputs map[string]string `json:"inputs,omitempty"`
	// Position is editor layout metadata, irrelevant to execution.
	Position *Position `json:"position,omitempty"`
}

// Position is the editor canvas position of a node.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Edge connects a source node's named output to a target node's named input.
type Edge struct {
	ID           string `json:"id,omitempty"`
	Source       string `json:"source"`
	SourceHandle string `json:"sourceHandle"`
	Target       string `json:"target"`
	TargetHandle string `json:"targetHandle"`
}

// Definition is the deserialized workflow graph.
type Definition struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Parse deserializes a workflow definition from its stored JSON form.
func Parse(definition string) (*Definition, error) {
	var def Definition
	if err := utils.UnmarshalString(definition, &def); err != nil {
		return nil, fmt.Errorf("invalid workflow definition: %w", err)
	}
	return &def, nil
}

// Node returns the node with the given id.
func (d *Definition) Node(id string) (*Node, bool) {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i], true
		}
	}
	return nil, false
}

// IncomingEdges returns the edges feeding the given node, keyed by input name.
func (d *Definition) IncomingEdges(nodeID string) map[string]*Edge {
	in := make(map[string]*Edge)
	for i := range d.Edges {
		if d.Edges[i].Target == nodeID {
			in[d.Edges[i].TargetHandle] = &d.Edges[i]
		}
	}
	return in
}

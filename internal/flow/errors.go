package flow

import (
	"errors"
	"fmt"
)

// ErrInvalidGraph reports a graph that cannot be ordered: it contains a cycle
// or is otherwise structurally malformed.
var ErrInvalidGraph = errors.New("invalid workflow graph")

// ErrEmptyGraph reports a definition without any node.
var ErrEmptyGraph = errors.New("workflow graph has no nodes")

// UnsatisfiedInputError reports a required input with neither a literal value
// nor an incoming edge.
type UnsatisfiedInputError struct {
	NodeID string
	Input  string
}

func (e *UnsatisfiedInputError) Error() string {
	return fmt.Sprintf("node %s: required input %q has no value and no incoming edge", e.NodeID, e.Input)
}

// TypeMismatchError reports an edge connecting incompatible value kinds.
type TypeMismatchError struct {
	EdgeID       string
	SourceKind   string
	TargetKind   string
	Source       string
	SourceHandle string
	Target       string
	TargetHandle string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("edge %s.%s -> %s.%s: output kind %s does not match input kind %s",
		e.Source, e.SourceHandle, e.Target, e.TargetHandle, e.SourceKind, e.TargetKind)
}

// DuplicateInputEdgeError reports two edges feeding the same (node, input) pair.
type DuplicateInputEdgeError struct {
	NodeID string
	Input  string
}

func (e *DuplicateInputEdgeError) Error() string {
	return fmt.Sprintf("node %s: input %q is fed by more than one edge", e.NodeID, e.Input)
}

// InvalidOptionError reports a SELECT input literal outside the declared
// option set.
type InvalidOptionError struct {
	NodeID  string
	Input   string
	Value   string
	Options []string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("node %s: input %q has value %q, want one of %v", e.NodeID, e.Input, e.Value, e.Options)
}

// UnknownReferenceError reports an edge or node referencing something that
// does not exist in the definition or the task catalogue.
type UnknownReferenceError struct {
	What string
	Ref  string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unknown %s: %s", e.What, e.Ref)
}

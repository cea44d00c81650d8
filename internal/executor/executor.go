// Package executor provides the per-task-type executors for workflow phase
// execution. Every executor follows one uniform contract: read declared
// inputs from the environment, perform the task's effect, write declared
// outputs back, and return an error on failure. Errors never propagate past
// the phase runner; they become phase-level state.
package executor

import (
	"context"

	"github.com/goswamishashwatpuri/nextract/internal/browser"
	"github.com/goswamishashwatpuri/nextract/internal/task"
)

// LogSink receives a phase's log entries as they happen.
type LogSink interface {
	Info(msg string)
	Error(msg string)
}

// Environment is one phase's view of the run: resolved inputs, collected
// outputs, the run-shared browser handles and the phase log.
type Environment interface {
	// GetInput returns the resolved value of a declared input, or "" when
	// the value is absent. Executors treat a missing required input as a
	// phase failure, not a crash.
	GetInput(name string) string
	// SetOutput records a declared output for downstream phases.
	SetOutput(name, value string)

	// Browser and Page are shared by reference across all phases of a run.
	Browser() *browser.Browser
	SetBrowser(b *browser.Browser)
	Page() *browser.Page
	SetPage(p *browser.Page)

	Log() LogSink
}

// Executor executes one task type.
type Executor interface {
	// Type returns the task type this executor implements.
	Type() task.Type

	// Execute performs the task against the environment. A nil return means
	// the phase completed and declared outputs were written.
	Execute(ctx context.Context, env Environment) error
}

// CredentialResolver resolves a credential reference to its plaintext value.
// The plaintext only ever lives inside one executor invocation.
type CredentialResolver interface {
	ResolveCredential(ctx context.Context, id string) (string, error)
}

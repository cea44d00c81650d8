// Package engine runs one workflow execution end to end: it walks the
// planned phases in order, resolves each phase's inputs, meters credits,
// invokes the task executor and persists every state transition as it
// happens so pollers always see live progress.
package engine

import (
	"context"
	"time"

	"github.com/goswamishashwatpuri/nextract/internal/model"
)

// Store is the persistence surface the engine writes through. Every method
// commits immediately; the engine never batches state, because API clients
// poll these rows while the run is still in flight.
type Store interface {
	// MarkExecutionStarted moves the execution to RUNNING and stamps its
	// start time.
	MarkExecutionStarted(ctx context.Context, executionID string, startedAt time.Time) error

	// FinishExecution records the terminal status, total credits consumed
	// and completion time. Called exactly once per run.
	FinishExecution(ctx context.Context, executionID string, status model.ExecutionStatus, creditsConsumed int64, completedAt time.Time) error

	// MarkPhaseStarted moves a phase to RUNNING with its resolved inputs
	// snapshot, before the executor is invoked.
	MarkPhaseStarted(ctx context.Context, phaseID string, startedAt time.Time, inputs string) error

	// FinishPhase records a phase's terminal status, its outputs snapshot
	// (nil when it failed before producing outputs) and the credits it
	// consumed.
	FinishPhase(ctx context.Context, phaseID string, status model.PhaseStatus, outputs *string, creditsConsumed int64, completedAt time.Time) error

	// AppendLog appends one immutable log row for a phase.
	AppendLog(ctx context.Context, log *model.TExecutionLog) error

	// GetCredits returns the user's current balance, -1 when no balance row
	// exists.
	GetCredits(ctx context.Context, userID string) (int64, error)

	// TryDecrementCredits atomically subtracts amount from the user's
	// balance when the balance covers it. Returns false, without changing
	// anything, when it does not.
	TryDecrementCredits(ctx context.Context, userID string, amount int64) (bool, error)
}

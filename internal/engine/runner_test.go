package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goswamishashwatpuri/nextract/internal/executor"
	"github.com/goswamishashwatpuri/nextract/internal/flow"
	"github.com/goswamishashwatpuri/nextract/internal/model"
	"github.com/goswamishashwatpuri/nextract/internal/task"
)

// memStore is an in-memory Store used to observe every persistence call the
// runner makes, in the order it makes them.
type memStore struct {
	mu sync.Mutex

	executions map[string]*model.TWorkflowExecution
	phases     map[string]*model.TExecutionPhase
	logs       []*model.TExecutionLog
	credits    map[string]int64
	hasBalance map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		executions: make(map[string]*model.TWorkflowExecution),
		phases:     make(map[string]*model.TExecutionPhase),
		credits:    make(map[string]int64),
		hasBalance: make(map[string]bool),
	}
}

func (s *memStore) setBalance(userID string, credits int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credits[userID] = credits
	s.hasBalance[userID] = true
}

func (s *memStore) MarkExecutionStarted(_ context.Context, executionID string, startedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.executions[executionID]
	e.Status = string(model.ExecutionStatusRunning)
	e.StartedAt = &startedAt
	return nil
}

func (s *memStore) FinishExecution(_ context.Context, executionID string, status model.ExecutionStatus, creditsConsumed int64, completedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.executions[executionID]
	e.Status = string(status)
	e.CreditsConsumed = creditsConsumed
	e.CompletedAt = &completedAt
	return nil
}

func (s *memStore) MarkPhaseStarted(_ context.Context, phaseID string, startedAt time.Time, inputs string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.phases[phaseID]
	p.Status = string(model.PhaseStatusRunning)
	p.StartedAt = &startedAt
	p.Inputs = &inputs
	return nil
}

func (s *memStore) FinishPhase(_ context.Context, phaseID string, status model.PhaseStatus, outputs *string, creditsConsumed int64, completedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.phases[phaseID]
	p.Status = string(status)
	p.Outputs = outputs
	p.CreditsConsumed = creditsConsumed
	p.CompletedAt = &completedAt
	return nil
}

func (s *memStore) AppendLog(_ context.Context, log *model.TExecutionLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, log)
	return nil
}

func (s *memStore) GetCredits(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasBalance[userID] {
		return -1, nil
	}
	return s.credits[userID], nil
}

func (s *memStore) TryDecrementCredits(_ context.Context, userID string, amount int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasBalance[userID] || s.credits[userID] < amount {
		return false, nil
	}
	s.credits[userID] -= amount
	return true, nil
}

func (s *memStore) phaseLogs(phaseID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, l := range s.logs {
		if l.PhaseID == phaseID {
			out = append(out, l.Message)
		}
	}
	return out
}

// stubExecutor lets a test control one task type's behavior.
type stubExecutor struct {
	typ   task.Type
	calls int
	run   func(ctx context.Context, env executor.Environment) error
}

func (s *stubExecutor) Type() task.Type { return s.typ }

func (s *stubExecutor) Execute(ctx context.Context, env executor.Environment) error {
	s.calls++
	if s.run == nil {
		return nil
	}
	return s.run(ctx, env)
}

// jsonChainDefinition wires ADD_PROPERTY_TO_JSON into READ_PROPERTY_FROM_JSON
// through an edge, so the run exercises output-to-input flow without a
// browser.
func jsonChainDefinition() *flow.Definition {
	return &flow.Definition{
		Nodes: []flow.Node{
			{ID: "add", Type: task.TypeAddPropertyToJSON, Inputs: map[string]string{
				task.ParamJSON:          `{"site":"example"}`,
				task.ParamPropertyName:  "price",
				task.ParamPropertyValue: "42",
			}},
			{ID: "read", Type: task.TypeReadPropertyFromJSON, Inputs: map[string]string{
				task.ParamPropertyName: "price",
			}},
		},
		Edges: []flow.Edge{
			{Source: "add", SourceHandle: task.ParamUpdatedJSON, Target: "read", TargetHandle: task.ParamJSON},
		},
	}
}

// materialize builds the execution and phase rows the API layer would create
// before handing off to the runner.
func materialize(t *testing.T, tasks *task.Registry, def *flow.Definition, userID string) (*model.TWorkflowExecution, []*model.TExecutionPhase) {
	t.Helper()

	order, err := flow.NewPlanner(tasks).Plan(def)
	require.NoError(t, err)

	now := time.Now()
	execution := &model.TWorkflowExecution{
		ID:        "exec-1",
		UserID:    userID,
		Status:    string(model.ExecutionStatusPending),
		Trigger:   string(model.ExecutionTriggerManual),
		CreatedAt: &now,
	}

	var phases []*model.TExecutionPhase
	for i, nodeID := range order {
		node, ok := def.Node(nodeID)
		require.True(t, ok)
		phases = append(phases, &model.TExecutionPhase{
			ID:          fmt.Sprintf("phase-%d", i+1),
			ExecutionID: execution.ID,
			UserID:      userID,
			Status:      string(model.PhaseStatusCreated),
			Number:      i + 1,
			NodeID:      nodeID,
			TaskType:    string(node.Type),
		})
	}
	return execution, phases
}

func seedStore(store *memStore, execution *model.TWorkflowExecution, phases []*model.TExecutionPhase) {
	store.executions[execution.ID] = execution
	for _, p := range phases {
		store.phases[p.ID] = p
	}
}

func realJSONExecutors(t *testing.T) *executor.Registry {
	t.Helper()
	reg := executor.NewRegistry()
	reg.MustRegister(&executor.AddPropertyToJSONExecutor{})
	reg.MustRegister(&executor.ReadPropertyFromJSONExecutor{})
	return reg
}

func TestRunCompletesAndMetersCredits(t *testing.T) {
	tasks := task.NewRegistry()
	store := newMemStore()
	store.setBalance("user-1", 100)

	def := jsonChainDefinition()
	execution, phases := materialize(t, tasks, def, "user-1")
	seedStore(store, execution, phases)

	runner := NewRunner(tasks, realJSONExecutors(t), store, time.Minute)
	runner.Run(context.Background(), execution, def, phases)

	assert.Equal(t, string(model.ExecutionStatusCompleted), execution.Status)
	require.NotNil(t, execution.StartedAt)
	require.NotNil(t, execution.CompletedAt)

	// Both task types cost 1 credit.
	assert.Equal(t, int64(2), execution.CreditsConsumed)
	balance, _ := store.GetCredits(context.Background(), "user-1")
	assert.Equal(t, int64(98), balance)

	var totalPhaseCredits int64
	for _, p := range phases {
		assert.Equal(t, string(model.PhaseStatusCompleted), p.Status)
		require.NotNil(t, p.Inputs)
		require.NotNil(t, p.Outputs)
		totalPhaseCredits += p.CreditsConsumed
	}
	assert.Equal(t, execution.CreditsConsumed, totalPhaseCredits)

	// The read phase received the add phase's output over the edge.
	assert.Contains(t, *phases[1].Inputs, "price")
	assert.Contains(t, *phases[1].Outputs, "42")
}

func TestRunFailFastLeavesDownstreamCreated(t *testing.T) {
	tasks := task.NewRegistry()
	store := newMemStore()
	store.setBalance("user-1", 100)

	def := jsonChainDefinition()
	execution, phases := materialize(t, tasks, def, "user-1")
	seedStore(store, execution, phases)

	failing := &stubExecutor{typ: task.TypeAddPropertyToJSON, run: func(context.Context, executor.Environment) error {
		return errors.New("boom")
	}}
	untouched := &stubExecutor{typ: task.TypeReadPropertyFromJSON}
	reg := executor.NewRegistry()
	reg.MustRegister(failing)
	reg.MustRegister(untouched)

	runner := NewRunner(tasks, reg, store, time.Minute)
	runner.Run(context.Background(), execution, def, phases)

	assert.Equal(t, string(model.ExecutionStatusFailed), execution.Status)
	assert.Equal(t, string(model.PhaseStatusFailed), phases[0].Status)
	assert.Equal(t, string(model.PhaseStatusCreated), phases[1].Status)
	assert.Equal(t, 0, untouched.calls)

	// Failed work is not billed.
	assert.Equal(t, int64(0), execution.CreditsConsumed)
	balance, _ := store.GetCredits(context.Background(), "user-1")
	assert.Equal(t, int64(100), balance)

	assert.Contains(t, store.phaseLogs(phases[0].ID), "boom")
}

func TestRunInsufficientCreditsSkipsExecutor(t *testing.T) {
	tasks := task.NewRegistry()
	store := newMemStore()
	store.setBalance("user-1", 0)

	def := jsonChainDefinition()
	execution, phases := materialize(t, tasks, def, "user-1")
	seedStore(store, execution, phases)

	stub := &stubExecutor{typ: task.TypeAddPropertyToJSON}
	reg := executor.NewRegistry()
	reg.MustRegister(stub)
	reg.MustRegister(&stubExecutor{typ: task.TypeReadPropertyFromJSON})

	runner := NewRunner(tasks, reg, store, time.Minute)
	runner.Run(context.Background(), execution, def, phases)

	// The executor never ran: balance was checked first.
	assert.Equal(t, 0, stub.calls)
	assert.Equal(t, string(model.ExecutionStatusFailed), execution.Status)
	assert.Equal(t, string(model.PhaseStatusFailed), phases[0].Status)
	assert.Equal(t, int64(0), execution.CreditsConsumed)
	assert.Contains(t, store.phaseLogs(phases[0].ID), "insufficient balance")
}

func TestRunNoBalanceRowBehavesAsInsufficient(t *testing.T) {
	tasks := task.NewRegistry()
	store := newMemStore() // no balance row at all

	def := jsonChainDefinition()
	execution, phases := materialize(t, tasks, def, "user-1")
	seedStore(store, execution, phases)

	runner := NewRunner(tasks, realJSONExecutors(t), store, time.Minute)
	runner.Run(context.Background(), execution, def, phases)

	assert.Equal(t, string(model.ExecutionStatusFailed), execution.Status)
	assert.Equal(t, string(model.PhaseStatusFailed), phases[0].Status)
}

func TestRunRecoversExecutorPanic(t *testing.T) {
	tasks := task.NewRegistry()
	store := newMemStore()
	store.setBalance("user-1", 100)

	def := jsonChainDefinition()
	execution, phases := materialize(t, tasks, def, "user-1")
	seedStore(store, execution, phases)

	reg := executor.NewRegistry()
	reg.MustRegister(&stubExecutor{typ: task.TypeAddPropertyToJSON, run: func(context.Context, executor.Environment) error {
		panic("executor exploded")
	}})
	reg.MustRegister(&stubExecutor{typ: task.TypeReadPropertyFromJSON})

	runner := NewRunner(tasks, reg, store, time.Minute)
	runner.Run(context.Background(), execution, def, phases)

	assert.Equal(t, string(model.ExecutionStatusFailed), execution.Status)
	assert.Equal(t, string(model.PhaseStatusFailed), phases[0].Status)
}

func TestRunPhaseTimeout(t *testing.T) {
	tasks := task.NewRegistry()
	store := newMemStore()
	store.setBalance("user-1", 100)

	def := jsonChainDefinition()
	execution, phases := materialize(t, tasks, def, "user-1")
	seedStore(store, execution, phases)

	reg := executor.NewRegistry()
	reg.MustRegister(&stubExecutor{typ: task.TypeAddPropertyToJSON, run: func(ctx context.Context, _ executor.Environment) error {
		<-ctx.Done()
		return ctx.Err()
	}})
	reg.MustRegister(&stubExecutor{typ: task.TypeReadPropertyFromJSON})

	runner := NewRunner(tasks, reg, store, 20*time.Millisecond)

	done := make(chan struct{})
	go func() {
		runner.Run(context.Background(), execution, def, phases)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not honor the phase timeout")
	}

	assert.Equal(t, string(model.ExecutionStatusFailed), execution.Status)
	assert.Equal(t, string(model.PhaseStatusFailed), phases[0].Status)
}

func TestRunPhaseStatusVisibleBeforeExecutor(t *testing.T) {
	tasks := task.NewRegistry()
	store := newMemStore()
	store.setBalance("user-1", 100)

	def := jsonChainDefinition()
	execution, phases := materialize(t, tasks, def, "user-1")
	seedStore(store, execution, phases)

	var observed string
	reg := executor.NewRegistry()
	reg.MustRegister(&stubExecutor{typ: task.TypeAddPropertyToJSON, run: func(context.Context, executor.Environment) error {
		// The phase row must already be RUNNING while the executor works.
		store.mu.Lock()
		observed = phases[0].Status
		store.mu.Unlock()
		return nil
	}})
	reg.MustRegister(&stubExecutor{typ: task.TypeReadPropertyFromJSON})

	runner := NewRunner(tasks, reg, store, time.Minute)
	runner.Run(context.Background(), execution, def, phases)

	assert.Equal(t, string(model.PhaseStatusRunning), observed)
}

package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goswamishashwatpuri/nextract/internal/executor"
	"github.com/goswamishashwatpuri/nextract/internal/flow"
	"github.com/goswamishashwatpuri/nextract/internal/model"
	"github.com/goswamishashwatpuri/nextract/internal/task"
	"github.com/goswamishashwatpuri/nextract/internal/utils"
	"github.com/goswamishashwatpuri/nextract/pkg/logger"
)

// Runner drives one workflow execution from PENDING to a terminal state.
type Runner struct {
	tasks        *task.Registry
	executors    *executor.Registry
	store        Store
	phaseTimeout time.Duration
}

// NewRunner creates a runner over the given registries and store.
func NewRunner(tasks *task.Registry, executors *executor.Registry, store Store, phaseTimeout time.Duration) *Runner {
	return &Runner{
		tasks:        tasks,
		executors:    executors,
		store:        store,
		phaseTimeout: phaseTimeout,
	}
}

// Run executes the phases of one execution in their planned order. Phases
// arrive pre-created in CREATED status; each is promoted through RUNNING to
// COMPLETED or FAILED. The first failure stops the run and leaves all
// downstream phases in CREATED. The terminal execution status is written
// exactly once, after browser teardown.
func (r *Runner) Run(ctx context.Context, execution *model.TWorkflowExecution, def *flow.Definition, phases []*model.TExecutionPhase) {
	now := time.Now()
	if err := r.store.MarkExecutionStarted(ctx, execution.ID, now); err != nil {
		logger.Error("标记执行开始失败",
			zap.String("execution_id", execution.ID),
			zap.Error(err))
		return
	}

	env := newRunEnvironment()
	defer env.teardown()

	var creditsConsumed int64
	failed := false

	for _, phase := range phases {
		if failed {
			// Fail fast: downstream phases keep their CREATED status.
			break
		}

		consumed, err := r.runPhase(ctx, execution, def, phase, env)
		creditsConsumed += consumed
		if err != nil {
			failed = true
		}
	}

	env.teardown()

	status := model.ExecutionStatusCompleted
	if failed {
		status = model.ExecutionStatusFailed
	}
	if err := r.store.FinishExecution(ctx, execution.ID, status, creditsConsumed, time.Now()); err != nil {
		logger.Error("标记执行结束失败",
			zap.String("execution_id", execution.ID),
			zap.Error(err))
	}
}

// runPhase executes a single phase and returns the credits it consumed. A
// non-nil error means the phase failed and the run must stop.
func (r *Runner) runPhase(ctx context.Context, execution *model.TWorkflowExecution, def *flow.Definition, phase *model.TExecutionPhase, env *runEnvironment) (int64, error) {
	taskDef, err := r.tasks.Lookup(task.Type(phase.TaskType))
	if err != nil {
		return 0, r.failPhaseEarly(ctx, phase, err)
	}

	inputs, err := r.resolveInputs(def, phase.NodeID, taskDef, env)
	if err != nil {
		return 0, r.failPhaseEarly(ctx, phase, err)
	}

	inputsJSON, err := utils.ToJSON(inputs)
	if err != nil {
		return 0, r.failPhaseEarly(ctx, phase, err)
	}
	if err := r.store.MarkPhaseStarted(ctx, phase.ID, time.Now(), inputsJSON); err != nil {
		logger.Error("标记阶段开始失败",
			zap.String("phase_id", phase.ID),
			zap.Error(err))
		return 0, err
	}

	log := &phaseLogger{ctx: ctx, store: r.store, phaseID: phase.ID}
	phaseEnv := env.bind(phase.NodeID, inputs, log)

	// Balance must cover the task cost before the executor runs at all.
	balance, err := r.store.GetCredits(ctx, execution.UserID)
	if err != nil {
		log.Error(fmt.Sprintf("cannot read credit balance: %v", err))
		return 0, r.finishFailed(ctx, phase)
	}
	if balance < taskDef.Credits {
		log.Error("insufficient balance")
		return 0, r.finishFailed(ctx, phase)
	}

	execErr := r.invoke(ctx, taskDef, phaseEnv)
	if execErr != nil {
		return 0, r.finishFailed(ctx, phase)
	}

	// Debit at success time. A concurrent run may have drained the balance
	// since the pre-check; in that case this phase fails and its work is
	// not billed.
	ok, err := r.store.TryDecrementCredits(ctx, execution.UserID, taskDef.Credits)
	if err != nil {
		log.Error(fmt.Sprintf("cannot decrement credits: %v", err))
		return 0, r.finishFailed(ctx, phase)
	}
	if !ok {
		log.Error("insufficient balance")
		return 0, r.finishFailed(ctx, phase)
	}

	phaseEnv.commit()

	outputsJSON, err := utils.ToJSON(phaseEnv.outputs)
	if err != nil {
		return taskDef.Credits, r.finishFailed(ctx, phase)
	}
	if err := r.store.FinishPhase(ctx, phase.ID, model.PhaseStatusCompleted, &outputsJSON, taskDef.Credits, time.Now()); err != nil {
		logger.Error("标记阶段完成失败",
			zap.String("phase_id", phase.ID),
			zap.Error(err))
	}
	return taskDef.Credits, nil
}

// invoke runs the executor under the phase deadline, converting panics into
// phase failures so one bad task cannot take the service down.
func (r *Runner) invoke(ctx context.Context, taskDef *task.Definition, env *phaseEnvironment) (err error) {
	exec, lookupErr := r.executors.GetOrError(taskDef.Type)
	if lookupErr != nil {
		env.Log().Error(lookupErr.Error())
		return lookupErr
	}

	phaseCtx, cancel := context.WithTimeout(ctx, r.phaseTimeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			env.Log().Error(fmt.Sprintf("executor panic: %v", rec))
			err = fmt.Errorf("executor panic: %v", rec)
		}
	}()

	if err := exec.Execute(phaseCtx, env); err != nil {
		env.Log().Error(err.Error())
		return err
	}
	return nil
}

// resolveInputs computes the string inputs for a node: node literals
// overridden by values flowing in over edges from completed upstream phases.
// Browser-instance inputs flow through the shared environment, not as
// strings.
func (r *Runner) resolveInputs(def *flow.Definition, nodeID string, taskDef *task.Definition, env *runEnvironment) (map[string]string, error) {
	node, ok := def.Node(nodeID)
	if !ok {
		return nil, fmt.Errorf("node %s not found in workflow definition", nodeID)
	}

	inputs := make(map[string]string)
	incoming := def.IncomingEdges(nodeID)

	for _, param := range taskDef.Inputs {
		if param.Kind == task.ParamBrowserInstance {
			continue
		}

		if edge, ok := incoming[param.Name]; ok {
			upstream, ok := env.outputs[edge.Source]
			if !ok {
				return nil, fmt.Errorf("input %q depends on node %s which has not produced outputs", param.Name, edge.Source)
			}
			inputs[param.Name] = upstream[edge.SourceHandle]
			continue
		}

		if v, ok := node.Inputs[param.Name]; ok {
			inputs[param.Name] = v
		}
	}
	return inputs, nil
}

// failPhaseEarly handles failures before the phase ever reached RUNNING: the
// phase still gets a start/end window and a log line so the failure is
// visible to pollers.
func (r *Runner) failPhaseEarly(ctx context.Context, phase *model.TExecutionPhase, cause error) error {
	now := time.Now()
	if err := r.store.MarkPhaseStarted(ctx, phase.ID, now, "{}"); err != nil {
		logger.Error("标记阶段开始失败", zap.String("phase_id", phase.ID), zap.Error(err))
	}
	log := &phaseLogger{ctx: ctx, store: r.store, phaseID: phase.ID}
	log.Error(cause.Error())
	if err := r.store.FinishPhase(ctx, phase.ID, model.PhaseStatusFailed, nil, 0, time.Now()); err != nil {
		logger.Error("标记阶段失败状态失败", zap.String("phase_id", phase.ID), zap.Error(err))
	}
	return cause
}

// finishFailed marks a RUNNING phase as failed with no outputs and no
// credits.
func (r *Runner) finishFailed(ctx context.Context, phase *model.TExecutionPhase) error {
	if err := r.store.FinishPhase(ctx, phase.ID, model.PhaseStatusFailed, nil, 0, time.Now()); err != nil {
		logger.Error("标记阶段失败状态失败",
			zap.String("phase_id", phase.ID),
			zap.Error(err))
	}
	return fmt.Errorf("phase %s failed", phase.ID)
}

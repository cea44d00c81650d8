package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/goswamishashwatpuri/nextract/internal/browser"
	"github.com/goswamishashwatpuri/nextract/internal/executor"
	"github.com/goswamishashwatpuri/nextract/internal/model"
	"github.com/goswamishashwatpuri/nextract/pkg/logger"
)

// runEnvironment holds the state shared across all phases of one run: each
// node's produced outputs and the browser handles. Phase-scoped views are
// created per phase via bind.
type runEnvironment struct {
	// outputs maps nodeID -> output name -> value.
	outputs map[string]map[string]string

	browser *browser.Browser
	page    *browser.Page
}

func newRunEnvironment() *runEnvironment {
	return &runEnvironment{
		outputs: make(map[string]map[string]string),
	}
}

// bind creates the phase-scoped environment handed to an executor: resolved
// inputs, an output collector for the phase's node, and the run-shared
// browser state.
func (r *runEnvironment) bind(nodeID string, inputs map[string]string, log executor.LogSink) *phaseEnvironment {
	return &phaseEnvironment{
		run:     r,
		nodeID:  nodeID,
		inputs:  inputs,
		outputs: make(map[string]string),
		log:     log,
	}
}

// teardown closes the browser if a phase launched one. Safe to call when no
// browser was ever started.
func (r *runEnvironment) teardown() {
	if r.browser == nil {
		return
	}
	if err := r.browser.Close(); err != nil {
		logger.Warn("关闭浏览器失败", zap.Error(err))
	}
	r.browser = nil
	r.page = nil
}

// phaseEnvironment is the executor.Environment for a single phase.
type phaseEnvironment struct {
	run     *runEnvironment
	nodeID  string
	inputs  map[string]string
	outputs map[string]string
	log     executor.LogSink
}

func (p *phaseEnvironment) GetInput(name string) string { return p.inputs[name] }

func (p *phaseEnvironment) SetOutput(name, value string) {
	p.outputs[name] = value
}

func (p *phaseEnvironment) Browser() *browser.Browser     { return p.run.browser }
func (p *phaseEnvironment) SetBrowser(b *browser.Browser) { p.run.browser = b }
func (p *phaseEnvironment) Page() *browser.Page           { return p.run.page }
func (p *phaseEnvironment) SetPage(pg *browser.Page)      { p.run.page = pg }
func (p *phaseEnvironment) Log() executor.LogSink         { return p.log }

// commit publishes the phase's outputs into the run environment so
// downstream phases can resolve edges against them. Only called for
// completed phases.
func (p *phaseEnvironment) commit() {
	p.run.outputs[p.nodeID] = p.outputs
}

// phaseLogger writes phase log rows through the store as they are emitted.
// Persistence failures are reported to the service log but never fail the
// phase.
type phaseLogger struct {
	ctx     context.Context
	store   Store
	phaseID string
}

func (l *phaseLogger) Info(msg string)  { l.write(model.LogLevelInfo, msg) }
func (l *phaseLogger) Error(msg string) { l.write(model.LogLevelError, msg) }

func (l *phaseLogger) write(level model.LogLevel, msg string) {
	now := time.Now()
	err := l.store.AppendLog(l.ctx, &model.TExecutionLog{
		PhaseID:   l.phaseID,
		Level:     string(level),
		Message:   msg,
		Timestamp: &now,
	})
	if err != nil {
		logger.Warn("写入执行日志失败",
			zap.String("phase_id", l.phaseID),
			zap.Error(err))
	}
}

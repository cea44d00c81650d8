package logic

import (
	"context"
	"errors"

	"github.com/goswamishashwatpuri/nextract/internal/ctxutil"
	"github.com/goswamishashwatpuri/nextract/internal/model"
	"github.com/goswamishashwatpuri/nextract/internal/svc"
)

// ExecutionLogic 执行记录查询逻辑，供客户端轮询执行进度
type ExecutionLogic struct {
	ctx context.Context
}

// NewExecutionLogic 创建执行查询逻辑
func NewExecutionLogic(ctx context.Context) *ExecutionLogic {
	return &ExecutionLogic{ctx: ctx}
}

// ExecutionDetail 执行详情（含全部阶段，按执行顺序排列）
type ExecutionDetail struct {
	*model.TWorkflowExecution
	Phases []*model.TExecutionPhase `json:"phases"`
}

// PhaseDetail 阶段详情（含日志，按时间顺序排列）
type PhaseDetail struct {
	*model.TExecutionPhase
	Logs []*model.TExecutionLog `json:"logs"`
}

// Get 查询一次执行及其全部阶段
func (l *ExecutionLogic) Get(id string) (*ExecutionDetail, error) {
	userID := ctxutil.GetUserID(l.ctx)

	var execution model.TWorkflowExecution
	err := svc.Ctx.DB.WithContext(l.ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&execution).Error
	if err != nil {
		return nil, errors.New("执行记录不存在")
	}

	var phases []*model.TExecutionPhase
	err = svc.Ctx.DB.WithContext(l.ctx).
		Where("execution_id = ?", execution.ID).
		Order("number ASC").
		Find(&phases).Error
	if err != nil {
		return nil, err
	}

	return &ExecutionDetail{
		TWorkflowExecution: &execution,
		Phases:             phases,
	}, nil
}

// ListByWorkflow 查询某工作流的历史执行，按创建时间倒序
func (l *ExecutionLogic) ListByWorkflow(workflowID string) ([]*model.TWorkflowExecution, error) {
	userID := ctxutil.GetUserID(l.ctx)

	var executions []*model.TWorkflowExecution
	err := svc.Ctx.DB.WithContext(l.ctx).
		Where("workflow_id = ? AND user_id = ?", workflowID, userID).
		Order("created_at DESC").
		Find(&executions).Error
	if err != nil {
		return nil, err
	}
	return executions, nil
}

// GetPhase 查询单个阶段及其全部日志
func (l *ExecutionLogic) GetPhase(id string) (*PhaseDetail, error) {
	userID := ctxutil.GetUserID(l.ctx)

	var phase model.TExecutionPhase
	err := svc.Ctx.DB.WithContext(l.ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&phase).Error
	if err != nil {
		return nil, errors.New("阶段不存在")
	}

	var logs []*model.TExecutionLog
	err = svc.Ctx.DB.WithContext(l.ctx).
		Where("phase_id = ?", phase.ID).
		Order("timestamp ASC, id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	return &PhaseDetail{
		TExecutionPhase: &phase,
		Logs:            logs,
	}, nil
}

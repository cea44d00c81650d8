package logic

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goswamishashwatpuri/nextract/internal/ctxutil"
	"github.com/goswamishashwatpuri/nextract/internal/flow"
	"github.com/goswamishashwatpuri/nextract/internal/model"
	"github.com/goswamishashwatpuri/nextract/internal/svc"
	"github.com/goswamishashwatpuri/nextract/internal/utils"
)

// WorkflowLogic 工作流增删改查与触发执行逻辑
type WorkflowLogic struct {
	ctx context.Context
}

// NewWorkflowLogic 创建工作流逻辑
func NewWorkflowLogic(ctx context.Context) *WorkflowLogic {
	return &WorkflowLogic{ctx: ctx}
}

// CreateWorkflowReq 创建工作流请求
type CreateWorkflowReq struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
	Definition  string  `json:"definition"`
}

// UpdateWorkflowReq 更新工作流请求
type UpdateWorkflowReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Definition  string  `json:"definition"`
}

// emptyDefinition 新建工作流时的空白画布
const emptyDefinition = `{"nodes":[],"edges":[]}`

// Create 创建工作流，初始为草稿状态
func (l *WorkflowLogic) Create(req *CreateWorkflowReq) (*model.TWorkflow, error) {
	userID := ctxutil.GetUserID(l.ctx)

	definition := req.Definition
	if definition == "" {
		definition = emptyDefinition
	}
	if !utils.ValidString(definition) {
		return nil, errors.New("工作流定义不是有效的JSON")
	}

	now := time.Now()
	workflow := &model.TWorkflow{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Status:      string(model.WorkflowStatusDraft),
		Definition:  definition,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}

	if err := svc.Ctx.DB.WithContext(l.ctx).Create(workflow).Error; err != nil {
		return nil, err
	}
	return workflow, nil
}

// List 查询当前用户的全部工作流，按更新时间倒序
func (l *WorkflowLogic) List() ([]*model.TWorkflow, error) {
	userID := ctxutil.GetUserID(l.ctx)

	var workflows []*model.TWorkflow
	err := svc.Ctx.DB.WithContext(l.ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&workflows).Error
	if err != nil {
		return nil, err
	}
	return workflows, nil
}

// Get 查询单个工作流，校验归属
func (l *WorkflowLogic) Get(id string) (*model.TWorkflow, error) {
	userID := ctxutil.GetUserID(l.ctx)

	var workflow model.TWorkflow
	err := svc.Ctx.DB.WithContext(l.ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&workflow).Error
	if err != nil {
		return nil, errors.New("工作流不存在")
	}
	return &workflow, nil
}

// Update 更新工作流名称、描述或定义
func (l *WorkflowLogic) Update(id string, req *UpdateWorkflowReq) (*model.TWorkflow, error) {
	workflow, err := l.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"updated_at": time.Now(),
	}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Definition != "" {
		if !utils.ValidString(req.Definition) {
			return nil, errors.New("工作流定义不是有效的JSON")
		}
		updates["definition"] = req.Definition
	}

	err = svc.Ctx.DB.WithContext(l.ctx).Model(&model.TWorkflow{}).
		Where("id = ?", workflow.ID).
		Updates(updates).Error
	if err != nil {
		return nil, err
	}
	return l.Get(id)
}

// Delete 删除工作流
func (l *WorkflowLogic) Delete(id string) error {
	workflow, err := l.Get(id)
	if err != nil {
		return err
	}
	return svc.Ctx.DB.WithContext(l.ctx).Delete(workflow).Error
}

// Publish 发布工作流，发布前校验图结构合法
func (l *WorkflowLogic) Publish(id string) (*model.TWorkflow, error) {
	workflow, err := l.Get(id)
	if err != nil {
		return nil, err
	}

	def, err := flow.Parse(workflow.Definition)
	if err != nil {
		return nil, err
	}
	planner := flow.NewPlanner(svc.Ctx.Tasks)
	if _, err := planner.Plan(def); err != nil {
		return nil, err
	}

	err = svc.Ctx.DB.WithContext(l.ctx).Model(&model.TWorkflow{}).
		Where("id = ?", workflow.ID).
		Updates(map[string]any{
			"status":     string(model.WorkflowStatusPublished),
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}
	return l.Get(id)
}

// Unpublish 取消发布，回到草稿状态
func (l *WorkflowLogic) Unpublish(id string) (*model.TWorkflow, error) {
	workflow, err := l.Get(id)
	if err != nil {
		return nil, err
	}

	err = svc.Ctx.DB.WithContext(l.ctx).Model(&model.TWorkflow{}).
		Where("id = ?", workflow.ID).
		Updates(map[string]any{
			"status":     string(model.WorkflowStatusDraft),
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}
	return l.Get(id)
}

// Run 触发一次工作流执行。
// 先完整校验并编排执行顺序，图不合法时不落任何执行记录；
// 校验通过后创建执行与阶段记录，再在后台异步跑完整个执行。
func (l *WorkflowLogic) Run(id string) (string, error) {
	userID := ctxutil.GetUserID(l.ctx)

	workflow, err := l.Get(id)
	if err != nil {
		return "", err
	}

	def, err := flow.Parse(workflow.Definition)
	if err != nil {
		return "", err
	}
	planner := flow.NewPlanner(svc.Ctx.Tasks)
	order, err := planner.Plan(def)
	if err != nil {
		return "", err
	}

	now := time.Now()
	execution := &model.TWorkflowExecution{
		ID:         uuid.NewString(),
		WorkflowID: workflow.ID,
		UserID:     userID,
		Status:     string(model.ExecutionStatusPending),
		Trigger:    string(model.ExecutionTriggerManual),
		CreatedAt:  &now,
	}

	phases := make([]*model.TExecutionPhase, 0, len(order))
	for i, nodeID := range order {
		node, _ := def.Node(nodeID)
		taskDef, err := svc.Ctx.Tasks.Lookup(node.Type)
		if err != nil {
			return "", err
		}
		phases = append(phases, &model.TExecutionPhase{
			ID:          uuid.NewString(),
			ExecutionID: execution.ID,
			UserID:      userID,
			Status:      string(model.PhaseStatusCreated),
			Number:      i + 1,
			NodeID:      nodeID,
			TaskType:    string(node.Type),
			Name:        taskDef.Label,
		})
	}

	err = svc.Ctx.DB.WithContext(l.ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(execution).Error; err != nil {
			return err
		}
		return tx.Create(phases).Error
	})
	if err != nil {
		return "", err
	}

	// 后台执行，请求立即返回执行ID供客户端轮询
	runCtx := ctxutil.WithUserID(context.Background(), userID)
	utils.SafeGoWithName("workflow-run-"+execution.ID, func() {
		svc.Ctx.Runner.Run(runCtx, execution, def, phases)
	})

	return execution.ID, nil
}

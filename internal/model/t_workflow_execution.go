package model

import "time"

const TableNameTWorkflowExecution = "t_workflow_execution"

// TWorkflowExecution 工作流执行记录表（一次运行）
type TWorkflowExecution struct {
	ID              string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	WorkflowID      string     `gorm:"column:workflow_id;type:varchar(36);not null;index:idx_execution_workflow_id" json:"workflow_id"`
	UserID          string     `gorm:"column:user_id;type:varchar(64);not null;index:idx_execution_user_id" json:"user_id"`
	Status          string     `gorm:"column:status;type:varchar(16);not null" json:"status"`
	Trigger         string     `gorm:"column:trigger;type:varchar(16);not null" json:"trigger"`
	CreditsConsumed int64      `gorm:"column:credits_consumed;not null;default:0" json:"credits_consumed"`
	CreatedAt       *time.Time `gorm:"column:created_at;not null" json:"created_at"`
	StartedAt       *time.Time `gorm:"column:started_at" json:"started_at"`
	CompletedAt     *time.Time `gorm:"column:completed_at" json:"completed_at"`
}

func (*TWorkflowExecution) TableName() string {
	return TableNameTWorkflowExecution
}

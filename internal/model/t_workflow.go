package model

import "time"

const TableNameTWorkflow = "t_workflow"

// TWorkflow 工作流表
type TWorkflow struct {
	ID          string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserID      string     `gorm:"column:user_id;type:varchar(64);not null;index:idx_workflow_user_id" json:"user_id"`
	Name        string     `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Description *string    `gorm:"column:description;type:varchar(500)" json:"description"`
	Status      string     `gorm:"column:status;type:varchar(16);not null" json:"status"`
	Definition  string     `gorm:"column:definition;type:text;not null" json:"definition"`
	CreatedAt   *time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (*TWorkflow) TableName() string {
	return TableNameTWorkflow
}

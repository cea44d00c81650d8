package model

import "time"

const TableNameTExecutionPhase = "t_execution_phase"

// TExecutionPhase 执行阶段表（一次运行中单个节点的执行）
type TExecutionPhase struct {
	ID              string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ExecutionID     string     `gorm:"column:execution_id;type:varchar(36);not null;index:idx_phase_execution_id" json:"execution_id"`
	UserID          string     `gorm:"column:user_id;type:varchar(64);not null" json:"user_id"`
	Status          string     `gorm:"column:status;type:varchar(16);not null" json:"status"`
	Number          int        `gorm:"column:number;not null" json:"number"`
	NodeID          string     `gorm:"column:node_id;type:varchar(64);not null" json:"node_id"`
	TaskType        string     `gorm:"column:task_type;type:varchar(64);not null" json:"task_type"`
	Name            string     `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Inputs          *string    `gorm:"column:inputs;type:text" json:"inputs"`
	Outputs         *string    `gorm:"column:outputs;type:text" json:"outputs"`
	CreditsConsumed int64      `gorm:"column:credits_consumed;not null;default:0" json:"credits_consumed"`
	StartedAt       *time.Time `gorm:"column:started_at" json:"started_at"`
	CompletedAt     *time.Time `gorm:"column:completed_at" json:"completed_at"`
}

func (*TExecutionPhase) TableName() string {
	return TableNameTExecutionPhase
}

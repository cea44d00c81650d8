package model

import "time"

const TableNameTExecutionLog = "t_execution_log"

// TExecutionLog 执行日志表（阶段内追加写入，写入后不再修改）
type TExecutionLog struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PhaseID   string     `gorm:"column:phase_id;type:varchar(36);not null;index:idx_log_phase_id" json:"phase_id"`
	Level     string     `gorm:"column:level;type:varchar(8);not null" json:"level"`
	Message   string     `gorm:"column:message;type:text;not null" json:"message"`
	Timestamp *time.Time `gorm:"column:timestamp;not null" json:"timestamp"`
}

func (*TExecutionLog) TableName() string {
	return TableNameTExecutionLog
}

package model

// WorkflowStatus 工作流状态
type WorkflowStatus string

const (
	WorkflowStatusDraft     WorkflowStatus = "DRAFT"
	WorkflowStatusPublished WorkflowStatus = "PUBLISHED"
)

// IsValid 判断工作流状态是否有效
func (s WorkflowStatus) IsValid() bool {
	return s == WorkflowStatusDraft || s == WorkflowStatusPublished
}

// ExecutionStatus 执行状态
type ExecutionStatus string

const (
	ExecutionStatusPending   ExecutionStatus = "PENDING"
	ExecutionStatusRunning   ExecutionStatus = "RUNNING"
	ExecutionStatusCompleted ExecutionStatus = "COMPLETED"
	ExecutionStatusFailed    ExecutionStatus = "FAILED"
)

// IsTerminal 判断是否为终态
func (s ExecutionStatus) IsTerminal() bool {
	return s == ExecutionStatusCompleted || s == ExecutionStatusFailed
}

// PhaseStatus 阶段状态
type PhaseStatus string

const (
	// PhaseStatusCreated 阶段已编排但尚未执行；运行中止时下游阶段保持此状态
	PhaseStatusCreated   PhaseStatus = "CREATED"
	PhaseStatusPending   PhaseStatus = "PENDING"
	PhaseStatusRunning   PhaseStatus = "RUNNING"
	PhaseStatusCompleted PhaseStatus = "COMPLETED"
	PhaseStatusFailed    PhaseStatus = "FAILED"
)

// LogLevel 执行日志级别
type LogLevel string

const (
	LogLevelInfo  LogLevel = "info"
	LogLevelError LogLevel = "error"
)

// ExecutionTrigger 执行触发方式
type ExecutionTrigger string

const (
	ExecutionTriggerManual ExecutionTrigger = "MANUAL"
)

// Package storage 提供执行引擎与积分账本的 gorm 持久化实现。
package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goswamishashwatpuri/nextract/internal/model"
)

// GormStore 基于 gorm 的持久化实现，满足引擎的 Store 接口。
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建存储实例。
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// MarkExecutionStarted 将执行置为 RUNNING 并记录开始时间。
func (s *GormStore) MarkExecutionStarted(ctx context.Context, executionID string, startedAt time.Time) error {
	return s.db.WithContext(ctx).Model(&model.TWorkflowExecution{}).
		Where("id = ?", executionID).
		Updates(map[string]any{
			"status":     string(model.ExecutionStatusRunning),
			"started_at": startedAt,
		}).Error
}

// FinishExecution 写入执行终态、总积分消耗和完成时间。
func (s *GormStore) FinishExecution(ctx context.Context, executionID string, status model.ExecutionStatus, creditsConsumed int64, completedAt time.Time) error {
	return s.db.WithContext(ctx).Model(&model.TWorkflowExecution{}).
		Where("id = ?", executionID).
		Updates(map[string]any{
			"status":           string(status),
			"credits_consumed": creditsConsumed,
			"completed_at":     completedAt,
		}).Error
}

// MarkPhaseStarted 将阶段置为 RUNNING，同时落盘解析后的输入快照。
func (s *GormStore) MarkPhaseStarted(ctx context.Context, phaseID string, startedAt time.Time, inputs string) error {
	return s.db.WithContext(ctx).Model(&model.TExecutionPhase{}).
		Where("id = ?", phaseID).
		Updates(map[string]any{
			"status":     string(model.PhaseStatusRunning),
			"started_at": startedAt,
			"inputs":     inputs,
		}).Error
}

// FinishPhase 写入阶段终态、输出快照与积分消耗。
func (s *GormStore) FinishPhase(ctx context.Context, phaseID string, status model.PhaseStatus, outputs *string, creditsConsumed int64, completedAt time.Time) error {
	updates := map[string]any{
		"status":           string(status),
		"credits_consumed": creditsConsumed,
		"completed_at":     completedAt,
	}
	if outputs != nil {
		updates["outputs"] = *outputs
	}
	return s.db.WithContext(ctx).Model(&model.TExecutionPhase{}).
		Where("id = ?", phaseID).
		Updates(updates).Error
}

// AppendLog 追加一条阶段日志。
func (s *GormStore) AppendLog(ctx context.Context, log *model.TExecutionLog) error {
	return s.db.WithContext(ctx).Create(log).Error
}

// GetCredits 查询用户余额，无余额记录时返回 -1。
func (s *GormStore) GetCredits(ctx context.Context, userID string) (int64, error) {
	var balance model.TUserBalance
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return -1, nil
	}
	if err != nil {
		return 0, err
	}
	return balance.Credits, nil
}

// TryDecrementCredits 条件扣减余额。
// 单条 UPDATE 带余额充足条件，余额不足时影响行数为 0，不做任何变更。
func (s *GormStore) TryDecrementCredits(ctx context.Context, userID string, amount int64) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.TUserBalance{}).
		Where("user_id = ? AND credits >= ?", userID, amount).
		UpdateColumn("credits", gorm.Expr("credits - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AddCredits 为用户增加积分，余额记录不存在时自动创建。
func (s *GormStore) AddCredits(ctx context.Context, userID string, amount int64) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{"credits": gorm.Expr("credits + ?", amount)}),
	}).Create(&model.TUserBalance{UserID: userID, Credits: amount}).Error
}

// EnsureBalance 为新用户创建初始余额，已存在时不变。
// 返回是否发生了创建。
func (s *GormStore) EnsureBalance(ctx context.Context, userID string, initialCredits int64) (bool, error) {
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&model.TUserBalance{UserID: userID, Credits: initialCredits})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

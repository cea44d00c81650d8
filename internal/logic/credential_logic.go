package logic

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/goswamishashwatpuri/nextract/internal/ctxutil"
	"github.com/goswamishashwatpuri/nextract/internal/model"
	"github.com/goswamishashwatpuri/nextract/internal/svc"
	"github.com/goswamishashwatpuri/nextract/internal/utils"
)

// CredentialLogic 凭据管理逻辑。
// 凭据值写入时即加密，接口层永远拿不到明文。
type CredentialLogic struct {
	ctx context.Context
}

// NewCredentialLogic 创建凭据逻辑
func NewCredentialLogic(ctx context.Context) *CredentialLogic {
	return &CredentialLogic{ctx: ctx}
}

// CreateCredentialReq 创建凭据请求
type CreateCredentialReq struct {
	Name  string `json:"name" validate:"required,max=100"`
	Value string `json:"value" validate:"required"`
}

// Create 创建凭据，同名凭据不允许重复
func (l *CredentialLogic) Create(req *CreateCredentialReq) (*model.TCredential, error) {
	userID := ctxutil.GetUserID(l.ctx)

	var count int64
	err := svc.Ctx.DB.WithContext(l.ctx).Model(&model.TCredential{}).
		Where("user_id = ? AND name = ?", userID, req.Name).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("同名凭据已存在")
	}

	encrypted, err := utils.Encrypt(req.Value)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	credential := &model.TCredential{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      req.Name,
		Value:     encrypted,
		CreatedAt: &now,
	}

	if err := svc.Ctx.DB.WithContext(l.ctx).Create(credential).Error; err != nil {
		return nil, err
	}
	return credential, nil
}

// List 查询当前用户全部凭据（不含值）
func (l *CredentialLogic) List() ([]*model.TCredential, error) {
	userID := ctxutil.GetUserID(l.ctx)

	var credentials []*model.TCredential
	err := svc.Ctx.DB.WithContext(l.ctx).
		Select("id", "user_id", "name", "created_at").
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&credentials).Error
	if err != nil {
		return nil, err
	}
	return credentials, nil
}

// Delete 删除凭据
func (l *CredentialLogic) Delete(id string) error {
	userID := ctxutil.GetUserID(l.ctx)

	result := svc.Ctx.DB.WithContext(l.ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.TCredential{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("凭据不存在")
	}
	return nil
}

package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goswamishashwatpuri/nextract/internal/ctxutil"
	"github.com/goswamishashwatpuri/nextract/internal/model"
	"github.com/goswamishashwatpuri/nextract/internal/svc"
)

// BillingLogic 积分账户与购买记录逻辑
type BillingLogic struct {
	ctx context.Context
}

// NewBillingLogic 创建账单逻辑
func NewBillingLogic(ctx context.Context) *BillingLogic {
	return &BillingLogic{ctx: ctx}
}

// SetupUser 初始化用户积分账户。
// 首次调用赠送初始积分，已有账户时不做任何变更，可重复调用。
func (l *BillingLogic) SetupUser() error {
	userID := ctxutil.GetUserID(l.ctx)
	initial := svc.Ctx.Config.Engine.InitialCredits
	_, err := svc.Ctx.Store.EnsureBalance(l.ctx, userID, initial)
	return err
}

// GetAvailableCredits 查询当前用户余额，账户未初始化时返回 -1
func (l *BillingLogic) GetAvailableCredits() (int64, error) {
	userID := ctxutil.GetUserID(l.ctx)
	return svc.Ctx.Store.GetCredits(l.ctx, userID)
}

// ListPacks 返回全部可售积分套餐
func (l *BillingLogic) ListPacks() []model.CreditsPack {
	return model.CreditsPacks
}

// ListPurchases 查询当前用户购买记录，按时间倒序
func (l *BillingLogic) ListPurchases() ([]*model.TUserPurchase, error) {
	userID := ctxutil.GetUserID(l.ctx)

	var purchases []*model.TUserPurchase
	err := svc.Ctx.DB.WithContext(l.ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

// CreditPurchase 入账一笔已通过签名校验的购买：余额加积分并追加购买记录
func (l *BillingLogic) CreditPurchase(userID string, credits int64, amountCents int64) error {
	if err := svc.Ctx.Store.AddCredits(l.ctx, userID, credits); err != nil {
		return err
	}

	now := time.Now()
	purchase := &model.TUserPurchase{
		ID:          uuid.NewString(),
		UserID:      userID,
		Description: fmt.Sprintf("%d credits", credits),
		Amount:      amountCents,
		Currency:    "USD",
		Date:        &now,
	}
	return svc.Ctx.DB.WithContext(l.ctx).Create(purchase).Error
}

package model

import "time"

const TableNameTUserPurchase = "t_user_purchase"

// TUserPurchase 用户购买记录表
type TUserPurchase struct {
	ID          string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserID      string     `gorm:"column:user_id;type:varchar(64);not null;index:idx_purchase_user_id" json:"user_id"`
	Description string     `gorm:"column:description;type:varchar(128);not null" json:"description"`
	Amount      int64      `gorm:"column:amount;not null" json:"amount"`
	Currency    string     `gorm:"column:currency;type:varchar(8);not null" json:"currency"`
	Date        *time.Time `gorm:"column:date;not null" json:"date"`
}

func (*TUserPurchase) TableName() string {
	return TableNameTUserPurchase
}

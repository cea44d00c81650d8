package model

const TableNameTUserBalance = "t_user_balance"

// TUserBalance 用户积分余额表
type TUserBalance struct {
	UserID  string `gorm:"column:user_id;type:varchar(64);primaryKey" json:"user_id"`
	Credits int64  `gorm:"column:credits;not null;default:0" json:"credits"`
}

func (*TUserBalance) TableName() string {
	return TableNameTUserBalance
}

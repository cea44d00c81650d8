package model

import "time"

const TableNameTCredential = "t_credential"

// TCredential 凭据表，value 字段加密存储
type TCredential struct {
	ID        string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserID    string     `gorm:"column:user_id;type:varchar(64);not null;index:idx_credential_user_id" json:"user_id"`
	Name      string     `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Value     string     `gorm:"column:value;type:text;not null" json:"-"`
	CreatedAt *time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (*TCredential) TableName() string {
	return TableNameTCredential
}

package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/goswamishashwatpuri/nextract/internal/ctxutil"
	"github.com/goswamishashwatpuri/nextract/internal/model"
	"github.com/goswamishashwatpuri/nextract/internal/utils"
)

// ErrCredentialNotFound 凭据不存在或不属于当前用户
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialVault 负责凭据的读取与解密。
// 明文只存在于单次调用的返回值中，调用方不得持久化或写入日志。
type CredentialVault struct {
	db *gorm.DB
}

// NewCredentialVault 创建凭据保管器。
func NewCredentialVault(db *gorm.DB) *CredentialVault {
	return &CredentialVault{db: db}
}

// ResolveCredential 按ID解密取出凭据明文。
// 上下文中携带用户ID时按用户隔离，防止跨用户引用他人凭据。
func (v *CredentialVault) ResolveCredential(ctx context.Context, id string) (string, error) {
	query := v.db.WithContext(ctx).Where("id = ?", id)
	if userID := ctxutil.GetUserID(ctx); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var credential model.TCredential
	if err := query.First(&credential).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrCredentialNotFound
		}
		return "", err
	}

	return utils.Decrypt(credential.Value)
}

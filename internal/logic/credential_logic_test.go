package logic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goswamishashwatpuri/nextract/internal/ctxutil"
	"github.com/goswamishashwatpuri/nextract/internal/model"
	"github.com/goswamishashwatpuri/nextract/internal/storage"
	"github.com/goswamishashwatpuri/nextract/internal/svc"
)

func TestCredentialValueIsEncryptedAtRest(t *testing.T) {
	ctx := setupLogicTest(t)
	l := NewCredentialLogic(ctx)

	created, err := l.Create(&CreateCredentialReq{Name: "openai-key", Value: "sk-plaintext-key"})
	require.NoError(t, err)

	// 数据库中的值是密文
	var stored model.TCredential
	require.NoError(t, svc.Ctx.DB.First(&stored, "id = ?", created.ID).Error)
	assert.NotEqual(t, "sk-plaintext-key", stored.Value)
	assert.NotContains(t, stored.Value, "sk-plaintext-key")

	// 保管器能还原明文
	vault := storage.NewCredentialVault(svc.Ctx.DB)
	plaintext, err := vault.ResolveCredential(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "sk-plaintext-key", plaintext)
}

func TestCredentialListOmitsValue(t *testing.T) {
	ctx := setupLogicTest(t)
	l := NewCredentialLogic(ctx)

	_, err := l.Create(&CreateCredentialReq{Name: "key-a", Value: "secret-a"})
	require.NoError(t, err)

	list, err := l.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Value)
}

func TestCredentialDuplicateNameRejected(t *testing.T) {
	ctx := setupLogicTest(t)
	l := NewCredentialLogic(ctx)

	_, err := l.Create(&CreateCredentialReq{Name: "dup", Value: "v1"})
	require.NoError(t, err)
	_, err = l.Create(&CreateCredentialReq{Name: "dup", Value: "v2"})
	assert.Error(t, err)
}

func TestCredentialCrossUserResolutionDenied(t *testing.T) {
	ctx := setupLogicTest(t)
	created, err := NewCredentialLogic(ctx).Create(&CreateCredentialReq{Name: "mine", Value: "secret"})
	require.NoError(t, err)

	// 其他用户无法解析
	vault := storage.NewCredentialVault(svc.Ctx.DB)
	otherCtx := ctxutil.WithUserID(context.Background(), "user-2")
	_, err = vault.ResolveCredential(otherCtx, created.ID)
	assert.ErrorIs(t, err, storage.ErrCredentialNotFound)
}

func TestCredentialDelete(t *testing.T) {
	ctx := setupLogicTest(t)
	l := NewCredentialLogic(ctx)

	created, err := l.Create(&CreateCredentialReq{Name: "gone", Value: "v"})
	require.NoError(t, err)
	require.NoError(t, l.Delete(created.ID))

	assert.Error(t, l.Delete(created.ID))
	list, err := l.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupUserGrantsInitialCreditsOnce(t *testing.T) {
	ctx := setupLogicTest(t)
	l := NewBillingLogic(ctx)

	balance, err := l.GetAvailableCredits()
	require.NoError(t, err)
	assert.Equal(t, int64(-1), balance, "账户初始化前余额应为 -1")

	require.NoError(t, l.SetupUser())
	balance, err = l.GetAvailableCredits()
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)

	// 重复初始化不重复赠送
	require.NoError(t, l.SetupUser())
	balance, err = l.GetAvailableCredits()
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}

func TestListPacksCatalog(t *testing.T) {
	ctx := setupLogicTest(t)
	packs := NewBillingLogic(ctx).ListPacks()

	require.Len(t, packs, 3)
	byID := map[string]int64{}
	for _, p := range packs {
		byID[string(p.ID)] = p.Credits
	}
	assert.Equal(t, int64(1000), byID["SMALL"])
	assert.Equal(t, int64(5000), byID["MEDIUM"])
	assert.Equal(t, int64(10000), byID["LARGE"])
}

func TestCreditPurchaseRecordsAndAdds(t *testing.T) {
	ctx := setupLogicTest(t)
	l := NewBillingLogic(ctx)
	require.NoError(t, l.SetupUser())

	require.NoError(t, l.CreditPurchase("user-1", 5000, 3900))
	require.NoError(t, l.CreditPurchase("user-1", 1000, 999))

	balance, err := l.GetAvailableCredits()
	require.NoError(t, err)
	assert.Equal(t, int64(6100), balance)

	purchases, err := l.ListPurchases()
	require.NoError(t, err)
	require.Len(t, purchases, 2)
	for _, p := range purchases {
		assert.Equal(t, "USD", p.Currency)
		assert.NotEmpty(t, p.Description)
	}
}

func TestCreditPurchaseWithoutBalanceRowCreatesOne(t *testing.T) {
	ctx := setupLogicTest(t)
	l := NewBillingLogic(ctx)

	require.NoError(t, l.CreditPurchase("user-1", 1000, 999))
	balance, err := l.GetAvailableCredits()
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)
}

package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goswamishashwatpuri/nextract/internal/logic"
	"github.com/goswamishashwatpuri/nextract/pkg/response"
)

// SetupUserBilling 初始化积分账户（幂等，首次赠送初始积分）
// POST /api/billing/setup
func SetupUserBilling(c *fiber.Ctx) error {
	if err := logic.NewBillingLogic(c.UserContext()).SetupUser(); err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, nil)
}

// GetAvailableCredits 查询余额
// GET /api/billing/credits
func GetAvailableCredits(c *fiber.Ctx) error {
	credits, err := logic.NewBillingLogic(c.UserContext()).GetAvailableCredits()
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, fiber.Map{"credits": credits})
}

// ListCreditsPacks 查询可售积分套餐
// GET /api/billing/packs
func ListCreditsPacks(c *fiber.Ctx) error {
	return response.Success(c, logic.NewBillingLogic(c.UserContext()).ListPacks())
}

// ListPurchases 查询购买记录
// GET /api/billing/purchases
func ListPurchases(c *fiber.Ctx) error {
	purchases, err := logic.NewBillingLogic(c.UserContext()).ListPurchases()
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, purchases)
}

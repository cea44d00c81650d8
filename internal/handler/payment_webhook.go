package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/goswamishashwatpuri/nextract/internal/logic"
	"github.com/goswamishashwatpuri/nextract/internal/svc"
	"github.com/goswamishashwatpuri/nextract/internal/utils"
	"github.com/goswamishashwatpuri/nextract/pkg/logger"
	"github.com/goswamishashwatpuri/nextract/pkg/response"
)

// paymentWebhookPayload 支付平台回调载荷中本服务关心的字段
type paymentWebhookPayload struct {
	Meta struct {
		EventName  string `json:"event_name"`
		CustomData struct {
			BuyerUserID  string `json:"buyerUserId"`
			CreditsToAdd string `json:"creditsToAdd"`
			Amount       string `json:"amount"`
		} `json:"custom_data"`
	} `json:"meta"`
}

// PaymentWebhook 支付回调。
// 先对原始请求体做签名校验，校验不通过直接返回 401，不产生任何状态变更。
// POST /api/webhooks/payment
func PaymentWebhook(c *fiber.Ctx) error {
	body := c.Body()
	signature := c.Get("X-Signature")

	secret := svc.Ctx.Config.Payment.WebhookSecret
	if signature == "" || !utils.VerifyHMAC(body, signature, secret) {
		logger.Warn("支付回调签名校验失败")
		return response.Unauthorized(c, "invalid signature")
	}

	var payload paymentWebhookPayload
	if err := utils.Unmarshal(body, &payload); err != nil {
		return response.Error(c, "invalid payload")
	}

	userID := payload.Meta.CustomData.BuyerUserID
	credits, err := strconv.ParseInt(payload.Meta.CustomData.CreditsToAdd, 10, 64)
	if err != nil || userID == "" || credits <= 0 {
		return response.Error(c, "invalid purchase data")
	}
	amountCents, err := strconv.ParseInt(payload.Meta.CustomData.Amount, 10, 64)
	if err != nil {
		amountCents = 0
	}

	if err := logic.NewBillingLogic(c.UserContext()).CreditPurchase(userID, credits, amountCents); err != nil {
		logger.Error("支付入账失败",
			zap.String("user_id", userID),
			zap.Error(err))
		return response.ServerError(c, "failed to credit purchase")
	}

	logger.Info("支付入账成功",
		zap.String("user_id", userID),
		zap.Int64("credits", credits))
	return response.Success(c, nil)
}

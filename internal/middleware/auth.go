package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/goswamishashwatpuri/nextract/internal/auth"
	"github.com/goswamishashwatpuri/nextract/internal/ctxutil"
	"github.com/goswamishashwatpuri/nextract/internal/svc"
	"github.com/goswamishashwatpuri/nextract/pkg/response"
)

// AuthMiddleware 认证中间件（sa-token Token 验证）
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := getToken(c)
		if token == "" {
			return response.Unauthorized(c, "请先登录")
		}

		if !auth.IsLogin(token) {
			return response.Unauthorized(c, "登录已过期，请重新登录")
		}

		userID, err := auth.GetLoginId(token)
		if err != nil || userID == "" {
			return response.Unauthorized(c, "获取用户信息失败")
		}

		c.Locals("userId", userID)
		c.Locals("token", token)

		// 将用户ID存入context，供Logic层使用
		ctx := ctxutil.WithUserID(c.UserContext(), userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// getToken 依次从配置的Token头、Authorization Bearer、查询参数中取Token
func getToken(c *fiber.Ctx) string {
	tokenName := svc.Ctx.Config.SaToken.TokenName
	if tokenName == "" {
		tokenName = "satoken"
	}

	if token := c.Get(tokenName); token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return c.Query(tokenName)
}

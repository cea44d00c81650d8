package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goswamishashwatpuri/nextract/internal/logic"
	"github.com/goswamishashwatpuri/nextract/pkg/response"
)

// CreateCredential 创建凭据
// POST /api/credentials
func CreateCredential(c *fiber.Ctx) error {
	var req logic.CreateCredentialReq
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}
	if req.Name == "" || req.Value == "" {
		return response.Error(c, "凭据名称和值不能为空")
	}

	credential, err := logic.NewCredentialLogic(c.UserContext()).Create(&req)
	if err != nil {
		return response.Error(c, err.Error())
	}
	// 响应不回传值字段，创建后明文不再可见
	return response.Created(c, credential)
}

// ListCredentials 查询凭据列表（不含值）
// GET /api/credentials
func ListCredentials(c *fiber.Ctx) error {
	credentials, err := logic.NewCredentialLogic(c.UserContext()).List()
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, credentials)
}

// DeleteCredential 删除凭据
// DELETE /api/credentials/:id
func DeleteCredential(c *fiber.Ctx) error {
	if err := logic.NewCredentialLogic(c.UserContext()).Delete(c.Params("id")); err != nil {
		return response.NotFound(c, err.Error())
	}
	return response.Success(c, nil)
}

package response

import (
	"github.com/gofiber/fiber/v2"
)

// Response 统一响应结构
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// 响应码定义
const (
	CodeSuccess      = 0
	CodeError        = -1
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeServerError  = 500
)

// 响应消息定义
const (
	MsgSuccess      = "success"
	MsgUnauthorized = "unauthorized"
	MsgNotFound     = "not found"
	MsgServerError  = "server error"
)

// Success 成功响应
func Success(c *fiber.Ctx, data any) error {
	return c.JSON(Response{
		Code:    CodeSuccess,
		Message: MsgSuccess,
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Code:    CodeSuccess,
		Message: MsgSuccess,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *fiber.Ctx, message string) error {
	return c.JSON(Response{
		Code:    CodeError,
		Message: message,
	})
}

// Unauthorized 未授权响应
func Unauthorized(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgUnauthorized
	}
	return c.Status(fiber.StatusUnauthorized).JSON(Response{
		Code:    CodeUnauthorized,
		Message: message,
	})
}

// NotFound 未找到响应
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgNotFound
	}
	return c.Status(fiber.StatusNotFound).JSON(Response{
		Code:    CodeNotFound,
		Message: message,
	})
}

// ServerError 服务器错误响应
func ServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgServerError
	}
	return c.Status(fiber.StatusInternalServerError).JSON(Response{
		Code:    CodeServerError,
		Message: message,
	})
}

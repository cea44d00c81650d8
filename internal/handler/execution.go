package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goswamishashwatpuri/nextract/internal/logic"
	"github.com/goswamishashwatpuri/nextract/pkg/response"
)

// GetExecution 查询执行详情（含阶段列表）
// GET /api/executions/:id
func GetExecution(c *fiber.Ctx) error {
	detail, err := logic.NewExecutionLogic(c.UserContext()).Get(c.Params("id"))
	if err != nil {
		return response.NotFound(c, err.Error())
	}
	return response.Success(c, detail)
}

// ListWorkflowExecutions 查询工作流的历史执行
// GET /api/workflows/:id/executions
func ListWorkflowExecutions(c *fiber.Ctx) error {
	executions, err := logic.NewExecutionLogic(c.UserContext()).ListByWorkflow(c.Params("id"))
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, executions)
}

// GetPhase 查询阶段详情（含日志）
// GET /api/phases/:id
func GetPhase(c *fiber.Ctx) error {
	detail, err := logic.NewExecutionLogic(c.UserContext()).GetPhase(c.Params("id"))
	if err != nil {
		return response.NotFound(c, err.Error())
	}
	return response.Success(c, detail)
}

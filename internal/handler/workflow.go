package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goswamishashwatpuri/nextract/internal/logic"
	"github.com/goswamishashwatpuri/nextract/pkg/response"
)

// CreateWorkflow 创建工作流
// POST /api/workflows
func CreateWorkflow(c *fiber.Ctx) error {
	var req logic.CreateWorkflowReq
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}
	if req.Name == "" {
		return response.Error(c, "工作流名称不能为空")
	}

	workflow, err := logic.NewWorkflowLogic(c.UserContext()).Create(&req)
	if err != nil {
		return response.Error(c, err.Error())
	}
	return response.Created(c, workflow)
}

// ListWorkflows 查询工作流列表
// GET /api/workflows
func ListWorkflows(c *fiber.Ctx) error {
	workflows, err := logic.NewWorkflowLogic(c.UserContext()).List()
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, workflows)
}

// GetWorkflow 查询工作流详情
// GET /api/workflows/:id
func GetWorkflow(c *fiber.Ctx) error {
	workflow, err := logic.NewWorkflowLogic(c.UserContext()).Get(c.Params("id"))
	if err != nil {
		return response.NotFound(c, err.Error())
	}
	return response.Success(c, workflow)
}

// UpdateWorkflow 更新工作流
// PUT /api/workflows/:id
func UpdateWorkflow(c *fiber.Ctx) error {
	var req logic.UpdateWorkflowReq
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}

	workflow, err := logic.NewWorkflowLogic(c.UserContext()).Update(c.Params("id"), &req)
	if err != nil {
		return response.Error(c, err.Error())
	}
	return response.Success(c, workflow)
}

// DeleteWorkflow 删除工作流
// DELETE /api/workflows/:id
func DeleteWorkflow(c *fiber.Ctx) error {
	if err := logic.NewWorkflowLogic(c.UserContext()).Delete(c.Params("id")); err != nil {
		return response.Error(c, err.Error())
	}
	return response.Success(c, nil)
}

// PublishWorkflow 发布工作流
// POST /api/workflows/:id/publish
func PublishWorkflow(c *fiber.Ctx) error {
	workflow, err := logic.NewWorkflowLogic(c.UserContext()).Publish(c.Params("id"))
	if err != nil {
		return response.Error(c, err.Error())
	}
	return response.Success(c, workflow)
}

// UnpublishWorkflow 取消发布工作流
// POST /api/workflows/:id/unpublish
func UnpublishWorkflow(c *fiber.Ctx) error {
	workflow, err := logic.NewWorkflowLogic(c.UserContext()).Unpublish(c.Params("id"))
	if err != nil {
		return response.Error(c, err.Error())
	}
	return response.Success(c, workflow)
}

// RunWorkflow 触发工作流执行
// POST /api/workflows/:id/run
func RunWorkflow(c *fiber.Ctx) error {
	executionID, err := logic.NewWorkflowLogic(c.UserContext()).Run(c.Params("id"))
	if err != nil {
		return response.Error(c, err.Error())
	}
	return response.Created(c, fiber.Map{"execution_id": executionID})
}

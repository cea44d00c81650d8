package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/goswamishashwatpuri/nextract/internal/handler"
	"github.com/goswamishashwatpuri/nextract/internal/middleware"
)

// Setup 设置路由
func Setup(app *fiber.App) {
	// 全局中间件
	app.Use(recover.New())
	app.Use(fiberLogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,satoken",
	}))

	// 健康检查
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"app":    "nextract",
		})
	})

	// 支付回调，不走认证，内部做签名校验
	app.Post("/api/webhooks/payment", handler.PaymentWebhook)

	// API 路由组（需要认证）
	api := app.Group("/api", middleware.AuthMiddleware())

	// 工作流
	workflows := api.Group("/workflows")
	workflows.Post("/", handler.CreateWorkflow)
	workflows.Get("/", handler.ListWorkflows)
	workflows.Get("/:id", handler.GetWorkflow)
	workflows.Put("/:id", handler.UpdateWorkflow)
	workflows.Delete("/:id", handler.DeleteWorkflow)
	workflows.Post("/:id/publish", handler.PublishWorkflow)
	workflows.Post("/:id/unpublish", handler.UnpublishWorkflow)
	workflows.Post("/:id/run", handler.RunWorkflow)
	workflows.Get("/:id/executions", handler.ListWorkflowExecutions)

	// 执行记录（轮询）
	api.Get("/executions/:id", handler.GetExecution)
	api.Get("/phases/:id", handler.GetPhase)

	// 凭据
	credentials := api.Group("/credentials")
	credentials.Post("/", handler.CreateCredential)
	credentials.Get("/", handler.ListCredentials)
	credentials.Delete("/:id", handler.DeleteCredential)

	// 账单
	billing := api.Group("/billing")
	billing.Post("/setup", handler.SetupUserBilling)
	billing.Get("/credits", handler.GetAvailableCredits)
	billing.Get("/packs", handler.ListCreditsPacks)
	billing.Get("/purchases", handler.ListPurchases)
}

package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"github.com/goswamishashwatpuri/nextract/internal/auth"
	"github.com/goswamishashwatpuri/nextract/internal/config"
	"github.com/goswamishashwatpuri/nextract/internal/model"
	"github.com/goswamishashwatpuri/nextract/internal/router"
	"github.com/goswamishashwatpuri/nextract/internal/svc"
	"github.com/goswamishashwatpuri/nextract/internal/utils"
	"github.com/goswamishashwatpuri/nextract/pkg/database"
	"github.com/goswamishashwatpuri/nextract/pkg/logger"
	pkgRedis "github.com/goswamishashwatpuri/nextract/pkg/redis"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "nextract-server",
	Short: "Workflow-based web scraping service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.yml", "配置文件路径")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// 加载配置
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	// 初始化日志
	logger.Init(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	})
	defer logger.Sync()
	logger.Info("日志初始化完成")

	// 初始化凭据加密密钥
	if err := utils.SetCryptoKey(cfg.Crypto.Key); err != nil {
		return fmt.Errorf("初始化加密密钥失败: %w", err)
	}

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("初始化数据库失败: %w", err)
	}
	defer database.Close()
	db := database.GetDB()

	if err := db.AutoMigrate(
		&model.TWorkflow{},
		&model.TWorkflowExecution{},
		&model.TExecutionPhase{},
		&model.TExecutionLog{},
		&model.TUserBalance{},
		&model.TUserPurchase{},
		&model.TCredential{},
	); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	// 初始化Redis
	if err := pkgRedis.Init(&cfg.Redis); err != nil {
		return fmt.Errorf("初始化Redis失败: %w", err)
	}
	defer pkgRedis.Close()
	rdb := pkgRedis.GetClient()

	// 初始化SaToken（Redis存储，与登录服务共享Token）
	if err := auth.InitSaToken(cfg); err != nil {
		return fmt.Errorf("初始化SaToken失败: %w", err)
	}

	// 初始化服务上下文与执行引擎
	svc.Init(cfg, db, rdb)
	logger.Info(fmt.Sprintf("任务注册表已加载 %d 种任务类型", svc.Ctx.Tasks.Count()))

	// 创建Fiber应用
	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})

	// 设置路由
	router.Setup(app)

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		log.Printf("服务器启动在 http://%s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务器...")
	if err := app.Shutdown(); err != nil {
		log.Printf("服务器关闭失败: %v", err)
	}
	log.Println("服务器已关闭")
	return nil
}

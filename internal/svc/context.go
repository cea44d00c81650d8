package svc

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/goswamishashwatpuri/nextract/internal/config"
	"github.com/goswamishashwatpuri/nextract/internal/engine"
	"github.com/goswamishashwatpuri/nextract/internal/executor"
	"github.com/goswamishashwatpuri/nextract/internal/storage"
	"github.com/goswamishashwatpuri/nextract/internal/task"
)

// ServiceContext 全局服务上下文
type ServiceContext struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client

	// Store 引擎与账本的持久化入口
	Store *storage.GormStore
	// Tasks 任务类型注册表
	Tasks *task.Registry
	// Executors 任务执行器注册表
	Executors *executor.Registry
	// Runner 工作流执行引擎
	Runner *engine.Runner
}

var Ctx *ServiceContext

// Init 初始化服务上下文及执行引擎
func Init(cfg *config.Config, db *gorm.DB, rdb *redis.Client) {
	store := storage.NewGormStore(db)
	tasks := task.NewRegistry()
	executors := executor.NewDefaultRegistry(executor.Deps{
		Browser:     cfg.Browser,
		AI:          cfg.AI,
		Credentials: storage.NewCredentialVault(db),
	})

	Ctx = &ServiceContext{
		Config:    cfg,
		DB:        db,
		Redis:     rdb,
		Store:     store,
		Tasks:     tasks,
		Executors: executors,
		Runner:    engine.NewRunner(tasks, executors, store, cfg.Engine.PhaseTimeoutDuration()),
	}
}

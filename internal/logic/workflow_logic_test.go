package logic

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/goswamishashwatpuri/nextract/internal/config"
	"github.com/goswamishashwatpuri/nextract/internal/ctxutil"
	"github.com/goswamishashwatpuri/nextract/internal/model"
	"github.com/goswamishashwatpuri/nextract/internal/svc"
)

func setupLogicTest(t *testing.T) context.Context {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.TWorkflow{},
		&model.TWorkflowExecution{},
		&model.TExecutionPhase{},
		&model.TExecutionLog{},
		&model.TUserBalance{},
		&model.TUserPurchase{},
		&model.TCredential{},
	))

	cfg := &config.Config{}
	cfg.Engine.InitialCredits = 100
	cfg.Engine.PhaseTimeout = 30
	svc.Init(cfg, db, nil)

	return ctxutil.WithUserID(context.Background(), "user-1")
}

// jsonChainDefinition 两个 JSON 任务通过边串联，无需浏览器即可真实执行
const jsonChainDefinition = `{
  "nodes": [
    {"id": "add", "type": "ADD_PROPERTY_TO_JSON",
     "inputs": {"JSON": "{\"site\":\"example\"}", "Property name": "price", "Property value": "42"}},
    {"id": "read", "type": "READ_PROPERTY_FROM_JSON",
     "inputs": {"Property name": "price"}}
  ],
  "edges": [
    {"source": "add", "sourceHandle": "Updated JSON", "target": "read", "targetHandle": "JSON"}
  ]
}`

func TestWorkflowCRUD(t *testing.T) {
	ctx := setupLogicTest(t)
	l := NewWorkflowLogic(ctx)

	created, err := l.Create(&CreateWorkflowReq{Name: "scraper"})
	require.NoError(t, err)
	assert.Equal(t, string(model.WorkflowStatusDraft), created.Status)
	assert.NotEmpty(t, created.ID)

	got, err := l.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "scraper", got.Name)

	updated, err := l.Update(created.ID, &UpdateWorkflowReq{Definition: jsonChainDefinition})
	require.NoError(t, err)
	assert.JSONEq(t, jsonChainDefinition, updated.Definition)

	list, err := l.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, l.Delete(created.ID))
	_, err = l.Get(created.ID)
	assert.Error(t, err)
}

func TestWorkflowOwnershipIsolation(t *testing.T) {
	ctx := setupLogicTest(t)
	created, err := NewWorkflowLogic(ctx).Create(&CreateWorkflowReq{Name: "mine"})
	require.NoError(t, err)

	otherCtx := ctxutil.WithUserID(context.Background(), "user-2")
	_, err = NewWorkflowLogic(otherCtx).Get(created.ID)
	assert.Error(t, err)
}

func TestPublishRequiresValidGraph(t *testing.T) {
	ctx := setupLogicTest(t)
	l := NewWorkflowLogic(ctx)

	// 空画布不允许发布
	created, err := l.Create(&CreateWorkflowReq{Name: "empty"})
	require.NoError(t, err)
	_, err = l.Publish(created.ID)
	assert.Error(t, err)

	// 合法图可以发布，再取消发布
	valid, err := l.Create(&CreateWorkflowReq{Name: "valid", Definition: jsonChainDefinition})
	require.NoError(t, err)
	published, err := l.Publish(valid.ID)
	require.NoError(t, err)
	assert.Equal(t, string(model.WorkflowStatusPublished), published.Status)

	draft, err := l.Unpublish(valid.ID)
	require.NoError(t, err)
	assert.Equal(t, string(model.WorkflowStatusDraft), draft.Status)
}

func TestRunInvalidGraphCreatesNothing(t *testing.T) {
	ctx := setupLogicTest(t)
	l := NewWorkflowLogic(ctx)

	// Selector 必填但缺失
	created, err := l.Create(&CreateWorkflowReq{
		Name:       "broken",
		Definition: `{"nodes":[{"id":"x","type":"EXTRACT_TEXT_FROM_ELEMENT","inputs":{"Html":"<p>hi</p>"}}],"edges":[]}`,
	})
	require.NoError(t, err)

	_, err = l.Run(created.ID)
	assert.Error(t, err)

	var executions int64
	svc.Ctx.DB.Model(&model.TWorkflowExecution{}).Count(&executions)
	assert.Equal(t, int64(0), executions)
	var phases int64
	svc.Ctx.DB.Model(&model.TExecutionPhase{}).Count(&phases)
	assert.Equal(t, int64(0), phases)
}

func TestRunExecutesWorkflowEndToEnd(t *testing.T) {
	ctx := setupLogicTest(t)

	_, err := svc.Ctx.Store.EnsureBalance(ctx, "user-1", 100)
	require.NoError(t, err)

	created, err := NewWorkflowLogic(ctx).Create(&CreateWorkflowReq{
		Name:       "json-chain",
		Definition: jsonChainDefinition,
	})
	require.NoError(t, err)

	executionID, err := NewWorkflowLogic(ctx).Run(created.ID)
	require.NoError(t, err)
	require.NotEmpty(t, executionID)

	// 后台执行，轮询等待终态
	deadline := time.Now().Add(5 * time.Second)
	var execution model.TWorkflowExecution
	for {
		require.NoError(t, svc.Ctx.DB.First(&execution, "id = ?", executionID).Error)
		if model.ExecutionStatus(execution.Status).IsTerminal() {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("execution did not reach a terminal state, status=%s", execution.Status)
		}
		time.Sleep(20 * time.Millisecond)
	}

	assert.Equal(t, string(model.ExecutionStatusCompleted), execution.Status)
	assert.Equal(t, int64(2), execution.CreditsConsumed)

	var phases []model.TExecutionPhase
	require.NoError(t, svc.Ctx.DB.Where("execution_id = ?", executionID).Order("number ASC").Find(&phases).Error)
	require.Len(t, phases, 2)
	assert.Equal(t, "add", phases[0].NodeID)
	assert.Equal(t, "read", phases[1].NodeID)
	for _, p := range phases {
		assert.Equal(t, string(model.PhaseStatusCompleted), p.Status)
	}

	// 输出沿边流动：读取阶段拿到了上游写入的属性
	require.NotNil(t, phases[1].Outputs)
	assert.Contains(t, *phases[1].Outputs, "42")

	credits, err := svc.Ctx.Store.GetCredits(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(98), credits)
}

func TestRunOfMissingWorkflowFails(t *testing.T) {
	ctx := setupLogicTest(t)
	_, err := NewWorkflowLogic(ctx).Run("no-such-id")
	assert.Error(t, err)
}

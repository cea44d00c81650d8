package executor

import (
	"fmt"
	"sync"

	"github.com/goswamishashwatpuri/nextract/internal/task"
)

// Registry 管理执行器的注册和查找。
// 每个任务类型对应唯一一个执行器实例，运行时只读。
type Registry struct {
	executors map[task.Type]Executor
	mu        sync.RWMutex
}

// NewRegistry 创建一个新的执行器注册表。
func NewRegistry() *Registry {
	return &Registry{
		executors: make(map[task.Type]Executor),
	}
}

// Register 为给定任务类型注册执行器。
// 如果该类型已注册执行器，则返回错误。
func (r *Registry) Register(executor Executor) error {
	if executor == nil {
		return fmt.Errorf("不能注册空执行器")
	}

	execType := executor.Type()
	if execType == "" {
		return fmt.Errorf("执行器类型不能为空")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.executors[execType]; exists {
		return fmt.Errorf("执行器类型已注册: %s", execType)
	}

	r.executors[execType] = executor
	return nil
}

// MustRegister 注册执行器，如果出错则 panic。
func (r *Registry) MustRegister(executor Executor) {
	if err := r.Register(executor); err != nil {
		panic(err)
	}
}

// Get 按类型获取执行器。
// 如果该类型没有注册执行器，则返回 nil。
func (r *Registry) Get(execType task.Type) Executor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.executors[execType]
}

// GetOrError 按类型获取执行器，如果不存在则返回错误。
func (r *Registry) GetOrError(execType task.Type) (Executor, error) {
	executor := r.Get(execType)
	if executor == nil {
		return nil, &NotFoundError{TaskType: string(execType)}
	}
	return executor, nil
}

// Has 检查给定类型是否已注册执行器。
func (r *Registry) Has(execType task.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.executors[execType]
	return exists
}

// Types 返回所有已注册的执行器类型。
func (r *Registry) Types() []task.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]task.Type, 0, len(r.executors))
	for t := range r.executors {
		types = append(types, t)
	}
	return types
}

// Count 返回已注册执行器的数量。
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.executors)
}

package task

import (
	"fmt"
)

// Registry 任务类型注册表，进程启动后只读。
type Registry struct {
	defs  map[Type]*Definition
	order []Type
}

// NotFoundError 未注册的任务类型错误
type NotFoundError struct {
	Type Type
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task type not registered: %s", e.Type)
}

// NewRegistry 创建包含全部内置任务类型的注册表。
func NewRegistry() *Registry {
	r := &Registry{
		defs: make(map[Type]*Definition, len(catalog)),
	}
	for i := range catalog {
		def := &catalog[i]
		r.defs[def.Type] = def
		r.order = append(r.order, def.Type)
	}
	return r
}

// Lookup 按类型查找任务定义。
func (r *Registry) Lookup(t Type) (*Definition, error) {
	def, ok := r.defs[t]
	if !ok {
		return nil, &NotFoundError{Type: t}
	}
	return def, nil
}

// Has 检查任务类型是否已注册。
func (r *Registry) Has(t Type) bool {
	_, ok := r.defs[t]
	return ok
}

// Types 返回所有任务类型，按目录声明顺序。
func (r *Registry) Types() []Type {
	out := make([]Type, len(r.order))
	copy(out, r.order)
	return out
}

// Count 返回已注册任务类型的数量。
func (r *Registry) Count() int {
	return len(r.defs)
}

package executor

import (
	"fmt"

	"github.com/goswamishashwatpuri/nextract/internal/browser"
)

// NotFoundError indicates no executor is registered for a task type.
type NotFoundError struct {
	TaskType string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no executor registered for task type: %s", e.TaskType)
}

// MissingInputError indicates a required input resolved to no value at
// execution time. The planner catches unsatisfiable inputs statically; this
// covers the dynamic case where an upstream output was empty.
type MissingInputError struct {
	Input string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("input %q is missing", e.Input)
}

// BrowserStateError indicates a browser-dependent task ran without the
// expected browser or page handle in the environment.
type BrowserStateError struct {
	Want string
}

func (e *BrowserStateError) Error() string {
	return fmt.Sprintf("no %s available in execution environment", e.Want)
}

// requireInput 读取必填输入，缺失时返回 MissingInputError。
func requireInput(env Environment, name string) (string, error) {
	v := env.GetInput(name)
	if v == "" {
		env.Log().Error(fmt.Sprintf("input->%s not defined", name))
		return "", &MissingInputError{Input: name}
	}
	return v, nil
}

// requirePage 获取当前页面句柄，不存在时视为阶段失败。
func requirePage(env Environment) (*browser.Page, error) {
	p := env.Page()
	if p == nil {
		env.Log().Error("no page available, did the workflow launch a browser first?")
		return nil, &BrowserStateError{Want: "page"}
	}
	return p, nil
}

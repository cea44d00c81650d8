package executor

import (
	"context"
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/goswamishashwatpuri/nextract/internal/task"
)

// ReadPropertyFromJSONExecutor reads one property out of a JSON document.
// The property name is a path expression, so both "title" and
// "items[0].price" work.
type ReadPropertyFromJSONExecutor struct{}

func (e *ReadPropertyFromJSONExecutor) Type() task.Type { return task.TypeReadPropertyFromJSON }

func (e *ReadPropertyFromJSONExecutor) Execute(ctx context.Context, env Environment) error {
	jsonInput, err := requireInput(env, task.ParamJSON)
	if err != nil {
		return err
	}
	propertyName, err := requireInput(env, task.ParamPropertyName)
	if err != nil {
		return err
	}

	data, err := oj.ParseString(jsonInput)
	if err != nil {
		env.Log().Error(fmt.Sprintf("invalid json input: %v", err))
		return err
	}
	path, err := jp.ParseString(propertyName)
	if err != nil {
		env.Log().Error(fmt.Sprintf("invalid property path: %v", err))
		return err
	}

	results := path.Get(data)
	if len(results) == 0 {
		env.Log().Error("property not found")
		return fmt.Errorf("property %q not found", propertyName)
	}

	env.SetOutput(task.ParamPropertyValue, stringifyValue(results[0]))
	return nil
}

// AddPropertyToJSONExecutor sets one property on a JSON document and emits
// the updated document.
type AddPropertyToJSONExecutor struct{}

func (e *AddPropertyToJSONExecutor) Type() task.Type { return task.TypeAddPropertyToJSON }

func (e *AddPropertyToJSONExecutor) Execute(ctx context.Context, env Environment) error {
	jsonInput, err := requireInput(env, task.ParamJSON)
	if err != nil {
		return err
	}
	propertyName, err := requireInput(env, task.ParamPropertyName)
	if err != nil {
		return err
	}
	propertyValue, err := requireInput(env, task.ParamPropertyValue)
	if err != nil {
		return err
	}

	data, err := oj.ParseString(jsonInput)
	if err != nil {
		env.Log().Error(fmt.Sprintf("invalid json input: %v", err))
		return err
	}
	path, err := jp.ParseString(propertyName)
	if err != nil {
		env.Log().Error(fmt.Sprintf("invalid property path: %v", err))
		return err
	}

	if err := path.Set(data, propertyValue); err != nil {
		env.Log().Error(fmt.Sprintf("failed to set property: %v", err))
		return err
	}

	env.SetOutput(task.ParamUpdatedJSON, oj.JSON(data))
	return nil
}

// stringifyValue renders a JSON value for handoff between phases. Plain
// strings pass through unquoted, everything else re-serializes.
func stringifyValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return oj.JSON(v)
}

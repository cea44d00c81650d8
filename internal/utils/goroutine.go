package utils

import (
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/goswamishashwatpuri/nextract/pkg/logger"
)

// SafeGoWithName 安全地启动一个带名称的 goroutine，自动捕获 panic 并记录日志
// 使用方式: utils.SafeGoWithName("run-execution", func() { ... })
func SafeGoWithName(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("goroutine panic recovered",
					zap.String("name", name),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()))
			}
		}()
		fn()
	}()
}

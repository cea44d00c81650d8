// Package redis 提供Redis连接管理。
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/goswamishashwatpuri/nextract/internal/config"
)

var client *redis.Client
var ctx = context.Background()

// Init 初始化Redis连接
func Init(cfg *config.RedisConfig) error {
	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 测试连接
	_, err := client.Ping(ctx).Result()
	return err
}

// GetClient 获取Redis客户端
func GetClient() *redis.Client {
	return client
}

// Close 关闭Redis连接
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

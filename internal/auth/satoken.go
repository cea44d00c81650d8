package auth

import (
	"fmt"

	"github.com/click33/sa-token-go/core"
	satokenConfig "github.com/click33/sa-token-go/core/config"
	satokenRedis "github.com/click33/sa-token-go/storage/redis"
	"github.com/click33/sa-token-go/stputil"

	"github.com/goswamishashwatpuri/nextract/internal/config"
)

var manager *core.Manager

// InitSaToken 初始化SaToken（Redis存储，与前端登录服务共享Token）
func InitSaToken(cfg *config.Config) error {
	var redisURL string
	if cfg.Redis.Password != "" {
		redisURL = fmt.Sprintf("redis://:%s@%s:%d/%d", cfg.Redis.Password, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)
	} else {
		redisURL = fmt.Sprintf("redis://%s:%d/%d", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)
	}

	storage, err := satokenRedis.NewStorage(redisURL)
	if err != nil {
		return fmt.Errorf("Redis存储初始化失败: %v", err)
	}

	builder := core.NewBuilder().
		Storage(storage).
		TokenName(cfg.SaToken.TokenName).
		TokenStyle(parseTokenStyle(cfg.SaToken.TokenStyle)).
		Timeout(cfg.SaToken.Timeout).
		ActiveTimeout(cfg.SaToken.ActiveTimeout).
		IsConcurrent(cfg.SaToken.IsConcurrent).
		IsShare(cfg.SaToken.IsShare).
		MaxLoginCount(cfg.SaToken.MaxLoginCount).
		IsLog(cfg.SaToken.IsLog)

	if parseTokenStyle(cfg.SaToken.TokenStyle) == satokenConfig.TokenStyleJWT && cfg.SaToken.JwtSecretKey != "" {
		builder = builder.JwtSecretKey(cfg.SaToken.JwtSecretKey)
	}

	manager = builder.Build()
	stputil.SetManager(manager)

	return nil
}

// parseTokenStyle 解析Token风格配置
func parseTokenStyle(style string) satokenConfig.TokenStyle {
	switch style {
	case "uuid":
		return satokenConfig.TokenStyleUUID
	case "simple-uuid":
		return satokenConfig.TokenStyleSimple
	case "random-32":
		return satokenConfig.TokenStyleRandom32
	case "random-64":
		return satokenConfig.TokenStyleRandom64
	case "random-128":
		return satokenConfig.TokenStyleRandom128
	case "jwt":
		return satokenConfig.TokenStyleJWT
	default:
		return satokenConfig.TokenStyleUUID
	}
}

// IsLogin 判断是否登录
func IsLogin(tokenValue string) bool {
	return stputil.IsLogin(tokenValue)
}

// GetLoginId 获取登录ID
func GetLoginId(tokenValue string) (string, error) {
	return stputil.GetLoginID(tokenValue)
}

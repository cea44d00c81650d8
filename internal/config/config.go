package config

import (
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 全局配置结构
type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
	SaToken  SaTokenConfig  `yaml:"sa_token"`
	Engine   EngineConfig   `yaml:"engine"`
	Browser  BrowserConfig  `yaml:"browser"`
	AI       AIConfig       `yaml:"ai"`
	Payment  PaymentConfig  `yaml:"payment"`
	Crypto   CryptoConfig   `yaml:"crypto"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Env     string `yaml:"env"` // dev, test, prod
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `yaml:"driver"` // mysql, postgres
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	Database        string `yaml:"database"`
	Charset         string `yaml:"charset"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // json, console
	Output     string `yaml:"output"` // stdout, file, both
	FilePath   string `yaml:"file_path"`
	MaxSize    int    `yaml:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // days
}

// SaTokenConfig SaToken配置
type SaTokenConfig struct {
	TokenName     string `yaml:"token_name"`
	TokenStyle    string `yaml:"token_style"` // uuid, simple-uuid, random-32, random-64, random-128, jwt
	Timeout       int64  `yaml:"timeout"`
	ActiveTimeout int64  `yaml:"active_timeout"`
	IsConcurrent  bool   `yaml:"is_concurrent"`
	IsShare       bool   `yaml:"is_share"`
	MaxLoginCount int    `yaml:"max_login_count"`
	IsLog         bool   `yaml:"is_log"`
	JwtSecretKey  string `yaml:"jwt_secret_key"`
}

// EngineConfig 执行引擎配置
type EngineConfig struct {
	// PhaseTimeout 单个阶段的最长执行时间，超时后阶段标记为失败（秒）
	PhaseTimeout int `yaml:"phase_timeout"`
	// InitialCredits 新用户初始赠送的积分
	InitialCredits int64 `yaml:"initial_credits"`
}

// PhaseTimeoutDuration 返回阶段超时时间（默认 120 秒）
func (c *EngineConfig) PhaseTimeoutDuration() time.Duration {
	if c.PhaseTimeout <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.PhaseTimeout) * time.Second
}

// BrowserConfig 远程浏览器配置
type BrowserConfig struct {
	// WSEndpoint 远程浏览器的 CDP WebSocket 地址（如 BrightData 的 browser endpoint）
	WSEndpoint string `yaml:"ws_endpoint"`
	// ConnectTimeout 连接超时时间（秒）
	ConnectTimeout int `yaml:"connect_timeout"`
}

// AIConfig AI模型配置
type AIConfig struct {
	Provider string `yaml:"provider"` // openai, deepseek, azure
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  int    `yaml:"timeout"` // 秒
}

// PaymentConfig 支付回调配置
type PaymentConfig struct {
	// WebhookSecret 支付平台回调签名密钥
	WebhookSecret string `yaml:"webhook_secret"`
}

// CryptoConfig 凭据加密配置
type CryptoConfig struct {
	// Key AES-256 密钥，必须为32字节
	Key string `yaml:"key"`
}

var (
	globalConfig *Config
	once         sync.Once
)

// LoadConfig 加载配置文件
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	once.Do(func() {
		globalConfig = &cfg
	})

	return &cfg, nil
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	return globalConfig
}

// SetConfig 设置全局配置
func SetConfig(cfg *Config) {
	globalConfig = cfg
}

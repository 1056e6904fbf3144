package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用程序配置
type Config struct {
	// 服务器配置
	Server ServerConfig `yaml:"server"`

	// SQLite配置
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Redis配置
	Redis RedisConfig `yaml:"redis"`

	// MinIO配置（可选，用于归档原始上传文件）
	MinIO MinIOConfig `yaml:"minio"`

	// LLM网关配置
	LLM LLMConfig `yaml:"llm"`

	// 文档解析配置
	Parser ParserConfig `yaml:"parser"`

	// 导出渲染配置
	Render RenderConfig `yaml:"render"`

	// 用户认证配置
	JWT JWTConfig `yaml:"jwt"`

	// 管理接口配置
	Admin AdminConfig `yaml:"admin"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`

	// 链路追踪配置
	Tracing TracingConfig `yaml:"tracing"`
}

// ServerConfig 定义服务器配置
type ServerConfig struct {
	Address string `yaml:"address"` // 例如 ":8080" or "0.0.0.0:8080"
}

// SQLiteConfig SQLite配置结构
type SQLiteConfig struct {
	Path string `yaml:"path"` // 数据库文件路径，":memory:"表示内存库
	// 连接池设置
	MaxIdleConns int `yaml:"max_idle_conns"` // 最大空闲连接数
	MaxOpenConns int `yaml:"max_open_conns"` // 最大打开连接数
	// 日志设置
	LogLevel int `yaml:"log_level"` // 日志级别(1-4)
}

// RedisConfig Redis配置结构
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`      // 连接池大小
	MinIdleConns int `yaml:"min_idle_conns"` // 最小空闲连接数
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`  // 连接超时(秒)
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`  // 读取超时(秒)
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"` // 写入超时(秒)
	// MD5记录过期时间(天)
	MD5RecordExpireDays int `yaml:"md5_record_expire_days"`
}

// MinIOConfig MinIO配置结构
type MinIOConfig struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"accessKeyID"`
	SecretAccessKey string `yaml:"secretAccessKey"`
	UseSSL          bool   `yaml:"useSSL"`
	OriginalsBucket string `yaml:"originalsBucket"` // 原始简历存储桶
	Location        string `yaml:"location"`        // 可选，存储桶区域
	// 原始文件过期天数
	OriginalFileExpireDays int `yaml:"original_file_expire_days"`
}

// LLMConfig LLM网关配置结构，是可被运行时覆盖的默认值
type LLMConfig struct {
	BaseURL        string  `yaml:"base_url"`         // OpenAI兼容接口地址
	APIKey         string  `yaml:"api_key"`
	Model          string  `yaml:"model"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	// 用户自定义配置的持久化文件路径
	UserConfigPath string `yaml:"user_config_path"`
}

// ParserConfig 文档解析配置
type ParserConfig struct {
	OCREnabled   bool   `yaml:"ocr_enabled"`   // 是否启用图片OCR
	OCRLanguages string `yaml:"ocr_languages"` // OCR识别语言，例如 "chi_sim+eng"
}

// RenderConfig 导出渲染配置
type RenderConfig struct {
	FontPath string `yaml:"font_path"` // CJK字体文件路径(TTF)，为空则使用内置西文字体
	FontName string `yaml:"font_name"` // 注册到PDF中的字体名
}

// JWTConfig 用户认证配置
type JWTConfig struct {
	Secret          string `yaml:"secret"`
	ExpirationHours int    `yaml:"expiration_hours"`
	BcryptCost      int    `yaml:"bcrypt_cost"`
}

// AdminConfig 管理接口配置
type AdminConfig struct {
	APIKey string `yaml:"api_key"` // 配置保存/重置等管理操作的访问密钥
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
	File         string `yaml:"file"`          // 日志文件路径
}

// TracingConfig 链路追踪配置
type TracingConfig struct {
	Enabled      bool   `yaml:"enabled"`
	OTLPEndpoint string `yaml:"otlp_endpoint"` // 例如 "localhost:4317"
	ServiceName  string `yaml:"service_name"`
}

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) (*Config, error) {
	// 如果未指定配置文件路径，则尝试在默认位置查找
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			"../../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".resume-assist", "config.yaml"),
		}

		// 添加可执行文件所在目录
		execPath, err := os.Executable()
		if err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths, filepath.Join(execDir, "config.yaml"))
			searchPaths = append(searchPaths, filepath.Join(execDir, "..", "config.yaml"))
		}

		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		// 仍找不到配置文件时，在测试环境中使用默认配置
		if configPath == "" {
			if inTestEnv() {
				return createDefaultConfig(), nil
			}
			configPath = "config.yaml"
		}
	}

	// 检查文件是否存在
	if _, err := os.Stat(configPath); err != nil {
		if inTestEnv() {
			return createDefaultConfig(), nil
		}
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	// 读取配置文件
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 解析配置文件
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyEnvOverrides(&config)
	applyDefaults(&config)

	return &config, nil
}

// inTestEnv 通过进程参数判断当前是否处于测试环境
func inTestEnv() bool {
	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			return true
		}
	}
	return false
}

// applyEnvOverrides 从环境变量覆盖配置（如果存在）
func applyEnvOverrides(config *Config) {
	if envKey := os.Getenv("LLM_API_KEY"); envKey != "" {
		config.LLM.APIKey = envKey
	}
	if envURL := os.Getenv("LLM_BASE_URL"); envURL != "" {
		config.LLM.BaseURL = envURL
	}
	if envModel := os.Getenv("LLM_MODEL"); envModel != "" {
		config.LLM.Model = envModel
	}
	if envSecret := os.Getenv("JWT_SECRET"); envSecret != "" {
		config.JWT.Secret = envSecret
	}
	if envKey := os.Getenv("ADMIN_API_KEY"); envKey != "" {
		config.Admin.APIKey = envKey
	}
	if envCost := os.Getenv("BCRYPT_COST"); envCost != "" {
		if cost, err := strconv.Atoi(envCost); err == nil {
			config.JWT.BcryptCost = cost
		}
	}
}

// applyDefaults 设置默认值 (如果需要)
func applyDefaults(config *Config) {
	if config.Server.Address == "" {
		config.Server.Address = ":8080"
	}
	if config.SQLite.Path == "" {
		config.SQLite.Path = "data/resume_assist.db"
	}
	if config.SQLite.MaxOpenConns == 0 {
		config.SQLite.MaxOpenConns = 1 // SQLite写并发有限，默认单连接
	}
	if config.LLM.BaseURL == "" {
		config.LLM.BaseURL = "https://api.siliconflow.cn/v1"
	}
	if config.LLM.Model == "" {
		config.LLM.Model = "Qwen/Qwen2.5-72B-Instruct"
	}
	if config.LLM.MaxTokens == 0 {
		config.LLM.MaxTokens = 4000
	}
	if config.LLM.TimeoutSeconds == 0 {
		config.LLM.TimeoutSeconds = 60
	}
	if config.LLM.UserConfigPath == "" {
		config.LLM.UserConfigPath = "data/user_config.json"
	}
	if config.Parser.OCRLanguages == "" {
		config.Parser.OCRLanguages = "chi_sim+eng"
	}
	if config.Render.FontName == "" {
		config.Render.FontName = "cjk"
	}
	if config.JWT.ExpirationHours == 0 {
		config.JWT.ExpirationHours = 24 * 7
	}
	if config.JWT.BcryptCost == 0 {
		config.JWT.BcryptCost = 10
	}
	if config.Redis.MD5RecordExpireDays == 0 {
		config.Redis.MD5RecordExpireDays = 365
	}
}

// 创建一个默认配置，用于测试环境
func createDefaultConfig() *Config {
	config := &Config{}

	config.Server.Address = ":8080"

	config.SQLite.Path = ":memory:"
	config.SQLite.MaxIdleConns = 1
	config.SQLite.MaxOpenConns = 1
	config.SQLite.LogLevel = 1 // Silent级别

	config.Redis.Address = "localhost:6379"
	config.Redis.DB = 0
	config.Redis.PoolSize = 10
	config.Redis.MinIdleConns = 2
	config.Redis.DialTimeoutSeconds = 5
	config.Redis.ReadTimeoutSeconds = 3
	config.Redis.WriteTimeoutSeconds = 3
	config.Redis.MD5RecordExpireDays = 365

	config.MinIO.Endpoint = "localhost:9000"
	config.MinIO.AccessKeyID = "minioadmin"
	config.MinIO.SecretAccessKey = "minioadmin123"
	config.MinIO.UseSSL = false
	config.MinIO.OriginalsBucket = "resume-originals"
	config.MinIO.OriginalFileExpireDays = 1095

	config.LLM.BaseURL = "https://api.siliconflow.cn/v1"
	config.LLM.Model = "Qwen/Qwen2.5-72B-Instruct"
	config.LLM.Temperature = 0.7
	config.LLM.MaxTokens = 4000
	config.LLM.TimeoutSeconds = 60
	config.LLM.UserConfigPath = filepath.Join(os.TempDir(), "resume_assist_user_config.json")
	if envKey := os.Getenv("LLM_API_KEY"); envKey != "" {
		config.LLM.APIKey = envKey
	} else {
		config.LLM.APIKey = "test_api_key"
	}

	config.Parser.OCREnabled = false
	config.Parser.OCRLanguages = "chi_sim+eng"

	config.Render.FontName = "cjk"

	config.JWT.Secret = "test_jwt_secret_0123456789"
	config.JWT.ExpirationHours = 24
	config.JWT.BcryptCost = 10

	config.Admin.APIKey = "test_admin_key"

	config.Logger.Level = "info"
	config.Logger.Format = "pretty"
	config.Logger.TimeFormat = "2006-01-02 15:04:05"
	config.Logger.ReportCaller = true

	config.Tracing.Enabled = false
	config.Tracing.ServiceName = "resume-assist-go"

	return config
}

// CreateSampleConfig 创建一个示例配置文件
func CreateSampleConfig(filePath string) error {
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("文件 '%s' 已存在，不会覆盖", filePath)
	}

	config := createDefaultConfig()

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("写入示例配置文件 '%s' 失败: %w", filePath, err)
	}

	fmt.Printf("示例配置文件已创建: %s\n", filePath)
	return nil
}

// GetDuration utility to parse duration strings from config
func GetDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return defaultDuration
	}
	return d
}

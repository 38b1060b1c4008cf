package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"conn-hub/pkg/constants"
)

// Config 全局配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Crypto   CryptoConfig   `mapstructure:"crypto"`
	Log      LogConfig      `mapstructure:"log"`
	API      APIConfig      `mapstructure:"api"`
	Core     CoreConfig     `mapstructure:"core"`
	Audit    AuditConfig    `mapstructure:"audit"`
}

// ServerConfig 服务配置
type ServerConfig struct {
	Name string `mapstructure:"name"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // mysql, memory
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Database        string `mapstructure:"database"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
	LogLevel        string `mapstructure:"log_level"`         // SQL日志级别: silent/error/warn/info
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
}

// AuthConfig 认证配置
type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret            string `mapstructure:"secret"`
	AccessTokenExpire int    `mapstructure:"access_token_expire"` // 秒
}

// CryptoConfig 加密配置
type CryptoConfig struct {
	SecretKey string `mapstructure:"secret_key"` // 任意长度，经 HKDF 派生为 AES-256 key
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`  // debug, info, warn, error
	Format   string `mapstructure:"format"` // json, console
	Output   string `mapstructure:"output"` // stdout, file
	FilePath string `mapstructure:"file_path"`
}

// APIConfig REST 接口配置
type APIConfig struct {
	MaximumPageLimit int `mapstructure:"maximum_page_limit"` // 列表单页上限
}

// CoreConfig 连接相关功能配置
type CoreConfig struct {
	TestConnection        string `mapstructure:"test_connection"`         // Enabled, Disabled, Hidden
	TestConnectionTimeout string `mapstructure:"test_connection_timeout"` // 探测超时
}

// AuditConfig 审计日志配置
type AuditConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	PurgeCron     string `mapstructure:"purge_cron"`     // 秒 分 时 日 月 周
	RetentionDays int    `mapstructure:"retention_days"` // <=0 不清理
}

// setDefaults 默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "conn-hub")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.driver", constants.DBDriverMySQL)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 3600)
	v.SetDefault("auth.jwt.access_token_expire", 7200)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("api.maximum_page_limit", 100)
	v.SetDefault("core.test_connection", constants.TestConnectionDisabled)
	v.SetDefault("core.test_connection_timeout", "5s")
	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.purge_cron", "0 0 3 * * *")
	v.SetDefault("audit.retention_days", 90)
}

// Load 加载配置
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// 设置配置文件路径
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// 读取环境变量, 如 CONNHUB_CORE_TEST_CONNECTION=Enabled
	v.SetEnvPrefix("CONNHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 解析配置
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case constants.DBDriverMySQL, constants.DBDriverMemory:
	default:
		return fmt.Errorf("不支持的数据库驱动: %s", c.Database.Driver)
	}
	switch c.Core.TestConnection {
	case constants.TestConnectionEnabled, constants.TestConnectionDisabled, constants.TestConnectionHidden:
	default:
		return fmt.Errorf("core.test_connection 只能是 Enabled/Disabled/Hidden: %s", c.Core.TestConnection)
	}
	if c.API.MaximumPageLimit < 1 {
		return fmt.Errorf("api.maximum_page_limit 必须大于0")
	}
	return nil
}

// GetDSN 获取数据库DSN
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// TestConnectionEnabled 是否开启连接测试
func (c *CoreConfig) TestConnectionEnabled() bool {
	return c.TestConnection == constants.TestConnectionEnabled
}

// GetTestConnectionTimeout 解析失败时回退为5秒
func (c *CoreConfig) GetTestConnectionTimeout() time.Duration {
	d, err := time.ParseDuration(c.TestConnectionTimeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// pkg/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
	"github.com/spf13/viper"
)

// DefaultFilePath 默认配置文件路径
const DefaultFilePath = "data/conf.ini"

// EnvPrefix 环境变量前缀，例如 NESTDEMO_GATEWAY_BASEURL
const EnvPrefix = "NESTDEMO"

// 定义所有已知的配置键
var allKeys = []string{
	KeyServerPort, KeyServerDebug, KeyFormSecret, KeyIDSeed,
	KeyGatewayBaseURL, KeyGatewayTimeout, KeyGatewayHealthPath, KeyGatewayHealthCron,
	KeyCacheGatewayTTL, KeyViewStateTTL,
	KeyPostsContentMinLength, KeyPostsDeleteStrategy,
	KeyDemoPlaceholderURL,
	KeyRedisAddr, KeyRedisPassword, KeyRedisDB,
	KeyRateLimitPerMinute, KeyRateLimitBurst,
}

const (
	KeyServerPort            = "System.Port"
	KeyServerDebug           = "System.Debug"
	KeyFormSecret            = "System.FormSecret"
	KeyIDSeed                = "System.IDSeed"
	KeyGatewayBaseURL        = "Gateway.BaseURL"
	KeyGatewayTimeout        = "Gateway.Timeout"
	KeyGatewayHealthPath     = "Gateway.HealthPath"
	KeyGatewayHealthCron     = "Gateway.HealthCron"
	KeyCacheGatewayTTL       = "Cache.GatewayTTL"
	KeyViewStateTTL          = "View.StateTTL"
	KeyPostsContentMinLength = "Posts.ContentMinLength"
	KeyPostsDeleteStrategy   = "Posts.DeleteStrategy"
	KeyDemoPlaceholderURL    = "Demo.PlaceholderURL"
	KeyRedisAddr             = "Redis.Addr"
	KeyRedisPassword         = "Redis.Password"
	KeyRedisDB               = "Redis.DB"
	KeyRateLimitPerMinute    = "RateLimit.PerMinute"
	KeyRateLimitBurst        = "RateLimit.Burst"
)

// DefaultGatewayBaseURL 是未配置网关地址时使用的硬编码回退值
const DefaultGatewayBaseURL = "http://localhost:3000"

type Config struct {
	vp *viper.Viper
}

// NewConfig 从默认路径加载配置
func NewConfig() (*Config, error) {
	return Load(DefaultFilePath)
}

// Load 手动加载配置：先读 ini 文件作为默认值，再用环境变量覆盖
func Load(filePath string) (*Config, error) {
	vp := viper.New()

	// --- 步骤 1: 使用 go-ini 从文件加载配置 (作为默认值) ---
	iniCfg, err := ini.Load(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("提示: 未找到 %s，将创建默认配置文件。", filePath)
			if err := createDefaultConfigFile(filePath); err != nil {
				log.Printf("警告: 创建默认配置文件失败: %v，将仅依赖环境变量或内部默认值。", err)
			} else {
				log.Printf("✅ 已创建默认配置文件: %s", filePath)
				iniCfg, err = ini.Load(filePath)
				if err != nil {
					log.Printf("警告: 重新加载配置文件失败: %v", err)
				}
			}
		} else {
			// 文件存在但格式错误
			return nil, fmt.Errorf("错误: 解析配置文件 '%s' 失败: %w", filePath, err)
		}
	}

	if iniCfg != nil {
		for _, section := range iniCfg.Sections() {
			for _, key := range section.Keys() {
				viperKey := fmt.Sprintf("%s.%s", section.Name(), key.Name())
				if section.Name() == ini.DefaultSection {
					viperKey = key.Name()
				}
				vp.Set(viperKey, key.Value())
			}
		}
		log.Printf("从 %s 文件加载了默认配置。", filePath)
	}

	// --- 步骤 2: 手动检查并覆盖环境变量 ---
	envReplacer := strings.NewReplacer(".", "_")
	for _, key := range allKeys {
		envVarName := fmt.Sprintf("%s_%s", EnvPrefix, envReplacer.Replace(strings.ToUpper(key)))
		if value, found := os.LookupEnv(envVarName); found {
			vp.Set(key, value)
			log.Printf("发现环境变量: %s, 已覆盖配置 '%s'。", envVarName, key)
		}
	}

	log.Println("✅ 配置加载器初始化完成。")
	return &Config{vp: vp}, nil
}

// NewFromMap 直接用键值对构造配置，主要用于测试
func NewFromMap(values map[string]string) *Config {
	vp := viper.New()
	for k, v := range values {
		vp.Set(k, v)
	}
	return &Config{vp: vp}
}

func (c *Config) GetString(key string) string {
	return c.vp.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.vp.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	return c.vp.GetBool(key)
}

// GetStringOr 键不存在或为空时返回 def
func (c *Config) GetStringOr(key, def string) string {
	if v := strings.TrimSpace(c.vp.GetString(key)); v != "" {
		return v
	}
	return def
}

// GetIntOr 键不存在或为空时返回 def；0 是合法值
func (c *Config) GetIntOr(key string, def int) int {
	if strings.TrimSpace(c.vp.GetString(key)) == "" {
		return def
	}
	return c.vp.GetInt(key)
}

// GatewayBaseURL 返回去掉末尾斜杠的网关地址，未配置时回退到默认值
func (c *Config) GatewayBaseURL() string {
	return strings.TrimRight(c.GetStringOr(KeyGatewayBaseURL, DefaultGatewayBaseURL), "/")
}

// createDefaultConfigFile 创建默认的配置文件
func createDefaultConfigFile(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	defaultConfig := `[System]
Port = 8091
Debug = false
# 表单令牌签名密钥，留空时每次启动随机生成
FormSecret =
# 文章公共ID的编码种子，修改后旧链接将失效
IDSeed =

[Gateway]
BaseURL = http://localhost:3000
# 单位：秒，0 表示不设置超时
Timeout = 30
HealthPath = /database/users
HealthCron = 0 * * * * *

[Cache]
# 网关 GET 响应缓存时间（秒），0 表示不缓存
GatewayTTL = 0

[View]
StateTTL = 1800

[Posts]
# 内容最少字符数，0 表示不校验内容
ContentMinLength = 10
# optimistic: 删除后直接从本地列表移除；refetch: 删除后重新拉取列表
DeleteStrategy = optimistic

[Demo]
PlaceholderURL = https://jsonplaceholder.typicode.com/posts

# Redis 配置（可选）
# 如果不配置或留空 Addr，系统将自动使用内存缓存
[Redis]
Addr =
Password =
DB = 0

[RateLimit]
PerMinute = 60
Burst = 20
`

	if err := os.WriteFile(filePath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Host string
	Port int
}

func (s ServerConfig) Addr() string {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CatalogueConfig 商品目录数据源配置
// 每个数据源既可以是本地文件路径，也可以是 http(s) 地址
type CatalogueConfig struct {
	ProductsSource   string
	CategoriesSource string
	ReviewsSource    string
}

// AuthAPIConfig 第三方演示鉴权 API（ReqRes 风格）配置
type AuthAPIConfig struct {
	// BaseURL 演示 API 根地址，例如 https://reqres.in 或本地 authmock 地址
	BaseURL string
	// ProxyPrefix CORS 代理前缀，为空表示直连；
	// 前端版本通过 allorigins / corsproxy 访问，这里保留同样的开关
	ProxyPrefix string
	// ProfileUserID 拉取资料补全时使用的演示用户 ID
	ProfileUserID int
	// TimeoutSeconds 单次请求超时（秒），0 表示不限制
	TimeoutSeconds int
}

// SessionConfig 会话配置，订单确认数据保存在会话中
type SessionConfig struct {
	CookieName   string
	ExpiresHours int
}

// JWTConfig JWT 配置（authmock 签发 token 使用）
type JWTConfig struct {
	Secret string
}

// Config 应用总配置
type Config struct {
	Server         ServerConfig
	AuthMockServer ServerConfig
	Catalogue      CatalogueConfig
	AuthAPI        AuthAPIConfig
	Session        SessionConfig
	JWT            JWTConfig
}

// DefaultConfig 默认配置，方便快速跑起来
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		AuthMockServer: ServerConfig{
			Host: "0.0.0.0",
			Port: 8081,
		},
		Catalogue: CatalogueConfig{
			ProductsSource:   "./web/data/products.json",
			CategoriesSource: "./web/data/categories.xml",
			ReviewsSource:    "./web/data/reviews.json",
		},
		AuthAPI: AuthAPIConfig{
			BaseURL:        "http://127.0.0.1:8081",
			ProxyPrefix:    "",
			ProfileUserID:  2,
			TimeoutSeconds: 10,
		},
		Session: SessionConfig{
			CookieName:   "myshop_session",
			ExpiresHours: 24,
		},
		JWT: JWTConfig{
			Secret: "myshop-secret",
		},
	}
}

// LoadConfig 从指定目录读取 config.yaml 覆盖默认配置；
// 文件不存在时直接返回默认值，保证零配置也能启动
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.SetEnvPrefix("myshop")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %v", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %v", err)
	}
	return cfg, nil
}

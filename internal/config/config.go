// Package config 提供配置加载和管理功能
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ai_helpdesk_mini/internal/models"
)

var globalConfig *Config

// Config 应用程序配置结构
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	LLM      LLMConfig      `yaml:"llm"`
	Ollama   OllamaConfig   `yaml:"ollama"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Helpdesk HelpdeskConfig `yaml:"helpdesk"`
	QA       QAConfig       `yaml:"qa"`
}

// ServerConfig HTTP服务器配置
type ServerConfig struct {
	Host string `yaml:"host"` // 服务器监听地址
	Port int    `yaml:"port"` // 服务器监听端口
}

// LLMConfig 模型提供方配置
type LLMConfig struct {
	Provider string `yaml:"provider"` // 提供方：ollama或openai
}

// OllamaConfig Ollama配置
type OllamaConfig struct {
	Host  string `yaml:"host"`  // Ollama服务器地址
	Model string `yaml:"model"` // 模型名称
}

// OpenAIConfig OpenAI兼容接口配置
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`  // API密钥
	BaseURL string `yaml:"base_url"` // 服务器地址，为空时使用官方地址
	Model   string `yaml:"model"`    // 模型名称
}

// HelpdeskConfig 在线客服配置
type HelpdeskConfig struct {
	Routes   []int  `yaml:"routes"`    // 本部署启用的意图编号（1-7）
	MenuPath string `yaml:"menu_path"` // 菜单CSV文件路径
}

// QAConfig 文档问答配置
type QAConfig struct {
	DocumentPath string `yaml:"document_path"` // 问答依据的文档路径
}

// 模型提供方常量
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// GetConfig 获取全局配置实例
func GetConfig() *Config {
	return globalConfig
}

// EnabledRoutes 返回启用的意图编号列表
func (c *HelpdeskConfig) EnabledRoutes() []models.Route {
	routes := make([]models.Route, 0, len(c.Routes))
	for _, n := range c.Routes {
		routes = append(routes, models.Route(n))
	}
	return routes
}

// Load 从文件加载配置
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %v", err)
	}

	// 设置默认值
	if config.Server.Host == "" {
		config.Server.Host = "0.0.0.0"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8002
	}
	if config.LLM.Provider == "" {
		config.LLM.Provider = ProviderOllama
	}

	// 验证配置
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("配置验证失败: %v", err)
	}

	// 设置全局配置
	globalConfig = &config

	return &config, nil
}

// validateConfig 验证配置是否有效
func validateConfig(config *Config) error {
	// 验证服务器配置
	if config.Server.Port <= 0 {
		return fmt.Errorf("服务器端口必须大于0")
	}

	// 验证模型提供方配置
	switch config.LLM.Provider {
	case ProviderOllama:
		if config.Ollama.Host == "" {
			return fmt.Errorf("Ollama服务器地址不能为空")
		}
		if config.Ollama.Model == "" {
			return fmt.Errorf("Ollama模型名称不能为空")
		}
	case ProviderOpenAI:
		if config.OpenAI.APIKey == "" {
			return fmt.Errorf("OpenAI API密钥不能为空")
		}
		if config.OpenAI.Model == "" {
			return fmt.Errorf("OpenAI模型名称不能为空")
		}
	default:
		return fmt.Errorf("未知的模型提供方: %s", config.LLM.Provider)
	}

	// 验证意图编号
	for _, n := range config.Helpdesk.Routes {
		if !models.Route(n).Valid() {
			return fmt.Errorf("意图编号必须在1-7之间: %d", n)
		}
	}

	// 启用推荐意图时必须配置菜单文件
	for _, route := range config.Helpdesk.EnabledRoutes() {
		if route == models.RouteProductRecommendation && config.Helpdesk.MenuPath == "" {
			return fmt.Errorf("启用推荐意图时菜单文件路径不能为空")
		}
	}

	return nil
}

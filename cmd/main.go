package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"ai_helpdesk_mini/internal/clients/ollama"
	"ai_helpdesk_mini/internal/clients/openai"
	"ai_helpdesk_mini/internal/config"
	"ai_helpdesk_mini/internal/handlers"
	"ai_helpdesk_mini/internal/middleware"
	"ai_helpdesk_mini/internal/models"
	"ai_helpdesk_mini/internal/routes"
	"ai_helpdesk_mini/internal/services"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("在线客服系统启动中...")

	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 创建模型客户端
	client, err := newChatClient(cfg)
	if err != nil {
		log.Fatalf("创建模型客户端失败: %v", err)
	}

	// 创建业务服务
	router := services.NewRouterService(client)
	chitchat := services.NewChitchatService(client)
	recommend := services.NewRecommendService(client, cfg.Helpdesk.MenuPath)
	helpdesk := services.NewHelpdeskService(router, chitchat, recommend, cfg.Helpdesk.EnabledRoutes())
	qa := services.NewQAService(client, cfg.QA.DocumentPath)

	// 创建HTTP服务
	r := gin.New()
	middleware.Setup(r)
	routes.RegisterChatRoutes(r, handlers.NewChatHandler(helpdesk, qa), handlers.NewWSHandler(helpdesk))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("HTTP服务监听于 %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("启动HTTP服务失败: %v", err)
	}
}

// newChatClient 按配置创建模型客户端
func newChatClient(cfg *config.Config) (models.ChatClient, error) {
	switch cfg.LLM.Provider {
	case config.ProviderOllama:
		return ollama.NewClient(ollama.Config{
			Host:  cfg.Ollama.Host,
			Model: cfg.Ollama.Model,
		}), nil
	case config.ProviderOpenAI:
		return openai.NewClient(openai.Config{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
		}), nil
	}
	return nil, fmt.Errorf("未知的模型提供方: %s", cfg.LLM.Provider)
}

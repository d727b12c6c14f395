// Package openai 提供OpenAI兼容API的对话客户端
// 适用于Ollama的OpenAI兼容端点及各类托管网关
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"ai_helpdesk_mini/internal/models"
)

// Config OpenAI客户端配置
type Config struct {
	APIKey  string // API密钥
	BaseURL string // 服务器地址，为空时使用官方地址
	Model   string // 使用的模型名称
}

// Client OpenAI兼容客户端
type Client struct {
	api   *openai.Client
	model string
}

// NewClient 创建新的OpenAI兼容客户端
func NewClient(config Config) *Client {
	cfg := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		cfg.BaseURL = config.BaseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: config.Model,
	}
}

// Chat 提交消息列表并返回完整回复，通过流式接口全量拼接
func (c *Client) Chat(ctx context.Context, messages []models.Message) (string, error) {
	var full string
	err := c.ChatStream(ctx, messages, func(delta string) error {
		full += delta
		return nil
	})
	if err != nil {
		return "", err
	}
	return full, nil
}

// ChatStream 流式对话，逐块回调模型输出
func (c *Client) ChatStream(ctx context.Context, messages []models.Message, emit func(delta string) error) error {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: convertMessages(messages),
		Stream:   true,
	}

	stream, err := c.api.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return fmt.Errorf("创建流式请求失败: %v", err)
	}
	defer stream.Close()

	for {
		response, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("接收流式响应失败: %v", err)
		}

		if len(response.Choices) == 0 {
			continue
		}
		if err := emit(response.Choices[0].Delta.Content); err != nil {
			return fmt.Errorf("处理响应失败: %v", err)
		}
	}
}

// convertMessages 转换内部消息为SDK消息格式
func convertMessages(messages []models.Message) []openai.ChatCompletionMessage {
	converted := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		converted[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}
	return converted
}

// Package ollama 提供Ollama对话API客户端
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"ai_helpdesk_mini/internal/models"
)

// Config Ollama客户端配置
type Config struct {
	Host  string // Ollama服务器地址（完整URL）
	Model string // 使用的模型名称
}

// Client Ollama客户端
type Client struct {
	config Config
	client *http.Client
}

// ChatRequest 对话请求参数
type ChatRequest struct {
	Model    string           `json:"model"`             // 模型名称
	Messages []models.Message `json:"messages"`          // 消息列表
	Stream   bool             `json:"stream"`            // 是否流式输出
	Options  Options          `json:"options,omitempty"` // 可选参数
}

// Options 生成选项
type Options struct {
	Temperature float64 `json:"temperature,omitempty"` // 温度参数
	TopP        float64 `json:"top_p,omitempty"`       // Top-p采样
	NumPredict  int     `json:"num_predict,omitempty"` // 最大生成token数
}

// ChatResponse 对话响应
type ChatResponse struct {
	Model     string         `json:"model"`      // 模型名称
	CreatedAt string         `json:"created_at"` // 创建时间
	Message   models.Message `json:"message"`    // 本次增量消息
	Done      bool           `json:"done"`       // 是否完成
}

// NewClient 创建新的Ollama客户端
func NewClient(config Config) *Client {
	return &Client{
		config: config,
		client: &http.Client{},
	}
}

// Chat 提交消息列表并返回完整回复，通过流式接口全量拼接
func (c *Client) Chat(ctx context.Context, messages []models.Message) (string, error) {
	var full bytes.Buffer
	err := c.ChatStream(ctx, messages, func(delta string) error {
		full.WriteString(delta)
		return nil
	})
	if err != nil {
		return "", err
	}
	return full.String(), nil
}

// ChatStream 流式对话，逐块回调模型输出
// emit返回错误或ctx被取消时中断消费，底层连接随请求上下文释放
func (c *Client) ChatStream(ctx context.Context, messages []models.Message, emit func(delta string) error) error {
	resp, err := c.post(ctx, ChatRequest{
		Model:    c.config.Model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// 逐行解析NDJSON流
	decoder := json.NewDecoder(resp.Body)
	for decoder.More() {
		var response ChatResponse
		if err := decoder.Decode(&response); err != nil {
			return fmt.Errorf("解析响应失败: %v", err)
		}

		if err := emit(response.Message.Content); err != nil {
			return fmt.Errorf("处理响应失败: %v", err)
		}

		if response.Done {
			break
		}
	}

	return nil
}

// post 发送对话请求并检查状态码
func (c *Client) post(ctx context.Context, reqBody ChatRequest) (*http.Response, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %v", err)
	}

	url := fmt.Sprintf("%s/api/chat", c.config.Host)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送请求失败: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("服务器返回错误: %s", string(body))
	}

	return resp, nil
}

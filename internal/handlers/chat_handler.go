// Package handlers 提供HTTP请求处理器
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ai_helpdesk_mini/internal/models"
	"ai_helpdesk_mini/internal/services"
)

// ChatRequest 对话请求体
type ChatRequest struct {
	Query   string        `json:"query"`   // 用户问题，缺省为空字符串
	History []HistoryItem `json:"history"` // 对话历史，缺省为空列表
	Orders  [][]string    `json:"orders"`  // 购买记录，推荐意图可选参数
}

// HistoryItem 对话历史中的一条消息
type HistoryItem struct {
	Role    string `json:"role"`    // 消息角色
	Content string `json:"content"` // 消息内容
}

// ChatHandler 对话处理器
type ChatHandler struct {
	helpdesk *services.HelpdeskService
	qa       *services.QAService
}

// NewChatHandler 创建对话处理器
func NewChatHandler(helpdesk *services.HelpdeskService, qa *services.QAService) *ChatHandler {
	return &ChatHandler{helpdesk: helpdesk, qa: qa}
}

// HandleChat 处理POST /chat请求，以SSE流式返回模型回复
func (h *ChatHandler) HandleChat(c *gin.Context) {
	req, history, err := parseChatRequest(c)
	if err != nil {
		// 流式传输开始前的错误以普通JSON响应返回
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	streamSSE(c, func(ctx context.Context, emit func(delta string) error) error {
		return h.helpdesk.Stream(ctx, req.Query, history, req.Orders, emit)
	})
}

// HandleQA 处理POST /qa请求，以SSE流式返回文档问答回复
func (h *ChatHandler) HandleQA(c *gin.Context) {
	req, _, err := parseChatRequest(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	streamSSE(c, func(ctx context.Context, emit func(delta string) error) error {
		return h.qa.Stream(ctx, req.Query, emit)
	})
}

// parseChatRequest 解析并校验请求体
func parseChatRequest(c *gin.Context) (ChatRequest, []models.Message, error) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return ChatRequest{}, nil, fmt.Errorf("解析请求体失败: %v", err)
	}

	history := make([]models.Message, 0, len(req.History))
	for _, item := range req.History {
		msg, err := models.NewMessage(item.Role, item.Content)
		if err != nil {
			return ChatRequest{}, nil, fmt.Errorf("历史消息非法: %v", err)
		}
		history = append(history, msg)
	}
	return req, history, nil
}

// streamSSE 以SSE形式转发produce产出的全部文本块
// 响应头一旦提交即进入流式模式，此后发生的错误只能通过error事件带回；
// 无论成功或失败，最后都恰好发送一个end事件
func streamSSE(c *gin.Context, produce func(ctx context.Context, emit func(delta string) error) error) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	// 客户端断开时请求上下文取消，上游模型连接随之释放
	ctx := c.Request.Context()

	err := produce(ctx, func(delta string) error {
		return sseEvent(c, "data", gin.H{"action": "response", "message": delta})
	})
	if err != nil {
		// 流式过程中的错误不关闭连接，仅发送error事件通知客户端
		sseEvent(c, "error", gin.H{"action": "error", "message": err.Error()})
	}

	sseEvent(c, "end", gin.H{})
}

// sseEvent 写入单个SSE事件帧并立即刷出
// 帧格式固定为 "event: <name>\ndata: <json>\n\n"，JSON不转义非ASCII字符
func sseEvent(c *gin.Context, event string, data interface{}) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("序列化事件数据失败: %v", err)
	}
	payload := bytes.TrimRight(buf.Bytes(), "\n")

	if _, err := fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return fmt.Errorf("写入事件失败: %v", err)
	}
	c.Writer.Flush()
	return nil
}

// Package models 定义对话消息和服务接口
package models

import (
	"context"
	"fmt"
)

// 消息角色常量
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message 对话消息
type Message struct {
	Role    string `json:"role"`    // 消息角色：system/user/assistant/tool
	Content string `json:"content"` // 消息内容
}

// NewMessage 创建消息，校验角色是否合法
func NewMessage(role, content string) (Message, error) {
	if !ValidRole(role) {
		return Message{}, fmt.Errorf("未知的消息角色: %s", role)
	}
	return Message{Role: role, Content: content}, nil
}

// ValidRole 判断角色是否为四种合法角色之一
func ValidRole(role string) bool {
	switch role {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		return true
	}
	return false
}

// ChatClient 模型客户端接口
type ChatClient interface {
	// Chat 提交完整消息列表，返回拼接后的完整回复
	Chat(ctx context.Context, messages []Message) (string, error)

	// ChatStream 提交完整消息列表，逐块回调模型输出
	// emit返回错误时终止消费并释放底层连接
	ChatStream(ctx context.Context, messages []Message, emit func(delta string) error) error
}

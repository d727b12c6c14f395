// Package services 提供意图分类、对话与推荐等业务服务
package services

import (
	"context"

	"ai_helpdesk_mini/internal/models"
	"ai_helpdesk_mini/internal/prompt"
)

// chitchatSystemPrompt 闲聊服务的固定系统提示词
const chitchatSystemPrompt = "You are a helpful assistant. Answer in Traditional Chinese (Taiwanese usage). " +
	"If you don't know the answer, say '不知道'."

// ChitchatService 闲聊对话服务
type ChitchatService struct {
	client models.ChatClient
}

// NewChitchatService 创建闲聊对话服务
func NewChitchatService(client models.ChatClient) *ChitchatService {
	return &ChitchatService{client: client}
}

// Stream 处理用户消息，逐块回调模型回复
func (s *ChitchatService) Stream(ctx context.Context, question string, history []models.Message, emit func(delta string) error) error {
	messages, err := AssembleDialogue(chitchatSystemPrompt, history, question)
	if err != nil {
		return err
	}
	return s.client.ChatStream(ctx, messages, emit)
}

// AssembleDialogue 组装对话消息列表：[system] + history + [user(question)]
// 历史消息原样透传，不做模板渲染；仅当前问题经占位符渲染插入，
// 避免历史内容中的花括号被误当作模板
func AssembleDialogue(systemPrompt string, history []models.Message, question string) ([]models.Message, error) {
	userTurn, err := prompt.Render(
		[]models.Message{{Role: models.RoleUser, Content: "{question}"}},
		map[string]string{"question": question},
	)
	if err != nil {
		return nil, err
	}

	messages := make([]models.Message, 0, len(history)+2)
	messages = append(messages, models.Message{Role: models.RoleSystem, Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, userTurn...)
	return messages, nil
}

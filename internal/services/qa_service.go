package services

import (
	"context"
	"fmt"
	"os"

	"ai_helpdesk_mini/internal/models"
	"ai_helpdesk_mini/internal/prompt"
)

// qaSystemPrompt 文档问答的固定系统提示词，仅允许依据给定内容作答
const qaSystemPrompt = "Answer strictly using ONLY the provided content. " +
	"If the answer is not present, reply with \"不知道\". " +
	"Respond in Traditional Chinese (zh-Hant)."

// qaUserTemplate 文档问答的用户消息模板
const qaUserTemplate = "Content:\n{context}\n---\nQuestion: {question}\n" +
	"Answer strictly using the content above."

// QAService 封闭式文档问答服务
type QAService struct {
	client       models.ChatClient
	documentPath string
}

// NewQAService 创建文档问答服务
func NewQAService(client models.ChatClient, documentPath string) *QAService {
	return &QAService{client: client, documentPath: documentPath}
}

// Stream 依据配置的文档回答问题，逐块回调模型回复
func (s *QAService) Stream(ctx context.Context, question string, emit func(delta string) error) error {
	document, err := os.ReadFile(s.documentPath)
	if err != nil {
		return fmt.Errorf("读取文档失败: %v", err)
	}

	messages, err := prompt.Render(
		[]models.Message{
			{Role: models.RoleSystem, Content: qaSystemPrompt},
			{Role: models.RoleUser, Content: qaUserTemplate},
		},
		map[string]string{
			"question": question,
			"context":  string(document),
		},
	)
	if err != nil {
		return err
	}

	return s.client.ChatStream(ctx, messages, emit)
}

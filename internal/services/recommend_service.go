package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"ai_helpdesk_mini/internal/models"
	"ai_helpdesk_mini/internal/prompt"
)

// recommendSystemPrompt 推荐服务的固定系统提示词
// 只允许基于菜单与购买记录推荐，信息不足时固定回复「不知道」
const recommendSystemPrompt = "You are a dining recommendation assistant. Base your advice ONLY on the provided menu and purchase history. " +
	"If information is insufficient, reply exactly with 「不知道」. " +
	"Provide 2-3 bullet points with dish names and a short reason for each.\n" +
	"[Hard rules]\n" +
	"1) Write the final answer entirely in Traditional Chinese (zh-Hant) and in a warm, friendly tone; no English words or letters.\n" +
	"2) Recommend only items that exist in the menu; never invent dishes.\n" +
	"3) Respect the requested dining period; if a candidate does not fit, choose another.\n" +
	"4) You may infer taste/allergen preferences from purchase history and explain briefly."

// recommendUserTemplate 推荐服务的用户消息模板
const recommendUserTemplate = "[User need] {question}\n\n" +
	"[Menu]\n{menu}\n\n" +
	"[Purchase history] {history}\n\n" +
	"Write the final answer entirely in Traditional Chinese (zh-Hant) and in a warm, friendly tone; no English words or letters."

// RecommendService 菜品推荐服务
type RecommendService struct {
	client   models.ChatClient
	menuPath string
}

// NewRecommendService 创建菜品推荐服务
func NewRecommendService(client models.ChatClient, menuPath string) *RecommendService {
	return &RecommendService{client: client, menuPath: menuPath}
}

// Stream 基于菜单与购买记录生成推荐，逐块回调模型回复
// orders为历次购买记录，每条记录是一次消费的菜品列表
func (s *RecommendService) Stream(ctx context.Context, question string, orders [][]string, emit func(delta string) error) error {
	menu, err := os.ReadFile(s.menuPath)
	if err != nil {
		return fmt.Errorf("读取菜单文件失败: %v", err)
	}

	history, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("序列化购买记录失败: %v", err)
	}

	messages, err := prompt.Render(
		[]models.Message{
			{Role: models.RoleSystem, Content: recommendSystemPrompt},
			{Role: models.RoleUser, Content: recommendUserTemplate},
		},
		map[string]string{
			"question": question,
			"menu":     string(menu),
			"history":  string(history),
		},
	)
	if err != nil {
		return err
	}

	return s.client.ChatStream(ctx, messages, emit)
}

package services

import (
	"context"
	"log"
	"strconv"
	"strings"

	"ai_helpdesk_mini/internal/models"
	"ai_helpdesk_mini/internal/prompt"
)

// routerSystemPrompt 意图分类的固定系统提示词，要求模型只输出一个阿拉伯数字
const routerSystemPrompt = "You are an assistant for a fast-food brand. First interpret the message in Chinese, " +
	"but your final output must be exactly one Arabic digit (1-7), with no other text, punctuation, or explanation.\n" +
	"[ROUTES & Scope]\n" +
	"1 = Order flow: place order / pre-order / delivery / modify order / cancel / checkout (if there is clear ordering intent, choose 1 over 2/3/4)\n" +
	"2 = Menu & products: availability / price / size-specs / ingredients / allergens / serving time (product level)\n" +
	"3 = Marketing events: coupons / discounts / promotions / membership / seasonal campaigns\n" +
	"4 = Store operations: store location / business hours / directions / delivery coverage / phone / parking\n" +
	"5 = Personalized recommendation: user explicitly asks you to recommend or 'what to eat' based on taste/budget/restrictions/history (only when there is an explicit request for recommendations)\n" +
	"6 = Brand & company: brand story / policies / recruiting / brand-level comparisons with other chains\n" +
	"7 = Others / off-topic: non-food topics or unclear/ambiguous expressions\n"

// routerFewShot 每种意图一条示范问答，assistant侧只含对应数字
var routerFewShot = []models.Message{
	// 1 点餐
	{Role: models.RoleUser, Content: "請幫我外送兩份經典牛肉堡到內湖，另外加一份薯條。"},
	{Role: models.RoleAssistant, Content: "1"},

	// 2 产品查询
	{Role: models.RoleUser, Content: "小杯可樂現在多少錢？"},
	{Role: models.RoleAssistant, Content: "2"},

	// 3 活动查询
	{Role: models.RoleUser, Content: "本月是否有折扣碼或會員加碼活動？"},
	{Role: models.RoleAssistant, Content: "3"},

	// 4 门市查询
	{Role: models.RoleUser, Content: "台北車站附近的門市今天營業到幾點？"},
	{Role: models.RoleAssistant, Content: "4"},

	// 5 产品推荐
	{Role: models.RoleUser, Content: "我不吃牛而且怕辣，預算兩百內，有沒有推薦？"},
	{Role: models.RoleAssistant, Content: "5"},

	// 6 企业信息
	{Role: models.RoleUser, Content: "品牌的創立故事與核心價值是什麼？"},
	{Role: models.RoleAssistant, Content: "6"},

	// 7 其他
	{Role: models.RoleUser, Content: "你覺得最近股市會上漲嗎？"},
	{Role: models.RoleAssistant, Content: "7"},
}

// RouterService 意图分类服务
type RouterService struct {
	client models.ChatClient
}

// NewRouterService 创建意图分类服务
func NewRouterService(client models.ChatClient) *RouterService {
	return &RouterService{client: client}
}

// Classify 将用户问题分类为1-7的意图编号
// 本次模型调用全量读取、不向调用方流式转发
// 模型输出无法解析为1-7的数字时回退为7（其他），并记录原始输出
func (s *RouterService) Classify(ctx context.Context, question string) (models.Route, error) {
	messages, err := s.buildPrompt(question)
	if err != nil {
		return 0, err
	}

	text, err := s.client.Chat(ctx, messages)
	if err != nil {
		return 0, err
	}

	route, ok := parseRoute(text)
	if !ok {
		log.Printf("意图分类输出无法解析，回退为其他: %q", text)
		return models.RouteOthers, nil
	}
	return route, nil
}

// buildPrompt 构建分类提示词：系统指令 + 示范问答 + 用户问题
func (s *RouterService) buildPrompt(question string) ([]models.Message, error) {
	messages := make([]models.Message, 0, len(routerFewShot)+2)
	messages = append(messages, models.Message{Role: models.RoleSystem, Content: routerSystemPrompt})
	messages = append(messages, routerFewShot...)

	userTurn, err := prompt.Render(
		[]models.Message{{Role: models.RoleUser, Content: "{question}"}},
		map[string]string{"question": question},
	)
	if err != nil {
		return nil, err
	}
	return append(messages, userTurn...), nil
}

// parseRoute 解析模型输出为意图编号
func parseRoute(text string) (models.Route, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	route := models.Route(n)
	if !route.Valid() {
		return 0, false
	}
	return route, true
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai_helpdesk_mini/internal/models"
)

// newHelpdesk 用同一个桩客户端组装在线客服服务
func newHelpdesk(client *fakeClient, menuPath string, enabled []models.Route) *HelpdeskService {
	router := NewRouterService(client)
	chitchat := NewChitchatService(client)
	recommend := NewRecommendService(client, menuPath)
	return NewHelpdeskService(router, chitchat, recommend, enabled)
}

func TestHelpdeskService_RejectsUnimplementedRoute(t *testing.T) {
	// 部署只启用推荐意图，门市查询返回固定拒答文本
	client := &fakeClient{chatReplies: []string{"4"}}
	helpdesk := newHelpdesk(client, "", []models.Route{models.RouteProductRecommendation})

	var got []string
	err := helpdesk.Stream(context.Background(), "台北車站附近的門市今天營業到幾點？", nil, nil, func(delta string) error {
		got = append(got, delta)
		return nil
	})

	assert.NoError(t, err)
	// 恰好一个分块，之后终止
	assert.Equal(t, []string{"No response: 4 - Shop Query"}, got)
	// 不会发出第二次模型调用
	assert.Len(t, client.chatCalls, 1)
	assert.Empty(t, client.streamCalls)
}

func TestHelpdeskService_ChitchatDeployment(t *testing.T) {
	// 部署只启用闲聊意图，离题问题走闲聊处理器流式回复
	client := &fakeClient{
		chatReplies: []string{"7"},
		chunks:      []string{"股市", "走勢", "很難預測"},
	}
	helpdesk := newHelpdesk(client, "", []models.Route{models.RouteOthers})

	var got []string
	err := helpdesk.Stream(context.Background(), "你覺得最近股市會上漲嗎？", nil, nil, func(delta string) error {
		got = append(got, delta)
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"股市", "走勢", "很難預測"}, got)

	// 分类与生成是两次独立的模型调用，先分类后生成
	assert.Len(t, client.chatCalls, 1)
	assert.Len(t, client.streamCalls, 1)
}

func TestHelpdeskService_HistoryPassedVerbatim(t *testing.T) {
	client := &fakeClient{
		chatReplies: []string{"7"},
		chunks:      []string{"好的"},
	}
	helpdesk := newHelpdesk(client, "", []models.Route{models.RouteOthers})

	// 历史中含花括号，必须原样透传而不被当作模板
	history := []models.Message{
		{Role: models.RoleUser, Content: "請記住{code}這個代號"},
		{Role: models.RoleAssistant, Content: "好的，我記住了"},
	}

	err := helpdesk.Stream(context.Background(), "代號是什麼？", history, nil, func(delta string) error {
		return nil
	})
	assert.NoError(t, err)

	messages := client.streamCalls[0]
	// [system] + history + [user(question)]
	assert.Len(t, messages, 4)
	assert.Equal(t, models.RoleSystem, messages[0].Role)
	assert.Equal(t, "請記住{code}這個代號", messages[1].Content)
	assert.Equal(t, "好的，我記住了", messages[2].Content)
	assert.Equal(t, "代號是什麼？", messages[3].Content)
}

func TestHelpdeskService_RecommendDeployment(t *testing.T) {
	menuPath := writeTempFile(t, "menu.csv", "品項,價格\n經典牛肉堡,89\n無糖綠茶,35\n")

	client := &fakeClient{
		chatReplies: []string{"5"},
		chunks:      []string{"推薦", "無糖綠茶"},
	}
	helpdesk := newHelpdesk(client, menuPath, []models.Route{models.RouteProductRecommendation})

	var got []string
	err := helpdesk.Stream(context.Background(), "我不吃牛而且怕辣，預算兩百內，有沒有推薦？", nil,
		[][]string{{"經典牛肉堡", "薯條(中)"}}, func(delta string) error {
			got = append(got, delta)
			return nil
		})

	assert.NoError(t, err)
	assert.Equal(t, []string{"推薦", "無糖綠茶"}, got)

	// 推荐提示词携带菜单与购买记录
	messages := client.streamCalls[0]
	assert.Len(t, messages, 2)
	assert.Contains(t, messages[1].Content, "經典牛肉堡,89")
	assert.Contains(t, messages[1].Content, `["經典牛肉堡","薯條(中)"]`)
}

func TestHelpdeskService_ConfiguredRouteWithoutHandler(t *testing.T) {
	// 配置了没有对应处理器的意图，按未启用处理
	client := &fakeClient{chatReplies: []string{"2"}}
	helpdesk := newHelpdesk(client, "", []models.Route{models.RouteProductQuery, models.RouteOthers})

	var got []string
	err := helpdesk.Stream(context.Background(), "小杯可樂現在多少錢？", nil, nil, func(delta string) error {
		got = append(got, delta)
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"No response: 2 - Product Query"}, got)
}

func TestHelpdeskService_ClassifyErrorPropagates(t *testing.T) {
	client := &fakeClient{chatErr: assert.AnError}
	helpdesk := newHelpdesk(client, "", []models.Route{models.RouteOthers})

	err := helpdesk.Stream(context.Background(), "你好", nil, nil, func(delta string) error {
		t.Errorf("分类失败时不应输出任何内容")
		return nil
	})
	assert.Error(t, err)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai_helpdesk_mini/internal/models"
)

func TestRecommendService_Stream(t *testing.T) {
	menuPath := writeTempFile(t, "menu.csv", "品項,價格\n香烤雞腿堡,85\n蘋果派,40\n")

	client := &fakeClient{chunks: []string{"推薦香烤雞腿堡"}}
	recommend := NewRecommendService(client, menuPath)

	var got []string
	err := recommend.Stream(context.Background(), "有什麼不辣的推薦？", [][]string{{"蘋果派"}}, func(delta string) error {
		got = append(got, delta)
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"推薦香烤雞腿堡"}, got)

	messages := client.streamCalls[0]
	assert.Len(t, messages, 2)

	// 系统提示词要求只基于菜单推荐，信息不足时固定回复
	assert.Equal(t, models.RoleSystem, messages[0].Role)
	assert.Contains(t, messages[0].Content, "ONLY on the provided menu")
	assert.Contains(t, messages[0].Content, "「不知道」")

	// 用户消息携带问题、菜单全文与购买记录
	assert.Equal(t, models.RoleUser, messages[1].Role)
	assert.Contains(t, messages[1].Content, "有什麼不辣的推薦？")
	assert.Contains(t, messages[1].Content, "香烤雞腿堡,85")
	assert.Contains(t, messages[1].Content, `[["蘋果派"]]`)
}

func TestRecommendService_EmptyOrders(t *testing.T) {
	menuPath := writeTempFile(t, "menu.csv", "品項,價格\n鱈魚堡,75\n")

	client := &fakeClient{chunks: []string{"推薦鱈魚堡"}}
	recommend := NewRecommendService(client, menuPath)

	err := recommend.Stream(context.Background(), "推薦一下", nil, func(delta string) error {
		return nil
	})
	assert.NoError(t, err)

	// 空购买记录序列化为null，提示词仍然完整
	assert.Contains(t, client.streamCalls[0][1].Content, "[Purchase history]")
}

func TestRecommendService_MenuMissing(t *testing.T) {
	client := &fakeClient{}
	recommend := NewRecommendService(client, "/不存在的路径/menu.csv")

	err := recommend.Stream(context.Background(), "推薦一下", nil, func(delta string) error {
		t.Errorf("菜单缺失时不应回调")
		return nil
	})
	assert.Error(t, err)
	assert.Empty(t, client.streamCalls)
}

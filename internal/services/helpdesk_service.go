package services

import (
	"context"
	"fmt"

	"ai_helpdesk_mini/internal/models"
)

// HandlerFunc 单个意图的下游处理函数
type HandlerFunc func(ctx context.Context, question string, history []models.Message, orders [][]string, emit func(delta string) error) error

// HelpdeskService 在线客服入口服务
// 先做一次意图分类，再按部署配置分发到对应处理器；
// 未启用的意图返回固定的拒答文本
type HelpdeskService struct {
	router   *RouterService
	handlers map[models.Route]HandlerFunc
}

// NewHelpdeskService 创建在线客服服务
// enabled为本部署启用的意图编号；当前支持的处理器：
// 5=菜品推荐、7=闲聊，其余编号即便配置了也按未启用处理
func NewHelpdeskService(router *RouterService, chitchat *ChitchatService, recommend *RecommendService, enabled []models.Route) *HelpdeskService {
	handlers := make(map[models.Route]HandlerFunc)
	for _, route := range enabled {
		switch route {
		case models.RouteProductRecommendation:
			handlers[route] = func(ctx context.Context, question string, history []models.Message, orders [][]string, emit func(string) error) error {
				return recommend.Stream(ctx, question, orders, emit)
			}
		case models.RouteOthers:
			handlers[route] = func(ctx context.Context, question string, history []models.Message, orders [][]string, emit func(string) error) error {
				return chitchat.Stream(ctx, question, history, emit)
			}
		}
	}
	return &HelpdeskService{router: router, handlers: handlers}
}

// Stream 处理一次用户请求
// 分类调用与生成调用是两次独立的模型调用，先后串行发出；
// 意图解析完成前不会向调用方输出任何内容
func (s *HelpdeskService) Stream(ctx context.Context, question string, history []models.Message, orders [][]string, emit func(delta string) error) error {
	route, err := s.router.Classify(ctx, question)
	if err != nil {
		return err
	}

	handler, ok := s.handlers[route]
	if !ok {
		return emit(fmt.Sprintf("No response: %d - %s", route, route.Label()))
	}
	return handler(ctx, question, history, orders, emit)
}

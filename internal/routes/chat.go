// Package routes 注册HTTP路由
package routes

import (
	"github.com/gin-gonic/gin"

	"ai_helpdesk_mini/internal/handlers"
)

// RegisterChatRoutes 注册对话相关路由
func RegisterChatRoutes(r *gin.Engine, chatHandler *handlers.ChatHandler, wsHandler *handlers.WSHandler) {
	r.POST("/chat", chatHandler.HandleChat)
	r.POST("/qa", chatHandler.HandleQA)
	r.GET("/ws", wsHandler.HandleWebSocket)
}

package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"ai_helpdesk_mini/internal/models"
	"ai_helpdesk_mini/internal/services"
)

// WSFrame WebSocket下行帧，与SSE事件载荷一致
type WSFrame struct {
	Action  string `json:"action"`            // response/error/end
	Message string `json:"message,omitempty"` // 文本内容
}

// WSHandler WebSocket对话处理器
type WSHandler struct {
	helpdesk *services.HelpdeskService
	upgrader websocket.Upgrader
}

// NewWSHandler 创建WebSocket对话处理器
func NewWSHandler(helpdesk *services.HelpdeskService) *WSHandler {
	return &WSHandler{
		helpdesk: helpdesk,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket 处理WebSocket连接
// 每条文本消息是一次对话请求，回复按SSE同样的帧序列逐块下发
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("升级WebSocket连接失败: %v", err)
		return
	}
	defer ws.Close()

	for {
		messageType, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		h.handleRequest(c.Request.Context(), ws, data)
	}
}

// handleRequest 处理单次对话请求
func (h *WSHandler) handleRequest(ctx context.Context, ws *websocket.Conn, data []byte) {
	var req ChatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		writeFrame(ws, WSFrame{Action: "error", Message: "解析请求失败: " + err.Error()})
		writeFrame(ws, WSFrame{Action: "end"})
		return
	}

	history := make([]models.Message, 0, len(req.History))
	for _, item := range req.History {
		msg, err := models.NewMessage(item.Role, item.Content)
		if err != nil {
			writeFrame(ws, WSFrame{Action: "error", Message: "历史消息非法: " + err.Error()})
			writeFrame(ws, WSFrame{Action: "end"})
			return
		}
		history = append(history, msg)
	}

	err := h.helpdesk.Stream(ctx, req.Query, history, req.Orders, func(delta string) error {
		return writeFrame(ws, WSFrame{Action: "response", Message: delta})
	})
	if err != nil {
		writeFrame(ws, WSFrame{Action: "error", Message: err.Error()})
	}
	writeFrame(ws, WSFrame{Action: "end"})
}

// writeFrame 序列化并发送单个下行帧
func writeFrame(ws *websocket.Conn, frame WSFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	return ws.WriteMessage(websocket.TextMessage, data)
}

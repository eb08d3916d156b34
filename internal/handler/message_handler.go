package handler

import (
	"strconv"

	"echo_chat_server/internal/dto/request"
	"echo_chat_server/internal/service"
	"echo_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// MessageHandler 消息请求处理器
type MessageHandler struct {
	messageSvc service.MessageService
}

// NewMessageHandler 创建消息处理器实例
func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// SendMessage 发送消息（房间或私聊）
// POST /message/send
// 成功返回 201 和完整消息体
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.SendMessage(c.GetString("user_id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleCreated(c, data)
}

// GetRoomMessageList 查询房间消息列表
// GET /message/room/:roomId?before_id=xxx
// before_id 传上一页最早一条消息的 message_id，向历史翻页
func (h *MessageHandler) GetRoomMessageList(c *gin.Context) {
	beforeId, ok := parseBeforeId(c)
	if !ok {
		return
	}
	data, err := h.messageSvc.GetRoomMessageList(c.GetString("user_id"), c.Param("roomId"), beforeId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetDirectMessageList 查询与某用户的私聊消息列表
// GET /message/direct/:peerId?before_id=xxx
func (h *MessageHandler) GetDirectMessageList(c *gin.Context) {
	beforeId, ok := parseBeforeId(c)
	if !ok {
		return
	}
	data, err := h.messageSvc.GetDirectMessageList(c.GetString("user_id"), c.Param("peerId"), beforeId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// EditMessage 编辑消息（仅发送者）
// POST /message/edit
func (h *MessageHandler) EditMessage(c *gin.Context) {
	var req request.EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.EditMessage(c.GetString("user_id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeleteMessage 删除消息（仅发送者，软删除）
// POST /message/delete
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	var req request.DeleteMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.messageSvc.DeleteMessage(c.GetString("user_id"), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"message": "message deleted"})
}

// GetRecentChats 查询最近会话列表
// GET /message/recentChats
func (h *MessageHandler) GetRecentChats(c *gin.Context) {
	data, err := h.messageSvc.GetRecentChats(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// parseBeforeId 解析翻页游标，缺省为 0（取最新一页）
// 解析失败时直接写出 400 响应并返回 false
func parseBeforeId(c *gin.Context) (int64, bool) {
	raw := c.Query("before_id")
	if raw == "" {
		return 0, true
	}
	beforeId, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || beforeId < 0 {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "invalid before_id"))
		return 0, false
	}
	return beforeId, true
}

package handler

import (
	"echo_chat_server/internal/dto/request"
	"echo_chat_server/internal/service"

	"github.com/gin-gonic/gin"
)

// RoomHandler 房间请求处理器
type RoomHandler struct {
	roomSvc service.RoomService
}

// NewRoomHandler 创建房间处理器实例
func NewRoomHandler(roomSvc service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// CreateRoom 创建房间
// POST /room/create
// 创建者自动成为管理员成员，成功返回 201
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req request.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.roomSvc.CreateRoom(c.GetString("user_id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleCreated(c, data)
}

// GetRoomInfo 查询房间详情
// GET /room/info/:roomId
func (h *RoomHandler) GetRoomInfo(c *gin.Context) {
	data, err := h.roomSvc.GetRoomInfo(c.GetString("user_id"), c.Param("roomId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetRoomByInviteCode 通过邀请码查询房间（加入前预览）
// GET /room/byInviteCode/:code
func (h *RoomHandler) GetRoomByInviteCode(c *gin.Context) {
	data, err := h.roomSvc.GetRoomByInviteCode(c.GetString("user_id"), c.Param("code"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// JoinRoom 通过邀请码加入房间
// POST /room/join
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	var req request.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.roomSvc.JoinRoomByInviteCode(c.GetString("user_id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// LeaveRoom 退出房间
// POST /room/leave/:roomId
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	if err := h.roomSvc.LeaveRoom(c.GetString("user_id"), c.Param("roomId")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"message": "left room"})
}

// RegenerateInviteCode 重新生成邀请码（仅管理员）
// POST /room/regenerateInviteCode/:roomId
func (h *RoomHandler) RegenerateInviteCode(c *gin.Context) {
	data, err := h.roomSvc.RegenerateInviteCode(c.GetString("user_id"), c.Param("roomId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMyRoomList 查询我加入的房间列表
// GET /room/myList
func (h *RoomHandler) GetMyRoomList(c *gin.Context) {
	data, err := h.roomSvc.GetMyRoomList(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetRoomMemberList 查询房间成员列表（仅成员）
// GET /room/memberList/:roomId
func (h *RoomHandler) GetRoomMemberList(c *gin.Context) {
	data, err := h.roomSvc.GetRoomMemberList(c.GetString("user_id"), c.Param("roomId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

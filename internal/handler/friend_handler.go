package handler

import (
	"echo_chat_server/internal/dto/request"
	"echo_chat_server/internal/service"

	"github.com/gin-gonic/gin"
)

// FriendHandler 好友请求处理器
type FriendHandler struct {
	friendSvc service.FriendService
}

// NewFriendHandler 创建好友处理器实例
func NewFriendHandler(friendSvc service.FriendService) *FriendHandler {
	return &FriendHandler{friendSvc: friendSvc}
}

// ApplyFriend 发起好友申请
// POST /friend/apply
func (h *FriendHandler) ApplyFriend(c *gin.Context) {
	var req request.ApplyFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.friendSvc.ApplyFriend(c.GetString("user_id"), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleCreated(c, gin.H{"message": "friend request sent"})
}

// AcceptFriendApply 通过好友申请（仅被申请人）
// POST /friend/accept
func (h *FriendHandler) AcceptFriendApply(c *gin.Context) {
	var req request.HandleFriendApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.friendSvc.AcceptFriendApply(c.GetString("user_id"), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"message": "friend request accepted"})
}

// RejectFriendApply 拒绝好友申请（仅被申请人）
// POST /friend/reject
func (h *FriendHandler) RejectFriendApply(c *gin.Context) {
	var req request.HandleFriendApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.friendSvc.RejectFriendApply(c.GetString("user_id"), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"message": "friend request rejected"})
}

// GetFriendList 查询好友列表
// GET /friend/list
func (h *FriendHandler) GetFriendList(c *gin.Context) {
	data, err := h.friendSvc.GetFriendList(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetFriendApplyList 查询发给我的待处理好友申请
// GET /friend/applyList
func (h *FriendHandler) GetFriendApplyList(c *gin.Context) {
	data, err := h.friendSvc.GetFriendApplyList(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

package request

// ApplyFriendRequest 好友申请请求
type ApplyFriendRequest struct {
	TargetId string `json:"target_id" binding:"required"`
	Message  string `json:"message" binding:"omitempty,max=100"`
}

// HandleFriendApplyRequest 处理好友申请请求（通过/拒绝）
type HandleFriendApplyRequest struct {
	ApplyId string `json:"apply_id" binding:"required"`
}

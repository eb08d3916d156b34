package request

// UpdateUserInfoRequest 修改用户资料请求
// 所有字段均可选，只更新提供的字段
type UpdateUserInfoRequest struct {
	Nickname  *string `json:"nickname" binding:"omitempty,max=20"`
	Avatar    *string `json:"avatar" binding:"omitempty,max=255"`
	Signature *string `json:"signature" binding:"omitempty,max=100"`
}

// UpdatePresenceRequest 在线状态心跳请求
// presence: 0=在线, 1=离开, 2=离线
type UpdatePresenceRequest struct {
	Presence int8 `json:"presence" binding:"gte=0,lte=2"`
}

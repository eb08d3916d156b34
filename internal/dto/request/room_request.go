package request

// CreateRoomRequest 创建房间请求
type CreateRoomRequest struct {
	Name      string `json:"name" binding:"required,max=30"`
	Notice    string `json:"notice" binding:"omitempty,max=500"`
	IsPrivate int8   `json:"is_private" binding:"gte=0,lte=1"`
}

// JoinRoomRequest 通过邀请码加入房间请求
type JoinRoomRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

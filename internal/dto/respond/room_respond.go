package respond

// RoomInfoRespond 房间详情响应
// 邀请码只对成员可见，非成员视角下为空
type RoomInfoRespond struct {
	RoomId     string `json:"room_id"`
	Name       string `json:"name"`
	Notice     string `json:"notice"`
	IsPrivate  int8   `json:"is_private"`
	InviteCode string `json:"invite_code,omitempty"`
	OwnerId    string `json:"owner_id"`
	CreatedAt  string `json:"created_at"`
}

// LastMessagePreview 房间列表里的最新一条消息摘要
type LastMessagePreview struct {
	SendId   string `json:"send_id"`
	SendName string `json:"send_name"`
	Content  string `json:"content"`
	SentAt   string `json:"sent_at"`
}

// MyRoomListRespond 我的房间列表响应
// UnreadCount 字段为响应契约的一部分，当前实现恒为 0
type MyRoomListRespond struct {
	RoomId      string              `json:"room_id"`
	Name        string              `json:"name"`
	Notice      string              `json:"notice"`
	LastMessage *LastMessagePreview `json:"last_message,omitempty"`
	UnreadCount int                 `json:"unread_count"`
}

// RoomMemberRespond 房间成员响应
type RoomMemberRespond struct {
	UserId   string `json:"user_id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Presence int8   `json:"presence"`
	Role     int8   `json:"role"`
	JoinedAt string `json:"joined_at"`
}

// InviteCodeRespond 邀请码再生成响应
type InviteCodeRespond struct {
	RoomId     string `json:"room_id"`
	InviteCode string `json:"invite_code"`
}

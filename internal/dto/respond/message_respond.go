package respond

// MessageRespond 消息响应
// MessageId 是雪花 ID 的字符串形式，避免 JavaScript 端精度丢失
// 软删除的消息只保留 is_deleted 标记和时间位置，内容与附件字段为空
type MessageRespond struct {
	MessageId  string `json:"message_id"`
	RoomId     string `json:"room_id,omitempty"`
	ReceiveId  string `json:"receive_id,omitempty"`
	SendId     string `json:"send_id"`
	SendName   string `json:"send_name"`
	SendAvatar string `json:"send_avatar"`
	Type       int8   `json:"type"`
	Content    string `json:"content"`
	FileName   string `json:"file_name,omitempty"`
	FileUrl    string `json:"file_url,omitempty"`
	FileSize   int64  `json:"file_size,omitempty"`
	FileType   string `json:"file_type,omitempty"`
	IsEdited   int8   `json:"is_edited"`
	EditedAt   string `json:"edited_at,omitempty"`
	IsDeleted  int8   `json:"is_deleted"`
	CreatedAt  string `json:"created_at"`
}

// RecentChatRespond 最近会话响应
// 每个会话（房间或私聊对象）取最新一条消息，按时间倒序排列
type RecentChatRespond struct {
	ConversationType string `json:"conversation_type"` // "room" 或 "direct"
	TargetId         string `json:"target_id"`         // 房间 uuid 或对方用户 uuid
	TargetName       string `json:"target_name"`
	LastSendId       string `json:"last_send_id"`
	LastContent      string `json:"last_content"`
	LastAt           string `json:"last_at"`
}

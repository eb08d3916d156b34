package request

// SendMessageRequest 发送消息请求
// RoomId 与 ReceiveId 必须恰好填一个：房间消息填 RoomId，私聊填 ReceiveId
// 附件字段可选；未带附件时类型默认为文本
type SendMessageRequest struct {
	RoomId    string `json:"room_id"`
	ReceiveId string `json:"receive_id"`
	Content   string `json:"content" binding:"required_without=FileUrl"`
	Type      int8   `json:"type" binding:"gte=0,lte=2"`
	FileName  string `json:"file_name" binding:"omitempty,max=100"`
	FileUrl   string `json:"file_url" binding:"omitempty,max=255"`
	FileSize  int64  `json:"file_size" binding:"omitempty,gte=0"`
	FileType  string `json:"file_type" binding:"omitempty,max=50"`
}

// EditMessageRequest 编辑消息请求
// 雪花 ID 以字符串传输，避免 JavaScript 端精度丢失
type EditMessageRequest struct {
	MessageId string `json:"message_id" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

// DeleteMessageRequest 删除消息请求
type DeleteMessageRequest struct {
	MessageId string `json:"message_id" binding:"required"`
}

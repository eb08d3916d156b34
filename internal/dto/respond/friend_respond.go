package respond

// FriendRespond 好友列表项响应
type FriendRespond struct {
	UserId    string `json:"user_id"`
	Nickname  string `json:"nickname"`
	Avatar    string `json:"avatar"`
	Signature string `json:"signature"`
	Presence  int8   `json:"presence"`
}

// FriendApplyRespond 待处理好友申请响应（含申请人资料）
type FriendApplyRespond struct {
	ApplyId     string `json:"apply_id"`
	ApplicantId string `json:"applicant_id"`
	Nickname    string `json:"nickname"`
	Avatar      string `json:"avatar"`
	Message     string `json:"message"`
	CreatedAt   string `json:"created_at"`
}

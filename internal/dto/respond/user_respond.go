package respond

// UserInfoRespond 用户资料响应
type UserInfoRespond struct {
	Uuid       string `json:"uuid"`
	Email      string `json:"email"`
	Nickname   string `json:"nickname"`
	Avatar     string `json:"avatar"`
	Signature  string `json:"signature"`
	Presence   int8   `json:"presence"`
	LastSeenAt string `json:"last_seen_at,omitempty"`
	CreatedAt  string `json:"created_at"`
}

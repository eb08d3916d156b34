package respond

// LoginRespond 用户登录/注册响应
type LoginRespond struct {
	Uuid         string `json:"uuid"`
	Email        string `json:"email"`
	Nickname     string `json:"nickname"`
	Avatar       string `json:"avatar"`
	Signature    string `json:"signature"`
	Presence     int8   `json:"presence"`
	CreatedAt    string `json:"created_at"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

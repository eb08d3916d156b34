package redis

import (
	"context"
	"time"

	"echo_chat_server/pkg/constants"
)

// ==================== Refresh Token 操作 ====================

// 每个用户同一时刻只保留一个有效的 Refresh Token ID：
// 新登录覆盖旧 ID，旧会话的刷新请求因 ID 不匹配而失效（单点互踢）

const userTokenKeyPrefix = "user_token:"

// SetUserTokenID 记录用户当前有效的 Refresh Token ID
// 过期时间与 Refresh Token 本身一致
func SetUserTokenID(ctx context.Context, userUuid string, tokenID string) error {
	return SetKeyEx(ctx, userTokenKeyPrefix+userUuid, tokenID,
		time.Duration(constants.REFRESH_TOKEN_EXPIRY_HOURS)*time.Hour)
}

// GetUserTokenID 读取用户当前有效的 Refresh Token ID
// key 不存在时返回 CodeNotFound（视为会话已注销）
func GetUserTokenID(ctx context.Context, userUuid string) (string, error) {
	return GetKeyNilIsErr(ctx, userTokenKeyPrefix+userUuid)
}

// DelUserTokenID 删除用户的 Refresh Token ID（登出时调用）
func DelUserTokenID(ctx context.Context, userUuid string) error {
	return DelKey(ctx, userTokenKeyPrefix+userUuid)
}

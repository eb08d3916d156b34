package random

import (
	"crypto/rand"
	"math/big"
	"time"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// 邀请码去掉易混淆字符（0/O、1/l/I）
const inviteCharset = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

// randomString 从指定字符集生成安全随机字符串
func randomString(set string, length int) string {
	result := make([]byte, length)
	setLen := big.NewInt(int64(len(set)))
	for i := range result {
		n, err := rand.Int(rand.Reader, setLen)
		if err != nil {
			result[i] = 'x'
			continue
		}
		result[i] = set[n.Int64()]
	}
	return string(result)
}

// GetNowAndLenRandomString 生成带时间戳前缀的随机字符串（用于实体 UUID）
// 格式: YYMMDD + 字母数字混合
// 示例: 241230AbCdE1234567
func GetNowAndLenRandomString(length int) string {
	return time.Now().Format("060102") + randomString(charset, length)
}

// GetInviteCode 生成房间邀请码
// 邀请码是可再生的共享秘密，重新生成后旧码立即失效
func GetInviteCode(length int) string {
	return randomString(inviteCharset, length)
}

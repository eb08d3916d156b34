package random

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetNowAndLenRandomString(t *testing.T) {
	s := GetNowAndLenRandomString(13)
	// 6 位日期前缀 + 13 位随机
	assert.Len(t, s, 19)
	assert.True(t, strings.HasPrefix(s, time.Now().Format("060102")))
}

func TestGetInviteCodeCharset(t *testing.T) {
	code := GetInviteCode(12)
	assert.Len(t, code, 12)
	// 邀请码不含易混淆字符
	for _, forbidden := range "0O1lI" {
		assert.NotContains(t, code, string(forbidden))
	}
}

func TestInviteCodesDiffer(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GetInviteCode(12)
		assert.False(t, seen[code], "duplicate invite code %s", code)
		seen[code] = true
	}
}

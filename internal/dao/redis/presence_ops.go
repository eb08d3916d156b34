package redis

import (
	"context"
	"strconv"
	"time"

	"echo_chat_server/pkg/constants"
)

// ==================== 在线状态操作 ====================

// 在线状态以带 TTL 的 key 镜像存储：心跳停止后 key 过期，
// 读取方据此把用户视为离线，数据库里的 presence 字段只做持久化兜底

const presenceKeyPrefix = "presence:user:"

// SetPresence 写入在线状态并重置 TTL（由心跳接口调用）
func SetPresence(ctx context.Context, userUuid string, presence int8) error {
	return SetKeyEx(ctx, presenceKeyPrefix+userUuid,
		strconv.Itoa(int(presence)),
		time.Duration(constants.PRESENCE_TTL_SECONDS)*time.Second)
}

// GetPresence 读取在线状态
// key 不存在（心跳超时或从未上线）时 ok 为 false，调用方视为离线
func GetPresence(ctx context.Context, userUuid string) (presence int8, ok bool, err error) {
	value, err := GetKey(ctx, presenceKeyPrefix+userUuid)
	if err != nil || value == "" {
		return 0, false, err
	}
	n, convErr := strconv.Atoi(value)
	if convErr != nil {
		return 0, false, nil
	}
	return int8(n), true, nil
}

// ClearPresence 删除在线状态 key（登出时调用）
func ClearPresence(ctx context.Context, userUuid string) error {
	return DelKey(ctx, presenceKeyPrefix+userUuid)
}

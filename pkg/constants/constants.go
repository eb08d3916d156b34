package constants

const (
	MESSAGE_PAGE_SIZE          = 50  // 消息列表默认返回条数
	RECENT_CHAT_SCAN_LIMIT     = 200 // 聚合最近会话时扫描的消息条数上限
	INVITE_CODE_LENGTH         = 12  // 房间邀请码长度，与 room 表 invite_code 列宽一致
	UUID_RANDOM_LENGTH         = 13  // 实体 uuid 随机段长度：前缀1位 + 日期6位 + 随机13位 = 20
	REDIS_TIMEOUT              = 1   // redis 缓存过期时间 (分钟)
	PRESENCE_TTL_SECONDS       = 300 // 在线状态 redis key 过期时间 (秒)
	REFRESH_TOKEN_EXPIRY_HOURS = 168 // Refresh Token 有效期（小时），168小时 = 7天
)

// Package redis 提供 Redis 缓存操作的封装
// 在线状态、Refresh Token ID、消息列表缓存都存放在这里
// 使用 github.com/redis/go-redis/v9 作为底层客户端
package redis

import (
	"context"
	"strconv"

	"echo_chat_server/internal/config"

	"github.com/redis/go-redis/v9"
)

// redisClient 全局 Redis 客户端实例
var redisClient *redis.Client

// Init 初始化 Redis 连接
// 从配置文件读取连接参数并创建客户端实例
func Init() {
	conf := config.GetConfig()
	addr := conf.RedisConfig.Host + ":" + strconv.Itoa(conf.RedisConfig.Port)

	redisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: conf.RedisConfig.Password,
		DB:       conf.RedisConfig.Db,

		// 连接池配置
		PoolSize:     50, // 最大连接数
		MinIdleConns: 15, // 最小空闲连接，与 Worker 数量匹配
	})

	// 初始化缓存更新 Worker Pool
	// 启动 15 个 Worker，缓冲区大小 3000，适用于多 Service 共享
	InitCacheWorker(15, 3000)
}

// InitWithClient 注入已创建的客户端
// 测试使用 miniredis 时通过此入口替换全局客户端
func InitWithClient(client *redis.Client) {
	redisClient = client
	InitCacheWorker(1, 100)
}

// Ping 校验连通性，启动时调用
func Ping(ctx context.Context) error {
	return redisClient.Ping(ctx).Err()
}

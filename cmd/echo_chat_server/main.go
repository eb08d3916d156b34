package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"echo_chat_server/internal/config"
	dao "echo_chat_server/internal/dao/mysql"
	myredis "echo_chat_server/internal/dao/redis"
	"echo_chat_server/internal/handler"
	"echo_chat_server/internal/http_server"
	"echo_chat_server/internal/infrastructure/logger"
	"echo_chat_server/internal/infrastructure/mq"
	"echo_chat_server/internal/service"
	"echo_chat_server/pkg/util/jwt"
	"echo_chat_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("logger initialized")

	// 3. 初始化数据库（含 AutoMigrate 和 Repository 层）
	dao.Init()
	zap.L().Info("mysql initialized")

	// 4. 初始化 Redis
	myredis.Init()
	if err := myredis.Ping(context.Background()); err != nil {
		zap.L().Fatal("redis ping failed", zap.Error(err))
	}
	zap.L().Info("redis initialized")

	// 5. 初始化 JWT 与雪花节点
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init()

	// 6. Kafka 消息事件生产者（messageMode 为 "none" 时为空操作）
	mq.KafkaService.KafkaInit()

	// 7. 依赖注入：Repository → Service → Handler
	service.InitServices(dao.Repos)
	handlers := handler.NewHandlers(service.Svc)

	// 8. validator 错误翻译
	if err := handler.InitTrans("en"); err != nil {
		zap.L().Fatal("init validator translator failed", zap.Error(err))
	}

	// 9. 组装并启动 HTTP 服务
	engine := http_server.Init(handlers)
	addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}
	go func() {
		zap.L().Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("http server failed", zap.Error(err))
		}
	}()

	// 10. 等待退出信号，优雅关停
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("server shutdown failed", zap.Error(err))
	}
	mq.KafkaService.KafkaClose()
	zap.L().Info("server stopped")
}

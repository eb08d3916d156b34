// Package http_server 负责组装 Gin 引擎：
// 中间件、跨域规则、静态资源和业务路由
package http_server

import (
	"fmt"

	"echo_chat_server/internal/config"
	"echo_chat_server/internal/handler"
	"echo_chat_server/internal/infrastructure/logger"
	"echo_chat_server/internal/infrastructure/middleware"
	"echo_chat_server/internal/router"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Init 创建并配置 Gin 引擎
// 使用 gin.New 而非 gin.Default，日志和恢复都换成 zap 版本
func Init(handlers *handler.Handlers) *gin.Engine {
	conf := config.GetConfig()
	if conf.MainConfig.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))

	// CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	// TLS 重定向，Nginx 终结 SSL 的部署下保持关闭
	if conf.MainConfig.EnableTLS {
		sslHost := conf.MainConfig.TLSRedirect
		if sslHost == "" {
			sslHost = fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		}
		engine.Use(middleware.TlsHandler(sslHost))
	}

	// 头像与附件静态目录，上传文件通过 /static 路径回读
	engine.Static("/static/avatars", conf.StaticSrcConfig.StaticAvatarPath)
	engine.Static("/static/files", conf.StaticSrcConfig.StaticFilePath)

	rt := router.NewRouter(handlers)
	rt.RegisterRoutes(engine)

	return engine
}

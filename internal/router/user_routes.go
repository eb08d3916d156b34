package router

import (
	"echo_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// registerUserRoutes 注册用户相关路由（需认证）
func (rt *Router) registerUserRoutes(r *gin.Engine) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.JWTAuth())
	{
		userGroup.POST("/logout", rt.handlers.User.Logout)
		userGroup.GET("/info", rt.handlers.User.GetMyInfo)
		userGroup.GET("/info/:uuid", rt.handlers.User.GetUserInfo)
		userGroup.PUT("/info", rt.handlers.User.UpdateUserInfo)
		userGroup.POST("/presence", rt.handlers.User.UpdatePresence)
	}
}

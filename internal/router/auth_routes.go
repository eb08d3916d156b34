package router

import (
	"github.com/gin-gonic/gin"
)

// registerAuthRoutes 注册认证相关路由（全部公开）
func (rt *Router) registerAuthRoutes(r *gin.Engine) {
	r.POST("/user/register", rt.handlers.User.Register)
	r.POST("/user/login", rt.handlers.User.Login)
	r.POST("/auth/refresh", rt.handlers.Auth.Refresh)
}

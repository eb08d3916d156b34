// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"echo_chat_server/internal/handler"

	"github.com/gin-gonic/gin"
)

// Router 路由管理器，持有 Handler 聚合
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有业务路由
// 在 http_server.Init 中调用
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.registerAuthRoutes(r)    // 认证路由（注册、登录、Token 刷新）
	rt.registerUserRoutes(r)    // 用户路由
	rt.registerRoomRoutes(r)    // 房间路由
	rt.registerMessageRoutes(r) // 消息路由
	rt.registerFriendRoutes(r)  // 好友路由
}

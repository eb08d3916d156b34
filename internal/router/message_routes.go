package router

import (
	"echo_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// registerMessageRoutes 注册消息相关路由（需认证）
func (rt *Router) registerMessageRoutes(r *gin.Engine) {
	messageGroup := r.Group("/message")
	messageGroup.Use(middleware.JWTAuth())
	{
		messageGroup.POST("/send", rt.handlers.Message.SendMessage)
		messageGroup.GET("/room/:roomId", rt.handlers.Message.GetRoomMessageList)
		messageGroup.GET("/direct/:peerId", rt.handlers.Message.GetDirectMessageList)
		messageGroup.POST("/edit", rt.handlers.Message.EditMessage)
		messageGroup.POST("/delete", rt.handlers.Message.DeleteMessage)
		messageGroup.GET("/recentChats", rt.handlers.Message.GetRecentChats)
	}
}

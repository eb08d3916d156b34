package router

import (
	"echo_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// registerFriendRoutes 注册好友相关路由（需认证）
func (rt *Router) registerFriendRoutes(r *gin.Engine) {
	friendGroup := r.Group("/friend")
	friendGroup.Use(middleware.JWTAuth())
	{
		friendGroup.POST("/apply", rt.handlers.Friend.ApplyFriend)
		friendGroup.POST("/accept", rt.handlers.Friend.AcceptFriendApply)
		friendGroup.POST("/reject", rt.handlers.Friend.RejectFriendApply)
		friendGroup.GET("/list", rt.handlers.Friend.GetFriendList)
		friendGroup.GET("/applyList", rt.handlers.Friend.GetFriendApplyList)
	}
}

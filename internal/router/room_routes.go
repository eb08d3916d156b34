package router

import (
	"echo_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// registerRoomRoutes 注册房间相关路由（需认证）
func (rt *Router) registerRoomRoutes(r *gin.Engine) {
	roomGroup := r.Group("/room")
	roomGroup.Use(middleware.JWTAuth())
	{
		roomGroup.POST("/create", rt.handlers.Room.CreateRoom)
		roomGroup.GET("/info/:roomId", rt.handlers.Room.GetRoomInfo)
		roomGroup.GET("/byInviteCode/:code", rt.handlers.Room.GetRoomByInviteCode)
		roomGroup.POST("/join", rt.handlers.Room.JoinRoom)
		roomGroup.POST("/leave/:roomId", rt.handlers.Room.LeaveRoom)
		roomGroup.POST("/regenerateInviteCode/:roomId", rt.handlers.Room.RegenerateInviteCode)
		roomGroup.GET("/myList", rt.handlers.Room.GetMyRoomList)
		roomGroup.GET("/memberList/:roomId", rt.handlers.Room.GetRoomMemberList)
	}
}

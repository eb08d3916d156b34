// Package service 定义业务层接口与服务聚合
package service

import (
	"echo_chat_server/internal/dao/mysql/repository"
	"echo_chat_server/internal/service/friend"
	"echo_chat_server/internal/service/message"
	"echo_chat_server/internal/service/room"
	"echo_chat_server/internal/service/user"
)

// Services 聚合所有业务服务
// Handler 层通过此结构访问业务逻辑
type Services struct {
	User    UserService
	Room    RoomService
	Message MessageService
	Friend  FriendService
}

// NewServices 基于 Repository 聚合创建所有服务实例
func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		User:    user.NewService(repos),
		Room:    room.NewService(repos),
		Message: message.NewService(repos),
		Friend:  friend.NewService(repos),
	}
}

// Svc 全局服务聚合实例
var Svc *Services

// InitServices 初始化全局服务实例
// 必须在 dao.Init 之后调用，传入 dao.Repos
func InitServices(repos *repository.Repositories) {
	Svc = NewServices(repos)
}

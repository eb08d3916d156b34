package service

import (
	"echo_chat_server/internal/dto/request"
	"echo_chat_server/internal/dto/respond"
)

// UserService 用户账号、会话与在线状态
type UserService interface {
	Register(req request.RegisterRequest) (*respond.LoginRespond, error)
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	RefreshToken(req request.RefreshTokenRequest) (*respond.LoginRespond, error)
	Logout(userId string) error
	GetUserInfo(userId string) (*respond.UserInfoRespond, error)
	UpdateUserInfo(userId string, req request.UpdateUserInfoRequest) (*respond.UserInfoRespond, error)
	UpdatePresence(userId string, req request.UpdatePresenceRequest) error
}

// RoomService 聊天室的创建、加入与成员管理
type RoomService interface {
	CreateRoom(userId string, req request.CreateRoomRequest) (*respond.RoomInfoRespond, error)
	GetRoomInfo(userId, roomId string) (*respond.RoomInfoRespond, error)
	GetRoomByInviteCode(userId, code string) (*respond.RoomInfoRespond, error)
	JoinRoomByInviteCode(userId string, req request.JoinRoomRequest) (*respond.RoomInfoRespond, error)
	LeaveRoom(userId, roomId string) error
	RegenerateInviteCode(userId, roomId string) (*respond.InviteCodeRespond, error)
	GetMyRoomList(userId string) ([]respond.MyRoomListRespond, error)
	GetRoomMemberList(userId, roomId string) ([]respond.RoomMemberRespond, error)
}

// MessageService 房间消息与私聊消息
type MessageService interface {
	SendMessage(userId string, req request.SendMessageRequest) (*respond.MessageRespond, error)
	GetRoomMessageList(userId, roomId string, beforeId int64) ([]respond.MessageRespond, error)
	GetDirectMessageList(userId, peerId string, beforeId int64) ([]respond.MessageRespond, error)
	EditMessage(userId string, req request.EditMessageRequest) (*respond.MessageRespond, error)
	DeleteMessage(userId string, req request.DeleteMessageRequest) error
	GetRecentChats(userId string) ([]respond.RecentChatRespond, error)
}

// FriendService 好友申请与好友关系
type FriendService interface {
	ApplyFriend(userId string, req request.ApplyFriendRequest) error
	AcceptFriendApply(userId string, req request.HandleFriendApplyRequest) error
	RejectFriendApply(userId string, req request.HandleFriendApplyRequest) error
	GetFriendList(userId string) ([]respond.FriendRespond, error)
	GetFriendApplyList(userId string) ([]respond.FriendApplyRespond, error)
}

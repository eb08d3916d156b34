package model

import "gorm.io/gorm"

// 房间成员角色
const (
	RoleMember int8 = 1 // 普通成员
	RoleAdmin  int8 = 2 // 管理员
)

// RoomMember 房间成员关联表
// (room_uuid, user_uuid) 复合唯一索引是并发加入的存储层兜底：
// 两个请求同时通过"尚未加入"检查时，后插入的一方触发唯一键冲突，
// 调用方将该冲突视为"已是成员"而非失败
type RoomMember struct {
	gorm.Model
	RoomUuid string `gorm:"type:char(20);uniqueIndex:idx_room_user;not null;comment:房间ID"`
	UserUuid string `gorm:"type:char(20);uniqueIndex:idx_room_user;index;not null;comment:用户ID"`
	Role     int8   `gorm:"default:1;comment:1普通成员 2管理员"`
	// CreatedAt 即加入时间
}

func (RoomMember) TableName() string {
	return "room_member"
}

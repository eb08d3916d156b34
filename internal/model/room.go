package model

import (
	"gorm.io/gorm"
)

// Room 聊天房间模型
// 创建者在建房事务中同时获得管理员成员身份
type Room struct {
	gorm.Model
	Uuid       string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:房间唯一id"`
	Name       string `gorm:"column:name;type:varchar(30);not null;comment:房间名称"`
	Notice     string `gorm:"column:notice;type:varchar(500);comment:房间描述"`
	IsPrivate  int8   `gorm:"column:is_private;default:0;comment:是否私有，0.公开，1.私有"`
	InviteCode string `gorm:"column:invite_code;uniqueIndex;type:char(12);comment:邀请码，重新生成后旧码失效"`
	OwnerId    string `gorm:"column:owner_id;type:char(20);not null;comment:创建者uuid"`
}

func (Room) TableName() string {
	return "room"
}

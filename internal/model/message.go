// Package model 定义数据库实体模型
// 本文件定义消息模型，用于存储房间消息与私聊消息
package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// 消息类型
const (
	MessageTypeText  int8 = 0 // 文本消息
	MessageTypeImage int8 = 1 // 图片消息
	MessageTypeFile  int8 = 2 // 文件消息
)

// Message 消息模型
// 对应数据库 message 表
// RoomId 与 ReceiveId 互斥：房间消息只填 RoomId，私聊消息只填 ReceiveId，
// 二者不会同时为空，也不会同时非空
type Message struct {
	gorm.Model

	// Uuid 消息唯一标识
	// 使用雪花算法生成的 int64 类型 ID，按生成时间单调递增
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// RoomId 房间 UUID（房间消息）
	RoomId string `gorm:"column:room_id;index;type:char(20);comment:房间uuid"`

	// ReceiveId 接收者 UUID（私聊消息）
	ReceiveId string `gorm:"column:receive_id;index;type:char(20);comment:接收者uuid"`

	// SendId 发送者 UUID
	SendId string `gorm:"column:send_id;index;type:char(20);not null;comment:发送者uuid"`

	// SendName 发送者昵称
	// 冗余存储，避免每次查询消息时都要关联用户表
	SendName string `gorm:"column:send_name;type:varchar(20);not null;comment:发送者昵称"`

	// SendAvatar 发送者头像
	// 冗余存储，存储相对路径如 "/static/avatars/xxx.jpg"
	SendAvatar string `gorm:"column:send_avatar;type:varchar(255);comment:发送者头像"`

	// Type 消息类型
	// 0=文本, 1=图片, 2=文件
	Type int8 `gorm:"column:type;not null;comment:消息类型，0.文本，1.图片，2.文件"`

	// Content 消息文本内容
	Content string `gorm:"column:content;type:TEXT;comment:消息内容"`

	// FileUrl 附件位置引用
	// 多媒体文件不直接入库，上传后只保存访问链接
	FileUrl string `gorm:"column:file_url;type:varchar(255);comment:附件url"`

	// FileName 附件文件名
	FileName string `gorm:"column:file_name;type:varchar(100);comment:附件文件名"`

	// FileSize 附件大小（字节）
	FileSize int64 `gorm:"column:file_size;comment:附件大小"`

	// FileType 附件 MIME 类型
	// 如 "image/jpeg", "application/pdf"
	FileType string `gorm:"column:file_type;type:varchar(50);comment:附件MIME类型"`

	// IsEdited 是否被编辑过
	IsEdited int8 `gorm:"column:is_edited;default:0;comment:是否编辑过，0.否，1.是"`

	// EditedAt 最近编辑时间
	EditedAt sql.NullTime `gorm:"column:edited_at;type:datetime;comment:编辑时间"`

	// IsDeleted 软删除标记
	// 删除的消息保留行以维持排序，但不再暴露内容和附件
	// 注意与 gorm.DeletedAt 区分：这里的软删除消息仍出现在列表里（只展示删除占位）
	IsDeleted int8 `gorm:"column:is_deleted;default:0;comment:是否删除，0.否，1.是"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "message"
}

// IsRoomMessage 是否为房间消息
func (m *Message) IsRoomMessage() bool {
	return m.RoomId != ""
}

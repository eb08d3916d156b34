// Package model 定义数据库实体模型
// 本文件定义用户信息模型，包含用户基本资料和认证信息
package model

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt" // 密码哈希库
	"gorm.io/gorm"
)

// 在线状态取值
const (
	PresenceOnline  int8 = 0 // 在线
	PresenceAway    int8 = 1 // 离开
	PresenceOffline int8 = 2 // 离线
)

// User 用户信息模型
// 对应数据库 user 表
type User struct {
	gorm.Model // 内嵌 GORM 模型，包含 ID、CreatedAt、UpdatedAt、DeletedAt

	// Uuid 用户唯一标识
	// 格式：U + 日期 + 随机字符串，如 "U241230AbCdE1234567"
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:用户唯一id"`

	// Email 登录邮箱，全局唯一
	Email string `gorm:"column:email;uniqueIndex;type:varchar(60);not null;comment:邮箱"`

	// Nickname 展示昵称
	Nickname string `gorm:"column:nickname;type:varchar(20);not null;comment:昵称"`

	// Password 密码（已哈希）
	// 存储 bcrypt 哈希后的密码，不存储明文
	Password string `gorm:"column:password;type:varchar(100);not null;comment:密码"`

	// Avatar 用户头像 URL（可选）
	Avatar string `gorm:"column:avatar;type:varchar(255);comment:头像"`

	// Signature 状态签名（状态消息）
	Signature string `gorm:"column:signature;type:varchar(100);comment:状态签名"`

	// Presence 在线状态
	// 0=在线, 1=离开, 2=离线
	Presence int8 `gorm:"column:presence;default:2;not null;comment:在线状态，0.在线，1.离开，2.离线"`

	// LastSeenAt 最近活跃时间，由心跳接口刷新
	LastSeenAt sql.NullTime `gorm:"column:last_seen_at;type:datetime;comment:最近活跃时间"`

	// RawPassword 明文密码（不存入数据库）
	// 用于接收前端传来的明文密码，在 BeforeSave 中加密
	RawPassword string `gorm:"-" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "user"
}

// BeforeSave GORM Hook：在创建和更新前自动调用
// 将 RawPassword 明文密码加密后存入 Password 字段
// 调用方只需设置 RawPassword，无需手动加密
func (u *User) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		// 使用 bcrypt 算法加密，DefaultCost=10
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash) // 存储加密后的密码
		u.RawPassword = ""        // 清空明文，防止泄露
	}
	return nil
}

// CheckPassword 校验密码是否正确
// 只返回是否匹配，不区分"用户不存在"和"密码错误"
func (u *User) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}

// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"time"

	"echo_chat_server/internal/model"

	"gorm.io/gorm"
)

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
// 提供用户的增删改查操作
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.User, error)
	// FindByEmail 根据邮箱查找用户
	FindByEmail(email string) (*model.User, error)
	// FindByUuids 批量根据 UUID 查找用户
	FindByUuids(uuids []string) ([]model.User, error)
	// Create 创建新用户（邮箱唯一键冲突返回 CodeConflict）
	Create(user *model.User) error
	// Update 更新用户信息
	Update(user *model.User) error
	// UpdatePresence 更新在线状态并刷新最近活跃时间
	UpdatePresence(uuid string, presence int8, lastSeen time.Time) error
}

// RoomRepository 房间数据访问接口
type RoomRepository interface {
	// FindByUuid 根据 UUID 查找房间
	FindByUuid(uuid string) (*model.Room, error)
	// FindByInviteCode 根据邀请码查找房间
	FindByInviteCode(code string) (*model.Room, error)
	// FindByUuids 批量根据 UUID 查找房间
	FindByUuids(uuids []string) ([]model.Room, error)
	// Create 创建新房间
	Create(room *model.Room) error
	// UpdateInviteCode 覆盖邀请码，旧码立即失效
	UpdateInviteCode(uuid string, code string) error
}

// ==================== 复合结构 ====================

// RoomMemberWithUser 房间成员详细信息（含用户资料）
// 用于成员列表展示
type RoomMemberWithUser struct {
	UserId   string    `json:"userId"`   // 用户 UUID
	Nickname string    `json:"nickname"` // 用户昵称
	Avatar   string    `json:"avatar"`   // 用户头像
	Presence int8      `json:"presence"` // 在线状态
	Role     int8      `json:"role"`     // 房间角色
	JoinedAt time.Time `json:"joinedAt"` // 加入时间
}

// RoomMemberRepository 房间成员数据访问接口
// 管理 (房间, 用户) → 角色 的映射，是所有房间级鉴权的数据源
type RoomMemberRepository interface {
	// FindMember 查找成员关系，不存在返回 CodeNotFound
	FindMember(roomUuid, userUuid string) (*model.RoomMember, error)
	// FindMembersWithUser 查找房间成员（含用户详细信息）
	FindMembersWithUser(roomUuid string) ([]RoomMemberWithUser, error)
	// FindRoomUuidsByUser 查找用户加入的所有房间 UUID
	FindRoomUuidsByUser(userUuid string) ([]string, error)
	// Create 添加成员（复合唯一键冲突返回 CodeConflict）
	Create(member *model.RoomMember) error
	// Delete 移除成员
	Delete(roomUuid, userUuid string) error
	// CountByRoomUuid 统计房间成员数
	CountByRoomUuid(roomUuid string) (int64, error)
}

// MessageRepository 消息数据访问接口
// 管理房间消息与私聊消息的存取
type MessageRepository interface {
	// Create 创建新消息
	Create(message *model.Message) error
	// FindByUuid 根据雪花 ID 查找消息
	FindByUuid(uuid int64) (*model.Message, error)
	// FindLatestByRoom 查找房间最近 limit 条消息，按时间倒序返回
	// beforeUuid 非零时只返回雪花 ID 小于它的消息
	FindLatestByRoom(roomUuid string, beforeUuid int64, limit int) ([]model.Message, error)
	// FindLatestBetweenUsers 查找两个用户之间最近 limit 条私聊消息（双向），按时间倒序返回
	// beforeUuid 非零时只返回雪花 ID 小于它的消息
	FindLatestBetweenUsers(userOneId, userTwoId string, beforeUuid int64, limit int) ([]model.Message, error)
	// FindRecentForUser 查找与用户相关的最近消息（其所在房间 + 私聊双向），用于最近会话聚合
	FindRecentForUser(userUuid string, roomUuids []string, limit int) ([]model.Message, error)
	// UpdateContent 更新消息内容并标记编辑
	UpdateContent(uuid int64, content string, editedAt time.Time) error
	// MarkDeleted 软删除消息（保留行，抹去内容展示）
	MarkDeleted(uuid int64) error
}

// FriendshipRepository 好友关系数据访问接口
// 管理好友申请状态机 pending → accepted/rejected
type FriendshipRepository interface {
	// Create 创建好友申请
	Create(friendship *model.Friendship) error
	// FindByUuid 根据申请 UUID 查找
	FindByUuid(uuid string) (*model.Friendship, error)
	// FindBetween 查找两个用户之间的所有关系记录（双向、任意状态）
	FindBetween(userOneId, userTwoId string) ([]model.Friendship, error)
	// FindAcceptedByUser 查找用户的所有已通过关系（双向合并）
	FindAcceptedByUser(userUuid string) ([]model.Friendship, error)
	// FindPendingByTarget 查找发给指定用户的待处理申请
	FindPendingByTarget(targetUuid string) ([]model.Friendship, error)
	// UpdateStatus 更新申请状态
	UpdateStatus(uuid string, status int8) error
}

// ==================== Repository 聚合 ====================

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db         *gorm.DB             // GORM 数据库实例
	User       UserRepository       // 用户 Repository
	Room       RoomRepository       // 房间 Repository
	RoomMember RoomMemberRepository // 房间成员 Repository
	Message    MessageRepository    // 消息 Repository
	Friendship FriendshipRepository // 好友关系 Repository
}

// NewRepositories 创建所有 Repository 实例
// 接收 GORM 数据库实例，初始化并返回 Repositories 聚合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:         db,
		User:       NewUserRepository(db),
		Room:       NewRoomRepository(db),
		RoomMember: NewRoomMemberRepository(db),
		Message:    NewMessageRepository(db),
		Friendship: NewFriendshipRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// 手工组装的聚合（db 为 nil，如单测注入假实现时）直接执行函数本身
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 使用事务 db 创建新的 Repositories 实例
		return fn(NewRepositories(tx))
	})
}

// Package testutil 提供服务层测试用的内存版 Repository 实现和 miniredis 启动助手
// 内存实现遵循与 MySQL 实现相同的错误契约：
// 未命中返回 CodeNotFound，唯一键冲突返回 CodeConflict
package testutil

import (
	"sort"
	"sync"
	"testing"
	"time"

	"echo_chat_server/internal/dao/mysql/repository"
	myredis "echo_chat_server/internal/dao/redis"
	"echo_chat_server/internal/model"
	"echo_chat_server/pkg/errorx"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// SetupRedis 启动 miniredis 并注入为全局 redis 客户端
// 测试结束时自动关闭
func SetupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	myredis.InitWithClient(client)
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr
}

// NewFakeRepositories 创建全内存的 Repository 聚合
// db 为 nil，Transaction 退化为直接执行
func NewFakeRepositories() *repository.Repositories {
	userRepo := &FakeUserRepo{users: map[string]*model.User{}}
	return &repository.Repositories{
		User:       userRepo,
		Room:       &FakeRoomRepo{rooms: map[string]*model.Room{}},
		RoomMember: &FakeRoomMemberRepo{Users: userRepo},
		Message:    &FakeMessageRepo{},
		Friendship: &FakeFriendshipRepo{},
	}
}

func notFound(what string) error {
	return errorx.New(errorx.CodeNotFound, what+" not found")
}

// ==================== User ====================

// FakeUserRepo 内存用户存储，按 uuid 索引
type FakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
	seq   uint
}

func (f *FakeUserRepo) FindByUuid(uuid string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[uuid]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, notFound("user")
}

func (f *FakeUserRepo) FindByEmail(email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound("user")
}

func (f *FakeUserRepo) FindByUuids(uuids []string) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.User
	for _, uuid := range uuids {
		if u, ok := f.users[uuid]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (f *FakeUserRepo) Create(user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return errorx.New(errorx.CodeConflict, "duplicate email")
		}
	}
	// 模拟 BeforeSave 钩子：MinCost 哈希，保证 CheckPassword 可用且测试不慢
	if user.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(user.RawPassword), bcrypt.MinCost)
		if err != nil {
			return err
		}
		user.Password = string(hash)
		user.RawPassword = ""
	}
	f.seq++
	user.ID = f.seq
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.Uuid] = &cp
	return nil
}

func (f *FakeUserRepo) Update(user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Uuid]; !ok {
		return notFound("user")
	}
	cp := *user
	f.users[user.Uuid] = &cp
	return nil
}

func (f *FakeUserRepo) UpdatePresence(uuid string, presence int8, lastSeen time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[uuid]
	if !ok {
		return notFound("user")
	}
	u.Presence = presence
	u.LastSeenAt.Time = lastSeen
	u.LastSeenAt.Valid = true
	return nil
}

// ==================== Room ====================

// FakeRoomRepo 内存房间存储
type FakeRoomRepo struct {
	mu    sync.Mutex
	rooms map[string]*model.Room
	seq   uint
}

func (f *FakeRoomRepo) FindByUuid(uuid string) (*model.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rooms[uuid]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, notFound("room")
}

func (f *FakeRoomRepo) FindByInviteCode(code string) (*model.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rooms {
		if r.InviteCode == code {
			cp := *r
			return &cp, nil
		}
	}
	return nil, notFound("room")
}

func (f *FakeRoomRepo) FindByUuids(uuids []string) ([]model.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Room
	for _, uuid := range uuids {
		if r, ok := f.rooms[uuid]; ok {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (f *FakeRoomRepo) Create(room *model.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rooms {
		if r.InviteCode == room.InviteCode {
			return errorx.New(errorx.CodeConflict, "duplicate invite code")
		}
	}
	f.seq++
	room.ID = f.seq
	room.CreatedAt = time.Now()
	cp := *room
	f.rooms[room.Uuid] = &cp
	return nil
}

func (f *FakeRoomRepo) UpdateInviteCode(uuid string, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rooms {
		if r.Uuid != uuid && r.InviteCode == code {
			return errorx.New(errorx.CodeConflict, "duplicate invite code")
		}
	}
	r, ok := f.rooms[uuid]
	if !ok {
		return notFound("room")
	}
	r.InviteCode = code
	return nil
}

// ==================== RoomMember ====================

// FakeRoomMemberRepo 内存成员关系存储
// (room_uuid, user_uuid) 唯一约束与 MySQL 复合索引行为一致
type FakeRoomMemberRepo struct {
	mu      sync.Mutex
	members []model.RoomMember
	// Users 供 FindMembersWithUser 关联用户资料，与聚合里的 FakeUserRepo 是同一实例
	Users *FakeUserRepo
}

func (f *FakeRoomMemberRepo) FindMember(roomUuid, userUuid string) (*model.RoomMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.members {
		if f.members[i].RoomUuid == roomUuid && f.members[i].UserUuid == userUuid {
			cp := f.members[i]
			return &cp, nil
		}
	}
	return nil, notFound("room member")
}

func (f *FakeRoomMemberRepo) FindMembersWithUser(roomUuid string) ([]repository.RoomMemberWithUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []repository.RoomMemberWithUser
	for i := range f.members {
		m := &f.members[i]
		if m.RoomUuid != roomUuid {
			continue
		}
		row := repository.RoomMemberWithUser{
			UserId:   m.UserUuid,
			Role:     m.Role,
			JoinedAt: m.CreatedAt,
		}
		if f.Users != nil {
			if u, err := f.Users.FindByUuid(m.UserUuid); err == nil {
				row.Nickname = u.Nickname
				row.Avatar = u.Avatar
				row.Presence = u.Presence
			}
		}
		result = append(result, row)
	}
	return result, nil
}

func (f *FakeRoomMemberRepo) FindRoomUuidsByUser(userUuid string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []string
	for i := range f.members {
		if f.members[i].UserUuid == userUuid {
			result = append(result, f.members[i].RoomUuid)
		}
	}
	return result, nil
}

func (f *FakeRoomMemberRepo) Create(member *model.RoomMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.members {
		if f.members[i].RoomUuid == member.RoomUuid && f.members[i].UserUuid == member.UserUuid {
			return errorx.New(errorx.CodeConflict, "duplicate room member")
		}
	}
	member.CreatedAt = time.Now()
	f.members = append(f.members, *member)
	return nil
}

func (f *FakeRoomMemberRepo) Delete(roomUuid, userUuid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.members {
		if f.members[i].RoomUuid == roomUuid && f.members[i].UserUuid == userUuid {
			f.members = append(f.members[:i], f.members[i+1:]...)
			return nil
		}
	}
	return notFound("room member")
}

func (f *FakeRoomMemberRepo) CountByRoomUuid(roomUuid string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for i := range f.members {
		if f.members[i].RoomUuid == roomUuid {
			count++
		}
	}
	return count, nil
}

// ==================== Message ====================

// FakeMessageRepo 内存消息存储，查询按雪花 ID 倒序
type FakeMessageRepo struct {
	mu       sync.Mutex
	messages []model.Message
}

func (f *FakeMessageRepo) Create(message *model.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	message.CreatedAt = time.Now()
	f.messages = append(f.messages, *message)
	return nil
}

func (f *FakeMessageRepo) FindByUuid(uuid int64) (*model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.messages {
		if f.messages[i].Uuid == uuid {
			cp := f.messages[i]
			return &cp, nil
		}
	}
	return nil, notFound("message")
}

func (f *FakeMessageRepo) FindLatestByRoom(roomUuid string, beforeUuid int64, limit int) ([]model.Message, error) {
	return f.filter(func(m *model.Message) bool {
		return m.RoomId == roomUuid
	}, beforeUuid, limit), nil
}

func (f *FakeMessageRepo) FindLatestBetweenUsers(userOneId, userTwoId string, beforeUuid int64, limit int) ([]model.Message, error) {
	return f.filter(func(m *model.Message) bool {
		if m.RoomId != "" {
			return false
		}
		return (m.SendId == userOneId && m.ReceiveId == userTwoId) ||
			(m.SendId == userTwoId && m.ReceiveId == userOneId)
	}, beforeUuid, limit), nil
}

func (f *FakeMessageRepo) FindRecentForUser(userUuid string, roomUuids []string, limit int) ([]model.Message, error) {
	inRooms := make(map[string]bool, len(roomUuids))
	for _, uuid := range roomUuids {
		inRooms[uuid] = true
	}
	return f.filter(func(m *model.Message) bool {
		if m.RoomId != "" {
			return inRooms[m.RoomId]
		}
		return m.SendId == userUuid || m.ReceiveId == userUuid
	}, 0, limit), nil
}

func (f *FakeMessageRepo) UpdateContent(uuid int64, content string, editedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.messages {
		if f.messages[i].Uuid == uuid {
			f.messages[i].Content = content
			f.messages[i].IsEdited = 1
			f.messages[i].EditedAt.Time = editedAt
			f.messages[i].EditedAt.Valid = true
			return nil
		}
	}
	return notFound("message")
}

func (f *FakeMessageRepo) MarkDeleted(uuid int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.messages {
		if f.messages[i].Uuid == uuid {
			f.messages[i].IsDeleted = 1
			return nil
		}
	}
	return notFound("message")
}

func (f *FakeMessageRepo) filter(match func(*model.Message) bool, beforeUuid int64, limit int) []model.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Message
	for i := range f.messages {
		m := &f.messages[i]
		if beforeUuid > 0 && m.Uuid >= beforeUuid {
			continue
		}
		if match(m) {
			result = append(result, *m)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Uuid > result[j].Uuid
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// ==================== Friendship ====================

// FakeFriendshipRepo 内存好友关系存储
type FakeFriendshipRepo struct {
	mu          sync.Mutex
	friendships []model.Friendship
	seq         uint
}

func (f *FakeFriendshipRepo) Create(friendship *model.Friendship) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	friendship.ID = f.seq
	friendship.CreatedAt = time.Now()
	f.friendships = append(f.friendships, *friendship)
	return nil
}

func (f *FakeFriendshipRepo) FindByUuid(uuid string) (*model.Friendship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.friendships {
		if f.friendships[i].Uuid == uuid {
			cp := f.friendships[i]
			return &cp, nil
		}
	}
	return nil, notFound("friendship")
}

func (f *FakeFriendshipRepo) FindBetween(userOneId, userTwoId string) ([]model.Friendship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Friendship
	for i := range f.friendships {
		fs := &f.friendships[i]
		if (fs.ApplicantId == userOneId && fs.TargetId == userTwoId) ||
			(fs.ApplicantId == userTwoId && fs.TargetId == userOneId) {
			result = append(result, *fs)
		}
	}
	return result, nil
}

func (f *FakeFriendshipRepo) FindAcceptedByUser(userUuid string) ([]model.Friendship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Friendship
	for i := range f.friendships {
		fs := &f.friendships[i]
		if fs.Status == model.FriendStatusAccepted &&
			(fs.ApplicantId == userUuid || fs.TargetId == userUuid) {
			result = append(result, *fs)
		}
	}
	return result, nil
}

func (f *FakeFriendshipRepo) FindPendingByTarget(targetUuid string) ([]model.Friendship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Friendship
	for i := range f.friendships {
		fs := &f.friendships[i]
		if fs.Status == model.FriendStatusPending && fs.TargetId == targetUuid {
			result = append(result, *fs)
		}
	}
	return result, nil
}

func (f *FakeFriendshipRepo) UpdateStatus(uuid string, status int8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.friendships {
		if f.friendships[i].Uuid == uuid {
			f.friendships[i].Status = status
			return nil
		}
	}
	return notFound("friendship")
}

package room

import (
	"testing"

	"echo_chat_server/internal/dao/mysql/repository"
	"echo_chat_server/internal/dto/request"
	"echo_chat_server/internal/model"
	"echo_chat_server/internal/testutil"
	"echo_chat_server/pkg/constants"
	"echo_chat_server/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	testutil.SetupRedis(t)
	return NewService(testutil.NewFakeRepositories())
}

func seedUser(t *testing.T, svc *Service, uuid, nickname string) {
	t.Helper()
	err := svc.Repos.User.Create(&model.User{
		Uuid:     uuid,
		Email:    uuid + "@example.com",
		Nickname: nickname,
	})
	require.NoError(t, err)
}

func TestCreateRoomCreatorIsAdmin(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "U_alice", "alice")

	created, err := svc.CreateRoom("U_alice", request.CreateRoomRequest{Name: "go talk"})
	require.NoError(t, err)
	assert.Equal(t, "U_alice", created.OwnerId)
	assert.Len(t, created.InviteCode, constants.INVITE_CODE_LENGTH)

	// 建房事务同时写入管理员成员关系
	member, err := svc.Repos.RoomMember.FindMember(created.RoomId, "U_alice")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, member.Role)
}

func TestJoinRoomByInviteCode(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "U_alice", "alice")
	seedUser(t, svc, "U_bob", "bob")

	created, err := svc.CreateRoom("U_alice", request.CreateRoomRequest{Name: "go talk"})
	require.NoError(t, err)

	joined, err := svc.JoinRoomByInviteCode("U_bob", request.JoinRoomRequest{InviteCode: created.InviteCode})
	require.NoError(t, err)
	assert.Equal(t, created.RoomId, joined.RoomId)

	member, err := svc.Repos.RoomMember.FindMember(created.RoomId, "U_bob")
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, member.Role)

	// 重复加入
	_, err = svc.JoinRoomByInviteCode("U_bob", request.JoinRoomRequest{InviteCode: created.InviteCode})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))

	// 错误邀请码
	_, err = svc.JoinRoomByInviteCode("U_bob", request.JoinRoomRequest{InviteCode: "nope"})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

// racyMemberRepo 模拟并发加入：成员检查总说"不存在"，插入时唯一索引冲突
type racyMemberRepo struct {
	repository.RoomMemberRepository
}

func (r racyMemberRepo) FindMember(roomUuid, userUuid string) (*model.RoomMember, error) {
	return nil, errorx.New(errorx.CodeNotFound, "room member not found")
}

func (r racyMemberRepo) Create(member *model.RoomMember) error {
	return errorx.New(errorx.CodeConflict, "duplicate room member")
}

func TestJoinRoomConcurrentDuplicateIsSuccess(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "U_alice", "alice")

	created, err := svc.CreateRoom("U_alice", request.CreateRoomRequest{Name: "go talk"})
	require.NoError(t, err)

	// 两个请求同时通过"尚未加入"检查后，后插入的一方撞唯一索引，应视为加入成功
	svc.Repos.RoomMember = racyMemberRepo{RoomMemberRepository: svc.Repos.RoomMember}
	joined, err := svc.JoinRoomByInviteCode("U_bob", request.JoinRoomRequest{InviteCode: created.InviteCode})
	require.NoError(t, err)
	assert.Equal(t, created.RoomId, joined.RoomId)
}

func TestLeaveRoom(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "U_alice", "alice")
	seedUser(t, svc, "U_bob", "bob")
	seedUser(t, svc, "U_carol", "carol")

	created, err := svc.CreateRoom("U_alice", request.CreateRoomRequest{Name: "go talk"})
	require.NoError(t, err)
	_, err = svc.JoinRoomByInviteCode("U_bob", request.JoinRoomRequest{InviteCode: created.InviteCode})
	require.NoError(t, err)

	// 房主不能退出自己的房间
	err = svc.LeaveRoom("U_alice", created.RoomId)
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidState, errorx.GetCode(err))

	// 非成员退出
	err = svc.LeaveRoom("U_carol", created.RoomId)
	require.Error(t, err)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	// 普通成员正常退出
	require.NoError(t, svc.LeaveRoom("U_bob", created.RoomId))
	_, err = svc.Repos.RoomMember.FindMember(created.RoomId, "U_bob")
	assert.True(t, errorx.IsNotFound(err))
}

func TestRegenerateInviteCode(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "U_alice", "alice")
	seedUser(t, svc, "U_bob", "bob")

	created, err := svc.CreateRoom("U_alice", request.CreateRoomRequest{Name: "go talk"})
	require.NoError(t, err)
	_, err = svc.JoinRoomByInviteCode("U_bob", request.JoinRoomRequest{InviteCode: created.InviteCode})
	require.NoError(t, err)

	// 普通成员无权重新生成
	_, err = svc.RegenerateInviteCode("U_bob", created.RoomId)
	require.Error(t, err)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	regenerated, err := svc.RegenerateInviteCode("U_alice", created.RoomId)
	require.NoError(t, err)
	assert.NotEqual(t, created.InviteCode, regenerated.InviteCode)

	// 旧码立即失效，新码可用
	_, err = svc.GetRoomByInviteCode("U_bob", created.InviteCode)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
	found, err := svc.GetRoomByInviteCode("U_bob", regenerated.InviteCode)
	require.NoError(t, err)
	assert.Equal(t, created.RoomId, found.RoomId)
}

func TestGetRoomInfoVisibility(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "U_alice", "alice")
	seedUser(t, svc, "U_bob", "bob")

	publicRoom, err := svc.CreateRoom("U_alice", request.CreateRoomRequest{Name: "open"})
	require.NoError(t, err)
	privateRoom, err := svc.CreateRoom("U_alice", request.CreateRoomRequest{Name: "secret", IsPrivate: 1})
	require.NoError(t, err)

	// 公开房间非成员可见，但看不到邀请码
	info, err := svc.GetRoomInfo("U_bob", publicRoom.RoomId)
	require.NoError(t, err)
	assert.Empty(t, info.InviteCode)

	// 私有房间非成员不可见
	_, err = svc.GetRoomInfo("U_bob", privateRoom.RoomId)
	require.Error(t, err)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	// 成员视角带邀请码
	info, err = svc.GetRoomInfo("U_alice", privateRoom.RoomId)
	require.NoError(t, err)
	assert.NotEmpty(t, info.InviteCode)

	// 不存在的房间
	_, err = svc.GetRoomInfo("U_bob", "R_missing")
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestGetMyRoomListOrdering(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "U_alice", "alice")

	first, err := svc.CreateRoom("U_alice", request.CreateRoomRequest{Name: "first"})
	require.NoError(t, err)
	second, err := svc.CreateRoom("U_alice", request.CreateRoomRequest{Name: "second"})
	require.NoError(t, err)

	// 只有 first 有消息，应排在前面
	err = svc.Repos.Message.Create(&model.Message{
		Uuid:     1001,
		RoomId:   first.RoomId,
		SendId:   "U_alice",
		SendName: "alice",
		Content:  "hello",
	})
	require.NoError(t, err)

	list, err := svc.GetMyRoomList("U_alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.RoomId, list[0].RoomId)
	require.NotNil(t, list[0].LastMessage)
	assert.Equal(t, "hello", list[0].LastMessage.Content)
	assert.Equal(t, second.RoomId, list[1].RoomId)
	assert.Nil(t, list[1].LastMessage)
	assert.Equal(t, 0, list[0].UnreadCount)
}

func TestGetRoomMemberList(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "U_alice", "alice")
	seedUser(t, svc, "U_bob", "bob")
	seedUser(t, svc, "U_carol", "carol")

	created, err := svc.CreateRoom("U_alice", request.CreateRoomRequest{Name: "go talk"})
	require.NoError(t, err)
	_, err = svc.JoinRoomByInviteCode("U_bob", request.JoinRoomRequest{InviteCode: created.InviteCode})
	require.NoError(t, err)

	members, err := svc.GetRoomMemberList("U_alice", created.RoomId)
	require.NoError(t, err)
	require.Len(t, members, 2)

	byId := map[string]int8{}
	for _, m := range members {
		byId[m.UserId] = m.Role
	}
	assert.Equal(t, model.RoleAdmin, byId["U_alice"])
	assert.Equal(t, model.RoleMember, byId["U_bob"])

	// 非成员不可见
	_, err = svc.GetRoomMemberList("U_carol", created.RoomId)
	require.Error(t, err)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
}

package message

import (
	"strconv"
	"testing"

	"echo_chat_server/internal/dto/request"
	"echo_chat_server/internal/model"
	"echo_chat_server/internal/testutil"
	"echo_chat_server/pkg/constants"
	"echo_chat_server/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试固定拓扑：alice 建房（管理员），bob 是成员，carol 不在房间里
const (
	alice  = "U_alice"
	bob    = "U_bob"
	carol  = "U_carol"
	roomId = "R_test_room_0001"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	testutil.SetupRedis(t)
	svc := NewService(testutil.NewFakeRepositories())

	for uuid, nickname := range map[string]string{alice: "alice", bob: "bob", carol: "carol"} {
		err := svc.Repos.User.Create(&model.User{
			Uuid:     uuid,
			Email:    uuid + "@example.com",
			Nickname: nickname,
		})
		require.NoError(t, err)
	}
	require.NoError(t, svc.Repos.Room.Create(&model.Room{
		Uuid:       roomId,
		Name:       "go talk",
		InviteCode: "code12345678",
		OwnerId:    alice,
	}))
	require.NoError(t, svc.Repos.RoomMember.Create(&model.RoomMember{RoomUuid: roomId, UserUuid: alice, Role: model.RoleAdmin}))
	require.NoError(t, svc.Repos.RoomMember.Create(&model.RoomMember{RoomUuid: roomId, UserUuid: bob, Role: model.RoleMember}))
	return svc
}

func roomMsg(content string) request.SendMessageRequest {
	return request.SendMessageRequest{RoomId: roomId, Content: content}
}

func directMsg(receiveId, content string) request.SendMessageRequest {
	return request.SendMessageRequest{ReceiveId: receiveId, Content: content}
}

func TestSendMessageTargetValidation(t *testing.T) {
	svc := newTestService(t)

	// room_id 与 receive_id 必须恰好填一个
	_, err := svc.SendMessage(alice, request.SendMessageRequest{Content: "hi"})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	_, err = svc.SendMessage(alice, request.SendMessageRequest{RoomId: roomId, ReceiveId: bob, Content: "hi"})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}

func TestSendRoomMessage(t *testing.T) {
	svc := newTestService(t)

	sent, err := svc.SendMessage(alice, roomMsg("hello room"))
	require.NoError(t, err)
	assert.NotEmpty(t, sent.MessageId)
	assert.Equal(t, roomId, sent.RoomId)
	assert.Equal(t, "alice", sent.SendName)

	// 非成员发房间消息
	_, err = svc.SendMessage(carol, roomMsg("let me in"))
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	// 房间不存在
	_, err = svc.SendMessage(alice, request.SendMessageRequest{RoomId: "R_missing", Content: "hi"})
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestSendDirectMessage(t *testing.T) {
	svc := newTestService(t)

	sent, err := svc.SendMessage(alice, directMsg(bob, "hi bob"))
	require.NoError(t, err)
	assert.Equal(t, bob, sent.ReceiveId)
	assert.Empty(t, sent.RoomId)

	_, err = svc.SendMessage(alice, directMsg("U_missing", "anyone?"))
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestSendMessageWithAttachment(t *testing.T) {
	svc := newTestService(t)

	sent, err := svc.SendMessage(alice, request.SendMessageRequest{
		RoomId:   roomId,
		Content:  "see attachment",
		Type:     model.MessageTypeFile,
		FileName: "notes.pdf",
		FileUrl:  "/static/files/notes.pdf",
		FileSize: 2048,
		FileType: "application/pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, model.MessageTypeFile, sent.Type)
	assert.Equal(t, "notes.pdf", sent.FileName)
	assert.Equal(t, int64(2048), sent.FileSize)
}

func TestRoomMessageListChronological(t *testing.T) {
	svc := newTestService(t)

	for _, content := range []string{"one", "two", "three"} {
		_, err := svc.SendMessage(alice, roomMsg(content))
		require.NoError(t, err)
	}

	list, err := svc.GetRoomMessageList(bob, roomId, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	// 返回时间正序，最新的在最后
	assert.Equal(t, "one", list[0].Content)
	assert.Equal(t, "three", list[2].Content)
	assert.Less(t, list[0].MessageId, list[2].MessageId)

	// 非成员不可读
	_, err = svc.GetRoomMessageList(carol, roomId, 0)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
}

func TestDirectMessageListBothDirections(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SendMessage(alice, directMsg(bob, "ping"))
	require.NoError(t, err)
	_, err = svc.SendMessage(bob, directMsg(alice, "pong"))
	require.NoError(t, err)
	// 与第三人的私聊不应混进来
	_, err = svc.SendMessage(alice, directMsg(carol, "other thread"))
	require.NoError(t, err)

	list, err := svc.GetDirectMessageList(alice, bob, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ping", list[0].Content)
	assert.Equal(t, "pong", list[1].Content)
}

func TestMessagePagination(t *testing.T) {
	svc := newTestService(t)

	total := constants.MESSAGE_PAGE_SIZE + 10
	for i := 0; i < total; i++ {
		_, err := svc.SendMessage(alice, roomMsg("msg " + strconv.Itoa(i)))
		require.NoError(t, err)
	}

	firstPage, err := svc.GetRoomMessageList(bob, roomId, 0)
	require.NoError(t, err)
	require.Len(t, firstPage, constants.MESSAGE_PAGE_SIZE)

	// 用第一页最早一条做游标取更早的历史
	cursor, err := strconv.ParseInt(firstPage[0].MessageId, 10, 64)
	require.NoError(t, err)
	secondPage, err := svc.GetRoomMessageList(bob, roomId, cursor)
	require.NoError(t, err)
	require.Len(t, secondPage, 10)
	assert.Equal(t, "msg 0", secondPage[0].Content)
}

func TestEditMessage(t *testing.T) {
	svc := newTestService(t)

	sent, err := svc.SendMessage(alice, roomMsg("draft"))
	require.NoError(t, err)

	// 非发送者不能编辑
	_, err = svc.EditMessage(bob, request.EditMessageRequest{MessageId: sent.MessageId, Content: "hijack"})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	edited, err := svc.EditMessage(alice, request.EditMessageRequest{MessageId: sent.MessageId, Content: "final"})
	require.NoError(t, err)
	assert.Equal(t, "final", edited.Content)
	assert.Equal(t, int8(1), edited.IsEdited)
	assert.NotEmpty(t, edited.EditedAt)

	// 不存在的消息
	_, err = svc.EditMessage(alice, request.EditMessageRequest{MessageId: "999999", Content: "x"})
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))

	// 非法 id
	_, err = svc.EditMessage(alice, request.EditMessageRequest{MessageId: "abc", Content: "x"})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}

func TestDeleteMessage(t *testing.T) {
	svc := newTestService(t)

	sent, err := svc.SendMessage(alice, roomMsg("remove me"))
	require.NoError(t, err)

	// 非发送者不能删除
	err = svc.DeleteMessage(bob, request.DeleteMessageRequest{MessageId: sent.MessageId})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	require.NoError(t, svc.DeleteMessage(alice, request.DeleteMessageRequest{MessageId: sent.MessageId}))

	// 重复删除
	err = svc.DeleteMessage(alice, request.DeleteMessageRequest{MessageId: sent.MessageId})
	assert.Equal(t, errorx.CodeInvalidState, errorx.GetCode(err))

	// 删除后不能编辑
	_, err = svc.EditMessage(alice, request.EditMessageRequest{MessageId: sent.MessageId, Content: "revive"})
	assert.Equal(t, errorx.CodeInvalidState, errorx.GetCode(err))
}

func TestDeletedMessageMaskedInList(t *testing.T) {
	svc := newTestService(t)

	kept, err := svc.SendMessage(alice, roomMsg("kept"))
	require.NoError(t, err)
	removed, err := svc.SendMessage(alice, request.SendMessageRequest{
		RoomId:   roomId,
		Content:  "secret file",
		Type:     model.MessageTypeFile,
		FileName: "secret.zip",
		FileUrl:  "/static/files/secret.zip",
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteMessage(alice, request.DeleteMessageRequest{MessageId: removed.MessageId}))

	list, err := svc.GetRoomMessageList(bob, roomId, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, kept.MessageId, list[0].MessageId)

	// 删除的消息保留排序位，但内容和附件被抹除
	masked := list[1]
	assert.Equal(t, removed.MessageId, masked.MessageId)
	assert.Equal(t, int8(1), masked.IsDeleted)
	assert.Empty(t, masked.Content)
	assert.Empty(t, masked.FileUrl)
	assert.Empty(t, masked.FileName)
}

func TestGetRecentChats(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SendMessage(alice, roomMsg("room first"))
	require.NoError(t, err)
	_, err = svc.SendMessage(bob, directMsg(alice, "dm from bob"))
	require.NoError(t, err)
	_, err = svc.SendMessage(alice, directMsg(carol, "dm to carol"))
	require.NoError(t, err)

	chats, err := svc.GetRecentChats(alice)
	require.NoError(t, err)
	require.Len(t, chats, 3)

	// 按最新消息时间倒序：carol 私聊 → bob 私聊 → 房间
	assert.Equal(t, "direct", chats[0].ConversationType)
	assert.Equal(t, carol, chats[0].TargetId)
	assert.Equal(t, "carol", chats[0].TargetName)
	assert.Equal(t, "dm to carol", chats[0].LastContent)

	assert.Equal(t, "direct", chats[1].ConversationType)
	assert.Equal(t, bob, chats[1].TargetId)
	assert.Equal(t, "dm from bob", chats[1].LastContent)

	assert.Equal(t, "room", chats[2].ConversationType)
	assert.Equal(t, roomId, chats[2].TargetId)
	assert.Equal(t, "go talk", chats[2].TargetName)
}

func TestRecentChatsCollapsePerConversation(t *testing.T) {
	svc := newTestService(t)

	for _, content := range []string{"a", "b", "c"} {
		_, err := svc.SendMessage(alice, directMsg(bob, content))
		require.NoError(t, err)
	}

	chats, err := svc.GetRecentChats(alice)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "c", chats[0].LastContent)
}

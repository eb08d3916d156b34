package user

import (
	"testing"
	"time"

	"echo_chat_server/internal/dto/request"
	"echo_chat_server/internal/model"
	"echo_chat_server/internal/testutil"
	"echo_chat_server/pkg/constants"
	"echo_chat_server/pkg/errorx"
	"echo_chat_server/pkg/util/jwt"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := testutil.SetupRedis(t)
	jwt.Init("test-secret-key-for-unit-tests", 5, 1)
	return NewService(testutil.NewFakeRepositories()), mr
}

func registerReq(email string) request.RegisterRequest {
	return request.RegisterRequest{
		Email:    email,
		Password: "secret123",
		Nickname: "tester",
	}
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService(t)

	data, err := svc.Register(registerReq("alice@example.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, data.Uuid)
	assert.Equal(t, "alice@example.com", data.Email)
	assert.NotEmpty(t, data.AccessToken)
	assert.NotEmpty(t, data.RefreshToken)
	assert.Equal(t, model.PresenceOnline, data.Presence)

	// 邮箱唯一
	_, err = svc.Register(registerReq("alice@example.com"))
	require.Error(t, err)
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Register(registerReq("alice@example.com"))
	require.NoError(t, err)

	data, err := svc.Login(request.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, data.AccessToken)

	// 密码错误与用户不存在返回同一种错误，不泄露邮箱是否注册
	_, errWrongPass := svc.Login(request.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	_, errNoUser := svc.Login(request.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	require.Error(t, errWrongPass)
	require.Error(t, errNoUser)
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(errWrongPass))
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(errNoUser))
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _ := newTestService(t)
	registered, err := svc.Register(registerReq("alice@example.com"))
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// 刷新后 token ID 已轮换，旧 Refresh Token 失效
	_, err = svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: registered.RefreshToken})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc, _ := newTestService(t)
	registered, err := svc.Register(registerReq("alice@example.com"))
	require.NoError(t, err)

	// Access Token 的 subject 不对，不能用于刷新
	_, err = svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: registered.AccessToken})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
}

func TestSecondLoginKicksFirstSession(t *testing.T) {
	svc, _ := newTestService(t)
	first, err := svc.Register(registerReq("alice@example.com"))
	require.NoError(t, err)

	_, err = svc.Login(request.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	// 第二次登录覆盖 token ID，第一个会话不能再刷新
	_, err = svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, _ := newTestService(t)
	registered, err := svc.Register(registerReq("alice@example.com"))
	require.NoError(t, err)

	require.NoError(t, svc.Logout(registered.Uuid))

	_, err = svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: registered.RefreshToken})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))

	info, err := svc.GetUserInfo(registered.Uuid)
	require.NoError(t, err)
	assert.Equal(t, model.PresenceOffline, info.Presence)
}

func TestUpdateUserInfoPartial(t *testing.T) {
	svc, _ := newTestService(t)
	registered, err := svc.Register(registerReq("alice@example.com"))
	require.NoError(t, err)

	nickname := "new nick"
	updated, err := svc.UpdateUserInfo(registered.Uuid, request.UpdateUserInfoRequest{Nickname: &nickname})
	require.NoError(t, err)
	assert.Equal(t, "new nick", updated.Nickname)
	// 未携带的字段不变
	assert.Equal(t, registered.Signature, updated.Signature)
	assert.Equal(t, registered.Avatar, updated.Avatar)
}

func TestPresenceHeartbeatAndExpiry(t *testing.T) {
	svc, mr := newTestService(t)
	registered, err := svc.Register(registerReq("alice@example.com"))
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePresence(registered.Uuid, request.UpdatePresenceRequest{Presence: model.PresenceAway}))
	info, err := svc.GetUserInfo(registered.Uuid)
	require.NoError(t, err)
	assert.Equal(t, model.PresenceAway, info.Presence)
	assert.NotEmpty(t, info.LastSeenAt)

	// 心跳停止，TTL 过期后读到的状态是离线
	mr.FastForward((constants.PRESENCE_TTL_SECONDS + 1) * time.Second)
	info, err = svc.GetUserInfo(registered.Uuid)
	require.NoError(t, err)
	assert.Equal(t, model.PresenceOffline, info.Presence)
}

func TestGetUserInfoNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetUserInfo("U_missing")
	require.Error(t, err)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

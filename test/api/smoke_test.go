// 端到端冒烟测试：真实的 gin 引擎 + 真实 Service，
// 存储层换成内存实现，redis 换成 miniredis
package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"echo_chat_server/internal/handler"
	"echo_chat_server/internal/http_server"
	"echo_chat_server/internal/service"
	"echo_chat_server/internal/testutil"
	"echo_chat_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	testutil.SetupRedis(t)
	jwt.Init("smoke-test-secret", 5, 1)

	service.InitServices(testutil.NewFakeRepositories())
	require.NoError(t, handler.InitTrans("en"))
	return http_server.Init(handler.NewHandlers(service.Svc))
}

// doJSON 发送 JSON 请求并解包 JSON 响应
func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var decoded map[string]any
	if len(w.Body.Bytes()) > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w.Code, decoded
}

// doJSONList 同 doJSON，但响应是 JSON 数组
func doJSONList(t *testing.T, engine *gin.Engine, method, path, token string) (int, []map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var decoded []map[string]any
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w.Code, decoded
}

func register(t *testing.T, engine *gin.Engine, email, nickname string) map[string]any {
	t.Helper()
	status, data := doJSON(t, engine, http.MethodPost, "/user/register", "", gin.H{
		"email":    email,
		"password": "secret123",
		"nickname": nickname,
	})
	require.Equal(t, http.StatusCreated, status)
	return data
}

func TestRegisterLoginFlow(t *testing.T) {
	engine := setupEngine(t)

	registered := register(t, engine, "alice@example.com", "alice")
	assert.NotEmpty(t, registered["access_token"])
	assert.NotEmpty(t, registered["refresh_token"])

	// 重复邮箱
	status, data := doJSON(t, engine, http.MethodPost, "/user/register", "", gin.H{
		"email": "alice@example.com", "password": "secret123", "nickname": "clone",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, data["message"], "already registered")

	// 参数校验失败
	status, _ = doJSON(t, engine, http.MethodPost, "/user/register", "", gin.H{
		"email": "not-an-email", "password": "secret123", "nickname": "x",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// 密码错误
	status, _ = doJSON(t, engine, http.MethodPost, "/user/login", "", gin.H{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	// 正常登录
	status, data = doJSON(t, engine, http.MethodPost, "/user/login", "", gin.H{
		"email": "alice@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, data["access_token"])

	// Token 刷新
	status, data = doJSON(t, engine, http.MethodPost, "/auth/refresh", "", gin.H{
		"refresh_token": data["refresh_token"],
	})
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, data["access_token"])
}

func TestAuthRequired(t *testing.T) {
	engine := setupEngine(t)

	status, _ := doJSON(t, engine, http.MethodGet, "/user/info", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, engine, http.MethodGet, "/user/info", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRoomAndMessageScenario(t *testing.T) {
	engine := setupEngine(t)

	aliceToken := register(t, engine, "alice@example.com", "alice")["access_token"].(string)
	bobToken := register(t, engine, "bob@example.com", "bob")["access_token"].(string)
	carolToken := register(t, engine, "carol@example.com", "carol")["access_token"].(string)

	// alice 建房
	status, room := doJSON(t, engine, http.MethodPost, "/room/create", aliceToken, gin.H{
		"name": "go talk",
	})
	require.Equal(t, http.StatusCreated, status)
	roomId := room["room_id"].(string)
	inviteCode := room["invite_code"].(string)
	require.NotEmpty(t, inviteCode)

	// bob 用邀请码加入
	status, _ = doJSON(t, engine, http.MethodPost, "/room/join", bobToken, gin.H{"invite_code": inviteCode})
	assert.Equal(t, http.StatusOK, status)

	// 重复加入
	status, _ = doJSON(t, engine, http.MethodPost, "/room/join", bobToken, gin.H{"invite_code": inviteCode})
	assert.Equal(t, http.StatusConflict, status)

	// 错误邀请码
	status, _ = doJSON(t, engine, http.MethodPost, "/room/join", carolToken, gin.H{"invite_code": "badcode12345"})
	assert.Equal(t, http.StatusNotFound, status)

	// bob 发房间消息
	status, sent := doJSON(t, engine, http.MethodPost, "/message/send", bobToken, gin.H{
		"room_id": roomId, "content": "hello from bob",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, sent["message_id"])

	// carol 不是成员，读写都被拒
	status, _ = doJSON(t, engine, http.MethodPost, "/message/send", carolToken, gin.H{
		"room_id": roomId, "content": "let me in",
	})
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = doJSONList(t, engine, http.MethodGet, "/message/room/"+roomId, carolToken)
	assert.Equal(t, http.StatusForbidden, status)

	// alice 读消息列表
	status, list := doJSONList(t, engine, http.MethodGet, "/message/room/"+roomId, aliceToken)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	assert.Equal(t, "hello from bob", list[0]["content"])
	assert.Equal(t, "bob", list[0]["send_name"])

	// 成员列表
	status, members := doJSONList(t, engine, http.MethodGet, "/room/memberList/"+roomId, aliceToken)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, members, 2)
}

func TestFriendScenario(t *testing.T) {
	engine := setupEngine(t)

	aliceToken := register(t, engine, "alice@example.com", "alice")["access_token"].(string)
	bob := register(t, engine, "bob@example.com", "bob")
	bobToken := bob["access_token"].(string)
	bobUuid := bob["uuid"].(string)

	// alice 申请加 bob
	status, _ := doJSON(t, engine, http.MethodPost, "/friend/apply", aliceToken, gin.H{
		"target_id": bobUuid, "message": "hi bob",
	})
	require.Equal(t, http.StatusCreated, status)

	// bob 查看并通过申请
	status, applies := doJSONList(t, engine, http.MethodGet, "/friend/applyList", bobToken)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, applies, 1)
	applyId := applies[0]["apply_id"].(string)

	status, _ = doJSON(t, engine, http.MethodPost, "/friend/accept", bobToken, gin.H{"apply_id": applyId})
	assert.Equal(t, http.StatusOK, status)

	// 双方好友列表对称
	status, aliceFriends := doJSONList(t, engine, http.MethodGet, "/friend/list", aliceToken)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, aliceFriends, 1)
	assert.Equal(t, bobUuid, aliceFriends[0]["user_id"])

	status, bobFriends := doJSONList(t, engine, http.MethodGet, "/friend/list", bobToken)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, bobFriends, 1)
}

// Package message 实现房间消息与私聊消息的发送、查询、编辑、删除
// 以及最近会话聚合
package message

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"echo_chat_server/internal/dao/mysql/repository"
	myredis "echo_chat_server/internal/dao/redis"
	"echo_chat_server/internal/dto/request"
	"echo_chat_server/internal/dto/respond"
	"echo_chat_server/internal/infrastructure/mq"
	"echo_chat_server/internal/model"
	"echo_chat_server/pkg/constants"
	"echo_chat_server/pkg/errorx"
	"echo_chat_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

// 消息列表缓存 key 前缀
// 首页（无翻页游标）的消息列表缓存 1 分钟，写路径异步失效
const (
	roomMessageCachePrefix   = "room_messagelist_"
	directMessageCachePrefix = "direct_messagelist_"
)

// Service 消息服务
type Service struct {
	Repos *repository.Repositories
}

// NewService 创建消息服务实例
func NewService(repos *repository.Repositories) *Service {
	return &Service{Repos: repos}
}

// SendMessage 发送消息
// room_id 与 receive_id 必须恰好填一个；房间消息要求发送者是成员，
// 私聊消息要求接收者存在。附件元数据原样透传，不做内容校验
func (s *Service) SendMessage(userId string, req request.SendMessageRequest) (*respond.MessageRespond, error) {
	if (req.RoomId == "") == (req.ReceiveId == "") {
		return nil, errorx.New(errorx.CodeInvalidParam, "exactly one of room_id and receive_id must be set")
	}

	sender, err := s.Repos.User.FindByUuid(userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "user not found")
		}
		return nil, err
	}

	if req.RoomId != "" {
		if _, err := s.Repos.Room.FindByUuid(req.RoomId); err != nil {
			if errorx.IsNotFound(err) {
				return nil, errorx.New(errorx.CodeNotFound, "room not found")
			}
			return nil, err
		}
		if _, err := s.Repos.RoomMember.FindMember(req.RoomId, userId); err != nil {
			if errorx.IsNotFound(err) {
				return nil, errorx.New(errorx.CodeForbidden, "not a room member")
			}
			return nil, err
		}
	} else {
		if _, err := s.Repos.User.FindByUuid(req.ReceiveId); err != nil {
			if errorx.IsNotFound(err) {
				return nil, errorx.New(errorx.CodeNotFound, "recipient not found")
			}
			return nil, err
		}
	}

	newMessage := &model.Message{
		Uuid:       snowflake.GenerateID(),
		RoomId:     req.RoomId,
		ReceiveId:  req.ReceiveId,
		SendId:     userId,
		SendName:   sender.Nickname,
		SendAvatar: sender.Avatar,
		Type:       req.Type,
		Content:    req.Content,
		FileName:   req.FileName,
		FileUrl:    req.FileUrl,
		FileSize:   req.FileSize,
		FileType:   req.FileType,
	}
	if err := s.Repos.Message.Create(newMessage); err != nil {
		return nil, err
	}

	s.invalidateListCache(newMessage)
	mq.KafkaService.PublishMessageCreated(conversationKey(newMessage), &mq.MessageCreatedEvent{
		MessageId: strconv.FormatInt(newMessage.Uuid, 10),
		RoomId:    newMessage.RoomId,
		ReceiveId: newMessage.ReceiveId,
		SendId:    newMessage.SendId,
		Type:      newMessage.Type,
		CreatedAt: newMessage.CreatedAt.Format("2006-01-02 15:04:05"),
	})

	return buildMessageRespond(newMessage), nil
}

// GetRoomMessageList 查询房间消息列表（仅成员）
// 取最近一页后反转为时间正序返回；首页结果走 redis 缓存
func (s *Service) GetRoomMessageList(userId, roomId string, beforeId int64) ([]respond.MessageRespond, error) {
	if _, err := s.Repos.Room.FindByUuid(roomId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "room not found")
		}
		return nil, err
	}
	if _, err := s.Repos.RoomMember.FindMember(roomId, userId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeForbidden, "not a room member")
		}
		return nil, err
	}

	cacheKey := roomMessageCachePrefix + roomId
	if beforeId == 0 {
		if cached, ok := loadListCache(cacheKey); ok {
			return cached, nil
		}
	}

	messages, err := s.Repos.Message.FindLatestByRoom(roomId, beforeId, constants.MESSAGE_PAGE_SIZE)
	if err != nil {
		return nil, err
	}
	result := buildMessageList(messages)
	if beforeId == 0 {
		storeListCache(cacheKey, result)
	}
	return result, nil
}

// GetDirectMessageList 查询与某用户的私聊消息列表
// 双向消息合并，排除房间消息，契约与房间列表一致
func (s *Service) GetDirectMessageList(userId, peerId string, beforeId int64) ([]respond.MessageRespond, error) {
	if _, err := s.Repos.User.FindByUuid(peerId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "user not found")
		}
		return nil, err
	}

	cacheKey := directMessageCachePrefix + pairKey(userId, peerId)
	if beforeId == 0 {
		if cached, ok := loadListCache(cacheKey); ok {
			return cached, nil
		}
	}

	messages, err := s.Repos.Message.FindLatestBetweenUsers(userId, peerId, beforeId, constants.MESSAGE_PAGE_SIZE)
	if err != nil {
		return nil, err
	}
	result := buildMessageList(messages)
	if beforeId == 0 {
		storeListCache(cacheKey, result)
	}
	return result, nil
}

// EditMessage 编辑消息
// 只有发送者本人可编辑；已删除的消息不可编辑
func (s *Service) EditMessage(userId string, req request.EditMessageRequest) (*respond.MessageRespond, error) {
	editMessage, err := s.findOwnedMessage(userId, req.MessageId, "edit")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.Repos.Message.UpdateContent(editMessage.Uuid, req.Content, now); err != nil {
		return nil, err
	}
	editMessage.Content = req.Content
	editMessage.IsEdited = 1
	editMessage.EditedAt.Time = now
	editMessage.EditedAt.Valid = true

	s.invalidateListCache(editMessage)
	return buildMessageRespond(editMessage), nil
}

// DeleteMessage 删除消息（软删除）
// 只有发送者本人可删除；重复删除返回 CodeInvalidState
func (s *Service) DeleteMessage(userId string, req request.DeleteMessageRequest) error {
	deleteMessage, err := s.findOwnedMessage(userId, req.MessageId, "delete")
	if err != nil {
		return err
	}
	if err := s.Repos.Message.MarkDeleted(deleteMessage.Uuid); err != nil {
		return err
	}
	s.invalidateListCache(deleteMessage)
	return nil
}

// GetRecentChats 聚合最近会话
// 扫描与用户相关的最近消息，每个会话（房间或私聊对象）
// 取最新一条，按该消息时间倒序排列
func (s *Service) GetRecentChats(userId string) ([]respond.RecentChatRespond, error) {
	roomUuids, err := s.Repos.RoomMember.FindRoomUuidsByUser(userId)
	if err != nil {
		return nil, err
	}
	messages, err := s.Repos.Message.FindRecentForUser(userId, roomUuids, constants.RECENT_CHAT_SCAN_LIMIT)
	if err != nil {
		return nil, err
	}

	// messages 已按时间倒序，每个会话第一次出现的就是最新一条
	type conv struct {
		isRoom   bool
		targetId string
		last     *model.Message
	}
	seen := make(map[string]bool)
	convs := make([]conv, 0)
	for i := range messages {
		m := &messages[i]
		var key string
		c := conv{last: m}
		if m.IsRoomMessage() {
			c.isRoom = true
			c.targetId = m.RoomId
			key = "room:" + m.RoomId
		} else {
			c.targetId = m.ReceiveId
			if m.SendId != userId {
				c.targetId = m.SendId
			}
			key = "direct:" + c.targetId
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		convs = append(convs, c)
	}

	// 批量补齐会话名称
	var roomIds, userIds []string
	for _, c := range convs {
		if c.isRoom {
			roomIds = append(roomIds, c.targetId)
		} else {
			userIds = append(userIds, c.targetId)
		}
	}
	roomNames, userNames, err := s.resolveTargetNames(roomIds, userIds)
	if err != nil {
		return nil, err
	}

	result := make([]respond.RecentChatRespond, 0, len(convs))
	for _, c := range convs {
		item := respond.RecentChatRespond{
			TargetId:    c.targetId,
			LastSendId:  c.last.SendId,
			LastContent: c.last.Content,
			LastAt:      c.last.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if c.last.IsDeleted == 1 {
			item.LastContent = ""
		}
		if c.isRoom {
			item.ConversationType = "room"
			item.TargetName = roomNames[c.targetId]
		} else {
			item.ConversationType = "direct"
			item.TargetName = userNames[c.targetId]
		}
		result = append(result, item)
	}
	return result, nil
}

// findOwnedMessage 按字符串雪花 ID 加载消息并做变更前检查：
// 存在性 → 发送者本人 → 未删除
func (s *Service) findOwnedMessage(userId, messageId, action string) (*model.Message, error) {
	uuid, err := strconv.ParseInt(messageId, 10, 64)
	if err != nil {
		return nil, errorx.New(errorx.CodeInvalidParam, "invalid message id")
	}
	ownedMessage, err := s.Repos.Message.FindByUuid(uuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "message not found")
		}
		return nil, err
	}
	if ownedMessage.SendId != userId {
		return nil, errorx.Newf(errorx.CodeForbidden, "only the sender can %s the message", action)
	}
	if ownedMessage.IsDeleted == 1 {
		return nil, errorx.New(errorx.CodeInvalidState, "message already deleted")
	}
	return ownedMessage, nil
}

// invalidateListCache 异步失效消息列表缓存
func (s *Service) invalidateListCache(m *model.Message) {
	var cacheKey string
	if m.IsRoomMessage() {
		cacheKey = roomMessageCachePrefix + m.RoomId
	} else {
		cacheKey = directMessageCachePrefix + pairKey(m.SendId, m.ReceiveId)
	}
	myredis.SubmitCacheTask(func() {
		if err := myredis.DelKey(context.Background(), cacheKey); err != nil {
			zap.L().Warn("invalidate message cache failed", zap.String("key", cacheKey), zap.Error(err))
		}
	})
}

// resolveTargetNames 批量查询会话目标的展示名称
func (s *Service) resolveTargetNames(roomIds, userIds []string) (map[string]string, map[string]string, error) {
	roomNames := make(map[string]string, len(roomIds))
	if len(roomIds) > 0 {
		rooms, err := s.Repos.Room.FindByUuids(roomIds)
		if err != nil {
			return nil, nil, err
		}
		for i := range rooms {
			roomNames[rooms[i].Uuid] = rooms[i].Name
		}
	}
	userNames := make(map[string]string, len(userIds))
	if len(userIds) > 0 {
		users, err := s.Repos.User.FindByUuids(userIds)
		if err != nil {
			return nil, nil, err
		}
		for i := range users {
			userNames[users[i].Uuid] = users[i].Nickname
		}
	}
	return roomNames, userNames, nil
}

// conversationKey 会话标识：房间 uuid 或字典序排列的私聊对
func conversationKey(m *model.Message) string {
	if m.IsRoomMessage() {
		return m.RoomId
	}
	return pairKey(m.SendId, m.ReceiveId)
}

// pairKey 无序用户对的确定性 key
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "_" + b
}

// buildMessageList 反转为时间正序并抹除已删除消息的内容
func buildMessageList(messages []model.Message) []respond.MessageRespond {
	result := make([]respond.MessageRespond, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		result = append(result, *buildMessageRespond(&messages[i]))
	}
	return result
}

// buildMessageRespond 组装单条消息响应
// 已删除的消息只保留标识、发送者和时间位置，内容与附件字段全部抹除
func buildMessageRespond(m *model.Message) *respond.MessageRespond {
	rsp := &respond.MessageRespond{
		MessageId:  strconv.FormatInt(m.Uuid, 10),
		RoomId:     m.RoomId,
		ReceiveId:  m.ReceiveId,
		SendId:     m.SendId,
		SendName:   m.SendName,
		SendAvatar: m.SendAvatar,
		Type:       m.Type,
		IsEdited:   m.IsEdited,
		IsDeleted:  m.IsDeleted,
		CreatedAt:  m.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if m.IsDeleted == 1 {
		return rsp
	}
	rsp.Content = m.Content
	rsp.FileName = m.FileName
	rsp.FileUrl = m.FileUrl
	rsp.FileSize = m.FileSize
	rsp.FileType = m.FileType
	if m.EditedAt.Valid {
		rsp.EditedAt = m.EditedAt.Time.Format("2006-01-02 15:04:05")
	}
	return rsp
}

// loadListCache 读消息列表缓存，未命中或反序列化失败都按 miss 处理
func loadListCache(cacheKey string) ([]respond.MessageRespond, bool) {
	raw, err := myredis.GetKey(context.Background(), cacheKey)
	if err != nil || raw == "" {
		return nil, false
	}
	var cached []respond.MessageRespond
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		zap.L().Warn("decode message cache failed", zap.String("key", cacheKey), zap.Error(err))
		return nil, false
	}
	return cached, true
}

// storeListCache 异步写消息列表缓存
func storeListCache(cacheKey string, list []respond.MessageRespond) {
	payload, err := json.Marshal(list)
	if err != nil {
		return
	}
	myredis.SubmitCacheTask(func() {
		err := myredis.SetKeyEx(context.Background(), cacheKey, string(payload),
			constants.REDIS_TIMEOUT*time.Minute)
		if err != nil {
			zap.L().Warn("store message cache failed", zap.String("key", cacheKey), zap.Error(err))
		}
	})
}

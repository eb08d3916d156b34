package repository

import (
	"time"

	"echo_chat_server/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息 Repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create 创建消息
func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "create message")
	}
	return nil
}

// FindByUuid 按雪花 ID 查找消息
func (r *messageRepository) FindByUuid(uuid int64) (*model.Message, error) {
	var message model.Message
	if err := r.db.First(&message, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "find message uuid=%d", uuid)
	}
	return &message, nil
}

// FindLatestByRoom 查找房间最近 limit 条消息
// beforeUuid 非零时只取雪花 ID 小于它的消息（向历史翻页）
// 按雪花 ID 倒序（即时间倒序）返回，展示层再反转为时间正序
// 软删除的消息仍在结果里（保留排序位），内容由展示层抹除
func (r *messageRepository) FindLatestByRoom(roomUuid string, beforeUuid int64, limit int) ([]model.Message, error) {
	var messages []model.Message
	query := r.db.Where("room_id = ?", roomUuid)
	if beforeUuid > 0 {
		query = query.Where("uuid < ?", beforeUuid)
	}
	err := query.Order("uuid DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "find messages room=%s", roomUuid)
	}
	return messages, nil
}

// FindLatestBetweenUsers 查找两个用户之间最近 limit 条私聊消息
// 双向匹配（发送/接收互换），排除任何房间消息
// beforeUuid 非零时只取雪花 ID 小于它的消息（向历史翻页）
func (r *messageRepository) FindLatestBetweenUsers(userOneId, userTwoId string, beforeUuid int64, limit int) ([]model.Message, error) {
	var messages []model.Message
	query := r.db.Where("room_id = '' AND ((send_id = ? AND receive_id = ?) OR (send_id = ? AND receive_id = ?))",
		userOneId, userTwoId, userTwoId, userOneId)
	if beforeUuid > 0 {
		query = query.Where("uuid < ?", beforeUuid)
	}
	err := query.Order("uuid DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, wrapDBError(err, "find direct messages")
	}
	return messages, nil
}

// FindRecentForUser 查找与用户相关的最近消息
// 覆盖其所在房间的消息和私聊双向消息，供最近会话聚合使用
func (r *messageRepository) FindRecentForUser(userUuid string, roomUuids []string, limit int) ([]model.Message, error) {
	var messages []model.Message
	query := r.db.Where("room_id = '' AND (send_id = ? OR receive_id = ?)", userUuid, userUuid)
	if len(roomUuids) > 0 {
		query = r.db.Where("room_id IN ?", roomUuids).
			Or("room_id = '' AND (send_id = ? OR receive_id = ?)", userUuid, userUuid)
	}
	err := r.db.Where(query).
		Order("uuid DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "find recent messages user=%s", userUuid)
	}
	return messages, nil
}

// UpdateContent 更新消息内容并标记编辑
func (r *messageRepository) UpdateContent(uuid int64, content string, editedAt time.Time) error {
	updates := map[string]interface{}{
		"content":   content,
		"is_edited": int8(1),
		"edited_at": editedAt,
	}
	if err := r.db.Model(&model.Message{}).Where("uuid = ?", uuid).Updates(updates).Error; err != nil {
		return wrapDBErrorf(err, "update message uuid=%d", uuid)
	}
	return nil
}

// MarkDeleted 软删除消息
// 只打标记，不动行本身，保证历史排序稳定
func (r *messageRepository) MarkDeleted(uuid int64) error {
	if err := r.db.Model(&model.Message{}).Where("uuid = ?", uuid).Update("is_deleted", int8(1)).Error; err != nil {
		return wrapDBErrorf(err, "mark message deleted uuid=%d", uuid)
	}
	return nil
}

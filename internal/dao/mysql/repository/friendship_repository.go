package repository

import (
	"echo_chat_server/internal/model"

	"gorm.io/gorm"
)

type friendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository 创建好友关系 Repository
func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

// Create 创建好友申请
func (r *friendshipRepository) Create(friendship *model.Friendship) error {
	if err := r.db.Create(friendship).Error; err != nil {
		return wrapDBError(err, "create friendship")
	}
	return nil
}

// FindByUuid 按申请 UUID 查找
func (r *friendshipRepository) FindByUuid(uuid string) (*model.Friendship, error) {
	var friendship model.Friendship
	if err := r.db.First(&friendship, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "find friendship uuid=%s", uuid)
	}
	return &friendship, nil
}

// FindBetween 查找两个用户之间的所有关系记录（双向、任意状态）
// 调用方据此判断是否已有待处理申请或已是好友
func (r *friendshipRepository) FindBetween(userOneId, userTwoId string) ([]model.Friendship, error) {
	var friendships []model.Friendship
	err := r.db.Where("(applicant_id = ? AND target_id = ?) OR (applicant_id = ? AND target_id = ?)",
		userOneId, userTwoId, userTwoId, userOneId).
		Find(&friendships).Error
	if err != nil {
		return nil, wrapDBError(err, "find friendships between users")
	}
	return friendships, nil
}

// FindAcceptedByUser 查找用户的所有已通过关系
// 好友关系按方向存储但语义对称，两个方向都要查
func (r *friendshipRepository) FindAcceptedByUser(userUuid string) ([]model.Friendship, error) {
	var friendships []model.Friendship
	err := r.db.Where("(applicant_id = ? OR target_id = ?) AND status = ?",
		userUuid, userUuid, model.FriendStatusAccepted).
		Find(&friendships).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "find accepted friendships user=%s", userUuid)
	}
	return friendships, nil
}

// FindPendingByTarget 查找发给指定用户的待处理申请
func (r *friendshipRepository) FindPendingByTarget(targetUuid string) ([]model.Friendship, error) {
	var friendships []model.Friendship
	err := r.db.Where("target_id = ? AND status = ?", targetUuid, model.FriendStatusPending).
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "find pending friendships target=%s", targetUuid)
	}
	return friendships, nil
}

// UpdateStatus 更新申请状态
func (r *friendshipRepository) UpdateStatus(uuid string, status int8) error {
	if err := r.db.Model(&model.Friendship{}).Where("uuid = ?", uuid).Update("status", status).Error; err != nil {
		return wrapDBErrorf(err, "update friendship status uuid=%s", uuid)
	}
	return nil
}

package repository

import (
	"echo_chat_server/internal/model"

	"gorm.io/gorm"
)

type roomMemberRepository struct {
	db *gorm.DB
}

// NewRoomMemberRepository 创建房间成员 Repository
func NewRoomMemberRepository(db *gorm.DB) RoomMemberRepository {
	return &roomMemberRepository{db: db}
}

// FindMember 查找成员关系
func (r *roomMemberRepository) FindMember(roomUuid, userUuid string) (*model.RoomMember, error) {
	var member model.RoomMember
	if err := r.db.First(&member, "room_uuid = ? AND user_uuid = ?", roomUuid, userUuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "find member room=%s user=%s", roomUuid, userUuid)
	}
	return &member, nil
}

// FindMembersWithUser 查找房间成员并关联用户资料
func (r *roomMemberRepository) FindMembersWithUser(roomUuid string) ([]RoomMemberWithUser, error) {
	var members []RoomMemberWithUser
	err := r.db.Table("room_member").
		Select("room_member.user_uuid AS user_id, user.nickname, user.avatar, user.presence, room_member.role, room_member.created_at AS joined_at").
		Joins("JOIN user ON user.uuid = room_member.user_uuid").
		Where("room_member.room_uuid = ? AND room_member.deleted_at IS NULL AND user.deleted_at IS NULL", roomUuid).
		Order("room_member.created_at ASC").
		Scan(&members).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "find members room=%s", roomUuid)
	}
	return members, nil
}

// FindRoomUuidsByUser 查找用户加入的所有房间 UUID
func (r *roomMemberRepository) FindRoomUuidsByUser(userUuid string) ([]string, error) {
	var roomUuids []string
	err := r.db.Model(&model.RoomMember{}).
		Where("user_uuid = ?", userUuid).
		Pluck("room_uuid", &roomUuids).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "find rooms of user=%s", userUuid)
	}
	return roomUuids, nil
}

// Create 添加成员
// (room_uuid, user_uuid) 唯一键冲突由 wrapDBError 映射为 CodeConflict，
// 并发加入时调用方将该冲突视为"已是成员"
func (r *roomMemberRepository) Create(member *model.RoomMember) error {
	if err := r.db.Create(member).Error; err != nil {
		return wrapDBError(err, "create room member")
	}
	return nil
}

// Delete 移除成员（软删除）
func (r *roomMemberRepository) Delete(roomUuid, userUuid string) error {
	if err := r.db.Where("room_uuid = ? AND user_uuid = ?", roomUuid, userUuid).
		Delete(&model.RoomMember{}).Error; err != nil {
		return wrapDBErrorf(err, "delete member room=%s user=%s", roomUuid, userUuid)
	}
	return nil
}

// CountByRoomUuid 统计房间成员数
func (r *roomMemberRepository) CountByRoomUuid(roomUuid string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.RoomMember{}).Where("room_uuid = ?", roomUuid).Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "count members room=%s", roomUuid)
	}
	return count, nil
}

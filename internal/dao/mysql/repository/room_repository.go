package repository

import (
	"echo_chat_server/internal/model"

	"gorm.io/gorm"
)

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository 创建房间 Repository
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

// FindByUuid 按 UUID 查找房间
func (r *roomRepository) FindByUuid(uuid string) (*model.Room, error) {
	var room model.Room
	if err := r.db.First(&room, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "find room uuid=%s", uuid)
	}
	return &room, nil
}

// FindByInviteCode 按邀请码查找房间
// 旧邀请码被覆盖后自然落到 CodeNotFound
func (r *roomRepository) FindByInviteCode(code string) (*model.Room, error) {
	var room model.Room
	if err := r.db.First(&room, "invite_code = ?", code).Error; err != nil {
		return nil, wrapDBError(err, "find room by invite code")
	}
	return &room, nil
}

// FindByUuids 按 UUID 列表批量查找房间
func (r *roomRepository) FindByUuids(uuids []string) ([]model.Room, error) {
	if len(uuids) == 0 {
		return []model.Room{}, nil
	}
	var rooms []model.Room
	if err := r.db.Where("uuid IN ?", uuids).Find(&rooms).Error; err != nil {
		return nil, wrapDBError(err, "batch find rooms")
	}
	return rooms, nil
}

// Create 创建房间
func (r *roomRepository) Create(room *model.Room) error {
	if err := r.db.Create(room).Error; err != nil {
		return wrapDBError(err, "create room")
	}
	return nil
}

// UpdateInviteCode 覆盖邀请码
func (r *roomRepository) UpdateInviteCode(uuid string, code string) error {
	if err := r.db.Model(&model.Room{}).Where("uuid = ?", uuid).Update("invite_code", code).Error; err != nil {
		return wrapDBErrorf(err, "update invite code room=%s", uuid)
	}
	return nil
}

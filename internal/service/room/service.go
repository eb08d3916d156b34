// Package room 实现聊天房间的创建、加入、退出与成员管理
package room

import (
	"context"
	"sort"

	"echo_chat_server/internal/dao/mysql/repository"
	myredis "echo_chat_server/internal/dao/redis"
	"echo_chat_server/internal/dto/request"
	"echo_chat_server/internal/dto/respond"
	"echo_chat_server/internal/model"
	"echo_chat_server/pkg/constants"
	"echo_chat_server/pkg/errorx"
	"echo_chat_server/pkg/util/random"

	"go.uber.org/zap"
)

// Service 房间服务
type Service struct {
	Repos *repository.Repositories
}

// NewService 创建房间服务实例
func NewService(repos *repository.Repositories) *Service {
	return &Service{Repos: repos}
}

// CreateRoom 创建房间
// 房间行与创建者的管理员成员关系在同一事务内写入，
// 不存在"有房间没房主"的中间状态
func (s *Service) CreateRoom(userId string, req request.CreateRoomRequest) (*respond.RoomInfoRespond, error) {
	newRoom := &model.Room{
		Uuid:       "R" + random.GetNowAndLenRandomString(constants.UUID_RANDOM_LENGTH),
		Name:       req.Name,
		Notice:     req.Notice,
		IsPrivate:  req.IsPrivate,
		InviteCode: random.GetInviteCode(constants.INVITE_CODE_LENGTH),
		OwnerId:    userId,
	}

	err := s.Repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Room.Create(newRoom); err != nil {
			return err
		}
		return tx.RoomMember.Create(&model.RoomMember{
			RoomUuid: newRoom.Uuid,
			UserUuid: userId,
			Role:     model.RoleAdmin,
		})
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("room created", zap.String("room", newRoom.Uuid), zap.String("owner", userId))

	return buildRoomInfo(newRoom, true), nil
}

// GetRoomInfo 查询房间详情
// 私有房间只有成员可见；邀请码只在成员视角返回
func (s *Service) GetRoomInfo(userId, roomId string) (*respond.RoomInfoRespond, error) {
	infoRoom, err := s.Repos.Room.FindByUuid(roomId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "room not found")
		}
		return nil, err
	}

	isMember := s.isMember(roomId, userId)
	if infoRoom.IsPrivate == 1 && !isMember {
		return nil, errorx.New(errorx.CodeForbidden, "not a room member")
	}
	return buildRoomInfo(infoRoom, isMember), nil
}

// GetRoomByInviteCode 通过邀请码查询房间（加入前预览）
func (s *Service) GetRoomByInviteCode(userId, code string) (*respond.RoomInfoRespond, error) {
	codeRoom, err := s.Repos.Room.FindByInviteCode(code)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "invite code not found")
		}
		return nil, err
	}
	return buildRoomInfo(codeRoom, s.isMember(codeRoom.Uuid, userId)), nil
}

// JoinRoomByInviteCode 通过邀请码加入房间
// 已是成员返回 Conflict；并发加入时由 (room_uuid, user_uuid)
// 复合唯一索引兜底，后插入的一方把唯一键冲突当作加入成功
func (s *Service) JoinRoomByInviteCode(userId string, req request.JoinRoomRequest) (*respond.RoomInfoRespond, error) {
	joinRoom, err := s.Repos.Room.FindByInviteCode(req.InviteCode)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "invite code not found")
		}
		return nil, err
	}

	if s.isMember(joinRoom.Uuid, userId) {
		return nil, errorx.New(errorx.CodeConflict, "already a room member")
	}

	err = s.Repos.RoomMember.Create(&model.RoomMember{
		RoomUuid: joinRoom.Uuid,
		UserUuid: userId,
		Role:     model.RoleMember,
	})
	if err != nil {
		// 两个请求同时通过上面的检查时，唯一索引让后到者冲突，
		// 此时用户已经在房间里，视为成功
		if errorx.GetCode(err) != errorx.CodeConflict {
			return nil, err
		}
	}
	zap.L().Info("user joined room", zap.String("room", joinRoom.Uuid), zap.String("user", userId))

	return buildRoomInfo(joinRoom, true), nil
}

// LeaveRoom 退出房间
// 房主不能退出自己的房间
func (s *Service) LeaveRoom(userId, roomId string) error {
	leaveRoom, err := s.Repos.Room.FindByUuid(roomId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "room not found")
		}
		return err
	}
	if _, err := s.Repos.RoomMember.FindMember(roomId, userId); err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeForbidden, "not a room member")
		}
		return err
	}
	if leaveRoom.OwnerId == userId {
		return errorx.New(errorx.CodeInvalidState, "room owner cannot leave the room")
	}
	return s.Repos.RoomMember.Delete(roomId, userId)
}

// RegenerateInviteCode 重新生成邀请码
// 仅管理员可操作；旧码即刻失效
func (s *Service) RegenerateInviteCode(userId, roomId string) (*respond.InviteCodeRespond, error) {
	if _, err := s.Repos.Room.FindByUuid(roomId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "room not found")
		}
		return nil, err
	}
	member, err := s.Repos.RoomMember.FindMember(roomId, userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeForbidden, "not a room member")
		}
		return nil, err
	}
	if member.Role != model.RoleAdmin {
		return nil, errorx.New(errorx.CodeForbidden, "admin role required")
	}

	// 邀请码有唯一索引，撞码时换一个重试
	var newCode string
	for attempt := 0; attempt < 3; attempt++ {
		newCode = random.GetInviteCode(constants.INVITE_CODE_LENGTH)
		err = s.Repos.Room.UpdateInviteCode(roomId, newCode)
		if err == nil {
			return &respond.InviteCodeRespond{RoomId: roomId, InviteCode: newCode}, nil
		}
		if errorx.GetCode(err) != errorx.CodeConflict {
			return nil, err
		}
	}
	return nil, err
}

// GetMyRoomList 查询我加入的房间列表
// 每个房间带最新一条消息摘要，按最新消息时间倒序排列；
// 没有消息的房间排在最后，按创建时间倒序
func (s *Service) GetMyRoomList(userId string) ([]respond.MyRoomListRespond, error) {
	roomUuids, err := s.Repos.RoomMember.FindRoomUuidsByUser(userId)
	if err != nil {
		return nil, err
	}
	if len(roomUuids) == 0 {
		return []respond.MyRoomListRespond{}, nil
	}
	rooms, err := s.Repos.Room.FindByUuids(roomUuids)
	if err != nil {
		return nil, err
	}

	type entry struct {
		rsp    respond.MyRoomListRespond
		sortBy int64
	}
	entries := make([]entry, 0, len(rooms))
	for i := range rooms {
		r := &rooms[i]
		item := respond.MyRoomListRespond{
			RoomId:      r.Uuid,
			Name:        r.Name,
			Notice:      r.Notice,
			UnreadCount: 0,
		}
		sortBy := r.CreatedAt.UnixMilli() - (1 << 40) // 无消息的房间排在有消息的后面
		latest, err := s.Repos.Message.FindLatestByRoom(r.Uuid, 0, 1)
		if err != nil {
			zap.L().Warn("load last message failed", zap.String("room", r.Uuid), zap.Error(err))
		} else if len(latest) > 0 {
			m := &latest[0]
			content := m.Content
			if m.IsDeleted == 1 {
				content = ""
			}
			item.LastMessage = &respond.LastMessagePreview{
				SendId:   m.SendId,
				SendName: m.SendName,
				Content:  content,
				SentAt:   m.CreatedAt.Format("2006-01-02 15:04:05"),
			}
			sortBy = m.CreatedAt.UnixMilli()
		}
		entries = append(entries, entry{rsp: item, sortBy: sortBy})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].sortBy > entries[j].sortBy
	})
	result := make([]respond.MyRoomListRespond, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.rsp)
	}
	return result, nil
}

// GetRoomMemberList 查询房间成员列表（含用户资料与在线状态）
// 仅成员可见
func (s *Service) GetRoomMemberList(userId, roomId string) ([]respond.RoomMemberRespond, error) {
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

	members, err := s.Repos.RoomMember.FindMembersWithUser(roomId)
	if err != nil {
		return nil, err
	}
	result := make([]respond.RoomMemberRespond, 0, len(members))
	for _, m := range members {
		result = append(result, respond.RoomMemberRespond{
			UserId:   m.UserId,
			Nickname: m.Nickname,
			Avatar:   m.Avatar,
			Presence: livePresence(m.UserId, m.Presence),
			Role:     m.Role,
			JoinedAt: m.JoinedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return result, nil
}

// isMember 查询用户是否为房间成员
func (s *Service) isMember(roomId, userId string) bool {
	_, err := s.Repos.RoomMember.FindMember(roomId, userId)
	return err == nil
}

// buildRoomInfo 组装房间详情响应
// 邀请码只在成员视角返回
func buildRoomInfo(r *model.Room, isMember bool) *respond.RoomInfoRespond {
	rsp := &respond.RoomInfoRespond{
		RoomId:    r.Uuid,
		Name:      r.Name,
		Notice:    r.Notice,
		IsPrivate: r.IsPrivate,
		OwnerId:   r.OwnerId,
		CreatedAt: r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if isMember {
		rsp.InviteCode = r.InviteCode
	}
	return rsp
}

// livePresence 成员列表里的在线状态：redis 心跳 key 为准，key 过期视为离线
func livePresence(userUuid string, dbPresence int8) int8 {
	presence, ok, err := myredis.GetPresence(context.Background(), userUuid)
	if err != nil {
		return dbPresence
	}
	if !ok {
		return model.PresenceOffline
	}
	return presence
}

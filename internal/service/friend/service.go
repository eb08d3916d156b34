// Package friend 实现好友申请状态机与好友关系查询
// 申请只能从 pending 转移到 accepted 或 rejected，二者均为终态
package friend

import (
	"context"

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

// Service 好友服务
type Service struct {
	Repos *repository.Repositories
}

// NewService 创建好友服务实例
func NewService(repos *repository.Repositories) *Service {
	return &Service{Repos: repos}
}

// ApplyFriend 发起好友申请
// 不能加自己；目标必须存在；双向任一方向已有 pending 或已是好友都拒绝；
// 被拒绝过的申请不挡路，可以重新发起
func (s *Service) ApplyFriend(userId string, req request.ApplyFriendRequest) error {
	if req.TargetId == userId {
		return errorx.New(errorx.CodeInvalidParam, "cannot send a friend request to yourself")
	}
	if _, err := s.Repos.User.FindByUuid(req.TargetId); err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "user not found")
		}
		return err
	}

	existing, err := s.Repos.Friendship.FindBetween(userId, req.TargetId)
	if err != nil {
		return err
	}
	for i := range existing {
		switch existing[i].Status {
		case model.FriendStatusPending:
			return errorx.New(errorx.CodeConflict, "a pending friend request already exists")
		case model.FriendStatusAccepted:
			return errorx.New(errorx.CodeConflict, "already friends")
		}
	}

	apply := &model.Friendship{
		Uuid:        "F" + random.GetNowAndLenRandomString(constants.UUID_RANDOM_LENGTH),
		ApplicantId: userId,
		TargetId:    req.TargetId,
		Status:      model.FriendStatusPending,
		Message:     req.Message,
	}
	if err := s.Repos.Friendship.Create(apply); err != nil {
		return err
	}
	zap.L().Info("friend request created",
		zap.String("apply", apply.Uuid),
		zap.String("applicant", userId),
		zap.String("target", req.TargetId))
	return nil
}

// AcceptFriendApply 通过好友申请
// 只有被申请人能处理；只能处理 pending 状态的申请
func (s *Service) AcceptFriendApply(userId string, req request.HandleFriendApplyRequest) error {
	return s.handleApply(userId, req.ApplyId, model.FriendStatusAccepted)
}

// RejectFriendApply 拒绝好友申请
// 拒绝是终态，但不阻止任何一方之后重新发起申请
func (s *Service) RejectFriendApply(userId string, req request.HandleFriendApplyRequest) error {
	return s.handleApply(userId, req.ApplyId, model.FriendStatusRejected)
}

// handleApply 好友申请状态转移
// 检查顺序：申请存在 → 操作者是被申请人 → 申请仍处于 pending
func (s *Service) handleApply(userId, applyId string, newStatus int8) error {
	apply, err := s.Repos.Friendship.FindByUuid(applyId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "friend request not found")
		}
		return err
	}
	if apply.TargetId != userId {
		return errorx.New(errorx.CodeForbidden, "only the addressee can handle the friend request")
	}
	if apply.Status != model.FriendStatusPending {
		return errorx.New(errorx.CodeInvalidState, "friend request already handled")
	}
	return s.Repos.Friendship.UpdateStatus(applyId, newStatus)
}

// GetFriendList 查询好友列表
// 合并两个方向的 accepted 关系，排除自己，按用户资料组装
// 关系是对称的：A 的列表里有 B，B 的列表里必然有 A
func (s *Service) GetFriendList(userId string) ([]respond.FriendRespond, error) {
	accepted, err := s.Repos.Friendship.FindAcceptedByUser(userId)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	friendIds := make([]string, 0, len(accepted))
	for i := range accepted {
		friendId := accepted[i].ApplicantId
		if friendId == userId {
			friendId = accepted[i].TargetId
		}
		if friendId == userId || seen[friendId] {
			continue
		}
		seen[friendId] = true
		friendIds = append(friendIds, friendId)
	}
	if len(friendIds) == 0 {
		return []respond.FriendRespond{}, nil
	}

	friends, err := s.Repos.User.FindByUuids(friendIds)
	if err != nil {
		return nil, err
	}
	result := make([]respond.FriendRespond, 0, len(friends))
	for i := range friends {
		f := &friends[i]
		result = append(result, respond.FriendRespond{
			UserId:    f.Uuid,
			Nickname:  f.Nickname,
			Avatar:    f.Avatar,
			Signature: f.Signature,
			Presence:  livePresence(f.Uuid, f.Presence),
		})
	}
	return result, nil
}

// GetFriendApplyList 查询发给我的待处理申请（含申请人资料）
func (s *Service) GetFriendApplyList(userId string) ([]respond.FriendApplyRespond, error) {
	pending, err := s.Repos.Friendship.FindPendingByTarget(userId)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return []respond.FriendApplyRespond{}, nil
	}

	applicantIds := make([]string, 0, len(pending))
	for i := range pending {
		applicantIds = append(applicantIds, pending[i].ApplicantId)
	}
	applicants, err := s.Repos.User.FindByUuids(applicantIds)
	if err != nil {
		return nil, err
	}
	profiles := make(map[string]*model.User, len(applicants))
	for i := range applicants {
		profiles[applicants[i].Uuid] = &applicants[i]
	}

	result := make([]respond.FriendApplyRespond, 0, len(pending))
	for i := range pending {
		p := &pending[i]
		item := respond.FriendApplyRespond{
			ApplyId:     p.Uuid,
			ApplicantId: p.ApplicantId,
			Message:     p.Message,
			CreatedAt:   p.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if profile, ok := profiles[p.ApplicantId]; ok {
			item.Nickname = profile.Nickname
			item.Avatar = profile.Avatar
		}
		result = append(result, item)
	}
	return result, nil
}

// livePresence 好友列表里的在线状态：redis 心跳 key 为准，key 过期视为离线
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

// Package user 实现用户账号、会话与在线状态相关的业务逻辑
package user

import (
	"context"
	"time"

	"echo_chat_server/internal/dao/mysql/repository"
	myredis "echo_chat_server/internal/dao/redis"
	"echo_chat_server/internal/dto/request"
	"echo_chat_server/internal/dto/respond"
	"echo_chat_server/internal/model"
	"echo_chat_server/pkg/constants"
	"echo_chat_server/pkg/errorx"
	"echo_chat_server/pkg/util/jwt"
	"echo_chat_server/pkg/util/random"

	"database/sql"

	"go.uber.org/zap"
)

// Service 用户服务
type Service struct {
	Repos *repository.Repositories
}

// NewService 创建用户服务实例
func NewService(repos *repository.Repositories) *Service {
	return &Service{Repos: repos}
}

// Register 用户注册
// 邮箱全局唯一，重复注册返回 CodeConflict
// 注册成功即视为登录，直接下发 token 对
func (s *Service) Register(req request.RegisterRequest) (*respond.LoginRespond, error) {
	// 先查邮箱占用，唯一索引兜底并发穿透
	if _, err := s.Repos.User.FindByEmail(req.Email); err == nil {
		return nil, errorx.New(errorx.CodeConflict, "email already registered")
	} else if !errorx.IsNotFound(err) {
		return nil, err
	}

	now := time.Now()
	newUser := &model.User{
		Uuid:        "U" + random.GetNowAndLenRandomString(constants.UUID_RANDOM_LENGTH),
		Email:       req.Email,
		Nickname:    req.Nickname,
		RawPassword: req.Password, // BeforeSave 钩子负责 bcrypt 加密
		Presence:    model.PresenceOnline,
		LastSeenAt:  sql.NullTime{Time: now, Valid: true},
	}
	if err := s.Repos.User.Create(newUser); err != nil {
		// 并发注册同一邮箱时唯一索引触发冲突
		if errorx.GetCode(err) == errorx.CodeConflict {
			return nil, errorx.New(errorx.CodeConflict, "email already registered")
		}
		return nil, err
	}
	zap.L().Info("user registered", zap.String("uuid", newUser.Uuid), zap.String("email", newUser.Email))

	return s.issueSession(newUser)
}

// Login 密码登录
// 用户不存在与密码错误返回同一条消息，不泄露邮箱是否注册
func (s *Service) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	loginUser, err := s.Repos.User.FindByEmail(req.Email)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUnauthorized, "invalid email or password")
		}
		return nil, err
	}
	if !loginUser.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeUnauthorized, "invalid email or password")
	}

	if err := s.Repos.User.UpdatePresence(loginUser.Uuid, model.PresenceOnline, time.Now()); err != nil {
		zap.L().Warn("update presence on login failed", zap.String("uuid", loginUser.Uuid), zap.Error(err))
	}
	loginUser.Presence = model.PresenceOnline

	return s.issueSession(loginUser)
}

// RefreshToken 用 Refresh Token 换取新的 token 对
// 校验三件事：token 本身有效、subject 正确、token ID 仍是该用户当前会话
// 刷新成功后轮换 token ID，旧 Refresh Token 随即失效
func (s *Service) RefreshToken(req request.RefreshTokenRequest) (*respond.LoginRespond, error) {
	claims, err := jwt.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, errorx.New(errorx.CodeUnauthorized, "invalid refresh token")
	}
	if claims.Subject != "refresh_token" || claims.TokenID == "" {
		return nil, errorx.New(errorx.CodeUnauthorized, "invalid refresh token")
	}

	ctx := context.Background()
	storedID, err := myredis.GetUserTokenID(ctx, claims.UserID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUnauthorized, "session expired, please login again")
		}
		return nil, err
	}
	// token ID 不一致说明其他端已重新登录，本会话被踢
	if storedID != claims.TokenID {
		return nil, errorx.New(errorx.CodeUnauthorized, "session superseded by a newer login")
	}

	refreshUser, err := s.Repos.User.FindByUuid(claims.UserID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUnauthorized, "invalid refresh token")
		}
		return nil, err
	}

	return s.issueSession(refreshUser)
}

// Logout 登出
// 删除 Refresh Token ID 与在线状态 key，数据库持久化离线状态
func (s *Service) Logout(userId string) error {
	ctx := context.Background()
	if err := myredis.DelUserTokenID(ctx, userId); err != nil {
		zap.L().Warn("del user token id failed", zap.String("uuid", userId), zap.Error(err))
	}
	if err := myredis.ClearPresence(ctx, userId); err != nil {
		zap.L().Warn("clear presence failed", zap.String("uuid", userId), zap.Error(err))
	}
	return s.Repos.User.UpdatePresence(userId, model.PresenceOffline, time.Now())
}

// GetUserInfo 查询用户资料
// 在线状态以 redis 心跳 key 为准，key 过期视为离线
func (s *Service) GetUserInfo(userId string) (*respond.UserInfoRespond, error) {
	infoUser, err := s.Repos.User.FindByUuid(userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "user not found")
		}
		return nil, err
	}
	return s.buildUserInfo(infoUser), nil
}

// UpdateUserInfo 修改用户资料
// 只更新请求中携带的字段
func (s *Service) UpdateUserInfo(userId string, req request.UpdateUserInfoRequest) (*respond.UserInfoRespond, error) {
	updateUser, err := s.Repos.User.FindByUuid(userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "user not found")
		}
		return nil, err
	}
	if req.Nickname != nil {
		updateUser.Nickname = *req.Nickname
	}
	if req.Avatar != nil {
		updateUser.Avatar = *req.Avatar
	}
	if req.Signature != nil {
		updateUser.Signature = *req.Signature
	}
	if err := s.Repos.User.Update(updateUser); err != nil {
		return nil, err
	}
	return s.buildUserInfo(updateUser), nil
}

// UpdatePresence 在线状态心跳
// 写 redis TTL key（供读路径快速判断），同时落库刷新 LastSeenAt
func (s *Service) UpdatePresence(userId string, req request.UpdatePresenceRequest) error {
	ctx := context.Background()
	if err := myredis.SetPresence(ctx, userId, req.Presence); err != nil {
		zap.L().Warn("set presence failed", zap.String("uuid", userId), zap.Error(err))
	}
	return s.Repos.User.UpdatePresence(userId, req.Presence, time.Now())
}

// issueSession 下发 token 对并登记会话
// 同一用户再次登录会覆盖 redis 中的 token ID，旧会话的刷新能力随之作废
func (s *Service) issueSession(sessionUser *model.User) (*respond.LoginRespond, error) {
	accessToken, err := jwt.GenerateAccessToken(sessionUser.Uuid)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "generate access token")
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(sessionUser.Uuid)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "generate refresh token")
	}

	ctx := context.Background()
	if err := myredis.SetUserTokenID(ctx, sessionUser.Uuid, tokenID); err != nil {
		return nil, err
	}
	if err := myredis.SetPresence(ctx, sessionUser.Uuid, model.PresenceOnline); err != nil {
		zap.L().Warn("set presence failed", zap.String("uuid", sessionUser.Uuid), zap.Error(err))
	}

	return &respond.LoginRespond{
		Uuid:         sessionUser.Uuid,
		Email:        sessionUser.Email,
		Nickname:     sessionUser.Nickname,
		Avatar:       sessionUser.Avatar,
		Signature:    sessionUser.Signature,
		Presence:     sessionUser.Presence,
		CreatedAt:    sessionUser.CreatedAt.Format("2006-01-02 15:04:05"),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// buildUserInfo 组装用户资料响应
func (s *Service) buildUserInfo(infoUser *model.User) *respond.UserInfoRespond {
	rsp := &respond.UserInfoRespond{
		Uuid:      infoUser.Uuid,
		Email:     infoUser.Email,
		Nickname:  infoUser.Nickname,
		Avatar:    infoUser.Avatar,
		Signature: infoUser.Signature,
		Presence:  effectivePresence(infoUser.Uuid, infoUser.Presence),
		CreatedAt: infoUser.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if infoUser.LastSeenAt.Valid {
		rsp.LastSeenAt = infoUser.LastSeenAt.Time.Format("2006-01-02 15:04:05")
	}
	return rsp
}

// effectivePresence 计算对外展示的在线状态
// redis key 存在以其为准；key 过期视为离线；redis 异常时退回数据库值
func effectivePresence(userUuid string, dbPresence int8) int8 {
	presence, ok, err := myredis.GetPresence(context.Background(), userUuid)
	if err != nil {
		return dbPresence
	}
	if !ok {
		return model.PresenceOffline
	}
	return presence
}

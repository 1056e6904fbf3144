package handler

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid/v5"
	"gorm.io/gorm"

	"resume-assist-go/internal/auth"
	"resume-assist-go/internal/config"
	"resume-assist-go/internal/constants"
	"resume-assist-go/internal/logger"
	"resume-assist-go/internal/storage"
	"resume-assist-go/internal/storage/models"
)

// UserHandler 用户注册、登录和资料管理
type UserHandler struct {
	store    *storage.Storage
	tokens   *auth.TokenManager
	cfg      *config.JWTConfig
	validate *validator.Validate
	now      func() time.Time
}

func NewUserHandler(store *storage.Storage, tokens *auth.TokenManager, cfg *config.JWTConfig) *UserHandler {
	return &UserHandler{
		store:    store,
		tokens:   tokens,
		cfg:      cfg,
		validate: validator.New(),
		now:      time.Now,
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=64"`
	Phone    string `json:"phone" validate:"omitempty,len=11"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Phone     string `json:"phone" validate:"omitempty,len=11"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

type usageRequest struct {
	UsageType string `json:"usage_type"`
}

// Register 注册新用户并直接返回登录态
func (h *UserHandler) Register(c context.Context, ctx *app.RequestContext) {
	var req registerRequest
	if err := ctx.BindJSON(&req); err != nil {
		Fail(ctx, constants.ErrCodeInvalidArgument, "请求体格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		Fail(ctx, constants.ErrCodeInvalidArgument, "注册信息不完整或格式错误")
		return
	}

	if _, err := h.store.SQLite.GetUserByUsername(c, req.Username); err == nil {
		Fail(ctx, constants.ErrCodeInvalidArgument, "用户名已存在")
		return
	}
	if _, err := h.store.SQLite.GetUserByEmail(c, req.Email); err == nil {
		Fail(ctx, constants.ErrCodeInvalidArgument, "邮箱已被注册")
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Msg("密码加密失败")
		Fail(ctx, constants.ErrCodeInternal, "注册失败")
		return
	}

	id, err := uuid.NewV7()
	if err != nil {
		logger.Ctx(c).Error().Err(err).Msg("生成用户ID失败")
		Fail(ctx, constants.ErrCodeInternal, "注册失败")
		return
	}

	user := &models.User{
		UserID:       id.String(),
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
	}
	if err := h.store.SQLite.CreateUser(c, user); err != nil {
		logger.Ctx(c).Error().Err(err).Str("username", req.Username).Msg("创建用户失败")
		Fail(ctx, constants.ErrCodeInternal, "注册失败")
		return
	}

	token, err := h.tokens.Issue(user.UserID)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Msg("签发Token失败")
		Fail(ctx, constants.ErrCodeInternal, "注册失败")
		return
	}

	logger.Ctx(c).Info().
		Str("user_id", user.UserID).
		Str("username", user.Username).
		Msg("用户注册成功")
	OK(ctx, map[string]interface{}{
		"token": token,
		"user":  userPayload(user),
	})
}

// Login 邮箱加密码登录
func (h *UserHandler) Login(c context.Context, ctx *app.RequestContext) {
	var req loginRequest
	if err := ctx.BindJSON(&req); err != nil {
		Fail(ctx, constants.ErrCodeInvalidArgument, "请求体格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		Fail(ctx, constants.ErrCodeInvalidArgument, "邮箱或密码格式错误")
		return
	}

	user, err := h.store.SQLite.GetUserByEmail(c, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(ctx, constants.ErrCodeUnauthorized, "邮箱或密码错误")
			return
		}
		logger.Ctx(c).Error().Err(err).Msg("查询用户失败")
		Fail(ctx, constants.ErrCodeInternal, "登录失败")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		Fail(ctx, constants.ErrCodeUnauthorized, "邮箱或密码错误")
		return
	}

	token, err := h.tokens.Issue(user.UserID)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Msg("签发Token失败")
		Fail(ctx, constants.ErrCodeInternal, "登录失败")
		return
	}

	logger.Ctx(c).Info().Str("user_id", user.UserID).Msg("用户登录成功")
	OK(ctx, map[string]interface{}{
		"token": token,
		"user":  userPayload(user),
	})
}

// Profile 返回当前用户资料
func (h *UserHandler) Profile(c context.Context, ctx *app.RequestContext) {
	user, ok := h.currentUser(c, ctx)
	if !ok {
		return
	}
	OK(ctx, userPayload(user))
}

// UpdateProfile 更新手机号和头像
func (h *UserHandler) UpdateProfile(c context.Context, ctx *app.RequestContext) {
	user, ok := h.currentUser(c, ctx)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := ctx.BindJSON(&req); err != nil {
		Fail(ctx, constants.ErrCodeInvalidArgument, "请求体格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		Fail(ctx, constants.ErrCodeInvalidArgument, "资料格式错误")
		return
	}

	if err := h.store.SQLite.UpdateUserProfile(c, user.UserID, req.Phone, req.AvatarURL); err != nil {
		logger.Ctx(c).Error().Err(err).Str("user_id", user.UserID).Msg("更新用户资料失败")
		Fail(ctx, constants.ErrCodeInternal, "更新资料失败")
		return
	}

	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	OK(ctx, userPayload(user))
}

// Membership 返回会员等级和到期时间
func (h *UserHandler) Membership(c context.Context, ctx *app.RequestContext) {
	user, ok := h.currentUser(c, ctx)
	if !ok {
		return
	}

	active := membershipActive(user, h.now())
	level := user.MembershipLevel
	if !active {
		level = constants.MembershipFree
	}
	OK(ctx, map[string]interface{}{
		"level":       level,
		"active":      active,
		"expire_time": user.MembershipExpireAt,
	})
}

// Usage 返回今日AI功能用量
func (h *UserHandler) Usage(c context.Context, ctx *app.RequestContext) {
	user, ok := h.currentUser(c, ctx)
	if !ok {
		return
	}

	today := h.now().Format("2006-01-02")
	count, err := h.store.SQLite.GetDailyUsage(c, user.UserID, today)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Str("user_id", user.UserID).Msg("查询用量失败")
		Fail(ctx, constants.ErrCodeInternal, "查询用量失败")
		return
	}
	OK(ctx, usagePayload(user, count, h.now()))
}

// RecordUsage 记录一次AI功能使用
func (h *UserHandler) RecordUsage(c context.Context, ctx *app.RequestContext) {
	user, ok := h.currentUser(c, ctx)
	if !ok {
		return
	}

	var req usageRequest
	if err := ctx.BindJSON(&req); err != nil {
		Fail(ctx, constants.ErrCodeInvalidArgument, "请求体格式错误")
		return
	}

	today := h.now().Format("2006-01-02")
	if !membershipActive(user, h.now()) {
		count, err := h.store.SQLite.GetDailyUsage(c, user.UserID, today)
		if err == nil && count >= constants.FreeDailyLimit {
			Fail(ctx, constants.ErrCodeQuotaExceeded, "今日免费额度已用完，请开通会员后继续使用")
			return
		}
	}

	count, err := h.store.SQLite.IncrDailyUsage(c, user.UserID, today)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Str("user_id", user.UserID).Msg("记录用量失败")
		Fail(ctx, constants.ErrCodeInternal, "记录用量失败")
		return
	}

	logger.Ctx(c).Info().
		Str("user_id", user.UserID).
		Str("usage_type", req.UsageType).
		Int("today_count", count).
		Msg("记录一次AI功能使用")
	OK(ctx, usagePayload(user, count, h.now()))
}

func (h *UserHandler) currentUser(c context.Context, ctx *app.RequestContext) (*models.User, bool) {
	userID := CurrentUserID(ctx)
	if userID == "" {
		Fail(ctx, constants.ErrCodeUnauthorized, "请先登录")
		return nil, false
	}
	user, err := h.store.SQLite.GetUserByID(c, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(ctx, constants.ErrCodeUnauthorized, "用户不存在，请重新登录")
			return nil, false
		}
		logger.Ctx(c).Error().Err(err).Str("user_id", userID).Msg("查询用户失败")
		Fail(ctx, constants.ErrCodeInternal, "查询用户失败")
		return nil, false
	}
	return user, true
}

func userPayload(user *models.User) map[string]interface{} {
	return map[string]interface{}{
		"user_id":              user.UserID,
		"username":             user.Username,
		"email":                user.Email,
		"phone":                user.Phone,
		"avatar_url":           user.AvatarURL,
		"membership_level":     user.MembershipLevel,
		"membership_expire_at": user.MembershipExpireAt,
		"created_at":           user.CreatedAt,
	}
}

func usagePayload(user *models.User, count int, now time.Time) map[string]interface{} {
	if membershipActive(user, now) {
		return map[string]interface{}{
			"today_count": count,
			"daily_limit": -1,
			"remaining":   -1,
		}
	}
	remaining := constants.FreeDailyLimit - count
	if remaining < 0 {
		remaining = 0
	}
	return map[string]interface{}{
		"today_count": count,
		"daily_limit": constants.FreeDailyLimit,
		"remaining":   remaining,
	}
}

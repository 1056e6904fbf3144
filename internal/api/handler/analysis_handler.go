package handler

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"resume-assist-go/internal/constants"
	"resume-assist-go/internal/logger"
	"resume-assist-go/internal/processor"
	"resume-assist-go/internal/storage"
	"resume-assist-go/internal/storage/models"
)

// AnalysisHandler AI分析相关接口。
// 免费用户每日限额，会员不限次，游客不记用量。
type AnalysisHandler struct {
	svc   *processor.Service
	store *storage.Storage
	now   func() time.Time
}

func NewAnalysisHandler(svc *processor.Service, store *storage.Storage) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, store: store, now: time.Now}
}

type analyzeRequest struct {
	ResumeID string `json:"resume_id"`
}

type matchRequest struct {
	ResumeID       string `json:"resume_id"`
	JobDescription string `json:"job_description"`
}

type compareRequest struct {
	ResumeID1      string `json:"resume_id_1"`
	ResumeID2      string `json:"resume_id_2"`
	JobDescription string `json:"job_description"`
}

// Analyze 简历深度分析
func (h *AnalysisHandler) Analyze(c context.Context, ctx *app.RequestContext) {
	var req analyzeRequest
	if err := ctx.BindJSON(&req); err != nil || req.ResumeID == "" {
		Fail(ctx, constants.ErrCodeInvalidArgument, "缺少resume_id参数")
		return
	}
	if !h.allowUsage(c, ctx) {
		return
	}

	_, doc, err := h.svc.GetResume(c, req.ResumeID)
	if err != nil {
		failResumeLookup(c, ctx, req.ResumeID, err)
		return
	}

	outcome, err := h.svc.Analyze(c, doc.RawText)
	if err != nil {
		failAnalysis(c, ctx, "简历分析失败", err)
		return
	}
	h.recordUsage(c, ctx, constants.ResultTypeAnalyze)
	OK(ctx, outcome)
}

// Match 简历与岗位JD匹配分析
func (h *AnalysisHandler) Match(c context.Context, ctx *app.RequestContext) {
	var req matchRequest
	if err := ctx.BindJSON(&req); err != nil || req.ResumeID == "" {
		Fail(ctx, constants.ErrCodeInvalidArgument, "缺少resume_id参数")
		return
	}
	if req.JobDescription == "" {
		Fail(ctx, constants.ErrCodeInvalidArgument, "缺少job_description参数")
		return
	}
	if !h.allowUsage(c, ctx) {
		return
	}

	_, doc, err := h.svc.GetResume(c, req.ResumeID)
	if err != nil {
		failResumeLookup(c, ctx, req.ResumeID, err)
		return
	}

	report, err := h.svc.Match(c, doc.RawText, req.JobDescription)
	if err != nil {
		failAnalysis(c, ctx, "匹配分析失败", err)
		return
	}
	h.recordUsage(c, ctx, constants.ResultTypeMatch)
	OK(ctx, report)
}

// Interview 生成面试问题，JD可选
func (h *AnalysisHandler) Interview(c context.Context, ctx *app.RequestContext) {
	var req matchRequest
	if err := ctx.BindJSON(&req); err != nil || req.ResumeID == "" {
		Fail(ctx, constants.ErrCodeInvalidArgument, "缺少resume_id参数")
		return
	}
	if !h.allowUsage(c, ctx) {
		return
	}

	_, doc, err := h.svc.GetResume(c, req.ResumeID)
	if err != nil {
		failResumeLookup(c, ctx, req.ResumeID, err)
		return
	}

	report, err := h.svc.InterviewQuestions(c, doc.RawText, req.JobDescription)
	if err != nil {
		failAnalysis(c, ctx, "生成面试问题失败", err)
		return
	}
	h.recordUsage(c, ctx, constants.ResultTypeInterview)
	OK(ctx, report)
}

// SelfIntro 生成自我介绍
func (h *AnalysisHandler) SelfIntro(c context.Context, ctx *app.RequestContext) {
	var req matchRequest
	if err := ctx.BindJSON(&req); err != nil || req.ResumeID == "" {
		Fail(ctx, constants.ErrCodeInvalidArgument, "缺少resume_id参数")
		return
	}
	if !h.allowUsage(c, ctx) {
		return
	}

	_, doc, err := h.svc.GetResume(c, req.ResumeID)
	if err != nil {
		failResumeLookup(c, ctx, req.ResumeID, err)
		return
	}

	report, err := h.svc.SelfIntroduction(c, doc.RawText, req.JobDescription)
	if err != nil {
		failAnalysis(c, ctx, "生成自我介绍失败", err)
		return
	}
	h.recordUsage(c, ctx, constants.ResultTypeSelfIntro)
	OK(ctx, report)
}

// Compare 对比两份简历，可附带JD作为参考
func (h *AnalysisHandler) Compare(c context.Context, ctx *app.RequestContext) {
	var req compareRequest
	if err := ctx.BindJSON(&req); err != nil || req.ResumeID1 == "" || req.ResumeID2 == "" {
		Fail(ctx, constants.ErrCodeInvalidArgument, "缺少resume_id_1或resume_id_2参数")
		return
	}
	if req.ResumeID1 == req.ResumeID2 {
		Fail(ctx, constants.ErrCodeInvalidArgument, "不能对比同一份简历，请选择两份不同的简历")
		return
	}

	_, doc1, err := h.svc.GetResume(c, req.ResumeID1)
	if err != nil {
		failResumeLookup(c, ctx, req.ResumeID1, err)
		return
	}
	_, doc2, err := h.svc.GetResume(c, req.ResumeID2)
	if err != nil {
		failResumeLookup(c, ctx, req.ResumeID2, err)
		return
	}

	result, err := h.svc.Compare(c, doc1.RawText, doc2.RawText, req.JobDescription)
	if err != nil {
		failAnalysis(c, ctx, "简历对比失败", err)
		return
	}
	OK(ctx, result)
}

// allowUsage 检查免费用户的每日用量，超限时写入响应并返回false
func (h *AnalysisHandler) allowUsage(c context.Context, ctx *app.RequestContext) bool {
	userID := CurrentUserID(ctx)
	if userID == "" {
		return true
	}

	user, err := h.store.SQLite.GetUserByID(c, userID)
	if err != nil {
		// 用户查不到时放行，按游客处理
		logger.Ctx(c).Warn().Err(err).Str("user_id", userID).Msg("查询用户失败，按游客处理")
		return true
	}
	if membershipActive(user, h.now()) {
		return true
	}

	today := h.now().Format("2006-01-02")
	count, err := h.store.SQLite.GetDailyUsage(c, userID, today)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Str("user_id", userID).Msg("查询用量失败")
		return true
	}
	if count >= constants.FreeDailyLimit {
		Fail(ctx, constants.ErrCodeQuotaExceeded, "今日免费额度已用完，请开通会员后继续使用")
		return false
	}
	return true
}

// recordUsage 登录用户成功调用后记一次用量
func (h *AnalysisHandler) recordUsage(c context.Context, ctx *app.RequestContext, usageType string) {
	userID := CurrentUserID(ctx)
	if userID == "" {
		return
	}
	today := h.now().Format("2006-01-02")
	if _, err := h.store.SQLite.IncrDailyUsage(c, userID, today); err != nil {
		logger.Ctx(c).Error().Err(err).
			Str("user_id", userID).
			Str("usage_type", usageType).
			Msg("记录用量失败")
	}
}

func membershipActive(user *models.User, now time.Time) bool {
	if user.MembershipLevel <= constants.MembershipFree {
		return false
	}
	if user.MembershipExpireAt == nil {
		return true
	}
	return user.MembershipExpireAt.After(now)
}

func failResumeLookup(c context.Context, ctx *app.RequestContext, resumeID string, err error) {
	if errors.Is(err, processor.ErrResumeNotFound) {
		Fail(ctx, constants.ErrCodeNotFound, err.Error())
		return
	}
	logger.Ctx(c).Error().Err(err).Str("resume_id", resumeID).Msg("查询简历失败")
	Fail(ctx, constants.ErrCodeInternal, "查询简历失败")
}

func failAnalysis(c context.Context, ctx *app.RequestContext, message string, err error) {
	if errors.Is(err, processor.ErrEmptyFile) {
		Fail(ctx, constants.ErrCodeInvalidArgument, "简历内容为空")
		return
	}
	logger.Ctx(c).Error().Err(err).Msg(message)
	Fail(ctx, constants.ErrCodeUpstream, message)
}

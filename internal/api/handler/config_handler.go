package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"resume-assist-go/internal/config"
	"resume-assist-go/internal/constants"
	"resume-assist-go/internal/logger"
)

// ConnectionTester 测试一组LLM配置是否可用
type ConnectionTester interface {
	TestConnection(ctx context.Context, settings config.LLMSettings) error
}

// ConfigHandler LLM接入配置的查看和修改。
// 保存和重置属于管理操作，由路由层的管理密钥中间件保护。
type ConfigHandler struct {
	settings *config.LLMSettingsHolder
	tester   ConnectionTester
}

func NewConfigHandler(settings *config.LLMSettingsHolder, tester ConnectionTester) *ConfigHandler {
	return &ConfigHandler{settings: settings, tester: tester}
}

type llmConfigRequest struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
	Model   string `json:"model"`
}

// Get 返回当前LLM配置，密钥脱敏
func (h *ConfigHandler) Get(c context.Context, ctx *app.RequestContext) {
	s := h.settings.Snapshot()
	OK(ctx, map[string]interface{}{
		"base_url":  s.BaseURL,
		"model":     s.Model,
		"api_key":   h.settings.MaskedAPIKey(),
		"is_custom": h.settings.IsCustom(),
	})
}

// Test 测试一组LLM配置的连通性。
// 请求体字段缺省时回落到当前生效配置。
func (h *ConfigHandler) Test(c context.Context, ctx *app.RequestContext) {
	var req llmConfigRequest
	if err := ctx.BindJSON(&req); err != nil {
		Fail(ctx, constants.ErrCodeInvalidArgument, "请求体格式错误")
		return
	}

	s := h.settings.Snapshot()
	if req.BaseURL != "" {
		s.BaseURL = req.BaseURL
	}
	if req.APIKey != "" {
		s.APIKey = req.APIKey
	}
	if req.Model != "" {
		s.Model = req.Model
	}

	if err := h.tester.TestConnection(c, s); err != nil {
		logger.Ctx(c).Warn().Err(err).Str("base_url", s.BaseURL).Msg("LLM连通性测试失败")
		Fail(ctx, constants.ErrCodeUpstream, err.Error())
		return
	}
	OK(ctx, map[string]interface{}{
		"message": "连接测试成功",
		"model":   s.Model,
	})
}

// Save 保存一组自定义LLM配置
func (h *ConfigHandler) Save(c context.Context, ctx *app.RequestContext) {
	var req llmConfigRequest
	if err := ctx.BindJSON(&req); err != nil {
		Fail(ctx, constants.ErrCodeInvalidArgument, "请求体格式错误")
		return
	}

	s := config.LLMSettings{
		BaseURL: req.BaseURL,
		APIKey:  req.APIKey,
		Model:   req.Model,
	}
	if err := h.settings.Save(s); err != nil {
		Fail(ctx, constants.ErrCodeInvalidArgument, err.Error())
		return
	}

	logger.Ctx(c).Info().
		Str("base_url", s.BaseURL).
		Str("model", s.Model).
		Msg("LLM配置已更新")
	OK(ctx, map[string]interface{}{
		"base_url":  s.BaseURL,
		"model":     s.Model,
		"api_key":   config.MaskAPIKey(s.APIKey),
		"is_custom": true,
	})
}

// Reset 恢复默认LLM配置
func (h *ConfigHandler) Reset(c context.Context, ctx *app.RequestContext) {
	if err := h.settings.Reset(); err != nil {
		logger.Ctx(c).Error().Err(err).Msg("重置LLM配置失败")
		Fail(ctx, constants.ErrCodeInternal, "重置配置失败")
		return
	}

	s := h.settings.Snapshot()
	logger.Ctx(c).Info().Msg("LLM配置已恢复默认")
	OK(ctx, map[string]interface{}{
		"base_url":  s.BaseURL,
		"model":     s.Model,
		"api_key":   h.settings.MaskedAPIKey(),
		"is_custom": false,
	})
}

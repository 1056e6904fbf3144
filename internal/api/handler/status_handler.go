package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"resume-assist-go/internal/agent"
	"resume-assist-go/internal/logger"
)

// StatusHandler LLM调用统计
type StatusHandler struct {
	stats *agent.UsageStats
}

func NewStatusHandler(stats *agent.UsageStats) *StatusHandler {
	return &StatusHandler{stats: stats}
}

// Get 返回累计调用次数和token用量
func (h *StatusHandler) Get(c context.Context, ctx *app.RequestContext) {
	OK(ctx, h.stats.Snapshot())
}

// Reset 清零统计并返回清零前的快照
func (h *StatusHandler) Reset(c context.Context, ctx *app.RequestContext) {
	snapshot := h.stats.Reset()
	logger.Ctx(c).Info().
		Int64("total_calls", snapshot.TotalCalls).
		Msg("LLM调用统计已清零")
	OK(ctx, snapshot)
}

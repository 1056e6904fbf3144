package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"resume-assist-go/internal/constants"
	"resume-assist-go/internal/job"
)

// JobHandler 职位检索和JD解析
type JobHandler struct {
	client job.Client
}

func NewJobHandler(client job.Client) *JobHandler {
	return &JobHandler{client: client}
}

type parseJDRequest struct {
	JobDescription string `json:"job_description"`
}

// Hot 返回热门职位
func (h *JobHandler) Hot(c context.Context, ctx *app.RequestContext) {
	jobs := h.client.HotJobs()
	OK(ctx, map[string]interface{}{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

// Search 按关键词、城市和类别搜索职位
func (h *JobHandler) Search(c context.Context, ctx *app.RequestContext) {
	keyword := ctx.Query("keyword")
	location := ctx.Query("location")
	category := ctx.Query("category")
	page := queryInt(ctx, "page", 1)
	limit := queryInt(ctx, "limit", 10)

	jobs := h.client.Search(keyword, location, category, page, limit)
	OK(ctx, map[string]interface{}{
		"jobs":  jobs,
		"page":  page,
		"limit": limit,
	})
}

// ParseJD 从职位描述文本里解析出结构化字段
func (h *JobHandler) ParseJD(c context.Context, ctx *app.RequestContext) {
	var req parseJDRequest
	if err := ctx.BindJSON(&req); err != nil || req.JobDescription == "" {
		Fail(ctx, constants.ErrCodeInvalidArgument, "缺少job_description参数")
		return
	}
	OK(ctx, h.client.ParseJD(req.JobDescription))
}

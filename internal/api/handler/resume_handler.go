package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"resume-assist-go/internal/constants"
	"resume-assist-go/internal/logger"
	"resume-assist-go/internal/processor"
	"resume-assist-go/internal/render"
	"resume-assist-go/internal/storage/models"
	"resume-assist-go/internal/types"
)

// ResumeHandler 简历上传、查询和导出
type ResumeHandler struct {
	svc      *processor.Service
	renderer *render.Registry
}

func NewResumeHandler(svc *processor.Service, renderer *render.Registry) *ResumeHandler {
	return &ResumeHandler{svc: svc, renderer: renderer}
}

// Upload 处理简历上传，multipart字段名为file
func (h *ResumeHandler) Upload(c context.Context, ctx *app.RequestContext) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		Fail(ctx, constants.ErrCodeInvalidArgument, "文件未找到")
		return
	}
	if fileHeader.Size > constants.MaxUploadSize {
		Fail(ctx, constants.ErrCodeInvalidArgument, "文件大小超过限制")
		return
	}

	data, err := readMultipartFile(fileHeader)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Str("filename", fileHeader.Filename).Msg("读取上传文件失败")
		Fail(ctx, constants.ErrCodeInternal, "读取上传文件失败")
		return
	}

	userID := CurrentUserID(ctx)
	result, err := h.svc.ProcessUpload(c, userID, fileHeader.Filename, data)
	if err != nil {
		failUpload(ctx, err)
		return
	}
	OK(ctx, result)
}

// List 分页列出简历
func (h *ResumeHandler) List(c context.Context, ctx *app.RequestContext) {
	page := queryInt(ctx, "page", 1)
	pageSize := queryInt(ctx, "page_size", 20)

	resumes, total, err := h.svc.ListResumes(c, CurrentUserID(ctx), page, pageSize)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Msg("查询简历列表失败")
		Fail(ctx, constants.ErrCodeInternal, "查询简历列表失败")
		return
	}

	items := make([]map[string]interface{}, 0, len(resumes))
	for i := range resumes {
		items = append(items, resumeSummary(&resumes[i]))
	}
	OK(ctx, map[string]interface{}{
		"resumes":   items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Get 返回单份简历的全文和结构化字段
func (h *ResumeHandler) Get(c context.Context, ctx *app.RequestContext) {
	resumeID := ctx.Param("id")
	resume, doc, err := h.svc.GetResume(c, resumeID)
	if err != nil {
		if errors.Is(err, processor.ErrResumeNotFound) {
			Fail(ctx, constants.ErrCodeNotFound, err.Error())
			return
		}
		logger.Ctx(c).Error().Err(err).Str("resume_id", resumeID).Msg("查询简历失败")
		Fail(ctx, constants.ErrCodeInternal, "查询简历失败")
		return
	}

	summary := resumeSummary(resume)
	summary["raw_text"] = resume.RawText
	summary["document"] = doc
	OK(ctx, summary)
}

// Delete 删除简历
func (h *ResumeHandler) Delete(c context.Context, ctx *app.RequestContext) {
	resumeID := ctx.Param("id")
	if err := h.svc.DeleteResume(c, resumeID); err != nil {
		if errors.Is(err, processor.ErrResumeNotFound) {
			Fail(ctx, constants.ErrCodeNotFound, err.Error())
			return
		}
		logger.Ctx(c).Error().Err(err).Str("resume_id", resumeID).Msg("删除简历失败")
		Fail(ctx, constants.ErrCodeInternal, "删除简历失败")
		return
	}
	OK(ctx, map[string]interface{}{"resume_id": resumeID, "deleted": true})
}

// Export 按模板和格式导出简历文件。
// 未知模板回退到modern，未知格式报参数错误。
func (h *ResumeHandler) Export(c context.Context, ctx *app.RequestContext) {
	resumeID := ctx.Param("id")
	template := ctx.DefaultQuery("template", "modern")
	format := ctx.DefaultQuery("format", "pdf")

	_, doc, err := h.svc.GetResume(c, resumeID)
	if err != nil {
		if errors.Is(err, processor.ErrResumeNotFound) {
			Fail(ctx, constants.ErrCodeNotFound, err.Error())
			return
		}
		logger.Ctx(c).Error().Err(err).Str("resume_id", resumeID).Msg("查询简历失败")
		Fail(ctx, constants.ErrCodeInternal, "查询简历失败")
		return
	}

	var (
		renderer    render.Renderer
		contentType string
		ext         string
	)
	switch format {
	case "pdf":
		renderer = h.renderer.PDF(template)
		contentType = "application/pdf"
		ext = "pdf"
	case "word", "docx":
		renderer = h.renderer.Word()
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
		ext = "docx"
	case "html":
		renderer = h.renderer.HTML()
		contentType = "text/html; charset=utf-8"
		ext = "html"
	default:
		Fail(ctx, constants.ErrCodeInvalidArgument, fmt.Sprintf("不支持的导出格式: %s", format))
		return
	}

	payload, err := renderer.Render(doc)
	if err != nil {
		logger.Ctx(c).Error().Err(err).
			Str("resume_id", resumeID).
			Str("template", template).
			Str("format", format).
			Msg("导出简历失败")
		Fail(ctx, constants.ErrCodeInternal, "导出简历失败")
		return
	}

	filename := exportFilename(doc, ext)
	ctx.Header("Content-Type", contentType)
	ctx.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	ctx.Write(payload)
}

// Templates 返回可用的导出模板和格式
func (h *ResumeHandler) Templates(c context.Context, ctx *app.RequestContext) {
	OK(ctx, map[string]interface{}{
		"templates": render.Templates(),
		"formats":   render.Formats(),
	})
}

func failUpload(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, processor.ErrUnsupportedFileType),
		errors.Is(err, processor.ErrFileTooLarge),
		errors.Is(err, processor.ErrEmptyFile):
		Fail(ctx, constants.ErrCodeInvalidArgument, err.Error())
	case errors.Is(err, processor.ErrUnparseableFile):
		Fail(ctx, constants.ErrCodeUnparseable, err.Error())
	default:
		Fail(ctx, constants.ErrCodeInternal, "简历处理失败")
	}
}

func readMultipartFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("打开上传文件失败: %w", err)
	}
	defer file.Close()
	return io.ReadAll(file)
}

func resumeSummary(resume *models.Resume) map[string]interface{} {
	return map[string]interface{}{
		"resume_id":   resume.ResumeID,
		"filename":    resume.OriginalFilename,
		"file_ext":    resume.FileExt,
		"text_length": len([]rune(resume.RawText)),
		"created_at":  resume.CreatedAt,
	}
}

func exportFilename(doc *types.ResumeDocument, ext string) string {
	name := doc.Name
	if name == "" {
		name = "resume"
	}
	return fmt.Sprintf("%s_简历.%s", name, ext)
}

func queryInt(ctx *app.RequestContext, key string, fallback int) int {
	raw := ctx.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

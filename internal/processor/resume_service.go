package processor

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"resume-assist-go/internal/agent"
	"resume-assist-go/internal/comparator"
	"resume-assist-go/internal/config"
	"resume-assist-go/internal/constants"
	"resume-assist-go/internal/extractor"
	"resume-assist-go/internal/logger"
	"resume-assist-go/internal/parser"
	"resume-assist-go/internal/storage"
	"resume-assist-go/internal/storage/models"
	"resume-assist-go/internal/tracing"
	"resume-assist-go/internal/types"
)

var tracer = otel.Tracer("resume-assist-go/processor")

// Service 简历处理服务，聚合文本提取、字段解析、对比和LLM分析。
// 采用Facade模式，handler只依赖这一层。
type Service struct {
	cfg           *config.Config
	storage       *storage.Storage
	textExtractor *parser.TextExtractor
	fields        *extractor.FieldExtractor
	comparator    *comparator.Comparator
	gateway       *agent.Gateway
}

// NewService 创建简历处理服务
func NewService(cfg *config.Config, store *storage.Storage, gateway *agent.Gateway) *Service {
	return &Service{
		cfg:           cfg,
		storage:       store,
		textExtractor: parser.NewTextExtractor(&cfg.Parser),
		fields:        extractor.NewFieldExtractor(),
		comparator:    comparator.NewComparator(),
		gateway:       gateway,
	}
}

// WithTextExtractor 替换文本提取器，测试时注入
func (s *Service) WithTextExtractor(te *parser.TextExtractor) *Service {
	s.textExtractor = te
	return s
}

// UploadResult 上传处理结果
type UploadResult struct {
	ResumeID   string                `json:"resume_id"`
	Filename   string                `json:"filename"`
	Reused     bool                  `json:"reused"`
	TextLength int                   `json:"text_length"`
	RawText    string                `json:"raw_text"`
	Document   *types.ResumeDocument `json:"document"`
}

// ProcessUpload 处理一次简历上传：校验、去重、提取文本、解析字段、落库。
// userID为空表示游客上传。
func (s *Service) ProcessUpload(ctx context.Context, userID, filename string, data []byte) (*UploadResult, error) {
	ctx, span := tracer.Start(ctx, "Service.ProcessUpload")
	defer span.End()
	span.SetAttributes(
		attribute.String("upload.filename", filename),
		attribute.Int("upload.size", len(data)),
	)

	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(data) > constants.MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := constants.AllowedExtensions[strings.TrimPrefix(ext, ".")]; !ok {
		return nil, ErrUnsupportedFileType
	}

	sum := md5.Sum(data)
	digest := hex.EncodeToString(sum[:])

	// 内容去重：同一文件重复上传时直接复用已有解析结果
	if existing := s.findExistingResume(ctx, digest); existing != nil {
		var doc types.ResumeDocument
		if err := models.FromJSON(existing.ParsedFieldsJSON, &doc); err == nil && doc.RawText != "" {
			span.SetAttributes(attribute.Bool("upload.reused", true))
			return &UploadResult{
				ResumeID:   existing.ResumeID,
				Filename:   existing.OriginalFilename,
				Reused:     true,
				TextLength: len([]rune(existing.RawText)),
				RawText:    existing.RawText,
				Document:   &doc,
			}, nil
		}
	}

	text := s.textExtractor.Extract(ctx, data, ext)
	if strings.TrimSpace(text) == "" {
		span.SetStatus(codes.Error, "unparseable file")
		return nil, ErrUnparseableFile
	}

	doc := s.fields.Parse(text)

	newUUID, err := uuid.NewV7()
	if err != nil {
		return nil, errors.New("生成简历ID失败")
	}
	resumeID := newUUID.String()

	parsedJSON, err := models.ToJSON(doc)
	if err != nil {
		return nil, err
	}

	resume := &models.Resume{
		ResumeID:         resumeID,
		OriginalFilename: filename,
		FileExt:          ext,
		FileMD5:          digest,
		RawText:          text,
		ParsedFieldsJSON: parsedJSON,
	}
	if userID != "" {
		resume.UserID = &userID
	}

	// 原始文件归档是旁路动作，失败不影响主流程
	if s.storage.HasMinIO() {
		if ossPath, err := s.storage.MinIO.UploadOriginalFile(ctx, resumeID, ext, data); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("归档原始文件失败")
		} else {
			resume.OriginalFilePathOSS = ossPath
		}
	}

	span.SetAttributes(attribute.String("resume.preview", tracing.SafeResumeContent(text)))

	if err := s.storage.SQLite.SaveResume(ctx, resume); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, err
	}

	if s.storage.HasRedis() {
		if _, err := s.storage.Redis.RegisterFileMD5(ctx, digest); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("记录文件MD5失败")
		}
	}

	logger.Ctx(ctx).Info().
		Str("resume_id", resumeID).
		Str("filename", filename).
		Int("text_length", len([]rune(text))).
		Msg("简历上传处理完成")

	return &UploadResult{
		ResumeID:   resumeID,
		Filename:   filename,
		TextLength: len([]rune(text)),
		RawText:    text,
		Document:   doc,
	}, nil
}

// findExistingResume 按内容MD5查找可复用的历史简历
func (s *Service) findExistingResume(ctx context.Context, digest string) *models.Resume {
	if s.storage.HasRedis() {
		seen, err := s.storage.Redis.HasFileMD5(ctx, digest)
		if err == nil && !seen {
			return nil
		}
	}

	existing, err := s.storage.SQLite.FindResumeByMD5(ctx, digest)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Ctx(ctx).Warn().Err(err).Msg("按MD5查询简历失败")
		}
		return nil
	}
	return existing
}

// GetResume 获取简历记录及其结构化解析结果
func (s *Service) GetResume(ctx context.Context, resumeID string) (*models.Resume, *types.ResumeDocument, error) {
	resume, err := s.storage.SQLite.GetResumeByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrResumeNotFound
		}
		return nil, nil, err
	}

	var doc types.ResumeDocument
	if err := models.FromJSON(resume.ParsedFieldsJSON, &doc); err != nil {
		// 解析快照损坏时从原文重建
		logger.Ctx(ctx).Warn().Err(err).Str("resume_id", resumeID).Msg("解析结果快照损坏，从原文重建")
		rebuilt := s.fields.Parse(resume.RawText)
		return resume, rebuilt, nil
	}
	if doc.RawText == "" {
		doc.RawText = resume.RawText
	}
	return resume, &doc, nil
}

// ListResumes 分页列出简历
func (s *Service) ListResumes(ctx context.Context, userID string, page, pageSize int) ([]models.Resume, int64, error) {
	return s.storage.SQLite.ListResumes(ctx, userID, page, pageSize)
}

// DeleteResume 删除一份简历记录
func (s *Service) DeleteResume(ctx context.Context, resumeID string) error {
	if err := s.storage.SQLite.DeleteResume(ctx, resumeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResumeNotFound
		}
		return fmt.Errorf("删除简历失败: %w", err)
	}
	logger.Ctx(ctx).Info().Str("resume_id", resumeID).Msg("简历已删除")
	return nil
}

// ParseText 直接解析一段简历文本，不落库
func (s *Service) ParseText(text string) *types.ResumeDocument {
	return s.fields.Parse(text)
}

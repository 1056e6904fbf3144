package parser

import (
	"context"
	"strings"
	"unicode/utf8"

	"resume-assist-go/internal/config"
	"resume-assist-go/internal/logger"
)

// TextExtractor 文本提取器，把上传的文件字节转换为UTF-8纯文本。
// 任何一步失败都吞掉错误并返回空串，调用方把空结果当作"无法解析"处理。
type TextExtractor struct {
	cfg *config.ParserConfig
	ocr OCREngine
}

// OCREngine 图片文字识别引擎
type OCREngine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// NewTextExtractor 创建文本提取器
func NewTextExtractor(cfg *config.ParserConfig) *TextExtractor {
	t := &TextExtractor{cfg: cfg}
	if cfg != nil && cfg.OCREnabled {
		t.ocr = NewTesseractEngine(cfg.OCRLanguages)
	}
	return t
}

// WithOCREngine 替换OCR引擎，测试时注入
func (t *TextExtractor) WithOCREngine(engine OCREngine) *TextExtractor {
	t.ocr = engine
	return t
}

// Extract 按声明的扩展名分发提取，扩展名不做内容嗅探
func (t *TextExtractor) Extract(ctx context.Context, data []byte, ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))

	switch ext {
	case "txt":
		if !utf8.Valid(data) {
			logger.Ctx(ctx).Warn().Msg("文本文件不是有效的UTF-8编码")
			return ""
		}
		return string(data)
	case "pdf":
		text, err := extractPDFText(data)
		if err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("PDF文本提取失败")
			return ""
		}
		return text
	case "docx", "doc":
		text, err := extractDocxText(data)
		if err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("ext", ext).Msg("Word文本提取失败")
			return ""
		}
		return text
	case "jpg", "jpeg", "png":
		if t.ocr == nil {
			logger.Ctx(ctx).Warn().Msg("OCR未启用，图片文件无法提取文本")
			return ""
		}
		text, err := t.ocr.Recognize(ctx, data)
		if err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("图片OCR识别失败")
			return ""
		}
		return text
	default:
		logger.Ctx(ctx).Warn().Str("ext", ext).Msg("不支持的文件扩展名")
		return ""
	}
}

package parser

import (
	"context"
	"testing"

	"resume-assist-go/internal/config"

	"github.com/stretchr/testify/assert"
)

// 固定返回值的OCR引擎，用于测试注入
type stubOCREngine struct {
	text string
	err  error
}

func (s *stubOCREngine) Recognize(ctx context.Context, image []byte) (string, error) {
	return s.text, s.err
}

func TestExtractTxt(t *testing.T) {
	e := NewTextExtractor(&config.ParserConfig{})
	got := e.Extract(context.Background(), []byte("张三\n13800138000"), "txt")
	assert.Equal(t, "张三\n13800138000", got)
}

func TestExtractTxtRejectsInvalidUTF8(t *testing.T) {
	e := NewTextExtractor(&config.ParserConfig{})
	// "张三"的GBK编码，不是合法UTF-8
	gbk := []byte{0xd5, 0xc5, 0xc8, 0xfd}
	got := e.Extract(context.Background(), gbk, "txt")
	assert.Empty(t, got, "非UTF-8文本应退化为空串而不是乱码")
}

func TestExtractCorruptInputsReturnEmpty(t *testing.T) {
	e := NewTextExtractor(&config.ParserConfig{})
	garbage := []byte("这不是一个合法的二进制文档")

	for _, ext := range []string{"pdf", "docx", "doc"} {
		got := e.Extract(context.Background(), garbage, ext)
		assert.Empty(t, got, "损坏的%s文件应返回空串而不是报错", ext)
	}

	// 空输入同样返回空串
	for _, ext := range []string{"pdf", "docx", "txt"} {
		got := e.Extract(context.Background(), nil, ext)
		assert.Empty(t, got)
	}
}

func TestExtractImageWithoutOCR(t *testing.T) {
	// OCR未启用时图片提取退化为空串
	e := NewTextExtractor(&config.ParserConfig{OCREnabled: false})
	got := e.Extract(context.Background(), []byte{0x89, 0x50, 0x4e, 0x47}, "png")
	assert.Empty(t, got)
}

func TestExtractImageWithStubOCR(t *testing.T) {
	e := NewTextExtractor(&config.ParserConfig{}).WithOCREngine(&stubOCREngine{text: "识别出的文字"})
	got := e.Extract(context.Background(), []byte{0x89, 0x50}, "jpg")
	assert.Equal(t, "识别出的文字", got)
}

func TestExtractUnsupportedExtension(t *testing.T) {
	e := NewTextExtractor(&config.ParserConfig{})
	got := e.Extract(context.Background(), []byte("data"), "exe")
	assert.Empty(t, got)
}

func TestExtractExtensionNormalization(t *testing.T) {
	e := NewTextExtractor(&config.ParserConfig{})
	got := e.Extract(context.Background(), []byte("hello"), ".TXT")
	assert.Equal(t, "hello", got)
}

package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine 基于tesseract的OCR引擎，默认中英双语识别
type TesseractEngine struct {
	languages []string
}

// NewTesseractEngine 创建OCR引擎，languages形如 "chi_sim+eng"
func NewTesseractEngine(languages string) *TesseractEngine {
	langs := strings.Split(languages, "+")
	if len(langs) == 0 || langs[0] == "" {
		langs = []string{"chi_sim", "eng"}
	}
	return &TesseractEngine{languages: langs}
}

// Recognize 识别图片中的文字
func (e *TesseractEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.languages...); err != nil {
		return "", fmt.Errorf("设置OCR语言失败: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("加载图片失败: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR识别失败: %w", err)
	}
	return text, nil
}

package parser

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	docxParaEndRe = regexp.MustCompile(`</w:p>`)
	docxTagRe     = regexp.MustCompile(`<[^>]+>`)
)

// extractDocxText 提取docx文档XML中的段落文本（含表格单元格，按文档顺序）
func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("解析docx失败: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()

	// 段落结束符换成换行，其余XML标签全部剥掉
	content = docxParaEndRe.ReplaceAllString(content, "\n")
	content = docxTagRe.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	// 压缩多余空行
	lines := strings.Split(content, "\n")
	var sb strings.Builder
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

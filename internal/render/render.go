package render

import (
	"strings"
	"time"

	"resume-assist-go/internal/config"
	"resume-assist-go/internal/types"
)

// Renderer 把规范化简历渲染为某种格式的字节流
type Renderer interface {
	Render(doc *types.ResumeDocument) ([]byte, error)
}

// TemplateInfo PDF模板元信息，前端模板选择列表用
type TemplateInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Preview     string `json:"preview"`
}

// FormatInfo 导出格式元信息
type FormatInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Extensions  []string `json:"extensions"`
}

// Registry 按模板名分发PDF渲染器，并持有Word/HTML渲染器。
// 未知模板名一律回退到modern。
type Registry struct {
	pdf  map[string]Renderer
	word Renderer
	html Renderer
}

func NewRegistry(cfg *config.RenderConfig) *Registry {
	return &Registry{
		pdf: map[string]Renderer{
			"modern":   &ModernRenderer{cfg: cfg},
			"business": &BusinessRenderer{cfg: cfg},
			"creative": &CreativeRenderer{cfg: cfg},
			"classic":  &ClassicRenderer{cfg: cfg},
			"compact":  &CompactRenderer{cfg: cfg},
		},
		word: &WordRenderer{},
		html: &HTMLRenderer{},
	}
}

// PDF 返回指定模板的渲染器，未知模板回退modern
func (r *Registry) PDF(template string) Renderer {
	if rd, ok := r.pdf[template]; ok {
		return rd
	}
	return r.pdf["modern"]
}

func (r *Registry) Word() Renderer { return r.word }

func (r *Registry) HTML() Renderer { return r.html }

// Templates 可用PDF模板列表
func Templates() []TemplateInfo {
	return []TemplateInfo{
		{ID: "modern", Name: "现代简约", Description: "清新简洁的设计，适合技术岗位", Preview: "modern"},
		{ID: "business", Name: "商务专业", Description: "经典稳重的设计，适合投行/咨询", Preview: "business"},
		{ID: "creative", Name: "创意设计", Description: "突出个性的设计，适合设计/产品", Preview: "creative"},
		{ID: "classic", Name: "经典传统", Description: "正式稳重风格，适合外企/国企", Preview: "classic"},
		{ID: "compact", Name: "紧凑简洁", Description: "信息密度高，适合经历丰富者", Preview: "compact"},
	}
}

// Formats 可用导出格式列表
func Formats() []FormatInfo {
	return []FormatInfo{
		{ID: "pdf", Name: "PDF文档", Description: "标准PDF格式，适合打印和投递", Extensions: []string{".pdf"}},
		{ID: "word", Name: "Word文档", Description: "Word格式(.docx)，方便编辑修改", Extensions: []string{".docx"}},
		{ID: "html", Name: "网页格式", Description: "HTML格式，可在浏览器中查看", Extensions: []string{".html"}},
	}
}

// formatDate 把简历里的日期字符串归一到"2006.01"。
// 进行中标记统一显示为"至今"，解析不了的原样返回。
func formatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	switch s {
	case "至今", "现在", "Present", "Current":
		return "至今"
	}
	for _, layout := range []string{"2006-01", "2006/01", "2006.01", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006.01")
		}
	}
	return s
}

func dateRange(start, end string) string {
	return formatDate(start) + " - " + formatDate(end)
}

// clipRunes 按字符数截断，避免把多字节字符切半
func clipRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

func capSlice(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

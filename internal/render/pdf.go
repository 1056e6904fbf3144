package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog/log"

	"resume-assist-go/internal/config"
	"resume-assist-go/internal/types"
)

// 配色与前端导出页保持一致
var (
	colorPrimary   = [3]int{0x66, 0x7e, 0xea}
	colorSecondary = [3]int{0x76, 0x4b, 0xa2}
	colorDark      = [3]int{0x1e, 0x29, 0x3b}
	colorGray      = [3]int{0x64, 0x74, 0x8b}
	colorLight     = [3]int{0xe2, 0xe8, 0xf0}
	colorBlack     = [3]int{0x00, 0x00, 0x00}
)

// pdfDoc 包装fpdf，统一字体注册和常用排版原语。
// 配置了CJK字体时全部文本走该字体，否则退回内置西文字体，
// 此时中文内容无法正确显示，但生成流程不报错。
type pdfDoc struct {
	*fpdf.Fpdf
	font   string
	serif  string
	hasCJK bool
}

func newPDFDoc(cfg *config.RenderConfig, marginMM float64) *pdfDoc {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(true, marginMM)

	d := &pdfDoc{Fpdf: pdf, font: "Helvetica", serif: "Times"}
	if cfg != nil && cfg.FontPath != "" {
		name := cfg.FontName
		if name == "" {
			name = "cjk"
		}
		pdf.AddUTF8Font(name, "", cfg.FontPath)
		pdf.AddUTF8Font(name, "B", cfg.FontPath)
		if pdf.Err() {
			log.Warn().Err(pdf.Error()).Str("font_path", cfg.FontPath).
				Msg("加载CJK字体失败，退回内置西文字体")
			pdf.ClearError()
		} else {
			d.font = name
			d.serif = name
			d.hasCJK = true
		}
	}
	pdf.AddPage()
	return d
}

func (d *pdfDoc) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Output(&buf); err != nil {
		return nil, fmt.Errorf("生成PDF失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *pdfDoc) contentWidth() float64 {
	w, _ := d.GetPageSize()
	left, _, right, _ := d.GetMargins()
	return w - left - right
}

func (d *pdfDoc) textColor(c [3]int) { d.SetTextColor(c[0], c[1], c[2]) }

// title 姓名主标题，居中
func (d *pdfDoc) title(s string, size float64, c [3]int) {
	if s == "" {
		return
	}
	d.SetFont(d.font, "B", size)
	d.textColor(c)
	d.CellFormat(0, size*0.55, s, "", 1, "C", false, 0, "")
	d.Ln(2)
}

// meta 居中的灰色辅助行，联系方式等
func (d *pdfDoc) meta(s string) {
	if s == "" {
		return
	}
	d.SetFont(d.font, "", 10)
	d.textColor(colorGray)
	d.CellFormat(0, 5.5, s, "", 1, "C", false, 0, "")
}

// heading1 章节一级标题
func (d *pdfDoc) heading1(s string) {
	d.Ln(4)
	d.SetFont(d.font, "B", 16)
	d.textColor(colorSecondary)
	d.CellFormat(0, 8, s, "", 1, "L", false, 0, "")
	d.rule(colorLight, 1.0)
	d.Ln(2)
}

// heading2 章节二级标题
func (d *pdfDoc) heading2(s string) {
	d.Ln(3)
	d.SetFont(d.font, "B", 14)
	d.textColor(colorDark)
	d.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	d.Ln(1)
}

// bold 加粗正文行，公司名/项目名/学校名用
func (d *pdfDoc) bold(s string) {
	d.SetFont(d.font, "B", 10)
	d.textColor(colorDark)
	d.CellFormat(0, 5.5, s, "", 1, "L", false, 0, "")
}

// body 正文段落，自动换行
func (d *pdfDoc) body(s string) {
	if s == "" {
		return
	}
	d.SetFont(d.font, "", 10)
	d.textColor(colorDark)
	d.MultiCell(0, 5.5, s, "", "L", false)
}

// small 小号灰色行，日期/职位/技术栈用
func (d *pdfDoc) small(s string) {
	if s == "" {
		return
	}
	d.SetFont(d.font, "", 9)
	d.textColor(colorGray)
	d.MultiCell(0, 4.5, s, "", "L", false)
}

// rule 水平分隔线，widthFrac为内容区宽度占比
func (d *pdfDoc) rule(c [3]int, widthFrac float64) {
	left, _, _, _ := d.GetMargins()
	cw := d.contentWidth()
	y := d.GetY() + 1
	d.SetDrawColor(c[0], c[1], c[2])
	d.SetLineWidth(0.3)
	x := left
	if widthFrac < 1.0 {
		x = left + cw*(1-widthFrac)/2
	}
	d.Line(x, y, x+cw*widthFrac, y)
	d.SetY(y + 2)
}

// titleWithDate 左侧加粗标题、右侧灰色日期的一行
func (d *pdfDoc) titleWithDate(heading, date string) {
	cw := d.contentWidth()
	d.SetFont(d.font, "B", 10)
	d.textColor(colorDark)
	d.CellFormat(cw-36, 5.5, heading, "", 0, "L", false, 0, "")
	d.SetFont(d.font, "", 9)
	d.textColor(colorGray)
	d.CellFormat(36, 5.5, date, "", 1, "R", false, 0, "")
}

// centeredHeader modern/business共用的居中头部
func (d *pdfDoc) centeredHeader(doc *types.ResumeDocument) {
	d.title(doc.Name, 24, colorPrimary)
	d.meta(doc.JobTitle)

	contact := joinNonEmpty(" | ", doc.Phone, doc.Email, doc.Location)
	d.meta(contact)
	d.Ln(3)
	d.rule(colorPrimary, 0.3)
	d.Ln(2)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

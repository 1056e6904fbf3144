package render

import (
	"strings"

	"resume-assist-go/internal/config"
	"resume-assist-go/internal/types"
)

// CreativeRenderer 创意设计风格，彩色头部加侧栏双栏布局
type CreativeRenderer struct {
	cfg *config.RenderConfig
}

const (
	creativeSidebarWidth = 60.0
	creativeColumnGap    = 5.0
)

func (r *CreativeRenderer) Render(doc *types.ResumeDocument) ([]byte, error) {
	d := newPDFDoc(r.cfg, 15)

	pageW, _ := d.GetPageSize()
	left, _, right, _ := d.GetMargins()

	// 渐变头部降级为主色色块
	const bandH = 36.0
	d.SetFillColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	d.Rect(0, 0, pageW, bandH, "F")
	d.SetXY(left, 8)
	d.SetFont(d.font, "B", 28)
	d.SetTextColor(255, 255, 255)
	d.CellFormat(0, 12, strings.ToUpper(doc.Name), "", 1, "L", false, 0, "")
	if doc.JobTitle != "" {
		d.SetX(left)
		d.SetFont(d.font, "", 14)
		d.SetTextColor(0xf1, 0xf5, 0xf9)
		d.CellFormat(0, 8, doc.JobTitle, "", 1, "L", false, 0, "")
	}
	d.SetY(bandH + 8)
	topY := d.GetY()

	// 左侧栏
	d.SetRightMargin(pageW - left - creativeSidebarWidth)
	r.sidebar(d, doc)
	sideY := d.GetY()

	// 右侧主栏
	d.SetRightMargin(right)
	d.SetLeftMargin(left + creativeSidebarWidth + creativeColumnGap)
	d.SetXY(left+creativeSidebarWidth+creativeColumnGap, topY)
	r.mainColumn(d, doc)
	mainY := d.GetY()

	d.SetLeftMargin(left)
	if sideY > mainY {
		d.SetY(sideY)
	}

	return d.bytes()
}

func (r *CreativeRenderer) sidebar(d *pdfDoc, doc *types.ResumeDocument) {
	d.heading2("联系方式")
	d.small(doc.Phone)
	d.small(doc.Email)
	d.small(doc.Location)

	if len(doc.Skills) > 0 {
		d.Ln(6)
		d.heading2("技能专长")
		for _, skill := range capSlice(doc.Skills, 12) {
			d.small("▸ " + skill)
		}
	}

	if len(doc.Certificates) > 0 {
		d.Ln(6)
		d.heading2("证书资质")
		for _, cert := range capSlice(doc.Certificates, 5) {
			d.small("▸ " + cert)
		}
	}

	if len(doc.Awards) > 0 {
		d.Ln(6)
		d.heading2("荣誉奖励")
		for _, award := range capSlice(doc.Awards, 5) {
			d.small("★ " + award)
		}
	}
}

func (r *CreativeRenderer) mainColumn(d *pdfDoc, doc *types.ResumeDocument) {
	if doc.SelfIntroduction != "" {
		d.heading1("关于我")
		d.body(strings.TrimSpace(doc.SelfIntroduction))
		d.Ln(4)
	}

	if len(doc.WorkExperience) > 0 {
		d.heading1("工作经历")
		for i, exp := range doc.WorkExperience {
			if i >= 4 {
				break
			}
			d.bold(exp.Company)
			d.small(joinNonEmpty(" | ", exp.Position, dateRange(exp.StartDate, exp.EndDate)))
			d.body(clipRunes(exp.Description, 300))
			d.Ln(3)
		}
	}

	if len(doc.ProjectExperience) > 0 {
		d.heading1("项目作品")
		for i, proj := range doc.ProjectExperience {
			if i >= 4 {
				break
			}
			d.bold(proj.Name)
			d.small(proj.Role)
			if len(proj.TechStack) > 0 {
				d.small("[" + strings.Join(capSlice(proj.TechStack, 5), " | ") + "]")
			}
			d.body(clipRunes(proj.Description, 200))
			d.Ln(3)
		}
	}

	if len(doc.Education) > 0 {
		d.heading1("教育背景")
		for i, edu := range doc.Education {
			if i >= 2 {
				break
			}
			d.bold(edu.School)
			d.small(joinNonEmpty(" | ", edu.Degree, edu.Major))
			d.Ln(2)
		}
	}
}

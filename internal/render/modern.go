package render

import (
	"strings"

	"resume-assist-go/internal/config"
	"resume-assist-go/internal/types"
)

// ModernRenderer 现代简约风格，清新简洁
type ModernRenderer struct {
	cfg *config.RenderConfig
}

func (r *ModernRenderer) Render(doc *types.ResumeDocument) ([]byte, error) {
	d := newPDFDoc(r.cfg, 15)

	d.centeredHeader(doc)

	if doc.SelfIntroduction != "" {
		d.heading2("个人简介")
		d.body(strings.TrimSpace(doc.SelfIntroduction))
	}

	if len(doc.Skills) > 0 {
		d.heading2("专业技能")
		text := strings.Join(doc.Skills, " | ")
		if len(doc.Skills) > 10 {
			text = strings.Join(doc.Skills[:10], " | ") + "..."
		}
		d.body(text)
	}

	if len(doc.WorkExperience) > 0 {
		d.heading2("工作经历")
		for _, exp := range doc.WorkExperience {
			d.titleWithDate(exp.Company, dateRange(exp.StartDate, exp.EndDate))
			d.small(exp.Position)
			d.body(clipRunes(exp.Description, 500))
			for _, ach := range capSlice(exp.Achievements, 3) {
				d.small("• " + ach)
			}
			d.Ln(3)
		}
	}

	if len(doc.ProjectExperience) > 0 {
		d.heading2("项目经历")
		for _, proj := range doc.ProjectExperience {
			d.titleWithDate(proj.Name, dateRange(proj.StartDate, proj.EndDate))
			if proj.Role != "" {
				d.small("职责: " + proj.Role)
			}
			if len(proj.TechStack) > 0 {
				d.small("技术: " + strings.Join(capSlice(proj.TechStack, 8), " | "))
			}
			d.body(clipRunes(proj.Description, 300))
			d.Ln(3)
		}
	}

	if len(doc.Education) > 0 {
		d.heading2("教育背景")
		for _, edu := range doc.Education {
			d.titleWithDate(edu.School, dateRange(edu.StartDate, edu.EndDate))
			d.small(joinNonEmpty(" | ", edu.Degree, edu.Major))
			d.Ln(2)
		}
	}

	if len(doc.Certificates) > 0 {
		d.heading2("证书资质")
		d.body(strings.Join(capSlice(doc.Certificates, 6), " | "))
	}

	if len(doc.Awards) > 0 {
		d.heading2("荣誉奖励")
		for _, award := range capSlice(doc.Awards, 5) {
			d.body("• " + award)
		}
	}

	return d.bytes()
}

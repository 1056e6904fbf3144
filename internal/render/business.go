package render

import (
	"strings"

	"resume-assist-go/internal/config"
	"resume-assist-go/internal/types"
)

// BusinessRenderer 商务专业风格，经典稳重。
// 工作经历放最前，技能放在教育之后，成果不截断。
type BusinessRenderer struct {
	cfg *config.RenderConfig
}

func (r *BusinessRenderer) Render(doc *types.ResumeDocument) ([]byte, error) {
	d := newPDFDoc(r.cfg, 18)

	d.centeredHeader(doc)
	d.Ln(4)

	if len(doc.WorkExperience) > 0 {
		d.heading1("工作经历")
		for _, exp := range doc.WorkExperience {
			d.bold(exp.Company)
			line := joinNonEmpty(" | ", exp.Position, dateRange(exp.StartDate, exp.EndDate))
			d.small(line)
			d.body(strings.TrimSpace(exp.Description))
			for _, ach := range exp.Achievements {
				d.small("◆ " + ach)
			}
			d.Ln(4)
		}
	}

	if len(doc.ProjectExperience) > 0 {
		d.heading1("项目经验")
		for _, proj := range doc.ProjectExperience {
			d.bold(proj.Name)
			d.small(joinNonEmpty(" | ", proj.Role, dateRange(proj.StartDate, proj.EndDate)))
			if len(proj.TechStack) > 0 {
				d.small("技术栈：" + strings.Join(capSlice(proj.TechStack, 6), " | "))
			}
			d.body(strings.TrimSpace(proj.Description))
			d.Ln(3)
		}
	}

	if len(doc.Education) > 0 {
		d.heading1("教育背景")
		for _, edu := range doc.Education {
			d.bold(edu.School)
			d.small(joinNonEmpty(" | ", edu.Degree, edu.Major))
			d.small(dateRange(edu.StartDate, edu.EndDate))
			d.Ln(2)
		}
	}

	if len(doc.Skills) > 0 {
		d.heading1("专业技能")
		for i := 0; i < len(doc.Skills); i += 6 {
			end := i + 6
			if end > len(doc.Skills) {
				end = len(doc.Skills)
			}
			d.body(strings.Join(doc.Skills[i:end], " • "))
		}
	}

	if len(doc.Certificates) > 0 || len(doc.Awards) > 0 {
		d.heading1("其他信息")
		if len(doc.Certificates) > 0 {
			d.bold("证书：")
			for _, cert := range capSlice(doc.Certificates, 4) {
				d.small("• " + cert)
			}
		}
		if len(doc.Awards) > 0 {
			d.Ln(2)
			d.bold("荣誉：")
			for _, award := range capSlice(doc.Awards, 4) {
				d.small("• " + award)
			}
		}
	}

	return d.bytes()
}

package render

import (
	"strings"

	"resume-assist-go/internal/config"
	"resume-assist-go/internal/types"
)

// CompactRenderer 紧凑简洁风格，单行条目高信息密度
type CompactRenderer struct {
	cfg *config.RenderConfig
}

func (r *CompactRenderer) Render(doc *types.ResumeDocument) ([]byte, error) {
	d := newPDFDoc(r.cfg, 12)

	if doc.Name != "" {
		d.SetFont(d.font, "B", 20)
		d.textColor(colorPrimary)
		d.CellFormat(0, 10, strings.ToUpper(doc.Name), "", 1, "L", false, 0, "")
	}
	d.small(doc.JobTitle)
	d.meta(joinNonEmpty(" | ", doc.Phone, doc.Email, doc.Location))
	d.Ln(3)

	if len(doc.Skills) > 0 {
		d.body("【技能】" + strings.Join(capSlice(doc.Skills, 15), " | "))
		d.Ln(2)
	}

	if len(doc.WorkExperience) > 0 {
		d.bold("【工作经历】")
		for i, exp := range doc.WorkExperience {
			if i >= 5 {
				break
			}
			line := joinNonEmpty(" • ", exp.Company, exp.Position,
				dateRange(exp.StartDate, exp.EndDate))
			d.small(line)
			for _, ach := range capSlice(exp.Achievements, 2) {
				d.small("  ▶ " + clipRunes(ach, 80))
			}
			d.Ln(1)
		}
	}

	if len(doc.ProjectExperience) > 0 {
		d.bold("【项目经历】")
		for i, proj := range doc.ProjectExperience {
			if i >= 3 {
				break
			}
			header := proj.Name
			if proj.Role != "" {
				header = proj.Name + " (" + proj.Role + ")"
			}
			d.small(header)
			if len(proj.TechStack) > 0 {
				d.small("  [" + strings.Join(capSlice(proj.TechStack, 4), ", ") + "]")
			}
			d.Ln(1)
		}
	}

	if len(doc.Education) > 0 {
		d.bold("【教育背景】")
		for i, edu := range doc.Education {
			if i >= 2 {
				break
			}
			line := joinNonEmpty(" • ", edu.School,
				strings.TrimSpace(edu.Degree+" "+edu.Major),
				dateRange(edu.StartDate, edu.EndDate))
			d.small(line)
		}
	}

	return d.bytes()
}

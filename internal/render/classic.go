package render

import (
	"strings"

	"resume-assist-go/internal/config"
	"resume-assist-go/internal/types"
)

// ClassicRenderer 经典传统风格，黑白衬线排版，教育经历靠前
type ClassicRenderer struct {
	cfg *config.RenderConfig
}

func (r *ClassicRenderer) Render(doc *types.ResumeDocument) ([]byte, error) {
	d := newPDFDoc(r.cfg, 20)

	if doc.Name != "" {
		d.SetFont(d.serif, "B", 22)
		d.textColor(colorBlack)
		d.CellFormat(0, 11, doc.Name, "", 1, "C", false, 0, "")
		d.Ln(2)
	}
	if doc.JobTitle != "" {
		d.SetFont(d.serif, "", 12)
		d.SetTextColor(0x55, 0x55, 0x55)
		d.CellFormat(0, 6, doc.JobTitle, "", 1, "C", false, 0, "")
	}

	contact := make([]string, 0, 3)
	if doc.Phone != "" {
		contact = append(contact, "电话: "+doc.Phone)
	}
	if doc.Email != "" {
		contact = append(contact, "邮箱: "+doc.Email)
	}
	if doc.Location != "" {
		contact = append(contact, "地点: "+doc.Location)
	}
	d.meta(strings.Join(contact, " | "))
	d.Ln(4)
	d.rule(colorBlack, 1.0)
	d.Ln(4)

	if doc.SelfIntroduction != "" {
		d.heading2("个人概述")
		d.body(strings.TrimSpace(doc.SelfIntroduction))
	}

	if len(doc.Education) > 0 {
		d.heading2("教育经历")
		for _, edu := range doc.Education {
			d.bold(joinNonEmpty(" ", edu.School, joinNonEmpty(" | ", edu.Degree, edu.Major)))
			d.small(dateRange(edu.StartDate, edu.EndDate))
			d.Ln(2)
		}
	}

	if len(doc.WorkExperience) > 0 {
		d.heading2("工作经验")
		for _, exp := range doc.WorkExperience {
			d.bold(joinNonEmpty(" | ", exp.Company, exp.Position))
			d.small(dateRange(exp.StartDate, exp.EndDate))
			d.body(strings.TrimSpace(exp.Description))
			d.Ln(3)
		}
	}

	if len(doc.ProjectExperience) > 0 {
		d.heading2("项目经验")
		for i, proj := range doc.ProjectExperience {
			if i >= 4 {
				break
			}
			header := proj.Name
			if proj.Role != "" {
				header = proj.Name + " (" + proj.Role + ")"
			}
			d.bold(header)
			d.small(dateRange(proj.StartDate, proj.EndDate))
			d.body(clipRunes(proj.Description, 400))
			d.Ln(2)
		}
	}

	if len(doc.Skills) > 0 {
		d.heading2("专业技能")
		for i := 0; i < len(doc.Skills); i += 8 {
			end := i + 8
			if end > len(doc.Skills) {
				end = len(doc.Skills)
			}
			d.body(strings.Join(doc.Skills[i:end], " • "))
		}
	}

	return d.bytes()
}

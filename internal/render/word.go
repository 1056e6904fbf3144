package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"resume-assist-go/internal/types"
)

// WordRenderer 生成.docx文档，章节结构与PDF导出保持一致
type WordRenderer struct{}

// docx字号单位是半磅
const (
	wordNameSize    = "48"
	wordHeadingSize = "32"
)

func (r *WordRenderer) Render(doc *types.ResumeDocument) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	if doc.Name != "" {
		p := w.AddParagraph().Justification("center")
		p.AddText(doc.Name).Size(wordNameSize).Bold().Color("667EEA")
	}
	if doc.JobTitle != "" {
		w.AddParagraph().Justification("center").AddText(doc.JobTitle)
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
	if len(contact) > 0 {
		w.AddParagraph().Justification("center").AddText(strings.Join(contact, " | "))
	}

	if doc.SelfIntroduction != "" {
		addHeading(w, "个人简介")
		w.AddParagraph().AddText(strings.TrimSpace(doc.SelfIntroduction))
	}

	if len(doc.Skills) > 0 {
		addHeading(w, "专业技能")
		w.AddParagraph().AddText(strings.Join(doc.Skills, " | "))
	}

	if len(doc.WorkExperience) > 0 {
		addHeading(w, "工作经历")
		for _, exp := range doc.WorkExperience {
			addWorkItem(w, exp)
		}
	}

	if len(doc.ProjectExperience) > 0 {
		addHeading(w, "项目经历")
		for _, proj := range doc.ProjectExperience {
			addProjectItem(w, proj)
		}
	}

	if len(doc.Education) > 0 {
		addHeading(w, "教育背景")
		for _, edu := range doc.Education {
			addEducationItem(w, edu)
		}
	}

	if len(doc.Certificates) > 0 {
		addHeading(w, "证书资质")
		for _, cert := range doc.Certificates {
			w.AddParagraph().AddText("• " + cert)
		}
	}

	if len(doc.Awards) > 0 {
		addHeading(w, "荣誉奖励")
		for _, award := range doc.Awards {
			w.AddParagraph().AddText("• " + award)
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("生成Word文档失败: %w", err)
	}
	return buf.Bytes(), nil
}

func addHeading(w *docx.Docx, title string) {
	w.AddParagraph().AddText(title).Size(wordHeadingSize).Bold().Color("764BA2")
}

func addWorkItem(w *docx.Docx, exp types.Engagement) {
	if exp.Company != "" {
		p := w.AddParagraph()
		p.AddText(exp.Company).Bold()
		if exp.Position != "" {
			p.AddText(" | " + exp.Position)
		}
		if exp.StartDate != "" || exp.EndDate != "" {
			p.AddText(" (" + dateRange(exp.StartDate, exp.EndDate) + ")")
		}
	}
	if exp.Description != "" {
		w.AddParagraph().AddText(strings.TrimSpace(exp.Description))
	}
	for _, ach := range capSlice(exp.Achievements, 3) {
		w.AddParagraph().AddText("◆ " + ach)
	}
	w.AddParagraph()
}

func addProjectItem(w *docx.Docx, proj types.Engagement) {
	if proj.Name != "" {
		p := w.AddParagraph()
		p.AddText(proj.Name).Bold()
		if proj.Role != "" {
			p.AddText(" | " + proj.Role)
		}
	}
	if len(proj.TechStack) > 0 {
		w.AddParagraph().AddText("技术栈: " + strings.Join(proj.TechStack, " | "))
	}
	if proj.Description != "" {
		w.AddParagraph().AddText(strings.TrimSpace(proj.Description))
	}
	w.AddParagraph()
}

func addEducationItem(w *docx.Docx, edu types.EducationRecord) {
	if edu.School != "" {
		p := w.AddParagraph()
		p.AddText(edu.School).Bold()
		if info := joinNonEmpty(" ", edu.Degree, edu.Major); info != "" {
			p.AddText(" | " + info)
		}
	}
	if edu.StartDate != "" || edu.EndDate != "" {
		w.AddParagraph().AddText(dateRange(edu.StartDate, edu.EndDate))
	}
	w.AddParagraph()
}

package extractor

import (
	"strings"

	"resume-assist-go/internal/types"
)

// 兜底扫描用的项目关键词
var projectLineKeywords = []string{"项目", "系统", "平台", "产品"}

// FieldExtractor 字段提取器，把纯文本启发式地切分成结构化简历。
// 纯函数，无状态，对相同输入产出结构相等的结果。
type FieldExtractor struct{}

// NewFieldExtractor 创建字段提取器
func NewFieldExtractor() *FieldExtractor {
	return &FieldExtractor{}
}

// Parse 解析简历文本。任何缺失的章节退化为空值，不报错。
func (f *FieldExtractor) Parse(text string) *types.ResumeDocument {
	doc := &types.ResumeDocument{RawText: text}
	if strings.TrimSpace(text) == "" {
		return doc
	}

	// 联系方式和求职意向在全文范围独立提取
	contact := ExtractContactInfo(text)
	doc.Name = contact.Name
	doc.Phone = contact.Phone
	doc.Email = contact.Email
	doc.Location = contact.Location
	doc.Blog = contact.Blog
	doc.Github = contact.Github

	intention := ExtractJobIntention(text)
	doc.JobTitle = intention.JobTitle
	doc.ExpectedSalary = intention.ExpectedSalary
	doc.ExpectedCity = intention.ExpectedCity
	doc.JobType = intention.JobType

	// 技能在全文范围提取，不限定章节
	doc.Skills = ExtractSkills(text)

	// 章节切分与子解析
	blocks := splitSections(text)
	doc.WorkExperience = parseWorkBlock(blocks.work)
	doc.ProjectExperience = parseProjectBlock(blocks.project)
	doc.Education = parseEducationBlock(blocks.education)
	doc.Certificates = parseListLines(blocks.certificate)
	doc.Awards = parseListLines(blocks.award)
	doc.SelfIntroduction = strings.Join(blocks.selfIntro, "\n")

	// 标题扫描一无所获时，退化为全文正则扫描的低置信度兜底
	if len(doc.WorkExperience) == 0 && len(doc.ProjectExperience) == 0 && len(doc.Education) == 0 {
		f.fallbackSweep(text, doc)
	}

	return doc
}

// fallbackSweep 低精度的兜底提取：按行扫描特征关键词
func (f *FieldExtractor) fallbackSweep(text string, doc *types.ResumeDocument) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// 含单位后缀的行，或带日期跨度且含职位后缀的行，视作一条工作经历
		start, end, hasSpan := findDateSpan(line)
		if containsAny(line, companySuffixes) || (hasSpan && containsAny(line, titleSuffixes)) {
			eng := types.Engagement{Company: fieldWithSuffix(line, companySuffixes), Description: line}
			if hasSpan {
				eng.StartDate, eng.EndDate = start, end
			}
			if title := fieldWithSuffix(line, titleSuffixes); title != "" {
				eng.Position = title
			}
			doc.WorkExperience = append(doc.WorkExperience, eng)
			continue
		}

		if containsAny(line, schoolSuffixes) {
			rec := types.EducationRecord{School: fieldWithSuffix(line, schoolSuffixes), Description: line}
			if start, end, ok := findDateSpan(line); ok {
				rec.StartDate, rec.EndDate = start, end
			}
			doc.Education = append(doc.Education, rec)
			continue
		}

		if containsAny(line, projectLineKeywords) {
			doc.ProjectExperience = append(doc.ProjectExperience, types.Engagement{
				Name:        stripBullet(line),
				Description: line,
				TechStack:   ExtractSkills(line),
			})
		}
	}
}

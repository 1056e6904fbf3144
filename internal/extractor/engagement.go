package extractor

import (
	"regexp"
	"strings"

	"resume-assist-go/internal/types"
)

var (
	// 日期跨度：2019-06 ~ 2022.03 / 2019-2022 / 2020年3月-至今
	dateSpanRe = regexp.MustCompile(`(?i)(\d{4}(?:[./\-年]\d{1,2}月?)?)\s*[-–—~～至到]{1,2}\s*(\d{4}(?:[./\-年]\d{1,2}月?)?|至今|现在|present|current)`)

	// 量化成果：百分比、提升/降低类动词+数字、完成/实现打头
	achievementRe = regexp.MustCompile(`(\d+(?:\.\d+)?\s*%)|((提升|提高|降低|减少|增长|节省|优化|缩短).{0,12}\d)|^[\s•·◆\-]*(完成|实现|达成)`)

	// 担任/作为 后面的角色短语
	projectRoleRe = regexp.MustCompile(`(?:担任|作为)\s*([^\s，。,：:；;]{2,15})`)
)

// 单位名称后缀关键词
var companySuffixes = []string{
	"公司", "集团", "科技", "有限", "企业", "研究院", "研究所", "银行", "事务所", "工作室",
	"Inc", "Ltd", "LLC", "Corp",
}

// 职位后缀关键词
var titleSuffixes = []string{
	"工程师", "经理", "总监", "主管", "专家", "架构师", "设计师", "顾问", "分析师",
	"负责人", "助理", "专员", "研究员", "科学家", "开发",
}

// 学校机构关键词
var schoolSuffixes = []string{"大学", "学院", "学校", "University", "College", "Institute"}

// 学历枚举
var degreeLabels = []string{"博士", "硕士", "MBA", "本科", "学士", "大专", "专科", "PhD", "Master", "Bachelor"}

// 专业词表
var majorVocabulary = []string{
	"计算机科学", "计算机", "软件工程", "电子信息", "通信工程", "信息管理", "自动化",
	"数据科学", "人工智能", "数学", "物理", "统计", "金融", "会计", "经济", "管理",
	"市场营销", "机械", "电气", "英语", "法学", "新闻",
}

// normalizeDate 把"2020年3月"规整成"2020-3"，其余格式原样返回
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "月")
	s = strings.ReplaceAll(s, "年", "-")
	return s
}

// findDateSpan 在一行里找日期跨度，返回(start, end, found)
func findDateSpan(line string) (string, string, bool) {
	m := dateSpanRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return normalizeDate(m[1]), normalizeDate(m[2]), true
}

// containsAny 判断字符串是否包含任一关键词
func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// fieldWithSuffix 返回行内首个包含关键词的空白分隔字段；
// 无空白分隔时返回整行。
func fieldWithSuffix(line string, suffixes []string) string {
	fields := strings.Fields(line)
	for _, f := range fields {
		if containsAny(f, suffixes) {
			return f
		}
	}
	if containsAny(line, suffixes) {
		return strings.TrimSpace(line)
	}
	return ""
}

// splitEntries 把章节正文按含日期跨度的行切分成多个条目。
// 首个日期行之前的内容归入第一个条目；没有任何日期行时整块作为一个条目。
func splitEntries(lines []string) [][]string {
	var entries [][]string
	var current []string
	started := false

	for _, line := range lines {
		if _, _, ok := findDateSpan(line); ok {
			if started && len(current) > 0 {
				entries = append(entries, current)
				current = nil
			}
			started = true
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		entries = append(entries, current)
	}
	return entries
}

// parseWorkBlock 解析工作经历正文
func parseWorkBlock(lines []string) []types.Engagement {
	if len(lines) == 0 {
		return nil
	}

	var result []types.Engagement
	for _, entry := range splitEntries(lines) {
		var eng types.Engagement
		for _, line := range entry {
			if eng.StartDate == "" {
				if start, end, ok := findDateSpan(line); ok {
					eng.StartDate, eng.EndDate = start, end
				}
			}
			if eng.Company == "" {
				if company := fieldWithSuffix(line, companySuffixes); company != "" {
					eng.Company = company
				}
			}
			if eng.Position == "" {
				if title := fieldWithSuffix(line, titleSuffixes); title != "" {
					eng.Position = title
				}
			}
			if achievementRe.MatchString(line) {
				eng.Achievements = append(eng.Achievements, stripBullet(line))
			}
		}
		// 整个条目作为叙述描述
		eng.Description = strings.Join(entry, "\n")
		result = append(result, eng)
	}
	return result
}

// parseProjectBlock 解析项目经历正文
func parseProjectBlock(lines []string) []types.Engagement {
	if len(lines) == 0 {
		return nil
	}

	var result []types.Engagement
	for _, entry := range splitEntries(lines) {
		var eng types.Engagement
		// 首行作为项目名称（去掉日期跨度部分）
		first := dateSpanRe.ReplaceAllString(entry[0], "")
		eng.Name = stripBullet(strings.TrimSpace(first))

		block := strings.Join(entry, "\n")
		for _, line := range entry {
			if eng.StartDate == "" {
				if start, end, ok := findDateSpan(line); ok {
					eng.StartDate, eng.EndDate = start, end
				}
			}
			if eng.Role == "" {
				if m := projectRoleRe.FindStringSubmatch(line); m != nil {
					eng.Role = m[1]
				} else if role := fieldWithSuffix(line, titleSuffixes); role != "" {
					eng.Role = role
				}
			}
		}
		eng.TechStack = ExtractSkills(block)
		eng.Description = block
		result = append(result, eng)
	}
	return result
}

// parseEducationBlock 解析教育背景正文
func parseEducationBlock(lines []string) []types.EducationRecord {
	if len(lines) == 0 {
		return nil
	}

	var result []types.EducationRecord
	for _, entry := range splitEntries(lines) {
		var rec types.EducationRecord
		block := strings.Join(entry, "\n")

		for _, line := range entry {
			if rec.StartDate == "" {
				if start, end, ok := findDateSpan(line); ok {
					rec.StartDate, rec.EndDate = start, end
				}
			}
			if rec.School == "" {
				if school := fieldWithSuffix(line, schoolSuffixes); school != "" {
					rec.School = school
				}
			}
		}
		for _, degree := range degreeLabels {
			if strings.Contains(block, degree) {
				rec.Degree = degree
				break
			}
		}
		for _, major := range majorVocabulary {
			if strings.Contains(block, major) {
				rec.Major = major
				break
			}
		}
		rec.Description = block
		result = append(result, rec)
	}
	return result
}

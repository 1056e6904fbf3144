package job

import (
	"regexp"
	"strings"
)

// ParsedJD 从JD文本里抽取出的结构化信息
type ParsedJD struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Salary           string   `json:"salary"`
	Location         string   `json:"location"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	Skills           []string `json:"skills"`
}

var (
	jdTitlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`职位[：:\s]*([^\n]+)`),
		regexp.MustCompile(`岗位[：:\s]*([^\n]+)`),
		regexp.MustCompile(`招聘[：:\s]*([^\n]+)`),
		regexp.MustCompile(`((?:高级|资深|中级)?(?:Python|Java|前端|后端|产品|运营|算法|测试)[^\n]+)`),
	}
	jdCompanyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`公司[：:\s]*([^\n]+)`),
		regexp.MustCompile(`((?:字节跳动|阿里巴巴|腾讯|美团|京东|百度|华为|网易)[^\n]*)`),
	}
	jdSalaryPattern   = regexp.MustCompile(`(\d+K-\d+K|\d+K-\d+万|\d+-\d+K)`)
	jdLocationPattern = []*regexp.Regexp{
		regexp.MustCompile(`地点[：:\s]*([^\n]+)`),
		regexp.MustCompile(`(北京|上海|深圳|杭州|广州)[^\n]*`),
	}
	jdRequirementsPattern     = regexp.MustCompile(`任职[要求资格|][：:\n]*([\s\S]*?)(?:职责|工作内容|联系方式|$)`)
	jdResponsibilitiesPattern = regexp.MustCompile(`职责[：:\n]*([\s\S]*?)(?:要求|任职|资格|联系方式|$)`)
)

// jdSkillKeywords JD技能词表，按出现顺序收集
var jdSkillKeywords = []string{
	"Python", "Java", "Go", "JavaScript", "TypeScript", "C++",
	"React", "Vue", "Angular", "Node.js",
	"Django", "Flask", "Spring Boot", "FastAPI",
	"MySQL", "PostgreSQL", "MongoDB", "Redis", "Elasticsearch",
	"Docker", "Kubernetes", "Jenkins", "Git",
	"AWS", "Azure", "GCP",
	"机器学习", "深度学习", "TensorFlow", "PyTorch",
	"NLP", "计算机视觉", "算法",
}

// ParseJD 用正则从JD文本里抽取职位名/公司/薪资/地点/要求/职责/技能
func (c *MockClient) ParseJD(jdText string) *ParsedJD {
	result := &ParsedJD{
		Requirements:     []string{},
		Responsibilities: []string{},
		Skills:           []string{},
	}

	result.Title = firstGroupMatch(jdTitlePatterns, jdText)
	result.Company = firstGroupMatch(jdCompanyPatterns, jdText)

	if m := jdSalaryPattern.FindStringSubmatch(jdText); m != nil {
		result.Salary = m[1]
	}
	result.Location = firstGroupMatch(jdLocationPattern, jdText)

	if m := jdRequirementsPattern.FindStringSubmatch(jdText); m != nil {
		result.Requirements = blockLines(m[1])
	}
	if m := jdResponsibilitiesPattern.FindStringSubmatch(jdText); m != nil {
		result.Responsibilities = blockLines(m[1])
	}

	for _, skill := range jdSkillKeywords {
		if strings.Contains(jdText, skill) {
			result.Skills = append(result.Skills, skill)
		}
	}

	return result
}

func firstGroupMatch(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// blockLines 段落拆行，过滤掉太短的行
func blockLines(block string) []string {
	lines := []string{}
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && len([]rune(line)) > 5 {
			lines = append(lines, line)
		}
	}
	return lines
}

func matchKeywords(job *Position, keywords string) bool {
	return containsFold(job.Title, keywords) ||
		containsFold(job.Company, keywords) ||
		containsFold(strings.Join(job.Tags, " "), keywords)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

package extractor

import (
	"regexp"
	"strings"
)

var (
	phoneRe  = regexp.MustCompile(`1[3-9]\d{9}`)
	emailRe  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	githubRe = regexp.MustCompile(`(?:https?://)?(?:www\.)?github\.com/[A-Za-z0-9_.-]+`)

	locationRe = regexp.MustCompile(`(?m)^(?:现居|所在地|居住地|现居地|地址)[:：]?\s*(\S.*)$`)
	blogRe     = regexp.MustCompile(`(?m)^(?:博客|个人博客|主页|个人主页)[:：]?\s*(\S.*)$`)

	// 求职意向字段，各自捕获标签行的剩余部分
	jobTitleRe  = regexp.MustCompile(`(?m)^(?:求职意向|期望职位|应聘职位|目标职位|意向岗位)[:：]?\s*(\S.*)$`)
	salaryRe    = regexp.MustCompile(`(?m)^(?:期望薪资|薪资要求|期望月薪|期望待遇)[:：]?\s*(\S.*)$`)
	cityRe      = regexp.MustCompile(`(?m)^(?:期望城市|意向城市|期望工作地|工作地点)[:：]?\s*(\S.*)$`)
	jobTypeRe   = regexp.MustCompile(`(?m)^(?:工作类型|求职类型|工作性质)[:：]?\s*(\S.*)$`)
)

// ContactInfo 联系方式提取结果
type ContactInfo struct {
	Name     string
	Phone    string
	Email    string
	Location string
	Blog     string
	Github   string
}

// ExtractContactInfo 在全文范围内提取联系方式。
// 手机号取首个命中的大陆11位号码，邮箱取首个标准格式，
// 姓名采用"首个非空行"启发式。
func ExtractContactInfo(text string) ContactInfo {
	var info ContactInfo

	if phone := phoneRe.FindString(text); phone != "" {
		info.Phone = phone
	}
	if email := emailRe.FindString(text); email != "" {
		info.Email = email
	}
	if github := githubRe.FindString(text); github != "" {
		info.Github = github
	}
	if m := locationRe.FindStringSubmatch(text); m != nil {
		info.Location = strings.TrimSpace(m[1])
	}
	if m := blogRe.FindStringSubmatch(text); m != nil {
		info.Blog = strings.TrimSpace(m[1])
	}

	// 第一行非空内容视作姓名
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			info.Name = line
			break
		}
	}
	return info
}

// JobIntention 求职意向提取结果
type JobIntention struct {
	JobTitle       string
	ExpectedSalary string
	ExpectedCity   string
	JobType        string
}

// ExtractJobIntention 单次扫描提取求职意向的四个字段
func ExtractJobIntention(text string) JobIntention {
	var intention JobIntention
	if m := jobTitleRe.FindStringSubmatch(text); m != nil {
		intention.JobTitle = strings.TrimSpace(m[1])
	}
	if m := salaryRe.FindStringSubmatch(text); m != nil {
		intention.ExpectedSalary = strings.TrimSpace(m[1])
	}
	if m := cityRe.FindStringSubmatch(text); m != nil {
		intention.ExpectedCity = strings.TrimSpace(m[1])
	}
	if m := jobTypeRe.FindStringSubmatch(text); m != nil {
		intention.JobType = strings.TrimSpace(m[1])
	}
	return intention
}

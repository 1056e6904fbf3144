package extractor

import (
	"regexp"
	"strings"
)

// 章节类型
type sectionKind int

const (
	sectionOther sectionKind = iota
	sectionWork
	sectionProject
	sectionEducation
	sectionCertificate
	sectionAward
	sectionSelfIntro
	sectionSkills
)

// 章节标题关键词，按优先级排列：工作、项目、教育、证书、荣誉、自我介绍、技能
var sectionHeaders = []struct {
	kind     sectionKind
	keywords []string
}{
	{sectionWork, []string{"工作经历", "职业经历", "任职经历", "专业经历", "工作经验", "Work Experience", "Employment"}},
	{sectionProject, []string{"项目经历", "项目经验", "项目背景", "Project Experience", "Projects"}},
	{sectionEducation, []string{"教育背景", "教育经历", "Education"}},
	{sectionCertificate, []string{"证书资质", "资格证书", "证书", "Certifications", "Certificates"}},
	{sectionAward, []string{"荣誉奖励", "获奖情况", "荣誉", "奖项", "Awards", "Honors"}},
	{sectionSelfIntro, []string{"个人简介", "自我评价", "自我介绍", "个人总结", "Self Introduction", "Summary", "Profile"}},
	{sectionSkills, []string{"专业技能", "技能特长", "技能清单", "专业能力", "Skills"}},
}

// maxHeaderLen 标题行的最大长度（按rune计），超过则当作正文
const maxHeaderLen = 15

// matchSectionHeader 判断一行是否为章节标题，返回对应的章节类型。
// 标题行必须足够短且以关键词开头，避免把"1. 软件设计师证书"这类
// 含关键词的条目行误判为标题。
func matchSectionHeader(line string) (sectionKind, bool) {
	trimmed := strings.Trim(strings.TrimSpace(line), ":： 　【】[]●◆▪")
	if trimmed == "" || len([]rune(trimmed)) > maxHeaderLen {
		return sectionOther, false
	}
	lower := strings.ToLower(trimmed)
	for _, group := range sectionHeaders {
		for _, kw := range group.keywords {
			if strings.HasPrefix(lower, strings.ToLower(kw)) {
				return group.kind, true
			}
		}
	}
	return sectionOther, false
}

// sectionBlocks 每个章节累积到的正文行
type sectionBlocks struct {
	work        []string
	project     []string
	education   []string
	certificate []string
	award       []string
	selfIntro   []string
}

// splitSections 对非空行做单次前向扫描，按章节标题切分正文。
// 标题行本身不进入任何章节的正文（含自我介绍章节，规则对所有章节一致）。
func splitSections(text string) sectionBlocks {
	var blocks sectionBlocks
	current := sectionOther
	var buffer []string

	flush := func() {
		if len(buffer) == 0 {
			return
		}
		switch current {
		case sectionWork:
			blocks.work = append(blocks.work, buffer...)
		case sectionProject:
			blocks.project = append(blocks.project, buffer...)
		case sectionEducation:
			blocks.education = append(blocks.education, buffer...)
		case sectionCertificate:
			blocks.certificate = append(blocks.certificate, buffer...)
		case sectionAward:
			blocks.award = append(blocks.award, buffer...)
		case sectionSelfIntro:
			blocks.selfIntro = append(blocks.selfIntro, buffer...)
		}
		buffer = buffer[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if kind, ok := matchSectionHeader(line); ok {
			flush()
			current = kind
			continue
		}
		buffer = append(buffer, line)
	}
	flush()

	return blocks
}

var bulletPrefixRe = regexp.MustCompile(`^[\s•·◦▪‣◆\-\*–—]+|^\d+[\.、\)）]\s*`)

// stripBullet 去掉行首的列表符号或编号前缀
func stripBullet(line string) string {
	return strings.TrimSpace(bulletPrefixRe.ReplaceAllString(line, ""))
}

// parseListLines 证书/荣誉章节：每个非空行去掉前缀后作为一个条目
func parseListLines(lines []string) []string {
	var items []string
	for _, line := range lines {
		item := stripBullet(line)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

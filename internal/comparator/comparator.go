package comparator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"resume-assist-go/internal/extractor"
	"resume-assist-go/internal/types"
)

// 进行中的日期标记
var ongoingSentinels = map[string]struct{}{
	"至今":      {},
	"现在":      {},
	"Present": {},
	"Current": {},
}

// Comparator 简历对比器。纯计算，无外部调用，输出确定性的整数评分。
type Comparator struct {
	// referenceYear 进行中经历的截止年份，默认取当前年份
	referenceYear int
}

// NewComparator 创建对比器
func NewComparator() *Comparator {
	return &Comparator{referenceYear: time.Now().Year()}
}

// WithReferenceYear 固定截止年份，测试时使用
func (c *Comparator) WithReferenceYear(year int) *Comparator {
	c.referenceYear = year
	return c
}

// Compare 对比两份简历，可附带目标岗位JD文本
func (c *Comparator) Compare(r1, r2 *types.ResumeDocument, jdText string) *types.ComparisonResult {
	skillComp, skillStrengths, skillWeaknesses := c.compareSkills(r1, r2)
	expComp, expStrengths, expWeaknesses := c.compareExperience(r1, r2)
	eduComp, eduStrengths, eduWeaknesses := c.compareEducation(r1, r2)

	// 优势/劣势按 技能→经验→教育 顺序拼接，各截断到5条
	strengths := capList(append(append(skillStrengths, expStrengths...), eduStrengths...), 5)
	weaknesses := capList(append(append(skillWeaknesses, expWeaknesses...), eduWeaknesses...), 5)

	recommendations := c.generateRecommendations(r1, r2, skillComp, expComp, jdText)

	overall := c.overallScore(skillComp, expComp, eduComp)

	return &types.ComparisonResult{
		OverallScore:         overall,
		SkillComparison:      skillComp,
		ExperienceComparison: expComp,
		EducationComparison:  eduComp,
		Recommendations:      recommendations,
		Strengths:            strengths,
		Weaknesses:           weaknesses,
	}
}

// compareSkills 技能维度：交并差集，每侧得分 = 50 + 50 * 重叠数/自身技能数
func (c *Comparator) compareSkills(r1, r2 *types.ResumeDocument) (types.SkillComparison, []string, []string) {
	skills1 := normalizeSkills(r1.Skills)
	skills2 := normalizeSkills(r2.Skills)

	set2 := toSet(skills2)
	set1 := toSet(skills1)

	var common, only1, only2 []string
	for _, s := range skills1 {
		if _, ok := set2[s]; ok {
			common = append(common, s)
		} else {
			only1 = append(only1, s)
		}
	}
	for _, s := range skills2 {
		if _, ok := set1[s]; !ok {
			only2 = append(only2, s)
		}
	}

	score1 := roundInt(float64(len(common))/math.Max(float64(len(skills1)), 1)*50 + 50)
	score2 := roundInt(float64(len(common))/math.Max(float64(len(skills2)), 1)*50 + 50)

	comp := types.SkillComparison{
		Resume1Score:  score1,
		Resume2Score:  score2,
		CommonSkills:  common,
		OnlyInResume1: only1,
		OnlyInResume2: only2,
	}

	var strengths, weaknesses []string
	if len(only1) > 0 || len(only2) > 0 {
		strengths = append(strengths,
			fmt.Sprintf("简历1拥有 %d 项独特技能", len(only1)),
			fmt.Sprintf("简历2拥有 %d 项独特技能", len(only2)),
		)
	}
	if len(skills1) > 0 && len(skills2) > 0 {
		union := len(skills1) + len(only2)
		overlap := float64(len(common)) / math.Max(float64(union), 1) * 100
		weaknesses = append(weaknesses, fmt.Sprintf("两份简历技能重复率 %.0f%%", overlap))
	}
	return comp, strengths, weaknesses
}

// compareExperience 经验维度：年限*10 + 量化成果数*5，封顶100
func (c *Comparator) compareExperience(r1, r2 *types.ResumeDocument) (types.ExperienceComparison, []string, []string) {
	years1 := c.totalYears(r1.WorkExperience)
	years2 := c.totalYears(r2.WorkExperience)

	achievements1 := countAchievements(r1.WorkExperience)
	achievements2 := countAchievements(r2.WorkExperience)

	score1 := roundInt(math.Min(100, years1*10+float64(achievements1)*5))
	score2 := roundInt(math.Min(100, years2*10+float64(achievements2)*5))

	comp := types.ExperienceComparison{
		Resume1Score:        score1,
		Resume2Score:        score2,
		Resume1Years:        years1,
		Resume2Years:        years2,
		Resume1Achievements: achievements1,
		Resume2Achievements: achievements2,
	}

	strengths := []string{
		fmt.Sprintf("简历1: %.1f年经验, %d个可量化成果", years1, achievements1),
		fmt.Sprintf("简历2: %.1f年经验, %d个可量化成果", years2, achievements2),
	}
	var weaknesses []string
	if years1 < 3 {
		weaknesses = append(weaknesses, "经验年限较短")
	}
	if achievements1 < 2 {
		weaknesses = append(weaknesses, "成果描述不足")
	}
	return comp, strengths, weaknesses
}

// compareEducation 教育维度
func (c *Comparator) compareEducation(r1, r2 *types.ResumeDocument) (types.EducationComparison, []string, []string) {
	comp := types.EducationComparison{
		Resume1Score: eduScore(r1.Education),
		Resume2Score: eduScore(r2.Education),
	}

	var strengths []string
	if len(r1.Education) > 0 {
		strengths = append(strengths, fmt.Sprintf("简历1: %s - %s",
			firstOr(schoolNames(r1.Education), "未披露"), firstOr(degreeNames(r1.Education), "未披露")))
	}
	if len(r2.Education) > 0 {
		strengths = append(strengths, fmt.Sprintf("简历2: %s - %s",
			firstOr(schoolNames(r2.Education), "未披露"), firstOr(degreeNames(r2.Education), "未披露")))
	}
	var weaknesses []string
	if len(r1.Education) == 0 || len(r2.Education) == 0 {
		weaknesses = append(weaknesses, "教育信息不完整")
	}
	return comp, strengths, weaknesses
}

// eduScore 教育背景打分：无教育信息给中性分50；
// 有则基础60，博士+20，硕士/MBA+15，名校+10，封顶100
func eduScore(education []types.EducationRecord) int {
	if len(education) == 0 {
		return 50
	}

	topSchools := []string{"清华", "北大", "复旦", "上交", "浙大", "哈佛", "MIT", "斯坦福"}

	score := 60
	for _, edu := range education {
		degree := strings.ToLower(edu.Degree)
		switch {
		case strings.Contains(degree, "博士") || strings.Contains(degree, "phd"):
			score += 20
		case strings.Contains(degree, "硕士") || strings.Contains(degree, "master"):
			score += 15
		case strings.Contains(degree, "mba"):
			score += 15
		}

		school := strings.ToLower(edu.School)
		for _, top := range topSchools {
			if strings.Contains(school, strings.ToLower(top)) {
				score += 10
				break
			}
		}
	}
	if score > 100 {
		score = 100
	}
	return score
}

// totalYears 汇总所有经历的年限
func (c *Comparator) totalYears(engagements []types.Engagement) float64 {
	var total float64
	for _, e := range engagements {
		total += c.spanYears(e.StartDate, e.EndDate)
	}
	return total
}

// spanYears 从日期跨度推算年限。只解析起止串开头的4位年份，
// 进行中标记按参考年份计，解析失败的经历贡献0年而不是报错。
func (c *Comparator) spanYears(start, end string) float64 {
	startYear, ok := leadingYear(start)
	if !ok {
		return 0
	}

	endYear := c.referenceYear
	end = strings.TrimSpace(end)
	if end != "" {
		if _, ongoing := ongoingSentinels[end]; !ongoing {
			y, ok := leadingYear(end)
			if !ok {
				return 0
			}
			endYear = y
		}
	}

	if endYear < startYear {
		return 0
	}
	return float64(endYear - startYear)
}

// leadingYear 取日期串开头的4位年份
func leadingYear(date string) (int, bool) {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}

func countAchievements(engagements []types.Engagement) int {
	total := 0
	for _, e := range engagements {
		total += len(e.Achievements)
	}
	return total
}

// overallScore 综合评分：每侧 技能*0.3 + 经验*0.5 + 教育*0.2，再取两侧均值
func (c *Comparator) overallScore(skill types.SkillComparison, exp types.ExperienceComparison, edu types.EducationComparison) int {
	score1 := float64(skill.Resume1Score)*0.3 + float64(exp.Resume1Score)*0.5 + float64(edu.Resume1Score)*0.2
	score2 := float64(skill.Resume2Score)*0.3 + float64(exp.Resume2Score)*0.5 + float64(edu.Resume2Score)*0.2
	return roundInt((score1 + score2) / 2)
}

// generateRecommendations 按固定优先级生成改进建议，截断到5条
func (c *Comparator) generateRecommendations(r1, r2 *types.ResumeDocument,
	skill types.SkillComparison, exp types.ExperienceComparison, jdText string) []string {

	var recommendations []string

	if len(skill.OnlyInResume1) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("建议简历2补充: %s", strings.Join(capList(skill.OnlyInResume1, 3), ", ")))
	}
	if len(skill.OnlyInResume2) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("建议简历1补充: %s", strings.Join(capList(skill.OnlyInResume2, 3), ", ")))
	}
	if exp.Resume1Years < exp.Resume2Years {
		recommendations = append(recommendations, "简历1经验年限较短，建议突出项目经验和技能深度")
	}
	if exp.Resume1Achievements < 2 {
		recommendations = append(recommendations, "建议增加可量化的成果描述，如'提升效率30%'等")
	}

	if jdText != "" {
		jdSkills := extractor.ExtractJDSkills(jdText)
		missing1 := subtract(jdSkills, r1.Skills)
		missing2 := subtract(jdSkills, r2.Skills)
		if len(missing1) > 0 {
			recommendations = append(recommendations,
				fmt.Sprintf("针对JD，简历1建议补充: %s", strings.Join(capList(missing1, 3), ", ")))
		}
		if len(missing2) > 0 {
			recommendations = append(recommendations,
				fmt.Sprintf("针对JD，简历2建议补充: %s", strings.Join(capList(missing2, 3), ", ")))
		}
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "两份简历质量相近，建议根据目标岗位JD进行针对性调整")
	}
	return capList(recommendations, 5)
}

func normalizeSkills(skills []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		set[s] = struct{}{}
	}
	return set
}

func subtract(items, remove []string) []string {
	removeSet := toSet(remove)
	var out []string
	for _, s := range items {
		if _, ok := removeSet[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

func capList(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}
	return items
}

func firstOr(items []string, fallback string) string {
	if len(items) > 0 {
		return items[0]
	}
	return fallback
}

func schoolNames(education []types.EducationRecord) []string {
	var out []string
	for _, e := range education {
		if e.School != "" {
			out = append(out, e.School)
		}
	}
	return out
}

func degreeNames(education []types.EducationRecord) []string {
	var out []string
	for _, e := range education {
		if e.Degree != "" {
			out = append(out, e.Degree)
		}
	}
	return out
}

func roundInt(f float64) int {
	return int(math.Round(f))
}

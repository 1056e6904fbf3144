package comparator

import (
	"strings"
	"testing"

	"resume-assist-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docWithSkills(skills ...string) *types.ResumeDocument {
	return &types.ResumeDocument{Skills: skills}
}

func TestCompareSelfYieldsFullSkillScore(t *testing.T) {
	doc := &types.ResumeDocument{
		Skills: []string{"Python", "Django", "MySQL"},
		WorkExperience: []types.Engagement{
			{Company: "某科技有限公司", StartDate: "2019-06", EndDate: "2022-03"},
		},
		Education: []types.EducationRecord{{School: "某大学", Degree: "本科"}},
	}

	result := NewComparator().WithReferenceYear(2025).Compare(doc, doc, "")

	assert.Equal(t, 100, result.SkillComparison.Resume1Score)
	assert.Equal(t, 100, result.SkillComparison.Resume2Score)
	assert.Empty(t, result.SkillComparison.OnlyInResume1)
	assert.Empty(t, result.SkillComparison.OnlyInResume2)

	// 自比时不应出现"补充技能"类建议
	for _, rec := range result.Recommendations {
		assert.NotContains(t, rec, "建议简历2补充")
		assert.NotContains(t, rec, "建议简历1补充")
	}
}

func TestCompareSkillSets(t *testing.T) {
	a := docWithSkills("Python", "Django")
	b := docWithSkills("Python", "React")

	result := NewComparator().WithReferenceYear(2025).Compare(a, b, "")

	assert.Equal(t, []string{"Python"}, result.SkillComparison.CommonSkills)
	assert.Equal(t, []string{"Django"}, result.SkillComparison.OnlyInResume1)
	assert.Equal(t, []string{"React"}, result.SkillComparison.OnlyInResume2)
	// 1/2 * 50 + 50 = 75
	assert.Equal(t, 75, result.SkillComparison.Resume1Score)
	assert.Equal(t, 75, result.SkillComparison.Resume2Score)
}

func TestSpanYears(t *testing.T) {
	c := NewComparator().WithReferenceYear(2025)

	cases := []struct {
		start, end string
		want       float64
	}{
		{"2019-06", "2022-03", 3},
		{"2019", "2022", 3},
		{"2020-01", "至今", 5},
		{"2020", "Present", 5},
		{"2020", "", 5},
		{"乱写的", "2022", 0},
		{"2020", "乱写的", 0},
		{"", "2022", 0},
		{"2023", "2020", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, c.spanYears(tc.start, tc.end), "%s ~ %s", tc.start, tc.end)
	}
}

func TestExperienceScore(t *testing.T) {
	a := &types.ResumeDocument{
		WorkExperience: []types.Engagement{
			{StartDate: "2018", EndDate: "2022", Achievements: []string{"性能提升40%", "完成重构"}},
		},
	}
	b := &types.ResumeDocument{}

	result := NewComparator().WithReferenceYear(2025).Compare(a, b, "")

	// 4年*10 + 2成果*5 = 50
	assert.Equal(t, 50, result.ExperienceComparison.Resume1Score)
	assert.Equal(t, 0, result.ExperienceComparison.Resume2Score)
	assert.Equal(t, 4.0, result.ExperienceComparison.Resume1Years)
	assert.Equal(t, 2, result.ExperienceComparison.Resume1Achievements)
}

func TestExperienceScoreCapped(t *testing.T) {
	a := &types.ResumeDocument{
		WorkExperience: []types.Engagement{
			{StartDate: "2000", EndDate: "2020", Achievements: []string{"a", "b", "c", "d"}},
		},
	}
	result := NewComparator().WithReferenceYear(2025).Compare(a, &types.ResumeDocument{}, "")
	assert.Equal(t, 100, result.ExperienceComparison.Resume1Score)
}

func TestEducationScore(t *testing.T) {
	cases := []struct {
		name string
		edu  []types.EducationRecord
		want int
	}{
		{"无教育信息", nil, 50},
		{"普通本科", []types.EducationRecord{{School: "某大学", Degree: "本科"}}, 60},
		{"名校硕士", []types.EducationRecord{{School: "清华大学", Degree: "硕士"}}, 85},
		{"名校博士", []types.EducationRecord{{School: "斯坦福大学", Degree: "PhD"}}, 90},
		{"多段教育封顶", []types.EducationRecord{
			{School: "清华大学", Degree: "博士"},
			{School: "北大", Degree: "硕士"},
		}, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, eduScore(tc.edu))
		})
	}
}

func TestRecommendationsWithJD(t *testing.T) {
	a := docWithSkills("Python")
	b := docWithSkills("Python")
	jd := "要求：熟悉Python、Docker、Kubernetes"

	result := NewComparator().WithReferenceYear(2025).Compare(a, b, jd)

	found := false
	for _, rec := range result.Recommendations {
		if strings.Contains(rec, "针对JD") {
			found = true
		}
	}
	assert.True(t, found, "提供JD时应产生针对JD的补充建议")
	assert.LessOrEqual(t, len(result.Recommendations), 5)
}

func TestRecommendationsFallback(t *testing.T) {
	// 双方无差异且成果充足时，给一条通用建议
	doc := &types.ResumeDocument{
		Skills: []string{"Python"},
		WorkExperience: []types.Engagement{
			{StartDate: "2018", EndDate: "2022", Achievements: []string{"x", "y"}},
		},
	}
	result := NewComparator().WithReferenceYear(2025).Compare(doc, doc, "")
	require.NotEmpty(t, result.Recommendations)
	assert.Equal(t, "两份简历质量相近，建议根据目标岗位JD进行针对性调整", result.Recommendations[0])
}

func TestListCaps(t *testing.T) {
	a := docWithSkills("Python", "Java", "Go", "Rust", "PHP", "Ruby")
	b := docWithSkills("React", "Vue", "Angular", "CSS", "HTML", "jQuery")

	result := NewComparator().WithReferenceYear(2025).Compare(a, b, "")
	assert.LessOrEqual(t, len(result.Recommendations), 5)
	assert.LessOrEqual(t, len(result.Strengths), 5)
	assert.LessOrEqual(t, len(result.Weaknesses), 5)
}

func TestOverallScoreDeterministic(t *testing.T) {
	a := docWithSkills("Python", "Django")
	b := docWithSkills("Python", "React")

	c := NewComparator().WithReferenceYear(2025)
	first := c.Compare(a, b, "")
	second := c.Compare(a, b, "")
	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first.OverallScore, 0)
	assert.LessOrEqual(t, first.OverallScore, 100)
}

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-assist-go/internal/config"
	"resume-assist-go/internal/types"
)

func sampleDocument() *types.ResumeDocument {
	return &types.ResumeDocument{
		Name:     "Zhang San",
		Phone:    "13812345678",
		Email:    "zhangsan@example.com",
		Location: "Shanghai",
		JobTitle: "Backend Engineer",
		Skills:   []string{"Go", "MySQL", "Redis", "Kubernetes", "Docker"},
		WorkExperience: []types.Engagement{
			{
				Company:      "Acme Corp",
				Position:     "Senior Engineer",
				StartDate:    "2020-01",
				EndDate:      "至今",
				Description:  "Built the core billing pipeline.",
				Achievements: []string{"Cut p99 latency by 40%", "Led a team of 4", "Shipped v2", "Extra item"},
			},
		},
		ProjectExperience: []types.Engagement{
			{
				Name:        "Billing Gateway",
				Role:        "Tech Lead",
				StartDate:   "2021-03",
				EndDate:     "2022-06",
				Description: "Unified payment routing service.",
				TechStack:   []string{"Go", "Kafka", "PostgreSQL"},
			},
		},
		Education: []types.EducationRecord{
			{School: "Fudan University", Degree: "Bachelor", Major: "Computer Science", StartDate: "2012-09", EndDate: "2016-06"},
		},
		Certificates:     []string{"CKA"},
		Awards:           []string{"Hackathon winner 2021"},
		SelfIntroduction: "Five years of backend experience.",
	}
}

func TestAllPDFTemplatesProduceOutput(t *testing.T) {
	reg := NewRegistry(&config.RenderConfig{})
	doc := sampleDocument()

	for _, tpl := range Templates() {
		out, err := reg.PDF(tpl.ID).Render(doc)
		require.NoError(t, err, tpl.ID)
		assert.True(t, strings.HasPrefix(string(out), "%PDF"), tpl.ID)
		assert.Greater(t, len(out), 500, tpl.ID)
	}
}

func TestUnknownTemplateFallsBackToModern(t *testing.T) {
	reg := NewRegistry(&config.RenderConfig{})
	assert.Same(t, reg.PDF("modern"), reg.PDF("no-such-template"))
	assert.Same(t, reg.PDF("modern"), reg.PDF(""))
}

func TestMissingFontFileDegradesGracefully(t *testing.T) {
	reg := NewRegistry(&config.RenderConfig{FontPath: "/no/such/font.ttf", FontName: "cjk"})
	out, err := reg.PDF("modern").Render(sampleDocument())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestWordOutputIsDocx(t *testing.T) {
	reg := NewRegistry(&config.RenderConfig{})
	out, err := reg.Word().Render(sampleDocument())
	require.NoError(t, err)
	// docx是zip容器
	assert.True(t, strings.HasPrefix(string(out), "PK"))
}

func TestHTMLEscapesUserContent(t *testing.T) {
	doc := sampleDocument()
	doc.Name = `<script>alert("x")</script>`
	doc.Skills = []string{`<b>Go</b>`}

	out, err := (&HTMLRenderer{}).Render(doc)
	require.NoError(t, err)
	page := string(out)
	assert.NotContains(t, page, `<script>alert`)
	assert.Contains(t, page, "&lt;script&gt;")
	assert.NotContains(t, page, "<b>Go</b>")
}

func TestHTMLContainsSections(t *testing.T) {
	out, err := (&HTMLRenderer{}).Render(sampleDocument())
	require.NoError(t, err)
	page := string(out)

	assert.Contains(t, page, "Zhang San")
	assert.Contains(t, page, `<span class="skill-tag">Go</span>`)
	assert.Contains(t, page, "Acme Corp")
	assert.Contains(t, page, "2020.01 - 至今")
	assert.Contains(t, page, "工作经历")
	// 成果最多三条
	assert.Contains(t, page, "Shipped v2")
	assert.NotContains(t, page, "Extra item")
}

func TestEmptyDocumentStillRenders(t *testing.T) {
	reg := NewRegistry(&config.RenderConfig{})
	empty := &types.ResumeDocument{}

	for _, tpl := range Templates() {
		_, err := reg.PDF(tpl.ID).Render(empty)
		assert.NoError(t, err, tpl.ID)
	}
	_, err := reg.Word().Render(empty)
	assert.NoError(t, err)
	_, err = reg.HTML().Render(empty)
	assert.NoError(t, err)
}

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"2020-05":  "2020.05",
		"2020/05":  "2020.05",
		"2020.05":  "2020.05",
		"2020":     "2020.01",
		"至今":       "至今",
		"现在":       "至今",
		"Present":  "至今",
		"Current":  "至今",
		"":         "",
		" 2021-11": "2021.11",
		"未知格式":     "未知格式",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatDate(in), "input=%q", in)
	}
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "2020.03 - 至今", dateRange("2020-03", "至今"))
	assert.Equal(t, "2018.09 - 2022.06", dateRange("2018-09", "2022-06"))
}

func TestClipRunes(t *testing.T) {
	assert.Equal(t, "short", clipRunes("short", 10))
	assert.Equal(t, "一二三...", clipRunes("一二三四五", 3))
}

func TestTemplateAndFormatMetadata(t *testing.T) {
	tpls := Templates()
	require.Len(t, tpls, 5)
	ids := make([]string, 0, len(tpls))
	for _, tpl := range tpls {
		ids = append(ids, tpl.ID)
	}
	assert.ElementsMatch(t, []string{"modern", "business", "creative", "classic", "compact"}, ids)

	formats := Formats()
	require.Len(t, formats, 3)
	assert.Equal(t, "pdf", formats[0].ID)
}

package render

import (
	"bytes"
	"fmt"
	"html/template"

	"resume-assist-go/internal/types"
)

// HTMLRenderer 生成独立的HTML页面，所有用户字段经模板自动转义
type HTMLRenderer struct{}

func (r *HTMLRenderer) Render(doc *types.ResumeDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlPage.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("生成HTML失败: %w", err)
	}
	return buf.Bytes(), nil
}

var htmlPage = template.Must(template.New("resume").Funcs(template.FuncMap{
	"dateRange": dateRange,
	"clip3": func(items []string) []string {
		return capSlice(items, 3)
	},
}).Parse(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Name}} - 简历</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: 'Microsoft YaHei', 'PingFang SC', sans-serif; line-height: 1.6; color: #333; background: #f5f5f5; }
        .container { max-width: 800px; margin: 40px auto; background: white; box-shadow: 0 2px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 40px; text-align: center; }
        .header h1 { font-size: 2.5em; margin-bottom: 10px; }
        .header .job-title { font-size: 1.2em; opacity: 0.9; }
        .contact { margin-top: 15px; font-size: 0.9em; }
        .contact span { margin: 0 15px; }
        .content { padding: 40px; }
        .section { margin-bottom: 30px; }
        .section h2 { color: #667eea; border-bottom: 2px solid #667eea; padding-bottom: 10px; margin-bottom: 20px; font-size: 1.3em; }
        .section p { margin-bottom: 10px; text-align: justify; }
        .skills { display: flex; flex-wrap: wrap; gap: 8px; }
        .skill-tag { background: #f0f0f0; padding: 5px 12px; border-radius: 15px; font-size: 0.9em; }
        .item { margin-bottom: 20px; }
        .item-header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 8px; }
        .item-title { font-weight: bold; color: #333; }
        .item-date { color: #888; font-size: 0.9em; }
        .item-subtitle { color: #666; margin-bottom: 8px; }
        .item-content { color: #555; }
        .achievement { color: #666; font-size: 0.95em; margin-left: 20px; position: relative; }
        .achievement::before { content: '◆'; position: absolute; left: -15px; color: #667eea; }
        @media print { body { background: white; } .container { box-shadow: none; margin: 0; } }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Name}}</h1>
            <p class="job-title">{{.JobTitle}}</p>
            <div class="contact">
                <span>{{.Phone}}</span>
                <span>{{.Email}}</span>
                <span>{{.Location}}</span>
            </div>
        </div>
        <div class="content">
{{- if .SelfIntroduction}}
            <div class="section">
                <h2>个人简介</h2>
                <p>{{.SelfIntroduction}}</p>
            </div>
{{- end}}
{{- if .Skills}}
            <div class="section">
                <h2>专业技能</h2>
                <div class="skills">{{range .Skills}}<span class="skill-tag">{{.}}</span>{{end}}</div>
            </div>
{{- end}}
{{- if .WorkExperience}}
            <div class="section">
                <h2>工作经历</h2>
{{- range .WorkExperience}}
                <div class="item">
                    <div class="item-header">
                        <span class="item-title">{{.Company}}</span>
                        <span class="item-date">{{dateRange .StartDate .EndDate}}</span>
                    </div>
                    <p class="item-subtitle">{{.Position}}</p>
                    <p class="item-content">{{.Description}}</p>
{{- range clip3 .Achievements}}
                    <p class="achievement">{{.}}</p>
{{- end}}
                </div>
{{- end}}
            </div>
{{- end}}
{{- if .ProjectExperience}}
            <div class="section">
                <h2>项目经历</h2>
{{- range .ProjectExperience}}
                <div class="item">
                    <div class="item-header">
                        <span class="item-title">{{.Name}}</span>
                        <span class="item-date">{{dateRange .StartDate .EndDate}}</span>
                    </div>
                    <p class="item-subtitle">{{.Role}}</p>
                    <p class="item-content">{{.Description}}</p>
                </div>
{{- end}}
            </div>
{{- end}}
{{- if .Education}}
            <div class="section">
                <h2>教育背景</h2>
{{- range .Education}}
                <div class="item">
                    <div class="item-header">
                        <span class="item-title">{{.School}}</span>
                        <span class="item-date">{{dateRange .StartDate .EndDate}}</span>
                    </div>
                    <p class="item-subtitle">{{.Degree}} {{.Major}}</p>
                </div>
{{- end}}
            </div>
{{- end}}
{{- if .Certificates}}
            <div class="section">
                <h2>证书资质</h2>
{{- range .Certificates}}
                <p>• {{.}}</p>
{{- end}}
            </div>
{{- end}}
{{- if .Awards}}
            <div class="section">
                <h2>荣誉奖励</h2>
{{- range .Awards}}
                <p>• {{.}}</p>
{{- end}}
            </div>
{{- end}}
        </div>
    </div>
</body>
</html>
`))

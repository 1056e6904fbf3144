package types

// ResumeDocument 简历的规范化结构，字段提取器的输出。
// 除RawText外的所有字段都允许为空，缺失的章节退化为空列表/空串而不是报错。
type ResumeDocument struct {
	// 联系方式
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Location string `json:"location"`
	Blog     string `json:"blog"`
	Github   string `json:"github"`

	// 求职意向
	JobTitle       string `json:"job_title"`
	ExpectedSalary string `json:"expected_salary"`
	ExpectedCity   string `json:"expected_city"`
	JobType        string `json:"job_type"`

	WorkExperience    []Engagement      `json:"work_experience"`
	ProjectExperience []Engagement      `json:"project_experience"`
	Education         []EducationRecord `json:"education"`

	// Skills 按词表顺序去重
	Skills       []string `json:"skills"`
	Certificates []string `json:"certificates"`
	Awards       []string `json:"awards"`

	SelfIntroduction string `json:"self_introduction"`

	// RawText 原始文本全文，用于LLM提示词和预览
	RawText string `json:"raw_text"`
}

// Engagement 一段工作或项目经历
type Engagement struct {
	Company      string   `json:"company,omitempty"`  // 工作经历：单位名称
	Name         string   `json:"name,omitempty"`     // 项目经历：项目名称
	Position     string   `json:"position,omitempty"` // 工作经历：职位
	Role         string   `json:"role,omitempty"`     // 项目经历：担任角色
	StartDate    string   `json:"start_date"`         // 形如 2019-06 / 2019，不做日历解析
	EndDate      string   `json:"end_date"`           // 可能为"至今"等进行中标记
	Description  string   `json:"description"`
	Achievements []string `json:"achievements,omitempty"` // 工作经历：量化成果
	TechStack    []string `json:"tech_stack,omitempty"`   // 项目经历：技术栈
}

// EducationRecord 一段教育经历
type EducationRecord struct {
	School      string `json:"school"`
	Degree      string `json:"degree"`
	Major       string `json:"major"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// PositionSuggestion 岗位推荐打分
type PositionSuggestion struct {
	Position      string   `json:"position"`
	Score         float64  `json:"score"`
	MatchedSkills []string `json:"matched_skills"`
}

// SkillComparison 技能维度对比
type SkillComparison struct {
	Resume1Score  int      `json:"resume1_score"`
	Resume2Score  int      `json:"resume2_score"`
	CommonSkills  []string `json:"common_skills"`
	OnlyInResume1 []string `json:"only_in_resume1"`
	OnlyInResume2 []string `json:"only_in_resume2"`
}

// ExperienceComparison 经验维度对比
type ExperienceComparison struct {
	Resume1Score        int     `json:"resume1_score"`
	Resume2Score        int     `json:"resume2_score"`
	Resume1Years        float64 `json:"resume1_years"`
	Resume2Years        float64 `json:"resume2_years"`
	Resume1Achievements int     `json:"resume1_achievements"`
	Resume2Achievements int     `json:"resume2_achievements"`
}

// EducationComparison 教育维度对比
type EducationComparison struct {
	Resume1Score int `json:"resume1_score"`
	Resume2Score int `json:"resume2_score"`
}

// ComparisonResult 两份简历的对比结果，按需计算，不作为一等实体持久化
type ComparisonResult struct {
	OverallScore         int                  `json:"overall_score"`
	SkillComparison      SkillComparison      `json:"skill_comparison"`
	ExperienceComparison ExperienceComparison `json:"experience_comparison"`
	EducationComparison  EducationComparison  `json:"education_comparison"`
	Recommendations      []string             `json:"recommendations"`
	Strengths            []string             `json:"strengths"`
	Weaknesses           []string             `json:"weaknesses"`
}

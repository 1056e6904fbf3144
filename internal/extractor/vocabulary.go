package extractor

// SkillVocabulary 技能词表，提取结果保持此处的枚举顺序
var SkillVocabulary = []string{
	// 编程语言
	"Python", "Java", "JavaScript", "C++", "C#", "Go", "Rust", "Ruby", "PHP", "Swift", "Kotlin",
	// 前端
	"React", "Vue", "Angular", "HTML", "CSS", "TypeScript", "Node.js", "jQuery", "Bootstrap",
	// 后端
	"Django", "Flask", "Spring", "Spring Boot", "MyBatis", "Hibernate", "Express", "FastAPI",
	// 数据库
	"MySQL", "PostgreSQL", "MongoDB", "Redis", "Oracle", "SQL Server", "Elasticsearch",
	// 云和DevOps
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "Git", "Linux", "Nginx",
	// 数据分析
	"Pandas", "NumPy", "Spark", "Hadoop", "Tableau", "Excel", "SQL",
	// AI/ML
	"TensorFlow", "PyTorch", "Keras", "Scikit-learn", "NLP", "Computer Vision",
	// 其他
	"RESTful API", "GraphQL", "Microservices", "Agile", "Scrum",
}

// PositionCategory 岗位方向及其核心技能词表
type PositionCategory struct {
	Name   string
	Skills []string
}

// PositionCategories 岗位推荐用的分类词表
var PositionCategories = []PositionCategory{
	{"后端开发", []string{"Python", "Java", "Go", "Spring", "Django", "Flask", "MySQL", "Redis"}},
	{"前端开发", []string{"React", "Vue", "HTML", "CSS", "JavaScript", "TypeScript", "Node.js"}},
	{"全栈开发", []string{"Python", "JavaScript", "React", "Node.js", "MySQL"}},
	{"数据分析", []string{"Python", "Pandas", "SQL", "Excel", "Tableau", "Spark"}},
	{"机器学习", []string{"Python", "TensorFlow", "PyTorch", "Scikit-learn", "NLP"}},
	{"DevOps", []string{"Docker", "Kubernetes", "Jenkins", "AWS", "Linux", "Git"}},
	{"移动开发", []string{"Swift", "Kotlin", "React Native", "Android", "iOS"}},
	{"产品经理", []string{"Axure", "Figma", "需求分析", "产品设计", "用户研究"}},
}

// JDSkillCategories JD技能词表，按类别组织，用于提取岗位要求中的技能关键词
var JDSkillCategories = map[string][]string{
	"编程语言":    {"Python", "Java", "JavaScript", "Go", "C++", "Rust", "TypeScript", "PHP", "Ruby", "Swift", "Kotlin"},
	"前端框架":    {"React", "Vue", "Angular", "Next.js", "Svelte", "jQuery", "Bootstrap", "Tailwind"},
	"后端框架":    {"Django", "Flask", "FastAPI", "Spring Boot", "Express", "NestJS", "Gin", "Laravel"},
	"数据库":     {"MySQL", "PostgreSQL", "MongoDB", "Redis", "Elasticsearch", "Oracle", "SQL Server"},
	"云和DevOps": {"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "GitLab CI", "Terraform"},
	"数据科学":    {"Pandas", "NumPy", "Spark", "Hadoop", "TensorFlow", "PyTorch", "Scikit-learn"},
}

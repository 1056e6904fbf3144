package job

// jobDatabase 演示用职位库，前16条作为热门职位
func jobDatabase() []Position {
	return []Position{
		{
			ID: "1", Title: "高级Python开发工程师", Company: "字节跳动", Salary: "25K-45K", Location: "北京",
			Tags: []string{"Python", "Django", "Go"}, Category: "tech", Source: "BOSS直聘",
			Requirements:     []string{"3年以上Python开发经验", "熟悉Django或Flask框架", "熟悉MySQL、Redis"},
			Responsibilities: []string{"负责后端系统设计和开发", "优化系统性能", "参与技术方案设计"},
		},
		{
			ID: "2", Title: "前端开发工程师", Company: "阿里巴巴", Salary: "20K-35K", Location: "杭州",
			Tags: []string{"React", "Vue", "TypeScript"}, Category: "tech", Source: "猎聘",
			Requirements:     []string{"2年以上前端开发经验", "熟悉React或Vue", "熟悉TypeScript"},
			Responsibilities: []string{"负责前端页面开发", "优化用户体验", "参与组件库建设"},
		},
		{
			ID: "3", Title: "产品经理", Company: "腾讯科技", Salary: "22K-40K", Location: "深圳",
			Tags: []string{"C端产品", "用户增长", "数据分析"}, Category: "product", Source: "前程无忧",
			Requirements:     []string{"3年以上产品经验", "熟悉产品设计流程", "数据分析能力强"},
			Responsibilities: []string{"负责产品规划", "需求分析和管理", "协调开发团队"},
		},
		{
			ID: "4", Title: "Java开发工程师", Company: "美团", Salary: "20K-38K", Location: "北京",
			Tags: []string{"Java", "Spring Boot", "微服务"}, Category: "tech", Source: "BOSS直聘",
			Requirements:     []string{"3年以上Java开发经验", "熟悉Spring Boot", "熟悉微服务架构"},
			Responsibilities: []string{"负责后端系统开发", "参与架构设计", "优化系统性能"},
		},
		{
			ID: "5", Title: "数据分析师", Company: "京东集团", Salary: "18K-30K", Location: "北京",
			Tags: []string{"SQL", "Python", "Tableau"}, Category: "tech", Source: "猎聘",
			Requirements:     []string{"2年以上数据分析经验", "熟悉SQL和Python", "熟练使用BI工具"},
			Responsibilities: []string{"负责数据分析报告", "支持业务决策", "建设数据指标体系"},
		},
		{
			ID: "6", Title: "用户运营经理", Company: "小红书", Salary: "18K-28K", Location: "上海",
			Tags: []string{"用户增长", "活动策划", "数据分析"}, Category: "运营", Source: "前程无忧",
			Requirements:     []string{"3年以上运营经验", "用户增长经验", "数据分析能力"},
			Responsibilities: []string{"制定运营策略", "策划用户活动", "提升用户活跃度"},
		},
		{
			ID: "7", Title: "Go后端开发", Company: "快手科技", Salary: "24K-42K", Location: "北京",
			Tags: []string{"Go", "Kubernetes", "微服务"}, Category: "tech", Source: "BOSS直聘",
			Requirements:     []string{"3年以上Go开发经验", "熟悉Kubernetes", "微服务架构经验"},
			Responsibilities: []string{"负责后端开发", "优化系统性能", "参与架构设计"},
		},
		{
			ID: "8", Title: "移动端开发工程师", Company: "网易", Salary: "20K-35K", Location: "杭州",
			Tags: []string{"iOS", "Android", "Flutter"}, Category: "tech", Source: "猎聘",
			Requirements:     []string{"2年以上移动端开发经验", "熟悉iOS或Android", "Flutter经验优先"},
			Responsibilities: []string{"负责移动端开发", "优化应用性能", "参与技术选型"},
		},
		{
			ID: "9", Title: "算法工程师", Company: "百度", Salary: "30K-60K", Location: "北京",
			Tags: []string{"机器学习", "深度学习", "NLP"}, Category: "tech", Source: "前程无忧",
			Requirements:     []string{"硕士及以上学历", "机器学习算法经验", "深度学习框架熟练"},
			Responsibilities: []string{"负责算法研发", "优化模型效果", "落地业务场景"},
		},
		{
			ID: "10", Title: "内容运营", Company: "B站", Salary: "15K-25K", Location: "上海",
			Tags: []string{"内容策划", "短视频", "社区运营"}, Category: "运营", Source: "BOSS直聘",
			Requirements:     []string{"2年以上运营经验", "内容策划能力", "社区运营经验"},
			Responsibilities: []string{"策划内容活动", "运营社区", "数据分析"},
		},
		{
			ID: "11", Title: "高级产品经理", Company: "拼多多", Salary: "28K-50K", Location: "上海",
			Tags: []string{"B端产品", "供应链", "ERP"}, Category: "product", Source: "猎聘",
			Requirements:     []string{"5年以上产品经验", "B端产品经验", "供应链领域经验"},
			Responsibilities: []string{"负责B端产品规划", "优化供应链系统", "提升业务效率"},
		},
		{
			ID: "12", Title: "DevOps工程师", Company: "滴滴出行", Salary: "22K-38K", Location: "北京",
			Tags: []string{"Docker", "Jenkins", "CI/CD"}, Category: "tech", Source: "前程无忧",
			Requirements:     []string{"3年以上DevOps经验", "熟悉CI/CD流程", "Docker和Kubernetes经验"},
			Responsibilities: []string{"负责CI/CD流程", "优化运维效率", "建设监控体系"},
		},
		{
			ID: "13", Title: "新媒体运营", Company: "抖音", Salary: "16K-26K", Location: "北京",
			Tags: []string{"社交媒体", "内容营销", "直播运营"}, Category: "运营", Source: "BOSS直聘",
			Requirements:     []string{"2年以上新媒体运营经验", "内容创作能力", "直播运营经验"},
			Responsibilities: []string{"运营社交媒体账号", "策划内容营销", "直播运营"},
		},
		{
			ID: "14", Title: "安全工程师", Company: "华为", Salary: "25K-45K", Location: "深圳",
			Tags: []string{"网络安全", "渗透测试", "安全开发"}, Category: "tech", Source: "猎聘",
			Requirements:     []string{"3年以上安全经验", "渗透测试能力", "安全开发经验"},
			Responsibilities: []string{"负责安全测试", "安全开发", "安全体系建设"},
		},
		{
			ID: "15", Title: "UI/UX设计师", Company: "小米", Salary: "18K-30K", Location: "北京",
			Tags: []string{"Figma", "UI设计", "用户体验"}, Category: "product", Source: "前程无忧",
			Requirements:     []string{"3年以上设计经验", "熟练使用Figma", "用户体验设计能力"},
			Responsibilities: []string{"负责产品设计", "优化用户体验", "设计规范制定"},
		},
		{
			ID: "16", Title: "大数据开发工程师", Company: "蚂蚁集团", Salary: "28K-50K", Location: "杭州",
			Tags: []string{"Hadoop", "Spark", "Flink"}, Category: "tech", Source: "BOSS直聘",
			Requirements:     []string{"3年以上大数据开发经验", "熟悉Hadoop生态", "Spark或Flink经验"},
			Responsibilities: []string{"负责大数据平台开发", "数据仓库建设", "实时计算开发"},
		},
		{
			ID: "17", Title: "SRE工程师", Company: "阿里云", Salary: "25K-45K", Location: "杭州",
			Tags: []string{"Linux", "Kubernetes", "监控"}, Category: "tech", Source: "猎聘",
			Requirements:     []string{"3年以上SRE经验", "Linux系统精通", "Kubernetes经验"},
			Responsibilities: []string{"负责系统稳定性", "建设监控体系", "故障响应处理"},
		},
		{
			ID: "18", Title: "测试开发工程师", Company: "Shopee", Salary: "20K-35K", Location: "深圳",
			Tags: []string{"自动化测试", "Selenium", "性能测试"}, Category: "tech", Source: "前程无忧",
			Requirements:     []string{"2年以上测试开发经验", "自动化测试能力", "性能测试经验"},
			Responsibilities: []string{"负责自动化测试", "性能测试", "测试平台建设"},
		},
		{
			ID: "19", Title: "技术专家", Company: "腾讯云", Salary: "35K-60K", Location: "深圳",
			Tags: []string{"云原生", "高并发", "架构设计"}, Category: "tech", Source: "BOSS直聘",
			Requirements:     []string{"5年以上开发经验", "架构设计能力", "云原生技术熟练"},
			Responsibilities: []string{"负责架构设计", "技术难点攻关", "团队技术指导"},
		},
		{
			ID: "20", Title: "项目经理", Company: "华为", Salary: "20K-35K", Location: "深圳",
			Tags: []string{"PMP", "敏捷开发", "团队管理"}, Category: "product", Source: "猎聘",
			Requirements:     []string{"5年以上项目管理经验", "PMP认证", "敏捷开发经验"},
			Responsibilities: []string{"负责项目管理", "团队协调", "进度控制"},
		},
	}
}

package constants

// Redis Key 前缀和格式常量
// 使用统一的命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "resume_assist"

	// FileModulePrefix 文件模块
	FileModulePrefix = "file"
	// AnalysisModulePrefix 分析模块
	AnalysisModulePrefix = "analysis"
	// UserModulePrefix 用户模块
	UserModulePrefix = "user"

	// EntityDedupSet 去重集合实体
	EntityDedupSet = "dedup_set"
	// EntityCache 缓存实体
	EntityCache = "cache"
	// EntityUsage 使用次数实体
	EntityUsage = "usage"

	// KeyFileMD5Set 上传文件MD5集合，用于快速去重 (SET)
	// 格式: resume_assist:file:dedup_set
	KeyFileMD5Set = AppPrefix + ":" + FileModulePrefix + ":" + EntityDedupSet

	// KeyAnalysisCache LLM分析结果缓存 (STRING)
	// 格式: resume_assist:analysis:cache:{result_type}:{digest}
	KeyAnalysisCache = AppPrefix + ":" + AnalysisModulePrefix + ":" + EntityCache + ":%s:%s"

	// KeyDailyUsage 用户每日使用计数 (STRING, INCR)
	// 格式: resume_assist:user:usage:{user_id}:{yyyymmdd}
	KeyDailyUsage = AppPrefix + ":" + UserModulePrefix + ":" + EntityUsage + ":%s:%s"
)

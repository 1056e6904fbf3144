package constants

import "time"

// 上传限制
const (
	// MaxUploadSize 上传文件大小上限 (16 MiB)
	MaxUploadSize = 16 << 20
)

// AllowedExtensions 允许上传的文件扩展名
var AllowedExtensions = map[string]struct{}{
	"txt":  {},
	"pdf":  {},
	"docx": {},
	"doc":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// 分析结果类型
const (
	ResultTypeAnalyze   = "analyze"
	ResultTypeMatch     = "match"
	ResultTypeInterview = "interview"
	ResultTypeSelfIntro = "self-intro"
	ResultTypeCompare   = "compare"
)

// 错误码
const (
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"
	ErrCodeUnparseable     = "UNPARSEABLE_FILE"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeQuotaExceeded   = "QUOTA_EXCEEDED"
	ErrCodeUpstream        = "UPSTREAM_ERROR"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// 会员等级
const (
	MembershipFree    = 0 // 免费版
	MembershipPro     = 1 // 专业版
	MembershipPremium = 2 // 尊享版
)

// FreeDailyLimit 免费用户每日AI分析次数上限
const FreeDailyLimit = 3

// 订单支付状态
const (
	PayStatusPending = "pending"
	PayStatusPaid    = "paid"
	PayStatusClosed  = "closed"
)

// 缓存有效期
const (
	AnalysisCacheDuration = 24 * time.Hour // LLM分析结果缓存时间
	UploadMD5ExpireDays   = 365            // 上传文件MD5记录过期天数
)

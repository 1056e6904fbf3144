package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// User 用户账户表
type User struct {
	UserID             string     `gorm:"type:char(36);primaryKey"`
	Username           string     `gorm:"type:varchar(64);not null;uniqueIndex:idx_users_username_unique"`
	PasswordHash       string     `gorm:"type:varchar(128);not null"`
	Email              string     `gorm:"type:varchar(255);uniqueIndex:idx_users_email_unique"`
	Phone              string     `gorm:"type:varchar(20)"`
	AvatarURL          string     `gorm:"type:varchar(1024)"`
	MembershipLevel    int        `gorm:"default:0;index:idx_users_membership_level"` // 0=免费 1=专业版 2=旗舰版
	MembershipExpireAt *time.Time `gorm:"type:datetime"`
	CreatedAt          time.Time  `gorm:"autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// Resume 简历上传记录表，保存提取后的全文和结构化解析结果快照
type Resume struct {
	ResumeID            string         `gorm:"type:char(36);primaryKey"`
	UserID              *string        `gorm:"type:char(36);index:idx_resumes_user_id"` // 游客上传时为空
	OriginalFilename    string         `gorm:"type:varchar(255)"`
	FileExt             string         `gorm:"type:varchar(16)"`
	FileMD5             string         `gorm:"type:char(32);index:idx_resumes_file_md5"`
	RawText             string         `gorm:"type:text"`
	ParsedFieldsJSON    datatypes.JSON `gorm:"type:json"` // types.ResumeDocument序列化结果
	OriginalFilePathOSS string         `gorm:"type:varchar(1024)"`
	CreatedAt           time.Time      `gorm:"autoCreateTime;index:idx_resumes_created_at"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime"`

	User *User `gorm:"foreignKey:UserID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (Resume) TableName() string {
	return "resumes"
}

// AnalysisResult LLM分析结果表。
// 同一输入摘要和结果类型只保留一条记录，重复请求直接复用。
type AnalysisResult struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement"`
	ResumeID    *string        `gorm:"type:char(36);index:idx_ar_resume_id"`
	ResultType  string         `gorm:"type:varchar(32);not null;uniqueIndex:idx_ar_type_digest,priority:1"`
	InputDigest string         `gorm:"type:char(32);not null;uniqueIndex:idx_ar_type_digest,priority:2"`
	ResultJSON  datatypes.JSON `gorm:"type:json;not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
}

func (AnalysisResult) TableName() string {
	return "analysis_results"
}

// Order 会员购买订单表
type Order struct {
	OrderNo     string     `gorm:"type:varchar(32);primaryKey"`
	UserID      string     `gorm:"type:char(36);not null;index:idx_orders_user_id"`
	ProductID   int        `gorm:"not null"`
	ProductName string     `gorm:"type:varchar(64)"`
	Amount      float64    `gorm:"type:decimal(10,2)"` // 单位：元
	PayMethod   string     `gorm:"type:varchar(16)"`   // wechat / alipay
	Status      string     `gorm:"type:varchar(16);default:'pending';index:idx_orders_status"`
	PaidAt      *time.Time `gorm:"type:datetime"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`

	User *User `gorm:"foreignKey:UserID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Order) TableName() string {
	return "orders"
}

// UsageRecord 用户每日AI功能用量表，免费用户按日限额
type UsageRecord struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"type:char(36);not null;uniqueIndex:idx_usage_user_date,priority:1"`
	UsageDate string    `gorm:"type:char(10);not null;uniqueIndex:idx_usage_user_date,priority:2"` // 2006-01-02
	Count     int       `gorm:"default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UsageRecord) TableName() string {
	return "usage_records"
}

// ToJSON 将任意结构序列化为datatypes.JSON
func ToJSON(v any) (datatypes.JSON, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("序列化为JSON失败: %w", err)
	}
	return datatypes.JSON(data), nil
}

// FromJSON 将datatypes.JSON反序列化到目标结构
func FromJSON(data datatypes.JSON, dest any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("解析JSON失败: %w", err)
	}
	return nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"resume-assist-go/internal/config"
	"resume-assist-go/internal/storage/models"
	"resume-assist-go/internal/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var sqliteTracer = otel.Tracer("resume-assist-go/storage/sqlite")

// ErrRecordNotFound 查询未命中时返回，屏蔽底层gorm错误类型
var ErrRecordNotFound = gorm.ErrRecordNotFound

// GormTracingPlugin GORM插件，向OpenTelemetry上报数据库操作的追踪点
type GormTracingPlugin struct {
	tracer         trace.Tracer
	dbName         string
	disableErrSkip bool
}

// NewGormTracingPlugin 创建GORM追踪插件
func NewGormTracingPlugin(dbName string) *GormTracingPlugin {
	return &GormTracingPlugin{
		tracer:         sqliteTracer,
		dbName:         dbName,
		disableErrSkip: true,
	}
}

// Name 返回插件名称
func (p *GormTracingPlugin) Name() string {
	return "GormOpenTelemetryPlugin"
}

// Initialize 注册GORM回调以启用追踪
func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	if err := cb.Create().Before("gorm:create").Register("otel:before_create", p.before("CREATE")); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("otel:after_create", p.after()); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("otel:before_query", p.before("SELECT")); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("otel:after_query", p.after()); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("otel:before_update", p.before("UPDATE")); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("otel:after_update", p.after()); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("otel:before_delete", p.before("DELETE")); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("otel:after_delete", p.after()); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("otel:before_row", p.before("ROW")); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("otel:after_row", p.after()); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("otel:before_raw", p.before("RAW")); err != nil {
		return err
	}
	if err := cb.Raw().After("gorm:raw").Register("otel:after_raw", p.after()); err != nil {
		return err
	}
	return nil
}

type gormSpanCtxKey struct{}

func (p *GormTracingPlugin) before(operation string) func(db *gorm.DB) {
	return func(db *gorm.DB) {
		if p.disableErrSkip && db.Statement.SkipHooks {
			return
		}

		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}

		tableName := db.Statement.Table
		if tableName == "" {
			tableName = "unknown"
		}

		spanName := fmt.Sprintf("%s %s", operation, tableName)
		opts := []trace.SpanStartOption{
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				semconv.DBSystemSqlite,
				attribute.String("db.name", p.dbName),
				attribute.String("db.operation", operation),
				attribute.String("db.sql.table", tableName),
			),
		}

		newCtx, span := p.tracer.Start(ctx, spanName, opts...)
		db.Statement.Context = context.WithValue(newCtx, gormSpanCtxKey{}, span)
	}
}

func (p *GormTracingPlugin) after() func(db *gorm.DB) {
	return func(db *gorm.DB) {
		span, ok := db.Statement.Context.Value(gormSpanCtxKey{}).(trace.Span)
		if !ok {
			return
		}
		defer span.End()

		span.SetAttributes(
			attribute.Int64("db.rows_affected", db.Statement.RowsAffected),
			attribute.String("db.statement", tracing.SafeSQL(db.Statement.SQL.String())),
		)

		if db.Error != nil {
			if errors.Is(db.Error, gorm.ErrRecordNotFound) {
				// 未命中属于正常业务分支，不作为错误上报
				span.SetAttributes(attribute.String("error.type", "record_not_found"))
				span.SetStatus(codes.Ok, "record not found")
			} else {
				tracing.RecordError(span, db.Error, tracing.ErrorTypeDB)
			}
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}
}

// SQLite 提供关系数据库功能
type SQLite struct {
	db  *gorm.DB
	cfg *config.SQLiteConfig
}

// NewSQLite 创建SQLite客户端并自动迁移表结构
func NewSQLite(cfg *config.SQLiteConfig) (*SQLite, error) {
	if cfg == nil {
		return nil, fmt.Errorf("SQLite配置不能为空")
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("SQLite数据库路径不能为空")
	}

	var logLevel logger.LogLevel
	switch cfg.LogLevel {
	case 1:
		logLevel = logger.Silent
	case 2:
		logLevel = logger.Error
	case 3:
		logLevel = logger.Warn
	case 4:
		logLevel = logger.Info
	default:
		logLevel = logger.Warn
	}

	gormConfig := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logLevel),
		PrepareStmt:                              true,
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("打开SQLite数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}

	// SQLite写并发能力有限，连接数保持很小
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)

	s := &SQLite{db: db, cfg: cfg}

	tracingPlugin := NewGormTracingPlugin(cfg.Path)
	if err := db.Use(tracingPlugin); err != nil {
		return nil, fmt.Errorf("注册追踪插件失败: %w", err)
	}

	if err := s.autoMigrateSchema(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("自动迁移数据库结构失败: %w", err)
	}

	return s, nil
}

// autoMigrateSchema 使用GORM自动迁移数据库表结构
func (s *SQLite) autoMigrateSchema() error {
	currentLogger := s.db.Logger

	// 迁移阶段静默，避免打印大量DDL
	silentLogger := logger.New(
		log.New(log.Writer(), "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	silentDB := s.db.Session(&gorm.Session{Logger: silentLogger})

	err := silentDB.AutoMigrate(
		&models.User{},
		&models.Resume{},
		&models.AnalysisResult{},
		&models.Order{},
		&models.UsageRecord{},
	)

	s.db = s.db.Session(&gorm.Session{Logger: currentLogger})

	if err != nil {
		return fmt.Errorf("GORM自动迁移失败: %w", err)
	}
	return nil
}

// DB 返回GORM数据库连接实例
func (s *SQLite) DB() *gorm.DB {
	return s.db
}

// Close 关闭数据库连接
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	return sqlDB.Close()
}

//
// 简历相关
//

// SaveResume 保存简历记录
func (s *SQLite) SaveResume(ctx context.Context, resume *models.Resume) error {
	return s.db.WithContext(ctx).Create(resume).Error
}

// GetResumeByID 通过ID获取简历
func (s *SQLite) GetResumeByID(ctx context.Context, resumeID string) (*models.Resume, error) {
	var resume models.Resume
	if err := s.db.WithContext(ctx).Where("resume_id = ?", resumeID).First(&resume).Error; err != nil {
		return nil, err
	}
	return &resume, nil
}

// FindResumeByMD5 按内容MD5查找已有简历，用于去重复用
func (s *SQLite) FindResumeByMD5(ctx context.Context, md5sum string) (*models.Resume, error) {
	var resume models.Resume
	err := s.db.WithContext(ctx).
		Where("file_md5 = ?", md5sum).
		Order("created_at DESC").
		First(&resume).Error
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// ListResumes 分页列出简历，userID为空时返回全部
func (s *SQLite) ListResumes(ctx context.Context, userID string, page, pageSize int) ([]models.Resume, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := s.db.WithContext(ctx).Model(&models.Resume{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计简历数量失败: %w", err)
	}

	var resumes []models.Resume
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&resumes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询简历列表失败: %w", err)
	}
	return resumes, total, nil
}

// DeleteResume 删除简历记录
func (s *SQLite) DeleteResume(ctx context.Context, resumeID string) error {
	result := s.db.WithContext(ctx).
		Where("resume_id = ?", resumeID).
		Delete(&models.Resume{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateResumeParsedFields 更新简历的结构化解析结果
func (s *SQLite) UpdateResumeParsedFields(ctx context.Context, resumeID string, parsedJSON []byte) error {
	return s.db.WithContext(ctx).Model(&models.Resume{}).
		Where("resume_id = ?", resumeID).
		Update("parsed_fields_json", parsedJSON).Error
}

//
// 分析结果相关
//

// SaveAnalysisResult 保存分析结果，相同类型和输入摘要的记录覆盖更新
func (s *SQLite) SaveAnalysisResult(ctx context.Context, result *models.AnalysisResult) error {
	ctx, span := sqliteTracer.Start(ctx, "SQLite.SaveAnalysisResult",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("analysis.result_type", result.ResultType),
		attribute.String("analysis.input_digest", result.InputDigest),
	)

	err := s.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "result_type"}, {Name: "input_digest"}},
			DoUpdates: clause.AssignmentColumns([]string{"result_json", "resume_id"}),
		}).Create(result).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// GetAnalysisResult 按类型和输入摘要查找已有分析结果
func (s *SQLite) GetAnalysisResult(ctx context.Context, resultType, inputDigest string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	err := s.db.WithContext(ctx).
		Where("result_type = ? AND input_digest = ?", resultType, inputDigest).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

//
// 用户相关
//

// CreateUser 创建用户
func (s *SQLite) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

// GetUserByUsername 通过用户名获取用户
func (s *SQLite) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail 通过邮箱获取用户，登录时使用
func (s *SQLite) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID 通过ID获取用户
func (s *SQLite) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserMembership 更新用户会员等级和到期时间
func (s *SQLite) UpdateUserMembership(ctx context.Context, userID string, level int, expireAt *time.Time) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"membership_level":     level,
			"membership_expire_at": expireAt,
		}).Error
}

// UpdateUserProfile 更新用户可编辑的资料字段，零值字段跳过
func (s *SQLite) UpdateUserProfile(ctx context.Context, userID string, phone, avatarURL string) error {
	updates := map[string]interface{}{}
	if phone != "" {
		updates["phone"] = phone
	}
	if avatarURL != "" {
		updates["avatar_url"] = avatarURL
	}
	if len(updates) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}

//
// 订单相关
//

// CreateOrder 创建订单
func (s *SQLite) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

// GetOrderByNo 通过订单号获取订单
func (s *SQLite) GetOrderByNo(ctx context.Context, orderNo string) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkOrderPaid 将订单标记为已支付，仅pending状态的订单允许转换
func (s *SQLite) MarkOrderPaid(ctx context.Context, orderNo string, paidAt time.Time) error {
	result := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("order_no = ? AND status = ?", orderNo, "pending").
		Updates(map[string]interface{}{
			"status":  "paid",
			"paid_at": paidAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("订单不存在或已处理: %s", orderNo)
	}
	return nil
}

// ListOrdersByUser 列出用户的全部订单
func (s *SQLite) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

//
// 用量相关
//

// IncrDailyUsage 累加用户当天的AI功能用量并返回累加后的值
func (s *SQLite) IncrDailyUsage(ctx context.Context, userID, date string) (int, error) {
	err := s.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "usage_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + 1")}),
		}).Create(&models.UsageRecord{UserID: userID, UsageDate: date, Count: 1}).Error
	if err != nil {
		return 0, fmt.Errorf("累加用量失败: %w", err)
	}

	var record models.UsageRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND usage_date = ?", userID, date).
		First(&record).Error; err != nil {
		return 0, err
	}
	return record.Count, nil
}

// GetDailyUsage 查询用户当天的AI功能用量，无记录时返回0
func (s *SQLite) GetDailyUsage(ctx context.Context, userID, date string) (int, error) {
	var record models.UsageRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND usage_date = ?", userID, date).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return record.Count, nil
}

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-assist-go/internal/config"
	"resume-assist-go/internal/storage/models"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(&config.SQLiteConfig{
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestResumeRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	resume := &models.Resume{
		ResumeID:         "11111111-1111-1111-1111-111111111111",
		OriginalFilename: "张三的简历.pdf",
		FileExt:          ".pdf",
		FileMD5:          "d41d8cd98f00b204e9800998ecf8427e",
		RawText:          "张三\n13800138000",
	}
	require.NoError(t, s.SaveResume(ctx, resume))

	got, err := s.GetResumeByID(ctx, resume.ResumeID)
	require.NoError(t, err)
	assert.Equal(t, "张三的简历.pdf", got.OriginalFilename)
	assert.Nil(t, got.UserID)

	byMD5, err := s.FindResumeByMD5(ctx, resume.FileMD5)
	require.NoError(t, err)
	assert.Equal(t, resume.ResumeID, byMD5.ResumeID)

	_, err = s.GetResumeByID(ctx, "no-such-id")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestListResumesPagination(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	userID := "22222222-2222-2222-2222-222222222222"
	for i := 0; i < 3; i++ {
		resume := &models.Resume{
			ResumeID: "33333333-3333-3333-3333-33333333333" + string(rune('0'+i)),
			UserID:   &userID,
			FileExt:  ".txt",
		}
		require.NoError(t, s.SaveResume(ctx, resume))
	}

	resumes, total, err := s.ListResumes(ctx, userID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, resumes, 2)

	// 其他用户查不到
	resumes, total, err = s.ListResumes(ctx, "other-user", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, resumes)
}

func TestAnalysisResultUpsert(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	first := &models.AnalysisResult{
		ResultType:  "analyze",
		InputDigest: "abc123",
		ResultJSON:  []byte(`{"score": 70}`),
	}
	require.NoError(t, s.SaveAnalysisResult(ctx, first))

	second := &models.AnalysisResult{
		ResultType:  "analyze",
		InputDigest: "abc123",
		ResultJSON:  []byte(`{"score": 88}`),
	}
	require.NoError(t, s.SaveAnalysisResult(ctx, second))

	got, err := s.GetAnalysisResult(ctx, "analyze", "abc123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"score": 88}`, string(got.ResultJSON))
}

func TestOrderLifecycle(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	user := &models.User{
		UserID:       "44444444-4444-4444-4444-444444444444",
		Username:     "zhangsan",
		PasswordHash: "$2a$10$xxxxxxxxxxxxxxxxxxxxxx",
	}
	require.NoError(t, s.CreateUser(ctx, user))

	order := &models.Order{
		OrderNo:     "JA202501010930001234",
		UserID:      user.UserID,
		ProductID:   1,
		ProductName: "月度会员",
		Amount:      19.9,
		PayMethod:   "wechat",
		Status:      "pending",
	}
	require.NoError(t, s.CreateOrder(ctx, order))

	require.NoError(t, s.MarkOrderPaid(ctx, order.OrderNo, time.Now()))

	got, err := s.GetOrderByNo(ctx, order.OrderNo)
	require.NoError(t, err)
	assert.Equal(t, "paid", got.Status)
	assert.NotNil(t, got.PaidAt)

	// 重复支付被拒绝
	err = s.MarkOrderPaid(ctx, order.OrderNo, time.Now())
	assert.Error(t, err)
}

func TestDailyUsageCounter(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	userID := "55555555-5555-5555-5555-555555555555"
	date := "2025-01-01"

	count, err := s.GetDailyUsage(ctx, userID, date)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = s.IncrDailyUsage(ctx, userID, date)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = s.IncrDailyUsage(ctx, userID, date)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// 不同日期独立计数
	count, err = s.IncrDailyUsage(ctx, userID, "2025-01-02")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpdateUserMembership(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	user := &models.User{
		UserID:       "66666666-6666-6666-6666-666666666666",
		Username:     "lisi",
		PasswordHash: "$2a$10$yyyyyyyyyyyyyyyyyyyyyy",
	}
	require.NoError(t, s.CreateUser(ctx, user))

	expireAt := time.Now().Add(30 * 24 * time.Hour)
	require.NoError(t, s.UpdateUserMembership(ctx, user.UserID, 1, &expireAt))

	got, err := s.GetUserByID(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MembershipLevel)
	require.NotNil(t, got.MembershipExpireAt)
}

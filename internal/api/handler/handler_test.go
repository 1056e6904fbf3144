package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-assist-go/internal/agent"
	"resume-assist-go/internal/api/handler"
	"resume-assist-go/internal/api/router"
	"resume-assist-go/internal/auth"
	"resume-assist-go/internal/config"
	"resume-assist-go/internal/constants"
	"resume-assist-go/internal/job"
	"resume-assist-go/internal/payment"
	"resume-assist-go/internal/processor"
	"resume-assist-go/internal/render"
	"resume-assist-go/internal/storage"
)

const testAdminKey = "test-admin-key"

const sampleResumeText = `张三
13800138000
zhangsan@example.com

求职意向：后端开发工程师

工作经历
2020.03 - 至今
阿里巴巴集团 高级开发工程师
负责订单系统的设计与开发

教育背景
2014.09 - 2018.06
复旦大学 计算机科学与技术 本科

专业技能
熟悉Python、Go、MySQL、Redis`

// stubChatModel 固定返回同一段内容的LLM桩
type stubChatModel struct {
	content string
}

func (s *stubChatModel) Generate(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return schema.AssistantMessage(s.content, nil), nil
}

// stubTester 连通性测试桩
type stubTester struct {
	err error
}

func (s *stubTester) TestConnection(ctx context.Context, settings config.LLMSettings) error {
	return s.err
}

type testApp struct {
	hertz *server.Hertz
	store *storage.Storage
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	sqlite, err := storage.NewSQLite(&config.SQLiteConfig{
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	store := &storage.Storage{SQLite: sqlite}
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.BcryptCost = 4
	cfg.LLM.UserConfigPath = filepath.Join(t.TempDir(), "user_config.json")
	cfg.LLM.BaseURL = "https://api.example.com/v1"
	cfg.LLM.Model = "test-model"

	chatModel := &stubChatModel{content: `{"score": 80}`}
	svc := processor.NewService(cfg, store, agent.NewGateway(chatModel))
	tokens := auth.NewTokenManager(&cfg.JWT)
	settings := config.NewLLMSettingsHolder(&cfg.LLM)

	handlers := &router.Handlers{
		Resume:   handler.NewResumeHandler(svc, render.NewRegistry(&cfg.Render)),
		Analysis: handler.NewAnalysisHandler(svc, store),
		User:     handler.NewUserHandler(store, tokens, &cfg.JWT),
		Payment:  handler.NewPaymentHandler(payment.NewService(sqlite)),
		Job:      handler.NewJobHandler(job.NewMockClient()),
		Config:   handler.NewConfigHandler(settings, &stubTester{}),
		Status:   handler.NewStatusHandler(agent.NewUsageStats()),
	}

	h := server.New()
	router.RegisterRoutes(h, handlers, tokens, testAdminKey)
	return &testApp{hertz: h, store: store}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (a *testApp) do(t *testing.T, method, path string, body any, headers ...ut.Header) *envelope {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
		headers = append(headers, ut.Header{Key: "Content-Type", Value: "application/json"})
	}

	resp := ut.PerformRequest(a.hertz.Engine, method, path,
		&ut.Body{Body: bytes.NewBuffer(payload), Len: len(payload)}, headers...)
	require.Equal(t, http.StatusOK, resp.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	return &env
}

func (a *testApp) register(t *testing.T, username, email string) (token string) {
	t.Helper()

	env := a.do(t, "POST", "/api/user/register", map[string]string{
		"username": username,
		"email":    email,
		"password": "secret123",
	})
	require.True(t, env.Success)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func (a *testApp) uploadResume(t *testing.T, token string) string {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "我的简历.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte(sampleResumeText))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	headers := []ut.Header{{Key: "Content-Type", Value: writer.FormDataContentType()}}
	if token != "" {
		headers = append(headers, bearer(token))
	}
	resp := ut.PerformRequest(a.hertz.Engine, "POST", "/api/upload",
		&ut.Body{Body: &buf, Len: buf.Len()}, headers...)
	require.Equal(t, http.StatusOK, resp.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	require.True(t, env.Success, "上传应成功: %s", resp.Body.String())

	var data struct {
		ResumeID string `json:"resume_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.ResumeID)
	return data.ResumeID
}

func bearer(token string) ut.Header {
	return ut.Header{Key: "Authorization", Value: "Bearer " + token}
}

func adminKey() ut.Header {
	return ut.Header{Key: "X-Admin-Key", Value: testAdminKey}
}

func TestRegisterLoginProfile(t *testing.T) {
	app := newTestApp(t)

	token := app.register(t, "zhangsan", "zhangsan@example.com")

	env := app.do(t, "POST", "/api/user/login", map[string]string{
		"email":    "zhangsan@example.com",
		"password": "secret123",
	})
	require.True(t, env.Success)

	env = app.do(t, "GET", "/api/user/profile", nil, bearer(token))
	require.True(t, env.Success)
	var profile struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		MembershipLevel int    `json:"membership_level"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "zhangsan", profile.Username)
	assert.Equal(t, constants.MembershipFree, profile.MembershipLevel)

	env = app.do(t, "PUT", "/api/user/profile", map[string]string{
		"phone":      "13900139000",
		"avatar_url": "https://example.com/avatar.png",
	}, bearer(token))
	require.True(t, env.Success)
	var updated struct {
		Phone string `json:"phone"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "13900139000", updated.Phone)
}

func TestProtectedRouteRequiresLogin(t *testing.T) {
	app := newTestApp(t)

	env := app.do(t, "GET", "/api/user/profile", nil)
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, constants.ErrCodeUnauthorized, env.Error.Code)
	assert.Contains(t, env.Error.Message, "登录")

	env = app.do(t, "GET", "/api/user/profile", nil,
		ut.Header{Key: "Authorization", Value: "Bearer not-a-token"})
	require.False(t, env.Success)
	assert.Contains(t, env.Error.Message, "登录")
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "zhangsan", "zhangsan@example.com")

	env := app.do(t, "POST", "/api/user/register", map[string]string{
		"username": "zhangsan",
		"email":    "other@example.com",
		"password": "secret123",
	})
	require.False(t, env.Success)
	assert.Equal(t, constants.ErrCodeInvalidArgument, env.Error.Code)

	env = app.do(t, "POST", "/api/user/register", map[string]string{
		"username": "lisi",
		"email":    "zhangsan@example.com",
		"password": "secret123",
	})
	require.False(t, env.Success)
	assert.Contains(t, env.Error.Message, "邮箱")
}

func TestUploadListExportDelete(t *testing.T) {
	app := newTestApp(t)
	resumeID := app.uploadResume(t, "")

	env := app.do(t, "GET", "/api/resumes", nil)
	require.True(t, env.Success)
	var list struct {
		Total   int64             `json:"total"`
		Resumes []json.RawMessage `json:"resumes"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, int64(1), list.Total)
	assert.Len(t, list.Resumes, 1)

	env = app.do(t, "GET", "/api/resumes/"+resumeID, nil)
	require.True(t, env.Success)

	resp := ut.PerformRequest(app.hertz.Engine, "GET",
		"/api/resumes/"+resumeID+"/export?template=modern&format=pdf", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/pdf", string(resp.Header().Get("Content-Type")))
	assert.Contains(t, string(resp.Header().Get("Content-Disposition")), "attachment")
	assert.True(t, bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF")))

	resp = ut.PerformRequest(app.hertz.Engine, "GET",
		"/api/resumes/"+resumeID+"/export?format=html", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "张三")

	env = app.do(t, "GET", "/api/resumes/"+resumeID+"/export?format=xls", nil)
	require.False(t, env.Success)
	assert.Equal(t, constants.ErrCodeInvalidArgument, env.Error.Code)

	env = app.do(t, "DELETE", "/api/resumes/"+resumeID, nil)
	require.True(t, env.Success)

	env = app.do(t, "GET", "/api/resumes/"+resumeID, nil)
	require.False(t, env.Success)
	assert.Equal(t, constants.ErrCodeNotFound, env.Error.Code)
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	app := newTestApp(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "resume.exe")
	require.NoError(t, err)
	_, err = part.Write([]byte("whatever"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	resp := ut.PerformRequest(app.hertz.Engine, "POST", "/api/upload",
		&ut.Body{Body: &buf, Len: buf.Len()},
		ut.Header{Key: "Content-Type", Value: writer.FormDataContentType()})
	require.Equal(t, http.StatusOK, resp.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	require.False(t, env.Success)
	assert.Equal(t, constants.ErrCodeInvalidArgument, env.Error.Code)
}

func TestAnalyzeFlow(t *testing.T) {
	app := newTestApp(t)
	resumeID := app.uploadResume(t, "")

	env := app.do(t, "POST", "/api/analyze", map[string]string{"resume_id": resumeID})
	require.True(t, env.Success)
	var outcome struct {
		Skills   []string `json:"skills"`
		Analysis struct {
			Score int `json:"score"`
		} `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &outcome))
	assert.Contains(t, outcome.Skills, "Python")
	assert.Equal(t, 80, outcome.Analysis.Score)

	env = app.do(t, "POST", "/api/analyze", map[string]string{"resume_id": "no-such-id"})
	require.False(t, env.Success)
	assert.Equal(t, constants.ErrCodeNotFound, env.Error.Code)

	env = app.do(t, "POST", "/api/analyze", map[string]string{})
	require.False(t, env.Success)
	assert.Equal(t, constants.ErrCodeInvalidArgument, env.Error.Code)
}

func TestCompareTwoResumes(t *testing.T) {
	app := newTestApp(t)
	resumeID1 := app.uploadResume(t, "")
	resumeID2 := app.uploadResume(t, "")

	env := app.do(t, "POST", "/api/compare", map[string]string{
		"resume_id_1": resumeID1,
		"resume_id_2": resumeID2,
	})
	require.True(t, env.Success)
	var result struct {
		SkillComparison struct {
			Resume1Score  int      `json:"resume1_score"`
			Resume2Score  int      `json:"resume2_score"`
			CommonSkills  []string `json:"common_skills"`
			OnlyInResume1 []string `json:"only_in_resume1"`
			OnlyInResume2 []string `json:"only_in_resume2"`
		} `json:"skill_comparison"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, result.SkillComparison.Resume1Score, result.SkillComparison.Resume2Score)
	assert.NotEmpty(t, result.SkillComparison.CommonSkills)
	assert.Empty(t, result.SkillComparison.OnlyInResume1)
	assert.Empty(t, result.SkillComparison.OnlyInResume2)
}

func TestCompareRejectsSameResumeID(t *testing.T) {
	app := newTestApp(t)
	resumeID := app.uploadResume(t, "")

	env := app.do(t, "POST", "/api/compare", map[string]string{
		"resume_id_1": resumeID,
		"resume_id_2": resumeID,
	})
	require.False(t, env.Success)
	assert.Equal(t, constants.ErrCodeInvalidArgument, env.Error.Code)
	assert.Contains(t, env.Error.Message, "不同")
}

func TestFreeQuotaExhausted(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "zhangsan", "zhangsan@example.com")
	resumeID := app.uploadResume(t, token)

	today := time.Now().Format("2006-01-02")
	user, err := app.store.SQLite.GetUserByEmail(context.Background(), "zhangsan@example.com")
	require.NoError(t, err)
	for i := 0; i < constants.FreeDailyLimit; i++ {
		_, err := app.store.SQLite.IncrDailyUsage(context.Background(), user.UserID, today)
		require.NoError(t, err)
	}

	env := app.do(t, "POST", "/api/analyze",
		map[string]string{"resume_id": resumeID}, bearer(token))
	require.False(t, env.Success)
	assert.Equal(t, constants.ErrCodeQuotaExceeded, env.Error.Code)

	// 游客不受限
	env = app.do(t, "POST", "/api/analyze", map[string]string{"resume_id": resumeID})
	require.True(t, env.Success)
}

func TestUsageEndpoints(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "zhangsan", "zhangsan@example.com")

	env := app.do(t, "GET", "/api/user/usage", nil, bearer(token))
	require.True(t, env.Success)
	var usage struct {
		TodayCount int `json:"today_count"`
		DailyLimit int `json:"daily_limit"`
		Remaining  int `json:"remaining"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &usage))
	assert.Equal(t, 0, usage.TodayCount)
	assert.Equal(t, constants.FreeDailyLimit, usage.DailyLimit)
	assert.Equal(t, constants.FreeDailyLimit, usage.Remaining)

	env = app.do(t, "POST", "/api/user/usage",
		map[string]string{"usage_type": "analyze"}, bearer(token))
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, &usage))
	assert.Equal(t, 1, usage.TodayCount)
	assert.Equal(t, constants.FreeDailyLimit-1, usage.Remaining)
}

func TestPaymentFlow(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "zhangsan", "zhangsan@example.com")

	env := app.do(t, "GET", "/api/products", nil)
	require.True(t, env.Success)
	var products struct {
		Products []struct {
			ID    int     `json:"id"`
			Price float64 `json:"price"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.Len(t, products.Products, 3)

	// 未登录不能下单
	env = app.do(t, "POST", "/api/payment/create-order",
		map[string]any{"product_type": 1, "pay_type": "wechat"})
	require.False(t, env.Success)
	assert.Contains(t, env.Error.Message, "登录")

	env = app.do(t, "POST", "/api/payment/create-order",
		map[string]any{"product_type": 1, "pay_type": "wechat"}, bearer(token))
	require.True(t, env.Success)
	var order struct {
		OrderNo   string            `json:"order_no"`
		PayParams map[string]string `json:"pay_params"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &order))
	require.NotEmpty(t, order.OrderNo)
	assert.Contains(t, order.PayParams["package"], "prepay_id=wx")

	env = app.do(t, "POST", "/api/payment/notify",
		map[string]string{"order_no": order.OrderNo})
	require.True(t, env.Success)

	env = app.do(t, "GET", "/api/payment/query-order/"+order.OrderNo, nil)
	require.True(t, env.Success)
	var query struct {
		PayStatus string `json:"pay_status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &query))
	assert.Equal(t, "paid", query.PayStatus)

	// 会员已开通
	env = app.do(t, "GET", "/api/user/membership", nil, bearer(token))
	require.True(t, env.Success)
	var membership struct {
		Level  int  `json:"level"`
		Active bool `json:"active"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &membership))
	assert.Equal(t, constants.MembershipPro, membership.Level)
	assert.True(t, membership.Active)

	env = app.do(t, "GET", "/api/payment/orders", nil, bearer(token))
	require.True(t, env.Success)

	// 重复回调被拒绝
	env = app.do(t, "POST", "/api/payment/notify",
		map[string]string{"order_no": order.OrderNo})
	require.False(t, env.Success)
}

func TestJobEndpoints(t *testing.T) {
	app := newTestApp(t)

	env := app.do(t, "GET", "/api/jobs/hot", nil)
	require.True(t, env.Success)
	var hot struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &hot))
	assert.Equal(t, 16, hot.Total)

	env = app.do(t, "GET", "/api/jobs/search?keyword=python&page=1&limit=5", nil)
	require.True(t, env.Success)

	jd := fmt.Sprintf("招聘：%s\n任职要求\n熟悉Go语言和MySQL数据库的使用", "高级Go开发工程师")
	env = app.do(t, "POST", "/api/jobs/parse", map[string]string{"job_description": jd})
	require.True(t, env.Success)
	var parsed struct {
		Title  string   `json:"title"`
		Skills []string `json:"skills"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &parsed))
	assert.Equal(t, "高级Go开发工程师", parsed.Title)
	assert.Contains(t, parsed.Skills, "Go")
}

func TestConfigEndpoints(t *testing.T) {
	app := newTestApp(t)

	env := app.do(t, "GET", "/api/config", nil)
	require.True(t, env.Success)
	var cfg struct {
		BaseURL  string `json:"base_url"`
		IsCustom bool   `json:"is_custom"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cfg))
	assert.False(t, cfg.IsCustom)

	// 管理操作需要密钥
	body := map[string]string{
		"base_url": "https://llm.example.com/v1",
		"api_key":  "sk-test-1234567890abcdef",
		"model":    "custom-model",
	}
	env = app.do(t, "POST", "/api/config/save", body)
	require.False(t, env.Success)
	assert.Equal(t, constants.ErrCodeUnauthorized, env.Error.Code)

	env = app.do(t, "POST", "/api/config/save", body, adminKey())
	require.True(t, env.Success)
	var saved struct {
		IsCustom bool   `json:"is_custom"`
		APIKey   string `json:"api_key"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	assert.True(t, saved.IsCustom)
	assert.NotContains(t, saved.APIKey, "abcdef")

	env = app.do(t, "POST", "/api/config/test", map[string]string{})
	require.True(t, env.Success)

	env = app.do(t, "POST", "/api/config/reset", nil, adminKey())
	require.True(t, env.Success)
}

func TestStatusEndpoints(t *testing.T) {
	app := newTestApp(t)

	env := app.do(t, "GET", "/api/status", nil)
	require.True(t, env.Success)
	var snap struct {
		TotalCalls int64 `json:"total_calls"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, int64(0), snap.TotalCalls)

	env = app.do(t, "POST", "/api/status/reset", nil)
	require.False(t, env.Success)
	assert.Equal(t, constants.ErrCodeUnauthorized, env.Error.Code)

	env = app.do(t, "POST", "/api/status/reset", nil, adminKey())
	require.True(t, env.Success)
}

func TestTemplatesEndpoint(t *testing.T) {
	app := newTestApp(t)

	env := app.do(t, "GET", "/api/templates", nil)
	require.True(t, env.Success)
	var data struct {
		Templates []struct {
			ID string `json:"id"`
		} `json:"templates"`
		Formats []struct {
			ID string `json:"id"`
		} `json:"formats"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Templates, 5)
	assert.Len(t, data.Formats, 3)
}

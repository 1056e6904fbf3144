package processor

import (
	"bytes"
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-assist-go/internal/agent"
	"resume-assist-go/internal/config"
	"resume-assist-go/internal/constants"
	"resume-assist-go/internal/storage"
)

const sampleResumeText = `张三
13800138000
zhangsan@example.com

求职意向：后端开发工程师
期望城市：上海

工作经历
2020.03 - 至今
阿里巴巴集团 高级开发工程师
负责订单系统的设计与开发
优化接口性能，响应时间降低50%

教育背景
2014.09 - 2018.06
复旦大学 计算机科学与技术 本科

专业技能
熟悉Python、Go、MySQL、Redis、Docker`

// countingChatModel 记录调用次数的LLM桩
type countingChatModel struct {
	calls   atomic.Int64
	content string
}

func (c *countingChatModel) Generate(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	c.calls.Add(1)
	return schema.AssistantMessage(c.content, nil), nil
}

func newTestService(t *testing.T, chatModel agent.ChatModel) (*Service, *storage.Storage) {
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

	if chatModel == nil {
		chatModel = &countingChatModel{content: `{"score": 80}`}
	}
	return NewService(cfg, store, agent.NewGateway(chatModel)), store
}

func TestProcessUploadTxt(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	result, err := svc.ProcessUpload(ctx, "", "我的简历.txt", []byte(sampleResumeText))
	require.NoError(t, err)

	assert.NotEmpty(t, result.ResumeID)
	assert.False(t, result.Reused)
	assert.Equal(t, "张三", result.Document.Name)
	assert.Equal(t, "13800138000", result.Document.Phone)
	assert.Equal(t, "后端开发工程师", result.Document.JobTitle)
	assert.Contains(t, result.Document.Skills, "Python")
	assert.NotEmpty(t, result.Document.WorkExperience)
	assert.NotEmpty(t, result.Document.Education)
}

func TestProcessUploadDedup(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	first, err := svc.ProcessUpload(ctx, "", "resume.txt", []byte(sampleResumeText))
	require.NoError(t, err)

	second, err := svc.ProcessUpload(ctx, "", "resume_copy.txt", []byte(sampleResumeText))
	require.NoError(t, err)

	assert.True(t, second.Reused)
	assert.Equal(t, first.ResumeID, second.ResumeID)
	assert.Equal(t, "张三", second.Document.Name)
}

func TestProcessUploadValidation(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.ProcessUpload(ctx, "", "resume.exe", []byte("MZ"))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	_, err = svc.ProcessUpload(ctx, "", "resume.txt", nil)
	assert.ErrorIs(t, err, ErrEmptyFile)

	huge := bytes.Repeat([]byte("a"), constants.MaxUploadSize+1)
	_, err = svc.ProcessUpload(ctx, "", "resume.txt", huge)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestProcessUploadUnparseable(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	// 非法PDF内容提取不出文本
	_, err := svc.ProcessUpload(ctx, "", "resume.pdf", []byte("绝对不是PDF"))
	assert.ErrorIs(t, err, ErrUnparseableFile)
}

func TestGetResume(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	uploaded, err := svc.ProcessUpload(ctx, "", "resume.txt", []byte(sampleResumeText))
	require.NoError(t, err)

	record, doc, err := svc.GetResume(ctx, uploaded.ResumeID)
	require.NoError(t, err)
	assert.Equal(t, "resume.txt", record.OriginalFilename)
	assert.Equal(t, "张三", doc.Name)

	_, _, err = svc.GetResume(ctx, "missing-id")
	assert.ErrorIs(t, err, ErrResumeNotFound)
}

func TestAnalyzeCombinesHeuristicsAndLLM(t *testing.T) {
	chatModel := &countingChatModel{content: `{"score": 85, "strengths": ["经验丰富"]}`}
	svc, _ := newTestService(t, chatModel)
	ctx := context.Background()

	outcome, err := svc.Analyze(ctx, sampleResumeText)
	require.NoError(t, err)

	assert.Equal(t, "张三", outcome.ContactInfo.Name)
	assert.Contains(t, outcome.Skills, "MySQL")
	assert.NotEmpty(t, outcome.RecommendedPositions)
	assert.Equal(t, 85, outcome.Analysis.Score)
}

func TestAnalyzeCacheAvoidsRepeatCalls(t *testing.T) {
	chatModel := &countingChatModel{content: `{"score": 85}`}
	svc, _ := newTestService(t, chatModel)
	ctx := context.Background()

	_, err := svc.Analyze(ctx, sampleResumeText)
	require.NoError(t, err)
	_, err = svc.Analyze(ctx, sampleResumeText)
	require.NoError(t, err)

	assert.Equal(t, int64(1), chatModel.calls.Load())

	// 不同文本触发新的调用
	_, err = svc.Analyze(ctx, sampleResumeText+"\n补充内容")
	require.NoError(t, err)
	assert.Equal(t, int64(2), chatModel.calls.Load())
}

func TestMatchCachedByResumeAndJD(t *testing.T) {
	chatModel := &countingChatModel{content: `{"match_score": 78, "match_details": "匹配良好"}`}
	svc, _ := newTestService(t, chatModel)
	ctx := context.Background()

	jd := "职位：后端开发工程师\n任职要求：熟悉Go和MySQL"
	report, err := svc.Match(ctx, sampleResumeText, jd)
	require.NoError(t, err)
	assert.Equal(t, 78, report.MatchScore)

	_, err = svc.Match(ctx, sampleResumeText, jd)
	require.NoError(t, err)
	assert.Equal(t, int64(1), chatModel.calls.Load())

	// JD变化后重新分析
	_, err = svc.Match(ctx, sampleResumeText, jd+"\n加分项：Kubernetes")
	require.NoError(t, err)
	assert.Equal(t, int64(2), chatModel.calls.Load())
}

func TestInterviewFallsBackToDefaultBank(t *testing.T) {
	// LLM返回的题目不足12道
	chatModel := &countingChatModel{content: `{"interview_questions": [{"type": "自我介绍", "question": "介绍自己"}]}`}
	svc, _ := newTestService(t, chatModel)

	report, err := svc.InterviewQuestions(context.Background(), sampleResumeText, "")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(report.InterviewQuestions), 12)
}

func TestCompareLocalOnly(t *testing.T) {
	chatModel := &countingChatModel{content: `{}`}
	svc, _ := newTestService(t, chatModel)
	ctx := context.Background()

	other := `李四
工作经历
2022.01 - 2023.01
小公司 初级工程师

专业技能
熟悉Java`

	result, err := svc.Compare(ctx, sampleResumeText, other, "")
	require.NoError(t, err)

	assert.Greater(t, result.OverallScore, 0)
	assert.NotEmpty(t, result.Recommendations)
	// 对比是本地算法，不应触发LLM调用
	assert.Equal(t, int64(0), chatModel.calls.Load())

	// 再次对比命中缓存，结果一致
	again, err := svc.Compare(ctx, sampleResumeText, other, "")
	require.NoError(t, err)
	assert.Equal(t, result.OverallScore, again.OverallScore)
}

func TestSelfIntroductionCached(t *testing.T) {
	chatModel := &countingChatModel{content: `{"one_minute": "大家好", "three_minutes": "大家好，我是张三", "key_points": ["要点"]}`}
	svc, _ := newTestService(t, chatModel)
	ctx := context.Background()

	report, err := svc.SelfIntroduction(ctx, sampleResumeText, "")
	require.NoError(t, err)
	assert.Equal(t, "大家好", report.OneMinute)

	_, err = svc.SelfIntroduction(ctx, sampleResumeText, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), chatModel.calls.Load())
}

func TestListResumesScopedToUser(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.ProcessUpload(ctx, "user-a", fmt.Sprintf("简历%d.txt", i),
			[]byte(fmt.Sprintf("%s\n版本%d", sampleResumeText, i)))
		require.NoError(t, err)
	}

	resumes, total, err := svc.ListResumes(ctx, "user-a", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, resumes, 2)
}

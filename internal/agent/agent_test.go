package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-assist-go/internal/config"
)

func newTestHolder(t *testing.T, baseURL string) *config.LLMSettingsHolder {
	t.Helper()
	return config.NewLLMSettingsHolder(&config.LLMConfig{
		BaseURL:        baseURL,
		APIKey:         "sk-test-key",
		Model:          "test-model",
		UserConfigPath: filepath.Join(t.TempDir(), "user_llm.json"),
	})
}

func chatResponse(content string, promptTokens, completionTokens int) string {
	payload := map[string]any{
		"id":    "chatcmpl-test",
		"model": "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     promptTokens,
			"completion_tokens": completionTokens,
			"total_tokens":      promptTokens + completionTokens,
		},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func TestGenerateRecordsUsage(t *testing.T) {
	var gotReq openAIChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, chatResponse(`{"score": 88}`, 120, 30))
	}))
	defer server.Close()

	stats := NewUsageStats()
	m := NewOpenAIChatModel(newTestHolder(t, server.URL), stats)

	resp, err := m.Generate(context.Background(), []*schema.Message{schema.UserMessage("你好")},
		model.WithTemperature(0.5))
	require.NoError(t, err)

	assert.Equal(t, schema.Assistant, resp.Role)
	assert.Equal(t, `{"score": 88}`, resp.Content)
	require.NotNil(t, resp.ResponseMeta)
	assert.Equal(t, 150, resp.ResponseMeta.Usage.TotalTokens)

	assert.Equal(t, "test-model", gotReq.Model)
	assert.InDelta(t, 0.5, gotReq.Temperature, 0.001)
	assert.Equal(t, defaultMaxTokens, gotReq.MaxTokens)

	snap := stats.Snapshot()
	assert.Equal(t, int64(1), snap.TotalCalls)
	assert.Equal(t, int64(120), snap.TotalPromptTokens)
	assert.Equal(t, int64(30), snap.TotalCompletionTokens)
	assert.Equal(t, int64(150), snap.TotalTokens)
	assert.NotEmpty(t, snap.LastCallTime)
}

func TestGenerateNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": {"message": "Invalid API key"}}`)
	}))
	defer server.Close()

	stats := NewUsageStats()
	m := NewOpenAIChatModel(newTestHolder(t, server.URL), stats)

	_, err := m.Generate(context.Background(), []*schema.Message{schema.UserMessage("hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, int64(0), stats.Snapshot().TotalCalls)
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	holder := config.NewLLMSettingsHolder(&config.LLMConfig{
		BaseURL:        "http://localhost:1",
		Model:          "test-model",
		UserConfigPath: filepath.Join(t.TempDir(), "user_llm.json"),
	})
	m := NewOpenAIChatModel(holder, nil)

	_, err := m.Generate(context.Background(), []*schema.Message{schema.UserMessage("hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API Key")
}

func TestTestConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openAIChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 10, req.MaxTokens)
		fmt.Fprint(w, chatResponse("Hello", 5, 2))
	}))
	defer server.Close()

	m := NewOpenAIChatModel(newTestHolder(t, server.URL), nil)

	err := m.TestConnection(context.Background(), config.LLMSettings{
		BaseURL: server.URL,
		APIKey:  "sk-probe",
		Model:   "test-model",
	})
	assert.NoError(t, err)

	err = m.TestConnection(context.Background(), config.LLMSettings{BaseURL: server.URL, Model: "m"})
	assert.Error(t, err)
}

func TestExtractJSONDirect(t *testing.T) {
	data, ok := ExtractJSON(`  {"score": 85}  `)
	require.True(t, ok)
	assert.JSONEq(t, `{"score": 85}`, string(data))
}

func TestExtractJSONFenced(t *testing.T) {
	raw := "```json\n{\"score\": 85, \"strengths\": [\"清晰\"]}\n```"
	data, ok := ExtractJSON(raw)
	require.True(t, ok)

	var report AnalysisReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 85, report.Score)
	assert.Equal(t, []string{"清晰"}, report.Strengths)
}

func TestExtractJSONInterviewSalvage(t *testing.T) {
	// 整体JSON被截断，但数组部分完好
	raw := `以下是生成的面试题：{"interview_questions": [{"type": "自我介绍", "question": "请介绍你自己", "answer_points": ["要点"], "sample_answer": "答", "tips": "提示"}] 后面是一些损坏的内容`
	data, ok := ExtractJSON(raw)
	require.True(t, ok)

	var report InterviewReport
	require.NoError(t, json.Unmarshal(data, &report))
	require.Len(t, report.InterviewQuestions, 1)
	assert.Equal(t, "请介绍你自己", report.InterviewQuestions[0].Question)
}

func TestExtractJSONOuterObject(t *testing.T) {
	raw := `模型解释了一大段话，然后给出 {"match_score": 75, "match_details": "吻合"} 结束。`
	data, ok := ExtractJSON(raw)
	require.True(t, ok)

	var report MatchReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 75, report.MatchScore)
}

func TestExtractJSONGarbage(t *testing.T) {
	_, ok := ExtractJSON("完全不是JSON的回答")
	assert.False(t, ok)

	_, ok = ExtractJSON("")
	assert.False(t, ok)
}

type stubChatModel struct {
	content string
	err     error
}

func (s *stubChatModel) Generate(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if s.err != nil {
		return nil, s.err
	}
	return schema.AssistantMessage(s.content, nil), nil
}

func TestGatewayAnalyzeFallback(t *testing.T) {
	g := NewGateway(&stubChatModel{err: fmt.Errorf("连接超时")})
	report := g.AnalyzeResume(context.Background(), "简历内容")

	assert.Equal(t, 70, report.Score)
	assert.Equal(t, []string{"简历结构清晰"}, report.Strengths)
}

func TestGatewayAnalyzeParsesResponse(t *testing.T) {
	g := NewGateway(&stubChatModel{content: "```json\n{\"score\": 92, \"strengths\": [\"量化充分\"]}\n```"})
	report := g.AnalyzeResume(context.Background(), "简历内容")

	assert.Equal(t, 92, report.Score)
	assert.Equal(t, []string{"量化充分"}, report.Strengths)
}

func TestGatewayMatchFallback(t *testing.T) {
	g := NewGateway(&stubChatModel{content: "无法解析的回答"})
	report := g.MatchJD(context.Background(), "简历", "JD")

	assert.Equal(t, 60, report.MatchScore)
	assert.Equal(t, "信息不完整，无法准确匹配", report.MatchDetails)
}

func TestGatewayInterviewTooFewQuestions(t *testing.T) {
	g := NewGateway(&stubChatModel{content: `{"interview_questions": [{"type": "自我介绍", "question": "介绍一下自己"}]}`})
	report := g.GenerateInterviewQuestions(context.Background(), "简历", "JD")

	// 不足12道时整体替换为兜底题库
	assert.GreaterOrEqual(t, len(report.InterviewQuestions), minInterviewQuestions)
	assert.Equal(t, "自我介绍", report.InterviewQuestions[0].Type)
}

func TestGatewayInterviewKeepsFullSet(t *testing.T) {
	questions := make([]InterviewQuestion, 12)
	for i := range questions {
		questions[i] = InterviewQuestion{Type: "技术能力", Question: fmt.Sprintf("问题%d", i+1)}
	}
	payload, err := json.Marshal(InterviewReport{InterviewQuestions: questions})
	require.NoError(t, err)

	g := NewGateway(&stubChatModel{content: string(payload)})
	report := g.GenerateInterviewQuestions(context.Background(), "简历", "JD")

	require.Len(t, report.InterviewQuestions, 12)
	assert.Equal(t, "问题1", report.InterviewQuestions[0].Question)
}

func TestGatewaySelfIntroFallback(t *testing.T) {
	g := NewGateway(&stubChatModel{err: fmt.Errorf("失败")})
	report := g.GenerateSelfIntroduction(context.Background(), "简历", "JD")

	assert.Equal(t, "请上传简历后生成自我介绍", report.OneMinute)
	assert.Equal(t, []string{"基本信息", "核心能力", "求职意向"}, report.KeyPoints)
}

func TestUsageStatsReset(t *testing.T) {
	stats := NewUsageStats()
	stats.Record(10, 5, 15)
	stats.Record(20, 10, 30)

	snap := stats.Reset()
	assert.Equal(t, int64(2), snap.TotalCalls)
	assert.Equal(t, int64(45), snap.TotalTokens)

	after := stats.Snapshot()
	assert.Equal(t, int64(0), after.TotalCalls)
	assert.Empty(t, after.LastCallTime)
}

func TestTruncateRunes(t *testing.T) {
	text := strings.Repeat("简", 100)
	truncated := truncateRunes(text, 10)
	assert.Equal(t, 10, len([]rune(truncated)))
	assert.Equal(t, strings.Repeat("简", 10), truncated)

	assert.Equal(t, "abc", truncateRunes("abc", 10))
}

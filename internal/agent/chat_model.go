package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"resume-assist-go/internal/config"
	"resume-assist-go/internal/logger"
	"resume-assist-go/internal/ratelimit"
)

const (
	defaultMaxTokens      = 4000
	defaultRequestTimeout = 60 * time.Second
	testKeyTimeout        = 30 * time.Second
	defaultQPM            = 60
)

// ChatModel 是本项目需要的最小LLM能力，与 eino 的 model.ChatModel 签名保持一致，
// 方便后续直接接入 eino 生态的模型实现。
type ChatModel interface {
	Generate(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// --- OpenAI 兼容请求/响应结构 ---

type openAIChatRequest struct {
	Model       string            `json:"model"`
	Messages    []*schema.Message `json:"messages"`
	Temperature float32           `json:"temperature"`
	MaxTokens   int               `json:"max_tokens"`
}

type openAIChatMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

type openAIChatChoice struct {
	Index        int               `json:"index"`
	Message      openAIChatMessage `json:"message"`
	FinishReason string            `json:"finish_reason"`
}

type openAIUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type openAIChatResponse struct {
	ID      string             `json:"id"`
	Model   string             `json:"model"`
	Choices []openAIChatChoice `json:"choices"`
	Usage   openAIUsage        `json:"usage"`
}

// OpenAIChatModel 调用任意 OpenAI 兼容的 chat/completions 端点。
// 每次请求前从 LLMSettingsHolder 读取快照，运行时更新的Key立即生效。
type OpenAIChatModel struct {
	settings   *config.LLMSettingsHolder
	stats      *UsageStats
	httpClient *http.Client
	limiter    *ratelimit.TokenBucket
}

// NewOpenAIChatModel 创建模型客户端
func NewOpenAIChatModel(settings *config.LLMSettingsHolder, stats *UsageStats) *OpenAIChatModel {
	return &OpenAIChatModel{
		settings:   settings,
		stats:      stats,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		limiter:    ratelimit.NewTokenBucket(defaultQPM, 0),
	}
}

// Generate 实现 ChatModel 接口
func (m *OpenAIChatModel) Generate(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	settings := m.settings.Snapshot()
	if strings.TrimSpace(settings.APIKey) == "" {
		return nil, fmt.Errorf("LLM API Key 未配置")
	}

	options := model.GetCommonOptions(&model.Options{}, opts...)

	reqPayload := openAIChatRequest{
		Model:       settings.Model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   defaultMaxTokens,
	}
	if options.Model != nil && *options.Model != "" {
		reqPayload.Model = *options.Model
	}
	if options.Temperature != nil {
		reqPayload.Temperature = *options.Temperature
	}
	if options.MaxTokens != nil {
		reqPayload.MaxTokens = *options.MaxTokens
	}

	respBody, err := m.post(ctx, settings, reqPayload)
	if err != nil {
		return nil, err
	}

	var openAIResp openAIChatResponse
	if err := json.Unmarshal(respBody, &openAIResp); err != nil {
		return nil, fmt.Errorf("反序列化LLM响应失败: %w", err)
	}
	if len(openAIResp.Choices) == 0 {
		return nil, fmt.Errorf("LLM响应不包含任何choices")
	}

	if m.stats != nil {
		m.stats.Record(openAIResp.Usage.PromptTokens, openAIResp.Usage.CompletionTokens, openAIResp.Usage.TotalTokens)
	}

	apiMessage := openAIResp.Choices[0].Message
	content := ""
	if apiMessage.Content != nil {
		content = *apiMessage.Content
	}

	result := &schema.Message{
		Role:    schema.RoleType(apiMessage.Role),
		Content: content,
		ResponseMeta: &schema.ResponseMeta{
			FinishReason: openAIResp.Choices[0].FinishReason,
			Usage: &schema.TokenUsage{
				PromptTokens:     openAIResp.Usage.PromptTokens,
				CompletionTokens: openAIResp.Usage.CompletionTokens,
				TotalTokens:      openAIResp.Usage.TotalTokens,
			},
		},
	}
	if result.Role == "" {
		result.Role = schema.Assistant
	}
	return result, nil
}

// TestConnection 用一条最小请求验证给定配置是否可用
func (m *OpenAIChatModel) TestConnection(ctx context.Context, settings config.LLMSettings) error {
	if strings.TrimSpace(settings.APIKey) == "" {
		return fmt.Errorf("API Key 不能为空")
	}

	ctx, cancel := context.WithTimeout(ctx, testKeyTimeout)
	defer cancel()

	reqPayload := openAIChatRequest{
		Model:       settings.Model,
		Messages:    []*schema.Message{schema.UserMessage("Hi")},
		Temperature: 0.7,
		MaxTokens:   10,
	}

	respBody, err := m.post(ctx, settings, reqPayload)
	if err != nil {
		return err
	}

	var openAIResp openAIChatResponse
	if err := json.Unmarshal(respBody, &openAIResp); err != nil {
		return fmt.Errorf("反序列化LLM响应失败: %w", err)
	}
	if len(openAIResp.Choices) == 0 {
		return fmt.Errorf("LLM响应不包含任何choices")
	}
	return nil
}

// post 发送一次chat/completions请求。
// 经过令牌桶限流，可重试的失败（限频、超时等）按指数退避自动重试。
func (m *OpenAIChatModel) post(ctx context.Context, settings config.LLMSettings, payload openAIChatRequest) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("序列化请求体失败: %w", err)
	}
	url := strings.TrimRight(settings.BaseURL, "/") + "/chat/completions"

	var bodyBytes []byte
	attempt := func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
		if err != nil {
			return fmt.Errorf("创建HTTP请求失败: %w", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+settings.APIKey)
		httpReq.Header.Set("Content-Type", "application/json")

		start := time.Now()
		httpResp, err := m.httpClient.Do(httpReq)
		if err != nil {
			return fmt.Errorf("发送HTTP请求失败: %w", err)
		}
		defer httpResp.Body.Close()

		bodyBytes, err = io.ReadAll(httpResp.Body)
		if err != nil {
			return fmt.Errorf("读取响应体失败: %w", err)
		}

		logger.Ctx(ctx).Debug().
			Str("model", payload.Model).
			Int("status", httpResp.StatusCode).
			Dur("duration", time.Since(start)).
			Msg("LLM请求完成")

		if httpResp.StatusCode != http.StatusOK {
			return fmt.Errorf("LLM API请求失败，状态码 %d: %s", httpResp.StatusCode, truncateForError(string(bodyBytes), 500))
		}
		return nil
	}

	if m.limiter != nil {
		if err := m.limiter.RetryWithBackoff(ctx, attempt); err != nil {
			return nil, err
		}
	} else if err := attempt(); err != nil {
		return nil, err
	}
	return bodyBytes, nil
}

func truncateForError(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}

var _ ChatModel = (*OpenAIChatModel)(nil)

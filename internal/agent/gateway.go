package agent

import (
	"context"
	"encoding/json"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"resume-assist-go/internal/logger"
)

// Gateway 将四个LLM分析场景封装成类型化接口。
// LLM调用失败或JSON无法修复时返回兜底结果，调用方永远拿到可用数据。
type Gateway struct {
	chatModel ChatModel
}

// NewGateway 创建LLM网关
func NewGateway(chatModel ChatModel) *Gateway {
	return &Gateway{chatModel: chatModel}
}

// AnalyzeResume 分析单份简历
func (g *Gateway) AnalyzeResume(ctx context.Context, resumeText string) *AnalysisReport {
	report := &AnalysisReport{}
	if !g.generateInto(ctx, buildAnalyzePrompt(resumeText), 0.5, report) {
		return defaultAnalysisReport()
	}
	return report
}

// MatchJD 分析简历与岗位JD的匹配程度
func (g *Gateway) MatchJD(ctx context.Context, resumeText, jdText string) *MatchReport {
	report := &MatchReport{}
	if !g.generateInto(ctx, buildMatchPrompt(resumeText, jdText), 0.5, report) {
		return defaultMatchReport()
	}
	return report
}

// GenerateInterviewQuestions 生成面试题，数量不足时替换为兜底题库
func (g *Gateway) GenerateInterviewQuestions(ctx context.Context, resumeText, jdText string) *InterviewReport {
	report := &InterviewReport{}
	if !g.generateInto(ctx, buildInterviewPrompt(resumeText, jdText), 0.7, report) {
		report = nil
	}
	return EnsureInterviewQuestions(report)
}

// GenerateSelfIntroduction 生成1分钟和3分钟两个版本的自我介绍
func (g *Gateway) GenerateSelfIntroduction(ctx context.Context, resumeText, jdText string) *SelfIntroReport {
	report := &SelfIntroReport{}
	if !g.generateInto(ctx, buildSelfIntroPrompt(resumeText, jdText), 0.7, report) {
		return defaultSelfIntroReport()
	}
	return report
}

// generateInto 发送prompt并把修复后的JSON解析到out，任一环节失败返回false
func (g *Gateway) generateInto(ctx context.Context, prompt string, temperature float32, out any) bool {
	messages := []*schema.Message{schema.UserMessage(prompt)}
	resp, err := g.chatModel.Generate(ctx, messages, model.WithTemperature(temperature))
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("LLM调用失败，使用兜底结果")
		return false
	}

	data, ok := ExtractJSON(resp.Content)
	if !ok {
		logger.Ctx(ctx).Warn().Int("response_len", len(resp.Content)).Msg("LLM响应无法修复为JSON，使用兜底结果")
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("LLM响应JSON结构不符合预期，使用兜底结果")
		return false
	}
	return true
}

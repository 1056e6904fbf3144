package processor

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"resume-assist-go/internal/agent"
	"resume-assist-go/internal/constants"
	"resume-assist-go/internal/extractor"
	"resume-assist-go/internal/logger"
	"resume-assist-go/internal/storage/models"
	"resume-assist-go/internal/types"
)

// AnalyzeOutcome 简历分析的完整结果：启发式提取加LLM深度分析
type AnalyzeOutcome struct {
	ContactInfo          extractor.ContactInfo      `json:"contact_info"`
	Skills               []string                   `json:"skills"`
	RecommendedPositions []types.PositionSuggestion `json:"recommended_positions"`
	Analysis             *agent.AnalysisReport      `json:"analysis"`
}

// Analyze 分析一份简历文本。
// 启发式部分本地计算，LLM部分带缓存，相同文本24小时内不重复调用。
func (s *Service) Analyze(ctx context.Context, resumeText string) (*AnalyzeOutcome, error) {
	ctx, span := tracer.Start(ctx, "Service.Analyze")
	defer span.End()

	if resumeText == "" {
		return nil, ErrEmptyFile
	}

	outcome := &AnalyzeOutcome{
		ContactInfo: extractor.ExtractContactInfo(resumeText),
		Skills:      extractor.ExtractSkills(resumeText),
	}
	outcome.RecommendedPositions = extractor.ScorePositions(outcome.Skills)

	digest := inputDigest(resumeText)
	span.SetAttributes(attribute.String("analysis.digest", digest))

	cached := &agent.AnalysisReport{}
	if s.lookupCache(ctx, constants.ResultTypeAnalyze, digest, cached) {
		span.SetAttributes(attribute.Bool("analysis.cache_hit", true))
		outcome.Analysis = cached
		return outcome, nil
	}

	outcome.Analysis = s.gateway.AnalyzeResume(ctx, resumeText)
	s.storeCache(ctx, constants.ResultTypeAnalyze, digest, outcome.Analysis)
	return outcome, nil
}

// Match 分析简历与岗位JD的匹配程度
func (s *Service) Match(ctx context.Context, resumeText, jdText string) (*agent.MatchReport, error) {
	ctx, span := tracer.Start(ctx, "Service.Match")
	defer span.End()

	if resumeText == "" || jdText == "" {
		return nil, ErrEmptyFile
	}

	digest := inputDigest(resumeText, jdText)
	cached := &agent.MatchReport{}
	if s.lookupCache(ctx, constants.ResultTypeMatch, digest, cached) {
		return cached, nil
	}

	report := s.gateway.MatchJD(ctx, resumeText, jdText)
	s.storeCache(ctx, constants.ResultTypeMatch, digest, report)
	return report, nil
}

// InterviewQuestions 生成面试题
func (s *Service) InterviewQuestions(ctx context.Context, resumeText, jdText string) (*agent.InterviewReport, error) {
	ctx, span := tracer.Start(ctx, "Service.InterviewQuestions")
	defer span.End()

	if resumeText == "" {
		return nil, ErrEmptyFile
	}

	digest := inputDigest(resumeText, jdText)
	cached := &agent.InterviewReport{}
	if s.lookupCache(ctx, constants.ResultTypeInterview, digest, cached) && len(cached.InterviewQuestions) > 0 {
		return cached, nil
	}

	report := s.gateway.GenerateInterviewQuestions(ctx, resumeText, jdText)
	s.storeCache(ctx, constants.ResultTypeInterview, digest, report)
	return report, nil
}

// SelfIntroduction 生成自我介绍
func (s *Service) SelfIntroduction(ctx context.Context, resumeText, jdText string) (*agent.SelfIntroReport, error) {
	ctx, span := tracer.Start(ctx, "Service.SelfIntroduction")
	defer span.End()

	if resumeText == "" {
		return nil, ErrEmptyFile
	}

	digest := inputDigest(resumeText, jdText)
	cached := &agent.SelfIntroReport{}
	if s.lookupCache(ctx, constants.ResultTypeSelfIntro, digest, cached) {
		return cached, nil
	}

	report := s.gateway.GenerateSelfIntroduction(ctx, resumeText, jdText)
	s.storeCache(ctx, constants.ResultTypeSelfIntro, digest, report)
	return report, nil
}

// Compare 对比两份简历文本，JD可选。本地算法，不经过LLM。
func (s *Service) Compare(ctx context.Context, resume1Text, resume2Text, jdText string) (*types.ComparisonResult, error) {
	ctx, span := tracer.Start(ctx, "Service.Compare")
	defer span.End()

	if resume1Text == "" || resume2Text == "" {
		return nil, ErrEmptyFile
	}

	digest := inputDigest(resume1Text, resume2Text, jdText)
	cached := &types.ComparisonResult{}
	if s.lookupCache(ctx, constants.ResultTypeCompare, digest, cached) {
		return cached, nil
	}

	doc1 := s.fields.Parse(resume1Text)
	doc2 := s.fields.Parse(resume2Text)
	result := s.comparator.Compare(doc1, doc2, jdText)

	s.storeCache(ctx, constants.ResultTypeCompare, digest, result)
	return result, nil
}

// inputDigest 多段输入拼接后的MD5摘要，作为缓存key
func inputDigest(parts ...string) string {
	h := md5.New()
	for i, part := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// lookupCache 先查Redis热缓存，再查SQLite持久记录
func (s *Service) lookupCache(ctx context.Context, resultType, digest string, out any) bool {
	if s.storage == nil {
		return false
	}

	if s.storage.HasRedis() {
		if data, err := s.storage.Redis.GetCachedAnalysis(ctx, resultType, digest); err == nil {
			if json.Unmarshal(data, out) == nil {
				return true
			}
		}
	}

	record, err := s.storage.SQLite.GetAnalysisResult(ctx, resultType, digest)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Ctx(ctx).Warn().Err(err).Str("result_type", resultType).Msg("查询分析结果失败")
		}
		return false
	}
	if err := json.Unmarshal(record.ResultJSON, out); err != nil {
		return false
	}

	// 回填Redis，后续相同请求走热缓存
	if s.storage.HasRedis() {
		if err := s.storage.Redis.SetCachedAnalysis(ctx, resultType, digest, record.ResultJSON); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("回填分析缓存失败")
		}
	}
	return true
}

// storeCache 持久化分析结果并写入热缓存，失败只记日志
func (s *Service) storeCache(ctx context.Context, resultType, digest string, v any) {
	if s.storage == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("序列化分析结果失败")
		return
	}

	record := &models.AnalysisResult{
		ResultType:  resultType,
		InputDigest: digest,
		ResultJSON:  data,
	}
	if err := s.storage.SQLite.SaveAnalysisResult(ctx, record); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("result_type", resultType).Msg("保存分析结果失败")
	}

	if s.storage.HasRedis() {
		if err := s.storage.Redis.SetCachedAnalysis(ctx, resultType, digest, data); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("写入分析缓存失败")
		}
	}
}

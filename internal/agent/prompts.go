package agent

import "fmt"

// 各场景下送入LLM的正文截断长度（按rune计），避免超长简历撑爆上下文窗口
const (
	analyzeResumeLimit = 8000
	matchResumeLimit   = 6000
	matchJDLimit       = 4000
)

// truncateRunes 按rune截断，不会把多字节字符切半
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func buildAnalyzePrompt(resumeText string) string {
	return fmt.Sprintf(`你是一个专业的HR和简历优化专家。请分析以下简历，找出其中的问题并提供改进建议。

简历内容：
%s

请从以下几个维度进行分析：
1. 简历完整性：是否有缺失的重要信息
2. 格式规范性：格式是否统一、专业
3. 内容质量：描述是否清晰、有说服力
4. 可量化性：是否有具体的成果数据
5. 关键词匹配：简历中提到的技能和经验

请严格按照以下JSON格式返回分析结果（不要添加任何其他内容）：
{
    "score": 85,
    "strengths": ["优势1", "优势2"],
    "weaknesses": ["问题1", "问题2"],
    "suggestions": ["建议1", "建议2"],
    "recommended_positions": ["适合的岗位方向1", "适合的岗位方向2"]
}`, truncateRunes(resumeText, analyzeResumeLimit))
}

func buildMatchPrompt(resumeText, jdText string) string {
	return fmt.Sprintf(`你是一个专业的HR。请分析简历与岗位JD的匹配程度。

简历内容：
%s

岗位JD：
%s

请分析：
1. 匹配度评分（0-100）
2. 匹配项（简历中符合JD要求的点）
3. 缺失项（简历中缺少但JD要求的点）
4. 改进建议

请严格按照以下JSON格式返回：
{
    "match_score": 75,
    "matched_skills": ["技能1", "技能2"],
    "missing_skills": ["技能3"],
    "matched_experiences": ["经验1"],
    "suggestions": ["建议1", "建议2"],
    "match_details": "详细说明匹配情况"
}`, truncateRunes(resumeText, matchResumeLimit), truncateRunes(jdText, matchJDLimit))
}

func buildInterviewPrompt(resumeText, jdText string) string {
	return fmt.Sprintf(`你是一个专业的面试官。请根据简历和岗位JD，生成12-15道面试题。

简历内容：
%s

岗位JD：
%s

请严格按照以下要求生成面试题：
1. 自我介绍（1道）
2. 岗位相关性（2-3道）
3. 工作经历（3-4道）
4. 技术/专业能力（3-4道）
5. 行为面试题（2-3道）
6. 开放问题（1-2道）

总共必须生成至少12道面试题，最多15道。

请严格按照以下JSON格式返回（必须返回完整的JSON数组）：
{
    "interview_questions": [
        {
            "type": "自我介绍",
            "question": "请简单介绍一下你自己",
            "answer_points": ["要点1", "要点2"],
            "sample_answer": "参考回答...",
            "tips": "注意事项"
        },
        {
            "type": "岗位相关性",
            "question": "你为什么对这个岗位感兴趣？",
            "answer_points": ["要点1", "要点2"],
            "sample_answer": "参考回答...",
            "tips": "注意事项"
        }
    ]
}

注意：
- interview_questions数组必须包含至少12个问题对象
- 每个问题必须有type、question、answer_points、sample_answer、tips这5个字段
- answer_points必须是数组格式["要点1", "要点2"]
- sample_answer要详细完整，至少100字以上
- tips要给出实用的面试技巧建议`, truncateRunes(resumeText, matchResumeLimit), truncateRunes(jdText, matchJDLimit))
}

func buildSelfIntroPrompt(resumeText, jdText string) string {
	return fmt.Sprintf(`你是一个专业的职业顾问。请根据简历和岗位JD，生成一份专业的自我介绍。

简历内容：
%s

岗位JD：
%s

请生成两个版本的自我介绍：
1. 1分钟版本（200-300字）：简洁有力，突出与岗位的匹配度
2. 3分钟版本（500-800字）：详细展示经历和能力

请严格按照以下JSON格式返回：
{
    "one_minute": "1分钟版本的自我介绍...",
    "three_minutes": "3分钟版本的自我介绍...",
    "key_points": ["核心要点1", "核心要点2"]
}`, truncateRunes(resumeText, matchResumeLimit), truncateRunes(jdText, matchJDLimit))
}

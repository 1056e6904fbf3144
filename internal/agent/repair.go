package agent

import (
	"encoding/json"
	"regexp"
	"strings"
)

// LLM经常在JSON外包一层markdown围栏或夹带说明文字，
// 这里用一条修复链逐级降级提取，全部失败才放弃。

var (
	interviewArrayRe = regexp.MustCompile(`interview_questions"\s*:\s*\[([\s\S]*?)\]`)
	outerObjectRe    = regexp.MustCompile(`\{[\s\S]*\}`)
)

type repairFunc func(raw string) ([]byte, bool)

var repairChain = []repairFunc{
	directJSON,
	fencedJSON,
	interviewArrayJSON,
	outerObjectJSON,
}

// ExtractJSON 从LLM原始输出中提取一段合法JSON对象。
// 依次尝试：直接解析、剥离markdown围栏、抢救interview_questions数组、
// 截取最外层花括号。全部失败返回false。
func ExtractJSON(raw string) ([]byte, bool) {
	for _, step := range repairChain {
		if data, ok := step(raw); ok {
			return data, true
		}
	}
	return nil, false
}

func directJSON(raw string) ([]byte, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !json.Valid([]byte(trimmed)) {
		return nil, false
	}
	return []byte(trimmed), true
}

// CleanJSONFence 去掉 ```json ... ``` 围栏
func CleanJSONFence(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

func fencedJSON(raw string) ([]byte, bool) {
	cleaned := CleanJSONFence(raw)
	if cleaned == "" || !json.Valid([]byte(cleaned)) {
		return nil, false
	}
	return []byte(cleaned), true
}

// interviewArrayJSON 针对面试题场景：整体JSON损坏但数组部分完好时，
// 单独抢救出数组并重新包成对象。
func interviewArrayJSON(raw string) ([]byte, bool) {
	match := interviewArrayRe.FindStringSubmatch(raw)
	if match == nil {
		return nil, false
	}
	arrayStr := "[" + match[1] + "]"
	var questions []json.RawMessage
	if err := json.Unmarshal([]byte(arrayStr), &questions); err != nil {
		return nil, false
	}
	wrapped, err := json.Marshal(map[string]json.RawMessage{
		"interview_questions": json.RawMessage(arrayStr),
	})
	if err != nil {
		return nil, false
	}
	return wrapped, true
}

func outerObjectJSON(raw string) ([]byte, bool) {
	match := outerObjectRe.FindString(raw)
	if match == "" || !json.Valid([]byte(match)) {
		return nil, false
	}
	return []byte(match), true
}

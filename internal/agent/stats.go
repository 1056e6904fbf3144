package agent

import (
	"sync/atomic"
	"time"
)

// UsageStats 进程级的LLM调用统计。
// 全部使用原子计数器，并发请求下不会丢失更新。
type UsageStats struct {
	totalCalls            atomic.Int64
	totalPromptTokens     atomic.Int64
	totalCompletionTokens atomic.Int64
	totalTokens           atomic.Int64
	lastCallUnixNano      atomic.Int64
}

// UsageSnapshot 统计数据的一致性快照
type UsageSnapshot struct {
	TotalCalls            int64  `json:"total_calls"`
	TotalPromptTokens     int64  `json:"total_prompt_tokens"`
	TotalCompletionTokens int64  `json:"total_completion_tokens"`
	TotalTokens           int64  `json:"total_tokens"`
	LastCallTime          string `json:"last_call_time"`
}

// NewUsageStats 创建统计器
func NewUsageStats() *UsageStats {
	return &UsageStats{}
}

// Record 记录一次成功调用的token消耗
func (s *UsageStats) Record(promptTokens, completionTokens, totalTokens int) {
	s.totalCalls.Add(1)
	s.totalPromptTokens.Add(int64(promptTokens))
	s.totalCompletionTokens.Add(int64(completionTokens))
	s.totalTokens.Add(int64(totalTokens))
	s.lastCallUnixNano.Store(time.Now().UnixNano())
}

// Snapshot 读取当前统计
func (s *UsageStats) Snapshot() UsageSnapshot {
	snap := UsageSnapshot{
		TotalCalls:            s.totalCalls.Load(),
		TotalPromptTokens:     s.totalPromptTokens.Load(),
		TotalCompletionTokens: s.totalCompletionTokens.Load(),
		TotalTokens:           s.totalTokens.Load(),
	}
	if nano := s.lastCallUnixNano.Load(); nano > 0 {
		snap.LastCallTime = time.Unix(0, nano).Format(time.RFC3339)
	}
	return snap
}

// Reset 清零并返回清零前的统计
func (s *UsageStats) Reset() UsageSnapshot {
	snap := s.Snapshot()
	s.totalCalls.Store(0)
	s.totalPromptTokens.Store(0)
	s.totalCompletionTokens.Store(0)
	s.totalTokens.Store(0)
	s.lastCallUnixNano.Store(0)
	return snap
}

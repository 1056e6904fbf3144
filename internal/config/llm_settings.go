package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// LLMSettings 运行时可修改的LLM接入参数
type LLMSettings struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
	Model   string `json:"model"`
}

// LLMSettingsHolder 持有当前生效的LLM接入参数。
// 所有读写都经过读写锁，避免保存配置时其他请求读到撕裂的组合。
type LLMSettingsHolder struct {
	mu       sync.RWMutex
	current  LLMSettings
	defaults LLMSettings // 来自配置文件的出厂值
	isCustom bool        // 当前生效的是否为用户保存的自定义配置
	filePath string      // 用户自定义配置的持久化路径
}

// NewLLMSettingsHolder 创建配置持有器，若存在用户保存的配置则优先加载
func NewLLMSettingsHolder(cfg *LLMConfig) *LLMSettingsHolder {
	defaults := LLMSettings{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	}
	h := &LLMSettingsHolder{
		current:  defaults,
		defaults: defaults,
		filePath: cfg.UserConfigPath,
	}

	// 尝试加载用户保存的自定义配置
	if data, err := os.ReadFile(h.filePath); err == nil {
		var saved LLMSettings
		if err := json.Unmarshal(data, &saved); err == nil && saved.BaseURL != "" {
			h.current = saved
			h.isCustom = true
		}
	}
	return h
}

// Snapshot 返回当前生效配置的一致快照
func (h *LLMSettingsHolder) Snapshot() LLMSettings {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// IsCustom 当前生效的是否为用户自定义配置
func (h *LLMSettingsHolder) IsCustom() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.isCustom
}

// MaskedAPIKey 返回脱敏后的API密钥，仅保留前10位
func (h *LLMSettingsHolder) MaskedAPIKey() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return MaskAPIKey(h.current.APIKey)
}

// Save 持久化并切换到用户自定义配置
func (h *LLMSettingsHolder) Save(s LLMSettings) error {
	if s.BaseURL == "" || s.APIKey == "" || s.Model == "" {
		return fmt.Errorf("base_url、api_key、model均不能为空")
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化用户配置失败: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(h.filePath), 0755); err != nil {
		return fmt.Errorf("创建用户配置目录失败: %w", err)
	}
	if err := os.WriteFile(h.filePath, data, 0600); err != nil {
		return fmt.Errorf("写入用户配置失败: %w", err)
	}

	h.current = s
	h.isCustom = true
	return nil
}

// Reset 删除用户自定义配置并恢复出厂值
func (h *LLMSettingsHolder) Reset() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.Remove(h.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除用户配置失败: %w", err)
	}
	h.current = h.defaults
	h.isCustom = false
	return nil
}

// MaskAPIKey API密钥脱敏，保留前10位后接"****"
func MaskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 10 {
		return "****"
	}
	return key[:10] + "****"
}

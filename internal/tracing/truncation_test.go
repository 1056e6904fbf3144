package tracing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPII(t *testing.T) {
	assert.Equal(t, "", MaskPII(""))
	assert.Equal(t, "*", MaskPII("a"))
	assert.Equal(t, "张*", MaskPII("张三"))
	assert.Equal(t, "王*明", MaskPII("王小明"))
	assert.Equal(t, "13*******78", MaskPII("13812345678"))
}

func TestSafeAttributeValue(t *testing.T) {
	// 敏感字段名触发掩码
	masked := SafeAttributeValue("user.email", "zhangsan@example.com", DefaultMaxLength)
	assert.Contains(t, masked, "*")
	assert.NotContains(t, masked, "zhangsan@example")

	// 普通字段只做截断
	long := strings.Repeat("x", 300)
	safe := SafeAttributeValue("db.statement", long, DefaultMaxLength)
	assert.LessOrEqual(t, len([]rune(safe)), DefaultMaxLength)
	assert.Contains(t, safe, "...")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abc", TruncateString("abcdef", 3))

	got := TruncateString(strings.Repeat("长", 100), 11)
	assert.Contains(t, got, "...")
	assert.LessOrEqual(t, len([]rune(got)), 11)
}

package util

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNTD(t *testing.T) {
	assert.Equal(t, "NTD 0", FormatNTD(0))
	assert.Equal(t, "NTD 80", FormatNTD(80))
	assert.Equal(t, "NTD 1,280", FormatNTD(1280))
	assert.Equal(t, "NTD 1,000,000", FormatNTD(1000000))
}

func TestGenerateTradeNo(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 30, 5, 0, time.UTC)
	pattern := regexp.MustCompile(`^EC261019083005[0-9A-Z]{6}$`)

	first := GenerateTradeNo(now)
	second := GenerateTradeNo(now)

	assert.Len(t, first, 20)
	assert.Regexp(t, pattern, first)
	assert.NotEqual(t, first, second)
}

func TestScopeKey(t *testing.T) {
	assert.Equal(t, "plg-selected-store:abc", ScopeKey("plg-selected-store", "abc"))
}

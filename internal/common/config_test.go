package common

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("OPENAI_REPAIR_MODEL", "")
	t.Setenv("OPENAI_TEMPERATURE", "")
	t.Setenv("MIN_ABS_AMOUNT", "")
	t.Setenv("LINE_ITEM_CAP", "")
	t.Setenv("RESULT_TTL", "")

	cfg := LoadConfig()
	assert.Equal(t, "gpt-4.1-mini", cfg.LLM.Model)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.RepairModel)
	assert.Equal(t, float32(0), cfg.LLM.Temperature)
	assert.Equal(t, "0.01", cfg.Extract.MinAbsAmount)
	assert.Equal(t, 20, cfg.Extract.LineItemCap)
	assert.Equal(t, 30*time.Minute, cfg.Extract.ResultTTL)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("OPENAI_MODEL", "gpt-5")
	t.Setenv("MIN_ABS_AMOUNT", "5.00")
	t.Setenv("LINE_ITEM_CAP", "50")
	t.Setenv("OPENAI_TIMEOUT", "2m")

	cfg := LoadConfig()
	assert.Equal(t, "gpt-5", cfg.LLM.Model)
	assert.Equal(t, "5.00", cfg.Extract.MinAbsAmount)
	assert.Equal(t, 50, cfg.Extract.LineItemCap)
	assert.Equal(t, 2*time.Minute, cfg.LLM.Timeout)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.LLM.Model = "gpt-4.1-mini"
	cfg.Extract.MinAbsAmount = "0.01"

	err := cfg.Validate()
	require.Error(t, err, "missing API key")
	assert.True(t, errors.Is(err, ErrInvalidInput))

	cfg.LLM.APIKey = "sk-test"
	require.NoError(t, cfg.Validate())

	cfg.Extract.MinAbsAmount = "not-a-number"
	assert.Error(t, cfg.Validate())
}

func TestAppError(t *testing.T) {
	cause := errors.New("boom")
	err := NewAppError("MODEL_CALL", "chat failed", cause)
	assert.Equal(t, "MODEL_CALL: chat failed: boom", err.Error())
	assert.True(t, errors.Is(err, cause))

	bare := NewAppError("CONFIG_ERROR", "missing key", nil)
	assert.Equal(t, "CONFIG_ERROR: missing key", bare.Error())

	assert.NoError(t, WrapError(nil, "ignored"))
	assert.EqualError(t, WrapError(cause, "outer"), "outer: boom")
}

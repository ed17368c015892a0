package narrative

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoadvisor-dev/autoadvisor/internal/analyze"
)

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvKey, "")
	_, ok := FromEnv("")
	assert.False(t, ok, "no credential means no client")

	t.Setenv(EnvKey, "sk-test")
	c, ok := FromEnv("")
	require.True(t, ok)
	assert.Equal(t, defaultModel, c.model)

	c, ok = FromEnv("gpt-4o")
	require.True(t, ok)
	assert.Equal(t, "gpt-4o", c.model)
}

func TestBuildPrompt(t *testing.T) {
	m := analyze.Metrics{
		Period:         "2025-08",
		IncomeTotal:    decimal.NewFromInt(2000),
		ExpenseTotal:   decimal.NewFromInt(-1500),
		Net:            decimal.NewFromInt(500),
		SavingsRatePct: decimal.NewFromInt(25),
		TxCount:        12,
	}

	prompt, err := buildPrompt(m)
	require.NoError(t, err)
	assert.Contains(t, prompt, "personal finance coach")
	assert.Contains(t, prompt, `"period": "2025-08"`)
	assert.Contains(t, prompt, "income_total")
	assert.Contains(t, prompt, "tx_count")
}

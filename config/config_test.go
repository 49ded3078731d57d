package config

import (
	"testing"

	"dealer/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := core.Config{
		Collaterals: []core.Collateral{
			{Class: "WETH", Oracle: core.Oracle{Endpoint: "https://feed.example"}},
			{Class: "CHAI"},
		},
		Settlement: core.Settlement{Rate: core.Oracle{Price: decimal.New(12, -1)}},
	}

	defaults(&cfg)

	assert.Equal(t, int64(10), cfg.App.CacheTTL)
	assert.Equal(t, "0.01", cfg.Deposit.Amount.String())
	assert.Equal(t, "@every 1m", cfg.Audit.Schedule)
	assert.True(t, cfg.Collaterals[0].Oracle.Price.IsZero())
	assert.Equal(t, "1", cfg.Collaterals[1].Oracle.Price.String())
	assert.Equal(t, "1.2", cfg.Settlement.Rate.Price.String())
	assert.Equal(t, "1", cfg.Settlement.Chi.Price.String())
	assert.False(t, cfg.IsAdmin("alice"))
}

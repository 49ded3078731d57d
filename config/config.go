package config

import (
	"dealer/core"

	"github.com/fox-one/pkg/config"
	"github.com/shopspring/decimal"
)

// Load load config file, env DEALER_* overrides
func Load(cfgFile string, cfg *core.Config) error {
	config.AutomaticLoadEnv("DEALER")
	if err := config.LoadYaml(cfgFile, cfg); err != nil {
		return err
	}

	defaults(cfg)
	return nil
}

func defaults(cfg *core.Config) {
	if cfg.App.CacheTTL <= 0 {
		cfg.App.CacheTTL = 10
	}

	if cfg.Deposit.Amount.IsZero() {
		cfg.Deposit.Amount = decimal.New(1, -2)
	}

	if cfg.Audit.Schedule == "" {
		cfg.Audit.Schedule = "@every 1m"
	}

	for i := range cfg.Collaterals {
		c := &cfg.Collaterals[i]
		if c.Oracle.Endpoint == "" && c.Oracle.Price.IsZero() {
			c.Oracle.Price = decimal.New(1, 0)
		}
	}

	for _, o := range []*core.Oracle{&cfg.Settlement.Rate, &cfg.Settlement.Chi} {
		if o.Endpoint == "" && o.Price.IsZero() {
			o.Price = decimal.New(1, 0)
		}
	}
}

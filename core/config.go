package core

import (
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Config dealer config
type Config struct {
	App         App          `json:"app"`
	DB          db.Config    `json:"db"`
	Redis       Redis        `json:"redis"`
	Admins      []string     `json:"admins"`
	Collaterals []Collateral `json:"collaterals"`
	Settlement  Settlement   `json:"settlement"`
	Deposit     Deposit      `json:"deposit"`
	Series      []SeriesSeed `json:"series"`
	Audit       Audit        `json:"audit"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(userID string) bool {
	for _, a := range c.Admins {
		if a == userID {
			return true
		}
	}

	return false
}

// App app config
type App struct {
	Owner string `json:"owner"`
	// CacheTTL seconds delegations and prices are cached
	CacheTTL int64 `json:"cache_ttl"`
}

// Redis optional shared price cache
type Redis struct {
	Addr string `json:"addr"`
	DB   int    `json:"db"`
}

// Oracle price source, a fixed price or a price feed endpoint
type Oracle struct {
	Price    decimal.Decimal `json:"price"`
	Endpoint string          `json:"endpoint"`
	Symbol   string          `json:"symbol"`
}

// Collateral collateral class binding
type Collateral struct {
	Class   string `json:"class"`
	AssetID string `json:"asset_id"`
	Oracle  Oracle `json:"oracle"`
}

// Settlement settlement asset and the accrual indexes read at maturity
type Settlement struct {
	AssetID string `json:"asset_id"`
	Rate    Oracle `json:"rate"`
	Chi     Oracle `json:"chi"`
}

// Deposit incentive deposit
type Deposit struct {
	AssetID string          `json:"asset_id"`
	Amount  decimal.Decimal `json:"amount"`
}

// SeriesSeed series known to the book-backed token
type SeriesSeed struct {
	Maturity int64  `json:"maturity"`
	AssetID  string `json:"asset_id"`
}

// Audit ledger audit worker
type Audit struct {
	// Schedule cron spec
	Schedule string `json:"schedule"`
}

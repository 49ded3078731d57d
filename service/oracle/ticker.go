package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dealer/core"
	"dealer/pkg/number"
	"dealer/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// ErrInvalidPrice price feed answered a non-positive price
var ErrInvalidPrice = errors.New("oracle: invalid price")

type tickerOracle struct {
	endpoint string
	symbol   string
}

// Ticker oracle pulling the price ticker of symbol from a price feed
func Ticker(endpoint, symbol string) core.IOracle {
	return &tickerOracle{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		symbol:   symbol,
	}
}

func (o *tickerOracle) Price(ctx context.Context) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/api/v2/tickers/%s", o.endpoint, o.symbol)
	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("pull price:", url)
		return decimal.Zero, err
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("pull price:", url)
		return decimal.Zero, err
	}

	if !ticker.Price.IsPositive() {
		return decimal.Zero, ErrInvalidPrice
	}

	return number.Ray(ticker.Price), nil
}

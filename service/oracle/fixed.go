package oracle

import (
	"context"

	"dealer/core"
	"dealer/pkg/number"

	"github.com/shopspring/decimal"
)

type fixedOracle struct {
	price decimal.Decimal
}

// Fixed oracle answering a constant price
func Fixed(price decimal.Decimal) core.IOracle {
	return &fixedOracle{price: number.Ray(price)}
}

func (o *fixedOracle) Price(ctx context.Context) (decimal.Decimal, error) {
	return o.price, nil
}

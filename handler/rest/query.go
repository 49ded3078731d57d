package rest

import (
	"context"
	"net/http"

	"dealer/core"
	"dealer/handler/param"
	"dealer/handler/render"
	"dealer/handler/views"

	"github.com/shopspring/decimal"
)

func positionHandler(dealer core.IDealer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Class   string `json:"class" valid:"required"`
			Account string `json:"account" valid:"uuid,required"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		position, err := dealer.Position(r.Context(), core.CollateralClass(params.Class), params.Account)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, position)
	}
}

type convert func(ctx context.Context, class core.CollateralClass, maturity int64, amount decimal.Decimal) (decimal.Decimal, error)

func valueHandler(fn convert) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Class    string          `json:"class" valid:"required"`
			Maturity int64           `json:"maturity" valid:"required"`
			Amount   decimal.Decimal `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		class := core.CollateralClass(params.Class)
		value, err := fn(r.Context(), class, params.Maturity, params.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Value{
			Class:    class,
			Maturity: params.Maturity,
			Amount:   params.Amount,
			Value:    value,
		})
	}
}

func settlementValueHandler(dealer core.IDealer) http.HandlerFunc {
	return valueHandler(dealer.ToSettlementValue)
}

func syntheticValueHandler(dealer core.IDealer) http.HandlerFunc {
	return valueHandler(dealer.ToSyntheticValue)
}

func eventsHandler(events core.IEventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Account string `json:"account"`
			From    uint64 `json:"from"`
			Limit   int    `json:"limit"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		if params.Limit <= 0 || params.Limit > 500 {
			params.Limit = 500
		}

		list, err := events.List(r.Context(), params.Account, params.From, params.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, list)
	}
}

package rest

import (
	"net/http"

	"dealer/core"
	"dealer/handler/param"
	"dealer/handler/render"
	"dealer/handler/views"

	"github.com/shopspring/decimal"
)

func eraseHandler(dealer core.IDealer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := caller(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		var body struct {
			Class   string `json:"class" valid:"required"`
			Account string `json:"account" valid:"uuid,required"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		collateral, debtValue, err := dealer.Erase(r.Context(), c, core.CollateralClass(body.Class), body.Account)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Erased{Collateral: collateral, DebtValue: debtValue})
	}
}

func grabHandler(dealer core.IDealer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := caller(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		var body struct {
			Class      string          `json:"class" valid:"required"`
			Account    string          `json:"account" valid:"uuid,required"`
			DebtValue  decimal.Decimal `json:"debt_value"`
			Collateral decimal.Decimal `json:"collateral"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		if err := dealer.Grab(r.Context(), c, core.CollateralClass(body.Class), body.Account, body.DebtValue, body.Collateral); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

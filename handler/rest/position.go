package rest

import (
	"net/http"

	"dealer/core"
	"dealer/handler/param"
	"dealer/handler/render"
	"dealer/handler/views"

	"github.com/shopspring/decimal"
)

type transferBody struct {
	Class  string          `json:"class" valid:"required"`
	From   string          `json:"from" valid:"uuid,required"`
	To     string          `json:"to" valid:"uuid,required"`
	Amount decimal.Decimal `json:"amount"`
}

type seriesBody struct {
	transferBody
	Maturity int64 `json:"maturity" valid:"required"`
}

func postHandler(dealer core.IDealer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := caller(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		var body transferBody
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		if err := dealer.Post(r.Context(), c, core.CollateralClass(body.Class), body.From, body.To, body.Amount); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

func withdrawHandler(dealer core.IDealer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := caller(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		var body transferBody
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		if err := dealer.Withdraw(r.Context(), c, core.CollateralClass(body.Class), body.From, body.To, body.Amount); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

func borrowHandler(dealer core.IDealer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := caller(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		var body seriesBody
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		if err := dealer.Borrow(r.Context(), c, core.CollateralClass(body.Class), body.Maturity, body.From, body.To, body.Amount); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

func repaySyntheticHandler(dealer core.IDealer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := caller(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		var body seriesBody
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		repaid, err := dealer.RepaySynthetic(r.Context(), c, core.CollateralClass(body.Class), body.Maturity, body.From, body.To, body.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Repaid{Repaid: repaid})
	}
}

func repaySettlementHandler(dealer core.IDealer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := caller(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		var body seriesBody
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		repaid, err := dealer.RepaySettlement(r.Context(), c, core.CollateralClass(body.Class), body.Maturity, body.From, body.To, body.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Repaid{Repaid: repaid})
	}
}

package rest

import (
	"net/http"

	"dealer/core"
	"dealer/handler/param"
	"dealer/handler/render"
	"dealer/handler/views"
)

func systemHandler(dealer core.IDealer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		series, err := dealer.SeriesList(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.System{Live: dealer.Live(), Series: series})
	}
}

func listSeriesHandler(dealer core.IDealer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		series, err := dealer.SeriesList(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, series)
	}
}

func registerSeriesHandler(dealer core.IDealer, newSeries SeriesFactory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := caller(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		var body struct {
			Maturity int64  `json:"maturity" valid:"required"`
			AssetID  string `json:"asset_id" valid:"uuid,required"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		handle := newSeries(&core.Series{Maturity: body.Maturity, AssetID: body.AssetID})
		if err := dealer.RegisterSeries(r.Context(), c, handle); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

func shutdownHandler(dealer core.IDealer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := caller(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		if err := dealer.Shutdown(r.Context(), c); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

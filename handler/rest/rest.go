package rest

import (
	"errors"
	"net/http"

	"dealer/core"
	"dealer/handler/render"
	"dealer/handler/request"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// SeriesFactory builds the token handle of a new series
type SeriesFactory func(series *core.Series) core.IFYToken

// Handle handle rest api request
func Handle(
	dealer core.IDealer,
	delegates core.IDelegateService,
	events core.IEventStore,
	newSeries SeriesFactory,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/system", systemHandler(dealer))
	router.Get("/series", listSeriesHandler(dealer))
	router.Post("/series", registerSeriesHandler(dealer, newSeries))
	router.Post("/shutdown", shutdownHandler(dealer))

	router.Post("/post", postHandler(dealer))
	router.Post("/withdraw", withdrawHandler(dealer))
	router.Post("/borrow", borrowHandler(dealer))
	router.Post("/repay-synthetic", repaySyntheticHandler(dealer))
	router.Post("/repay-settlement", repaySettlementHandler(dealer))

	router.Post("/erase", eraseHandler(dealer))
	router.Post("/grab", grabHandler(dealer))

	router.Get("/positions", positionHandler(dealer))
	router.Get("/value/settlement", settlementValueHandler(dealer))
	router.Get("/value/synthetic", syntheticValueHandler(dealer))
	router.Get("/events", eventsHandler(events))

	router.Post("/delegates", addDelegateHandler(delegates))
	router.Delete("/delegates/{delegate}", revokeDelegateHandler(delegates))

	return router
}

func caller(r *http.Request) (string, error) {
	c, ok := request.NewContext(r.Context()).GetCaller()
	if !ok {
		return "", twirp.NewError(twirp.Unauthenticated, "caller required")
	}

	return c, nil
}

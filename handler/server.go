package handler

import (
	"net/http"

	"dealer/core"
	"dealer/handler/auth"
	"dealer/handler/render"
	"dealer/handler/rest"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	dealer    core.IDealer
	delegates core.IDelegateService
	events    core.IEventStore
	newSeries rest.SeriesFactory
}

// New new server function
func New(
	dealer core.IDealer,
	delegates core.IDelegateService,
	events core.IEventStore,
	newSeries rest.SeriesFactory,
) Server {
	return Server{
		dealer:    dealer,
		delegates: delegates,
		events:    events,
		newSeries: newSeries,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(resetRoutePath)
	r.Use(auth.HandleAuthentication())
	r.Use(render.WrapResponse(true))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	r.Mount("/", rest.Handle(s.dealer, s.delegates, s.events, s.newSeries))
	return r
}

func resetRoutePath(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if c := chi.RouteContext(ctx); c != nil {
			c.RoutePath = r.URL.Path
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

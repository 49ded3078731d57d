package hc

import (
	"net/http"
	"time"

	"dealer/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Liveness reports whether the dealer is still live
type Liveness interface {
	Live() bool
}

// Handle handle hc request
func Handle(ver string, liveness Liveness) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, liveness))
	return r
}

func handle(version string, liveness Liveness) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := time.Since(b).Truncate(time.Millisecond)
		render.JSON(w, render.H{
			"uptime":  uptime.String(),
			"version": version,
			"live":    liveness.Live(),
		})
	}
}

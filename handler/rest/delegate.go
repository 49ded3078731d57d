package rest

import (
	"net/http"

	"dealer/core"
	"dealer/handler/param"
	"dealer/handler/render"
	"dealer/handler/views"

	"github.com/go-chi/chi"
)

func addDelegateHandler(delegates core.IDelegateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := caller(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		var body struct {
			Delegate string `json:"delegate" valid:"uuid,required"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		if err := delegates.AddDelegate(r.Context(), c, body.Delegate); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

func revokeDelegateHandler(delegates core.IDelegateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := caller(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		if err := delegates.RevokeDelegate(r.Context(), c, chi.URLParam(r, "delegate")); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

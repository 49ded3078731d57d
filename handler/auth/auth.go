package auth

import (
	"net/http"

	"dealer/handler/request"

	"github.com/fox-one/pkg/logger"
	"github.com/gofrs/uuid"
)

// CallerHeader header carrying the caller id, set by the gateway after authentication
const CallerHeader = "X-Caller-Id"

// HandleAuthentication put the caller into the request context
func HandleAuthentication() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			caller := r.Header.Get(CallerHeader)
			if caller == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := uuid.FromString(caller)
			if err != nil {
				logger.FromContext(ctx).WithError(err).Debugln("invalid caller id:", caller)
				next.ServeHTTP(w, r)
				return
			}

			log := logger.FromContext(ctx).WithField("caller", id.String())
			ctx = logger.WithContext(ctx, log)
			next.ServeHTTP(w, r.WithContext(request.NewContext(ctx).WithCaller(id.String())))
		}

		return http.HandlerFunc(fn)
	}
}

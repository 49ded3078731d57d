package render

import (
	"encoding/json"
	"net/http"

	"dealer/handler/codes"

	"github.com/sirupsen/logrus"
	"github.com/twitchtv/twirp"
)

// H map shortcut
type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render json")
	}
}

// Error write err as a twirp error, dealer error codes are kept in the body
func Error(w http.ResponseWriter, err error) {
	twerr := codes.From(err)
	code := codes.Get(twerr)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(twirp.ServerHTTPStatusFromErrorCode(twerr.Code()))

	resp := errorResponse{Code: code, Msg: twerr.Msg()}
	if ResponseErrorMessageAsHint {
		resp.Hint = err.Error()
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logrus.WithError(err).Errorln("render error")
	}
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.InvalidArgumentError("request", err.Error()))
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.NotFoundError(err.Error()))
}

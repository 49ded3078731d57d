package codes

import (
	"errors"
	"strconv"

	"dealer/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// With with specified error
func With(err error, code int) twirp.Error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// From convert err to a twirp error, dealer errors keep their code
func From(err error) twirp.Error {
	if twerr, ok := err.(twirp.Error); ok {
		return twerr
	}

	var code core.ErrorCode
	if !errors.As(err, &code) {
		return twirp.InternalErrorWith(err)
	}

	var twerr twirp.Error
	switch code {
	case core.ErrNotAuthorized:
		twerr = twirp.NewError(twirp.PermissionDenied, code.Message())
	case core.ErrUnrecognizedCollateral, core.ErrUnrecognizedSeries:
		twerr = twirp.NewError(twirp.NotFound, code.Message())
	case core.ErrInvalidAmount, core.ErrUnsupportedCollateral:
		twerr = twirp.NewError(twirp.InvalidArgument, code.Message())
	case core.ErrDuplicateSeries:
		twerr = twirp.NewError(twirp.AlreadyExists, code.Message())
	case core.ErrTransferFailed:
		twerr = twirp.NewError(twirp.Unavailable, err.Error())
	default:
		twerr = twirp.NewError(twirp.FailedPrecondition, code.Message())
	}

	return With(twerr, int(code))
}

// Get get error code
func Get(twerr twirp.Error) int {
	if v := twerr.Meta(CustomCodeKey); v != "" {
		if code, err := strconv.Atoi(v); err == nil {
			return code
		}
	}

	switch twerr.Code() {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(twerr.Code())
	}
}

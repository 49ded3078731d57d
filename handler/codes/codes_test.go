package codes

import (
	"errors"
	"fmt"
	"testing"

	"dealer/core"

	"github.com/stretchr/testify/assert"
	"github.com/twitchtv/twirp"
)

func TestFrom(t *testing.T) {
	cases := []struct {
		err  error
		code twirp.ErrorCode
		num  int
	}{
		{core.ErrNotAuthorized, twirp.PermissionDenied, int(core.ErrNotAuthorized)},
		{core.ErrUndercollateralized, twirp.FailedPrecondition, int(core.ErrUndercollateralized)},
		{core.ErrUnrecognizedSeries, twirp.NotFound, int(core.ErrUnrecognizedSeries)},
		{fmt.Errorf("%w: boom", core.ErrTransferFailed), twirp.Unavailable, int(core.ErrTransferFailed)},
		{twirp.InvalidArgumentError("amount", "required"), twirp.InvalidArgument, InvalidArguments},
		{errors.New("boom"), twirp.Internal, 500},
	}

	for _, c := range cases {
		twerr := From(c.err)
		assert.Equal(t, c.code, twerr.Code(), c.err.Error())
		assert.Equal(t, c.num, Get(twerr), c.err.Error())
	}
}

package auditor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledger struct {
	err    error
	audits int
}

func (l *ledger) Audit(ctx context.Context) error {
	l.audits++
	return l.err
}

func (l *ledger) Live() bool {
	return true
}

func TestAuditor(t *testing.T) {
	l := &ledger{}
	w, err := New(l, "@every 1h")
	require.Nil(t, err)

	w.Run()
	assert.Equal(t, 1, l.audits)
	assert.False(t, w.IsRunning())

	l.err = errors.New("mismatch")
	assert.Equal(t, l.err, w.onWork(context.Background()))
	assert.Equal(t, 2, l.audits)
}

func TestAuditorBadSchedule(t *testing.T) {
	_, err := New(&ledger{}, "every now and then")
	assert.NotNil(t, err)
}

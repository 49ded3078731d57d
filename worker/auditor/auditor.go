package auditor

import (
	"context"

	"dealer/worker"

	"github.com/fox-one/pkg/logger"
)

// Auditable ledger that can verify its totals
type Auditable interface {
	Audit(ctx context.Context) error
	Live() bool
}

// Worker audit worker, checks the system totals against the account balances
type Worker struct {
	worker.BaseJob
	dealer Auditable
}

// New new audit worker running on the cron spec
func New(dealer Auditable, spec string) (*Worker, error) {
	job := &Worker{dealer: dealer}
	job.Name = "auditor"
	job.OnWork = job.onWork

	if err := job.Schedule(spec); err != nil {
		return nil, err
	}

	return job, nil
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if err := w.dealer.Audit(ctx); err != nil {
		log.WithError(err).Errorln("ledger audit mismatch")
		return err
	}

	log.WithField("live", w.dealer.Live()).Debugln("ledger audit passed")
	return nil
}

package worker

import (
	"context"
	"sync"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// IJob cron job
type IJob interface {
	Start() error
	Run()
	Stop() error
}

// OnWork one round of a job
type OnWork func(ctx context.Context) error

// BaseJob cron driven job, a round is skipped while the previous one is
// still running
type BaseJob struct {
	Name   string
	Cron   *cron.Cron
	OnWork OnWork

	mu      sync.Mutex
	running bool
}

// Schedule create the cron and register the job on the cron spec
func (job *BaseJob) Schedule(spec string) error {
	job.Cron = cron.New()
	_, err := job.Cron.AddFunc(spec, job.Run)
	return err
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	<-job.Cron.Stop().Done()
	return nil
}

// IsRunning is a round in progress
func (job *BaseJob) IsRunning() bool {
	job.mu.Lock()
	defer job.mu.Unlock()

	return job.running
}

func (job *BaseJob) Run() {
	job.mu.Lock()
	if job.running {
		job.mu.Unlock()
		return
	}
	job.running = true
	job.mu.Unlock()

	defer func() {
		job.mu.Lock()
		job.running = false
		job.mu.Unlock()
	}()

	log := logger.FromContext(context.Background()).WithField("worker", job.Name)
	ctx := logger.WithContext(context.Background(), log)
	if err := job.OnWork(ctx); err != nil {
		log.WithError(err).Debugln("round failed")
	}
}
